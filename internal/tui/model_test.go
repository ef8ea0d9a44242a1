package tui

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/roon-tui/roon-tui/internal/app"
	"github.com/roon-tui/roon-tui/internal/artwork"
	"github.com/roon-tui/roon-tui/internal/roon"
)

const zonesWithArt = `[
  {"zoneId":"z1","displayName":"Kitchen","state":"playing",
   "outputs":[{"outputId":"o1","displayName":"Kitchen DAC","volume":{"value":42,"min":0,"max":100,"isMuted":false}}],
   "nowPlaying":{"artist":"ABBA","track":"SOS","album":"ABBA","seekPosition":61,"length":200,"albumArtUrl":"http://core/art/1.jpg"},
   "settings":{"loop":"loop","shuffle":true,"autoRadio":false}},
  {"zoneId":"z2","displayName":"Office","state":"stopped","outputs":[],"settings":{"loop":"disabled","shuffle":false,"autoRadio":false}}
]`

type fakeRunner struct {
	calls     [][]string
	responses map[string]string
	errs      map[string]error
}

func (r *fakeRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	if err := r.errs[args[0]]; err != nil {
		return nil, err
	}
	return []byte(r.responses[args[0]]), nil
}

func (r *fakeRunner) count(cmd string) int {
	n := 0
	for _, c := range r.calls {
		if c[0] == cmd {
			n++
		}
	}
	return n
}

type fakeFetcher struct {
	urls []string
}

func (f *fakeFetcher) Spawn(url string, out chan<- artwork.Loaded) {
	f.urls = append(f.urls, url)
}

type fixture struct {
	model   Model
	runner  *fakeRunner
	fetcher *fakeFetcher
	clock   time.Time
}

func newFixture(t *testing.T, zonesJSON string) *fixture {
	t.Helper()
	f := &fixture{
		runner: &fakeRunner{
			responses: map[string]string{"zones": zonesJSON},
			errs:      map[string]error{},
		},
		fetcher: &fakeFetcher{},
		clock:   time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}

	state := app.New()
	state.SetClock(func() time.Time { return f.clock })
	handler := app.NewHandler(roon.NewClient(f.runner, zap.NewNop()), zap.NewNop())

	f.model = NewModel(state, handler, f.fetcher, DefaultOptions(), zap.NewNop())
	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	updated, cmd := f.model.Update(msg)
	f.model = updated.(Model)
	return cmd
}

func (f *fixture) key(r rune) tea.Cmd {
	if r == ' ' {
		return f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (f *fixture) screen() string {
	return ansi.Strip(f.model.View())
}

func TestNewModel_RefreshesOnStart(t *testing.T) {
	f := newFixture(t, zonesWithArt)

	if got := f.runner.count("zones"); got != 1 {
		t.Errorf("zones calls = %d, want 1", got)
	}
	if !f.model.App().Connected {
		t.Error("App().Connected = false after a successful refresh")
	}
	if got := f.model.App().CurrentZoneName(); got != "Kitchen" {
		t.Errorf("CurrentZoneName() = %q, want Kitchen", got)
	}
}

func TestUpdate_PollsAfterInterval(t *testing.T) {
	f := newFixture(t, zonesWithArt)

	f.clock = f.clock.Add(500 * time.Millisecond)
	f.send(tickMsg(f.clock))
	if got := f.runner.count("zones"); got != 1 {
		t.Fatalf("zones calls before interval = %d, want 1", got)
	}

	f.clock = f.clock.Add(500 * time.Millisecond)
	f.send(tickMsg(f.clock))
	if got := f.runner.count("zones"); got != 2 {
		t.Fatalf("zones calls after interval = %d, want 2", got)
	}

	f.clock = f.clock.Add(100 * time.Millisecond)
	f.send(tickMsg(f.clock))
	if got := f.runner.count("zones"); got != 2 {
		t.Errorf("poll timer was not reset: %d calls", got)
	}
}

func TestUpdate_PollTimerResetsOnFailure(t *testing.T) {
	f := newFixture(t, zonesWithArt)
	f.runner.errs["zones"] = errors.New("core unreachable")

	f.clock = f.clock.Add(time.Second)
	f.send(tickMsg(f.clock))
	if f.model.App().Connected {
		t.Error("Connected = true after a failed refresh")
	}

	f.clock = f.clock.Add(200 * time.Millisecond)
	f.send(tickMsg(f.clock))
	if got := f.runner.count("zones"); got != 2 {
		t.Errorf("zones calls = %d, want 2", got)
	}
}

func TestUpdate_TickRearms(t *testing.T) {
	f := newFixture(t, zonesWithArt)
	if cmd := f.send(tickMsg(f.clock)); cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestUpdate_SpawnsArtFetchOncePerURL(t *testing.T) {
	f := newFixture(t, zonesWithArt)

	// The window-size message already ran the post-event checks.
	if len(f.fetcher.urls) != 1 || f.fetcher.urls[0] != "http://core/art/1.jpg" {
		t.Fatalf("fetches = %v, want the Kitchen art", f.fetcher.urls)
	}
	if got := f.model.App().AlbumArtURL; got != "http://core/art/1.jpg" {
		t.Errorf("AlbumArtURL = %q", got)
	}

	f.send(tickMsg(f.clock))
	f.clock = f.clock.Add(time.Second)
	f.send(tickMsg(f.clock))
	if len(f.fetcher.urls) != 1 {
		t.Errorf("fetches = %v, want exactly one", f.fetcher.urls)
	}
}

func TestUpdate_ArtLoaded(t *testing.T) {
	f := newFixture(t, zonesWithArt)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	cmd := f.send(artLoadedMsg{Image: img, URL: "http://core/art/old.jpg"})
	if f.model.App().AlbumArt != nil {
		t.Error("stale image was applied")
	}
	if cmd == nil {
		t.Error("art receiver should be re-armed")
	}

	f.send(artLoadedMsg{Image: img, URL: "http://core/art/1.jpg"})
	if f.model.App().AlbumArt == nil {
		t.Error("current image was not applied")
	}
}

func TestUpdate_WaitForArtDeliversChannelValue(t *testing.T) {
	f := newFixture(t, zonesWithArt)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	f.model.art <- artwork.Loaded{Image: img, URL: "http://core/art/1.jpg"}
	msg := f.model.waitForArt()()

	loaded, ok := msg.(artLoadedMsg)
	if !ok {
		t.Fatalf("waitForArt() = %T, want artLoadedMsg", msg)
	}
	if loaded.URL != "http://core/art/1.jpg" || loaded.Image != image.Image(img) {
		t.Errorf("waitForArt() = %+v", loaded)
	}
}

func TestUpdate_ZoneSwitchRefetchesArt(t *testing.T) {
	f := newFixture(t, zonesWithArt)

	f.key('z')
	f.key('j')
	f.send(tea.KeyMsg{Type: tea.KeyEnter})

	if got := f.model.App().CurrentZoneName(); got != "Office" {
		t.Fatalf("CurrentZoneName() = %q, want Office", got)
	}
	if f.model.App().AlbumArtURL != "" {
		t.Error("art URL should be cleared for a zone with nothing playing")
	}

	f.key('z')
	f.key('k')
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	if len(f.fetcher.urls) != 2 {
		t.Errorf("fetches = %v, want the Kitchen art twice", f.fetcher.urls)
	}
}

func TestUpdate_KeysReachController(t *testing.T) {
	f := newFixture(t, zonesWithArt)

	f.key(' ')
	if got := f.runner.count("playpause"); got != 1 {
		t.Errorf("playpause calls = %d, want 1", got)
	}

	f.key('+')
	last := f.runner.calls[len(f.runner.calls)-2]
	if strings.Join(last, " ") != "volume +5 --output Kitchen DAC" {
		t.Errorf("volume args = %q", last)
	}
}

func TestUpdate_QuitReturnsTeaQuit(t *testing.T) {
	f := newFixture(t, zonesWithArt)

	cmd := f.key('q')
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit the program")
	}
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	f := newFixture(t, zonesWithArt)
	f.key('3')

	cmd := f.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit from search input")
	}
}

func TestNewModel_DefaultsOptions(t *testing.T) {
	runner := &fakeRunner{responses: map[string]string{"zones": "[]"}}
	handler := app.NewHandler(roon.NewClient(runner, nil), nil)

	m := NewModel(app.New(), handler, nil, Options{}, nil)
	if m.opts != DefaultOptions() {
		t.Errorf("opts = %+v, want defaults", m.opts)
	}
	if m.Init() == nil {
		t.Error("Init() returned no command")
	}
}

func TestView_ArtWithPicker(t *testing.T) {
	f := newFixture(t, zonesWithArt)
	f.model.App().ImageProtocol = artwork.NewPicker(termenv.TrueColor)
	f.send(artLoadedMsg{Image: image.NewRGBA(image.Rect(0, 0, 8, 8)), URL: "http://core/art/1.jpg"})

	screen := f.screen()
	if !strings.Contains(screen, "▀") {
		t.Error("album art was not drawn")
	}
	if strings.Contains(screen, artPlaceholder) {
		t.Error("placeholder shown alongside the art")
	}
}
