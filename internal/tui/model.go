package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/roon-tui/roon-tui/internal/app"
	"github.com/roon-tui/roon-tui/internal/artwork"
)

// Options tunes the event loop timing.
type Options struct {
	// PollInterval is the minimum time between zone refreshes
	PollInterval time.Duration
	// TickInterval is the redraw period that animates the progress bar
	TickInterval time.Duration
}

// DefaultOptions returns a 1s poll and a 50ms tick.
func DefaultOptions() Options {
	return Options{
		PollInterval: time.Second,
		TickInterval: 50 * time.Millisecond,
	}
}

// ArtFetcher starts an album-art download whose result is sent on out.
// *artwork.Fetcher implements it.
type ArtFetcher interface {
	Spawn(url string, out chan<- artwork.Loaded)
}

// Messages
type tickMsg time.Time

type artLoadedMsg artwork.Loaded

// Model is the bubbletea model for the player. It owns the App: every
// mutation happens inside Update, and fetch goroutines only ever send on
// the art channel.
type Model struct {
	app     *app.App
	handler *app.Handler
	disp    *app.Dispatcher
	fetcher ArtFetcher
	art     chan artwork.Loaded
	opts    Options
	logger  *zap.Logger
	ctx     context.Context

	lastPoll time.Time

	// UI state
	Width  int
	Height int

	Progress progress.Model
	Spinner  spinner.Model
	Help     help.Model
}

// NewModel creates the model and performs the initial zone refresh.
func NewModel(state *app.App, handler *app.Handler, fetcher ArtFetcher, opts Options, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := DefaultOptions()
	if opts.PollInterval <= 0 {
		opts.PollInterval = d.PollInterval
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = d.TickInterval
	}

	// Thin gauge, no label
	bar := progress.New(progress.WithSolidFill(string(AccentColor)), progress.WithoutPercentage())
	bar.Full = '━'
	bar.Empty = '─'
	bar.EmptyColor = string(BarColor)
	bar.Width = NowPlayingWidth

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	h := help.New()
	h.ShortSeparator = "  "

	m := Model{
		app:      state,
		handler:  handler,
		disp:     app.NewDispatcher(),
		fetcher:  fetcher,
		art:      make(chan artwork.Loaded, 1),
		opts:     opts,
		logger:   logger,
		ctx:      context.Background(),
		Progress: bar,
		Spinner:  s,
		Help:     h,
	}

	handler.Refresh(m.ctx, state)
	m.lastPoll = state.Now()
	return m
}

// App returns the state the model renders.
func (m Model) App() *app.App {
	return m.app
}

// Init starts the redraw timer, the spinner and the art receiver.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.Spinner.Tick, m.waitForArt())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForArt blocks until a fetch goroutine delivers an image.
func (m Model) waitForArt() tea.Cmd {
	ch := m.art
	return func() tea.Msg {
		return artLoadedMsg(<-ch)
	}
}

// Update applies one event, then runs the poll and album-art checks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width

	case tea.KeyMsg:
		action := m.disp.Dispatch(msg, m.app)
		if action.Type != app.ActionNone {
			m.logger.Debug("key", zap.String("key", msg.String()), zap.Stringer("action", action.Type))
		}
		m.handler.Handle(m.ctx, action, m.app)

	case tickMsg:
		cmds = append(cmds, m.tick())

	case artLoadedMsg:
		if !m.app.SetAlbumArt(msg.Image, msg.URL) {
			m.logger.Debug("dropped stale album art", zap.String("url", msg.URL))
		}
		cmds = append(cmds, m.waitForArt())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.pollZones()
	m.checkAlbumArt()

	if m.app.ShouldQuit {
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

// pollZones refreshes the zones once PollInterval has passed since the last
// attempt, whether or not that attempt succeeded.
func (m *Model) pollZones() {
	now := m.app.Now()
	if now.Sub(m.lastPoll) < m.opts.PollInterval {
		return
	}
	m.handler.Refresh(m.ctx, m.app)
	m.lastPoll = now
}

// checkAlbumArt starts a fetch when the active zone's art URL changes. The
// URL is recorded before the fetch so it is requested only once.
func (m *Model) checkAlbumArt() {
	url, ok := m.app.AlbumArtURLIfChanged()
	if !ok {
		return
	}
	m.app.AlbumArtURL = url
	if m.fetcher != nil {
		m.fetcher.Spawn(url, m.art)
	}
}
