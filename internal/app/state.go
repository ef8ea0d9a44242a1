package app

import (
	"fmt"
	"image"
	"time"

	"github.com/roon-tui/roon-tui/internal/artwork"
	"github.com/roon-tui/roon-tui/internal/roon"
)

// View is the active tab.
type View int

const (
	ViewNowPlaying View = iota
	ViewBrowse
	ViewSearch
)

// String returns the tab label.
func (v View) String() string {
	switch v {
	case ViewNowPlaying:
		return "Now Playing"
	case ViewBrowse:
		return "Browse"
	case ViewSearch:
		return "Search"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Popup is a modal overlay. PopupNone means no popup is open.
type Popup int

const (
	PopupNone Popup = iota
	PopupHelp
	PopupZoneSelector
)

// Breadcrumb roots.
const (
	LibraryRoot = "Library"
	SearchRoot  = "Search"
)

// NoZoneName is shown when there is no active zone.
const NoZoneName = "No Zone"

// BrowseState is one navigable listing plus the path that led to it.
// Breadcrumbs always holds at least the root label.
type BrowseState struct {
	Items         []roon.BrowseItem
	SelectedIndex int
	Breadcrumbs   []string
	Loading       bool
	Err           error

	root string
}

// NewBrowseState returns an empty listing rooted at root.
func NewBrowseState(root string) BrowseState {
	return BrowseState{
		Breadcrumbs: []string{root},
		root:        root,
	}
}

// Reset clears the listing back to its root.
func (b *BrowseState) Reset() {
	*b = NewBrowseState(b.root)
}

// SelectUp moves the selection up, stopping at the first item.
func (b *BrowseState) SelectUp() {
	if b.SelectedIndex > 0 {
		b.SelectedIndex--
	}
}

// SelectDown moves the selection down, stopping at the last item.
func (b *BrowseState) SelectDown() {
	if b.SelectedIndex+1 < len(b.Items) {
		b.SelectedIndex++
	}
}

// SelectedItem returns the highlighted item, or nil for an empty listing.
func (b *BrowseState) SelectedItem() *roon.BrowseItem {
	if b.SelectedIndex < 0 || b.SelectedIndex >= len(b.Items) {
		return nil
	}
	return &b.Items[b.SelectedIndex]
}

// Depth returns the number of breadcrumbs.
func (b *BrowseState) Depth() int {
	return len(b.Breadcrumbs)
}

// setListing replaces the items and moves the selection to the top.
func (b *BrowseState) setListing(items []roon.BrowseItem) {
	b.Items = items
	b.SelectedIndex = 0
	b.Loading = false
	b.Err = nil
}

// setRoot discards the path and starts a new one at label.
func (b *BrowseState) setRoot(label string) {
	b.Breadcrumbs = []string{label}
}

// push appends a crumb.
func (b *BrowseState) push(label string) {
	b.Breadcrumbs = append(b.Breadcrumbs, label)
}

// renameTop replaces the most recent crumb.
func (b *BrowseState) renameTop(label string) {
	b.Breadcrumbs[len(b.Breadcrumbs)-1] = label
}

// pop removes the most recent crumb, never the root.
func (b *BrowseState) pop() {
	if len(b.Breadcrumbs) > 1 {
		b.Breadcrumbs = b.Breadcrumbs[:len(b.Breadcrumbs)-1]
	}
}

// SearchState is the query line and the results listing it produced.
type SearchState struct {
	Query       string
	InputActive bool
	Results     BrowseState
}

// NewSearchState returns an empty search in typing mode.
func NewSearchState() SearchState {
	return SearchState{
		InputActive: true,
		Results:     NewBrowseState(SearchRoot),
	}
}

// Reset clears the query and results and returns to typing mode.
func (s *SearchState) Reset() {
	*s = NewSearchState()
}

// App is the whole in-memory state of the UI. It is mutated only by the
// event loop.
type App struct {
	ShouldQuit bool
	View       View
	Popup      Popup

	Connected bool
	Err       error

	Zones             []roon.Zone
	SelectedZoneIndex int
	ZoneSelectorIndex int

	AlbumArt    image.Image
	AlbumArtURL string

	// ImageProtocol renders album art; nil when the terminal cannot show images.
	ImageProtocol *artwork.Picker

	Browse BrowseState
	Search SearchState

	lastRefresh time.Time
	now         func() time.Time
}

// New returns the initial state: Now Playing view, no zones, disconnected.
func New() *App {
	return &App{
		View:   ViewNowPlaying,
		Browse: NewBrowseState(LibraryRoot),
		Search: NewSearchState(),
		now:    time.Now,
	}
}

// SetClock replaces the time source used for progress interpolation.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// Now returns the current time from the app clock.
func (a *App) Now() time.Time {
	return a.now()
}

// MarkRefreshed records that zone state was just sampled.
func (a *App) MarkRefreshed() {
	a.lastRefresh = a.now()
}

// LastRefresh returns the time of the last successful zone refresh.
func (a *App) LastRefresh() time.Time {
	return a.lastRefresh
}

// ApplyZones installs a fresh zone list and clamps the zone indexes to it.
func (a *App) ApplyZones(zones []roon.Zone) {
	a.Zones = zones
	a.Connected = true
	a.Err = nil
	a.SelectedZoneIndex = clampIndex(a.SelectedZoneIndex, len(zones))
	a.ZoneSelectorIndex = clampIndex(a.ZoneSelectorIndex, len(zones))
	a.MarkRefreshed()
}

// ApplyRefreshError records a failed zone refresh. The previous zone list is kept.
func (a *App) ApplyRefreshError(err error) {
	a.Connected = false
	a.Err = err
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// CurrentZone returns the active zone, or nil if there are no zones.
func (a *App) CurrentZone() *roon.Zone {
	if a.SelectedZoneIndex < 0 || a.SelectedZoneIndex >= len(a.Zones) {
		return nil
	}
	return &a.Zones[a.SelectedZoneIndex]
}

// CurrentZoneName returns the active zone's display name or NoZoneName.
func (a *App) CurrentZoneName() string {
	if z := a.CurrentZone(); z != nil {
		return z.DisplayName
	}
	return NoZoneName
}

// FirstOutput returns the first output of the active zone, or nil.
func (a *App) FirstOutput() *roon.Output {
	return a.CurrentZone().FirstOutput()
}

func (a *App) nowPlaying() *roon.NowPlaying {
	if z := a.CurrentZone(); z != nil {
		return z.NowPlaying
	}
	return nil
}

func (a *App) settings() roon.ZoneSettings {
	if z := a.CurrentZone(); z != nil {
		return z.Settings
	}
	return roon.ZoneSettings{Loop: roon.LoopDisabled}
}

// PlaybackState returns the active zone's state; stopped when there is none.
func (a *App) PlaybackState() roon.PlaybackState {
	if z := a.CurrentZone(); z != nil {
		return roon.ParsePlaybackState(string(z.State))
	}
	return roon.StateStopped
}

// PlaybackIcon returns the glyph for the playback state.
func (a *App) PlaybackIcon() string {
	switch a.PlaybackState() {
	case roon.StatePlaying:
		return "▶"
	case roon.StatePaused:
		return "⏸"
	case roon.StateLoading:
		return "⏳"
	default:
		return "⏹"
	}
}

// Absent indicators are two spaces so the icon row keeps its alignment.
const blankIcon = "  "

// ShuffleIcon returns 🔀 when shuffle is on.
func (a *App) ShuffleIcon() string {
	if a.settings().Shuffle {
		return "🔀"
	}
	return blankIcon
}

// LoopIcon returns 🔁 for loop and 🔂 for loop_one.
func (a *App) LoopIcon() string {
	switch a.settings().Loop {
	case roon.LoopAll:
		return "🔁"
	case roon.LoopOne:
		return "🔂"
	default:
		return blankIcon
	}
}

// RadioIcon returns 📻 when auto-radio is on.
func (a *App) RadioIcon() string {
	if a.settings().AutoRadio {
		return "📻"
	}
	return blankIcon
}

// VolumeDisplay describes the first output's volume.
func (a *App) VolumeDisplay() string {
	out := a.FirstOutput()
	if out == nil || out.Volume == nil {
		return "🔊 --"
	}
	if out.Volume.IsMuted {
		return "🔇 Muted"
	}
	return fmt.Sprintf("🔊 %.0f%%", out.Volume.Value)
}

// InterpolatedSeek estimates the current position. While playing it advances
// with wall-clock time since the last refresh, capped at the track length.
func (a *App) InterpolatedSeek() float64 {
	z := a.CurrentZone()
	if z == nil || z.NowPlaying == nil {
		return 0
	}
	np := z.NowPlaying
	if roon.ParsePlaybackState(string(z.State)) != roon.StatePlaying {
		return np.SeekPosition
	}
	elapsed := a.now().Sub(a.lastRefresh).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return min(np.SeekPosition+elapsed, np.Length)
}

// ProgressRatio is the interpolated position over the length, in [0, 1].
// It is 0 when the length is unknown.
func (a *App) ProgressRatio() float64 {
	np := a.nowPlaying()
	if np == nil || np.Length <= 0 {
		return 0
	}
	return max(0, min(a.InterpolatedSeek()/np.Length, 1))
}

// ProgressDisplay returns "mm:ss / mm:ss".
func (a *App) ProgressDisplay() string {
	np := a.nowPlaying()
	if np == nil {
		return "00:00 / 00:00"
	}
	return roon.FormatDuration(a.InterpolatedSeek()) + " / " + roon.FormatDuration(np.Length)
}

// TrackInfo returns the track title, artist and album.
func (a *App) TrackInfo() (track, artist, album string) {
	np := a.nowPlaying()
	if np == nil {
		return "No track playing", "", ""
	}
	return np.Track, np.Artist, np.Album
}

// AlbumArtURLIfChanged returns the active zone's art URL when it differs from
// the cached one.
func (a *App) AlbumArtURLIfChanged() (string, bool) {
	url := a.nowPlaying().ArtURL()
	if url == "" || url == a.AlbumArtURL {
		return "", false
	}
	return url, true
}

// SetAlbumArt installs a decoded image. Images for any URL other than the
// cached one are stale and dropped; the return value reports whether img was used.
func (a *App) SetAlbumArt(img image.Image, url string) bool {
	if url != a.AlbumArtURL {
		return false
	}
	a.AlbumArt = img
	return true
}

// ClearAlbumArt forgets the image and its URL so the next poll refetches.
func (a *App) ClearAlbumArt() {
	a.AlbumArt = nil
	a.AlbumArtURL = ""
}

// ShowPopup opens p. The zone selector starts on the active zone.
func (a *App) ShowPopup(p Popup) {
	if p == PopupZoneSelector {
		a.ZoneSelectorIndex = a.SelectedZoneIndex
	}
	a.Popup = p
}

// ClosePopup closes any open popup.
func (a *App) ClosePopup() {
	a.Popup = PopupNone
}

// focusedList returns the listing that SelectUp and SelectDown act on outside
// of popups, or nil in Now Playing and in search typing mode.
func (a *App) focusedList() *BrowseState {
	switch a.View {
	case ViewBrowse:
		return &a.Browse
	case ViewSearch:
		if !a.Search.InputActive {
			return &a.Search.Results
		}
	}
	return nil
}

// SelectUp moves the selection in the focused list.
func (a *App) SelectUp() {
	switch a.Popup {
	case PopupZoneSelector:
		if a.ZoneSelectorIndex > 0 {
			a.ZoneSelectorIndex--
		}
		return
	case PopupHelp:
		return
	}
	if list := a.focusedList(); list != nil {
		list.SelectUp()
	}
}

// SelectDown moves the selection in the focused list.
func (a *App) SelectDown() {
	switch a.Popup {
	case PopupZoneSelector:
		if a.ZoneSelectorIndex+1 < len(a.Zones) {
			a.ZoneSelectorIndex++
		}
		return
	case PopupHelp:
		return
	}
	if list := a.focusedList(); list != nil {
		list.SelectDown()
	}
}

// SelectedZoneName returns the name of the zone highlighted in the selector.
func (a *App) SelectedZoneName() (string, bool) {
	if a.ZoneSelectorIndex < 0 || a.ZoneSelectorIndex >= len(a.Zones) {
		return "", false
	}
	return a.Zones[a.ZoneSelectorIndex].DisplayName, true
}

// SelectZone commits the selector index as the active zone, clears the art
// of the previous zone and closes the popup.
func (a *App) SelectZone() {
	if a.ZoneSelectorIndex < 0 || a.ZoneSelectorIndex >= len(a.Zones) {
		return
	}
	a.SelectedZoneIndex = a.ZoneSelectorIndex
	a.ClearAlbumArt()
	a.ClosePopup()
}
