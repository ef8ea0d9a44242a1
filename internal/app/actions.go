package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/roon-tui/roon-tui/internal/roon"
)

// Volume steps sent to the controller.
const (
	VolumeStepUp   = "+5"
	VolumeStepDown = "-5"
)

// Controller is the command surface the handler drives. *roon.Client
// implements it.
type Controller interface {
	Zones(ctx context.Context) ([]roon.Zone, error)
	SetZone(ctx context.Context, name string) error
	PlayPause(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Shuffle(ctx context.Context, on bool) error
	SetLoop(ctx context.Context, mode roon.LoopMode) error
	Radio(ctx context.Context, on bool) error
	Volume(ctx context.Context, output, value string) error
	Mute(ctx context.Context, output string) error
	Unmute(ctx context.Context, output string) error
	Browse(ctx context.Context) (*roon.BrowseResult, error)
	Search(ctx context.Context, query string) (*roon.BrowseResult, error)
	Select(ctx context.Context, index int) (*roon.BrowseResult, error)
	Back(ctx context.Context) (*roon.BrowseResult, error)
}

// Handler applies actions to an App, calling the controller synchronously.
// Controller failures are logged and recorded on the affected state; they
// are never returned.
type Handler struct {
	ctrl   Controller
	logger *zap.Logger
}

// NewHandler creates a handler for ctrl.
func NewHandler(ctrl Controller, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		ctrl:   ctrl,
		logger: logger,
	}
}

// Refresh re-reads the zone list. On failure the app is marked disconnected
// and keeps its last known zones.
func (h *Handler) Refresh(ctx context.Context, a *App) {
	zones, err := h.ctrl.Zones(ctx)
	if err != nil {
		a.ApplyRefreshError(err)
		h.logger.Error("failed to get zones", zap.Error(err))
		return
	}
	a.ApplyZones(zones)
	h.logger.Debug("refreshed zones", zap.Int("count", len(zones)))
}

// Handle applies action to a.
func (h *Handler) Handle(ctx context.Context, action Action, a *App) {
	switch action.Type {
	case ActionNone:
	case ActionQuit:
		a.ShouldQuit = true
	case ActionShowHelp:
		a.ShowPopup(PopupHelp)
	case ActionShowZoneSelector:
		a.ShowPopup(PopupZoneSelector)
	case ActionClosePopup:
		a.ClosePopup()
	case ActionSelectUp:
		a.SelectUp()
	case ActionSelectDown:
		a.SelectDown()
	case ActionSelectZone:
		h.selectZone(ctx, a)

	case ActionPlayPause:
		h.transport(ctx, a, "toggle play/pause", h.ctrl.PlayPause)
	case ActionNextTrack:
		h.transport(ctx, a, "skip to next track", h.ctrl.Next)
	case ActionPrevTrack:
		h.transport(ctx, a, "skip to previous track", h.ctrl.Prev)
	case ActionToggleShuffle:
		on := !a.settings().Shuffle
		h.transport(ctx, a, "toggle shuffle", func(ctx context.Context) error {
			return h.ctrl.Shuffle(ctx, on)
		})
	case ActionCycleLoop:
		mode := a.settings().Loop.Next()
		h.transport(ctx, a, "cycle loop mode", func(ctx context.Context) error {
			return h.ctrl.SetLoop(ctx, mode)
		})
	case ActionToggleRadio:
		on := !a.settings().AutoRadio
		h.transport(ctx, a, "toggle radio", func(ctx context.Context) error {
			return h.ctrl.Radio(ctx, on)
		})
	case ActionVolumeUp:
		h.volume(ctx, a, VolumeStepUp)
	case ActionVolumeDown:
		h.volume(ctx, a, VolumeStepDown)
	case ActionToggleMute:
		h.toggleMute(ctx, a)

	case ActionSwitchToNowPlaying:
		a.View = ViewNowPlaying
	case ActionSwitchToBrowse:
		h.openBrowse(ctx, a)
	case ActionSwitchToSearch:
		a.View = ViewSearch
		a.Search.Reset()

	case ActionBrowseSelect:
		h.browseSelect(ctx, a)
	case ActionBrowseBack:
		h.browseBack(ctx, a)
	case ActionSearchChar:
		a.Search.Query += action.Text
	case ActionSearchBackspace:
		if r := []rune(a.Search.Query); len(r) > 0 {
			a.Search.Query = string(r[:len(r)-1])
		}
	case ActionSearchSubmit:
		h.searchSubmit(ctx, a)
	case ActionSearchActivate:
		a.Search.InputActive = true

	default:
		h.logger.Warn("unhandled action", zap.Stringer("action", action.Type))
	}
}

// transport runs a command that changes zone state, then refreshes.
func (h *Handler) transport(ctx context.Context, a *App, what string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		h.logger.Error("failed to "+what, zap.Error(err))
	}
	h.Refresh(ctx, a)
}

func (h *Handler) selectZone(ctx context.Context, a *App) {
	if name, ok := a.SelectedZoneName(); ok {
		if err := h.ctrl.SetZone(ctx, name); err != nil {
			h.logger.Error("failed to set zone", zap.String("zone", name), zap.Error(err))
		}
	}
	a.SelectZone()
	h.Refresh(ctx, a)
}

func (h *Handler) volume(ctx context.Context, a *App, step string) {
	out := a.FirstOutput()
	if out == nil {
		return
	}
	name := out.DisplayName
	h.transport(ctx, a, "change volume", func(ctx context.Context) error {
		return h.ctrl.Volume(ctx, name, step)
	})
}

func (h *Handler) toggleMute(ctx context.Context, a *App) {
	out := a.FirstOutput()
	if out == nil {
		return
	}
	name := out.DisplayName
	muted := out.Volume != nil && out.Volume.IsMuted
	h.transport(ctx, a, "toggle mute", func(ctx context.Context) error {
		if muted {
			return h.ctrl.Unmute(ctx, name)
		}
		return h.ctrl.Mute(ctx, name)
	})
}

func (h *Handler) openBrowse(ctx context.Context, a *App) {
	a.View = ViewBrowse
	a.Browse.Reset()
	a.Browse.Loading = true

	result, err := h.ctrl.Browse(ctx)
	if err != nil {
		a.Browse.Loading = false
		a.Browse.Err = err
		h.logger.Error("failed to browse library", zap.Error(err))
		return
	}
	a.Browse.setListing(result.Items)
	a.Browse.setRoot(result.TitleOr(LibraryRoot))
}

// activeList returns the listing BrowseSelect and BrowseBack act on.
func (a *App) activeList() *BrowseState {
	switch a.View {
	case ViewBrowse:
		return &a.Browse
	case ViewSearch:
		return &a.Search.Results
	}
	return nil
}

func (h *Handler) browseSelect(ctx context.Context, a *App) {
	list := a.activeList()
	if list == nil {
		return
	}
	item := list.SelectedItem()
	if item == nil {
		return
	}
	title := item.Title

	result, err := h.ctrl.Select(ctx, list.SelectedIndex)
	if err != nil {
		list.Err = err
		h.logger.Error("failed to select item", zap.String("item", title), zap.Error(err))
		return
	}

	if result.IsMessage() {
		h.logger.Debug("play action executed", zap.String("item", title))
		a.View = ViewNowPlaying
		h.Refresh(ctx, a)
		return
	}

	list.push(title)
	if result.Title != nil {
		list.renameTop(*result.Title)
	}
	list.setListing(result.Items)
}

func (h *Handler) browseBack(ctx context.Context, a *App) {
	if a.View == ViewSearch && a.Search.InputActive {
		a.View = ViewNowPlaying
		return
	}
	list := a.activeList()
	if list == nil {
		return
	}
	if list.Depth() <= 1 {
		a.View = ViewNowPlaying
		return
	}

	result, err := h.ctrl.Back(ctx)
	if err != nil {
		h.logger.Error("failed to go back", zap.Error(err))
		a.View = ViewNowPlaying
		return
	}
	list.pop()
	list.setListing(result.Items)
}

func (h *Handler) searchSubmit(ctx context.Context, a *App) {
	query := a.Search.Query
	if query == "" {
		return
	}

	result, err := h.ctrl.Search(ctx, query)
	if err != nil {
		a.Search.Results.Err = err
		a.Search.InputActive = false
		h.logger.Error("failed to search", zap.String("query", query), zap.Error(err))
		return
	}
	a.Search.Results.setListing(result.Items)
	a.Search.Results.setRoot(result.TitleOr(SearchRoot))
	a.Search.InputActive = false
}
