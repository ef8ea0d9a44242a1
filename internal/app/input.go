package app

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionType tags what a keystroke asks for.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionQuit
	ActionShowHelp
	ActionShowZoneSelector
	ActionClosePopup
	ActionSelectUp
	ActionSelectDown
	ActionSelectZone
	ActionPlayPause
	ActionNextTrack
	ActionPrevTrack
	ActionToggleShuffle
	ActionCycleLoop
	ActionToggleRadio
	ActionVolumeUp
	ActionVolumeDown
	ActionToggleMute
	ActionSwitchToNowPlaying
	ActionSwitchToBrowse
	ActionSwitchToSearch
	ActionBrowseSelect
	ActionBrowseBack
	ActionSearchChar
	ActionSearchBackspace
	ActionSearchSubmit
	ActionSearchActivate
)

var actionNames = map[ActionType]string{
	ActionNone:               "None",
	ActionQuit:               "Quit",
	ActionShowHelp:           "ShowHelp",
	ActionShowZoneSelector:   "ShowZoneSelector",
	ActionClosePopup:         "ClosePopup",
	ActionSelectUp:           "SelectUp",
	ActionSelectDown:         "SelectDown",
	ActionSelectZone:         "SelectZone",
	ActionPlayPause:          "PlayPause",
	ActionNextTrack:          "NextTrack",
	ActionPrevTrack:          "PrevTrack",
	ActionToggleShuffle:      "ToggleShuffle",
	ActionCycleLoop:          "CycleLoop",
	ActionToggleRadio:        "ToggleRadio",
	ActionVolumeUp:           "VolumeUp",
	ActionVolumeDown:         "VolumeDown",
	ActionToggleMute:         "ToggleMute",
	ActionSwitchToNowPlaying: "SwitchToNowPlaying",
	ActionSwitchToBrowse:     "SwitchToBrowse",
	ActionSwitchToSearch:     "SwitchToSearch",
	ActionBrowseSelect:       "BrowseSelect",
	ActionBrowseBack:         "BrowseBack",
	ActionSearchChar:         "SearchChar",
	ActionSearchBackspace:    "SearchBackspace",
	ActionSearchSubmit:       "SearchSubmit",
	ActionSearchActivate:     "SearchActivate",
}

// String returns the action name
func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Action is the result of dispatching one keystroke. Text is set only for
// ActionSearchChar.
type Action struct {
	Type ActionType
	Text string
}

func act(t ActionType) Action {
	return Action{Type: t}
}

// KeyMap holds every binding the dispatcher recognises. Help text on each
// binding feeds the help popup and hint lines.
type KeyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	Zones      key.Binding
	PlayPause  key.Binding
	Next       key.Binding
	Prev       key.Binding
	Shuffle    key.Binding
	Loop       key.Binding
	Radio      key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding
	NowPlaying key.Binding
	Browse     key.Binding
	Search     key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// Search and popups
	NewSearch   key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	DeleteChar  key.Binding
	CloseHelp   key.Binding
	CloseZones  key.Binding
	ConfirmZone key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Show / hide help")),
		Zones:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "Select zone")),
		PlayPause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("Space", "Play / Pause")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "Next track")),
		Prev:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "Previous track")),
		Shuffle:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Toggle shuffle")),
		Loop:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "Cycle loop mode")),
		Radio:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Toggle radio")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+ / =", "Volume up")),
		VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "Volume down")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Toggle mute")),
		NowPlaying: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Now Playing view")),
		Browse:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Browse library")),
		Search:     key.NewBinding(key.WithKeys("3", "/"), key.WithHelp("3 / /", "Search library")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "Navigate up / down")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "Navigate up / down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select / drill in")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace", "h"), key.WithHelp("Esc/Bksp", "Go back")),

		NewSearch:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "New search")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Search")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Cancel")),
		DeleteChar:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("Bksp", "Delete")),
		CloseHelp:   key.NewBinding(key.WithKeys("esc", "q", "?"), key.WithHelp("Esc/?", "Close")),
		CloseZones:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Close")),
		ConfirmZone: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select zone")),
	}
}

// ShortHelp returns the hints shown under browse and search listings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		withHelp(k.Down, "j/k", "navigate"),
		withHelp(k.Select, "Enter", "select"),
		withHelp(k.Back, "Esc", "back"),
	}
}

// FullHelp returns the binding groups shown in the help popup, one per
// HelpSectionTitles entry.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NowPlaying, k.Browse, k.Search, k.Zones, k.Help, k.Quit},
		{k.PlayPause, k.Next, k.Prev, k.Shuffle, k.Loop, k.Radio},
		{k.VolumeUp, k.VolumeDown, k.Mute},
		{k.Down, k.Select, k.Back, k.NewSearch},
	}
}

func withHelp(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}

// HelpSectionTitles names the FullHelp groups.
var HelpSectionTitles = []string{"Navigation", "Playback", "Volume", "Browse / Search"}

// Dispatcher maps keystrokes to actions. It has no side effects.
type Dispatcher struct {
	Keys KeyMap
}

// NewDispatcher returns a dispatcher with the default key map.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{Keys: DefaultKeyMap()}
}

// Dispatch returns the action for msg given the current state. Popups take
// keys first, then ctrl+c, then the active view.
func (d *Dispatcher) Dispatch(msg tea.KeyMsg, a *App) Action {
	msg = normalizeKey(msg)

	switch a.Popup {
	case PopupHelp:
		return d.helpPopup(msg)
	case PopupZoneSelector:
		return d.zonePopup(msg)
	}

	if key.Matches(msg, d.Keys.ForceQuit) {
		return act(ActionQuit)
	}

	switch a.View {
	case ViewBrowse:
		return d.browse(msg)
	case ViewSearch:
		if a.Search.InputActive {
			return d.searchInput(msg)
		}
		return d.searchResults(msg)
	default:
		return d.nowPlaying(msg)
	}
}

// normalizeKey drops modifiers no binding distinguishes: alt, ctrl on a
// letter and shift or ctrl on an arrow. ctrl+c stays as is, and so do ctrl+h,
// ctrl+i, ctrl+j and ctrl+m since terminals send them for Backspace, Tab and
// Enter.
func normalizeKey(msg tea.KeyMsg) tea.KeyMsg {
	msg.Alt = false

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlH, tea.KeyCtrlI, tea.KeyCtrlJ, tea.KeyCtrlM:
		return msg
	case tea.KeyShiftUp, tea.KeyCtrlUp, tea.KeyCtrlShiftUp:
		msg.Type = tea.KeyUp
		return msg
	case tea.KeyShiftDown, tea.KeyCtrlDown, tea.KeyCtrlShiftDown:
		msg.Type = tea.KeyDown
		return msg
	}

	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		msg.Runes = []rune{'a' + rune(msg.Type-tea.KeyCtrlA)}
		msg.Type = tea.KeyRunes
	}
	return msg
}

func (d *Dispatcher) helpPopup(msg tea.KeyMsg) Action {
	if key.Matches(msg, d.Keys.CloseHelp) {
		return act(ActionClosePopup)
	}
	return act(ActionNone)
}

func (d *Dispatcher) zonePopup(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, d.Keys.CloseZones):
		return act(ActionClosePopup)
	case key.Matches(msg, d.Keys.Down):
		return act(ActionSelectDown)
	case key.Matches(msg, d.Keys.Up):
		return act(ActionSelectUp)
	case key.Matches(msg, d.Keys.ConfirmZone):
		return act(ActionSelectZone)
	}
	return act(ActionNone)
}

// global handles the bindings shared by every non-typing view. Listings do
// not bind s, l and r, so they pass settings=false.
func (d *Dispatcher) global(msg tea.KeyMsg, settings bool) Action {
	k := d.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return act(ActionQuit)
	case key.Matches(msg, k.Help):
		return act(ActionShowHelp)
	case key.Matches(msg, k.Zones):
		return act(ActionShowZoneSelector)
	case key.Matches(msg, k.PlayPause):
		return act(ActionPlayPause)
	case key.Matches(msg, k.Next):
		return act(ActionNextTrack)
	case key.Matches(msg, k.Prev):
		return act(ActionPrevTrack)
	case settings && key.Matches(msg, k.Shuffle):
		return act(ActionToggleShuffle)
	case settings && key.Matches(msg, k.Loop):
		return act(ActionCycleLoop)
	case settings && key.Matches(msg, k.Radio):
		return act(ActionToggleRadio)
	case key.Matches(msg, k.VolumeUp):
		return act(ActionVolumeUp)
	case key.Matches(msg, k.VolumeDown):
		return act(ActionVolumeDown)
	case key.Matches(msg, k.Mute):
		return act(ActionToggleMute)
	case key.Matches(msg, k.NowPlaying):
		return act(ActionSwitchToNowPlaying)
	case key.Matches(msg, k.Browse):
		return act(ActionSwitchToBrowse)
	case key.Matches(msg, k.Search):
		return act(ActionSwitchToSearch)
	}
	return act(ActionNone)
}

func (d *Dispatcher) nowPlaying(msg tea.KeyMsg) Action {
	return d.global(msg, true)
}

func (d *Dispatcher) browse(msg tea.KeyMsg) Action {
	k := d.Keys
	switch {
	case key.Matches(msg, k.Down):
		return act(ActionSelectDown)
	case key.Matches(msg, k.Up):
		return act(ActionSelectUp)
	case key.Matches(msg, k.Select):
		return act(ActionBrowseSelect)
	case key.Matches(msg, k.Back):
		return act(ActionBrowseBack)
	}
	return d.global(msg, false)
}

func (d *Dispatcher) searchResults(msg tea.KeyMsg) Action {
	if key.Matches(msg, d.Keys.NewSearch) {
		return act(ActionSearchActivate)
	}
	return d.browse(msg)
}

func (d *Dispatcher) searchInput(msg tea.KeyMsg) Action {
	k := d.Keys
	switch {
	case key.Matches(msg, k.Cancel):
		return act(ActionBrowseBack)
	case key.Matches(msg, k.Submit):
		return act(ActionSearchSubmit)
	case key.Matches(msg, k.DeleteChar):
		return act(ActionSearchBackspace)
	}

	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return act(ActionNone)
	}
	for _, r := range msg.Runes {
		if !unicode.IsPrint(r) {
			return act(ActionNone)
		}
	}
	if len(msg.Runes) == 0 {
		return act(ActionNone)
	}
	return Action{Type: ActionSearchChar, Text: string(msg.Runes)}
}
