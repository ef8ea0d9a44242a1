package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	NowPlayingWidth  = 50 // width of the centered Now Playing block
	NowPlayingHeight = 29 // art + gap + 3 track lines + gap + time, gauge, icons, volume
	ArtRows          = 20 // rows reserved for album art
	ArtCols          = 40 // two pixels per row, so 40 columns keep the art square
	PopupPercent     = 60 // popup size as a percentage of the screen

	defaultWidth  = 80
	defaultHeight = 24
)

// Color palette
var (
	AccentColor  = lipgloss.Color("6") // Cyan
	CrumbColor   = lipgloss.Color("3") // Yellow
	SuccessColor = lipgloss.Color("2") // Green
	ErrorColor   = lipgloss.Color("1") // Red
	TextColor    = lipgloss.Color("7") // White
	SubtleColor  = lipgloss.Color("8") // Dark gray
	BarColor     = lipgloss.Color("8") // Dark gray
	PanelColor   = lipgloss.Color("0") // Black
)

// Common styles
var (
	// Tab bar
	TabBarStyle = lipgloss.NewStyle().
			Background(PanelColor)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Background(PanelColor).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Background(PanelColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(BarColor)

	ConnectedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Background(BarColor)

	DisconnectedStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Background(BarColor)

	ZoneNameStyle = lipgloss.NewStyle().
			Foreground(CrumbColor).
			Background(BarColor)

	StatusHintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Background(BarColor)

	// Now Playing
	TrackTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	ArtistStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Lists
	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(CrumbColor)

	ItemTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	// Search
	SearchActiveStyle = lipgloss.NewStyle().
				Foreground(AccentColor)

	SearchIdleStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// Popups
	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(TextColor).
			Padding(0, 1)

	PopupTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(CrumbColor).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	ZonePlayingStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	ZoneHighlightStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Background(BarColor).
				Bold(true)
)
