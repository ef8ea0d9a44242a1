package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const artPlaceholder = "♪ ♫ ♪"

// renderNowPlaying centers the fixed-size Now Playing block in the content area.
func (m Model) renderNowPlaying(width, height int) string {
	a := m.app
	w := min(NowPlayingWidth, width)

	line := func(style lipgloss.Style, s string) string {
		return style.Width(w).Align(lipgloss.Center).Render(ansi.Truncate(s, w, "…"))
	}

	title, artist, album := a.TrackInfo()

	bar := m.Progress
	bar.Width = w

	rows := []string{
		m.renderArt(w),
		"",
		line(TrackTitleStyle, title),
		line(ArtistStyle, artist),
		line(MutedStyle, album),
		"",
		line(MutedStyle, a.ProgressDisplay()),
		bar.ViewAs(a.ProgressRatio()),
		line(MutedStyle, fmt.Sprintf("%s %s %s %s", a.PlaybackIcon(), a.ShuffleIcon(), a.LoopIcon(), a.RadioIcon())),
		line(MutedStyle, a.VolumeDisplay()),
	}
	block := lipgloss.JoinVertical(lipgloss.Center, rows...)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// renderArt draws the album art, or a placeholder when there is no image or
// the terminal cannot show one.
func (m Model) renderArt(width int) string {
	a := m.app
	if a.AlbumArt != nil && a.ImageProtocol != nil {
		art := a.ImageProtocol.Render(a.AlbumArt, min(ArtCols, width), ArtRows)
		return lipgloss.Place(width, ArtRows, lipgloss.Center, lipgloss.Center, art)
	}
	return lipgloss.Place(width, ArtRows, lipgloss.Center, lipgloss.Center, MutedStyle.Render(artPlaceholder))
}
