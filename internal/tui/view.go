package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/roon-tui/roon-tui/internal/app"
	"github.com/roon-tui/roon-tui/internal/roon"
)

var tabs = []struct {
	key  string
	view app.View
}{
	{"1", app.ViewNowPlaying},
	{"2", app.ViewBrowse},
	{"3", app.ViewSearch},
}

// View draws the tab bar, the active view, the status bar and any popup.
func (m Model) View() string {
	width, height := m.size()
	contentHeight := max(0, height-2)

	var content string
	if m.app.Popup != app.PopupNone {
		content = lipgloss.Place(width, contentHeight, lipgloss.Center, lipgloss.Center,
			m.renderPopup(width, height))
	} else {
		switch m.app.View {
		case app.ViewBrowse:
			content = m.renderBrowse(&m.app.Browse, width, contentHeight)
		case app.ViewSearch:
			content = m.renderSearch(width, contentHeight)
		default:
			content = m.renderNowPlaying(width, contentHeight)
		}
	}
	content = fitBlock(content, width, contentHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabBar(width),
		content,
		m.renderStatusBar(width),
	)
}

func (m Model) size() (int, int) {
	w, h := m.Width, m.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) renderTabBar(width int) string {
	var b strings.Builder
	for _, t := range tabs {
		style := InactiveTabStyle
		if t.view == m.app.View {
			style = ActiveTabStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("[%s] %s  ", t.key, t.view)))
	}
	return TabBarStyle.Width(width).MaxWidth(width).Render(b.String())
}

// renderStatusBar draws connection state and zone on the left (70%) and the
// help hint on the right (30%).
func (m Model) renderStatusBar(width int) string {
	var conn string
	if m.app.Connected {
		conn = ConnectedStyle.Render("● Connected")
	} else {
		conn = DisconnectedStyle.Render("○ Disconnected")
	}

	detail := " │ Zone: " + m.app.CurrentZoneName()
	if !m.app.Connected && m.app.Err != nil {
		detail = " │ " + errorLine(m.app.Err)
	}

	leftWidth := width * 70 / 100
	rightWidth := width - leftWidth

	left := conn + ZoneNameStyle.Render(detail)
	left = StatusBarStyle.Width(leftWidth).MaxWidth(leftWidth).Render(ansi.Truncate(left, leftWidth, "…"))
	right := StatusBarStyle.Width(rightWidth).MaxWidth(rightWidth).Align(lipgloss.Right).
		Render(StatusHintStyle.Render(ansi.Truncate(" │ Press ? for help", rightWidth, "")))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// errorLine flattens an error to a single line.
func errorLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}

// fitBlock pads or cuts s to exactly height lines of at most width cells.
func fitBlock(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPopup(width, height int) string {
	w := max(20, width*PopupPercent/100)
	h := max(6, height*PopupPercent/100)

	var title, body string
	switch m.app.Popup {
	case app.PopupHelp:
		title, body = " Help - Keybindings ", m.renderHelp(w-4, h-2)
	case app.PopupZoneSelector:
		title, body = " Select Zone ", m.renderZoneSelector(w-4, h-2)
	}

	// Border and padding take two columns on each side.
	inner := fitBlock(body, w-4, h-2)
	box := PopupStyle.Width(w - 2).Height(h - 2).Render(inner)
	return setBorderTitle(box, PopupTitleStyle.Render(title))
}

// setBorderTitle writes title into the top border of box, after the corner.
func setBorderTitle(box, title string) string {
	lines := strings.SplitN(box, "\n", 2)
	top := lines[0]
	topWidth := ansi.StringWidth(top)
	titleWidth := ansi.StringWidth(title)
	if titleWidth+2 > topWidth {
		return box
	}
	top = ansi.Truncate(top, 1, "") + title + ansi.TruncateLeft(top, 1+titleWidth, "")
	if len(lines) == 1 {
		return top
	}
	return top + "\n" + lines[1]
}

// helpKeyWidth is the padded width of the key column in the help popup.
const helpKeyWidth = 12

// renderHelp lists the bindings by section. When the popup is wide enough the
// sections are split over two columns so all of them fit.
func (m Model) renderHelp(width, height int) string {
	keys := m.disp.Keys

	var sections [][]string
	colWidth := 0
	for i, group := range keys.FullHelp() {
		lines := []string{SectionStyle.Render(app.HelpSectionTitles[i])}
		for _, b := range group {
			h := b.Help()
			lines = append(lines, HelpKeyStyle.Render(fmt.Sprintf("%-*s", helpKeyWidth, h.Key))+ItemTitleStyle.Render(h.Desc))
			colWidth = max(colWidth, helpKeyWidth+ansi.StringWidth(h.Desc))
		}
		sections = append(sections, lines)
	}

	var lines []string
	if half := (len(sections) + 1) / 2; width >= 2*colWidth+2 {
		left := joinSections(sections[:half])
		right := joinSections(sections[half:])
		body := lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(colWidth+2).Render(strings.Join(left, "\n")),
			strings.Join(right, "\n"))
		lines = strings.Split(body, "\n")
	} else {
		lines = joinSections(sections)
	}

	// Close hint sits on the last inner row.
	rows := max(0, height-1)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	hint := MutedStyle.Width(width).Align(lipgloss.Center).Render("Press Esc or ? to close")
	return strings.Join(append(lines, hint), "\n")
}

// joinSections concatenates sections with a blank line between them.
func joinSections(sections [][]string) []string {
	var out []string
	for i, s := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s...)
	}
	return out
}

func (m Model) renderZoneSelector(width, height int) string {
	a := m.app
	if len(a.Zones) == 0 {
		center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(SubtleColor)
		return strings.Join([]string{
			"",
			center.Render("No zones available"),
			"",
			center.Render("Check Roon Core connection"),
		}, "\n")
	}

	var lines []string
	for i, zone := range a.Zones {
		prefix := "○ "
		if i == a.SelectedZoneIndex {
			prefix = "● "
		}
		status := "  "
		if zone.State == roon.StatePlaying {
			status = "▶ "
		}
		style := ItemTitleStyle
		if i == a.ZoneSelectorIndex {
			style = ZoneHighlightStyle
		}
		name := ansi.Truncate(zone.DisplayName, max(0, width-4), "…")
		lines = append(lines, style.Render(prefix)+ZonePlayingStyle.Render(status)+style.Render(name))
	}
	start := scrollStart(a.ZoneSelectorIndex, len(lines), height)
	return strings.Join(lines[start:min(len(lines), start+height)], "\n")
}

// scrollStart returns the first visible row of a list of n rows shown in a
// viewport of height rows, keeping selected visible.
func scrollStart(selected, n, height int) int {
	if height <= 0 || n <= height {
		return 0
	}
	start := selected - height + 1
	if start < 0 {
		start = 0
	}
	if start > n-height {
		start = n - height
	}
	return start
}
