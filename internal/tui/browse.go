package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/roon-tui/roon-tui/internal/app"
	"github.com/roon-tui/roon-tui/internal/roon"
)

// Row prefixes by item hint.
const (
	prefixList       = "> "
	prefixActionList = "▶ "
	prefixPlain      = "  "
	prefixSelected   = "▸ "
)

// renderBrowse draws breadcrumbs, the listing and the hints line.
func (m Model) renderBrowse(state *app.BrowseState, width, height int) string {
	if height < 3 {
		return BreadcrumbStyle.Render(ansi.Truncate(strings.Join(state.Breadcrumbs, " > "), width, "…"))
	}

	crumbs := BreadcrumbStyle.Render(ansi.Truncate(strings.Join(state.Breadcrumbs, " > "), width, "…"))
	listHeight := height - 2

	var body string
	switch {
	case state.Err != nil:
		return crumbs + "\n" + centered(ErrorTextStyle, errorLine(state.Err), width, listHeight)
	case state.Loading:
		return crumbs + "\n" + centered(MutedStyle, m.Spinner.View()+" Loading...", width, listHeight)
	case len(state.Items) == 0:
		body = centered(MutedStyle, "No items", width, listHeight)
	default:
		body = renderItems(state, width, listHeight)
	}

	hints := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(m.Help.ShortHelpView(m.disp.Keys.ShortHelp()))
	return crumbs + "\n" + body + "\n" + hints
}

// renderItems draws the visible window of the listing, scrolled so the
// selection stays on screen.
func renderItems(state *app.BrowseState, width, height int) string {
	start := scrollStart(state.SelectedIndex, len(state.Items), height)
	end := min(len(state.Items), start+height)

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		lines = append(lines, renderItem(state.Items[i], i == state.SelectedIndex, width))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func renderItem(item roon.BrowseItem, selected bool, width int) string {
	var indicator string
	switch item.HintValue() {
	case roon.HintList:
		indicator = prefixList
	case roon.HintActionList:
		indicator = prefixActionList
	default:
		indicator = prefixPlain
	}

	cursor := prefixPlain
	titleStyle := ItemTitleStyle
	if selected {
		cursor = prefixSelected
		titleStyle = SelectedItemStyle
	}

	avail := max(0, width-ansi.StringWidth(cursor+indicator))
	title := ansi.Truncate(item.Title, avail, "…")
	row := titleStyle.Render(cursor) + MutedStyle.Render(indicator) + titleStyle.Render(title)

	if sub := item.SubtitleValue(); sub != "" {
		if rest := avail - ansi.StringWidth(title) - 2; rest > 0 {
			row += "  " + MutedStyle.Render(ansi.Truncate(sub, rest, "…"))
		}
	}
	return row
}

// renderSearch draws the query line and then the results, or a prompt.
func (m Model) renderSearch(width, height int) string {
	s := &m.app.Search

	input := "Search: " + s.Query
	style := SearchIdleStyle
	if s.InputActive {
		input += "█"
		style = SearchActiveStyle
	}
	// Keep the cursor end of a long query visible.
	if ansi.StringWidth(input) > width {
		input = ansi.TruncateLeft(input, ansi.StringWidth(input)-width, "")
	}
	header := style.Render(input) + "\n"

	rest := max(0, height-2)
	switch {
	case len(s.Results.Items) > 0 || s.Results.Depth() > 1 || s.Results.Err != nil:
		return header + "\n" + m.renderBrowse(&s.Results, width, rest)
	case s.Query != "" && !s.InputActive:
		return header + "\n" + centered(MutedStyle, "No results found", width, rest)
	default:
		return header + "\n" + centered(MutedStyle, "Type a search query and press Enter", width, rest)
	}
}

// centered puts s on the first row of a width by height area, horizontally centered.
func centered(style lipgloss.Style, s string, width, height int) string {
	line := style.Width(width).Align(lipgloss.Center).Render(ansi.Truncate(s, width, "…"))
	if height <= 1 {
		return line
	}
	return line + strings.Repeat("\n", height-1)
}
