// Package tui runs the player as a Bubble Tea program.
//
// Model wraps the application state from package app. Each Update applies
// one event (a key press, a redraw tick, a decoded album-art image or a
// spinner frame) and then runs two checks: refresh the zones if the poll
// interval has passed, and start an album-art fetch if the active zone's
// art URL changed. Controller calls are synchronous, so Update is the only
// place state changes.
//
// # Layout
//
//	[1] Now Playing  [2] Browse  [3] Search      tab bar
//	                                              active view
//	● Connected │ Zone: Kitchen   │ Press ? for help
//
// Popups (help, zone selector) take 60% of the screen and are centered over
// the content area.
//
// # Usage
//
//	model := tui.NewModel(state, handler, fetcher, tui.DefaultOptions(), logger)
//	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
//		return err
//	}
package tui
