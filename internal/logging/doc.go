// Package logging provides structured file logging for roon-tui.
//
// A terminal UI owns stdout and stderr, so logs go to a file instead
// (roon-tui.log in the temp directory by default). The package wraps a global
// zap logger with level helpers:
//
//	if err := logging.Initialize("", ""); err != nil {
//	    // logging is now a no-op; the UI still runs
//	}
//	defer logging.Sync()
//
//	logging.Error("zone refresh failed", zap.Error(err))
//
// # Levels
//
// The level comes from the caller, else the ROON_TUI_LOG environment variable,
// else debug. "off" disables logging entirely.
//
// Losing log output never changes program behavior: if the file cannot be
// opened, Initialize reports the error and installs a no-op logger.
package logging
