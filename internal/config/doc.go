// Package config resolves roon-tui's runtime settings.
//
// There is deliberately no configuration file. Each setting is a command-line
// flag with a matching ROON_TUI_* environment variable, resolved through viper
// in the order flag, environment, default:
//
//	--controller        ROON_TUI_CONTROLLER        roon
//	--poll-interval     ROON_TUI_POLL_INTERVAL     1s
//	--tick-interval     ROON_TUI_TICK_INTERVAL     50ms
//	--command-timeout   ROON_TUI_COMMAND_TIMEOUT   10s
//	--art-timeout       ROON_TUI_ART_TIMEOUT       10s
//	--art-rate          ROON_TUI_ART_RATE          4
//	--log-file          ROON_TUI_LOG_FILE          $TMPDIR/roon-tui.log
//	--log-level         ROON_TUI_LOG               debug
//
// Usage:
//
//	config.RegisterFlags(cmd.Flags())
//	cfg, err := config.Load(cmd.Flags())
package config
