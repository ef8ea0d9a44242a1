package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. ROON_TUI_CONTROLLER.
const EnvPrefix = "ROON_TUI"

// Keys shared by flags and environment variables.
const (
	KeyController     = "controller"
	KeyPollInterval   = "poll-interval"
	KeyTickInterval   = "tick-interval"
	KeyCommandTimeout = "command-timeout"
	KeyArtTimeout     = "art-timeout"
	KeyArtRate        = "art-rate"
	KeyLogFile        = "log-file"
	KeyLog            = "log"
)

// Defaults
const (
	DefaultController     = "roon"
	DefaultPollInterval   = 1 * time.Second
	DefaultTickInterval   = 50 * time.Millisecond
	DefaultCommandTimeout = 10 * time.Second
	DefaultArtTimeout     = 10 * time.Second
	DefaultArtRate        = 4.0
)

// Config holds the runtime settings. There is no configuration file; values
// come from command-line flags, then ROON_TUI_* environment variables, then
// defaults.
type Config struct {
	// Controller is the controller binary to invoke
	Controller string
	// PollInterval is the zone refresh period
	PollInterval time.Duration
	// TickInterval is the redraw period used to animate progress
	TickInterval time.Duration
	// CommandTimeout bounds each controller invocation
	CommandTimeout time.Duration
	// ArtTimeout bounds each album-art download
	ArtTimeout time.Duration
	// ArtRate is the maximum number of album-art downloads started per second
	ArtRate float64
	// LogFile is the log sink path ("" selects the default)
	LogFile string
	// LogLevel is debug, info, warn, error or off ("" selects the default)
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Controller:     DefaultController,
		PollInterval:   DefaultPollInterval,
		TickInterval:   DefaultTickInterval,
		CommandTimeout: DefaultCommandTimeout,
		ArtTimeout:     DefaultArtTimeout,
		ArtRate:        DefaultArtRate,
	}
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyController, d.Controller, "controller binary to invoke")
	fs.Duration(KeyPollInterval, d.PollInterval, "zone refresh interval")
	fs.Duration(KeyTickInterval, d.TickInterval, "redraw interval for progress animation")
	fs.Duration(KeyCommandTimeout, d.CommandTimeout, "timeout for a single controller command")
	fs.Duration(KeyArtTimeout, d.ArtTimeout, "timeout for an album-art download")
	fs.Float64(KeyArtRate, d.ArtRate, "maximum album-art downloads started per second")
	fs.String(KeyLogFile, "", "log file path (default $TMPDIR/roon-tui.log)")
	fs.String("log-level", "", "log level: debug, info, warn, error, off (default debug)")
}

// Load resolves the configuration from fs and the environment. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault(KeyController, d.Controller)
	v.SetDefault(KeyPollInterval, d.PollInterval)
	v.SetDefault(KeyTickInterval, d.TickInterval)
	v.SetDefault(KeyCommandTimeout, d.CommandTimeout)
	v.SetDefault(KeyArtTimeout, d.ArtTimeout)
	v.SetDefault(KeyArtRate, d.ArtRate)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLog, "")

	if fs != nil {
		for _, key := range []string{KeyController, KeyPollInterval, KeyTickInterval,
			KeyCommandTimeout, KeyArtTimeout, KeyArtRate, KeyLogFile} {
			if f := fs.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}
		}
		// ROON_TUI_LOG is also read by the logging package, so the flag keeps
		// its longer name.
		if f := fs.Lookup("log-level"); f != nil {
			if err := v.BindPFlag(KeyLog, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag log-level: %w", err)
			}
		}
	}

	cfg := Config{
		Controller:     strings.TrimSpace(v.GetString(KeyController)),
		PollInterval:   v.GetDuration(KeyPollInterval),
		TickInterval:   v.GetDuration(KeyTickInterval),
		CommandTimeout: v.GetDuration(KeyCommandTimeout),
		ArtTimeout:     v.GetDuration(KeyArtTimeout),
		ArtRate:        v.GetFloat64(KeyArtRate),
		LogFile:        v.GetString(KeyLogFile),
		LogLevel:       v.GetString(KeyLog),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the event loop cannot run with.
func (c Config) Validate() error {
	if c.Controller == "" {
		return fmt.Errorf("%s must not be empty", KeyController)
	}
	durations := []struct {
		key string
		val time.Duration
	}{
		{KeyPollInterval, c.PollInterval},
		{KeyTickInterval, c.TickInterval},
		{KeyCommandTimeout, c.CommandTimeout},
		{KeyArtTimeout, c.ArtTimeout},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.val)
		}
	}
	if c.ArtRate <= 0 {
		return fmt.Errorf("%s must be positive, got %v", KeyArtRate, c.ArtRate)
	}
	return nil
}
