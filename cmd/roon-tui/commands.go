package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/roon-tui/roon-tui/internal/app"
	"github.com/roon-tui/roon-tui/internal/artwork"
	"github.com/roon-tui/roon-tui/internal/config"
	"github.com/roon-tui/roon-tui/internal/logging"
	"github.com/roon-tui/roon-tui/internal/roon"
	"github.com/roon-tui/roon-tui/internal/tui"
)

var outputFormat string

// errNotTerminal is returned when the player is started without a terminal.
var errNotTerminal = errors.New("roon-tui must be run in an interactive terminal")

// setup loads the configuration and starts file logging.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	// A logger that cannot open its file is a no-op; keep going.
	_ = logging.Initialize(cfg.LogFile, cfg.LogLevel)
	return cfg, logging.GetLogger(), nil
}

func newClient(cfg config.Config, logger *zap.Logger) *roon.Client {
	runner := roon.NewExecRunner(roon.Config{
		Path:    cfg.Controller,
		Timeout: cfg.CommandTimeout,
	}, logger)
	return roon.NewClient(runner, logger)
}

// controllerError adds a hint when the controller binary is missing.
func controllerError(cfg config.Config, err error) error {
	if roon.IsNotFound(err) {
		return fmt.Errorf("controller %q not found in PATH (set --controller or ROON_TUI_CONTROLLER): %w", cfg.Controller, err)
	}
	return err
}

func runPlayer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	state := app.New()
	state.ImageProtocol = artwork.DetectPicker()

	logger.Info("starting roon-tui",
		zap.String("controller", cfg.Controller),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Bool("image_protocol", state.ImageProtocol != nil),
	)

	handler := app.NewHandler(newClient(cfg, logger), logger)
	fetcher := artwork.NewFetcher(cfg.ArtTimeout, cfg.ArtRate, logger)

	model := tui.NewModel(state, handler, fetcher, tui.Options{
		PollInterval: cfg.PollInterval,
		TickInterval: cfg.TickInterval,
	}, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("player exited with error", zap.Error(err))
		return fmt.Errorf("player error: %w", err)
	}

	logger.Info("roon-tui exited")
	return nil
}

// zonesCmd prints the zone list once
var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List zones and what they are playing",
	Long: `Print every zone known to the Roon Core with its playback state,
now-playing track, outputs and settings, then exit.

This runs the same controller query the player polls, without taking over
the terminal.`,
	Example: `  # Detailed listing
  roon-tui zones

  # One line per zone
  roon-tui zones --format compact

  # Machine-readable output
  roon-tui zones --format json
  roon-tui zones --format yaml`,
	Args: cobra.NoArgs,
	RunE: runZones,
}

func init() {
	zonesCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json, yaml)")
}

func runZones(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync()

	zones, err := newClient(cfg, logger).Zones(context.Background())
	if err != nil {
		return controllerError(cfg, fmt.Errorf("failed to list zones: %w", err))
	}

	return printZones(cmd.OutOrStdout(), zones, outputFormat)
}

// printZones writes zones to w in the named format.
func printZones(w io.Writer, zones []roon.Zone, format string) error {
	var out string
	switch format {
	case "compact":
		out = roon.FormatCompact(zones)
	case "json":
		data, err := roon.FormatJSON(zones)
		if err != nil {
			return err
		}
		out = data
	case "yaml":
		data, err := roon.FormatYAML(zones)
		if err != nil {
			return err
		}
		out = data
	case "detailed", "":
		out = roon.FormatDetailed(zones)
	default:
		return fmt.Errorf("unknown format %q (want detailed, compact, json or yaml)", format)
	}

	_, err := io.WriteString(w, out)
	return err
}
