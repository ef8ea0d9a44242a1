// Roon-tui is a terminal controller for a Roon music system.
//
// It drives the roon command-line controller: zones are polled for
// now-playing status, transport and volume keys are forwarded as one-shot
// commands, and the library can be browsed and searched from the keyboard.
// Album art is drawn with half-block characters when the terminal supports
// color.
//
// Usage:
//
//	roon-tui [command] [flags]
//
// Running without arguments launches the interactive player.
// See 'roon-tui --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roon-tui/roon-tui/internal/config"
	"github.com/roon-tui/roon-tui/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roon-tui",
	Short: "Terminal controller for Roon",
	Long: `A terminal user interface for controlling a Roon music system.

Shows what is playing in the selected zone, forwards transport and volume
keys to the roon controller, and browses or searches the library.

If no command is specified, the interactive player launches.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlayer,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(zonesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "roon-tui %s\n", version.Full())
	},
}
