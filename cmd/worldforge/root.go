package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/worldforge/internal/cli"
	"github.com/aretw0/worldforge/internal/config"
	"github.com/aretw0/worldforge/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "worldforge",
	Short: "WorldForge converts points between local and world space with exact decimals",
	Long: `WorldForge maps points between a parent's local frame (position, Euler
rotation, scale) and world space using arbitrary-precision decimal arithmetic.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colour and Markdown rendering")
}

// newApp loads the configuration and builds the shared App.
// One-shot commands stay silent unless --debug is set; long-running ones
// (serve, mcp) log at the configured level.
func newApp(cmd *cobra.Command, longRunning bool) *cli.App {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, err := config.Load(path, cmd.Flags().Changed("config"))
	if err != nil {
		exitWithError(err)
	}

	var logger *slog.Logger
	switch {
	case debug:
		logger = logging.New(slog.LevelDebug)
	case longRunning:
		level, _ := logging.ParseLevel(cfg.Log.Level)
		logger = logging.New(level)
	default:
		logger = logging.NewNop()
	}

	app := cli.NewApp(cfg, logger, os.Stdout, os.Stderr)
	app.Debug = debug
	app.Rich = !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	return app
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
