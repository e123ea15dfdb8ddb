package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/worldforge/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Exposes conversion, validation, history and presets as a JSON API over HTTP.
The OpenAPI document is served at /openapi.yaml and metrics at /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, true)
		defer app.Close()

		port := app.Config.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetString("port")
		}

		if app.Rich {
			tui.PrintBanner(os.Stdout)
		}

		// Create a context that cancels on interrupt signal
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := app.Serve(ctx, port); err != nil {
			app.Close()
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on (default from config)")
}
