// Package cli provides the command-line interface for the payoff simulator.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"optionsim/internal/server"
)

// addServerCommands adds the HTTP API server command.
func addServerCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newServeCmd(app))
}

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the payoff API over HTTP",
		Long: `Start an HTTP server exposing payoff simulation for external
integrations. Every request is computed from scratch; no scenario is
persisted.`,
		Example: `  optsim serve
  optsim serve --listen 0.0.0.0:8086`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			listen, _ := cmd.Flags().GetString("listen")
			if listen != "" {
				app.Config.Server.Listen = listen
			}

			srv := server.New(app.Config, app.Logger, app.Store)

			output.Bold("Starting Payoff API Server")
			output.Printf("  Listen: %s\n", app.Config.Server.Listen)
			if app.Store == nil {
				output.Warning("Contract store unavailable, symbol lookups will return 503")
			}
			output.Println()

			output.Bold("Available Endpoints")
			endpoints := []struct {
				method string
				path   string
				desc   string
			}{
				{"POST", "/api/v1/payoff/bull-call-spread", "Simulate a bull call spread"},
				{"POST", "/api/v1/payoff/iron-condor", "Simulate an iron condor"},
				{"GET", "/api/v1/strategies", "List supported strategies"},
				{"GET", "/api/v1/contracts", "List contract specs"},
				{"GET", "/api/v1/contracts/{symbol}", "Get one contract spec"},
				{"GET", "/healthz", "Health check"},
			}

			for _, e := range endpoints {
				methodColor := ColorGreen
				if e.method == "POST" {
					methodColor = ColorYellow
				}
				output.Printf("  %s %-33s %s\n",
					output.ColoredString(methodColor, PadRight(e.method, 6)),
					e.path,
					output.DimText(e.desc))
			}

			output.Println()
			output.Dim("Press Ctrl+C to stop the server")
			output.Println()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(stop)

			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}

			output.Success("✓ Server stopped")
			return nil
		},
	}

	cmd.Flags().String("listen", "", "listen address (default from config)")

	return cmd
}
