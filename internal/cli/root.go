// Package cli provides the command-line interface for the payoff simulator.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"optionsim/internal/config"
	"optionsim/internal/logging"
	"optionsim/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.ContractStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	SetColorEnabled(cfg.Display.ColorEnabled)
	SetCurrencySymbol(cfg.Display.Currency)

	// Initialize SQLite store for contract specs
	contractStore, err := store.NewSQLiteStore(cfg.StorePath())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, symbol lookups may be unavailable")
	} else {
		app.Store = contractStore
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "optsim",
		Short: "Option strategy payoff simulator for Indian F&O",
		Long: `optsim computes expiration payoff profiles for option strategies
traded on Indian exchanges.

Each strategy is sampled across a spot-price grid to locate breakeven
points and report maximum profit and loss. Results render as tables,
ASCII charts, CSV exports, or JSON, and 'optsim serve' exposes the same
computations over HTTP.

Use 'optsim payoff bull-call-spread' or 'optsim payoff iron-condor'
to simulate a strategy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/optionsim)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addPayoffCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addContractCommands(rootCmd, app)
	addServerCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("optsim v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a template configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			configDir, _ := cmd.Flags().GetString("config")
			path, err := config.WriteTemplate(configDir)
			if err != nil {
				output.Error("Failed to create config: %v", err)
				return err
			}
			output.Success("✓ Created template config at %s", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Grid Configuration")
	output.Printf("  Points:          %d\n", cfg.Grid.Points)
	output.Printf("  Min Spot:        %s\n", FormatPrice(cfg.Grid.Min))
	output.Printf("  Max Spot:        %s\n", FormatPrice(cfg.Grid.Max))
	output.Println()

	output.Bold("Display Configuration")
	output.Printf("  Currency:        %s\n", cfg.Display.Currency)
	output.Printf("  Color Enabled:   %v\n", cfg.Display.ColorEnabled)
	output.Printf("  Chart Size:      %dx%d\n", cfg.Display.ChartWidth, cfg.Display.ChartHeight)
	output.Println()

	output.Bold("Strategy Defaults")
	output.Printf("  Lot Size:        %d\n", cfg.Defaults.LotSize)
	output.Printf("  Breakeven Tol:   %.4f\n", cfg.Defaults.Tolerance)
	output.Println()

	output.Bold("Server Configuration")
	output.Printf("  Listen:          %s\n", cfg.Server.Listen)
	output.Printf("  Read Timeout:    %s\n", cfg.Server.ReadTimeout)
	output.Printf("  Write Timeout:   %s\n", cfg.Server.WriteTimeout)
	output.Println()

	output.Bold("Store")
	output.Printf("  Database:        %s\n", cfg.StorePath())
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)

	return nil
}
