// Package config provides configuration management for the payoff simulator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Grid     GridConfig     `mapstructure:"grid"`
	Display  DisplayConfig  `mapstructure:"display"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GridConfig holds the spot-price grid bounds. These are presentation
// defaults; computations always receive an explicit grid.
type GridConfig struct {
	Points int     `mapstructure:"points"`
	Min    float64 `mapstructure:"min"`
	Max    float64 `mapstructure:"max"`
}

// DisplayConfig holds terminal display configuration.
type DisplayConfig struct {
	Currency     string `mapstructure:"currency"`
	ColorEnabled bool   `mapstructure:"color_enabled"`
	ChartWidth   int    `mapstructure:"chart_width"`
	ChartHeight  int    `mapstructure:"chart_height"`
}

// DefaultsConfig holds default strategy parameters.
type DefaultsConfig struct {
	LotSize   int     `mapstructure:"lot_size"`
	Tolerance float64 `mapstructure:"tolerance"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Listen          string        `mapstructure:"listen"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig holds contract-spec store configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"` // empty uses <config dir>/contracts.db
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/optionsim"
	}
	return filepath.Join(home, ".config", "optionsim")
}

// Default returns the built-in configuration used when no config file
// exists yet.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Points: 1000,
			Min:    0,
			Max:    5000,
		},
		Display: DisplayConfig{
			Currency:     "₹",
			ColorEnabled: true,
			ChartWidth:   64,
			ChartHeight:  16,
		},
		Defaults: DefaultsConfig{
			LotSize:   1,
			Tolerance: 0.01,
		},
		Server: ServerConfig{
			Listen:          "127.0.0.1:8086",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			File:    true,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// Set defaults
	def := Default()
	v.SetDefault("grid.points", def.Grid.Points)
	v.SetDefault("grid.min", def.Grid.Min)
	v.SetDefault("grid.max", def.Grid.Max)
	v.SetDefault("display.currency", def.Display.Currency)
	v.SetDefault("display.color_enabled", def.Display.ColorEnabled)
	v.SetDefault("display.chart_width", def.Display.ChartWidth)
	v.SetDefault("display.chart_height", def.Display.ChartHeight)
	v.SetDefault("defaults.lot_size", def.Defaults.LotSize)
	v.SetDefault("defaults.tolerance", def.Defaults.Tolerance)
	v.SetDefault("server.listen", def.Server.Listen)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.console", def.Logging.Console)
	v.SetDefault("logging.file", def.Logging.File)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPTSIM_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("OPTSIM_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("OPTSIM_CURRENCY"); v != "" {
		cfg.Display.Currency = v
	}
	if v := os.Getenv("OPTSIM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Grid.Points < 2 {
		return fmt.Errorf("grid.points must be at least 2")
	}
	if c.Grid.Min >= c.Grid.Max {
		return fmt.Errorf("grid.min must be less than grid.max")
	}
	if c.Defaults.LotSize < 1 {
		return fmt.Errorf("defaults.lot_size must be at least 1")
	}
	if c.Defaults.Tolerance < 0 {
		return fmt.Errorf("defaults.tolerance must be non-negative")
	}
	if c.Display.ChartWidth < 20 || c.Display.ChartHeight < 5 {
		return fmt.Errorf("display.chart_width and display.chart_height are too small to plot")
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	return nil
}

// StorePath returns the configured contract-spec database path, or the
// default under the config directory.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DefaultConfigDir(), "contracts.db")
}
