package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Option payoff simulator configuration

[grid]
# Number of evenly spaced spot prices used to sample payoff curves.
points = 1000
# Lower and upper bounds of the spot-price grid.
min = 0.0
max = 5000.0

[display]
# Currency symbol used in tables and charts.
currency = "₹"
# Disable to strip ANSI colors from all output.
color_enabled = true
# Dimensions of the ASCII payoff chart.
chart_width = 64
chart_height = 16

[defaults]
# Contract multiplier applied when --lots is not given.
lot_size = 1
# Minimum payoff change across a grid step for a breakeven to be recorded.
tolerance = 0.01

[server]
# Address for the HTTP API (optsim serve).
listen = "127.0.0.1:8086"
read_timeout = "10s"
write_timeout = "10s"
shutdown_timeout = "5s"

[store]
# Path to the contract-spec database. Empty uses <config dir>/contracts.db.
path = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to console (stderr)
console = true
# Log to rotating file under <config dir>/logs/
file = true
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing template config: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}

// WriteTemplate writes the template config file to configDir, refusing to
// overwrite an existing file. Returns the path written.
func WriteTemplate(configDir string) (string, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("writing template config: %w", err)
	}

	return path, nil
}
