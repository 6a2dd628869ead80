// Package config loads the dayroll configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultStatsServer is the personal statistics backend endpoint used when
// the config file does not name one.
const DefaultStatsServer = "http://localhost:8081/stats"

// Config holds user settings. Credentials may live here or in the
// TRELLO_KEY/TRELLO_TOKEN environment variables; the environment wins.
type Config struct {
	Key         string `yaml:"key"`          // Board service API key
	Token       string `yaml:"token"`        // Board service API token
	Board       string `yaml:"board"`        // Board display name to operate on
	Org         string `yaml:"org"`          // Organization name for aggregate reporting
	StatsServer string `yaml:"stats_server"` // Statistics backend URL
}

// DefaultPath returns the standard config file location,
// typically ~/.config/dayroll/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "dayroll", "config.yaml"), nil
}

// Load reads and parses the config file at path. A missing file is not an
// error: it yields an empty config so environment credentials and flags can
// still drive everything.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// StatsServerURL returns the configured stats backend URL or the default.
func (c *Config) StatsServerURL() string {
	if c.StatsServer != "" {
		return c.StatsServer
	}
	return DefaultStatsServer
}
