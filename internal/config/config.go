// Package config loads application configuration from files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hissain/cline-ui/cline"
)

// Config holds the application configuration.
// Zero values use sensible defaults where noted.
type Config struct {
	// Listen is the HTTP listen address. Default: ":5000".
	Listen string `json:"listen" yaml:"listen" toml:"listen"`

	// DatabasePath is the location of the query history database.
	// Default: "cline_ui.db".
	DatabasePath string `json:"database_path" yaml:"database_path" toml:"database_path"`

	// SettingsPath is the location of the user settings file.
	// Default: "settings.json".
	SettingsPath string `json:"settings_path" yaml:"settings_path" toml:"settings_path"`

	// LogLevel is one of "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// LogFormat is "text" or "json". Default: "text".
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`

	// Cline configures the underlying CLI client.
	Cline cline.Config `json:"cline" yaml:"cline" toml:"cline"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Listen:       ":5000",
		DatabasePath: "cline_ui.db",
		SettingsPath: "settings.json",
		LogLevel:     "info",
		LogFormat:    "text",
		Cline:        cline.DefaultConfig(),
	}
}

// Load reads configuration from the file at path, chosen by extension
// (.toml, .yaml/.yml), layered over defaults. An empty path returns
// defaults. Environment variables are applied on top either way.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		case ".yaml", ".yml":
			data, err := os.ReadFile(path)
			if err != nil {
				return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		default:
			return cfg, fmt.Errorf("unsupported config format: %s", path)
		}
	}

	cfg.LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromEnv populates config fields from environment variables.
// Variables use the CLINE_UI_ prefix and take precedence over file values.
// The embedded cline client config reads its own CLINE_* variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("CLINE_UI_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("CLINE_UI_DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("CLINE_UI_SETTINGS_PATH"); v != "" {
		c.SettingsPath = v
	}
	if v := os.Getenv("CLINE_UI_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CLINE_UI_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	c.Cline.LoadFromEnv()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	return c.Cline.Validate()
}
