package cline

import (
	"fmt"
	"os"
	"time"
)

// Config holds configuration for a cline client.
// Zero values use sensible defaults where noted.
type Config struct {
	// ClinePath is an explicit path to the cline binary.
	// Default: auto-detected via PATH and well-known install locations.
	ClinePath string `json:"cline_path" yaml:"cline_path" toml:"cline_path"`

	// WorkDir is the working directory for cline subprocesses.
	// Default: current directory.
	WorkDir string `json:"work_dir" yaml:"work_dir" toml:"work_dir"`

	// Timeout is the wall-clock ceiling per invocation.
	// 0 uses the default (2 minutes).
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// SettleDelay is the pause between writing a resumed prompt to stdin
	// and closing the pipe. 0 uses the default (100ms).
	SettleDelay time.Duration `json:"settle_delay" yaml:"settle_delay" toml:"settle_delay"`

	// Yolo auto-approves tool executions for non-interactive runs.
	Yolo bool `json:"yolo" yaml:"yolo" toml:"yolo"`

	// Verbose enables cline's state-machine logging, which feeds the
	// fallback progress path.
	Verbose bool `json:"verbose" yaml:"verbose" toml:"verbose"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		SettleDelay: DefaultSettleDelay,
	}
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the CLINE_ prefix and take precedence over
// existing values.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("CLINE_PATH"); v != "" {
		c.ClinePath = v
	}
	if v := os.Getenv("CLINE_WORK_DIR"); v != "" {
		c.WorkDir = v
	}
	if v := os.Getenv("CLINE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("CLINE_SETTLE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SettleDelay = d
		}
	}
	if v := os.Getenv("CLINE_YOLO"); v == "true" || v == "1" {
		c.Yolo = true
	}
	if v := os.Getenv("CLINE_VERBOSE"); v == "true" || v == "1" {
		c.Verbose = true
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must be >= 0, got %v", c.SettleDelay)
	}
	return nil
}

// ToOptions converts the config to functional options.
// This enables mixing Config with additional options.
func (c *Config) ToOptions() []ClineOption {
	opts := make([]ClineOption, 0, 6)

	if c.ClinePath != "" {
		opts = append(opts, WithClinePath(c.ClinePath))
	}
	if c.WorkDir != "" {
		opts = append(opts, WithWorkdir(c.WorkDir))
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	if c.SettleDelay > 0 {
		opts = append(opts, WithSettleDelay(c.SettleDelay))
	}
	if c.Yolo {
		opts = append(opts, WithYolo())
	}
	if c.Verbose {
		opts = append(opts, WithVerbose())
	}

	return opts
}
