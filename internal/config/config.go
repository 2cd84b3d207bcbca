// Package config provides configuration types and defaults for triptych.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/interpretive-systems/triptych/internal/log"
)

// Config holds all configuration options for triptych.
type Config struct {
	// Theme selects the color palette: "auto" follows the terminal
	// background, "dark" and "light" force one.
	Theme string `mapstructure:"theme"`

	// HistoryLimit caps the revisions listed per file. 0 lists everything.
	HistoryLimit int `mapstructure:"history_limit"`

	// DiffContext is the number of context lines around each hunk.
	DiffContext int `mapstructure:"diff_context"`

	// FollowRenames keeps a file's listing going across renames.
	FollowRenames bool `mapstructure:"follow_renames"`

	// DebounceMS delays refresh after a filesystem change, coalescing
	// bursts of events into one reload.
	DebounceMS int `mapstructure:"refresh_debounce_ms"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig controls the debug log. Logging stays off until a file path
// is configured; the terminal belongs to the renderer.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme:         "auto",
		HistoryLimit:  200,
		DiffContext:   3,
		FollowRenames: true,
		DebounceMS:    250,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	switch c.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("theme must be \"auto\", \"dark\", or \"light\", got %q", c.Theme)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be >= 0, got %d", c.HistoryLimit)
	}
	if c.DiffContext < 0 || c.DiffContext > 1000 {
		return fmt.Errorf("diff_context must be between 0 and 1000, got %d", c.DiffContext)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("refresh_debounce_ms must be >= 0, got %d", c.DebounceMS)
	}
	return nil
}

// Debounce returns the refresh debounce as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// DefaultConfigPath returns ~/.config/triptych/config.yaml, or an empty
// string if the home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "triptych", "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with
// comments. The active values match Defaults exactly.
func DefaultConfigTemplate() string {
	return `# triptych configuration

# Color theme: "auto" follows the terminal background, or force
# "dark" / "light".
theme: auto

# Maximum number of revisions listed per file. 0 lists everything.
history_limit: 200

# Context lines around each diff hunk.
diff_context: 3

# Keep listing a file's history across renames.
follow_renames: true

# Delay before a filesystem change triggers a refresh, in milliseconds.
refresh_debounce_ms: 250

# Logging is disabled unless a file is set.
log:
  # file: /tmp/triptych.log
  level: info
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	log.Info("created default config", "path", configPath)
	return nil
}
