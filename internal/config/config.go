// pattern: Imperative Shell

package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Picker kinds.
const (
	PickerFzf     = "fzf"
	PickerBuiltin = "builtin"
)

// Config is the immutable program configuration. It is built once at start
// (file, then command-line overrides) and passed to every component.
type Config struct {
	Directories []string `yaml:"directories"`
	Sort        string   `yaml:"sort"`
	Picker      string   `yaml:"picker"`
	Theme       string   `yaml:"theme"`
	LogLevel    string   `yaml:"log_level"`
	TimeoutStr  string   `yaml:"timeout"`
	Concurrency int      `yaml:"concurrency"`
}

// LookPathFunc is the function signature for looking up executables.
type LookPathFunc func(name string) (string, error)

func DefaultConfig() Config {
	return Config{
		Theme:    "mocha",
		LogLevel: "info",
	}
}

// Load reads the config from the default location.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at configPath. The file may be JSON or
// YAML. On any failure (missing, unreadable, malformed) the default config
// is returned together with the error so the caller can report it.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", configPath, err)
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Timeout returns the per-command timeout. Zero means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.TimeoutStr == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TimeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.TimeoutStr, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.TimeoutStr)
	}
	return d, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got: %d", c.Concurrency)
	}
	switch c.Picker {
	case "", PickerFzf, PickerBuiltin:
	default:
		return fmt.Errorf("picker must be '%s' or '%s', got: %s", PickerFzf, PickerBuiltin, c.Picker)
	}
	return nil
}

// DetectedPicker returns the configured picker or auto-detects it.
func (c *Config) DetectedPicker() string {
	return c.DetectedPickerWith(exec.LookPath)
}

// DetectedPickerWith returns the configured picker or, when none is set,
// fzf if it is on PATH and the builtin picker otherwise.
func (c *Config) DetectedPickerWith(lookPath LookPathFunc) string {
	if c.Picker != "" {
		return c.Picker
	}
	if _, err := lookPath("fzf"); err == nil {
		return PickerFzf
	}
	return PickerBuiltin
}

// SplitList splits a comma-separated directory list, trimming each entry
// and dropping empty ones.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Dir returns the configuration directory.
func Dir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "worktree")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "worktree")
	}

	return filepath.Join(home, ".config", "worktree")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// StateDir returns the directory holding the log file.
func StateDir() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "worktree")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "state", "worktree")
	}

	return filepath.Join(home, ".local", "state", "worktree")
}
