// Package config loads the optional hybridgpu settings file.
//
// The file lives at <UserConfigDir>/hybridgpu/config.json and may list extra
// applications to register during setup, the register-mode pause and extra
// session environment variables. Every field is optional.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultRegisterPause is how long register mode keeps its window open.
const DefaultRegisterPause = 3 * time.Second

// Config holds user settings.
type Config struct {
	Applications         []string          `json:"applications"`
	RegisterPauseSeconds int               `json:"registerPauseSeconds"`
	Environment          map[string]string `json:"environment"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		RegisterPauseSeconds: int(DefaultRegisterPause / time.Second),
	}
}

// DefaultPath returns the location of the settings file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "hybridgpu", "config.json"), nil
}

// Load reads the file at DefaultPath. A missing file yields Default().
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads and validates the settings file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the orchestrator cannot act on.
func (c *Config) Validate() error {
	if c.RegisterPauseSeconds < 0 {
		return fmt.Errorf("registerPauseSeconds must not be negative, got %d", c.RegisterPauseSeconds)
	}
	for i, app := range c.Applications {
		if strings.TrimSpace(app) == "" {
			return fmt.Errorf("applications[%d] is empty", i)
		}
	}
	for name := range c.Environment {
		if name == "" || strings.ContainsAny(name, "= ") {
			return fmt.Errorf("invalid environment variable name %q", name)
		}
	}
	return nil
}

// RegisterPause returns the register-mode pause as a duration.
func (c *Config) RegisterPause() time.Duration {
	return time.Duration(c.RegisterPauseSeconds) * time.Second
}
