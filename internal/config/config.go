// Package config loads quemoji settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/subins2000/quemoji/internal/inject"
	"github.com/subins2000/quemoji/internal/ranker"
)

// UI holds settings for the picker window.
type UI struct {
	Prompt      string `toml:"prompt"`
	Placeholder string `toml:"placeholder"`
}

// Config is the full set of settings.
type Config struct {
	Limit         int     `toml:"limit"`
	SettleDelayMS int     `toml:"settle_delay_ms"`
	Backend       string  `toml:"backend"`
	MinScore      float64 `toml:"min_score"`
	UI            UI      `toml:"ui"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Limit:         ranker.DefaultLimit,
		SettleDelayMS: int(inject.DefaultSettleDelay / time.Millisecond),
		Backend:       inject.BackendAuto,
		UI: UI{
			Prompt:      "> ",
			Placeholder: "search emoji...",
		},
	}
}

// SettleDelay returns the settle delay as a duration.
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Limit < 1:
		return fmt.Errorf("limit must be at least 1, got %d", c.Limit)
	case c.SettleDelayMS < 0:
		return fmt.Errorf("settle_delay_ms must not be negative, got %d", c.SettleDelayMS)
	case c.MinScore < 0 || c.MinScore > 1:
		return fmt.Errorf("min_score must be within [0, 1], got %g", c.MinScore)
	case !slices.Contains(inject.Backends, c.Backend):
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/quemoji/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quemoji", "config.toml"), nil
}

// Load reads path over the defaults. The file must exist. The result is
// not validated, so callers can apply overrides first.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that an empty path or a missing file yields
// the defaults.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
