// Package config assembles the tool configuration from defaults, an
// optional TOML file, environment variables, and CLI flags, in that
// order. The core packages receive the finished record and never read
// ambient process state themselves.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"keycast/internal/caption"
	"keycast/internal/keys"
)

// Config is the single options record handed to the core. The highlight
// color is stored in ASS BBGGRR order; SetHighlight converts from the
// RRGGBB form users write.
type Config struct {
	ThresholdMs       int64
	MaxVisible        int
	Policy            keys.Policy
	HighlightColor    string
	BackgroundOpacity float64

	FontName  string
	FontSize  int
	Alignment int
	MarginV   int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ThresholdMs:       1000,
		MaxVisible:        10,
		Policy:            keys.PolicyCompact,
		HighlightColor:    "00FFFF", // yellow, already reordered
		BackgroundOpacity: 0.6,
		FontName:          "Monospace",
		FontSize:          36,
		Alignment:         2,
		MarginV:           40,
	}
}

// FileConfig is the TOML file schema. Pointer fields distinguish unset
// values from explicit zeroes.
type FileConfig struct {
	ThresholdMs *int64   `toml:"threshold_ms"`
	MaxKeys     *int     `toml:"max_keys"`
	Policy      *string  `toml:"policy"`
	Highlight   *string  `toml:"highlight"`
	Opacity     *float64 `toml:"opacity"`
	Font        *string  `toml:"font"`
	FontSize    *int     `toml:"font_size"`
	Alignment   *int     `toml:"alignment"`
	MarginV     *int     `toml:"margin_v"`
}

// LoadFile reads a TOML config from the given path. An empty path means
// no config file.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}

	if _, err := os.Stat(path); err != nil {
		return FileConfig{}, fmt.Errorf("failed to stat config file: %w", err)
	}

	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	return fc, nil
}

// ApplyFile overlays set file values onto the config.
func (c *Config) ApplyFile(fc FileConfig) error {
	if fc.ThresholdMs != nil {
		c.ThresholdMs = *fc.ThresholdMs
	}
	if fc.MaxKeys != nil {
		c.MaxVisible = *fc.MaxKeys
	}
	if fc.Policy != nil {
		policy, err := keys.ParsePolicy(*fc.Policy)
		if err != nil {
			return err
		}
		c.Policy = policy
	}
	if fc.Highlight != nil {
		if err := c.SetHighlight(*fc.Highlight); err != nil {
			return err
		}
	}
	if fc.Opacity != nil {
		c.BackgroundOpacity = *fc.Opacity
	}
	if fc.Font != nil {
		c.FontName = *fc.Font
	}
	if fc.FontSize != nil {
		c.FontSize = *fc.FontSize
	}
	if fc.Alignment != nil {
		c.Alignment = *fc.Alignment
	}
	if fc.MarginV != nil {
		c.MarginV = *fc.MarginV
	}

	return nil
}

// ApplyEnv overlays KEYCAST_* environment variables onto the config.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("KEYCAST_THRESHOLD_MS"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid KEYCAST_THRESHOLD_MS %q: %w", v, err)
		}
		c.ThresholdMs = ms
	}

	if v := os.Getenv("KEYCAST_MAX_KEYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid KEYCAST_MAX_KEYS %q: %w", v, err)
		}
		c.MaxVisible = n
	}

	if v := os.Getenv("KEYCAST_POLICY"); v != "" {
		policy, err := keys.ParsePolicy(v)
		if err != nil {
			return err
		}
		c.Policy = policy
	}

	if v := os.Getenv("KEYCAST_HIGHLIGHT"); v != "" {
		if err := c.SetHighlight(v); err != nil {
			return err
		}
	}

	if v := os.Getenv("KEYCAST_OPACITY"); v != "" {
		opacity, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid KEYCAST_OPACITY %q: %w", v, err)
		}
		c.BackgroundOpacity = opacity
	}

	return nil
}

// SetHighlight stores an RRGGBB highlight color in ASS component order.
func (c *Config) SetHighlight(rrggbb string) error {
	reversed, err := caption.ReverseColor(rrggbb)
	if err != nil {
		return err
	}
	c.HighlightColor = reversed
	return nil
}

// Validate checks the assembled configuration. All violations are fatal
// for the run.
func (c Config) Validate() error {
	if c.ThresholdMs <= 0 {
		return fmt.Errorf(
			"inactivity threshold must be positive, got %dms",
			c.ThresholdMs,
		)
	}

	if c.BackgroundOpacity < 0 || c.BackgroundOpacity > 1 {
		return fmt.Errorf(
			"background opacity must be within [0,1], got %g",
			c.BackgroundOpacity,
		)
	}

	if _, err := caption.ReverseColor(c.HighlightColor); err != nil {
		return fmt.Errorf("invalid highlight color: %w", err)
	}

	return nil
}
