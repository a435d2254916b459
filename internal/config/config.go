package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/kittypreview/internal/geometry"
	"github.com/llehouerou/kittypreview/internal/kitty"
)

const appName = "kittypreview"

// ErrInvalidQuiet is returned for a quiet level outside 0..2.
var ErrInvalidQuiet = errors.New("quiet must be 0, 1 or 2")

type Config struct {
	Transmission string `koanf:"transmission"` // "chunks" (default) or "file"
	TempDir      string `koanf:"temp_dir"`     // where "file" mode writes pixels (default: os temp dir)
	TempPrefix   string `koanf:"temp_prefix"`
	Quiet        int    `koanf:"quiet"`     // q= sent with every sequence (0-2)
	Downscale    bool   `koanf:"downscale"` // shrink images larger than their area before sending

	// Cell size in pixels, for terminals that do not report it (0 = query)
	CellWidth  int `koanf:"cell_width"`
	CellHeight int `koanf:"cell_height"`

	SweepMaxAgeHours int `koanf:"sweep_max_age_hours"` // default: 24
}

// Load reads the default config files, then explicit when non-empty. Later
// files win. A missing default file is skipped; a missing explicit file is
// an error.
func Load(explicit string) (*Config, error) {
	return loadFiles(getConfigPaths(), expandPath(explicit))
}

func loadFiles(optional []string, explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range optional {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", explicit, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.TempDir != "" {
		cfg.TempDir = expandPath(cfg.TempDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/kittypreview/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./kittypreview.toml (pwd)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate reports values that cannot be applied.
func (c *Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.Quiet < 0 || c.Quiet > 2 {
		return fmt.Errorf("%w, got %d", ErrInvalidQuiet, c.Quiet)
	}
	return nil
}

// Mode returns the configured transmission mode.
func (c *Config) Mode() (kitty.Mode, error) {
	return kitty.ParseMode(c.Transmission)
}

// TempFiles returns where "file" mode writes pixel data.
func (c *Config) TempFiles() kitty.DirTempFiles {
	return kitty.DirTempFiles{Dir: c.TempDir, Prefix: c.TempPrefix}
}

// CellOverride returns the configured cell size, zero when unset.
func (c *Config) CellOverride() geometry.Size {
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return geometry.Size{}
	}
	return geometry.Size{Width: c.CellWidth, Height: c.CellHeight}
}

// SweepAge returns the age past which leftover temp files are removed.
func (c *Config) SweepAge() time.Duration {
	if c.SweepMaxAgeHours <= 0 {
		return kitty.DefaultSweepAge
	}
	return time.Duration(c.SweepMaxAgeHours) * time.Hour
}
