// Package config loads the optional pager configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"miniless/internal/textutil"
)

// Config is the pager configuration. Every field has a working default, so
// a missing config file is not an error.
type Config struct {
	// JumpSize is the row budget of the Ctrl-u / Ctrl-d half-page jumps.
	JumpSize int `toml:"jump_size"`
	// TabWidth is the column width tabs expand to.
	TabWidth int `toml:"tab_width"`
	Status   struct {
		// Debug dumps viewport and search state into the status line.
		Debug bool `toml:"debug"`
	} `toml:"status"`
}

func Default() Config {
	var cfg Config
	cfg.JumpSize = 30
	cfg.TabWidth = textutil.DefaultTabWidth
	return cfg
}

// Load reads the config from the user config directory
// (miniless/config.toml). A missing file yields defaults; a malformed file
// is an error so typos do not silently fall back.
func Load() (Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(filepath.Join(dir, "miniless", "config.toml"))
}

func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.JumpSize < 1 {
		cfg.JumpSize = 1
	}
	if cfg.TabWidth < 1 {
		cfg.TabWidth = 1
	}
	return cfg, nil
}
