package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hubastard/sprig/engine/colors"
	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run.
type Config struct {
	Title      string       `toml:"title"`
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	VSync      bool         `toml:"vsync"`
	ClearColor colors.Color `toml:"clear_color"`
	LogLevel   string       `toml:"log_level"`
	AssetRoot  string       `toml:"asset_root"`
	HotReload  bool         `toml:"hot_reload"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "sprig",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
		LogLevel:   "info",
		AssetRoot:  "assets",
	}
}

// LoadConfig reads a TOML file over DefaultConfig. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		LogDebug("config %q not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %q: window size %dx%d must be positive", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}
