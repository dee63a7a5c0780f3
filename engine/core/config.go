package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hubastard/glint/engine/colors"
	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`

	ClearColor colors.Color `toml:"clear_color"` // RGBA

	// Resolution of the off-screen render step targets. Zero means "use the
	// framebuffer size at startup".
	TargetWidth  int `toml:"target_width"`
	TargetHeight int `toml:"target_height"`

	// Ambient term handed to the composite shader.
	Ambient float32 `toml:"ambient"`

	// Optional path (under assets/shaders) of a composite fragment shader
	// replacing the built-in one.
	CompositeShader string `toml:"composite_shader"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "glint",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.Black,
	}
}

// LoadConfig reads a TOML config on top of DefaultConfig. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %q: window size must be positive, got %dx%d", path, cfg.Width, cfg.Height)
	}
	if cfg.TargetWidth < 0 || cfg.TargetHeight < 0 {
		return cfg, fmt.Errorf("config %q: target size must not be negative, got %dx%d", path, cfg.TargetWidth, cfg.TargetHeight)
	}
	return cfg, nil
}

// TargetSize resolves the render step resolution against the framebuffer.
func (c Config) TargetSize(fbW, fbH int) (int, int) {
	w, h := c.TargetWidth, c.TargetHeight
	if w == 0 {
		w = fbW
	}
	if h == 0 {
		h = fbH
	}
	return w, h
}
