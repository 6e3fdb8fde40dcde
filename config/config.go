// Package config loads the demo console configuration: defaults, then an optional TOML file,
// then FBCON_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/fbcon/bell"
	"github.com/lixenwraith/fbcon/terminal"
)

var (
	ErrInvalidEngine  = errors.New("config: unknown engine")
	ErrInvalidPalette = errors.New("config: invalid palette")
)

// Engine kinds understood by the demo
const (
	EngineHost     = "host"
	EngineScreen   = "screen"
	EngineFlanterm = "flanterm"
)

// Mask is one color channel layout
type Mask struct {
	Size  uint8 `toml:"size"`
	Shift uint8 `toml:"shift"`
}

// FramebufferConfig describes the surface geometry
type FramebufferConfig struct {
	Width  int  `toml:"width"`
	Height int  `toml:"height"`
	Pitch  int  `toml:"pitch"` // pixels; 0 means Width
	Red    Mask `toml:"red"`
	Green  Mask `toml:"green"`
	Blue   Mask `toml:"blue"`
}

// FontConfig selects the cell geometry when no bitmap is loaded
type FontConfig struct {
	Width   int `toml:"width"`
	Height  int `toml:"height"`
	Spacing int `toml:"spacing"`
	ScaleX  int `toml:"scale_x"`
	ScaleY  int `toml:"scale_y"`
	Margin  int `toml:"margin"`
}

// PaletteConfig holds "#rrggbb" strings; empty entries keep engine defaults
type PaletteConfig struct {
	ANSI     []string `toml:"ansi"`
	Bright   []string `toml:"bright"`
	Fg       string   `toml:"fg"`
	Bg       string   `toml:"bg"`
	FgBright string   `toml:"fg_bright"`
	BgBright string   `toml:"bg_bright"`
}

// BellConfig controls the audible BEL
type BellConfig struct {
	Enabled    bool    `toml:"enabled"`
	Frequency  float64 `toml:"frequency"`
	DurationMs int     `toml:"duration_ms"`
	Volume     float64 `toml:"volume"`
}

// Config is the complete demo configuration
type Config struct {
	Engine    string            `toml:"engine"`
	Autoflush bool              `toml:"autoflush"`
	Surface   FramebufferConfig `toml:"framebuffer"`
	Font      FontConfig        `toml:"font"`
	Palette   PaletteConfig     `toml:"palette"`
	Bell      BellConfig        `toml:"bell"`
}

// Default returns a 640x480 xRGB8888 surface on the host engine
func Default() *Config {
	bc := bell.DefaultConfig()
	return &Config{
		Engine:    EngineHost,
		Autoflush: true,
		Surface: FramebufferConfig{
			Width:  640,
			Height: 480,
			Red:    Mask{Size: 8, Shift: 16},
			Green:  Mask{Size: 8, Shift: 8},
			Blue:   Mask{Size: 8, Shift: 0},
		},
		Font: FontConfig{
			Width:   terminal.DefaultFontWidth,
			Height:  terminal.DefaultFontHeight,
			Spacing: 1,
			ScaleX:  1,
			ScaleY:  1,
		},
		Bell: BellConfig{
			Enabled:    false,
			Frequency:  bc.Frequency,
			DurationMs: int(bc.Duration / time.Millisecond),
			Volume:     bc.Volume,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when empty) and the
// environment, and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks engine kind, geometry and palette syntax
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineHost, EngineScreen, EngineFlanterm:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEngine, c.Engine)
	}
	if err := c.Framebuffer().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	return nil
}

// Framebuffer returns the surface description without pixel memory
func (c *Config) Framebuffer() terminal.Framebuffer {
	fb := c.Surface
	pitch := fb.Pitch
	if pitch == 0 {
		pitch = fb.Width
	}
	return terminal.Framebuffer{
		Width:  fb.Width,
		Height: fb.Height,
		Pitch:  pitch,
		Red:    terminal.ChannelMask{Size: fb.Red.Size, Shift: fb.Red.Shift},
		Green:  terminal.ChannelMask{Size: fb.Green.Size, Shift: fb.Green.Shift},
		Blue:   terminal.ChannelMask{Size: fb.Blue.Size, Shift: fb.Blue.Shift},
	}
}

// Options converts font and palette settings into engine overrides
func (c *Config) Options() (*terminal.Options, error) {
	opts := &terminal.Options{
		ScaleX: c.Font.ScaleX,
		ScaleY: c.Font.ScaleY,
		Margin: c.Font.Margin,
	}
	if c.Font.Width != terminal.DefaultFontWidth || c.Font.Height != terminal.DefaultFontHeight {
		opts.Font = &terminal.Font{Width: c.Font.Width, Height: c.Font.Height, Spacing: c.Font.Spacing}
	}

	var err error
	if opts.ANSIColours, err = parseTable("ansi", c.Palette.ANSI); err != nil {
		return nil, err
	}
	if opts.ANSIBrightColours, err = parseTable("bright", c.Palette.Bright); err != nil {
		return nil, err
	}
	for _, p := range []struct {
		name string
		hex  string
		dst  **uint32
	}{
		{"fg", c.Palette.Fg, &opts.DefaultFg},
		{"bg", c.Palette.Bg, &opts.DefaultBg},
		{"fg_bright", c.Palette.FgBright, &opts.DefaultFgBright},
		{"bg_bright", c.Palette.BgBright, &opts.DefaultBgBright},
	} {
		if p.hex == "" {
			continue
		}
		v, err := parseHex(p.hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPalette, p.name, err)
		}
		*p.dst = &v
	}
	return opts, nil
}

// BellConfig converts bell settings into bell.Config
func (c *Config) BellConfig() bell.Config {
	bc := bell.DefaultConfig()
	if c.Bell.Frequency > 0 {
		bc.Frequency = c.Bell.Frequency
	}
	if c.Bell.DurationMs > 0 {
		bc.Duration = time.Duration(c.Bell.DurationMs) * time.Millisecond
	}
	bc.Volume = c.Bell.Volume
	return bc
}

func parseTable(name string, entries []string) (*[8]uint32, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	if len(entries) != 8 {
		return nil, fmt.Errorf("%w: %s needs 8 entries, got %d", ErrInvalidPalette, name, len(entries))
	}
	var table [8]uint32
	for i, hex := range entries {
		v, err := parseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidPalette, name, i, err)
		}
		table[i] = v
	}
	return &table, nil
}

// parseHex turns "#rrggbb" into 0x00RRGGBB
func parseHex(s string) (uint32, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, err
	}
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}
