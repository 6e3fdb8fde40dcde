package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnv overrides cfg from FBCON_* variables; unparsable values are ignored
func applyEnv(cfg *Config) {
	if v := os.Getenv("FBCON_ENGINE"); v != "" {
		cfg.Engine = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("FBCON_AUTOFLUSH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Autoflush = b
		}
	}

	envInt("FBCON_WIDTH", &cfg.Surface.Width)
	envInt("FBCON_HEIGHT", &cfg.Surface.Height)
	envInt("FBCON_PITCH", &cfg.Surface.Pitch)
	envInt("FBCON_FONT_WIDTH", &cfg.Font.Width)
	envInt("FBCON_FONT_HEIGHT", &cfg.Font.Height)
	envInt("FBCON_SCALE_X", &cfg.Font.ScaleX)
	envInt("FBCON_SCALE_Y", &cfg.Font.ScaleY)
	envInt("FBCON_MARGIN", &cfg.Font.Margin)

	if v := os.Getenv("FBCON_FG"); v != "" {
		cfg.Palette.Fg = v
	}
	if v := os.Getenv("FBCON_BG"); v != "" {
		cfg.Palette.Bg = v
	}

	if v := os.Getenv("FBCON_BELL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Bell.Enabled = b
		}
	}
	if v := os.Getenv("FBCON_BELL_FREQUENCY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Bell.Frequency = f
		}
	}
	envInt("FBCON_BELL_DURATION_MS", &cfg.Bell.DurationMs)

	// Volume 0-100 converted to 0.0-1.0
	if v := os.Getenv("FBCON_BELL_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bell.Volume = float64(min(max(n, 0), 100)) / 100.0
		}
	}
}

func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		*dst = n
	}
}
