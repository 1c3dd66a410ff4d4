package server

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/perbu/heartrain/anim"
)

// Config holds the HTTP server settings. Zero fields in a loaded file
// keep their defaults.
type Config struct {
	Addr          string `toml:"addr"`
	MaxMessageLen int    `toml:"max_message_len"` // caption cap, runes
	MaxUploadMB   int64  `toml:"max_upload_mb"`

	// Animation parameters for every export.
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	FPS      int `toml:"fps"`
	Duration int `toml:"duration"`
	Hearts   int `toml:"hearts"`
}

// DefaultConfig returns the out-of-the-box settings.
func DefaultConfig() Config {
	return Config{
		Addr:          ":5000",
		MaxMessageLen: 200,
		MaxUploadMB:   10,
		Width:         anim.DefaultWidth,
		Height:        anim.DefaultHeight,
		FPS:           anim.DefaultFPS,
		Duration:      anim.DefaultDuration,
		Hearts:        anim.DefaultHearts,
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Params returns the animation parameters the config describes.
func (c Config) Params() anim.Params {
	return anim.Params{
		Width:    c.Width,
		Height:   c.Height,
		FPS:      c.FPS,
		Duration: c.Duration,
		Hearts:   c.Hearts,
	}
}
