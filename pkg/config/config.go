/*
Package config loads imgprev defaults from a YAML file
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName = "imgprev"
	fileName   = "config.yaml"
)

// Config holds defaults for display options and external tools
type Config struct {
	UseHalf   bool `yaml:"use_half"`
	FitHeight bool `yaml:"fit_height"`
	MaxCols   int  `yaml:"max_cols"`

	Converter  string `yaml:"converter"`
	MagickBin  string `yaml:"magick_bin"`
	FFmpegBin  string `yaml:"ffmpeg_bin"`
	FPS        int    `yaml:"fps"`
	VideoWidth int    `yaml:"video_width"`
	FrameStep  int    `yaml:"frame_step"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Converter:  "auto",
		MagickBin:  "convert",
		FFmpegBin:  "ffmpeg",
		FPS:        6,
		VideoWidth: 360,
		FrameStep:  4,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/imgprev/config.yaml or its
// platform equivalent
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+appDirName, fileName)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDirName, fileName)
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.Converter {
	case "", "auto", "magick", "imagemagick", "builtin":
	default:
		return fmt.Errorf("unknown converter %q", c.Converter)
	}
	if c.FPS < 0 {
		return fmt.Errorf("fps must not be negative")
	}
	if c.VideoWidth < 0 {
		return fmt.Errorf("video_width must not be negative")
	}
	if c.FrameStep < 0 {
		return fmt.Errorf("frame_step must not be negative")
	}
	return nil
}

// FrameDelay is the pause between video frames
func (c *Config) FrameDelay() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 6
	}
	return time.Second / time.Duration(c.FPS)
}
