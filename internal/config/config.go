// Package config handles scene configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and device settings.
type GraphicsConfig struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Fullscreen bool     `yaml:"fullscreen"`
	VSync      bool     `yaml:"vsync"`
	Drivers    []string `yaml:"drivers"` // tried in order: hardware, warp, reference
}

// SceneConfig holds scene content settings.
type SceneConfig struct {
	AssetDir string `yaml:"asset_dir"`
	// FixedTimestep is the per-tick time advance, in seconds, used when
	// running on the reference driver.
	FixedTimestep float64 `yaml:"fixed_timestep"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// ControlsConfig maps trigger names to SDL key names.
// Missing triggers keep their default key.
type ControlsConfig struct {
	Bindings map[string]string `yaml:"bindings"`
}

// AudioConfig holds ambience and effect playback settings.
// Volumes range from 0 to 1.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MasterVolume  float64 `yaml:"master_volume"`
	AmbientVolume float64 `yaml:"ambient_volume"`
	EffectsVolume float64 `yaml:"effects_volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1920,
			Height:     1080,
			Fullscreen: false,
			VSync:      true,
			Drivers:    []string{"hardware", "warp", "reference"},
		},
		Scene: SceneConfig{
			AssetDir:      "assets",
			FixedTimestep: math.Pi * 0.0125,
			ScreenshotDir: "screenshots",
		},
		Controls: ControlsConfig{
			Bindings: map[string]string{},
		},
		Audio: AudioConfig{
			Enabled:       true,
			MasterVolume:  1.0,
			AmbientVolume: 0.6,
			EffectsVolume: 0.8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot produce a window or a scene.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid resolution %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Scene.AssetDir == "" {
		errs = append(errs, errors.New("scene.asset_dir is empty"))
	}
	if c.Scene.FixedTimestep <= 0 {
		errs = append(errs, fmt.Errorf("scene.fixed_timestep must be positive, got %v", c.Scene.FixedTimestep))
	}
	for name, v := range map[string]float64{
		"audio.master_volume":  c.Audio.MasterVolume,
		"audio.ambient_volume": c.Audio.AmbientVolume,
		"audio.effects_volume": c.Audio.EffectsVolume,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}
	return errors.Join(errs...)
}
