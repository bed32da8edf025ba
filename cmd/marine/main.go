// Package main is the entry point for the marine scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/marine-scene/internal/assets"
	"github.com/Faultbox/marine-scene/internal/config"
	"github.com/Faultbox/marine-scene/internal/engine/audio"
	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/engine/input"
	"github.com/Faultbox/marine-scene/internal/engine/opengl"
	"github.com/Faultbox/marine-scene/internal/engine/window"
	"github.com/Faultbox/marine-scene/internal/game"
	"github.com/Faultbox/marine-scene/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Marine Scene ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("scene error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("scene closed normally")
	logger.Sync()
}

// run owns every resource so each one is released on every return path.
func run(cfg *config.Config) error {
	drivers, err := gpu.ParseDrivers(cfg.Graphics.Drivers)
	if err != nil {
		return fmt.Errorf("graphics.drivers: %w", err)
	}
	bindings, err := input.ParseBindings(cfg.Controls.Bindings)
	if err != nil {
		return fmt.Errorf("controls.bindings: %w", err)
	}

	win, err := window.New(window.Config{
		Title:      "Marine Scene",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Drivers:    drivers,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	dev, err := opengl.New(win.SwapBuffers)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	defer dev.Close()

	info := dev.Info()
	logger.Info("device created",
		zap.Stringer("driver", win.Driver()),
		zap.String("vendor", info.Vendor),
		zap.String("renderer", info.Renderer),
		zap.String("version", info.Version),
		zap.String("glsl", info.GLSL),
	)
	dev.Viewport(win.GetSize())

	keyboard, err := window.NewKeyboard(bindings)
	if err != nil {
		return fmt.Errorf("controls.bindings: %w", err)
	}
	keyboard.OnResize = dev.Viewport

	mgr := assets.NewManager(os.DirFS(cfg.Scene.AssetDir))
	defer mgr.Close()

	clock := game.NewClock(win.Driver(), cfg.Scene.FixedTimestep)
	gameCfg := game.DefaultConfig(cfg.Graphics.Width, cfg.Graphics.Height)
	gameCfg.ScreenshotDir = cfg.Scene.ScreenshotDir
	g, err := game.New(gameCfg, dev, keyboard, mgr, clock)
	if err != nil {
		return err
	}
	defer g.Close()

	if cfg.Audio.Enabled {
		sound := audio.New(audio.Settings{
			Master:  cfg.Audio.MasterVolume,
			Ambient: cfg.Audio.AmbientVolume,
			Effects: cfg.Audio.EffectsVolume,
		})
		if err := sound.Init(); err != nil {
			logger.Warn("audio disabled", zap.Error(err))
		} else {
			defer sound.Close()
			g.AttachSound(sound)
		}
	}

	return g.Run()
}
