// Package game implements the scene's tick loop and resource lifetime.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/marine-scene/internal/assets"
	"github.com/Faultbox/marine-scene/internal/engine/camera"
	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/engine/input"
	"github.com/Faultbox/marine-scene/internal/engine/renderer"
	"github.com/Faultbox/marine-scene/internal/engine/screenshot"
	"github.com/Faultbox/marine-scene/internal/game/control"
	"github.com/Faultbox/marine-scene/internal/game/scene"
	"github.com/Faultbox/marine-scene/internal/logger"
)

// Config holds game configuration.
type Config struct {
	Width    int
	Height   int
	Manifest Manifest
	Presets  map[camera.Mode]camera.Preset
	Renderer renderer.Config
	Sounds   SoundAssets

	// ScreenshotDir receives captured frames.
	ScreenshotDir string
}

// SoundAssets names the optional WAV files played by an attached Sound.
// Missing files are skipped.
type SoundAssets struct {
	Ambient string
	Boost   string
}

// Sound plays the scene's audio.
type Sound interface {
	PlayAmbient(data []byte, name string) error
	PlayEffect(data []byte) error
}

// DefaultConfig returns the scene defaults for a width x height viewport.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:    width,
		Height:   height,
		Manifest: DefaultManifest(),
		Presets:  camera.DefaultPresets(),
		Renderer: renderer.DefaultConfig(),
		Sounds:   SoundAssets{Ambient: "ocean.wav", Boost: "boost.wav"},

		ScreenshotDir: "screenshots",
	}
}

// Game is the main scene instance.
type Game struct {
	config   Config
	running  bool
	scope    *gpu.Scope
	renderer *renderer.Renderer
	input    input.Source
	clock    Clock
	state    *scene.State
	frame    renderer.Frame
	assets   *assets.Manager

	sound    Sound
	boost    []byte
	lastMove control.Move

	shots    *screenshot.Writer
	lastShot bool
}

// New loads every asset onto dev and builds the scene. Resources created
// before a failure are released before New returns.
func New(cfg Config, dev gpu.Device, src input.Source, mgr *assets.Manager, clock Clock) (g *Game, err error) {
	logger.Info("initializing scene",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	scope := gpu.NewScope(dev)
	defer func() {
		if err != nil {
			scope.Close()
		}
	}()

	groups, err := LoadGroups(scope, mgr, cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("loading scene assets: %w", err)
	}

	r, err := renderer.New(scope, groups, cfg.Renderer)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	state, err := scene.New(float32(cfg.Width), float32(cfg.Height), cfg.Presets)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene state: %w", err)
	}

	logger.Info("scene initialized", zap.Int("resources", scope.Len()))
	return &Game{
		config:   cfg,
		scope:    scope,
		renderer: r,
		input:    src,
		clock:    clock,
		state:    state,
		assets:   mgr,
		shots:    screenshot.NewWriter(cfg.ScreenshotDir, "marine"),
	}, nil
}

// State returns the scene state.
func (g *Game) State() *scene.State {
	return g.state
}

// AttachSound starts the ambient track on s and arms the boost effect.
// Audio failures are logged and never stop the scene.
func (g *Game) AttachSound(s Sound) {
	g.sound = s

	if data, ok := g.loadSound(g.config.Sounds.Ambient); ok {
		if err := s.PlayAmbient(data, g.config.Sounds.Ambient); err != nil {
			logger.Warn("ambient track failed", zap.String("file", g.config.Sounds.Ambient), zap.Error(err))
		}
	}
	g.boost, _ = g.loadSound(g.config.Sounds.Boost)
}

func (g *Game) loadSound(name string) ([]byte, bool) {
	if name == "" {
		return nil, false
	}
	if !g.assets.Exists(name) {
		logger.Debug("sound not found", zap.String("file", name))
		return nil, false
	}
	data, err := g.assets.Load(name)
	if err != nil {
		logger.Warn("sound unreadable", zap.String("file", name), zap.Error(err))
		return nil, false
	}
	return data, true
}

// playEffects starts the boost effect on the tick boost begins.
func (g *Game) playEffects(cmd control.Command) {
	starting := cmd.Move == control.MoveBoost && g.lastMove != control.MoveBoost
	g.lastMove = cmd.Move
	if !starting || g.sound == nil || g.boost == nil {
		return
	}
	if err := g.sound.PlayEffect(g.boost); err != nil {
		logger.Warn("boost effect failed", zap.Error(err))
	}
}

// Run ticks until the window closes or the quit trigger is held.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting scene loop")

	for g.running {
		if !g.Tick() {
			g.running = false
			break
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Stringer("camera", g.state.Cameras.Active()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("scene loop stopped")
	return nil
}

// Tick runs one input, update and draw cycle. It returns false when the
// scene should stop; nothing is drawn on that tick.
func (g *Game) Tick() bool {
	if g.input.Update() {
		return false
	}

	elapsed := g.clock.Tick()
	cmd := control.Step(g.state, g.input.Snapshot())
	if cmd.Quit {
		return false
	}
	g.playEffects(cmd)
	g.state.Advance(elapsed)

	g.state.Frame(&g.frame)
	g.frame.Capture = cmd.Screenshot && !g.lastShot
	g.lastShot = cmd.Screenshot

	stats := g.renderer.Draw(&g.frame)
	if g.frame.Capture {
		g.saveCapture(stats)
	}
	if stats.Draws != stats.Uploads {
		logger.Warn("draw and upload counts differ",
			zap.Int("draws", stats.Draws),
			zap.Int("uploads", stats.Uploads),
		)
	}
	return true
}

func (g *Game) saveCapture(stats renderer.Stats) {
	if stats.CaptureErr != nil {
		logger.Warn("screenshot failed", zap.Error(stats.CaptureErr))
		return
	}
	path, err := g.shots.Save(stats.Capture)
	if err != nil {
		logger.Warn("screenshot not saved", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases every device resource. It is safe to call twice.
func (g *Game) Close() {
	logger.Info("closing scene", zap.Int("resources", g.scope.Len()))
	g.scope.Close()
}
