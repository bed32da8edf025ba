// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Drivers    []gpu.DriverType
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	driver    gpu.DriverType
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// contextAttrs are the GL attributes requested for one driver type.
type contextAttrs struct {
	accelerated bool
	depthBits   int
	stencilBits int
}

// Every driver asks for 4.1 core; they differ in what the visual must provide.
var driverAttrs = map[gpu.DriverType]contextAttrs{
	gpu.DriverHardware:  {accelerated: true, depthBits: 24, stencilBits: 8},
	gpu.DriverWarp:      {accelerated: true, depthBits: 16, stencilBits: 0},
	gpu.DriverReference: {accelerated: false, depthBits: 24, stencilBits: 8},
}

// New initializes SDL and opens a window with the first driver type that
// yields a GL context.
func New(cfg Config) (*Window, error) {
	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	drivers := cfg.Drivers
	if len(drivers) == 0 {
		drivers = gpu.DefaultDrivers()
	}

	w, driver, err := gpu.CreateFirst(drivers, func(d gpu.DriverType) (*Window, error) {
		w, err := open(cfg, d)
		if err != nil {
			logger.Warn("driver unavailable", zap.Stringer("driver", d), zap.Error(err))
		}
		return w, err
	})
	if err != nil {
		sdl.Quit()
		return nil, err
	}
	w.driver = driver

	// Enable VSync
	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Stringer("driver", driver),
	)

	return w, nil
}

// open creates the window and context for one driver type.
func open(cfg Config, d gpu.DriverType) (*Window, error) {
	attrs, ok := driverAttrs[d]
	if !ok {
		return nil, fmt.Errorf("unsupported driver type %s", d)
	}

	sdl.GLResetAttributes()
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, attrs.depthBits)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, attrs.stencilBits)
	if attrs.accelerated {
		sdl.GLSetAttribute(sdl.GL_ACCELERATED_VISUAL, 1)
	} else {
		sdl.GLSetAttribute(sdl.GL_ACCELERATED_VISUAL, 0)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	win, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	return &Window{config: cfg, driver: d, sdlWindow: win, glContext: ctx}, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Driver returns the driver type the context was created with.
func (w *Window) Driver() gpu.DriverType {
	return w.driver
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
