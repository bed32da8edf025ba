// Package renderer issues the per-frame draw sequence for the scene's drawable groups.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/engine/lighting"
	"github.com/Faultbox/marine-scene/internal/logger"
	"github.com/Faultbox/marine-scene/pkg/math"
)

var (
	// ErrInvalidGroup is returned when a drawable group has an unset handle.
	ErrInvalidGroup = errors.New("invalid drawable group")
	// ErrCaptureUnsupported is reported when a capture is requested from a
	// device that cannot read back frames.
	ErrCaptureUnsupported = errors.New("device cannot capture frames")
)

// GroupID identifies a drawable group. Groups are drawn in ID order.
type GroupID int

const (
	GroupBoat GroupID = iota
	GroupWater
	GroupRock
	GroupSky

	GroupCount
)

var groupNames = [GroupCount]string{"boat", "water", "rock", "sky"}

// String returns the group name.
func (g GroupID) String() string {
	if g < 0 || g >= GroupCount {
		return fmt.Sprintf("GroupID(%d)", int(g))
	}
	return groupNames[g]
}

// Group is a mesh, shader pair and texture shared by one or more instances.
// The handles are owned elsewhere.
type Group struct {
	Mesh    gpu.Mesh
	Shader  gpu.Shader
	Texture gpu.Texture
}

func (g Group) validate() error {
	switch {
	case g.Mesh.VertexBuffer == 0:
		return errors.New("no vertex buffer")
	case g.Mesh.IndexBuffer == 0:
		return errors.New("no index buffer")
	case g.Mesh.IndexCount == 0:
		return errors.New("empty index buffer")
	case g.Shader == 0:
		return errors.New("no shader")
	case g.Texture == 0:
		return errors.New("no texture")
	}
	return nil
}

// Config holds renderer configuration.
type Config struct {
	ClearColor math.Vec4
}

// DefaultConfig returns the default renderer configuration.
func DefaultConfig() Config {
	return Config{ClearColor: math.Vec4{0, 0.125, 0.5, 1}}
}

// Frame is everything the renderer reads for one frame.
type Frame struct {
	Time       float32
	View       math.Mat4
	Projection math.Mat4
	Light      lighting.Block
	State      gpu.RenderState

	// Instances holds the world transforms of each group.
	Instances [GroupCount][]math.Mat4

	// Capture requests a read-back of the finished frame before present.
	Capture bool
}

// Stats counts the work issued for one frame.
type Stats struct {
	Uploads int
	Draws   int

	// Capture and CaptureErr are set only when the frame requested a capture.
	Capture    *image.RGBA
	CaptureErr error
}

// Renderer draws frames through a device using a single shared uniform slot.
type Renderer struct {
	dev     gpu.Device
	config  Config
	groups  [GroupCount]Group
	uniform gpu.Buffer

	uniforms gpu.Uniforms
	scratch  []byte
}

// New validates the groups and creates the shared uniform buffer in scope.
func New(scope *gpu.Scope, groups [GroupCount]Group, cfg Config) (*Renderer, error) {
	for id, g := range groups {
		if err := g.validate(); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrInvalidGroup, GroupID(id), err)
		}
	}

	uniform, err := scope.Buffer(gpu.UniformBuffer, make([]byte, gpu.UniformsSize))
	if err != nil {
		return nil, fmt.Errorf("creating uniform buffer: %w", err)
	}

	logger.Debug("renderer ready",
		zap.Int("groups", int(GroupCount)),
		zap.Int("uniform_bytes", gpu.UniformsSize),
	)

	return &Renderer{
		dev:     scope.Device(),
		config:  cfg,
		groups:  groups,
		uniform: uniform,
		scratch: make([]byte, gpu.UniformsSize),
	}, nil
}

// Draw clears the targets, draws every instance of every group in order and presents.
// Each draw is preceded by a full upload of the uniform snapshot.
func (r *Renderer) Draw(f *Frame) Stats {
	var stats Stats

	r.dev.Clear(r.config.ClearColor)

	r.uniforms = gpu.NewFrameUniforms(f.Time, f.View, f.Projection, f.Light)
	r.dev.SetRenderState(f.State)

	for id := GroupID(0); id < GroupCount; id++ {
		g := &r.groups[id]
		r.dev.BindVertexBuffer(g.Mesh.VertexBuffer, g.Mesh.Stride, g.Mesh.Offset)
		r.dev.BindIndexBuffer(g.Mesh.IndexBuffer)
		r.dev.BindShader(g.Shader)
		r.dev.BindTexture(g.Texture)

		for _, world := range f.Instances[id] {
			r.uniforms.SetWorld(world)
			r.scratch = r.uniforms.Marshal(r.scratch)
			r.dev.UpdateUniformBuffer(r.uniform, r.scratch)
			stats.Uploads++

			r.dev.DrawIndexed(g.Mesh.IndexCount)
			stats.Draws++
		}
	}

	if f.Capture {
		stats.Capture, stats.CaptureErr = r.capture()
	}

	r.dev.Present()
	return stats
}

func (r *Renderer) capture() (*image.RGBA, error) {
	c, ok := r.dev.(gpu.Capturer)
	if !ok {
		return nil, ErrCaptureUnsupported
	}
	return c.Capture()
}
