// Package gpu defines the graphics device contract the scene renders through.
package gpu

import (
	"image"

	"github.com/Faultbox/marine-scene/pkg/math"
)

// Buffer is a device buffer handle. Zero is never a valid handle.
type Buffer uint32

// Shader is a linked vertex+pixel shader program handle.
type Shader uint32

// Texture is a bindable shader-resource handle.
type Texture uint32

// BufferKind selects what a buffer is bound as.
type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
	UniformBuffer
)

// RenderState is the rasterization mode applied to a whole frame.
type RenderState int

const (
	Solid RenderState = iota
	WireFrame
)

// String returns the render state name.
func (s RenderState) String() string {
	if s == WireFrame {
		return "wireframe"
	}
	return "solid"
}

// Mesh is a loaded mesh: vertex and index buffers plus the draw parameters.
type Mesh struct {
	VertexBuffer Buffer
	IndexBuffer  Buffer
	Stride       uint32
	Offset       uint32
	IndexCount   uint32
}

// Device is the set of operations the renderer issues. Implementations are
// not safe for concurrent use; every call happens on the render thread.
type Device interface {
	CreateBuffer(kind BufferKind, data []byte) (Buffer, error)
	CreateShader(vertexSrc, pixelSrc string) (Shader, error)
	CreateTexture(img image.Image) (Texture, error)

	DeleteBuffer(b Buffer)
	DeleteShader(s Shader)
	DeleteTexture(t Texture)

	Clear(color math.Vec4)
	SetRenderState(state RenderState)
	BindVertexBuffer(b Buffer, stride, offset uint32)
	BindIndexBuffer(b Buffer)
	BindShader(s Shader)
	BindTexture(t Texture)
	UpdateUniformBuffer(b Buffer, data []byte)
	DrawIndexed(count uint32)
	Present()
}

// Capturer is implemented by devices that can read back the frame being drawn.
type Capturer interface {
	Capture() (*image.RGBA, error)
}
