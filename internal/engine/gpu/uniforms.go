package gpu

import (
	"encoding/binary"
	gomath "math"

	"github.com/Faultbox/marine-scene/internal/engine/lighting"
	"github.com/Faultbox/marine-scene/pkg/math"
)

// Byte offsets of the per-object uniform block (std140).
const (
	offTime             = 0
	offPad              = 4
	offWorld            = 16
	offView             = 80
	offProjection       = 144
	offLightDirection   = 208
	offDiffuseMaterial  = 224
	offDiffuseLight     = 240
	offAmbientMaterial  = 256
	offAmbientLight     = 272
	offSpecularMaterial = 288
	offSpecularLight    = 304
	offSpecularPower    = 320
	offEyePosition      = 336

	// UniformsSize is the size of the marshalled block in bytes.
	UniformsSize = 352
)

// Uniforms is the snapshot uploaded before every draw. The matrices are
// stored transposed; the shader block reads them row-major.
type Uniforms struct {
	Time       float32
	World      math.Mat4
	View       math.Mat4
	Projection math.Mat4
	Light      lighting.Block
}

// NewFrameUniforms fills the fields shared by every draw of a frame.
// World is left for SetWorld.
func NewFrameUniforms(time float32, view, projection math.Mat4, light lighting.Block) Uniforms {
	return Uniforms{
		Time:       time,
		View:       view.Transpose(),
		Projection: projection.Transpose(),
		Light:      light,
	}
}

// SetWorld stores the transposed world matrix of the next draw.
func (u *Uniforms) SetWorld(world math.Mat4) {
	u.World = world.Transpose()
}

// Marshal serializes the block into buf, which must hold UniformsSize bytes.
func (u *Uniforms) Marshal(buf []byte) []byte {
	if len(buf) < UniformsSize {
		buf = make([]byte, UniformsSize)
	}
	buf = buf[:UniformsSize]
	clear(buf)

	putFloat(buf, offTime, u.Time)
	putFloat(buf, offPad, 0)
	putMat4(buf, offWorld, u.World)
	putMat4(buf, offView, u.View)
	putMat4(buf, offProjection, u.Projection)

	l := &u.Light
	putVec3(buf, offLightDirection, l.Direction)
	putVec4(buf, offDiffuseMaterial, l.DiffuseMaterial)
	putVec4(buf, offDiffuseLight, l.DiffuseLight)
	putVec4(buf, offAmbientMaterial, l.AmbientMaterial)
	putVec4(buf, offAmbientLight, l.AmbientLight)
	putVec4(buf, offSpecularMaterial, l.SpecularMaterial)
	putVec4(buf, offSpecularLight, l.SpecularLight)
	putFloat(buf, offSpecularPower, l.SpecularPower)
	putVec3(buf, offEyePosition, l.EyePosition)
	return buf
}

func putFloat(buf []byte, off int, f float32) {
	binary.LittleEndian.PutUint32(buf[off:], gomath.Float32bits(f))
}

func putMat4(buf []byte, off int, m math.Mat4) {
	for i, f := range m {
		putFloat(buf, off+i*4, f)
	}
}

func putVec3(buf []byte, off int, v math.Vec3) {
	putFloat(buf, off, v.X)
	putFloat(buf, off+4, v.Y)
	putFloat(buf, off+8, v.Z)
}

func putVec4(buf []byte, off int, v math.Vec4) {
	for i, f := range v {
		putFloat(buf, off+i*4, f)
	}
}
