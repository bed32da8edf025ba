// Package lighting holds the fixed directional light and material used by every draw.
package lighting

import "github.com/Faultbox/marine-scene/pkg/math"

// Block is the lighting portion of the per-object uniforms.
type Block struct {
	Direction math.Vec3 // from surface toward the light

	DiffuseMaterial math.Vec4
	DiffuseLight    math.Vec4

	AmbientMaterial math.Vec4
	AmbientLight    math.Vec4

	SpecularMaterial math.Vec4
	SpecularLight    math.Vec4
	SpecularPower    float32

	EyePosition math.Vec3
}

// Default returns the scene's lighting values.
func Default() Block {
	return Block{
		Direction:        math.Vec3{X: 0.25, Y: 0.5, Z: -1},
		DiffuseMaterial:  math.Vec4{0, 1, 0, 1},
		DiffuseLight:     math.Vec4{0, 0, 0, 1},
		AmbientMaterial:  math.Vec4{0, 0, 1, 1},
		AmbientLight:     math.Vec4{1, 1, 0, 1},
		SpecularMaterial: math.Vec4{0.8, 0.8, 0.8, 1},
		SpecularLight:    math.Vec4{0.5, 0.5, 0.5, 1},
		SpecularPower:    10,
		EyePosition:      math.Vec3{Z: -3},
	}
}
