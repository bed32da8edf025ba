package gpu

import (
	"encoding/binary"
	gomath "math"
	"testing"

	"github.com/Faultbox/marine-scene/internal/engine/lighting"
	"github.com/Faultbox/marine-scene/pkg/math"
)

func floatAt(buf []byte, off int) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestUniformsLayout(t *testing.T) {
	view := math.Translate(1, 2, 3)
	proj := math.Scale(4, 5, 6)
	u := NewFrameUniforms(2.5, view, proj, lighting.Default())
	u.SetWorld(math.Translate(7, 8, 9))

	buf := u.Marshal(nil)
	if len(buf) != UniformsSize {
		t.Fatalf("expected %d bytes, got %d", UniformsSize, len(buf))
	}

	tests := []struct {
		name string
		off  int
		want float32
	}{
		{"time", offTime, 2.5},
		{"pad", offPad, 0},
		// Transposed: the translation lands in the last element of each row.
		{"world x", offWorld + 3*4, 7},
		{"world y", offWorld + 7*4, 8},
		{"world z", offWorld + 11*4, 9},
		{"view x", offView + 3*4, 1},
		{"projection sy", offProjection + 5*4, 5},
		{"light dir z", offLightDirection + 8, -1},
		{"diffuse material g", offDiffuseMaterial + 4, 1},
		{"ambient light r", offAmbientLight, 1},
		{"specular material r", offSpecularMaterial, 0.8},
		{"specular light a", offSpecularLight + 12, 1},
		{"specular power", offSpecularPower, 10},
		{"eye z", offEyePosition + 8, -3},
	}
	for _, tt := range tests {
		if got := floatAt(buf, tt.off); got != tt.want {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.want, got)
		}
	}
}

func TestUniformsSetWorldOnlyChangesWorld(t *testing.T) {
	u := NewFrameUniforms(1, math.Identity(), math.Identity(), lighting.Default())
	u.SetWorld(math.Translate(1, 0, 0))
	a := append([]byte(nil), u.Marshal(nil)...)
	u.SetWorld(math.Translate(0, 0, 67))
	b := u.Marshal(nil)

	for i := range a {
		inWorld := i >= offWorld && i < offView
		if !inWorld && a[i] != b[i] {
			t.Fatalf("byte %d outside world matrix changed", i)
		}
	}
}

func TestMarshalReusesBuffer(t *testing.T) {
	u := NewFrameUniforms(0, math.Identity(), math.Identity(), lighting.Default())
	buf := make([]byte, UniformsSize)
	out := u.Marshal(buf)
	if &out[0] != &buf[0] {
		t.Error("expected Marshal to reuse a large enough buffer")
	}
}
