package assets

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/marine-scene/pkg/math"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestDecodeOBJQuad(t *testing.T) {
	md, err := DecodeOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}

	if len(md.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(md.Vertices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(md.Indices) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(md.Indices))
	}
	for i := range want {
		if md.Indices[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], md.Indices[i])
		}
	}

	if md.Vertices[2].Position != (math.Vec3{X: 1, Z: 1}) {
		t.Errorf("expected vertex 2 at (1,0,1), got %v", md.Vertices[2].Position)
	}
	if md.Vertices[0].Normal != (math.Vec3{Y: 1}) {
		t.Errorf("expected +Y normal, got %v", md.Vertices[0].Normal)
	}
	// V is flipped for top-row-first images.
	if md.Vertices[0].UV != [2]float32{0, 1} {
		t.Errorf("expected uv (0,1), got %v", md.Vertices[0].UV)
	}
}

func TestDecodeOBJSharesVertices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 3 2 4
`
	md, err := DecodeOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(md.Vertices) != 4 {
		t.Errorf("expected 4 shared vertices, got %d", len(md.Vertices))
	}
	if len(md.Indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(md.Indices))
	}
}

func TestDecodeOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	md, err := DecodeOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if md.Vertices[md.Indices[2]].Position != (math.Vec3{Y: 1}) {
		t.Errorf("expected last corner at (0,1,0), got %v", md.Vertices[md.Indices[2]].Position)
	}
}

func TestDecodeOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"no faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"short vertex", "v 0 0\n"},
		{"bad number", "v 0 x 0\n"},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad normal index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOBJ(strings.NewReader(tt.src))
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("expected ErrInvalidMesh, got %v", err)
			}
		})
	}
}

func TestMeshDataValidate(t *testing.T) {
	md := &MeshData{
		Vertices: make([]Vertex, 3),
		Indices:  []uint32{0, 1, 3},
	}
	if err := md.Validate(); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("expected ErrInvalidMesh for out of range index, got %v", err)
	}

	md.Indices = []uint32{0, 1}
	if err := md.Validate(); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("expected ErrInvalidMesh for partial triangle, got %v", err)
	}

	md.Indices = []uint32{0, 1, 2}
	if err := md.Validate(); err != nil {
		t.Errorf("expected valid mesh, got %v", err)
	}
}

func TestVertexBytesLayout(t *testing.T) {
	md := &MeshData{Vertices: []Vertex{{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Normal:   math.Vec3{X: 4, Y: 5, Z: 6},
		UV:       [2]float32{7, 8},
	}}}

	buf := md.VertexBytes()
	if len(buf) != VertexStride {
		t.Fatalf("expected %d bytes, got %d", VertexStride, len(buf))
	}
	// 7.0 as little-endian float32 at the U offset.
	if buf[24] != 0x00 || buf[25] != 0x00 || buf[26] != 0xe0 || buf[27] != 0x40 {
		t.Errorf("unexpected U bytes % x", buf[24:28])
	}
}
