package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/logger"
)

// Validate checks that every index refers to a vertex and that there is
// at least one triangle.
func (m *MeshData) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalidMesh)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d refers to vertex %d of %d", ErrInvalidMesh, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// VertexBytes encodes the vertices as little-endian float32s, VertexStride bytes each.
func (m *MeshData) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i, v := range m.Vertices {
		f := [8]float32{
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.UV[0], v.UV[1],
		}
		for j, x := range f {
			binary.LittleEndian.PutUint32(buf[i*VertexStride+j*4:], gomath.Float32bits(x))
		}
	}
	return buf
}

// IndexBytes encodes the indices as little-endian uint32s.
func (m *MeshData) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// Upload validates the mesh and creates its buffers in scope.
func (m *MeshData) Upload(scope *gpu.Scope) (gpu.Mesh, error) {
	if err := m.Validate(); err != nil {
		return gpu.Mesh{}, err
	}

	vb, err := scope.Buffer(gpu.VertexBuffer, m.VertexBytes())
	if err != nil {
		return gpu.Mesh{}, fmt.Errorf("creating vertex buffer: %w", err)
	}
	ib, err := scope.Buffer(gpu.IndexBuffer, m.IndexBytes())
	if err != nil {
		return gpu.Mesh{}, fmt.Errorf("creating index buffer: %w", err)
	}
	if vb == 0 || ib == 0 {
		return gpu.Mesh{}, fmt.Errorf("%w: device returned a null buffer", ErrInvalidMesh)
	}

	return gpu.Mesh{
		VertexBuffer: vb,
		IndexBuffer:  ib,
		Stride:       VertexStride,
		Offset:       0,
		IndexCount:   uint32(len(m.Indices)),
	}, nil
}

// LoadMesh reads and decodes an OBJ file and uploads it.
func (m *Manager) LoadMesh(scope *gpu.Scope, path string) (gpu.Mesh, error) {
	data, err := m.Load(path)
	if err != nil {
		return gpu.Mesh{}, err
	}

	md, err := DecodeOBJ(bytes.NewReader(data))
	if err != nil {
		return gpu.Mesh{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	mesh, err := md.Upload(scope)
	if err != nil {
		return gpu.Mesh{}, fmt.Errorf("uploading %s: %w", path, err)
	}

	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(md.Vertices)),
		zap.Uint32("indices", mesh.IndexCount),
	)
	return mesh, nil
}
