package assets

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/marine-scene/pkg/math"
)

// Vertex is one interleaved mesh vertex as uploaded to the device.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       [2]float32
}

// VertexStride is the size of an encoded Vertex in bytes.
const VertexStride = 32

// MeshData is a decoded triangle mesh.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// objKey identifies a unique v/vt/vn combination. Missing parts are -1.
type objKey struct {
	v, vt, vn int
}

type objDecoder struct {
	positions []math.Vec3
	normals   []math.Vec3
	uvs       [][2]float32

	mesh   MeshData
	lookup map[objKey]uint32
	line   int
}

// DecodeOBJ parses a Wavefront OBJ stream. Polygons are fan-triangulated and
// shared v/vt/vn triples become a single vertex. Objects, groups and
// materials are ignored; everything is one mesh.
func DecodeOBJ(r io.Reader) (*MeshData, error) {
	dec := &objDecoder{lookup: make(map[objKey]uint32)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		dec.line++
		if err := dec.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidMesh, dec.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMesh, err)
	}
	if len(dec.mesh.Indices) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrInvalidMesh)
	}
	return &dec.mesh, nil
}

func (dec *objDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		dec.positions = append(dec.positions, v)
	case "vn":
		n, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		dec.normals = append(dec.normals, n)
	case "vt":
		if len(fields) < 3 {
			return fmt.Errorf("texcoord needs 2 values, got %d", len(fields)-1)
		}
		var uv [2]float32
		for i := range uv {
			f, err := strconv.ParseFloat(fields[1+i], 32)
			if err != nil {
				return fmt.Errorf("texcoord: %w", err)
			}
			uv[i] = float32(f)
		}
		// Images are uploaded top row first.
		uv[1] = 1 - uv[1]
		dec.uvs = append(dec.uvs, uv)
	case "f":
		return dec.parseFace(fields[1:])
	}
	return nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("need 3 values, got %d", len(fields))
	}
	var out [3]float32
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = float32(f)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// parseFace parses f v1[/vt1][/vn1] v2... and emits a triangle fan.
func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face with %d vertices", len(fields))
	}

	corners := make([]uint32, len(fields))
	for i, f := range fields {
		key, err := dec.parseCorner(f)
		if err != nil {
			return err
		}
		corners[i] = dec.vertex(key)
	}

	for i := 1; i+1 < len(corners); i++ {
		dec.mesh.Indices = append(dec.mesh.Indices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (dec *objDecoder) parseCorner(field string) (objKey, error) {
	parts := strings.Split(field, "/")
	key := objKey{v: -1, vt: -1, vn: -1}

	var err error
	if key.v, err = resolveIndex(parts[0], len(dec.positions)); err != nil {
		return key, fmt.Errorf("position index: %w", err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = resolveIndex(parts[1], len(dec.uvs)); err != nil {
			return key, fmt.Errorf("texcoord index: %w", err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = resolveIndex(parts[2], len(dec.normals)); err != nil {
			return key, fmt.Errorf("normal index: %w", err)
		}
	}
	return key, nil
}

// resolveIndex turns a 1-based or negative relative OBJ index into a
// 0-based index below count.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("%d out of range (have %d)", n, count)
	}
	return idx, nil
}

func (dec *objDecoder) vertex(key objKey) uint32 {
	if i, ok := dec.lookup[key]; ok {
		return i
	}
	v := Vertex{Position: dec.positions[key.v]}
	if key.vn >= 0 {
		v.Normal = dec.normals[key.vn]
	}
	if key.vt >= 0 {
		v.UV = dec.uvs[key.vt]
	}
	i := uint32(len(dec.mesh.Vertices))
	dec.mesh.Vertices = append(dec.mesh.Vertices, v)
	dec.lookup[key] = i
	return i
}
