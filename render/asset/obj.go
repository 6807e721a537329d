package asset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/udhos/gwob"
)

// FloatsPerVertex is the interleaved layout: position(3) normal(3) uv(2).
const FloatsPerVertex = 8

var ErrEmptyMesh = errors.New("mesh has no faces")

// MeshData is non-indexed triangle-list geometry, ready for a vertex buffer.
type MeshData struct {
	Vertices []float32
	HasUVs   bool
	HasNorms bool
	// Warnings are the lines the OBJ parser skipped.
	Warnings []string
}

func (m *MeshData) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

func LoadObjFile(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mesh, err := ParseObj(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParseObj reads Wavefront OBJ geometry. Polygons are triangulated by the
// parser; materials and groups are ignored. The indexed result is expanded
// into one vertex per triangle corner.
func ParseObj(r io.Reader) (*MeshData, error) {
	mesh := &MeshData{}
	opts := &gwob.ObjParserOptions{
		Logger: func(msg string) { mesh.Warnings = append(mesh.Warnings, msg) },
	}

	obj, err := gwob.NewObjFromReader("mesh", r, opts)
	if err != nil {
		return nil, err
	}
	if len(obj.Indices) < 3 || obj.StrideSize == 0 {
		return nil, ErrEmptyMesh
	}

	const floatSize = 4
	stride := obj.StrideSize / floatSize
	posOff := obj.StrideOffsetPosition / floatSize
	texOff := obj.StrideOffsetTexture / floatSize
	normOff := obj.StrideOffsetNormal / floatSize

	mesh.HasUVs = obj.TextCoordFound
	mesh.HasNorms = obj.NormCoordFound

	count := len(obj.Indices) - len(obj.Indices)%3
	mesh.Vertices = make([]float32, 0, count*FloatsPerVertex)
	for _, idx := range obj.Indices[:count] {
		base := idx * stride
		if idx < 0 || base+stride > len(obj.Coord) {
			return nil, fmt.Errorf("vertex index %d out of range (have %d)", idx, len(obj.Coord)/stride)
		}
		v := obj.Coord[base : base+stride]

		var n [3]float32
		var uv [2]float32
		if mesh.HasNorms {
			copy(n[:], v[normOff:normOff+3])
		}
		if mesh.HasUVs {
			copy(uv[:], v[texOff:texOff+2])
		}
		mesh.Vertices = append(mesh.Vertices,
			v[posOff], v[posOff+1], v[posOff+2],
			n[0], n[1], n[2],
			uv[0], uv[1],
		)
	}
	return mesh, nil
}
