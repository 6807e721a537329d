package glrender

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gekko3d/lumen/render/asset"
)

// Mesh is an uploaded, non-indexed triangle list.
type Mesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

func NewMesh(data *asset.MeshData) *Mesh {
	m := &Mesh{vertexCount: int32(data.VertexCount())}
	stride := int32(asset.FloatsPerVertex * 4)

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*4, gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	// position, normal, uv
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *Mesh) Bind()              { gl.BindVertexArray(m.vao) }
func (m *Mesh) Unbind()            { gl.BindVertexArray(0) }
func (m *Mesh) VertexCount() int32 { return m.vertexCount }

func (m *Mesh) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
