package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MeshHandle is GPU geometry drawn as a triangle list.
type MeshHandle interface {
	Bind()
	Unbind()
	VertexCount() int32
}

// TextureHandle is a 2D texture bindable to a texture unit.
type TextureHandle interface {
	Bind(unit uint32)
	Unbind()
}

// Program is a bound-able shader program that accepts uniforms.
type Program interface {
	UniformSetter
	Use()
	Unbind()
}

// GameObject does not own its mesh, texture or material; those are shared
// with the resource cache and outlive the object.
type GameObject struct {
	Name     string
	Mesh     MeshHandle
	Texture  TextureHandle
	Material *Material
	Transform
}

type ObjectOption func(*GameObject)

func WithScale(s float32) ObjectOption {
	return func(o *GameObject) { o.Scale = s }
}

func WithPosition(p mgl32.Vec3) ObjectOption {
	return func(o *GameObject) { o.Position = p }
}

// WithRotation sets Euler angles in degrees. No implicit pitch offset is added.
func WithRotation(r mgl32.Vec3) ObjectOption {
	return func(o *GameObject) { o.Rotation = r }
}

func NewGameObject(name string, mesh MeshHandle, texture TextureHandle, material *Material, opts ...ObjectOption) *GameObject {
	obj := &GameObject{
		Name:      name,
		Mesh:      mesh,
		Texture:   texture,
		Material:  material,
		Transform: NewTransform(),
	}
	for _, opt := range opts {
		opt(obj)
	}
	return obj
}

func (o *GameObject) ModelMatrix() mgl32.Mat4 {
	return o.ObjectToWorld()
}

// RenderObject runs the per-object draw sequence: upload model and material,
// bind texture unit 0 and the mesh, draw, then unbind in reverse.
func RenderObject(p Program, o *GameObject, draw func(vertexCount int32)) {
	p.Use()
	p.SetMat4(UniformModel, o.ModelMatrix())
	if o.Material != nil {
		ApplyMaterial(p, o.Material)
	}

	if o.Texture != nil {
		o.Texture.Bind(0)
	}
	o.Mesh.Bind()
	draw(o.Mesh.VertexCount())
	o.Mesh.Unbind()
	if o.Texture != nil {
		o.Texture.Unbind()
	}
	p.Unbind()
}
