package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared by the Phong shaders.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformViewPos    = "ViewPos"
	UniformNumLights  = "numLights"
	UniformTexture    = "texture0"
)

// UniformSetter is anything that accepts named shader uniforms.
type UniformSetter interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, v mgl32.Mat4)
}

// UniformBlock is an in-memory UniformSetter. It keeps the last value written
// under each name and can be read back.
type UniformBlock struct {
	ints   map[string]int32
	floats map[string]float32
	vec3s  map[string]mgl32.Vec3
	mat4s  map[string]mgl32.Mat4
}

func NewUniformBlock() *UniformBlock {
	return &UniformBlock{
		ints:   make(map[string]int32),
		floats: make(map[string]float32),
		vec3s:  make(map[string]mgl32.Vec3),
		mat4s:  make(map[string]mgl32.Mat4),
	}
}

func (b *UniformBlock) SetInt(name string, v int32)       { b.ints[name] = v }
func (b *UniformBlock) SetFloat(name string, v float32)   { b.floats[name] = v }
func (b *UniformBlock) SetVec3(name string, v mgl32.Vec3) { b.vec3s[name] = v }
func (b *UniformBlock) SetMat4(name string, v mgl32.Mat4) { b.mat4s[name] = v }

func (b *UniformBlock) Int(name string) (int32, bool) {
	v, ok := b.ints[name]
	return v, ok
}

func (b *UniformBlock) Float(name string) (float32, bool) {
	v, ok := b.floats[name]
	return v, ok
}

func (b *UniformBlock) Vec3(name string) (mgl32.Vec3, bool) {
	v, ok := b.vec3s[name]
	return v, ok
}

func (b *UniformBlock) Mat4(name string) (mgl32.Mat4, bool) {
	v, ok := b.mat4s[name]
	return v, ok
}

// Len returns the number of distinct uniform names written.
func (b *UniformBlock) Len() int {
	return len(b.ints) + len(b.floats) + len(b.vec3s) + len(b.mat4s)
}
