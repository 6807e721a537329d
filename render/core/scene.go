package core

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrDuplicateObject = errors.New("duplicate game object name")

// Scene owns the lights and game objects of one world. Objects are kept in
// insertion order, which is also the draw order.
type Scene struct {
	Lights LightSet

	objects []*GameObject
	index   map[string]int
}

func NewScene() *Scene {
	return &Scene{
		index: make(map[string]int),
	}
}

func (s *Scene) AddObject(obj *GameObject) error {
	if _, ok := s.index[obj.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, obj.Name)
	}
	s.index[obj.Name] = len(s.objects)
	s.objects = append(s.objects, obj)
	return nil
}

func (s *Scene) Object(name string) (*GameObject, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.objects[i], true
}

// RemoveObject deletes an object while keeping the order of the rest.
func (s *Scene) RemoveObject(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].Name] = j
	}
	return true
}

func (s *Scene) Objects() []*GameObject {
	return s.objects
}

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) ApplyLights(u UniformSetter) {
	s.Lights.Apply(u)
}

// ApplyView uploads the per-frame camera uniforms.
func ApplyView(u UniformSetter, cam *Camera) {
	u.SetMat4(UniformView, cam.ViewMatrix())
	u.SetVec3(UniformViewPos, cam.Position())
}

// Draw renders every object in insertion order.
func (s *Scene) Draw(p Program, draw func(vertexCount int32)) {
	for _, obj := range s.objects {
		RenderObject(p, obj, draw)
	}
}

// Projection is the perspective used by the viewer.
type Projection struct {
	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
}

func DefaultProjection() Projection {
	return Projection{FovY: 45, Aspect: 800.0 / 600.0, Near: 0.1, Far: 100}
}

func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FovY), p.Aspect, p.Near, p.Far)
}
