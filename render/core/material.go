package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Material struct {
	DiffuseColor  mgl32.Vec3
	SpecularColor mgl32.Vec3
	AmbientColor  mgl32.Vec3
	EmissionColor mgl32.Vec3
	Shininess     float32
}

// DefaultMaterial is a plain white surface with a dim ambient term.
func DefaultMaterial() Material {
	return Material{
		DiffuseColor:  mgl32.Vec3{1, 1, 1},
		SpecularColor: mgl32.Vec3{1, 1, 1},
		AmbientColor:  mgl32.Vec3{0.1, 0.1, 0.1},
		EmissionColor: mgl32.Vec3{0, 0, 0},
		Shininess:     32,
	}
}

func ApplyMaterial(u UniformSetter, m *Material) {
	u.SetVec3("material.diffuseColor", m.DiffuseColor)
	u.SetVec3("material.specularColor", m.SpecularColor)
	u.SetVec3("material.ambientColor", m.AmbientColor)
	u.SetVec3("material.emissionColor", m.EmissionColor)
	u.SetFloat("material.shininess", m.Shininess)
}
