package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an object in the world. Rotation holds Euler angles in
// degrees, applied X then Y then Z.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 0},
		Scale:    1,
	}
}

// RotationMatrix returns Rx * Ry * Rz for the Euler angles in degrees.
func RotationMatrix(degrees mgl32.Vec3) mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(degrees.X()))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(degrees.Y()))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(degrees.Z()))
	return rx.Mul4(ry).Mul4(rz)
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := RotationMatrix(t.Rotation)
	scale := mgl32.Scale3D(t.Scale, t.Scale, t.Scale)

	return translate.Mul4(rotate).Mul4(scale)
}
