package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Default camera values.
const (
	DefaultYaw         float32 = -536.1
	DefaultPitch       float32 = -6.70003
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1

	// Screen-center estimate for a 900x900 window.
	DefaultCursorX float32 = 450
	DefaultCursorY float32 = 450

	PitchLimit float32 = 89.0
)

var (
	DefaultCameraPosition = mgl32.Vec3{45.5763, 24.6922, 0.743469}
	DefaultWorldUp        = mgl32.Vec3{0, 1, 0}
)

// Camera is a free-flying yaw/pitch camera. Front, Right and Up are derived
// from yaw and pitch and are recomputed every time either changes.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32

	MovementSpeed    float32
	MouseSensitivity float32

	lastX, lastY float32
}

func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		position:         position,
		worldUp:          worldUp,
		yaw:              yaw,
		pitch:            pitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		lastX:            DefaultCursorX,
		lastY:            DefaultCursorY,
	}
	c.updateVectors()
	return c
}

func DefaultCamera() *Camera {
	return NewCamera(DefaultCameraPosition, DefaultWorldUp, DefaultYaw, DefaultPitch)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Front() mgl32.Vec3    { return c.front }
func (c *Camera) Right() mgl32.Vec3    { return c.right }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }

// SetCursor re-seats the last known cursor position without rotating the
// camera. Used after the window warps the pointer.
func (c *Camera) SetCursor(x, y float32) {
	c.lastX = x
	c.lastY = y
}

func (c *Camera) ProcessKeyboard(direction Movement, dt float32) {
	if dt <= 0 {
		return
	}
	velocity := c.MovementSpeed * dt
	switch direction {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement rotates the camera by the cursor offset since the
// previous call. Screen y grows downwards, so it is inverted for pitch.
func (c *Camera) ProcessMouseMovement(x, y float32, constrainPitch bool) {
	xOffset := (x - c.lastX) * c.MouseSensitivity
	yOffset := (c.lastY - y) * c.MouseSensitivity
	c.lastX = x
	c.lastY = y

	c.yaw += xOffset
	c.pitch += yOffset

	if constrainPitch {
		c.pitch = mgl32.Clamp(c.pitch, -PitchLimit, PitchLimit)
	}

	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yawRad := float64(mgl32.DegToRad(c.yaw))
	pitchRad := float64(mgl32.DegToRad(c.pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(pitchRad) * math.Cos(yawRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Cos(pitchRad) * math.Sin(yawRad)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
