package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closeEnough(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) < float64(eps)
}

// assertVec3Near compares component-wise with an absolute tolerance, so
// values that should be zero may carry float32 rounding noise.
func assertVec3Near(t *testing.T, want, got mgl32.Vec3, eps float64, msg string) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "%s: component %d of %v", msg, i, got)
	}
}

func assertOrthonormal(t *testing.T, c *Camera) {
	t.Helper()
	const eps = 1e-4
	assert.InDelta(t, 1.0, c.Front().Len(), eps, "front must be unit length")
	assert.InDelta(t, 1.0, c.Right().Len(), eps, "right must be unit length")
	assert.InDelta(t, 1.0, c.Up().Len(), eps, "up must be unit length")
	assert.InDelta(t, 0.0, c.Front().Dot(c.Right()), eps, "front/right must be orthogonal")
	assert.InDelta(t, 0.0, c.Front().Dot(c.Up()), eps, "front/up must be orthogonal")
	assert.InDelta(t, 0.0, c.Right().Dot(c.Up()), eps, "right/up must be orthogonal")
}

func TestDefaultCamera(t *testing.T) {
	c := DefaultCamera()

	assert.Equal(t, DefaultCameraPosition, c.Position())
	assert.Equal(t, DefaultYaw, c.Yaw())
	assert.Equal(t, DefaultPitch, c.Pitch())
	assert.Equal(t, DefaultSpeed, c.MovementSpeed)
	assert.Equal(t, DefaultSensitivity, c.MouseSensitivity)
	assertOrthonormal(t, c)
}

func TestCameraVectorsStayOrthonormal(t *testing.T) {
	c := DefaultCamera()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		x := rng.Float32()*4000 - 2000
		y := rng.Float32()*4000 - 2000
		c.ProcessMouseMovement(x, y, true)
		assertOrthonormal(t, c)
	}
}

func TestCameraPitchClamped(t *testing.T) {
	c := DefaultCamera()
	rng := rand.New(rand.NewSource(7))

	// Huge jumps in both directions.
	c.ProcessMouseMovement(DefaultCursorX, -1e6, true)
	assert.Equal(t, PitchLimit, c.Pitch())
	c.ProcessMouseMovement(DefaultCursorX, 1e6, true)
	assert.Equal(t, -PitchLimit, c.Pitch())

	for i := 0; i < 1000; i++ {
		c.ProcessMouseMovement(rng.Float32()*1e4-5e3, rng.Float32()*1e4-5e3, true)
		require.LessOrEqual(t, c.Pitch(), PitchLimit)
		require.GreaterOrEqual(t, c.Pitch(), -PitchLimit)
	}
}

func TestCameraPitchUnconstrained(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, DefaultWorldUp, 0, 0)
	c.ProcessMouseMovement(DefaultCursorX, DefaultCursorY-1000, false)

	assert.InDelta(t, 100.0, c.Pitch(), 1e-3)
}

func TestCameraMouseSignConvention(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, DefaultWorldUp, 0, 0)

	// Cursor moves right and up on screen.
	c.ProcessMouseMovement(DefaultCursorX+10, DefaultCursorY-20, true)

	assert.InDelta(t, 1.0, c.Yaw(), 1e-5)
	assert.InDelta(t, 2.0, c.Pitch(), 1e-5)
}

func TestCameraViewMatrixLookingAlongZ(t *testing.T) {
	p := mgl32.Vec3{3, -2, 7}
	c := NewCamera(p, DefaultWorldUp, 90, 0)

	expected := mgl32.LookAtV(p, p.Add(mgl32.Vec3{0, 0, 1}), mgl32.Vec3{0, 1, 0})
	got := c.ViewMatrix()

	for i := 0; i < 16; i++ {
		if !closeEnough(expected[i], got[i], 1e-5) {
			t.Errorf("view matrix element %d: expected %f, got %f", i, expected[i], got[i])
		}
	}
	assert.Equal(t, p, c.Position(), "ViewMatrix must not move the camera")
}

func TestCameraProcessKeyboard(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, DefaultWorldUp, 90, 0)
	c.MovementSpeed = 2

	c.ProcessKeyboard(Forward, 0.5)
	assertVec3Near(t, mgl32.Vec3{0, 0, 1}, c.Position(), 1e-5, "forward")

	c.ProcessKeyboard(Backward, 0.5)
	assertVec3Near(t, mgl32.Vec3{}, c.Position(), 1e-5, "backward")

	// Looking along +Z, right is -X.
	c.ProcessKeyboard(Right, 1)
	assertVec3Near(t, mgl32.Vec3{-2, 0, 0}, c.Position(), 1e-5, "right")

	c.ProcessKeyboard(Left, 1)
	assertVec3Near(t, mgl32.Vec3{}, c.Position(), 1e-5, "left")

	c.ProcessKeyboard(Forward, -1)
	assertVec3Near(t, mgl32.Vec3{}, c.Position(), 1e-5, "negative dt must not move")
}

func TestCameraSetCursor(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, DefaultWorldUp, 0, 0)
	c.SetCursor(100, 100)
	c.ProcessMouseMovement(100, 100, true)

	assert.Equal(t, float32(0), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
}
