package core

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// LightType values double as the shader's light type codes.
type LightType int32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
)

// MaxLights must match the lights[] array size in the fragment shader.
const MaxLights = 10

// Attenuation and cone defaults.
const (
	DefaultConstant    float32 = 1.0
	DefaultLinear      float32 = 0.09
	DefaultQuadratic   float32 = 0.032
	DefaultCutOffAngle float32 = 12.5
)

var ErrUnknownLightType = errors.New("unknown light type")

func (t LightType) String() string {
	switch t {
	case LightTypePoint:
		return "point"
	case LightTypeDirectional:
		return "directional"
	case LightTypeSpot:
		return "spot"
	}
	return fmt.Sprintf("LightType(%d)", int32(t))
}

func ParseLightType(s string) (LightType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point":
		return LightTypePoint, nil
	case "directional", "sun":
		return LightTypeDirectional, nil
	case "spot":
		return LightTypeSpot, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLightType, s)
}

// Light is a plain value; a LightSet stores copies, not pointers.
type Light struct {
	ID        string
	Type      LightType
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Constant  float32
	Linear    float32
	Quadratic float32
	// CutOff is the cosine of the spot cone half-angle.
	CutOff float32
}

func newLight(t LightType, position, direction, color mgl32.Vec3, intensity float32) Light {
	return Light{
		Type:      t,
		Position:  position,
		Direction: direction,
		Color:     color,
		Intensity: intensity,
		Constant:  DefaultConstant,
		Linear:    DefaultLinear,
		Quadratic: DefaultQuadratic,
		CutOff:    CosDeg(DefaultCutOffAngle),
	}
}

func DirectionalLight(direction, color mgl32.Vec3, intensity float32) Light {
	return newLight(LightTypeDirectional, mgl32.Vec3{}, direction, color, intensity)
}

func PointLight(position, color mgl32.Vec3, intensity float32) Light {
	return newLight(LightTypePoint, position, mgl32.Vec3{}, color, intensity)
}

func SpotLight(position, direction, color mgl32.Vec3, intensity, cutOffDeg float32) Light {
	l := newLight(LightTypeSpot, position, direction, color, intensity)
	l.CutOff = CosDeg(cutOffDeg)
	return l
}

func CosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

// LightSet is a fixed-capacity, dense array of lights. Removal swaps the last
// light into the freed slot, so order is not preserved across removals.
type LightSet struct {
	lights  [MaxLights]Light
	count   int
	version uint64
}

// Add stores a copy of l and returns its ID. A light without an ID gets a
// fresh one. When the set is full, or another light already has l's ID, the
// light is dropped and ok is false.
func (s *LightSet) Add(l Light) (id string, ok bool) {
	if s.count >= MaxLights {
		return "", false
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	} else if s.Has(l.ID) {
		return "", false
	}
	s.lights[s.count] = l
	s.count++
	s.version++
	return l.ID, true
}

func (s *LightSet) Has(id string) bool {
	for i := 0; i < s.count; i++ {
		if s.lights[i].ID == id {
			return true
		}
	}
	return false
}

func (s *LightSet) Remove(id string) bool {
	for i := 0; i < s.count; i++ {
		if s.lights[i].ID != id {
			continue
		}
		last := s.count - 1
		s.lights[i] = s.lights[last]
		s.lights[last] = Light{}
		s.count = last
		s.version++
		return true
	}
	return false
}

func (s *LightSet) RemoveLast() bool {
	if s.count == 0 {
		return false
	}
	s.count--
	s.lights[s.count] = Light{}
	s.version++
	return true
}

func (s *LightSet) Len() int { return s.count }

// At returns the light at index i. It panics unless 0 <= i < Len().
func (s *LightSet) At(i int) Light { return s.lights[:s.count][i] }

// Version changes every time a light is added or removed.
func (s *LightSet) Version() uint64 { return s.version }

// All returns a copy of the active lights in index order.
func (s *LightSet) All() []Light {
	out := make([]Light, s.count)
	copy(out, s.lights[:s.count])
	return out
}

// Apply uploads numLights and every active light in ascending index order.
func (s *LightSet) Apply(u UniformSetter) {
	u.SetInt(UniformNumLights, int32(s.count))
	for i := 0; i < s.count; i++ {
		ApplyLight(u, s.lights[i], i)
	}
}

func ApplyLight(u UniformSetter, l Light, index int) {
	prefix := fmt.Sprintf("lights[%d].", index)
	u.SetInt(prefix+"type", int32(l.Type))
	u.SetVec3(prefix+"position", l.Position)
	u.SetVec3(prefix+"direction", l.Direction)
	u.SetVec3(prefix+"color", l.Color)
	u.SetFloat(prefix+"intensity", l.Intensity)
	u.SetFloat(prefix+"constant", l.Constant)
	u.SetFloat(prefix+"linear", l.Linear)
	u.SetFloat(prefix+"quadratic", l.Quadratic)
	u.SetFloat(prefix+"cutOff", l.CutOff)
}
