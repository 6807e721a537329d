package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs every call made by the render step.
type recorder struct {
	*UniformBlock
	calls []string
}

func (r *recorder) Use()    { r.calls = append(r.calls, "use") }
func (r *recorder) Unbind() { r.calls = append(r.calls, "unuse") }

type fakeMesh struct {
	r     *recorder
	count int32
}

func (m *fakeMesh) Bind()              { m.r.calls = append(m.r.calls, "mesh.bind") }
func (m *fakeMesh) Unbind()            { m.r.calls = append(m.r.calls, "mesh.unbind") }
func (m *fakeMesh) VertexCount() int32 { return m.count }

type fakeTexture struct {
	r    *recorder
	unit uint32
}

func (tx *fakeTexture) Bind(unit uint32) {
	tx.unit = unit
	tx.r.calls = append(tx.r.calls, "tex.bind")
}
func (tx *fakeTexture) Unbind() { tx.r.calls = append(tx.r.calls, "tex.unbind") }

func newRecorder() *recorder {
	return &recorder{UniformBlock: NewUniformBlock()}
}

func TestSceneWithOneDirectionalLight(t *testing.T) {
	scene := NewScene()
	_, ok := scene.Lights.Add(DirectionalLight(mgl32.Vec3{-0.1, -0.5, -0.3}, mgl32.Vec3{1, 1, 1}, 1))
	require.True(t, ok)

	u := NewUniformBlock()
	scene.ApplyLights(u)

	n, ok := u.Int(UniformNumLights)
	require.True(t, ok)
	assert.Equal(t, int32(1), n)

	typ, ok := u.Int("lights[0].type")
	require.True(t, ok)
	assert.Equal(t, int32(LightTypeDirectional), typ)
}

func TestSceneObjectsKeepInsertionOrder(t *testing.T) {
	scene := NewScene()
	for _, name := range []string{"tree", "player", "box", "barrel"} {
		require.NoError(t, scene.AddObject(NewGameObject(name, nil, nil, nil)))
	}

	names := func() []string {
		var out []string
		for _, o := range scene.Objects() {
			out = append(out, o.Name)
		}
		return out
	}
	assert.Equal(t, []string{"tree", "player", "box", "barrel"}, names())

	assert.True(t, scene.RemoveObject("player"))
	assert.False(t, scene.RemoveObject("player"))
	assert.Equal(t, []string{"tree", "box", "barrel"}, names())

	obj, ok := scene.Object("barrel")
	require.True(t, ok)
	assert.Equal(t, "barrel", obj.Name)
}

func TestSceneRejectsDuplicateNames(t *testing.T) {
	scene := NewScene()
	require.NoError(t, scene.AddObject(NewGameObject("tree", nil, nil, nil)))

	err := scene.AddObject(NewGameObject("tree", nil, nil, nil))
	assert.ErrorIs(t, err, ErrDuplicateObject)
	assert.Equal(t, 1, scene.Len())
}

func TestGameObjectDefaults(t *testing.T) {
	obj := NewGameObject("a", nil, nil, nil)
	assert.Equal(t, mgl32.Vec3{}, obj.Position)
	assert.Equal(t, mgl32.Vec3{}, obj.Rotation)
	assert.Equal(t, float32(1), obj.Scale)

	obj = NewGameObject("b", nil, nil, nil,
		WithScale(0.01),
		WithPosition(mgl32.Vec3{-20, 8, -20}),
		WithRotation(mgl32.Vec3{-90, 0, 0}),
	)
	assert.Equal(t, float32(0.01), obj.Scale)
	assert.Equal(t, mgl32.Vec3{-20, 8, -20}, obj.Position)
	assert.Equal(t, mgl32.Vec3{-90, 0, 0}, obj.Rotation, "rotation is taken as given")
}

func TestModelMatrix(t *testing.T) {
	obj := NewGameObject("a", nil, nil, nil,
		WithScale(2),
		WithPosition(mgl32.Vec3{10, 20, 30}),
		WithRotation(mgl32.Vec3{0, 90, 0}),
	)

	m := obj.ModelMatrix()
	// +X rotated 90 degrees about Y points to -Z, then scaled and translated.
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec3Near(t, mgl32.Vec3{10, 20, 28}, p, 1e-4, "rotated +X")

	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVec3Near(t, mgl32.Vec3{10, 20, 30}, origin, 1e-5, "origin")
}

func TestRotationMatrixOrder(t *testing.T) {
	r := RotationMatrix(mgl32.Vec3{30, 45, 60})
	expected := mgl32.HomogRotate3DX(mgl32.DegToRad(30)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(60)))
	for i := range expected {
		assert.InDelta(t, expected[i], r[i], 1e-6, "element %d", i)
	}
}

func TestRenderObjectSequence(t *testing.T) {
	r := newRecorder()
	mat := DefaultMaterial()
	tex := &fakeTexture{r: r, unit: 99}
	obj := NewGameObject("box", &fakeMesh{r: r, count: 36}, tex, &mat, WithPosition(mgl32.Vec3{1, 2, 3}))

	var drawn int32
	RenderObject(r, obj, func(n int32) {
		drawn = n
		r.calls = append(r.calls, "draw")
	})

	assert.Equal(t, []string{"use", "tex.bind", "mesh.bind", "draw", "mesh.unbind", "tex.unbind", "unuse"}, r.calls)
	assert.Equal(t, int32(36), drawn)
	assert.Equal(t, uint32(0), tex.unit)

	model, ok := r.Mat4(UniformModel)
	require.True(t, ok)
	assert.Equal(t, obj.ModelMatrix(), model)

	shininess, ok := r.Float("material.shininess")
	require.True(t, ok)
	assert.Equal(t, float32(32), shininess)
	ambient, _ := r.Vec3("material.ambientColor")
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, ambient)
}

func TestSceneDrawVisitsEveryObject(t *testing.T) {
	r := newRecorder()
	scene := NewScene()
	mat := DefaultMaterial()
	require.NoError(t, scene.AddObject(NewGameObject("a", &fakeMesh{r: r, count: 3}, nil, &mat)))
	require.NoError(t, scene.AddObject(NewGameObject("b", &fakeMesh{r: r, count: 6}, nil, &mat)))

	var counts []int32
	scene.Draw(r, func(n int32) { counts = append(counts, n) })

	assert.Equal(t, []int32{3, 6}, counts)
}

func TestApplyView(t *testing.T) {
	cam := DefaultCamera()
	u := NewUniformBlock()
	ApplyView(u, cam)

	view, ok := u.Mat4(UniformView)
	require.True(t, ok)
	assert.Equal(t, cam.ViewMatrix(), view)

	pos, ok := u.Vec3(UniformViewPos)
	require.True(t, ok)
	assert.Equal(t, cam.Position(), pos)
}

func TestDefaultProjection(t *testing.T) {
	p := DefaultProjection()
	expected := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)
	assert.Equal(t, expected, p.Matrix())
}
