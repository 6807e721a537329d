package lumen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lumen/render/core"
)

const testSceneYAML = `
shader: phong
clear_color: [0.1, 0.2, 0.3]
projection:
  fov: 60
  far: 500
camera:
  position: [0, 5, 10]
  yaw: -90
  pitch: 0
  speed: 4
assets:
  root: assets
  meshes:
    box: box.obj
  textures:
    box: {path: box.png}
    skull: {path: skull.png, optional: true}
materials:
  shiny:
    specular: [1, 1, 1]
    shininess: 128
lights:
  - name: sun
    type: directional
    direction: [0, -1, 0]
  - name: lamp
    type: point
    position: [1, 2, 3]
    color: [1, 0.5, 0]
    intensity: 2
  - type: spot
    position: [0, 3, 0]
    cutoff: 20
objects:
  - name: crate
    mesh: box
    texture: box
    material: shiny
    position: [1, 0, -2]
    scale: 0.5
  - name: ball
    mesh: cloud
    rotation: [0, 45, 0]
`

func newTestCache(t *testing.T) *ResourceCache {
	t.Helper()
	cache, err := NewResourceCache(&fakeDevice{})
	require.NoError(t, err)
	return cache
}

func TestParseScene(t *testing.T) {
	def, err := ParseScene([]byte(testSceneYAML))
	require.NoError(t, err)

	assert.Equal(t, "phong", def.Shader)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, def.ClearColor)
	assert.Equal(t, "assets", def.Assets.Root)
	assert.True(t, def.Assets.Textures["skull"].Optional)
	require.Len(t, def.Lights, 3)
	require.Len(t, def.Objects, 2)
	assert.Equal(t, "crate", def.Objects[0].Name)

	p := def.ProjectionParams()
	assert.Equal(t, float32(60), p.FovY)
	assert.Equal(t, float32(500), p.Far)
	// Unset fields keep the defaults.
	assert.Equal(t, core.DefaultProjection().Aspect, p.Aspect)
	assert.Equal(t, core.DefaultProjection().Near, p.Near)
}

func TestParseScene_Defaults(t *testing.T) {
	def, err := ParseScene([]byte("objects: []\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAsset, def.Shader)
	assert.Equal(t, "res", def.Assets.Root)
	assert.Len(t, def.ClearColor, 3)
	assert.InDelta(t, 65.0/255.0, def.ClearColor[0], 1e-6)
}

func TestParseScene_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown light type": "lights:\n  - type: laser\n",
		"unknown material":   "objects:\n  - name: a\n    material: gold\n",
		"duplicate object":   "objects:\n  - name: a\n  - name: a\n",
		"duplicate light":    "lights:\n  - {name: sun, type: directional}\n  - {name: sun, type: point}\n",
		"missing name":       "objects:\n  - mesh: box\n",
		"short vector":       "objects:\n  - name: a\n    position: [1, 2]\n",
		"bad yaml":           "objects: [\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScene)
		})
	}

	_, err := ParseScene([]byte("lights:\n  - type: laser\n"))
	assert.ErrorIs(t, err, core.ErrUnknownLightType)
	_, err = ParseScene([]byte("objects:\n  - name: a\n  - name: a\n"))
	assert.ErrorIs(t, err, core.ErrDuplicateObject)
	_, err = ParseScene([]byte("lights:\n  - {name: sun, type: directional}\n  - {name: sun, type: point}\n"))
	assert.ErrorIs(t, err, ErrDuplicateLight)

	// Unnamed lights get generated IDs and never collide.
	def, err := ParseScene([]byte("lights:\n  - type: point\n  - type: point\n"))
	require.NoError(t, err)
	assert.Len(t, def.Lights, 2)
}

func TestBuildScene_DuplicateLightName(t *testing.T) {
	def := &SceneDef{Lights: []LightDef{
		{Name: "sun", Type: "directional"},
		{Name: "sun", Type: "point"},
	}}
	_, err := BuildScene(def, newTestCache(t), NewNopLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateLight)
	assert.Contains(t, err.Error(), "lights[1]")
}

func TestBuildScene_ExplicitZeroValues(t *testing.T) {
	def, err := ParseScene([]byte(`
materials:
  matte: {shininess: 0}
lights:
  - {name: dim, type: point, intensity: 0}
objects:
  - {name: flat, material: matte, scale: 0}
`))
	require.NoError(t, err)

	scene, err := BuildScene(def, newTestCache(t), NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, float32(0), scene.Lights.At(0).Intensity)
	flat, ok := scene.Object("flat")
	require.True(t, ok)
	assert.Equal(t, float32(0), flat.Scale)
	assert.Equal(t, float32(0), flat.Material.Shininess)
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSceneYAML), 0o644))

	def, err := LoadSceneFile(path)
	require.NoError(t, err)
	assert.Equal(t, "phong", def.Shader)

	_, err = LoadSceneFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildScene(t *testing.T) {
	def, err := ParseScene([]byte(testSceneYAML))
	require.NoError(t, err)
	cache := newTestCache(t)

	scene, err := BuildScene(def, cache, NewNopLogger())
	require.NoError(t, err)

	require.Equal(t, 2, scene.Len())
	objs := scene.Objects()
	assert.Equal(t, "crate", objs[0].Name)
	assert.Equal(t, "ball", objs[1].Name)

	crate := objs[0]
	assert.Equal(t, mgl32.Vec3{1, 0, -2}, crate.Position)
	assert.Equal(t, float32(0.5), crate.Scale)
	assert.Equal(t, float32(128), crate.Material.Shininess)
	assert.Equal(t, core.DefaultMaterial().DiffuseColor, crate.Material.DiffuseColor)

	// Nothing was loaded into the cache, so both fall back to the defaults.
	assert.Same(t, cache.Mesh(DefaultAsset), crate.Mesh)
	assert.Same(t, cache.Texture(DefaultAsset), crate.Texture)

	ball := objs[1]
	assert.Equal(t, float32(1), ball.Scale)
	assert.Equal(t, mgl32.Vec3{0, 45, 0}, ball.Rotation)
	assert.Equal(t, core.DefaultMaterial(), *ball.Material)

	require.Equal(t, 3, scene.Lights.Len())
	sun := scene.Lights.At(0)
	assert.Equal(t, "sun", sun.ID)
	assert.Equal(t, core.LightTypeDirectional, sun.Type)
	assert.Equal(t, float32(1), sun.Intensity)
	assert.Equal(t, float32(core.DefaultConstant), sun.Constant)

	lamp := scene.Lights.At(1)
	assert.Equal(t, core.LightTypePoint, lamp.Type)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0}, lamp.Color)
	assert.Equal(t, float32(2), lamp.Intensity)

	spot := scene.Lights.At(2)
	assert.Equal(t, core.LightTypeSpot, spot.Type)
	assert.NotEmpty(t, spot.ID)
	assert.InDelta(t, core.CosDeg(20), spot.CutOff, 1e-6)
}

func TestBuildScene_DropsLightsBeyondCapacity(t *testing.T) {
	var b strings.Builder
	b.WriteString("lights:\n")
	for i := 0; i < core.MaxLights+2; i++ {
		fmt.Fprintf(&b, "  - name: l%d\n    type: point\n", i)
	}
	def, err := ParseScene([]byte(b.String()))
	require.NoError(t, err)

	scene, err := BuildScene(def, newTestCache(t), NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, core.MaxLights, scene.Lights.Len())
	assert.Equal(t, "l9", scene.Lights.At(core.MaxLights-1).ID)

	u := core.NewUniformBlock()
	scene.ApplyLights(u)
	n, _ := u.Int(core.UniformNumLights)
	assert.Equal(t, int32(core.MaxLights), n)
}

func TestDefaultSceneDef(t *testing.T) {
	def := DefaultSceneDef()
	require.NoError(t, def.Validate())

	cache := newTestCache(t)
	scene, err := BuildScene(def, cache, NewNopLogger())
	require.NoError(t, err)

	require.Equal(t, 2, scene.Len())
	tree, ok := scene.Object("tree")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-20, 0, -30}, tree.Position)
	assert.Equal(t, mgl32.Vec3{-90, 0, 0}, tree.Rotation)
	assert.Equal(t, float32(0.01), tree.Scale)

	player, ok := scene.Object(DefaultPlayerName)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-20, 8, -20}, player.Position)

	require.Equal(t, 1, scene.Lights.Len())
	sun := scene.Lights.At(0)
	assert.Equal(t, core.LightTypeDirectional, sun.Type)
	assert.Equal(t, mgl32.Vec3{-0.1, -0.5, -0.3}, sun.Direction)
	assert.Equal(t, mgl32.Vec3{1, 2, 8}, sun.Position)
	assert.InDelta(t, 0.09, sun.Linear, 1e-6)
	assert.InDelta(t, 0.032, sun.Quadratic, 1e-6)

	u := core.NewUniformBlock()
	scene.ApplyLights(u)
	n, _ := u.Int(core.UniformNumLights)
	assert.Equal(t, int32(1), n)
	typ, _ := u.Int("lights[0].type")
	assert.Equal(t, int32(1), typ)
}

func TestSceneDef_BuildCamera(t *testing.T) {
	cam := DefaultSceneDef().BuildCamera()
	assert.Equal(t, core.DefaultCameraPosition, cam.Position())
	assert.Equal(t, float32(core.DefaultYaw), cam.Yaw())
	assert.Equal(t, float32(core.DefaultPitch), cam.Pitch())

	def, err := ParseScene([]byte(testSceneYAML))
	require.NoError(t, err)
	cam = def.BuildCamera()
	assert.Equal(t, mgl32.Vec3{0, 5, 10}, cam.Position())
	assert.Equal(t, float32(-90), cam.Yaw())
	assert.Equal(t, float32(0), cam.Pitch())
	assert.Equal(t, float32(4), cam.MovementSpeed)
	assert.Equal(t, float32(core.DefaultSensitivity), cam.MouseSensitivity)
}
