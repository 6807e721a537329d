package lumen

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/lumen/render/core"
)

var (
	ErrInvalidScene   = errors.New("invalid scene")
	ErrDuplicateLight = errors.New("duplicate light name")
)

var defaultClearColor = mgl32.Vec3{65.0 / 255.0, 74.0 / 255.0, 76.0 / 255.0}

// SceneDef is the on-disk description of a scene. Objects and lights are
// lists so their order in the file is the draw and light-index order.
type SceneDef struct {
	Shader     string                 `yaml:"shader"`
	ClearColor []float32              `yaml:"clear_color"`
	Projection ProjectionDef          `yaml:"projection"`
	Camera     CameraDef              `yaml:"camera"`
	Assets     AssetManifest          `yaml:"assets"`
	Materials  map[string]MaterialDef `yaml:"materials"`
	Lights     []LightDef             `yaml:"lights"`
	Objects    []ObjectDef            `yaml:"objects"`
}

type ProjectionDef struct {
	Fov    float32 `yaml:"fov"`
	Aspect float32 `yaml:"aspect"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

type CameraDef struct {
	Position    []float32 `yaml:"position"`
	Yaw         *float32  `yaml:"yaw"`
	Pitch       *float32  `yaml:"pitch"`
	Speed       float32   `yaml:"speed"`
	Sensitivity float32   `yaml:"sensitivity"`
}

type MaterialDef struct {
	Diffuse   []float32 `yaml:"diffuse"`
	Specular  []float32 `yaml:"specular"`
	Ambient   []float32 `yaml:"ambient"`
	Emission  []float32 `yaml:"emission"`
	Shininess *float32  `yaml:"shininess"`
}

// LightDef describes one light. A missing intensity means 1; attenuation
// fields left at zero take the defaults. CutOff is the spot cone half-angle
// in degrees. Names must be unique within a scene.
type LightDef struct {
	Name      string    `yaml:"name"`
	Type      string    `yaml:"type"`
	Position  []float32 `yaml:"position"`
	Direction []float32 `yaml:"direction"`
	Color     []float32 `yaml:"color"`
	Intensity *float32  `yaml:"intensity"`
	Constant  float32   `yaml:"constant"`
	Linear    float32   `yaml:"linear"`
	Quadratic float32   `yaml:"quadratic"`
	CutOff    float32   `yaml:"cutoff"`
}

// ObjectDef places a mesh in the world. Rotation is in degrees and is used
// exactly as written; no implicit pitch offset is applied. A missing scale
// means 1.
type ObjectDef struct {
	Name     string    `yaml:"name"`
	Mesh     string    `yaml:"mesh"`
	Texture  string    `yaml:"texture"`
	Material string    `yaml:"material"`
	Position []float32 `yaml:"position"`
	Rotation []float32 `yaml:"rotation"`
	Scale    *float32  `yaml:"scale"`
}

// LoadSceneFile reads a YAML scene. Missing sections fall back to the
// values of DefaultSceneDef.
func LoadSceneFile(path string) (*SceneDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*SceneDef, error) {
	def := &SceneDef{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	def.fillDefaults()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func (def *SceneDef) fillDefaults() {
	if def.Shader == "" {
		def.Shader = "default"
	}
	if len(def.ClearColor) == 0 {
		def.ClearColor = []float32{defaultClearColor[0], defaultClearColor[1], defaultClearColor[2]}
	}
	p := core.DefaultProjection()
	if def.Projection.Fov == 0 {
		def.Projection.Fov = p.FovY
	}
	if def.Projection.Aspect == 0 {
		def.Projection.Aspect = p.Aspect
	}
	if def.Projection.Near == 0 {
		def.Projection.Near = p.Near
	}
	if def.Projection.Far == 0 {
		def.Projection.Far = p.Far
	}
	if def.Assets.Root == "" {
		def.Assets.Root = "res"
	}
}

// Validate checks that every reference in the scene can be resolved and
// every vector has three components.
func (def *SceneDef) Validate() error {
	var errs []error
	vec := func(what string, v []float32) {
		if len(v) != 0 && len(v) != 3 {
			errs = append(errs, fmt.Errorf("%s: expected 3 components, got %d", what, len(v)))
		}
	}

	vec("clear_color", def.ClearColor)
	vec("camera.position", def.Camera.Position)
	for name, m := range def.Materials {
		vec("materials."+name+".diffuse", m.Diffuse)
		vec("materials."+name+".specular", m.Specular)
		vec("materials."+name+".ambient", m.Ambient)
		vec("materials."+name+".emission", m.Emission)
	}
	lightNames := make(map[string]bool)
	for i, l := range def.Lights {
		if l.Name != "" {
			if lightNames[l.Name] {
				errs = append(errs, fmt.Errorf("lights[%d]: %w: %q", i, ErrDuplicateLight, l.Name))
			}
			lightNames[l.Name] = true
		}
		if _, err := core.ParseLightType(l.Type); err != nil {
			errs = append(errs, fmt.Errorf("lights[%d]: %w", i, err))
		}
		vec(fmt.Sprintf("lights[%d].position", i), l.Position)
		vec(fmt.Sprintf("lights[%d].direction", i), l.Direction)
		vec(fmt.Sprintf("lights[%d].color", i), l.Color)
	}
	seen := make(map[string]bool)
	for i, o := range def.Objects {
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("objects[%d]: missing name", i))
		} else if seen[o.Name] {
			errs = append(errs, fmt.Errorf("objects[%d]: %w: %q", i, core.ErrDuplicateObject, o.Name))
		}
		seen[o.Name] = true
		if o.Material != "" && o.Material != "default" {
			if _, ok := def.Materials[o.Material]; !ok {
				errs = append(errs, fmt.Errorf("objects[%d]: unknown material %q", i, o.Material))
			}
		}
		vec(fmt.Sprintf("objects[%d].position", i), o.Position)
		vec(fmt.Sprintf("objects[%d].rotation", i), o.Rotation)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidScene, errors.Join(errs...))
	}
	return nil
}

func or[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func ptr[T any](v T) *T { return &v }

func toVec3(v []float32, fallback mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return fallback
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (def *SceneDef) ProjectionParams() core.Projection {
	return core.Projection{
		FovY:   def.Projection.Fov,
		Aspect: def.Projection.Aspect,
		Near:   def.Projection.Near,
		Far:    def.Projection.Far,
	}
}

func (def *SceneDef) BuildCamera() *core.Camera {
	yaw := or(def.Camera.Yaw, core.DefaultYaw)
	pitch := or(def.Camera.Pitch, core.DefaultPitch)
	cam := core.NewCamera(toVec3(def.Camera.Position, core.DefaultCameraPosition), core.DefaultWorldUp, yaw, pitch)
	if def.Camera.Speed > 0 {
		cam.MovementSpeed = def.Camera.Speed
	}
	if def.Camera.Sensitivity > 0 {
		cam.MouseSensitivity = def.Camera.Sensitivity
	}
	return cam
}

func (m MaterialDef) build() core.Material {
	d := core.DefaultMaterial()
	return core.Material{
		DiffuseColor:  toVec3(m.Diffuse, d.DiffuseColor),
		SpecularColor: toVec3(m.Specular, d.SpecularColor),
		AmbientColor:  toVec3(m.Ambient, d.AmbientColor),
		EmissionColor: toVec3(m.Emission, d.EmissionColor),
		Shininess:     or(m.Shininess, d.Shininess),
	}
}

func (l LightDef) build() (core.Light, error) {
	t, err := core.ParseLightType(l.Type)
	if err != nil {
		return core.Light{}, err
	}
	light := core.Light{
		ID:        l.Name,
		Type:      t,
		Position:  toVec3(l.Position, mgl32.Vec3{}),
		Direction: toVec3(l.Direction, mgl32.Vec3{0, -1, 0}),
		Color:     toVec3(l.Color, mgl32.Vec3{1, 1, 1}),
		Intensity: or(l.Intensity, 1),
		Constant:  l.Constant,
		Linear:    l.Linear,
		Quadratic: l.Quadratic,
		CutOff:    core.CosDeg(core.DefaultCutOffAngle),
	}
	if light.Constant == 0 && light.Linear == 0 && light.Quadratic == 0 {
		light.Constant, light.Linear, light.Quadratic = core.DefaultConstant, core.DefaultLinear, core.DefaultQuadratic
	}
	if l.CutOff != 0 {
		light.CutOff = core.CosDeg(l.CutOff)
	}
	return light, nil
}

// BuildScene resolves the scene's objects against the resource cache and
// registers its lights. Lights beyond core.MaxLights are dropped.
func BuildScene(def *SceneDef, cache *ResourceCache, log Logger) (*core.Scene, error) {
	scene := core.NewScene()

	materials := map[string]*core.Material{}
	defaultMat := core.DefaultMaterial()
	materials["default"] = &defaultMat
	for name, m := range def.Materials {
		mat := m.build()
		materials[name] = &mat
	}

	for i, l := range def.Lights {
		light, err := l.build()
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		if _, ok := scene.Lights.Add(light); !ok {
			if light.ID != "" && scene.Lights.Has(light.ID) {
				return nil, fmt.Errorf("lights[%d]: %w: %q", i, ErrDuplicateLight, light.ID)
			}
			log.Debugf("light %d (%s) dropped: %d lights already registered", i, light.Type, core.MaxLights)
		}
	}

	for _, o := range def.Objects {
		matName := o.Material
		if matName == "" {
			matName = "default"
		}
		obj := core.NewGameObject(o.Name,
			cache.Mesh(o.Mesh),
			cache.Texture(o.Texture),
			materials[matName],
			core.WithScale(or(o.Scale, 1)),
			core.WithPosition(toVec3(o.Position, mgl32.Vec3{})),
			core.WithRotation(toVec3(o.Rotation, mgl32.Vec3{})),
		)
		if err := scene.AddObject(obj); err != nil {
			return nil, err
		}
	}

	return scene, nil
}

// DefaultSceneDef is the built-in scene: a tree and a plane lit by one
// directional light, both stood upright with a -90 degree pitch.
func DefaultSceneDef() *SceneDef {
	def := &SceneDef{
		Shader: "directionalLight",
		Assets: AssetManifest{
			Root:           "res",
			MaxTextureSize: 4096,
			Meshes: map[string]string{
				"tree":  "meshes/tree.obj",
				"plane": "meshes/airplane.obj",
			},
			Textures: map[string]TextureDef{
				"default": {Path: "textures/default.jpg", Optional: true},
				"tree":    {Path: "textures/tree.jpg"},
				"plane":   {Path: "textures/airplane.jpg"},
			},
			Shaders: map[string]ShaderDef{
				"directionalLight": {},
			},
		},
		Materials: map[string]MaterialDef{},
		Lights: []LightDef{
			{
				Name:      "sun",
				Type:      "directional",
				Position:  []float32{1, 2, 8},
				Direction: []float32{-0.1, -0.5, -0.3},
				Color:     []float32{1, 1, 1},
				Intensity: ptr[float32](1),
				Constant:  1,
				Linear:    0.09,
				Quadratic: 0.032,
				CutOff:    12.5,
			},
		},
		Objects: []ObjectDef{
			{Name: "tree", Mesh: "tree", Texture: "tree", Position: []float32{-20, 0, -30}, Rotation: []float32{-90, 0, 0}, Scale: ptr[float32](0.01)},
			{Name: DefaultPlayerName, Mesh: "plane", Texture: "plane", Position: []float32{-20, 8, -20}, Rotation: []float32{-90, 0, 0}, Scale: ptr[float32](0.01)},
		},
	}
	def.fillDefaults()
	return def
}
