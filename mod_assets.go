package lumen

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"math/rand"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/lumen/render/asset"
	"github.com/gekko3d/lumen/render/core"
	"github.com/gekko3d/lumen/render/shaders"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

type AssetKind string

const (
	AssetShader  AssetKind = "shader"
	AssetMesh    AssetKind = "mesh"
	AssetTexture AssetKind = "texture"
)

const DefaultAsset = "default"

var ErrRequiredAsset = errors.New("required asset failed to load")

// GPU-side resources. Each one is released with Delete on shutdown.
type ProgramResource interface {
	core.Program
	Delete()
}

type MeshResource interface {
	core.MeshHandle
	Delete()
}

type TextureResource interface {
	core.TextureHandle
	Delete()
}

// Device uploads decoded assets to the GPU.
type Device interface {
	NewProgram(vertexSrc, fragmentSrc string) (ProgramResource, error)
	NewMesh(data *asset.MeshData) MeshResource
	NewTexture(data *asset.TextureData) TextureResource
}

// AssetManifest lists the files a scene needs. Paths are relative to Root.
type AssetManifest struct {
	Root           string                `yaml:"root"`
	MaxTextureSize int                   `yaml:"max_texture_size"`
	Shaders        map[string]ShaderDef  `yaml:"shaders"`
	Meshes         map[string]string     `yaml:"meshes"`
	Textures       map[string]TextureDef `yaml:"textures"`
}

// ShaderDef names a vertex/fragment pair. Leaving both empty selects the
// built-in Phong shaders.
type ShaderDef struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

type TextureDef struct {
	Path     string `yaml:"path"`
	Optional bool   `yaml:"optional"`
}

type LoadFailure struct {
	Kind     AssetKind
	Name     string
	Path     string
	Required bool
	Err      error
}

func (f LoadFailure) Error() string {
	return fmt.Sprintf("%s %q (%s): %v", f.Kind, f.Name, f.Path, f.Err)
}

func (f LoadFailure) Unwrap() error {
	return f.Err
}

type LoadReport struct {
	Loaded   int
	Failures []LoadFailure
}

// Fatal returns the required failures joined under ErrRequiredAsset, or nil
// when only optional assets are missing.
func (r *LoadReport) Fatal() error {
	var errs []error
	for _, f := range r.Failures {
		if f.Required {
			errs = append(errs, f)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRequiredAsset, errors.Join(errs...))
}

type cached[T any] struct {
	id       AssetId
	resource T
}

// ResourceCache owns every GPU resource of the viewer, keyed by name.
// Lookups of unknown names fall back to the "default" entry, which always
// exists for meshes, textures, programs and colors.
type ResourceCache struct {
	device   Device
	programs map[string]cached[ProgramResource]
	meshes   map[string]cached[MeshResource]
	textures map[string]cached[TextureResource]
	colors   map[string]mgl32.Vec3
}

// Vertices of the fallback triangle: position, normal, uv.
var defaultTriangle = []float32{
	0, 1, 0, 0, 0, 1, 0.5, 1,
	1, -1, 0, 0, 0, 1, 1, 0,
	-1, -1, 0, 0, 0, 1, 0, 0,
}

func NewResourceCache(device Device) (*ResourceCache, error) {
	cache := &ResourceCache{
		device:   device,
		programs: make(map[string]cached[ProgramResource]),
		meshes:   make(map[string]cached[MeshResource]),
		textures: make(map[string]cached[TextureResource]),
		colors:   make(map[string]mgl32.Vec3),
	}

	if err := cache.AddProgram(DefaultAsset, shaders.LightingVert, shaders.LightingFrag); err != nil {
		return nil, fmt.Errorf("default program: %w", err)
	}
	cache.AddMesh(DefaultAsset, &asset.MeshData{Vertices: slices.Clone(defaultTriangle), HasUVs: true, HasNorms: true})
	cache.AddTexture(DefaultAsset, asset.SolidTexture(color.RGBA{255, 255, 255, 255}))
	cache.SetColor(DefaultAsset, mgl32.Vec3{0, 1, 0})
	cache.SetColor("randomColor", mgl32.Vec3{rand.Float32(), rand.Float32(), rand.Float32()})

	return cache, nil
}

func (c *ResourceCache) AddProgram(name, vertexSrc, fragmentSrc string) error {
	p, err := c.device.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}
	if old, ok := c.programs[name]; ok {
		old.resource.Delete()
	}
	c.programs[name] = cached[ProgramResource]{id: makeAssetId(), resource: p}
	return nil
}

func (c *ResourceCache) AddMesh(name string, data *asset.MeshData) AssetId {
	if old, ok := c.meshes[name]; ok {
		old.resource.Delete()
	}
	id := makeAssetId()
	c.meshes[name] = cached[MeshResource]{id: id, resource: c.device.NewMesh(data)}
	return id
}

func (c *ResourceCache) AddTexture(name string, data *asset.TextureData) AssetId {
	if old, ok := c.textures[name]; ok {
		old.resource.Delete()
	}
	id := makeAssetId()
	c.textures[name] = cached[TextureResource]{id: id, resource: c.device.NewTexture(data)}
	return id
}

func (c *ResourceCache) SetColor(name string, v mgl32.Vec3) {
	c.colors[name] = v
}

func (c *ResourceCache) Program(name string) ProgramResource {
	if p, ok := c.programs[name]; ok {
		return p.resource
	}
	return c.programs[DefaultAsset].resource
}

func (c *ResourceCache) Mesh(name string) MeshResource {
	if m, ok := c.meshes[name]; ok {
		return m.resource
	}
	return c.meshes[DefaultAsset].resource
}

func (c *ResourceCache) Texture(name string) TextureResource {
	if t, ok := c.textures[name]; ok {
		return t.resource
	}
	return c.textures[DefaultAsset].resource
}

func (c *ResourceCache) Color(name string) mgl32.Vec3 {
	if v, ok := c.colors[name]; ok {
		return v
	}
	return c.colors[DefaultAsset]
}

// Has reports whether name was registered for kind, without fallback.
func (c *ResourceCache) Has(kind AssetKind, name string) bool {
	var ok bool
	switch kind {
	case AssetShader:
		_, ok = c.programs[name]
	case AssetMesh:
		_, ok = c.meshes[name]
	case AssetTexture:
		_, ok = c.textures[name]
	}
	return ok
}

// LoadManifest loads every asset of m in name order. Shader and mesh
// failures are required; texture failures are required unless the texture
// is marked optional. Failed names keep resolving to the default entry.
func (c *ResourceCache) LoadManifest(m AssetManifest, log Logger) LoadReport {
	var report LoadReport
	fail := func(f LoadFailure) {
		if f.Required {
			log.Errorf("failed to load %v", f)
		} else {
			log.Warnf("optional %v, using default", f)
		}
		report.Failures = append(report.Failures, f)
	}
	path := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(m.Root, p)
	}

	for _, name := range slices.Sorted(maps.Keys(m.Shaders)) {
		def := m.Shaders[name]
		vert, frag := shaders.LightingVert, shaders.LightingFrag
		where := "built-in"
		if def.Vertex != "" || def.Fragment != "" {
			where = path(def.Vertex) + "," + path(def.Fragment)
			v, err := os.ReadFile(path(def.Vertex))
			if err != nil {
				fail(LoadFailure{Kind: AssetShader, Name: name, Path: where, Required: true, Err: err})
				continue
			}
			f, err := os.ReadFile(path(def.Fragment))
			if err != nil {
				fail(LoadFailure{Kind: AssetShader, Name: name, Path: where, Required: true, Err: err})
				continue
			}
			vert, frag = string(v), string(f)
		}
		if err := c.AddProgram(name, vert, frag); err != nil {
			fail(LoadFailure{Kind: AssetShader, Name: name, Path: where, Required: true, Err: err})
			continue
		}
		log.Debugf("loaded shader %s (%s)", name, where)
		report.Loaded++
	}

	for _, name := range slices.Sorted(maps.Keys(m.Meshes)) {
		p := path(m.Meshes[name])
		data, err := asset.LoadObjFile(p)
		if err != nil {
			fail(LoadFailure{Kind: AssetMesh, Name: name, Path: p, Required: true, Err: err})
			continue
		}
		for _, w := range data.Warnings {
			log.Debugf("mesh %s: %s", name, w)
		}
		id := c.AddMesh(name, data)
		log.Debugf("loaded mesh %s (%d vertices, id %s)", name, data.VertexCount(), id)
		report.Loaded++
	}

	for _, name := range slices.Sorted(maps.Keys(m.Textures)) {
		def := m.Textures[name]
		p := path(def.Path)
		data, err := asset.LoadImageFile(p, m.MaxTextureSize)
		if err != nil {
			fail(LoadFailure{Kind: AssetTexture, Name: name, Path: p, Required: !def.Optional, Err: err})
			continue
		}
		id := c.AddTexture(name, data)
		log.Debugf("loaded texture %s (%dx%d, id %s)", name, data.Width, data.Height, id)
		report.Loaded++
	}

	return report
}

// Destroy releases every GPU resource. The cache must not be used afterwards.
func (c *ResourceCache) Destroy() {
	for _, p := range c.programs {
		p.resource.Delete()
	}
	for _, m := range c.meshes {
		m.resource.Delete()
	}
	for _, t := range c.textures {
		t.resource.Delete()
	}
	clear(c.programs)
	clear(c.meshes)
	clear(c.textures)
}

// AssetsModule builds the ResourceCache on the Device resource and loads
// the manifest. The LoadReport is added as a resource so the caller can
// decide whether to run.
type AssetsModule struct {
	Manifest AssetManifest
}

func (m AssetsModule) Install(app *App, cmd *Commands) {
	device := Resource[GLDevice](app)
	if device == nil {
		panic("AssetsModule requires the RendererModule to be installed first")
	}

	cache, err := NewResourceCache(device)
	if err != nil {
		app.Logger().Errorf("Failed to create resource cache: %v", err)
		panic(err)
	}
	report := cache.LoadManifest(m.Manifest, app.Logger())
	app.Logger().Infof("Loaded %d assets, %d failed", report.Loaded, len(report.Failures))

	cmd.AddResources(cache, &report)

	if app.stateful {
		app.UseSystem(
			System(assetsTeardownSystem).
				InStage(PostRender).
				InState(OnEnter(StateShutdown)),
		)
	}
}

func assetsTeardownSystem(cache *ResourceCache, cmd *Commands) {
	cmd.Logger().Debugf("releasing GPU resources")
	cache.Destroy()
}
