package lumen

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lumen/render/asset"
	"github.com/gekko3d/lumen/render/core"
	glrender "github.com/gekko3d/lumen/render/gl"
)

// GLDevice creates GPU resources on the current OpenGL context.
type GLDevice struct{}

func (GLDevice) NewProgram(vertexSrc, fragmentSrc string) (ProgramResource, error) {
	p, err := glrender.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (GLDevice) NewMesh(data *asset.MeshData) MeshResource {
	return glrender.NewMesh(data)
}

func (GLDevice) NewTexture(data *asset.TextureData) TextureResource {
	return glrender.NewTexture(data)
}

// RendererModule initialises OpenGL on the window's context and schedules
// the per-frame viewport, light sync, draw and present systems. It needs the
// PlatformWindowModule.
type RendererModule struct{}

// SyncLights runs right before Render. Systems in it see the lights that
// the frame will be drawn with.
var SyncLights = Stage{Name: "SyncLights"}

// RenderSettings selects the program and the frame-constant uniforms.
// The renderer uploads them once, before the first frame.
type RenderSettings struct {
	Shader     string
	ClearColor mgl32.Vec3
	Projection core.Projection

	ready         bool
	lightsVersion uint64
}

// lightsChanged reports whether lights differ from the last uploaded set
// and marks the current set as uploaded.
func (s *RenderSettings) lightsChanged(lights *core.LightSet) bool {
	if s.lightsVersion == lights.Version() {
		return false
	}
	s.lightsVersion = lights.Version()
	return true
}

func (m RendererModule) Install(app *App, cmd *Commands) {
	if Resource[WindowState](app) == nil {
		panic("RendererModule requires the PlatformWindowModule to be installed first")
	}

	r, err := glrender.NewRenderer()
	if err != nil {
		app.Logger().Errorf("Failed to create renderer: %v", err)
		panic(err)
	}
	app.Logger().Infof("OpenGL %s", r.Version)

	cmd.AddResources(&GLDevice{}, r)

	app.UseStage(SyncLights, BeforeStage(Render))

	app.UseSystem(
		System(viewportSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(lightSyncSystem).
			InStage(SyncLights).
			RunAlways(),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render).
			RunAlways(),
	)
	app.UseSystem(
		System(presentSystem).
			InStage(PostRender).
			RunAlways(),
	)
}

func viewportSystem(ws *WindowState, r *glrender.Renderer) {
	if ws.TakeResize() {
		r.SetViewport(ws.FramebufferSize())
	}
}

func renderSystem(r *glrender.Renderer, settings *RenderSettings, cache *ResourceCache, scene *core.Scene, cam *core.Camera) {
	if !settings.ready {
		r.Program = cache.Program(settings.Shader)
		r.ClearColor = settings.ClearColor.Vec4(1)
		r.Setup(scene, settings.Projection.Matrix())
		settings.lightsChanged(&scene.Lights)
		settings.ready = true
	}
	r.DrawFrame(scene, cam)
}

// lightSyncSystem re-uploads the light array after lights were added or
// removed. The first upload happens in Setup.
func lightSyncSystem(r *glrender.Renderer, settings *RenderSettings, scene *core.Scene) {
	if settings.ready && settings.lightsChanged(&scene.Lights) {
		r.ApplyLights(scene)
	}
}

func presentSystem(ws *WindowState) {
	ws.SwapBuffers()
}
