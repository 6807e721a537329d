package glrender

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lumen/render/core"
)

// Renderer draws a core.Scene with a single Phong program. It must be
// created and used on the thread that owns the GL context.
type Renderer struct {
	Program    core.Program
	ClearColor mgl32.Vec4
	Version    string
}

// NewRenderer loads the GL function pointers for the current context and
// enables depth testing.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &Renderer{
		ClearColor: mgl32.Vec4{65.0 / 255.0, 74.0 / 255.0, 76.0 / 255.0, 1},
		Version:    gl.GoStr(gl.GetString(gl.VERSION)),
	}, nil
}

func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Setup uploads the uniforms that stay constant between frames: projection,
// sampler unit and the scene's lights.
func (r *Renderer) Setup(scene *core.Scene, projection mgl32.Mat4) {
	r.Program.Use()
	r.Program.SetMat4(core.UniformProjection, projection)
	r.Program.SetInt(core.UniformTexture, 0)
	scene.ApplyLights(r.Program)
	r.Program.Unbind()
}

// ApplyLights re-uploads the light array after the scene's lights changed.
func (r *Renderer) ApplyLights(scene *core.Scene) {
	r.Program.Use()
	scene.ApplyLights(r.Program)
	r.Program.Unbind()
}

func (r *Renderer) Clear() {
	c := r.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawFrame clears the framebuffer and draws every scene object as seen from cam.
func (r *Renderer) DrawFrame(scene *core.Scene, cam *core.Camera) {
	r.Clear()

	r.Program.Use()
	core.ApplyView(r.Program, cam)
	r.Program.Unbind()

	scene.Draw(r.Program, drawTriangles)
}

func drawTriangles(vertexCount int32) {
	gl.DrawArrays(gl.TRIANGLES, 0, vertexCount)
}
