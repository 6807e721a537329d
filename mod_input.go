package lumen

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyD
	KeyS
	KeyW
	Key1
	Key2
	Key3
	Key4
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyShift
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type InputModule struct{}

// Input is the polled keyboard and mouse state for the current frame.
type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseMoved               bool
	MouseCaptured            bool

	WindowWidth, WindowHeight int
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{MouseCaptured: true})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

// press records the new state of one key or button and derives the
// just-pressed/just-released edges.
func (input *Input) press(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// moveMouse records a new cursor position.
func (input *Input) moveMouse(x, y float64) {
	input.MouseDeltaX = x - input.MouseX
	input.MouseDeltaY = y - input.MouseY
	input.MouseMoved = input.MouseDeltaX != 0 || input.MouseDeltaY != 0
	input.MouseX = x
	input.MouseY = y
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.press(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.press(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.moveMouse(s.windowGlfw.GetCursorPos())
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()

	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
		if input.MouseCaptured {
			s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else {
			s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:      glfw.KeyA,
	KeyD:      glfw.KeyD,
	KeyS:      glfw.KeyS,
	KeyW:      glfw.KeyW,
	Key1:      glfw.Key1,
	Key2:      glfw.Key2,
	Key3:      glfw.Key3,
	Key4:      glfw.Key4,
	KeySpace:  glfw.KeySpace,
	KeyEnter:  glfw.KeyEnter,
	KeyEscape: glfw.KeyEscape,
	KeyTab:    glfw.KeyTab,
	KeyRight:  glfw.KeyRight,
	KeyLeft:   glfw.KeyLeft,
	KeyDown:   glfw.KeyDown,
	KeyUp:     glfw.KeyUp,
	KeyShift:  glfw.KeyLeftShift,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
