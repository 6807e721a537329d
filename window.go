package lumen

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single GLFW window and its OpenGL context.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	fbWidth, fbHeight int
	resized           bool
}

// createWindowState initialises GLFW, opens a window with an OpenGL 4.1 core
// context and makes it current on the calling (locked) thread.
func createWindowState(windowWidth int, windowHeight int, windowTitle string, vsync bool) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	ws := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	ws.fbWidth, ws.fbHeight = win.GetFramebufferSize()
	ws.resized = true

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.fbWidth, ws.fbHeight = width, height
		ws.resized = true
	})

	// Cursor starts captured at the window center.
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	win.SetCursorPos(float64(windowWidth)/2, float64(windowHeight)/2)

	return ws, nil
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw.ShouldClose()
}

func (s *WindowState) RequestClose() {
	s.windowGlfw.SetShouldClose(true)
}

func (s *WindowState) SwapBuffers() {
	s.windowGlfw.SwapBuffers()
}

func (s *WindowState) FramebufferSize() (int, int) {
	return s.fbWidth, s.fbHeight
}

// TakeResize reports whether the framebuffer changed size since the last call.
func (s *WindowState) TakeResize() bool {
	r := s.resized
	s.resized = false
	return r
}

func (s *WindowState) Destroy() {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
	}
	glfw.Terminate()
}
