package lumen

import (
	"reflect"
)

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer and input modules.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// Zero Width/Height fall back to a 900x900 window.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 900
	}
	if title == "" {
		title = "Window"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
		VSync:  true,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if _, ok := app.resources[t]; ok {
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title, m.VSync)
	if err != nil {
		app.Logger().Errorf("Failed to create window: %v", err)
		panic(err)
	}
	app.addResources(ws)
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)

	if app.stateful {
		app.UseSystem(
			System(windowCloseSystem).
				InStage(PostRender).
				InState(OnExecute(StateRunning)),
		)
		app.UseSystem(
			System(windowTeardownSystem).
				InStage(Finale).
				InState(OnEnter(StateShutdown)),
		)
	}
}

func windowCloseSystem(ws *WindowState, cmd *Commands) {
	if ws.ShouldClose() {
		cmd.ChangeState(StateShutdown)
	}
}

func windowTeardownSystem(ws *WindowState) {
	ws.Destroy()
}
