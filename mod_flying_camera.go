package lumen

import (
	"github.com/gekko3d/lumen/render/core"
)

// FlyingCameraModule drives the core.Camera resource from the keyboard
// (W/A/S/D) and the captured mouse.
type FlyingCameraModule struct {
	// UnconstrainedPitch lets the camera pitch past +-89 degrees.
	UnconstrainedPitch bool
}

type FlyingCamera struct {
	ConstrainPitch bool
	primed         bool
}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&FlyingCamera{ConstrainPitch: !m.UnconstrainedPitch})
	app.UseSystem(
		System(FlyingCameraSystem).
			InStage(Update).
			RunAlways(),
	)
}

func FlyingCameraSystem(input *Input, t *Time, cam *core.Camera, fly *FlyingCamera) {
	x, y := float32(input.MouseX), float32(input.MouseY)

	// The first cursor sample only seeds the camera, it must not rotate it.
	if !fly.primed {
		cam.SetCursor(x, y)
		fly.primed = true
	}

	dt := t.DtSeconds()
	if input.Pressed[KeyW] {
		cam.ProcessKeyboard(core.Forward, dt)
	}
	if input.Pressed[KeyS] {
		cam.ProcessKeyboard(core.Backward, dt)
	}
	if input.Pressed[KeyA] {
		cam.ProcessKeyboard(core.Left, dt)
	}
	if input.Pressed[KeyD] {
		cam.ProcessKeyboard(core.Right, dt)
	}

	if !input.MouseCaptured {
		// Keep the camera's cursor in sync so recapturing doesn't jump.
		cam.SetCursor(x, y)
		return
	}
	if input.MouseMoved {
		cam.ProcessMouseMovement(x, y, fly.ConstrainPitch)
	}
}
