package lumen

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lumen/render/core"
)

const (
	DefaultPlayerName  = "player"
	DefaultPlayerSpeed = 5.0
)

// ControlsModule installs the viewer's non-camera key bindings: Escape to
// quit, Enter to log the camera, 1-4 to select a task, arrows/Space/Shift to
// move the player object, and left click to log the cursor.
type ControlsModule struct {
	PlayerName  string
	PlayerSpeed float32
}

type Controls struct {
	PlayerName  string
	PlayerSpeed float32 // world units per second
	Task        int
}

func (m ControlsModule) Install(app *App, cmd *Commands) {
	ctl := &Controls{
		PlayerName:  m.PlayerName,
		PlayerSpeed: m.PlayerSpeed,
		Task:        1,
	}
	if ctl.PlayerName == "" {
		ctl.PlayerName = DefaultPlayerName
	}
	if ctl.PlayerSpeed <= 0 {
		ctl.PlayerSpeed = DefaultPlayerSpeed
	}
	cmd.AddResources(ctl)

	app.UseSystem(
		System(controlsSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(playerMovementSystem).
			InStage(Update).
			RunAlways(),
	)
}

func controlsSystem(input *Input, cam *core.Camera, ctl *Controls, cmd *Commands) {
	log := cmd.Logger()

	if input.JustPressed[KeyEscape] {
		log.Infof("Escape pressed, shutting down")
		cmd.ChangeState(StateShutdown)
	}

	if input.JustPressed[KeyEnter] {
		p := cam.Position()
		log.Infof("camera position (%.4f, %.4f, %.4f) yaw %.4f pitch %.4f", p.X(), p.Y(), p.Z(), cam.Yaw(), cam.Pitch())
	}

	for i, key := range []int{Key1, Key2, Key3, Key4} {
		if input.JustPressed[key] {
			ctl.SelectTask(i + 1)
			log.Infof("task %d selected", ctl.Task)
		}
	}

	if input.JustPressed[MouseButtonLeft] {
		x, y := ClickPosition(input)
		log.Infof("click - x: %.0f y: %.0f", x, y)
	}
}

// SelectTask switches the active task; values outside 1..4 are ignored.
func (ctl *Controls) SelectTask(task int) {
	if task < 1 || task > 4 {
		return
	}
	ctl.Task = task
}

// ClickPosition converts the cursor to window coordinates with the origin in
// the bottom-left corner.
func ClickPosition(input *Input) (float64, float64) {
	return input.MouseX, float64(input.WindowHeight) - input.MouseY
}

// PlayerDirection maps the arrow keys, Space and Shift to a world-space
// direction. Up/Down move along -Z/+Z, Left/Right along -X/+X.
func PlayerDirection(input *Input) mgl32.Vec3 {
	var dir mgl32.Vec3
	if input.Pressed[KeyUp] {
		dir[2] -= 1
	}
	if input.Pressed[KeyDown] {
		dir[2] += 1
	}
	if input.Pressed[KeyLeft] {
		dir[0] -= 1
	}
	if input.Pressed[KeyRight] {
		dir[0] += 1
	}
	if input.Pressed[KeySpace] {
		dir[1] += 1
	}
	if input.Pressed[KeyShift] {
		dir[1] -= 1
	}
	return dir
}

func playerMovementSystem(input *Input, t *Time, scene *core.Scene, ctl *Controls) {
	dir := PlayerDirection(input)
	if dir.Len() == 0 {
		return
	}
	player, ok := scene.Object(ctl.PlayerName)
	if !ok {
		return
	}
	player.Position = player.Position.Add(dir.Normalize().Mul(ctl.PlayerSpeed * t.DtSeconds()))
}
