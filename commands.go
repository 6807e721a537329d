package lumen

// Commands is injected into systems that need to act on the App itself.
type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// UseSystem schedules a system to run every frame in the given stage.
func (cmd *Commands) UseSystem(system systemFn, stage Stage) *Commands {
	cmd.app.UseSystem(System(system).InStage(stage).RunAlways())
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
