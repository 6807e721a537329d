package lumen

// SceneModule builds the scene described by Def from the ResourceCache and
// registers the scene, its camera and its render settings as resources.
type SceneModule struct {
	Def *SceneDef
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	def := m.Def
	if def == nil {
		def = DefaultSceneDef()
	}
	cache := Resource[ResourceCache](app)
	if cache == nil {
		panic("SceneModule requires the AssetsModule to be installed first")
	}

	scene, err := BuildScene(def, cache, app.Logger())
	if err != nil {
		app.Logger().Errorf("Failed to build scene: %v", err)
		panic(err)
	}
	app.Logger().Infof("Scene ready: %d objects, %d lights", scene.Len(), scene.Lights.Len())

	cmd.AddResources(
		scene,
		def.BuildCamera(),
		&RenderSettings{
			Shader:     def.Shader,
			ClearColor: toVec3(def.ClearColor, defaultClearColor),
			Projection: def.ProjectionParams(),
		},
	)
}
