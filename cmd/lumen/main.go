package main

import (
	"flag"
	"os"

	"github.com/gekko3d/lumen"
)

func main() {
	scenePath := flag.String("scene", "", "YAML scene file (built-in scene when empty)")
	assetRoot := flag.String("assets", "", "Directory asset paths are relative to (overrides the scene)")
	width := flag.Int("width", 900, "Window width")
	height := flag.Int("height", 900, "Window height")
	title := flag.String("title", "Window", "Window title")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := lumen.NewDefaultLogger("lumen", *debug)

	def := lumen.DefaultSceneDef()
	if *scenePath != "" {
		var err error
		def, err = lumen.LoadSceneFile(*scenePath)
		if err != nil {
			logger.Errorf("Failed to load scene %s: %v", *scenePath, err)
			os.Exit(1)
		}
	}
	if *assetRoot != "" {
		def.Assets.Root = *assetRoot
	}

	app := lumen.NewAppBuilder().
		UseStates(lumen.StateRunning, lumen.StateShutdown).
		UseModule(
			lumen.LoggingModule{Logger: logger},
			lumen.NewPlatformWindow(*width, *height, *title),
			lumen.TimeModule{},
			lumen.InputModule{},
			lumen.RendererModule{},
			lumen.AssetsModule{Manifest: def.Assets},
			lumen.SceneModule{Def: def},
			lumen.FlyingCameraModule{},
			lumen.ControlsModule{},
		).
		Build()

	if report := lumen.Resource[lumen.LoadReport](app); report != nil {
		if err := report.Fatal(); err != nil {
			logger.Errorf("%v", err)
			app.Shutdown()
			os.Exit(1)
		}
	}

	app.Run()
	logger.Infof("Bye")
}
