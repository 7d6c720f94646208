// Command sceneview loads a scene description and runs it in a window with
// the debug overlay. WASD moves pedestrians, F1 toggles the overlay.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenecore/config"
	debugui_ebiten "github.com/plus3/scenecore/debugui/ebiten"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/engine"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Engine config file.")
	scenePath := flag.String("scene", "", "Scene description to load as the default scene (overrides the config).")
	width := flag.Int("width", 1280, "Window width.")
	height := flag.Int("height", 720, "Window height.")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if *scenePath != "" {
		cfg.Engine.DefaultScenePath = *scenePath
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	backend := debugui_ebiten.NewImguiBackend("sceneview", *width, *height)
	imgui.CurrentIO().SetIniFilename("")

	game := engine.New(cfg, logger)
	if err := engine.SetInstance(game); err != nil {
		logger.Fatal("instance", zap.Error(err))
	}
	host := debugui_ebiten.NewHost(game, backend)
	if err := host.Register(); err != nil {
		logger.Fatal("register callbacks", zap.Error(err))
	}

	if err := game.Create(); err != nil {
		exit(logger, "create", err)
	}
	if err := game.Start(); err != nil {
		exit(logger, "start", err)
	}

	ebiten.SetTPS(cfg.Engine.FrameRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	runErr := ebiten.RunGame(host)

	if err := game.EndGame(); err != nil {
		logger.Warn("end game", zap.Error(err))
	}
	engine.ClearInstance()
	if runErr != nil {
		exit(logger, "run", runErr)
	}
}

func exit(logger *zap.Logger, op string, err error) {
	if errors.Is(err, ecs.ErrCapacityExceeded) {
		logger.Fatal("object capacity exceeded", zap.String("op", op), zap.Error(err))
	}
	logger.Fatal("sceneview failed", zap.String("op", op), zap.Error(err))
}
