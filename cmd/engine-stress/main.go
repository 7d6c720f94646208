package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/scenecore/config"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/engine"
	"github.com/plus3/scenecore/physics"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	objectCount := flag.Int("objects", 1000, "The number of objects to spawn into the default scene.")
	configPath := flag.String("config", "", "Engine config file. Without one the object capacity fits -objects.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	seed := flag.Int64("seed", 1, "Seed for the random object layout and input script.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q (want cpu or mem)", *profileMode)
	}

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	} else {
		cfg.Engine.ObjectCapacity = *objectCount + 64
		cfg.Logging.Level = "warn"
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	rng := rand.New(rand.NewSource(*seed))
	input := newInputScript(rng)

	// 1. Create the game and populate the default scene
	game := engine.New(cfg, logger)
	if err := engine.SetInstance(game); err != nil {
		log.Fatalf("instance: %v", err)
	}
	defer engine.ClearInstance()

	if err := game.RegisterCallbacks(func(ev engine.SceneLoaded) {
		logger.Info("scene loaded", zap.String("scene", ev.Name), zap.Int("objects", ev.Objects))
	}, input.Poll); err != nil {
		log.Fatalf("callbacks: %v", err)
	}
	if err := game.Create(); err != nil {
		fatal(logger, "create", err)
	}

	log.Printf("Populating the default scene with %d objects...\n", *objectCount)
	if err := populate(game, rng, *objectCount); err != nil {
		fatal(logger, "populate", err)
	}
	if err := game.Start(); err != nil {
		fatal(logger, "start", err)
	}
	log.Println("Population complete.")

	// 2. Run the frame loop
	report := &Report{
		Duration:       *duration,
		Objects:        game.World().Objects.Len(),
		Capacity:       cfg.Engine.ObjectCapacity,
		Components:     countVariants(game.World().Components),
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemBefore)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			if err := game.Update(); err != nil {
				fatal(logger, "update", err)
			}
			report.FrameTime.Add(time.Since(updateStart))
		}
	}

	report.Elapsed = time.Since(startTime)
	report.Frames = game.Frames()
	report.FrameTime.Summarize()
	report.Phases = game.Stats().Phases
	if pw, ok := game.Physics().(*physics.World); ok {
		report.PhysicsSteps = pw.Steps()
	}
	runtime.ReadMemStats(&report.MemAfter)

	if err := game.EndGame(); err != nil {
		log.Printf("end game: %v", err)
	}
	log.Println("Simulation finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// fatal ends the process on capacity exhaustion and on any other failure
// that leaves the run meaningless.
func fatal(logger *zap.Logger, op string, err error) {
	if errors.Is(err, ecs.ErrCapacityExceeded) {
		logger.Fatal("object capacity exceeded", zap.String("op", op), zap.Error(err))
	}
	logger.Fatal("stress run failed", zap.String("op", op), zap.Error(err))
}
