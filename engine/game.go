// Package engine drives the frame loop: it owns the world, the scene registry
// and the collaborators, and exposes the host boundary.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plus3/scenecore/config"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/physics"
	"github.com/plus3/scenecore/render"
	"github.com/plus3/scenecore/scene"
	"go.uber.org/zap"
)

var ErrInvalidState = errors.New("engine: invalid state for operation")

// Option customizes a Game at construction.
type Option func(*Game)

// WithPhysics replaces the default physics backend.
func WithPhysics(backend ecs.PhysicsBackend) Option {
	return func(g *Game) { g.physics = backend }
}

// WithClock replaces time.Now as the source of frame deltas.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// noCopy makes go vet report copies of a Game.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Game is the top-level orchestrator. Every method must be called from the
// goroutine that drives the frame loop.
type Game struct {
	noCopy noCopy

	cfg   *config.Config
	log   *zap.Logger
	now   func() time.Time
	state State

	world   *ecs.World
	scenes  *scene.Manager
	render  *render.Manager
	lights  *render.LightTable
	physics ecs.PhysicsBackend

	callbacks callbacks
	input     ecs.InputSnapshot
	last      time.Time
	frames    int64
	frameTime time.Duration
	phases    []*phaseStatsInternal
}

// New returns an uninitialized game. A nil cfg uses config.Defaults and a nil
// logger disables logging.
func New(cfg *config.Config, log *zap.Logger, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:    cfg,
		log:    log,
		now:    time.Now,
		phases: newPhaseStats(PhaseScenes, PhaseRender, PhaseComponents, PhaseCommands),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Create builds the world and the managers, then creates and loads the default scene.
func (g *Game) Create() error {
	if g.state != Uninitialized {
		return fmt.Errorf("create in state %s: %w", g.state, ErrInvalidState)
	}

	g.world = ecs.NewWorld(g.cfg.Engine.ObjectCapacity)
	g.render = render.NewManager()
	g.lights = render.NewLightTable()
	g.scenes = scene.NewManager(g.log.Named("scene"))
	g.scenes.OnLoaded(g.sceneLoaded)
	if g.physics == nil && g.cfg.Physics.Enabled {
		g.physics = physics.NewWorld(g.cfg.Physics.PhysicsWorld(), g.log.Named("physics"))
	}

	name := g.cfg.Engine.DefaultScene
	s, err := g.scenes.CreateScene(name)
	if err != nil {
		return err
	}
	s.Source = g.cfg.Engine.DefaultScenePath
	if err := g.scenes.LoadScene(name, g.world, g.render, g.lights); err != nil {
		return g.fail("load default scene", err)
	}
	if err := g.scenes.SetCurrent(name); err != nil {
		return err
	}

	g.state = Created
	g.log.Info("game created",
		zap.Int("object_capacity", g.cfg.Engine.ObjectCapacity),
		zap.String("scene", name),
		zap.Bool("physics", g.physics != nil),
	)
	return nil
}

// Start runs the start hooks of every scene and then of every component.
func (g *Game) Start() error {
	if g.state != Created {
		return fmt.Errorf("start in state %s: %w", g.state, ErrInvalidState)
	}

	frame := g.newFrame(0)
	if err := g.scenes.Start(frame); err != nil {
		return g.fail("start scenes", err)
	}
	if g.cfg.Engine.SortComponentsByType {
		g.world.Components.SortByType()
	}
	if err := g.world.Components.StartAll(frame); err != nil {
		return g.fail("start components", err)
	}
	if err := frame.Commands.Flush(g.world); err != nil {
		return g.fail("start commands", err)
	}

	g.last = g.now()
	g.state = Started
	g.log.Info("game started", zap.Int("components", g.world.Components.Len()))
	return nil
}

// Update runs one frame: poll input, update scenes, refresh the render
// collaborator, update every component in store order and apply the
// commands queued during the frame.
func (g *Game) Update() error {
	if g.state != Started && g.state != Running {
		return fmt.Errorf("update in state %s: %w", g.state, ErrInvalidState)
	}
	g.state = Running
	frameStart := time.Now()

	now := g.now()
	dt := now.Sub(g.last).Seconds()
	g.last = now

	if g.callbacks.pollInput != nil {
		// Snapshots without data keep the previous input in place.
		if snapshot := g.callbacks.pollInput(); snapshot.Received {
			g.input = snapshot
		}
	}

	frame := g.newFrame(dt)
	scenes, renderer, components, commands := g.phases[0], g.phases[1], g.phases[2], g.phases[3]

	if err := scenes.timed(func() error { return g.scenes.Update(frame) }); err != nil {
		return g.fail("update scenes", err)
	}
	if err := renderer.timed(func() error {
		if err := g.render.Update(g.world.Objects); err != nil {
			return err
		}
		return g.lights.Update(g.world.Objects)
	}); err != nil {
		return g.fail("update render", err)
	}
	if err := components.timed(func() error { return g.world.Components.UpdateAll(frame) }); err != nil {
		return g.fail("update components", err)
	}
	if err := commands.timed(func() error { return frame.Commands.Flush(g.world) }); err != nil {
		return g.fail("apply commands", err)
	}

	g.frames++
	g.frameTime = time.Since(frameStart)
	return nil
}

// Run calls Update at the given interval until ctx is cancelled or a frame fails.
func (g *Game) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := g.Update(); err != nil {
				return err
			}
		}
	}
}

// EndGame tears down every scene and the physics backend.
func (g *Game) EndGame() error {
	if g.state == Uninitialized || g.state == Ended {
		return fmt.Errorf("end game in state %s: %w", g.state, ErrInvalidState)
	}
	g.scenes.Cleanup()
	if g.physics != nil {
		g.physics.Shutdown()
	}
	g.state = Ended
	g.log.Info("game ended", zap.Int64("frames", g.frames))
	return nil
}

// CreateScene registers and loads an additional scene from a description file.
func (g *Game) CreateScene(name, source string) (*scene.Scene, error) {
	if g.state == Uninitialized || g.state == Ended {
		return nil, fmt.Errorf("create scene in state %s: %w", g.state, ErrInvalidState)
	}
	s, err := g.scenes.CreateScene(name)
	if err != nil {
		return nil, err
	}
	s.Source = source
	if err := g.scenes.LoadScene(name, g.world, g.render, g.lights); err != nil {
		return nil, g.fail("load scene", err)
	}
	return s, nil
}

func (g *Game) newFrame(dt float64) *ecs.UpdateFrame {
	frame := ecs.NewUpdateFrame(dt, g.world)
	frame.Input = g.input
	frame.Physics = g.physics
	frame.Renderer = g.render
	frame.Scenes = g.scenes
	return frame
}

// fail logs capacity exhaustion at Error level. Every error is returned to the caller.
func (g *Game) fail(op string, err error) error {
	if errors.Is(err, ecs.ErrCapacityExceeded) {
		g.log.Error("object capacity exhausted",
			zap.String("op", op),
			zap.Int("capacity", g.world.Objects.Cap()),
			zap.Error(err),
		)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (g *Game) State() State { return g.state }
func (g *Game) Config() *config.Config { return g.cfg }
func (g *Game) Logger() *zap.Logger { return g.log }
func (g *Game) World() *ecs.World { return g.world }
func (g *Game) Scenes() *scene.Manager { return g.scenes }
func (g *Game) Renderer() *render.Manager { return g.render }
func (g *Game) Lights() *render.LightTable { return g.lights }
func (g *Game) Physics() ecs.PhysicsBackend { return g.physics }
func (g *Game) Input() ecs.InputSnapshot { return g.input }
func (g *Game) Frames() int64 { return g.frames }

// Stats returns per-phase execution statistics.
func (g *Game) Stats() *Stats {
	stats := &Stats{
		Frames:    g.frames,
		FrameTime: g.frameTime,
		Phases:    make([]PhaseStats, len(g.phases)),
	}
	if g.world != nil {
		stats.Objects = g.world.Objects.Len()
		stats.Components = g.world.Components.Len()
	}
	for i, phase := range g.phases {
		stats.Phases[i] = phase.snapshot()
	}
	return stats
}
