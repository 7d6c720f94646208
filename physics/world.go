// Package physics is the default physics collaborator: a small rigid-body
// integrator with gravity and a ground plane. It completes every step
// synchronously on the caller's goroutine.
package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
	"github.com/plus3/scenecore/ecs"
	"go.uber.org/zap"
)

var (
	ErrBodyExists = errors.New("physics: body already exists")
	ErrShutdown   = errors.New("physics: world is shut down")
)

// Config tunes the integrator.
type Config struct {
	Gravity      mgl32.Vec3
	GroundHeight float32
	// MaxStep splits large frame deltas into sub-steps no longer than this (seconds).
	MaxStep float64
}

// DefaultConfig returns earth gravity with the ground at y = 0.
func DefaultConfig() Config {
	return Config{
		Gravity:      mgl32.Vec3{0, -9.81, 0},
		GroundHeight: 0,
		MaxStep:      1.0 / 60.0,
	}
}

type body struct {
	pose      ecs.Pose
	mass      float32
	kinematic bool
	grounded  bool
}

// World implements ecs.PhysicsBackend.
type World struct {
	cfg      Config
	log      *zap.Logger
	bodies   *intmap.Map[ecs.ObjectID, *body]
	stepped  int64
	shutdown bool
}

// NewWorld creates an empty simulation. A nil logger disables logging.
func NewWorld(cfg Config, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = DefaultConfig().MaxStep
	}
	return &World{
		cfg:    cfg,
		log:    log,
		bodies: intmap.New[ecs.ObjectID, *body](64),
	}
}

// CreateBody adds a body for an object. Each object can own one body.
func (w *World) CreateBody(id ecs.ObjectID, desc ecs.BodyDesc) error {
	if w.shutdown {
		return ErrShutdown
	}
	if _, exists := w.bodies.Get(id); exists {
		return fmt.Errorf("create body for object %d: %w", id, ErrBodyExists)
	}

	mass := desc.Mass
	if mass <= 0 {
		mass = 1
	}
	w.bodies.Put(id, &body{
		pose: ecs.Pose{
			Position: desc.Position,
			Rotation: desc.Rotation,
			Velocity: desc.Velocity,
		},
		mass:      mass,
		kinematic: desc.Kinematic,
	})
	w.log.Debug("body created", zap.Int32("object", int32(id)), zap.Bool("kinematic", desc.Kinematic))
	return nil
}

// Step advances the listed bodies by dt seconds. Objects without a body are ignored.
func (w *World) Step(dt float64, ids []ecs.ObjectID) error {
	if w.shutdown {
		return ErrShutdown
	}
	if dt <= 0 {
		return nil
	}

	remaining := dt
	for remaining > 0 {
		h := min(remaining, w.cfg.MaxStep)
		for _, id := range ids {
			if b, ok := w.bodies.Get(id); ok {
				w.integrate(b, float32(h))
			}
		}
		remaining -= h
	}
	w.stepped++
	return nil
}

// integrate uses semi-implicit Euler: velocity first, then position.
func (w *World) integrate(b *body, h float32) {
	if b.kinematic {
		b.pose.Position = b.pose.Position.Add(b.pose.Velocity.Mul(h))
		return
	}

	b.pose.Velocity = b.pose.Velocity.Add(w.cfg.Gravity.Mul(h))
	b.pose.Position = b.pose.Position.Add(b.pose.Velocity.Mul(h))

	b.grounded = false
	if b.pose.Position[1] <= w.cfg.GroundHeight {
		b.pose.Position[1] = w.cfg.GroundHeight
		if b.pose.Velocity[1] < 0 {
			b.pose.Velocity[1] = 0
		}
		b.grounded = true
	}
}

// Pose returns the current simulation state of an object's body.
func (w *World) Pose(id ecs.ObjectID) (ecs.Pose, bool) {
	b, ok := w.bodies.Get(id)
	if !ok {
		return ecs.Pose{}, false
	}
	return b.pose, true
}

// Grounded reports whether the body rests on the ground plane.
func (w *World) Grounded(id ecs.ObjectID) bool {
	b, ok := w.bodies.Get(id)
	return ok && b.grounded
}

// Len returns the number of bodies.
func (w *World) Len() int { return w.bodies.Len() }

// Steps returns how many Step calls were simulated.
func (w *World) Steps() int64 { return w.stepped }

// Shutdown releases every body. Later calls to CreateBody and Step fail.
func (w *World) Shutdown() {
	if w.shutdown {
		return
	}
	w.log.Info("physics shutdown", zap.Int("bodies", w.bodies.Len()), zap.Int64("steps", w.stepped))
	w.bodies.Clear()
	w.shutdown = true
}
