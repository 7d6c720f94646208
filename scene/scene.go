// Package scene groups game objects into named scenes, ingests scene
// descriptions and cascades Start and Update over every registered scene.
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/plus3/scenecore/ecs"
)

// Scene is a named subset of the world's objects plus its lifecycle flags.
type Scene struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	IsCreated bool
	IsStarted bool
	Objects   []ecs.ObjectID

	// Source is the path of the description file. It is read on load when
	// Description is nil.
	Source      string
	Description *Description
	Loaded      bool
}

func newScene(name string) *Scene {
	return &Scene{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		IsCreated: true,
	}
}

// AddObject creates an object in world and makes it part of the scene.
func (s *Scene) AddObject(world *ecs.World, name string, transform ecs.Transform) (ecs.ObjectID, error) {
	if len(name) > ecs.NameSize-1 {
		return ecs.InvalidIndex, fmt.Errorf("object %q: %w", name, ecs.ErrNameTooLong)
	}
	id, err := world.CreateObject(ecs.NewGameObject(name, transform))
	if err != nil {
		return ecs.InvalidIndex, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	s.Objects = append(s.Objects, id)
	return id, nil
}

// Start starts the components of every object in the scene. It runs once;
// later calls do nothing.
func (s *Scene) Start(frame *ecs.UpdateFrame) error {
	if !s.IsActive || !s.IsCreated || s.IsStarted {
		return nil
	}
	var errs []error
	for _, id := range s.Objects {
		if err := frame.World.StartObject(id, frame); err != nil {
			errs = append(errs, err)
		}
	}
	s.IsStarted = true
	return errors.Join(errs...)
}

// Update steps the physics backend for the scene's active objects, copies the
// resulting poses back and recomputes their world transforms. Inactive
// objects keep their pose and transform until they are reactivated.
func (s *Scene) Update(frame *ecs.UpdateFrame) error {
	if !s.IsActive || !s.IsCreated {
		return nil
	}

	active := make([]ecs.ObjectID, 0, len(s.Objects))
	for _, id := range s.Objects {
		obj, err := frame.World.Objects.Get(id)
		if err != nil {
			return fmt.Errorf("scene %q: %w", s.Name, err)
		}
		if obj.Active() {
			active = append(active, id)
		}
	}

	if frame.Physics != nil && len(active) > 0 {
		if err := frame.Physics.Step(frame.DeltaTime, active); err != nil {
			return fmt.Errorf("scene %q: physics step: %w", s.Name, err)
		}
	}

	for _, id := range active {
		obj, _ := frame.World.Objects.Get(id)
		if frame.Physics != nil {
			if pose, ok := frame.Physics.Pose(id); ok {
				obj.SetPosition(pose.Position)
				obj.SetRotation(pose.Rotation)
			}
		}
		obj.UpdateTransform()
	}
	return nil
}
