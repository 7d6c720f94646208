package engine

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/render"
	"github.com/plus3/scenecore/scene"
)

var ErrCallbacksNotRegistered = errors.New("engine: host callbacks not registered")

// SceneLoaded is passed to the host once a scene's content is ready for rendering.
type SceneLoaded struct {
	SceneID       uuid.UUID
	Name          string
	Objects       int
	RenderObjects int
	Lights        int
}

// CameraRecord is the host view of one Camera component.
type CameraRecord struct {
	ObjectID   ecs.ObjectID
	Position   mgl32.Vec3
	Forward    mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
	FOV        float32
	Near       float32
	Far        float32
}

type callbacks struct {
	onSceneLoaded func(SceneLoaded)
	pollInput     func() ecs.InputSnapshot
}

// RegisterCallbacks installs the host hooks. Until it is called every other
// boundary query fails with ErrCallbacksNotRegistered.
func (g *Game) RegisterCallbacks(onSceneLoaded func(SceneLoaded), pollInput func() ecs.InputSnapshot) error {
	if onSceneLoaded == nil || pollInput == nil {
		return fmt.Errorf("register callbacks: nil callback: %w", ErrCallbacksNotRegistered)
	}
	g.callbacks = callbacks{onSceneLoaded: onSceneLoaded, pollInput: pollInput}
	return nil
}

func (g *Game) sceneLoaded(s *scene.Scene) {
	if g.callbacks.onSceneLoaded == nil {
		return
	}
	g.callbacks.onSceneLoaded(SceneLoaded{
		SceneID:       s.ID,
		Name:          s.Name,
		Objects:       len(s.Objects),
		RenderObjects: g.render.Len(),
		Lights:        g.lights.Len(),
	})
}

func (g *Game) boundary() error {
	if g.callbacks.pollInput == nil {
		return ErrCallbacksNotRegistered
	}
	if g.world == nil {
		return fmt.Errorf("boundary query in state %s: %w", g.state, ErrInvalidState)
	}
	return nil
}

// GameObject returns a copy of the object record with the given id.
func (g *Game) GameObject(id ecs.ObjectID) (ecs.GameObject, error) {
	if err := g.boundary(); err != nil {
		return ecs.GameObject{}, err
	}
	obj, err := g.world.Objects.Get(id)
	if err != nil {
		return ecs.GameObject{}, err
	}
	return *obj, nil
}

// CamerasLen returns the number of Camera components.
func (g *Game) CamerasLen() (int, error) {
	if err := g.boundary(); err != nil {
		return 0, err
	}
	return ecs.Count[*ecs.Camera](g.world.Components), nil
}

// Camera returns the i-th Camera component in update order.
func (g *Game) Camera(i int) (CameraRecord, error) {
	if err := g.boundary(); err != nil {
		return CameraRecord{}, err
	}
	if i >= 0 {
		n := 0
		for component, camera := range ecs.Each[*ecs.Camera](g.world.Components) {
			if n == i {
				return CameraRecord{
					ObjectID:   component.GID,
					Position:   camera.Position,
					Forward:    camera.Forward,
					View:       camera.View,
					Projection: camera.Projection,
					FOV:        camera.FOV,
					Near:       camera.Near,
					Far:        camera.Far,
				}, nil
			}
			n++
		}
	}
	return CameraRecord{}, fmt.Errorf("camera %d: %w", i, ecs.ErrOutOfRange)
}

// LightsLen returns the size of the light table.
func (g *Game) LightsLen() (int, error) {
	if err := g.boundary(); err != nil {
		return 0, err
	}
	return g.lights.Len(), nil
}

// Light returns entry i of the light table.
func (g *Game) Light(i int) (render.Light, error) {
	if err := g.boundary(); err != nil {
		return render.Light{}, err
	}
	return g.lights.Get(i)
}

// Attribute reads a field of a named component on the object with the given id.
func (g *Game) Attribute(id ecs.ObjectID, component, attribute string) (any, error) {
	if err := g.boundary(); err != nil {
		return nil, err
	}
	return g.world.Attribute(id, component, attribute)
}

// AttributeByName is Attribute with the object resolved by name.
func (g *Game) AttributeByName(object, component, attribute string) (any, error) {
	if err := g.boundary(); err != nil {
		return nil, err
	}
	id, err := g.world.Objects.FindByName(object)
	if err != nil {
		return nil, err
	}
	return g.world.Attribute(id, component, attribute)
}

// RenderObjectsLen returns the size of the render-object list.
func (g *Game) RenderObjectsLen() (int, error) {
	if err := g.boundary(); err != nil {
		return 0, err
	}
	return g.render.Len(), nil
}

// RenderObject returns entry i of the render-object list.
func (g *Game) RenderObject(i int) (render.RenderObject, error) {
	if err := g.boundary(); err != nil {
		return render.RenderObject{}, err
	}
	return g.render.Object(i)
}
