package main

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/engine"
)

var componentTypes = []ecs.ComponentType{
	ecs.TypeCamera,
	ecs.TypePhysics,
	ecs.TypePedestrian,
	ecs.TypeRender,
}

// populate spawns count objects into the current scene, each with one to
// four distinct random components.
func populate(game *engine.Game, rng *rand.Rand, count int) error {
	world := game.World()
	current := game.Scenes().Current()

	for i := 0; i < count; i++ {
		position := mgl32.Vec3{
			rng.Float32()*200 - 100,
			rng.Float32() * 20,
			rng.Float32()*200 - 100,
		}
		id, err := current.AddObject(world, fmt.Sprintf("Object%d", i), ecs.NewTransform(position))
		if err != nil {
			return err
		}

		n := rng.Intn(len(componentTypes)) + 1
		for _, j := range rng.Perm(len(componentTypes))[:n] {
			if _, err := world.AddComponent(id, componentTypes[j], ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// inputScript holds a random key combination for a random number of frames.
// KeyAction is never pressed: every press would allocate a marker object.
type inputScript struct {
	rng  *rand.Rand
	hold int
}

func newInputScript(rng *rand.Rand) *inputScript {
	return &inputScript{rng: rng}
}

func (s *inputScript) Poll() ecs.InputSnapshot {
	if s.hold > 0 {
		s.hold--
		return ecs.InputSnapshot{}
	}
	s.hold = s.rng.Intn(30) + 1
	return ecs.InputSnapshot{
		Received: true,
		Keys:     ecs.Key(s.rng.Intn(int(ecs.KeyAction)<<1)) &^ ecs.KeyAction,
	}
}
