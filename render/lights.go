package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/ecs"
)

// LightTable is the global list of lights in registration order.
type LightTable struct {
	lights []Light
}

func NewLightTable() *LightTable {
	return &LightTable{
		lights: make([]Light, 0, 16),
	}
}

// Add registers a light emitted by obj and returns its index.
func (t *LightTable) Add(obj *ecs.GameObject, emission mgl32.Vec4, direction mgl32.Vec3, typ LightType) int {
	t.lights = append(t.lights, Light{
		Position:  obj.Transform.WorldPosition().Vec4(1),
		Emission:  emission,
		Direction: direction.Vec4(0),
		Type:      typ,
		ObjectID:  obj.ID,
	})
	return len(t.lights) - 1
}

// Update refreshes light positions from their owning objects.
func (t *LightTable) Update(objects *ecs.ObjectStore) error {
	for i := range t.lights {
		obj, err := objects.Get(t.lights[i].ObjectID)
		if err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
		t.lights[i].Position = obj.Transform.WorldPosition().Vec4(1)
	}
	return nil
}

func (t *LightTable) Len() int { return len(t.lights) }

// Get returns the light at index i.
func (t *LightTable) Get(i int) (Light, error) {
	if i < 0 || i >= len(t.lights) {
		return Light{}, fmt.Errorf("light %d: %w (len %d)", i, ecs.ErrOutOfRange, len(t.lights))
	}
	return t.lights[i], nil
}

func (t *LightTable) All() []Light {
	return t.lights
}
