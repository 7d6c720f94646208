package render

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/scenecore/ecs"
)

// Manager owns the render-object list. It implements ecs.RenderSink.
type Manager struct {
	objects []RenderObject
	byID    *intmap.Map[ecs.ObjectID, int32]
}

// NewManager creates an empty render list.
func NewManager() *Manager {
	return &Manager{
		objects: make([]RenderObject, 0, 256),
		byID:    intmap.New[ecs.ObjectID, int32](256),
	}
}

// AddObject creates the render record for obj and stores its index in
// obj.RenderID. Adding the same object twice returns the existing index.
func (m *Manager) AddObject(obj *ecs.GameObject) (int32, error) {
	if obj.ID < 0 {
		return ecs.InvalidIndex, fmt.Errorf("render object %q: %w", obj.NameString(), ecs.ErrOutOfRange)
	}
	if renderID, ok := m.byID.Get(obj.ID); ok {
		obj.RenderID = renderID
		return renderID, nil
	}

	renderID := int32(len(m.objects))
	m.objects = append(m.objects, RenderObject{
		ObjectID: obj.ID,
		World:    obj.Transform.World,
	})
	m.byID.Put(obj.ID, renderID)
	obj.RenderID = renderID
	return renderID, nil
}

// Update copies the current world matrix of every listed object from the store.
func (m *Manager) Update(objects *ecs.ObjectStore) error {
	for i := range m.objects {
		obj, err := objects.Get(m.objects[i].ObjectID)
		if err != nil {
			return fmt.Errorf("render object %d: %w", i, err)
		}
		m.objects[i].World = obj.Transform.World
	}
	return nil
}

// Len returns the number of render records.
func (m *Manager) Len() int { return len(m.objects) }

// Object returns the render record at index i.
func (m *Manager) Object(i int) (RenderObject, error) {
	if i < 0 || i >= len(m.objects) {
		return RenderObject{}, fmt.Errorf("render object %d: %w (len %d)", i, ecs.ErrOutOfRange, len(m.objects))
	}
	return m.objects[i], nil
}

// Objects returns the render list. The slice is owned by the manager.
func (m *Manager) Objects() []RenderObject {
	return m.objects
}

// Lookup returns the render index of an object, if it has one.
func (m *Manager) Lookup(id ecs.ObjectID) (int32, bool) {
	return m.byID.Get(id)
}
