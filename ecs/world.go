package ecs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// World is the engine context: it owns the object table, the per-object
// metadata and the component table. Subsystems receive it explicitly.
type World struct {
	Objects    *ObjectStore
	Meta       *MetadataTable
	Registry   *ComponentRegistry
	Components *ComponentStore
}

// NewWorld creates a world with room for objectCapacity objects.
func NewWorld(objectCapacity int) *World {
	registry := NewComponentRegistry()
	return &World{
		Objects:    NewObjectStore(objectCapacity),
		Meta:       NewMetadataTable(objectCapacity),
		Registry:   registry,
		Components: NewComponentStore(registry),
	}
}

// CreateObject allocates obj and its metadata entry. Components already
// listed in obj's slot array are discarded; attach them with AddComponent.
func (w *World) CreateObject(obj GameObject) (ObjectID, error) {
	obj.ComponentCount = 0
	obj.Components = [MaxComponents]ComponentSlot{}

	id, err := w.Objects.Allocate(obj)
	if err != nil {
		return InvalidIndex, err
	}
	if err := w.Meta.Track(id); err != nil {
		return InvalidIndex, err
	}
	return id, nil
}

// Spawn creates an object at position with an identity rotation and unit scale.
func (w *World) Spawn(name string, position mgl32.Vec3) (ObjectID, error) {
	return w.CreateObject(NewGameObject(name, NewTransform(position)))
}

// AddComponent attaches a new component of type tag to an object under name.
// An empty name uses the type name. The slot array and the metadata map are
// written together so they never diverge.
func (w *World) AddComponent(id ObjectID, tag ComponentType, name string) (int, error) {
	obj, err := w.Objects.Get(id)
	if err != nil {
		return InvalidIndex, err
	}
	if !w.Registry.Has(tag) {
		return InvalidIndex, fmt.Errorf("add component %s to object %d: %w", tag, id, ErrUnknownComponentType)
	}
	if name == "" {
		name = tag.String()
	}
	if len(name) > ComponentNameSize-1 {
		return InvalidIndex, fmt.Errorf("component name %q: %w", name, ErrNameTooLong)
	}
	if _, exists := w.Meta.Resolve(id, name); exists {
		return InvalidIndex, fmt.Errorf("add component %q to object %d: %w", name, id, ErrDuplicateComponent)
	}
	if obj.ComponentCount >= MaxComponents {
		return InvalidIndex, fmt.Errorf("add component %q to object %d: %w", name, id, ErrComponentSlotsFull)
	}

	index, err := w.Components.Add(id, tag)
	if err != nil {
		return InvalidIndex, err
	}
	if err := w.Meta.Bind(id, name, index); err != nil {
		return InvalidIndex, err
	}

	slot := &obj.Components[obj.ComponentCount]
	copy(slot.Name[:], name)
	slot.Index = int32(index)
	obj.ComponentCount++

	component := w.Components.at(index)
	component.Name = name
	if err := component.initialize(obj); err != nil {
		return InvalidIndex, err
	}
	return index, nil
}

// Component resolves a component by its local name on an object.
func (w *World) Component(id ObjectID, name string) (*Component, error) {
	if _, err := w.Objects.Get(id); err != nil {
		return nil, err
	}
	index, ok := w.Meta.Resolve(id, name)
	if !ok {
		return nil, fmt.Errorf("component %q on object %d: %w", name, id, ErrNotFound)
	}
	return w.Components.Get(index)
}

// ComponentsOf returns the components of an object in binding order.
func (w *World) ComponentsOf(id ObjectID) ([]*Component, error) {
	obj, err := w.Objects.Get(id)
	if err != nil {
		return nil, err
	}
	components := make([]*Component, 0, obj.ComponentCount)
	for _, slot := range obj.Slots() {
		component, err := w.Components.Get(int(slot.Index))
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, nil
}

// StartObject starts every component of one object that has not started yet.
func (w *World) StartObject(id ObjectID, frame *UpdateFrame) error {
	obj, err := w.Objects.Get(id)
	if err != nil {
		return err
	}
	for _, slot := range obj.Slots() {
		if err := w.Components.Start(int(slot.Index), frame); err != nil {
			return err
		}
	}
	return nil
}

// CheckConsistency verifies that an object's slot array and its metadata map
// describe the same name -> index bindings and that every bound component is
// stored at its own global index and owned by the object.
func (w *World) CheckConsistency(id ObjectID) error {
	obj, err := w.Objects.Get(id)
	if err != nil {
		return err
	}
	if count := w.Meta.Count(id); count != int(obj.ComponentCount) {
		return fmt.Errorf("object %d: %d slots but %d metadata entries", id, obj.ComponentCount, count)
	}
	for _, slot := range obj.Slots() {
		name := slot.NameString()
		index, ok := w.Meta.Resolve(id, name)
		if !ok {
			return fmt.Errorf("object %d: slot %q missing from metadata", id, name)
		}
		if index != int(slot.Index) {
			return fmt.Errorf("object %d: slot %q points at %d, metadata at %d", id, name, slot.Index, index)
		}
		component, err := w.Components.Get(index)
		if err != nil {
			return err
		}
		if component.GlobalIndexID != index {
			return fmt.Errorf("object %d: component at %d records global index %d", id, index, component.GlobalIndexID)
		}
		if component.GID != id {
			return fmt.Errorf("object %d: component %d is owned by object %d", id, index, component.GID)
		}
	}
	return nil
}
