package ecs

import (
	"fmt"
	"iter"
)

// ObjectStore is a fixed-capacity table of GameObject records.
// An object's ID is its slot index and never changes. Slots are preallocated,
// so pointers returned by Get stay valid for the lifetime of the store.
type ObjectStore struct {
	objects []GameObject
	count   int
}

// NewObjectStore creates a store with room for exactly capacity objects.
func NewObjectStore(capacity int) *ObjectStore {
	if capacity <= 0 {
		panic("object store capacity must be positive")
	}
	return &ObjectStore{
		objects: make([]GameObject, capacity),
	}
}

// Allocate copies obj into the next free slot and returns its permanent ID.
func (s *ObjectStore) Allocate(obj GameObject) (ObjectID, error) {
	if s.count >= len(s.objects) {
		return InvalidIndex, fmt.Errorf("allocate %q: %w (capacity %d)", obj.NameString(), ErrCapacityExceeded, len(s.objects))
	}

	id := ObjectID(s.count)
	obj.ID = id
	obj.IsCreated = 1
	s.objects[id] = obj
	s.count++
	return id, nil
}

// Get returns the record stored under id. An id that was never allocated
// matches both ErrOutOfRange and ErrNotFound.
func (s *ObjectStore) Get(id ObjectID) (*GameObject, error) {
	if id < 0 || int(id) >= s.count {
		return nil, fmt.Errorf("object %d: %w: %w (len %d)", id, ErrOutOfRange, ErrNotFound, s.count)
	}
	return &s.objects[id], nil
}

// FindByName returns the ID of the first object with the given name.
func (s *ObjectStore) FindByName(name string) (ObjectID, error) {
	for i := 0; i < s.count; i++ {
		if s.objects[i].NameString() == name {
			return ObjectID(i), nil
		}
	}
	return InvalidIndex, fmt.Errorf("object %q: %w", name, ErrNotFound)
}

// Len returns the number of allocated objects.
func (s *ObjectStore) Len() int { return s.count }

// Cap returns the fixed capacity of the store.
func (s *ObjectStore) Cap() int { return len(s.objects) }

// Remaining returns how many more objects can be allocated.
func (s *ObjectStore) Remaining() int { return len(s.objects) - s.count }

// All iterates the allocated objects in ID order.
func (s *ObjectStore) All() iter.Seq2[ObjectID, *GameObject] {
	return func(yield func(ObjectID, *GameObject) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(ObjectID(i), &s.objects[i]) {
				return
			}
		}
	}
}
