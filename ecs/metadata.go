package ecs

import (
	"fmt"
	"maps"
	"slices"
)

// ObjectMeta holds the associative state of one object that cannot live in
// the fixed-layout GameObject record.
type ObjectMeta struct {
	ID         ObjectID
	components map[string]int
}

// MetadataTable mirrors the ObjectStore index-for-index.
type MetadataTable struct {
	entries []ObjectMeta
}

// NewMetadataTable creates a table sized for capacity objects.
func NewMetadataTable(capacity int) *MetadataTable {
	return &MetadataTable{
		entries: make([]ObjectMeta, 0, capacity),
	}
}

// Track appends the entry for a freshly allocated object. Objects must be
// tracked in allocation order.
func (t *MetadataTable) Track(id ObjectID) error {
	if int(id) != len(t.entries) {
		return fmt.Errorf("track object %d: expected id %d: %w", id, len(t.entries), ErrOutOfRange)
	}
	t.entries = append(t.entries, ObjectMeta{
		ID:         id,
		components: make(map[string]int),
	})
	return nil
}

// Bind records a name -> global component index association for an object.
func (t *MetadataTable) Bind(id ObjectID, name string, globalIndex int) error {
	meta, err := t.get(id)
	if err != nil {
		return err
	}
	if _, exists := meta.components[name]; exists {
		return fmt.Errorf("bind %q on object %d: %w", name, id, ErrDuplicateComponent)
	}
	meta.components[name] = globalIndex
	return nil
}

// Resolve looks up the global component index bound to name on an object.
func (t *MetadataTable) Resolve(id ObjectID, name string) (int, bool) {
	meta, err := t.get(id)
	if err != nil {
		return InvalidIndex, false
	}
	index, ok := meta.components[name]
	return index, ok
}

// Names returns the component names bound on an object, sorted.
func (t *MetadataTable) Names(id ObjectID) []string {
	meta, err := t.get(id)
	if err != nil {
		return nil
	}
	return slices.Sorted(maps.Keys(meta.components))
}

// Count returns how many names are bound on an object.
func (t *MetadataTable) Count(id ObjectID) int {
	meta, err := t.get(id)
	if err != nil {
		return 0
	}
	return len(meta.components)
}

// Len returns the number of tracked objects.
func (t *MetadataTable) Len() int { return len(t.entries) }

func (t *MetadataTable) get(id ObjectID) (*ObjectMeta, error) {
	if id < 0 || int(id) >= len(t.entries) {
		return nil, fmt.Errorf("metadata for object %d: %w", id, ErrOutOfRange)
	}
	return &t.entries[id], nil
}
