package ecs

import (
	"slices"
	"strings"
)

type registryEntry struct {
	name    string
	factory func() ComponentData
}

// ComponentRegistry maps component type names and tags to the constructor of
// the matching variant. The table is closed: it is filled by NewComponentRegistry
// and cannot be extended at run time.
type ComponentRegistry struct {
	entries map[ComponentType]registryEntry
	byName  map[string]ComponentType
}

// NewComponentRegistry returns the registry holding every component variant.
func NewComponentRegistry() *ComponentRegistry {
	r := &ComponentRegistry{
		entries: make(map[ComponentType]registryEntry),
		byName:  make(map[string]ComponentType),
	}
	register(r, TypeCamera, func() ComponentData { return NewCamera() })
	register(r, TypePhysics, func() ComponentData { return NewPhysicsBody() })
	register(r, TypePedestrian, func() ComponentData { return NewPedestrian() })
	register(r, TypeRender, func() ComponentData { return NewRenderable() })
	return r
}

func register(r *ComponentRegistry, tag ComponentType, factory func() ComponentData) {
	name := tag.String()
	r.entries[tag] = registryEntry{name: name, factory: factory}
	r.byName[strings.ToLower(name)] = tag
}

// Create instantiates the variant for tag with its type tag and default name
// stamped. It returns nil when the tag is not registered.
func (r *ComponentRegistry) Create(tag ComponentType) *Component {
	entry, ok := r.entries[tag]
	if !ok {
		return nil
	}
	return &Component{
		GID:           InvalidIndex,
		CID:           tag,
		GlobalIndexID: InvalidIndex,
		Name:          entry.name,
		IsActive:      true,
		Data:          entry.factory(),
	}
}

// Lookup returns the tag registered under name. The lookup is case-insensitive.
func (r *ComponentRegistry) Lookup(name string) (ComponentType, bool) {
	tag, ok := r.byName[strings.ToLower(name)]
	return tag, ok
}

// Has reports whether tag is registered.
func (r *ComponentRegistry) Has(tag ComponentType) bool {
	_, ok := r.entries[tag]
	return ok
}

// Names returns the registered type names ordered by tag.
func (r *ComponentRegistry) Names() []string {
	tags := make([]ComponentType, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = r.entries[tag].name
	}
	return names
}
