package ecs

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
)

const (
	componentBlockSize = 64
)

// ComponentStore is an append-only table of components. A component's index
// is assigned on Add and stays valid for the lifetime of the store: there is
// no removal and no compaction.
type ComponentStore struct {
	registry *ComponentRegistry
	blocks   []*[componentBlockSize]*Component
	count    int
	// order is the update order. It is insertion order unless SortByType was called.
	order []int
}

// NewComponentStore creates an empty store that constructs components through registry.
func NewComponentStore(registry *ComponentRegistry) *ComponentStore {
	return &ComponentStore{
		registry: registry,
	}
}

// Add creates a component of type tag owned by owner and returns its global index.
func (s *ComponentStore) Add(owner ObjectID, tag ComponentType) (int, error) {
	component := s.registry.Create(tag)
	if component == nil {
		return InvalidIndex, fmt.Errorf("add component %s: %w", tag, ErrUnknownComponentType)
	}

	index := s.count
	blockIdx := index / componentBlockSize
	slotIdx := index % componentBlockSize

	if blockIdx >= len(s.blocks) {
		s.blocks = append(s.blocks, new([componentBlockSize]*Component))
	}

	component.GID = owner
	component.GlobalIndexID = index
	s.blocks[blockIdx][slotIdx] = component
	s.order = append(s.order, index)
	s.count++
	return index, nil
}

// Get returns the component at a global index.
func (s *ComponentStore) Get(index int) (*Component, error) {
	if index < 0 || index >= s.count {
		return nil, fmt.Errorf("component %d: %w (len %d)", index, ErrOutOfRange, s.count)
	}
	return s.at(index), nil
}

func (s *ComponentStore) at(index int) *Component {
	return s.blocks[index/componentBlockSize][index%componentBlockSize]
}

// Len returns the number of components ever added.
func (s *ComponentStore) Len() int { return s.count }

// All iterates the components in update order.
func (s *ComponentStore) All() iter.Seq2[int, *Component] {
	return func(yield func(int, *Component) bool) {
		for _, index := range s.order {
			if !yield(index, s.at(index)) {
				return
			}
		}
	}
}

// SortByType reorders the update order by type tag. Ties keep insertion
// order. Global indices are not affected.
func (s *ComponentStore) SortByType() {
	slices.SortFunc(s.order, func(a, b int) int {
		return cmp.Or(
			cmp.Compare(s.at(a).CID, s.at(b).CID),
			cmp.Compare(a, b),
		)
	})
}

// StartAll runs the start hook of every active component that has not started
// yet. Components of inactive objects wait until their owner is reactivated.
func (s *ComponentStore) StartAll(frame *UpdateFrame) error {
	var errs []error
	for _, component := range s.All() {
		if !component.runnable(frame) || component.IsStarted {
			continue
		}
		if err := component.start(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start runs the start hook of a single component unless it already ran.
func (s *ComponentStore) Start(index int, frame *UpdateFrame) error {
	component, err := s.Get(index)
	if err != nil {
		return err
	}
	if !component.runnable(frame) || component.IsStarted {
		return nil
	}
	return component.start(frame)
}

// UpdateAll runs the per-frame hook of every active component of an active
// object, in update order. Components added after the start pass are started
// before their first update.
func (s *ComponentStore) UpdateAll(frame *UpdateFrame) error {
	var errs []error
	for _, component := range s.All() {
		if !component.runnable(frame) {
			continue
		}
		if !component.IsStarted {
			if err := component.start(frame); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		if err := component.update(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// runnable reports whether the component and its owner are both active. A
// missing owner is left to start/update, which report it.
func (c *Component) runnable(frame *UpdateFrame) bool {
	if !c.IsActive {
		return false
	}
	owner, err := c.Owner(frame.World)
	return err != nil || owner.Active()
}
