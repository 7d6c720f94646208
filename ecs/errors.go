package ecs

import "errors"

var (
	// ErrCapacityExceeded is returned when the object store has no free slots left.
	// Callers must treat it as fatal for the object being created.
	ErrCapacityExceeded = errors.New("ecs: object capacity exceeded")

	// ErrOutOfRange is returned by every indexed lookup whose index is outside the table.
	ErrOutOfRange = errors.New("ecs: index out of range")

	// ErrNotFound is returned when a name does not resolve to an object, component or attribute.
	ErrNotFound = errors.New("ecs: not found")

	ErrUnknownComponentType = errors.New("ecs: unknown component type")
	ErrDuplicateComponent   = errors.New("ecs: component name already bound on object")
	ErrComponentSlotsFull   = errors.New("ecs: object has no free component slots")
	ErrNameTooLong          = errors.New("ecs: name does not fit the fixed-size buffer")

	// ErrReadOnlyAttribute is returned when SetAttribute targets a component's identity fields.
	ErrReadOnlyAttribute = errors.New("ecs: attribute is read-only")
)
