package ecs

import "iter"

// Each iterates, in update order, the components whose variant is T.
//
//	for c, cam := range ecs.Each[*ecs.Camera](world.Components) { ... }
func Each[T ComponentData](store *ComponentStore) iter.Seq2[*Component, T] {
	return func(yield func(*Component, T) bool) {
		for _, component := range store.All() {
			data, ok := component.Data.(T)
			if !ok {
				continue
			}
			if !yield(component, data) {
				return
			}
		}
	}
}

// Count returns how many components of variant T are in the store.
func Count[T ComponentData](store *ComponentStore) int {
	n := 0
	for range Each[T](store) {
		n++
	}
	return n
}
