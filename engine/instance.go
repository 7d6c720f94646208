package engine

import (
	"errors"
	"sync/atomic"
)

var ErrInstanceExists = errors.New("engine: a game instance is already set")

var instance atomic.Pointer[Game]

// SetInstance makes g the process-wide game. It fails while another game is set.
func SetInstance(g *Game) error {
	if !instance.CompareAndSwap(nil, g) {
		return ErrInstanceExists
	}
	return nil
}

// Instance returns the process-wide game, or nil.
func Instance() *Game {
	return instance.Load()
}

// ClearInstance forgets the process-wide game.
func ClearInstance() {
	instance.Store(nil)
}
