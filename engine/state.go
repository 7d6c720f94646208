package engine

//go:generate go tool stringer -type=State

// State is the Game lifecycle position. Transitions only move forward.
type State uint8

const (
	Uninitialized State = iota
	Created
	Started
	Running
	Ended
)
