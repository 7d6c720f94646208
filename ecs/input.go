package ecs

import "github.com/go-gl/mathgl/mgl32"

// Key is a bit in InputSnapshot.Keys.
type Key uint32

const (
	KeyForward Key = 1 << iota
	KeyBack
	KeyLeft
	KeyRight
	KeyJump
	KeyAction
)

// InputSnapshot is one frame of input delivered by the host's poll callback.
// A snapshot with Received == false carries no new data and is ignored.
type InputSnapshot struct {
	Received   bool
	Keys       Key
	Buttons    uint8
	Mouse      mgl32.Vec2
	MouseDelta mgl32.Vec2
}

// Pressed reports whether k is held in this snapshot.
func (s InputSnapshot) Pressed(k Key) bool {
	return s.Keys&k != 0
}
