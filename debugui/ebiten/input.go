package ebiten

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenecore/ecs"
)

// keyBindings maps engine keys to the physical keys that press them.
var keyBindings = []struct {
	key  ecs.Key
	keys []ebiten.Key
}{
	{ecs.KeyForward, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
	{ecs.KeyBack, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
	{ecs.KeyLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
	{ecs.KeyRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
	{ecs.KeyJump, []ebiten.Key{ebiten.KeySpace}},
	{ecs.KeyAction, []ebiten.Key{ebiten.KeyE, ebiten.KeyEnter}},
}

// snapshot builds the input for this tick. Received is set only when
// something changed since prev, so an idle tick leaves the game's cached
// input in place.
func snapshot(pressed func(ebiten.Key) bool, mouse mgl32.Vec2, buttons uint8, prev ecs.InputSnapshot) ecs.InputSnapshot {
	var keys ecs.Key
	for _, binding := range keyBindings {
		for _, k := range binding.keys {
			if pressed(k) {
				keys |= binding.key
				break
			}
		}
	}

	next := ecs.InputSnapshot{
		Keys:       keys,
		Buttons:    buttons,
		Mouse:      mouse,
		MouseDelta: mouse.Sub(prev.Mouse),
	}
	next.Received = next.Keys != prev.Keys || next.Buttons != prev.Buttons || next.Mouse != prev.Mouse
	return next
}
