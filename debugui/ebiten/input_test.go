package ebiten

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenecore/ecs"
	"github.com/stretchr/testify/assert"
)

func held(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, h := range keys {
			if h == k {
				return true
			}
		}
		return false
	}
}

func TestSnapshotMapsKeys(t *testing.T) {
	snap := snapshot(held(ebiten.KeyW, ebiten.KeyArrowLeft, ebiten.KeySpace), mgl32.Vec2{}, 0, ecs.InputSnapshot{})
	assert.True(t, snap.Received)
	assert.True(t, snap.Pressed(ecs.KeyForward))
	assert.True(t, snap.Pressed(ecs.KeyLeft))
	assert.True(t, snap.Pressed(ecs.KeyJump))
	assert.False(t, snap.Pressed(ecs.KeyBack))
	assert.False(t, snap.Pressed(ecs.KeyAction))
}

func TestSnapshotReceivedOnlyOnChange(t *testing.T) {
	first := snapshot(held(ebiten.KeyD), mgl32.Vec2{10, 10}, 1, ecs.InputSnapshot{})
	assert.True(t, first.Received)

	same := snapshot(held(ebiten.KeyD), mgl32.Vec2{10, 10}, 1, first)
	assert.False(t, same.Received)
	assert.True(t, same.Pressed(ecs.KeyRight))

	moved := snapshot(held(ebiten.KeyD), mgl32.Vec2{14, 7}, 1, same)
	assert.True(t, moved.Received)
	assert.Equal(t, mgl32.Vec2{4, -3}, moved.MouseDelta)

	released := snapshot(held(), mgl32.Vec2{14, 7}, 0, moved)
	assert.True(t, released.Received)
	assert.Zero(t, released.Keys)
}

func TestWorldToScreen(t *testing.T) {
	x, y := worldToScreen(mgl32.Vec3{1, 5, -2}, 20, 800, 600)
	assert.Equal(t, float32(420), x)
	assert.Equal(t, float32(260), y)
}

func TestEmissionColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 127, A: 255}, emissionColor(mgl32.Vec4{1, -1, 0.5, 1}))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, emissionColor(mgl32.Vec4{4, 0, 0, 0}))
}
