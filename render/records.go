// Package render holds the core-facing half of the rendering collaborator: the
// flat render-object list and the light table the backend consumes each frame.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/ecs"
)

// LightType selects how a Light record is interpreted by the backend.
type LightType int32

const (
	LightPoint LightType = iota
	LightDirectional
	LightSpot
)

// ParseLightType maps a description tag to a LightType. Empty means point.
func ParseLightType(s string) (LightType, bool) {
	switch s {
	case "", "point", "Point":
		return LightPoint, true
	case "directional", "Directional":
		return LightDirectional, true
	case "spot", "Spot":
		return LightSpot, true
	}
	return LightPoint, false
}

// RenderObject is the render-ready record of one object. Every member is
// 16-byte aligned so the list can be uploaded as is.
type RenderObject struct {
	ObjectID ecs.ObjectID
	_        [3]int32
	World    mgl32.Mat4
}

// Light is one entry of the light table, laid out like RenderObject.
type Light struct {
	Position  mgl32.Vec4
	Emission  mgl32.Vec4
	Direction mgl32.Vec4
	Type      LightType
	ObjectID  ecs.ObjectID
	_         [2]int32
}
