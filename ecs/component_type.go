package ecs

//go:generate go tool stringer -type=ComponentType -trimprefix=Type

// ComponentType is the small integer tag of a component variant.
type ComponentType uint8

const (
	TypeInvalid ComponentType = iota
	TypeCamera
	TypePhysics
	TypePedestrian
	TypeRender
)
