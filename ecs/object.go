package ecs

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxComponents is the number of component slots carried by every GameObject.
	MaxComponents = 32
	// NameSize is the size of the GameObject name buffer, including the terminating zero.
	NameSize = 64
	// ComponentNameSize is the size of a component slot name buffer, including the terminating zero.
	ComponentNameSize = 28
	// InvalidIndex marks RenderID and JID values that have not been assigned.
	InvalidIndex = -1
)

// ObjectID is the permanent identity of a GameObject: its slot in the ObjectStore.
type ObjectID int32

// Transform holds the local transform of an object and its derived world matrix.
// World is only refreshed by UpdateTransform.
type Transform struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Quat
	World    mgl32.Mat4
}

// NewTransform returns an identity transform placed at position.
func NewTransform(position mgl32.Vec3) Transform {
	t := Transform{
		Position: position,
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
	t.Recompute()
	return t
}

// Recompute rebuilds World as translation * rotation * scale.
func (t *Transform) Recompute() {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Normalize().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	t.World = translate.Mul4(rotate).Mul4(scale)
}

// WorldPosition returns the translation part of the world matrix.
func (t *Transform) WorldPosition() mgl32.Vec3 {
	return t.World.Col(3).Vec3()
}

// EulerToQuat converts XYZ euler angles in degrees to a rotation.
func EulerToQuat(degrees mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(degrees.X()),
		mgl32.DegToRad(degrees.Y()),
		mgl32.DegToRad(degrees.Z()),
		mgl32.XYZ,
	)
}

// ComponentSlot maps a local component name to its global component index.
type ComponentSlot struct {
	Name  [ComponentNameSize]byte
	Index int32
}

// NameString returns the slot name without the zero padding.
func (s *ComponentSlot) NameString() string {
	return cString(s.Name[:])
}

// GameObject is the fixed-layout object record shared with the host.
// The field order and the explicit padding are part of the host contract;
// see TestGameObjectLayout before changing anything here.
type GameObject struct {
	Transform      Transform
	Name           [NameSize]byte
	ID             ObjectID
	RenderID       int32
	JID            int32
	IsActive       uint8
	IsCreated      uint8
	_              [2]byte
	ComponentCount int32
	Components     [MaxComponents]ComponentSlot
}

// NewGameObject returns an active object record with an identity transform.
// The name is truncated to fit the name buffer.
func NewGameObject(name string, transform Transform) GameObject {
	obj := GameObject{
		Transform: transform,
		ID:        InvalidIndex,
		RenderID:  InvalidIndex,
		JID:       InvalidIndex,
		IsActive:  1,
	}
	copy(obj.Name[:NameSize-1], name)
	return obj
}

// NameString returns the object name without the zero padding.
func (o *GameObject) NameString() string {
	return cString(o.Name[:])
}

// SetName replaces the object name. Names longer than NameSize-1 bytes are rejected.
func (o *GameObject) SetName(name string) error {
	if len(name) > NameSize-1 {
		return ErrNameTooLong
	}
	o.Name = [NameSize]byte{}
	copy(o.Name[:], name)
	return nil
}

func (o *GameObject) Active() bool  { return o.IsActive != 0 }
func (o *GameObject) Created() bool { return o.IsCreated != 0 }

func (o *GameObject) SetActive(active bool) {
	o.IsActive = boolByte(active)
}

// SetPosition changes the position. Call UpdateTransform to refresh the world matrix.
func (o *GameObject) SetPosition(p mgl32.Vec3) { o.Transform.Position = p }

// SetRotation changes the rotation. Call UpdateTransform to refresh the world matrix.
func (o *GameObject) SetRotation(q mgl32.Quat) { o.Transform.Rotation = q }

// SetScale changes the scale. Call UpdateTransform to refresh the world matrix.
func (o *GameObject) SetScale(s mgl32.Vec3) { o.Transform.Scale = s }

// UpdateTransform recomputes the derived world matrix from position, rotation and scale.
func (o *GameObject) UpdateTransform() {
	o.Transform.Recompute()
}

// Slots returns the used component slots in binding order.
func (o *GameObject) Slots() []ComponentSlot {
	return o.Components[:o.ComponentCount]
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
