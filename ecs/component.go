package ecs

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
)

// ComponentData is the closed set of component variants. Only the types in
// this package implement it; dispatch over it is a single exhaustive switch.
type ComponentData interface {
	Type() ComponentType
	sealed()
}

// Component is one entry of the ComponentStore.
type Component struct {
	// GID is the ID of the owning object.
	GID ObjectID
	// CID is the variant tag.
	CID ComponentType
	// GlobalIndexID is the component's permanent position in the ComponentStore.
	GlobalIndexID int
	Name          string

	IsActive  bool
	IsCreated bool
	IsStarted bool

	Data ComponentData
}

// Owner resolves the owning object through the world's object store.
func (c *Component) Owner(w *World) (*GameObject, error) {
	return w.Objects.Get(c.GID)
}

// Camera derives a view from its owner's transform.
type Camera struct {
	FOV        float32
	Aspect     float32
	Near       float32
	Far        float32
	Position   mgl32.Vec3
	Forward    mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        60,
		Aspect:     16.0 / 9.0,
		Near:       0.1,
		Far:        1000,
		Forward:    mgl32.Vec3{0, 0, -1},
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
	}
}

func (*Camera) Type() ComponentType { return TypeCamera }
func (*Camera) sealed()             {}

func (c *Camera) follow(owner *GameObject) {
	c.Position = owner.Transform.WorldPosition()
	c.Forward = owner.Transform.Rotation.Normalize().Rotate(mgl32.Vec3{0, 0, -1})
	c.View = mgl32.LookAtV(c.Position, c.Position.Add(c.Forward), mgl32.Vec3{0, 1, 0})
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// PhysicsBody wraps a rigid body owned by the physics backend.
type PhysicsBody struct {
	Mass      float32
	Velocity  mgl32.Vec3
	Kinematic bool
	HasBody   bool
}

func NewPhysicsBody() *PhysicsBody {
	return &PhysicsBody{Mass: 1}
}

func (*PhysicsBody) Type() ComponentType { return TypePhysics }
func (*PhysicsBody) sealed()             {}

// Pedestrian walks its owner across the XZ plane from the input snapshot.
// Pressing KeyAction drops a rendered marker object at the owner's position.
type Pedestrian struct {
	Speed    float32
	Distance float32
	Markers  int

	actionHeld bool
}

func NewPedestrian() *Pedestrian {
	return &Pedestrian{Speed: 2}
}

func (*Pedestrian) Type() ComponentType { return TypePedestrian }
func (*Pedestrian) sealed()             {}

func (p *Pedestrian) walk(owner *GameObject, input InputSnapshot, dt float64) {
	var dir mgl32.Vec3
	if input.Pressed(KeyForward) {
		dir[2]--
	}
	if input.Pressed(KeyBack) {
		dir[2]++
	}
	if input.Pressed(KeyLeft) {
		dir[0]--
	}
	if input.Pressed(KeyRight) {
		dir[0]++
	}
	if dir.Len() == 0 {
		return
	}

	step := dir.Normalize().Mul(p.Speed * float32(dt))
	owner.Transform.Position = owner.Transform.Position.Add(step)
	owner.UpdateTransform()
	p.Distance += step.Len()
}

// dropMarker queues one marker per KeyAction press. The object is created
// when the frame's commands are flushed and joins the owner's scene; an owner
// outside every scene leaves its markers outside too.
func (p *Pedestrian) dropMarker(owner *GameObject, frame *UpdateFrame) {
	pressed := frame.Input.Pressed(KeyAction)
	if pressed && !p.actionHeld && frame.Commands != nil {
		p.Markers++
		name := keepTail(fmt.Sprintf("%s.marker%d", owner.NameString(), p.Markers), NameSize-1)
		marker := NewGameObject(name, NewTransform(owner.Transform.WorldPosition()))

		ownerID, scenes := owner.ID, frame.Scenes
		frame.Commands.CreateObject(marker, []ComponentType{TypeRender}, func(id ObjectID) {
			if scenes != nil {
				scenes.Adopt(ownerID, id)
			}
		})
	}
	p.actionHeld = pressed
}

// keepTail shortens s to at most n bytes by dropping leading runes.
func keepTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}

// Renderable hands its owner to the rendering collaborator.
type Renderable struct {
	Mesh    string
	Visible bool
}

func NewRenderable() *Renderable {
	return &Renderable{Visible: true}
}

func (*Renderable) Type() ComponentType { return TypeRender }
func (*Renderable) sealed()             {}

// initialize runs once, when the component is attached to its owner.
func (c *Component) initialize(owner *GameObject) error {
	switch d := c.Data.(type) {
	case *Camera:
		d.follow(owner)
	case *PhysicsBody:
	case *Pedestrian:
	case *Renderable:
		if d.Mesh == "" {
			d.Mesh = owner.NameString()
		}
	default:
		return fmt.Errorf("initialize component %d: %w (%T)", c.GlobalIndexID, ErrUnknownComponentType, c.Data)
	}
	c.IsCreated = true
	return nil
}

func (c *Component) start(frame *UpdateFrame) error {
	owner, err := c.Owner(frame.World)
	if err != nil {
		return fmt.Errorf("start component %d: %w", c.GlobalIndexID, err)
	}

	switch d := c.Data.(type) {
	case *Camera:
		d.follow(owner)
	case *PhysicsBody:
		if frame.Physics != nil && !d.HasBody {
			desc := BodyDesc{
				Position:  owner.Transform.Position,
				Rotation:  owner.Transform.Rotation,
				Velocity:  d.Velocity,
				Mass:      d.Mass,
				Kinematic: d.Kinematic,
			}
			if err := frame.Physics.CreateBody(c.GID, desc); err != nil {
				return fmt.Errorf("start component %d: %w", c.GlobalIndexID, err)
			}
			d.HasBody = true
		}
	case *Pedestrian:
	case *Renderable:
		if frame.Renderer != nil && d.Visible && owner.RenderID == InvalidIndex {
			if _, err := frame.Renderer.AddObject(owner); err != nil {
				return fmt.Errorf("start component %d: %w", c.GlobalIndexID, err)
			}
		}
	default:
		return fmt.Errorf("start component %d: %w (%T)", c.GlobalIndexID, ErrUnknownComponentType, c.Data)
	}
	c.IsStarted = true
	return nil
}

func (c *Component) update(frame *UpdateFrame) error {
	owner, err := c.Owner(frame.World)
	if err != nil {
		return fmt.Errorf("update component %d: %w", c.GlobalIndexID, err)
	}

	switch d := c.Data.(type) {
	case *Camera:
		d.follow(owner)
	case *PhysicsBody:
		if frame.Physics != nil && d.HasBody {
			if pose, ok := frame.Physics.Pose(c.GID); ok {
				d.Velocity = pose.Velocity
			}
		}
	case *Pedestrian:
		d.walk(owner, frame.Input, frame.DeltaTime)
		d.dropMarker(owner, frame)
	case *Renderable:
	default:
		return fmt.Errorf("update component %d: %w (%T)", c.GlobalIndexID, ErrUnknownComponentType, c.Data)
	}
	return nil
}
