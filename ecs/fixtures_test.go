package ecs_test

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/ecs"
)

// fakePhysics records calls and integrates bodies with a constant velocity.
type fakePhysics struct {
	bodies   map[ecs.ObjectID]ecs.Pose
	created  []ecs.ObjectID
	steps    int
	shutdown bool
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{bodies: make(map[ecs.ObjectID]ecs.Pose)}
}

func (p *fakePhysics) CreateBody(id ecs.ObjectID, desc ecs.BodyDesc) error {
	p.created = append(p.created, id)
	p.bodies[id] = ecs.Pose{Position: desc.Position, Rotation: desc.Rotation, Velocity: desc.Velocity}
	return nil
}

func (p *fakePhysics) Step(dt float64, ids []ecs.ObjectID) error {
	p.steps++
	for _, id := range ids {
		pose, ok := p.bodies[id]
		if !ok {
			continue
		}
		pose.Position = pose.Position.Add(pose.Velocity.Mul(float32(dt)))
		p.bodies[id] = pose
	}
	return nil
}

func (p *fakePhysics) Pose(id ecs.ObjectID) (ecs.Pose, bool) {
	pose, ok := p.bodies[id]
	return pose, ok
}

func (p *fakePhysics) Shutdown() { p.shutdown = true }

// fakeRenderer hands out render ids in submission order.
type fakeRenderer struct {
	objects []ecs.ObjectID
}

func (r *fakeRenderer) AddObject(obj *ecs.GameObject) (int32, error) {
	id := int32(len(r.objects))
	r.objects = append(r.objects, obj.ID)
	obj.RenderID = id
	return id, nil
}

func newTestFrame(world *ecs.World) *ecs.UpdateFrame {
	frame := ecs.NewUpdateFrame(1.0/60.0, world)
	frame.Physics = newFakePhysics()
	frame.Renderer = &fakeRenderer{}
	return frame
}

func spawn(world *ecs.World, name string, x, y, z float32) ecs.ObjectID {
	id, err := world.Spawn(name, mgl32.Vec3{x, y, z})
	if err != nil {
		panic(err)
	}
	return id
}

// fakeScenes records which children were adopted by which owner.
type fakeScenes struct {
	adopted map[ecs.ObjectID][]ecs.ObjectID
}

func (s *fakeScenes) Adopt(owner, child ecs.ObjectID) bool {
	if s.adopted == nil {
		s.adopted = make(map[ecs.ObjectID][]ecs.ObjectID)
	}
	s.adopted[owner] = append(s.adopted[owner], child)
	return true
}
