package ecs

import "github.com/go-gl/mathgl/mgl32"

// BodyDesc describes a rigid body to create in the physics backend.
type BodyDesc struct {
	Position  mgl32.Vec3
	Rotation  mgl32.Quat
	Velocity  mgl32.Vec3
	Mass      float32
	Kinematic bool
}

// Pose is the simulation result for one body.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Velocity mgl32.Vec3
}

// PhysicsBackend is the physics collaborator. Step must finish the simulation
// step before returning; any worker threads stay inside the backend.
type PhysicsBackend interface {
	CreateBody(id ObjectID, desc BodyDesc) error
	Step(dt float64, ids []ObjectID) error
	Pose(id ObjectID) (Pose, bool)
	Shutdown()
}

// RenderSink is the part of the rendering collaborator that components talk to.
// AddObject creates the render record for obj and stores its index in obj.RenderID.
type RenderSink interface {
	AddObject(obj *GameObject) (int32, error)
}

// SceneMembership places objects created during a frame into the scene that
// holds a related object. Adopt reports false when no scene holds owner.
type SceneMembership interface {
	Adopt(owner, child ObjectID) bool
}
