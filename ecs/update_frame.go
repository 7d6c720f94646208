package ecs

// UpdateFrame carries everything a component needs during one Start or Update pass.
type UpdateFrame struct {
	DeltaTime float64
	Input     InputSnapshot
	World     *World
	Physics   PhysicsBackend
	Renderer  RenderSink
	Scenes    SceneMembership
	Commands  *Commands
}

// NewUpdateFrame creates a frame for world with an empty command buffer.
func NewUpdateFrame(dt float64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		World:     world,
		Commands:  NewCommands(),
	}
}
