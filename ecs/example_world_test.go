package ecs_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/ecs"
)

// ExampleWorld shows the object and component tables working together.
// Objects are identified by their slot in the object store, components by
// their position in the component store, and the per-object metadata maps
// local component names to those positions.
func ExampleWorld() {
	world := ecs.NewWorld(16)

	box, _ := world.Spawn("Box", mgl32.Vec3{1, 2, 3})
	index, _ := world.AddComponent(box, ecs.TypeCamera, "Eye")
	fmt.Printf("Box has id %d, its camera lives at component index %d\n", box, index)

	frame := ecs.NewUpdateFrame(1.0/60.0, world)
	if err := world.Components.StartAll(frame); err != nil {
		fmt.Println(err)
	}

	position, _ := world.Attribute(box, "Eye", "Position")
	fmt.Printf("Camera position: %v\n", position)

	_, err := world.Attribute(box, "Ear", "Position")
	fmt.Println(err)

	// Output:
	// Box has id 0, its camera lives at component index 0
	// Camera position: [1 2 3]
	// component "Ear" on object 0: ecs: not found
}

// ExampleCommands shows deferring structural changes until the end of a frame.
func ExampleCommands() {
	world := ecs.NewWorld(16)
	frame := ecs.NewUpdateFrame(1.0/60.0, world)

	frame.Commands.CreateObject(
		ecs.NewGameObject("Spawned", ecs.NewTransform(mgl32.Vec3{})),
		[]ecs.ComponentType{ecs.TypeRender},
		func(id ecs.ObjectID) { fmt.Printf("created object %d\n", id) },
	)
	fmt.Printf("objects before flush: %d\n", world.Objects.Len())

	if err := frame.Commands.Flush(world); err != nil {
		fmt.Println(err)
	}
	fmt.Printf("objects after flush: %d, components: %d\n", world.Objects.Len(), world.Components.Len())

	// Output:
	// objects before flush: 0
	// created object 0
	// objects after flush: 1, components: 1
}
