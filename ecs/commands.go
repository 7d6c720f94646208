package ecs

import "errors"

// Commands buffers structural changes requested during a frame. They are
// applied by Flush once the component pass is over, so the store is never
// appended to while it is being iterated.
type Commands struct {
	objects []createObjectCommand
	adds    []addComponentCommand
	defers  []deferCommand
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type createObjectCommand struct {
	object     GameObject
	components []ComponentType
	then       func(ObjectID)
}

type addComponentCommand struct {
	object ObjectID
	tag    ComponentType
	name   string
}

type deferCommand struct {
	fn func()
}

// CreateObject queues the allocation of obj with one component of each listed type.
// then, if not nil, receives the new object's ID after the flush.
func (c *Commands) CreateObject(obj GameObject, components []ComponentType, then func(ObjectID)) {
	c.objects = append(c.objects, createObjectCommand{
		object:     obj,
		components: components,
		then:       then,
	})
}

// AddComponent queues attaching a component of type tag under name.
func (c *Commands) AddComponent(id ObjectID, tag ComponentType, name string) {
	c.adds = append(c.adds, addComponentCommand{
		object: id,
		tag:    tag,
		name:   name,
	})
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.objects) + len(c.adds) + len(c.defers)
}

// Flush applies all commands to world in order: object creation, component
// additions, deferred functions. It resets the buffer even when some commands fail.
func (c *Commands) Flush(world *World) error {
	var errs []error

	for _, cmd := range c.objects {
		id, err := world.CreateObject(cmd.object)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, tag := range cmd.components {
			if _, err := world.AddComponent(id, tag, ""); err != nil {
				errs = append(errs, err)
			}
		}
		if cmd.then != nil {
			cmd.then(id)
		}
	}

	for _, cmd := range c.adds {
		if _, err := world.AddComponent(cmd.object, cmd.tag, cmd.name); err != nil {
			errs = append(errs, err)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.objects = c.objects[:0]
	c.adds = c.adds[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
