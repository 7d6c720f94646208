package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/scenecore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentStoreAdd(t *testing.T) {
	store := ecs.NewComponentStore(ecs.NewComponentRegistry())
	tags := []ecs.ComponentType{ecs.TypeCamera, ecs.TypePhysics, ecs.TypePedestrian, ecs.TypeRender}

	// Cross the block boundary to make sure indices stay stable.
	for i := 0; i < 200; i++ {
		owner := ecs.ObjectID(i % 7)
		tag := tags[i%len(tags)]

		k, err := store.Add(owner, tag)
		require.NoError(t, err)
		assert.Equal(t, i, k)

		component, err := store.Get(k)
		require.NoError(t, err)
		assert.Equal(t, k, component.GlobalIndexID)
		assert.Equal(t, owner, component.GID)
		assert.Equal(t, tag, component.CID)
	}
	assert.Equal(t, 200, store.Len())
}

func TestComponentStoreAddUnknownType(t *testing.T) {
	store := ecs.NewComponentStore(ecs.NewComponentRegistry())

	k, err := store.Add(0, ecs.ComponentType(42))
	assert.ErrorIs(t, err, ecs.ErrUnknownComponentType)
	assert.Equal(t, ecs.InvalidIndex, k)
	assert.Equal(t, 0, store.Len())
}

func TestComponentStoreGetOutOfRange(t *testing.T) {
	store := ecs.NewComponentStore(ecs.NewComponentRegistry())
	_, err := store.Add(0, ecs.TypeCamera)
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 64} {
		t.Run(fmt.Sprintf("index=%d", index), func(t *testing.T) {
			_, err := store.Get(index)
			assert.ErrorIs(t, err, ecs.ErrOutOfRange)
		})
	}
}

func TestComponentStoreStartAllIsIdempotent(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)
	physics := frame.Physics.(*fakePhysics)

	box := spawn(world, "Box", 0, 0, 0)
	_, err := world.AddComponent(box, ecs.TypePhysics, "")
	require.NoError(t, err)

	require.NoError(t, world.Components.StartAll(frame))
	require.NoError(t, world.Components.StartAll(frame))

	assert.Equal(t, []ecs.ObjectID{box}, physics.created, "start hook must run once")
}

func TestComponentStoreSkipsInactive(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)
	renderer := frame.Renderer.(*fakeRenderer)

	box := spawn(world, "Box", 0, 0, 0)
	index, err := world.AddComponent(box, ecs.TypeRender, "")
	require.NoError(t, err)

	component, err := world.Components.Get(index)
	require.NoError(t, err)
	component.IsActive = false

	require.NoError(t, world.Components.StartAll(frame))
	require.NoError(t, world.Components.UpdateAll(frame))
	assert.Empty(t, renderer.objects)
	assert.False(t, component.IsStarted)
}

func TestComponentStoreUpdateStartsLateComponents(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)
	renderer := frame.Renderer.(*fakeRenderer)

	require.NoError(t, world.Components.StartAll(frame))

	box := spawn(world, "Box", 0, 0, 0)
	index, err := world.AddComponent(box, ecs.TypeRender, "")
	require.NoError(t, err)

	require.NoError(t, world.Components.UpdateAll(frame))
	component, _ := world.Components.Get(index)
	assert.True(t, component.IsStarted)
	assert.Equal(t, []ecs.ObjectID{box}, renderer.objects)
}

func TestComponentStoreOrder(t *testing.T) {
	store := ecs.NewComponentStore(ecs.NewComponentRegistry())
	tags := []ecs.ComponentType{
		ecs.TypeRender, ecs.TypeCamera, ecs.TypeRender, ecs.TypePhysics, ecs.TypeCamera,
	}
	for i, tag := range tags {
		_, err := store.Add(ecs.ObjectID(i), tag)
		require.NoError(t, err)
	}

	collect := func() []int {
		var order []int
		for index := range store.All() {
			order = append(order, index)
		}
		return order
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, collect(), "insertion order by default")

	store.SortByType()
	assert.Equal(t, []int{1, 4, 3, 0, 2}, collect(), "stable sort by type tag")

	for index := range 5 {
		component, err := store.Get(index)
		require.NoError(t, err)
		assert.Equal(t, index, component.GlobalIndexID, "sorting must not move components")
	}
}

func TestEach(t *testing.T) {
	world := ecs.NewWorld(8)
	a := spawn(world, "A", 0, 0, 0)
	b := spawn(world, "B", 0, 0, 0)
	_, _ = world.AddComponent(a, ecs.TypeCamera, "")
	_, _ = world.AddComponent(a, ecs.TypeRender, "")
	_, _ = world.AddComponent(b, ecs.TypeCamera, "")

	var owners []ecs.ObjectID
	for component, camera := range ecs.Each[*ecs.Camera](world.Components) {
		assert.NotNil(t, camera)
		owners = append(owners, component.GID)
	}
	assert.Equal(t, []ecs.ObjectID{a, b}, owners)
	assert.Equal(t, 1, ecs.Count[*ecs.Renderable](world.Components))
	assert.Equal(t, 0, ecs.Count[*ecs.Pedestrian](world.Components))
}
