package ecs_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindResolveRoundTrip(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)

	index, err := world.AddComponent(box, ecs.TypeCamera, "MainCamera")
	require.NoError(t, err)

	resolved, ok := world.Meta.Resolve(box, "MainCamera")
	require.True(t, ok)
	assert.Equal(t, index, resolved)

	bound, err := world.Components.Get(index)
	require.NoError(t, err)
	component, err := world.Component(box, "MainCamera")
	require.NoError(t, err)
	assert.Same(t, bound, component)
	assert.Equal(t, "MainCamera", component.Name)

	obj, _ := world.Objects.Get(box)
	require.Equal(t, int32(1), obj.ComponentCount)
	assert.Equal(t, "MainCamera", obj.Components[0].NameString())
	assert.Equal(t, int32(index), obj.Components[0].Index)
	assert.NoError(t, world.CheckConsistency(box))
}

func TestAddComponentDefaultsNameToType(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)

	_, err := world.AddComponent(box, ecs.TypePedestrian, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pedestrian"}, world.Meta.Names(box))
}

func TestAddComponentRejections(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)
	_, err := world.AddComponent(box, ecs.TypeCamera, "Eye")
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     ecs.ObjectID
		tag    ecs.ComponentType
		cname  string
		target error
	}{
		{"duplicate name", box, ecs.TypeRender, "Eye", ecs.ErrDuplicateComponent},
		{"unknown type", box, ecs.ComponentType(77), "Thing", ecs.ErrUnknownComponentType},
		{"missing object", 5, ecs.TypeCamera, "Eye", ecs.ErrOutOfRange},
		{"name too long", box, ecs.TypeCamera, "ThisComponentNameIsFarTooLongToFit", ecs.ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := world.Components.Len()
			_, err := world.AddComponent(tt.id, tt.tag, tt.cname)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, before, world.Components.Len(), "no component may be created on failure")
		})
	}
	assert.NoError(t, world.CheckConsistency(box))
}

func TestAddComponentSlotsFull(t *testing.T) {
	world := ecs.NewWorld(2)
	box := spawn(world, "Box", 0, 0, 0)

	for i := 0; i < ecs.MaxComponents; i++ {
		_, err := world.AddComponent(box, ecs.TypeRender, fmt.Sprintf("mesh-%d", i))
		require.NoError(t, err)
	}

	_, err := world.AddComponent(box, ecs.TypeRender, "one-too-many")
	assert.ErrorIs(t, err, ecs.ErrComponentSlotsFull)
	assert.Equal(t, ecs.MaxComponents, world.Meta.Count(box))
	assert.NoError(t, world.CheckConsistency(box))
}

func TestCameraFollowsOwnerAfterStart(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)

	box := spawn(world, "Box", 1, 2, 3)
	_, err := world.AddComponent(box, ecs.TypeCamera, "")
	require.NoError(t, err)

	require.NoError(t, world.Components.StartAll(frame))

	component, err := world.Component(box, "Camera")
	require.NoError(t, err)
	assert.Equal(t, box, component.GID)
	assert.True(t, component.IsStarted)

	camera := component.Data.(*ecs.Camera)
	assert.True(t, camera.Position.ApproxEqual(mgl32.Vec3{1, 2, 3}), "got %v", camera.Position)
	assert.True(t, camera.Forward.ApproxEqual(mgl32.Vec3{0, 0, -1}))
}

func TestPedestrianWalksFromInput(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)
	frame.DeltaTime = 0.5

	walker := spawn(world, "Walker", 0, 0, 0)
	_, err := world.AddComponent(walker, ecs.TypePedestrian, "")
	require.NoError(t, err)
	require.NoError(t, world.Components.StartAll(frame))

	require.NoError(t, world.Components.UpdateAll(frame))
	obj, _ := world.Objects.Get(walker)
	assert.True(t, obj.Transform.Position.ApproxEqual(mgl32.Vec3{}), "no input, no movement")

	frame.Input = ecs.InputSnapshot{Received: true, Keys: ecs.KeyForward}
	require.NoError(t, world.Components.UpdateAll(frame))

	assert.True(t, obj.Transform.Position.ApproxEqual(mgl32.Vec3{0, 0, -1}), "got %v", obj.Transform.Position)
	assert.True(t, obj.Transform.WorldPosition().ApproxEqual(mgl32.Vec3{0, 0, -1}))

	distance, err := world.Attribute(walker, "Pedestrian", "Distance")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, distance, 1e-6)
}

func TestPhysicsComponentReadsBackVelocity(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)
	physics := frame.Physics.(*fakePhysics)

	ball := spawn(world, "Ball", 0, 5, 0)
	_, err := world.AddComponent(ball, ecs.TypePhysics, "")
	require.NoError(t, err)
	require.NoError(t, world.Components.StartAll(frame))

	pose := physics.bodies[ball]
	pose.Velocity = mgl32.Vec3{0, -3, 0}
	physics.bodies[ball] = pose

	require.NoError(t, world.Components.UpdateAll(frame))
	velocity, err := world.Attribute(ball, "Physics", "velocity")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, -3, 0}, velocity)
}

func TestAttributeQueries(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)
	_, err := world.AddComponent(box, ecs.TypeCamera, "Eye")
	require.NoError(t, err)

	fov, err := world.Attribute(box, "Eye", "FOV")
	require.NoError(t, err)
	assert.Equal(t, float32(60), fov)

	gid, err := world.Attribute(box, "Eye", "gid")
	require.NoError(t, err)
	assert.Equal(t, box, gid)

	require.NoError(t, world.SetAttribute(box, "Eye", "fov", 75.0))
	fov, _ = world.Attribute(box, "Eye", "FOV")
	assert.Equal(t, float32(75), fov)

	assert.Error(t, world.SetAttribute(box, "Eye", "FOV", "wide"))

	t.Run("unknown object", func(t *testing.T) {
		_, err := world.Attribute(99, "Eye", "FOV")
		assert.ErrorIs(t, err, ecs.ErrOutOfRange)
	})
	t.Run("unknown component", func(t *testing.T) {
		_, err := world.Attribute(box, "Ear", "FOV")
		assert.ErrorIs(t, err, ecs.ErrNotFound)
	})
	t.Run("unknown attribute", func(t *testing.T) {
		_, err := world.Attribute(box, "Eye", "Zoom")
		assert.ErrorIs(t, err, ecs.ErrNotFound)
	})
	t.Run("variant payload is not an attribute", func(t *testing.T) {
		_, err := world.Attribute(box, "Eye", "Data")
		assert.ErrorIs(t, err, ecs.ErrNotFound)
	})
}

func TestComponentsOf(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)
	_, _ = world.AddComponent(box, ecs.TypeRender, "")
	_, _ = world.AddComponent(box, ecs.TypeCamera, "")

	components, err := world.ComponentsOf(box)
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, ecs.TypeRender, components[0].CID)
	assert.Equal(t, ecs.TypeCamera, components[1].CID)

	_, err = world.ComponentsOf(42)
	assert.ErrorIs(t, err, ecs.ErrOutOfRange)
}

func TestCreateObjectDropsForeignSlots(t *testing.T) {
	world := ecs.NewWorld(4)
	obj := ecs.NewGameObject("Copy", ecs.NewTransform(mgl32.Vec3{}))
	obj.ComponentCount = 3
	obj.Components[0].Index = 12

	id, err := world.CreateObject(obj)
	require.NoError(t, err)

	stored, _ := world.Objects.Get(id)
	assert.Equal(t, int32(0), stored.ComponentCount)
	assert.NoError(t, world.CheckConsistency(id))
}

func TestPedestrianDropsMarkerOnAction(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)

	walker := spawn(world, "Walker", 2, 0, 1)
	_, err := world.AddComponent(walker, ecs.TypePedestrian, "")
	require.NoError(t, err)
	require.NoError(t, world.Components.StartAll(frame))

	frame.Input = ecs.InputSnapshot{Received: true, Keys: ecs.KeyAction}
	require.NoError(t, world.Components.UpdateAll(frame))
	assert.Equal(t, 1, world.Objects.Len(), "marker waits for the flush")
	require.NoError(t, frame.Commands.Flush(world))

	marker, err := world.Objects.FindByName("Walker.marker1")
	require.NoError(t, err)
	obj, err := world.Objects.Get(marker)
	require.NoError(t, err)
	assert.True(t, obj.Transform.Position.ApproxEqual(mgl32.Vec3{2, 0, 1}))

	components, err := world.ComponentsOf(marker)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, ecs.TypeRender, components[0].CID)

	markers, err := world.Attribute(walker, "Pedestrian", "Markers")
	require.NoError(t, err)
	assert.Equal(t, 1, markers)

	// Holding the key is not a new press.
	require.NoError(t, world.Components.UpdateAll(frame))
	require.NoError(t, frame.Commands.Flush(world))
	assert.Equal(t, 2, world.Objects.Len())
}

func TestSetAttributeKeepsComponentIdentity(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)
	other := spawn(world, "Other", 1, 0, 0)
	index, err := world.AddComponent(box, ecs.TypeCamera, "")
	require.NoError(t, err)

	for attribute, value := range map[string]any{
		"GlobalIndexID": 7,
		"GID":           other,
		"cid":           ecs.TypeRender,
		"Name":          "Renamed",
	} {
		err := world.SetAttribute(box, "Camera", attribute, value)
		assert.ErrorIs(t, err, ecs.ErrReadOnlyAttribute, attribute)
	}

	c, err := world.Components.Get(index)
	require.NoError(t, err)
	assert.Equal(t, index, c.GlobalIndexID)
	assert.Equal(t, box, c.GID)
	assert.Equal(t, ecs.TypeCamera, c.CID)
	assert.Equal(t, "Camera", c.Name)
	require.NoError(t, world.CheckConsistency(box))

	require.NoError(t, world.SetAttribute(box, "Camera", "IsActive", false))
	assert.False(t, c.IsActive)
	require.NoError(t, world.SetAttribute(box, "Camera", "IsActive", true))
}

func TestCheckConsistencyDetectsWrongGlobalIndex(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)
	index, err := world.AddComponent(box, ecs.TypeRender, "")
	require.NoError(t, err)

	c, err := world.Components.Get(index)
	require.NoError(t, err)
	c.GlobalIndexID = index + 5
	assert.Error(t, world.CheckConsistency(box))
}

func TestSetAttributeRejectsOverflow(t *testing.T) {
	world := ecs.NewWorld(8)
	box := spawn(world, "Box", 0, 0, 0)
	_, err := world.AddComponent(box, ecs.TypeCamera, "")
	require.NoError(t, err)
	_, err = world.AddComponent(box, ecs.TypePedestrian, "")
	require.NoError(t, err)

	assert.Error(t, world.SetAttribute(box, "Camera", "FOV", 1e300))
	fov, _ := world.Attribute(box, "Camera", "FOV")
	assert.Equal(t, float32(60), fov)

	assert.Error(t, world.SetAttribute(box, "Pedestrian", "Markers", 1.5))
	assert.Error(t, world.SetAttribute(box, "Pedestrian", "Markers", 1e30))
	require.NoError(t, world.SetAttribute(box, "Pedestrian", "Markers", 3.0))
	markers, _ := world.Attribute(box, "Pedestrian", "Markers")
	assert.Equal(t, 3, markers)
}

func TestInactiveOwnerIsSkipped(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)
	frame.DeltaTime = 0.5

	walker := spawn(world, "Walker", 0, 0, 0)
	_, err := world.AddComponent(walker, ecs.TypePedestrian, "")
	require.NoError(t, err)
	_, err = world.AddComponent(walker, ecs.TypeRender, "")
	require.NoError(t, err)

	obj, _ := world.Objects.Get(walker)
	obj.SetActive(false)
	require.NoError(t, world.Components.StartAll(frame))
	for _, c := range world.Components.All() {
		assert.False(t, c.IsStarted, "component %s started on an inactive object", c.Name)
	}

	frame.Input = ecs.InputSnapshot{Received: true, Keys: ecs.KeyForward}
	require.NoError(t, world.Components.UpdateAll(frame))
	assert.True(t, obj.Transform.Position.ApproxEqual(mgl32.Vec3{}), "got %v", obj.Transform.Position)

	obj.SetActive(true)
	require.NoError(t, world.Components.UpdateAll(frame))
	assert.True(t, obj.Transform.Position.ApproxEqual(mgl32.Vec3{0, 0, -1}), "got %v", obj.Transform.Position)
}

func TestMarkerJoinsOwnerScene(t *testing.T) {
	world := ecs.NewWorld(8)
	frame := newTestFrame(world)
	scenes := &fakeScenes{}
	frame.Scenes = scenes

	// 30 two-byte runes: the marker name needs truncating inside a rune.
	name := strings.Repeat("é", 30)
	walker := spawn(world, name, 0, 0, 0)
	_, err := world.AddComponent(walker, ecs.TypePedestrian, "")
	require.NoError(t, err)

	frame.Input = ecs.InputSnapshot{Received: true, Keys: ecs.KeyAction}
	require.NoError(t, world.Components.UpdateAll(frame))
	require.NoError(t, frame.Commands.Flush(world))

	require.Len(t, scenes.adopted[walker], 1)
	marker, err := world.Objects.Get(scenes.adopted[walker][0])
	require.NoError(t, err)
	markerName := marker.NameString()
	assert.True(t, utf8.ValidString(markerName), "%q", markerName)
	assert.LessOrEqual(t, len(markerName), ecs.NameSize-1)
	assert.True(t, strings.HasSuffix(markerName, "é.marker1"), "%q", markerName)
}
