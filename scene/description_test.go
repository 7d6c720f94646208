package scene_test

import (
	"testing"

	"github.com/plus3/scenecore/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescription(t *testing.T) {
	desc, err := scene.LoadDescription("testdata/lights.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Lights", desc.Name)
	require.Len(t, desc.Objects, 4)
	assert.Equal(t, []float32{1, 0, 0, 1}, desc.Objects[1].Emission)
	assert.Equal(t, "spot", desc.Objects[3].LightType)

	desc, err = scene.LoadDescription("testdata/box.json")
	require.NoError(t, err)
	require.Len(t, desc.Objects[0].Components, 2)
	assert.Equal(t, "Body", desc.Objects[0].Components[1].Name)
}

func TestParseDescriptionRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "objects: [ {name: "},
		{"missing name", "objects: [{type: Mesh, position: [0, 0, 0]}]"},
		{"missing type", "objects: [{name: A, position: [0, 0, 0]}]"},
		{"missing position", "objects: [{name: A, type: Mesh}]"},
		{"short position", "objects: [{name: A, type: Mesh, position: [0, 0]}]"},
		{"bad scale", "objects: [{name: A, type: Mesh, position: [0, 0, 0], scale: [1]}]"},
		{"unknown type", "objects: [{name: A, type: Teapot, position: [0, 0, 0]}]"},
		{"light without emission", "objects: [{name: A, type: Light, position: [0, 0, 0]}]"},
		{"short emission", "objects: [{name: A, type: Light, position: [0, 0, 0], emission: [1, 1, 1]}]"},
		{"unknown light type", "objects: [{name: A, type: Light, position: [0, 0, 0], emission: [1, 1, 1, 1], light_type: area}]"},
		{"unknown component", "objects: [{name: A, type: Mesh, position: [0, 0, 0], components: [{type: Sound}]}]"},
		{"duplicate component", "objects: [{name: A, type: Mesh, position: [0, 0, 0], components: [{type: Camera}, {type: camera}]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scene.ParseDescription([]byte(tt.doc))
			assert.ErrorIs(t, err, scene.ErrInvalidDescription)
		})
	}
}

func TestParseDescriptionDefaults(t *testing.T) {
	desc, err := scene.ParseDescription([]byte("objects: [{name: Cam, type: Empty, position: [0, 1, 0], components: [{type: camera, name: Main}]}]"))
	require.NoError(t, err)
	assert.Nil(t, desc.Objects[0].Rotation)
	assert.Nil(t, desc.Objects[0].Scale)
}

func TestShippedScenesValidate(t *testing.T) {
	desc, err := scene.LoadDescription("../scenes/lights.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Lights", desc.Name)
	assert.Len(t, desc.Objects, 6)
}
