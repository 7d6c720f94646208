package main

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/plus3/scenecore/config"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameSamplesSummarize(t *testing.T) {
	var s FrameSamples
	for _, ms := range []int{3, 1, 5} {
		s.Add(time.Duration(ms) * time.Millisecond)
	}
	s.Summarize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)
	assert.Equal(t, 3*time.Millisecond, s.P99)
	assert.Equal(t, 3*time.Millisecond, s.Samples[0], "samples keep their order")

	var empty FrameSamples
	empty.Summarize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:   time.Second,
		Objects:    10,
		Capacity:   40,
		Components: []VariantCount{{ecs.TypeCamera, 2}, {ecs.TypeRender, 8}},
		Frames:     42,
		Elapsed:    2 * time.Second,
		Phases: []engine.PhaseStats{
			{Name: engine.PhaseScenes, Count: 42, Avg: time.Microsecond},
		},
		GCPauseMetrics: true,
	}

	var out strings.Builder
	require.NoError(t, report.Generate(&out))
	text := out.String()
	assert.Contains(t, text, "Objects: 10 / 40 slots (25.0% used)")
	assert.Contains(t, text, "Components: Camera=2 Render=8")
	assert.Contains(t, text, "Frames run: 42 in 2s (21.0 fps)")
	assert.Contains(t, text, "| scenes | 42 | 1µs |")
	assert.Contains(t, text, "## GC Pauses")
}

func TestPopulate(t *testing.T) {
	cfg := config.Defaults()
	cfg.Engine.ObjectCapacity = 20
	cfg.Physics.Enabled = false
	game := engine.New(cfg, nil)
	require.NoError(t, game.Create())

	rng := rand.New(rand.NewSource(7))
	require.NoError(t, populate(game, rng, 20))
	assert.Equal(t, 20, game.World().Objects.Len())
	assert.Len(t, game.Scenes().Current().Objects, 20)

	for id := range game.World().Objects.All() {
		require.NoError(t, game.World().CheckConsistency(id))
	}

	err := populate(game, rng, 1)
	assert.ErrorIs(t, err, ecs.ErrCapacityExceeded)
}

func TestInputScriptHoldsKeys(t *testing.T) {
	script := newInputScript(rand.New(rand.NewSource(3)))
	first := script.Poll()
	assert.True(t, first.Received)

	for i := 0; i < script.hold; i++ {
		assert.False(t, script.Poll().Received)
	}
}
