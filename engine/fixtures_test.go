package engine_test

import (
	"testing"
	"time"

	"github.com/plus3/scenecore/config"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/engine"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeClock advances by a fixed step every time it is read.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// inputScript replays snapshots, then reports nothing received.
type inputScript struct {
	snapshots []ecs.InputSnapshot
	polls     int
}

func (s *inputScript) Poll() ecs.InputSnapshot {
	s.polls++
	if len(s.snapshots) == 0 {
		return ecs.InputSnapshot{}
	}
	next := s.snapshots[0]
	s.snapshots = s.snapshots[1:]
	return next
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Engine.ObjectCapacity = 32
	cfg.Engine.DefaultScene = "Test"
	return cfg
}

// newGame creates a game with callbacks registered and a 0.5s frame clock.
func newGame(t *testing.T, cfg *config.Config, opts ...engine.Option) (*engine.Game, *[]engine.SceneLoaded, *inputScript) {
	t.Helper()
	clock := newFakeClock(500 * time.Millisecond)
	opts = append([]engine.Option{engine.WithClock(clock.Now)}, opts...)
	game := engine.New(cfg, zaptest.NewLogger(t), opts...)

	loaded := &[]engine.SceneLoaded{}
	input := &inputScript{}
	require.NoError(t, game.RegisterCallbacks(
		func(ev engine.SceneLoaded) { *loaded = append(*loaded, ev) },
		input.Poll,
	))
	return game, loaded, input
}
