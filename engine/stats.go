package engine

import "time"

// Frame phases, in the order Update runs them.
const (
	PhaseScenes     = "scenes"
	PhaseRender     = "render"
	PhaseComponents = "components"
	PhaseCommands   = "commands"
)

// Stats summarizes frame execution.
type Stats struct {
	Frames     int64
	FrameTime  time.Duration // duration of the last Update
	Objects    int
	Components int
	Phases     []PhaseStats
}

// PhaseStats provides execution statistics for one frame phase.
type PhaseStats struct {
	Name  string
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Last  time.Duration
	Total time.Duration
}

type phaseStatsInternal struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func newPhaseStats(names ...string) []*phaseStatsInternal {
	phases := make([]*phaseStatsInternal, len(names))
	for i, name := range names {
		phases[i] = &phaseStatsInternal{
			name: name,
			min:  time.Duration(1<<63 - 1),
		}
	}
	return phases
}

func (p *phaseStatsInternal) record(d time.Duration) {
	p.count++
	p.last = d
	p.total += d
	if d < p.min {
		p.min = d
	}
	if d > p.max {
		p.max = d
	}
}

// timed runs fn and records how long it took against phase.
func (p *phaseStatsInternal) timed(fn func() error) error {
	start := time.Now()
	err := fn()
	p.record(time.Since(start))
	return err
}

func (p *phaseStatsInternal) snapshot() PhaseStats {
	var avg time.Duration
	if p.count > 0 {
		avg = p.total / time.Duration(p.count)
	}
	return PhaseStats{
		Name:  p.name,
		Count: p.count,
		Min:   p.min,
		Max:   p.max,
		Avg:   avg,
		Last:  p.last,
		Total: p.total,
	}
}
