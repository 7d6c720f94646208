package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/engine"
)

// Report is everything the harness prints after a run.
type Report struct {
	Duration   time.Duration
	Objects    int
	Capacity   int
	Components []VariantCount
	Seed       int64

	Frames         int64
	Elapsed        time.Duration
	FrameTime      FrameSamples
	Phases         []engine.PhaseStats
	PhysicsSteps   int64
	GCPauseMetrics bool
	MemBefore      runtime.MemStats
	MemAfter       runtime.MemStats
}

// VariantCount is the number of live components of one variant.
type VariantCount struct {
	Type  ecs.ComponentType
	Count int
}

func countVariants(store *ecs.ComponentStore) []VariantCount {
	return []VariantCount{
		{ecs.TypeCamera, ecs.Count[*ecs.Camera](store)},
		{ecs.TypePhysics, ecs.Count[*ecs.PhysicsBody](store)},
		{ecs.TypePedestrian, ecs.Count[*ecs.Pedestrian](store)},
		{ecs.TypeRender, ecs.Count[*ecs.Renderable](store)},
	}
}

// FrameSamples collects per-frame durations measured by the harness.
type FrameSamples struct {
	Samples []time.Duration

	Min, Max, Avg, P99 time.Duration
}

func (s *FrameSamples) Add(d time.Duration) { s.Samples = append(s.Samples, d) }

// Summarize fills Min, Max, Avg and P99. It sorts a copy of the samples.
func (s *FrameSamples) Summarize() {
	if len(s.Samples) == 0 {
		return
	}
	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// FPS is the achieved frame rate over the whole run.
func (r *Report) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

const reportTemplate = `
# Scene Engine Stress Report

## Setup
- Planned duration: {{.Duration}} (seed {{.Seed}})
- Objects: {{.Objects}} / {{.Capacity}} slots ({{pct .Objects .Capacity}} used)
- Components:{{range .Components}} {{.Type}}={{.Count}}{{end}}

## Frames
- Frames run: {{.Frames}} in {{.Elapsed}} ({{printf "%.1f" .FPS}} fps)
- Frame time: avg {{.FrameTime.Avg}}, min {{.FrameTime.Min}}, p99 {{.FrameTime.P99}}, max {{.FrameTime.Max}}
- Physics steps: {{.PhysicsSteps}}

| Phase | Calls | Avg | Min | Max | Total |
|---|---|---|---|---|---|
{{- range .Phases}}
| {{.Name}} | {{.Count}} | {{.Avg}} | {{.Min}} | {{.Max}} | {{.Total}} |
{{- end}}

## Memory
| Metric | Before | After | Delta |
|---|---|---|---|
| Heap in use (MB) | {{mb .MemBefore.HeapAlloc}} | {{mb .MemAfter.HeapAlloc}} | {{delta .MemAfter.HeapAlloc .MemBefore.HeapAlloc}} B |
| Allocated total (MB) | {{mb .MemBefore.TotalAlloc}} | {{mb .MemAfter.TotalAlloc}} | {{delta .MemAfter.TotalAlloc .MemBefore.TotalAlloc}} B |
| GC cycles | {{.MemBefore.NumGC}} | {{.MemAfter.NumGC}} | {{gcs .MemAfter.NumGC .MemBefore.NumGC}} |
{{- if .GCPauseMetrics}}

## GC Pauses
- Pause total: {{pause .MemAfter.PauseTotalNs .MemBefore.PauseTotalNs}} over {{gcs .MemAfter.NumGC .MemBefore.NumGC}} cycles
{{- end}}
`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string { return fmt.Sprintf("%.2f", float64(v)/(1<<20)) },
	"delta": func(after, before uint64) int64 {
		return int64(after) - int64(before)
	},
	"gcs": func(after, before uint32) uint32 { return after - before },
	"pause": func(after, before uint64) time.Duration {
		return time.Duration(after - before)
	},
	"pct": func(part, whole int) string {
		if whole == 0 {
			return "0%"
		}
		return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(whole))
	},
}

// Generate renders the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r)
}
