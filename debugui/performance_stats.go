package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecore/engine"
)

// PerformanceStats plots frame times and shows per-phase timings.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) Render(stats *engine.Stats, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.push(deltaTime * 1000.0)

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Objects: %d", stats.Objects))
	imgui.Text(fmt.Sprintf("Components: %d", stats.Components))

	avg := ps.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.Text(fmt.Sprintf("Last Update: %s", stats.FrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Phase Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PhaseStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Phase")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Min")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, phase := range stats.Phases {
				if phase.Count == 0 {
					continue
				}
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(phase.Name)
				imgui.TableNextColumn()
				imgui.Text(phase.Last.String())
				imgui.TableNextColumn()
				imgui.Text(phase.Avg.String())
				imgui.TableNextColumn()
				imgui.Text(phase.Min.String())
				imgui.TableNextColumn()
				imgui.Text(phase.Max.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStats) push(ms float32) {
	ps.frameHistory[ps.frameIndex] = ms
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// average is taken over the frames recorded so far, not the whole window.
func (ps *PerformanceStats) average() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.recorded)
}
