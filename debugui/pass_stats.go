package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/propcore/game"
)

// frameHistory is a ring buffer of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(size int) *frameHistory {
	return &frameHistory{samples: make([]float32, max(size, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples[:h.filled] {
		total += ms
	}
	return total / float32(h.filled)
}

// PassStatsProperty graphs frame times and shows the per-event pass statistics
// of the runtime's property manager.
type PassStatsProperty struct {
	game.PropertyBase

	runtime *game.Runtime
	history *frameHistory
}

func NewPassStatsProperty(runtime *game.Runtime, historyFrames int) *PassStatsProperty {
	return &PassStatsProperty{
		runtime: runtime,
		history: newFrameHistory(historyFrames),
	}
}

func (ps *PassStatsProperty) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.Frame}
}

func (ps *PassStatsProperty) OnFrame() {
	frame := ps.runtime.Frame()
	ps.history.push(float32(frame.DeltaTime * 1000.0))

	if !imgui.BeginV("Pass Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Frame: %d", frame.Number))
	imgui.Text(fmt.Sprintf("Entities: %d", ps.runtime.DefaultWorld().Len()))
	imgui.Text(fmt.Sprintf("Pending commands: %d", ps.runtime.Commands().Len()))

	avg := ps.history.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	stats := ps.runtime.Properties().Stats()
	if imgui.TreeNodeStr(fmt.Sprintf("Passes (%d total)", stats.TotalPasses)) {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PassTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Event")
			imgui.TableSetupColumn("Registered")
			imgui.TableSetupColumn("Hook Calls")
			imgui.TableSetupColumn("Evictions")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, pass := range stats.Passes {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pass.Event.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pass.Registered))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pass.HookCalls))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pass.Evictions))
				imgui.TableNextColumn()
				imgui.Text(pass.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(pass.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
