package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/scene"
)

const historyFrames = 120

// StatsWindow shows the scene's system timings, the graphics statistics of
// the last frame and the shape of the entity storage.
type StatsWindow struct {
	scene *scene.Scene

	graphics  ramune.FrameStats
	frames    int64
	lastDraw  time.Time
	history   []float32
	historyAt int
}

// SpawnStatsWindow adds a stats window for sc to its storage.
func SpawnStatsWindow(sc *scene.Scene) *StatsWindow {
	w := &StatsWindow{scene: sc, history: make([]float32, historyFrames)}
	Register(sc.Storage())
	sc.Storage().Spawn(ImguiItem{Render: w.Render})
	return w
}

// Observe returns an event handler that passes events on to next and
// records the statistics of every drawn frame.
func (w *StatsWindow) Observe(next func(ramune.Event)) func(ramune.Event) {
	return func(ev ramune.Event) {
		next(ev)
		if d, ok := ev.(ramune.Draw); ok {
			w.record(d.Graphics.Stats(), time.Now())
		}
	}
}

func (w *StatsWindow) record(fs ramune.FrameStats, now time.Time) {
	w.graphics = fs
	w.frames++
	if !w.lastDraw.IsZero() {
		w.history[w.historyAt] = float32(now.Sub(w.lastDraw).Seconds() * 1000)
		w.historyAt = (w.historyAt + 1) % len(w.history)
	}
	w.lastDraw = now
}

// Frames returns the number of frames recorded.
func (w *StatsWindow) Frames() int64 { return w.frames }

// Graphics returns the statistics of the last recorded frame.
func (w *StatsWindow) Graphics() ramune.FrameStats { return w.graphics }

// AverageFrameTime is the mean wall time between recorded frames, in
// milliseconds, over the recent history.
func (w *StatsWindow) AverageFrameTime() float32 {
	var total float32
	n := 0
	for _, ms := range w.history {
		if ms > 0 {
			total += ms
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float32(n)
}

func (w *StatsWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Ramune Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := w.AverageFrameTime()
	imgui.Text(fmt.Sprintf("Frames: %d", w.frames))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &w.history[0], int32(len(w.history)))

	imgui.Separator()
	g := w.graphics
	imgui.Text(fmt.Sprintf("Scopes: %d  Draw Calls: %d", g.Scopes, g.DrawCalls))
	imgui.Text(fmt.Sprintf("Vertices: %d  Submits: %d", g.Vertices, g.Submits))

	stats := w.scene.Stats()
	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()
			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.Runs))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	storage := w.scene.Storage().CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d", storage.Entities, len(storage.Archetypes)))
	if imgui.TreeNodeStr("Archetypes") {
		for _, a := range storage.Archetypes {
			imgui.BulletText(fmt.Sprintf("#%d %s: %d", a.ID, strings.Join(a.Components, ", "), a.Entities))
		}
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Singletons") {
		for _, name := range storage.Singletons {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
