package viewer

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/Speedy-Consoles/ants-insight/playback"
	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/Speedy-Consoles/ants-insight/tick"
	"github.com/Speedy-Consoles/ants-insight/tick/debugui"
)

// addOverlayWindows registers the playback, replay and performance windows.
func addOverlayWindows(scheduler *tick.Scheduler) {
	resources := scheduler.Resources()
	windows := tick.Get[debugui.Windows](resources)
	session := tick.NewSingleton[Session](resources)
	summary := replay.Summarize(session.Get().Replay)

	windows.Add("playback", func() { renderPlaybackWindow(session.Get().Controller) })
	windows.Add("replay", func() { renderReplayWindow(session.Get(), &summary) })

	perf := debugui.NewPerformanceStats(120)
	timer := debugui.NewFrameTimer()
	windows.Add("performance", func() { perf.Render(scheduler, timer.GetDeltaTime()) })
}

func renderPlaybackWindow(c *playback.Controller) {
	p := c.Player

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 210), imgui.CondOnce)

	if !imgui.BeginV("Playback", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if p.State() == playback.Playing {
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "PLAYING")
	} else {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
	}

	progress := float32(1)
	if p.Turns() > 1 {
		progress = float32(p.Turn()) / float32(p.Turns()-1)
	}
	imgui.ProgressBarV(progress, imgui.NewVec2(-1, 0), fmt.Sprintf("turn %d/%d", p.Turn()+1, p.Turns()))

	if imgui.Button("|<") {
		p.First()
	}
	imgui.SameLine()
	if imgui.Button("<") {
		p.StepBack()
	}
	imgui.SameLine()
	label := "Play"
	if p.State() == playback.Playing {
		label = "Pause"
	}
	if imgui.Button(label) {
		p.TogglePlay()
	}
	imgui.SameLine()
	if imgui.Button(">") {
		p.StepForward()
	}
	imgui.SameLine()
	if imgui.Button(">|") {
		p.Last()
	}

	imgui.Text(fmt.Sprintf("Speed: %.1f (%.1f turns/s)", p.Speed(), 2*p.Speed()))
	imgui.SameLine()
	if imgui.Button("-") {
		p.AdjustSpeed(-playback.SpeedStep)
	}
	imgui.SameLine()
	if imgui.Button("+") {
		p.AdjustSpeed(playback.SpeedStep)
	}

	imgui.Separator()
	imgui.Text("Layers")
	for layer := range replay.MaxLayers {
		visible := c.Layers.Visible(layer)
		if imgui.Checkbox(fmt.Sprintf("%d", layer), &visible) {
			c.Layers.Set(layer, visible)
			p.MarkDirty()
		}
		if layer%5 != 4 {
			imgui.SameLine()
		}
	}

	imgui.End()
}

func renderReplayWindow(session *Session, summary *replay.Summary) {
	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 210), imgui.CondOnce)

	if !imgui.BeginV("Replay", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if src := session.Replay.Source(); src != "" {
		imgui.Text(src)
	}
	board := summary.Board
	imgui.Text(fmt.Sprintf("Board: %d x %d, %d layers", board.Rows, board.Cols, board.Layers))
	imgui.Text(fmt.Sprintf("Palette: %d symbols", summary.PaletteSize))
	imgui.Text(fmt.Sprintf("Turns: %d", summary.Turns))
	imgui.Text(fmt.Sprintf("Tiles per turn: %d / %.1f / %d", summary.MinTiles, summary.AvgTiles, summary.MaxTiles))
	imgui.Separator()

	turn := session.Controller.Player.Turn()
	tiles, lines := turnCounts(session.Replay, turn)
	imgui.Text(fmt.Sprintf("Current turn: %d tiles, %d lines", tiles, lines))

	if imgui.TreeNodeStr("Palette") {
		for e := range session.Replay.Palette().Entries() {
			imgui.TextColored(imgui.NewVec4(e.Color.R, e.Color.G, e.Color.B, 1), fmt.Sprintf("%c  %s  layer %d", e.Symbol, e.Shape, e.Layer))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// turnCounts returns the record counts of a turn the player already clamped.
func turnCounts(r *replay.Replay, turn int) (tiles, lines int) {
	tiles, err := r.TileCount(turn)
	if err != nil {
		panic(fmt.Errorf("count tiles of turn %d: %w", turn, err))
	}
	lines, err = r.LineCount(turn)
	if err != nil {
		panic(fmt.Errorf("count lines of turn %d: %w", turn, err))
	}
	return tiles, lines
}
