package debugui

import (
	"testing"
	"time"

	"github.com/Speedy-Consoles/ants-insight/tick"
	"github.com/stretchr/testify/assert"
)

func TestHiddenOverlayDefersNothing(t *testing.T) {
	resources := tick.NewResources()
	windows := tick.Insert(resources, Windows{})
	tick.Insert(resources, ImguiInputState{WantCaptureKeyboard: true, WantCaptureMouse: true})

	rendered := 0
	windows.Add("counter", func() { rendered++ })

	scheduler := tick.NewScheduler(resources)
	scheduler.Register(&ImguiSystem{})
	scheduler.Once(time.Millisecond)

	assert.Zero(t, rendered)
	state := tick.Get[ImguiInputState](resources)
	assert.False(t, state.WantCaptureKeyboard)
	assert.False(t, state.WantCaptureMouse)
}

func TestMissingResourcesAreIgnored(t *testing.T) {
	scheduler := tick.NewScheduler(tick.NewResources())
	scheduler.Register(&ImguiSystem{})
	assert.NotPanics(t, func() { scheduler.Once(0) })
}

func TestPerformanceStatsHistory(t *testing.T) {
	ps := NewPerformanceStats(4)
	assert.Zero(t, ps.AverageFrameTime())

	ps.Record(0.010)
	ps.Record(0.020)
	assert.InDelta(t, 7.5, ps.AverageFrameTime(), 1e-4)

	// wraps around and overwrites the oldest samples
	for range 4 {
		ps.Record(0.016)
	}
	assert.InDelta(t, 16, ps.AverageFrameTime(), 1e-4)
	assert.Len(t, ps.frameHistory, 4)

	assert.Len(t, NewPerformanceStats(0).frameHistory, 1)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.500 ms", formatDuration(1500*time.Microsecond))
	assert.Equal(t, "0.000 ms", formatDuration(0))
}
