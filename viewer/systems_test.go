package viewer

import (
	"errors"
	"testing"
	"time"

	"github.com/Speedy-Consoles/ants-insight/playback"
	"github.com/Speedy-Consoles/ants-insight/tick"
	"github.com/Speedy-Consoles/ants-insight/tick/debugui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeTurns = `1 2
a 1 1 1 1
turn
a .
turn
. a
turn
a a
end
`

func newSession(t *testing.T, autoplay bool) (*tick.Resources, *playback.Controller) {
	t.Helper()
	r := loadReplay(t, threeTurns)
	controller := playback.NewController(playback.NewPlayer(r.TurnCount(), autoplay, 1))
	resources := tick.NewResources()
	tick.Insert(resources, Session{Replay: r, Controller: controller})
	return resources, controller
}

func TestPipelineDrawsOnDemand(t *testing.T) {
	resources, controller := newSession(t, false)
	scheduler := NewPipeline(resources)
	input := tick.Get[Input](resources)
	canvas := tick.Get[Canvas](resources)

	input.Push(playback.ResizeEvent(200, 100))
	scheduler.Once(16 * time.Millisecond)

	require.True(t, canvas.Pending)
	require.NotNil(t, canvas.Scene)
	assert.Equal(t, 0, canvas.Scene.Turn)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 200, H: 100}, canvas.Scene.Board)
	assert.Equal(t, controller.Status(), canvas.Status)
	assert.Empty(t, input.Pending, "events are consumed")

	vp := tick.Get[Viewport](resources)
	assert.Equal(t, 200, vp.Width)
	assert.Equal(t, 100, vp.Height)

	// nothing changed, nothing to draw
	canvas.Pending = false
	scheduler.Once(16 * time.Millisecond)
	assert.False(t, canvas.Pending)

	input.Push(playback.KeyEvent(playback.KeyRight))
	scheduler.Once(16 * time.Millisecond)
	assert.True(t, canvas.Pending)
	assert.Equal(t, 1, canvas.Scene.Turn)

	canvas.Pending = false
	input.Push(playback.FocusEvent())
	scheduler.Once(16 * time.Millisecond)
	assert.True(t, canvas.Pending, "focus forces a redraw")
	assert.Equal(t, 1, canvas.Scene.Turn)
}

func TestPipelineAutoplay(t *testing.T) {
	resources, controller := newSession(t, true)
	scheduler := NewPipeline(resources)
	canvas := tick.Get[Canvas](resources)

	scheduler.Once(100 * time.Millisecond)
	assert.Equal(t, 0, canvas.Scene.Turn)

	scheduler.Once(400 * time.Millisecond)
	assert.Equal(t, 1, controller.Player.Turn())
	assert.Equal(t, 1, canvas.Scene.Turn)
}

func TestPipelineStopsOnClose(t *testing.T) {
	for _, ev := range []playback.Event{playback.KeyEvent(playback.KeyQ), playback.CloseEvent()} {
		resources, _ := newSession(t, false)
		scheduler := NewPipeline(resources)

		scheduler.Once(0)
		assert.False(t, scheduler.Stopped())

		tick.Get[Input](resources).Push(ev)
		scheduler.Once(0)
		assert.True(t, scheduler.Stopped())
	}
}

func TestInputSystemRespectsOverlayCapture(t *testing.T) {
	resources, controller := newSession(t, false)
	tick.Insert(resources, Input{})
	tick.Insert(resources, debugui.ImguiInputState{WantCaptureKeyboard: true})
	windows := tick.Insert(resources, debugui.Windows{})

	scheduler := tick.NewScheduler(resources)
	scheduler.Register(&InputSystem{})

	input := tick.Get[Input](resources)
	input.Push(playback.KeyEvent(playback.KeyRight))
	input.Push(playback.KeyEvent(playback.KeyF1))
	input.Push(playback.ResizeEvent(10, 10))
	scheduler.Once(0)

	assert.Equal(t, 0, controller.Player.Turn(), "captured keys are dropped")
	assert.True(t, controller.Overlay(), "F1 always reaches the controller")
	assert.True(t, windows.Visible)
	w, h := controller.Viewport()
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}

func TestPlaybackSystemCopiesStatus(t *testing.T) {
	resources, controller := newSession(t, false)

	var copied []string
	copyErr := error(nil)
	scheduler := tick.NewScheduler(resources)
	scheduler.Register(&PlaybackSystem{Copy: func(s string) error {
		copied = append(copied, s)
		return copyErr
	}})

	scheduler.Once(0)
	assert.Empty(t, copied)

	controller.OnKey(playback.KeyC)
	scheduler.Once(0)
	assert.Equal(t, []string{controller.Status()}, copied)

	copyErr = errors.New("no clipboard")
	controller.OnKey(playback.KeyC)
	assert.NotPanics(t, func() { scheduler.Once(0) })
	assert.Len(t, copied, 2)
}

func TestTranslateKey(t *testing.T) {
	cases := map[ebiten.Key]playback.Key{
		ebiten.KeyQ:          playback.KeyQ,
		ebiten.KeyArrowRight: playback.KeyRight,
		ebiten.KeyArrowLeft:  playback.KeyLeft,
		ebiten.KeyArrowUp:    playback.KeyUp,
		ebiten.KeyArrowDown:  playback.KeyDown,
		ebiten.KeySpace:      playback.KeySpace,
		ebiten.KeyDigit1:     playback.Key1,
		ebiten.KeyDigit0:     playback.Key0,
		ebiten.KeyNumpad9:    playback.Key9,
		ebiten.KeyF1:         playback.KeyF1,
		ebiten.KeyA:          playback.KeyUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, TranslateKey(in), in.String())
	}
}

func TestEventSourceLayout(t *testing.T) {
	var src eventSource
	var in Input

	src.layout(&in, 800, 600)
	src.layout(&in, 800, 600)
	src.layout(&in, 1024, 768)

	assert.Equal(t, []playback.Event{
		playback.ResizeEvent(800, 600),
		playback.ResizeEvent(1024, 768),
	}, in.Pending)
}
