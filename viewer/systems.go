package viewer

import (
	"fmt"

	"github.com/Speedy-Consoles/ants-insight/logger"
	"github.com/Speedy-Consoles/ants-insight/playback"
	"github.com/Speedy-Consoles/ants-insight/projection"
	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/Speedy-Consoles/ants-insight/tick"
	"github.com/Speedy-Consoles/ants-insight/tick/debugui"
	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// Session is the resource tying the loaded replay to its playback state.
type Session struct {
	Replay     *replay.Replay
	Controller *playback.Controller
}

// Canvas is the resource handed from the frame pipeline to Draw.
type Canvas struct {
	Scene   *Scene
	Status  string
	Pending bool
}

// InputSystem applies the events collected since the last frame.
// Keyboard events are dropped while an overlay widget has keyboard focus,
// except F1 so the overlay can always be closed.
type InputSystem struct {
	Session tick.Singleton[Session]
	Input   tick.Singleton[Input]
	Imgui   tick.Singleton[debugui.ImguiInputState]
	Windows tick.Singleton[debugui.Windows]
}

func (s *InputSystem) Execute(frame *tick.Frame) {
	controller := s.Session.Get().Controller
	input := s.Input.Get()

	captured := false
	if state := s.Imgui.Get(); state != nil {
		captured = state.WantCaptureKeyboard
	}

	for _, ev := range input.Pending {
		if ev.Kind == playback.EventKey {
			if captured && ev.Key != playback.KeyF1 {
				continue
			}
			logger.Log.WithField("key", ev.Key.String()).Debug("key pressed")
		}
		controller.Handle(ev)
	}
	input.Pending = input.Pending[:0]

	if windows := s.Windows.Get(); windows != nil {
		windows.Visible = controller.Overlay()
	}

	if controller.Closing() {
		frame.Commands.Stop()
	}
}

// PlaybackSystem advances autoplay and serves status copy requests.
type PlaybackSystem struct {
	Session tick.Singleton[Session]

	// Copy writes the status line somewhere the user can paste it from.
	// Defaults to the system clipboard.
	Copy func(string) error
}

func (s *PlaybackSystem) Execute(frame *tick.Frame) {
	controller := s.Session.Get().Controller

	if controller.Advance(frame.DeltaTime) {
		logger.Log.WithField("turn", controller.Player.Turn()).Debug("autoplay advanced")
	}

	if controller.TakeCopyRequest() {
		status := controller.Status()
		copyFn := s.Copy
		if copyFn == nil {
			copyFn = clipboard.WriteAll
		}
		frame.Commands.Defer(func() {
			if err := copyFn(status); err != nil {
				logger.Log.WithError(err).Warn("copy status to clipboard")
				return
			}
			logger.Log.WithField("status", status).Info("status copied to clipboard")
		})
	}
}

// ProjectionSystem keeps the Viewport resource in sync with the window size.
type ProjectionSystem struct {
	Session  tick.Singleton[Session]
	Viewport tick.Singleton[Viewport]

	calc projection.Calculator
}

func (s *ProjectionSystem) Execute(frame *tick.Frame) {
	session := s.Session.Get()
	board := session.Replay.Board()
	width, height := session.Controller.Viewport()

	if _, changed := s.calc.Update(board.Rows, board.Cols, width, height); !changed {
		return
	}

	vp := Viewport{Transform: s.calc.Transform()}
	vp.Width, vp.Height = s.calc.Size()
	*s.Viewport.Get() = vp
	session.Controller.Player.MarkDirty()
	logger.Log.WithFields(logrus.Fields{
		"width":  vp.Width,
		"height": vp.Height,
		"scaleX": vp.Transform.ScaleX,
		"scaleY": vp.Transform.ScaleY,
	}).Debug("viewport changed")
}

// SceneSystem rebuilds the scene when the player needs a redraw, and on every
// frame while the overlay is shown since the overlay is drawn over it.
type SceneSystem struct {
	Session  tick.Singleton[Session]
	Viewport tick.Singleton[Viewport]
	Canvas   tick.Singleton[Canvas]
}

func (s *SceneSystem) Execute(frame *tick.Frame) {
	session := s.Session.Get()
	controller := session.Controller

	redraw := controller.Player.TakeRedraw()
	if !redraw && !controller.Overlay() {
		return
	}

	scene, err := BuildScene(session.Replay, controller.Player.Turn(), controller.Layers, *s.Viewport.Get())
	if err != nil {
		// the player clamps its turn, so this is a broken invariant
		panic(fmt.Errorf("build scene for turn %d: %w", controller.Player.Turn(), err))
	}

	canvas := s.Canvas.Get()
	canvas.Scene = scene
	canvas.Status = controller.Status()
	canvas.Pending = true
}

// NewPipeline registers the viewer systems in frame order on a scheduler
// whose resources already hold Session. Missing Input, Viewport, Canvas and
// overlay resources are created.
func NewPipeline(resources *tick.Resources) *tick.Scheduler {
	tick.NewSingleton[Input](resources)
	tick.NewSingleton[Viewport](resources)
	tick.NewSingleton[Canvas](resources)
	tick.NewSingleton[debugui.ImguiInputState](resources)
	tick.NewSingleton[debugui.Windows](resources)

	scheduler := tick.NewScheduler(resources)
	scheduler.Register(&InputSystem{})
	scheduler.Register(&PlaybackSystem{})
	scheduler.Register(&ProjectionSystem{})
	scheduler.Register(&SceneSystem{})
	scheduler.Register(&debugui.ImguiSystem{})
	return scheduler
}
