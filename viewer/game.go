// Package viewer shows a replay in an ebiten window.
//
// Every ebiten Update polls input into the Input resource and runs one frame
// of the tick pipeline: input handling, autoplay, projection and scene
// building, then the debug overlay. Draw only repaints the board when the
// pipeline produced a new scene; the screen is not cleared between frames.
package viewer

import (
	"fmt"
	"time"

	"github.com/Speedy-Consoles/ants-insight/config"
	"github.com/Speedy-Consoles/ants-insight/logger"
	"github.com/Speedy-Consoles/ants-insight/playback"
	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/Speedy-Consoles/ants-insight/tick"
	"github.com/Speedy-Consoles/ants-insight/tick/debugui"
	debugui_ebiten "github.com/Speedy-Consoles/ants-insight/tick/debugui/ebiten"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// Game implements ebiten.Game for one replay.
type Game struct {
	scheduler *tick.Scheduler
	input     *tick.Singleton[Input]
	canvas    *tick.Singleton[Canvas]
	backend   *tick.Singleton[debugui_ebiten.ImguiBackend]

	events   eventSource
	renderer Renderer
	hud      *HUD
	last     time.Time
}

// New sets up the window and the frame pipeline for r. It must be called
// before ebiten.RunGame.
func New(r *replay.Replay, cfg config.Config) (*Game, error) {
	player := playback.NewPlayer(r.TurnCount(), cfg.Playback.Autoplay, cfg.Playback.Speed)
	controller := playback.NewController(player)
	controller.SetOverlay(cfg.Render.Overlay)

	resources := tick.NewResources()
	tick.Insert(resources, Session{Replay: r, Controller: controller})
	tick.Insert(resources, debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))

	scheduler := NewPipeline(resources)
	addOverlayWindows(scheduler)

	g := &Game{
		scheduler: scheduler,
		input:     tick.NewSingleton[Input](resources),
		canvas:    tick.NewSingleton[Canvas](resources),
		backend:   tick.NewSingleton[debugui_ebiten.ImguiBackend](resources),
		renderer:  &VectorRenderer{LineWidth: cfg.Render.LineWidth},
		last:      time.Now(),
	}

	if cfg.Render.HUD {
		hud, err := NewHUD(cfg.Render.HUDSize, cfg.Render.HUDColor.Color)
		if err != nil {
			return nil, err
		}
		g.hud = hud
	}

	ebiten.SetWindowTitle(windowTitle(cfg.Window.Title, r))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(cfg.Playback.TPS)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowClosingHandled(true)

	board := r.Board()
	logger.Log.WithFields(logrus.Fields{
		"rows":   board.Rows,
		"cols":   board.Cols,
		"layers": board.Layers,
		"turns":  r.TurnCount(),
	}).Info("replay loaded")

	return g, nil
}

func windowTitle(base string, r *replay.Replay) string {
	if r.Source() == "" {
		return base
	}
	return fmt.Sprintf("%s - %s", base, r.Source())
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// Update polls input and runs one frame of the pipeline. It returns
// ebiten.Termination once a system stopped the scheduler.
func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last)
	g.last = now

	g.events.poll(g.input.Get())

	backend := g.backend.Get()
	backend.BeginFrame()
	g.scheduler.Once(dt)
	backend.EndFrame()

	if g.scheduler.Stopped() {
		logger.Log.Info("closing viewer")
		return ebiten.Termination
	}
	return nil
}

// Draw repaints the board only when a new scene is pending, then draws the
// overlay on top.
func (g *Game) Draw(screen *ebiten.Image) {
	canvas := g.canvas.Get()
	if canvas.Pending && canvas.Scene != nil {
		g.renderer.Render(screen, canvas.Scene)
		if g.hud != nil {
			g.hud.Draw(screen, canvas.Status)
		}
		canvas.Pending = false
	}

	if tick.Get[debugui.Windows](g.scheduler.Resources()).Visible {
		g.backend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.events.layout(g.input.Get(), outsideWidth, outsideHeight)
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
