package playback

import (
	"fmt"
	"time"
)

// Controller turns window events into Player and Layers changes. It is owned
// by the frame loop and is not safe for concurrent use.
type Controller struct {
	Player *Player
	Layers Layers

	width, height int
	closing       bool
	overlay       bool
	copyRequested bool
}

// NewController creates a Controller over player with every layer visible.
func NewController(player *Player) *Controller {
	return &Controller{Player: player}
}

// Handle dispatches one event.
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case EventKey:
		c.OnKey(ev.Key)
	case EventResize:
		c.OnResize(ev.Width, ev.Height)
	case EventFocus:
		c.OnFocus()
	case EventClose:
		c.OnClose()
	}
}

// OnKey applies the action bound to k and reports whether k is bound.
func (c *Controller) OnKey(k Key) bool {
	if layer, ok := k.Layer(); ok {
		c.Layers.Toggle(layer)
		c.Player.MarkDirty()
		return true
	}

	switch k {
	case KeyQ:
		c.closing = true
	case KeyRight:
		c.Player.StepForward()
	case KeyLeft:
		c.Player.StepBack()
	case KeyUp:
		c.Player.AdjustSpeed(SpeedStep)
	case KeyDown:
		c.Player.AdjustSpeed(-SpeedStep)
	case KeySpace:
		c.Player.TogglePlay()
	case KeyHome:
		c.Player.First()
	case KeyEnd:
		c.Player.Last()
	case KeyF1:
		c.overlay = !c.overlay
		c.Player.MarkDirty()
	case KeyC:
		c.copyRequested = true
	default:
		return false
	}
	return true
}

// OnResize records the new viewport size and forces a redraw.
func (c *Controller) OnResize(width, height int) {
	c.width, c.height = width, height
	c.Player.MarkDirty()
}

// OnFocus forces a redraw since the window contents may have been lost.
func (c *Controller) OnFocus() {
	c.Player.MarkDirty()
}

// OnClose requests the frame loop to stop.
func (c *Controller) OnClose() {
	c.closing = true
}

// Advance feeds elapsed time into autoplay.
func (c *Controller) Advance(dt time.Duration) bool {
	return c.Player.Advance(dt)
}

// Closing reports whether a close was requested.
func (c *Controller) Closing() bool { return c.closing }

// Viewport returns the last reported viewport size.
func (c *Controller) Viewport() (int, int) { return c.width, c.height }

// Overlay reports whether the debug overlay should be shown.
func (c *Controller) Overlay() bool { return c.overlay }

// SetOverlay shows or hides the debug overlay.
func (c *Controller) SetOverlay(on bool) {
	if c.overlay != on {
		c.overlay = on
		c.Player.MarkDirty()
	}
}

// TakeCopyRequest returns whether a status copy was requested and clears the
// request.
func (c *Controller) TakeCopyRequest() bool {
	r := c.copyRequested
	c.copyRequested = false
	return r
}

// Status is a one-line summary of the playback state.
func (c *Controller) Status() string {
	return fmt.Sprintf("turn %d/%d  %s  speed %.1f  layers %s",
		c.Player.Turn()+1, c.Player.Turns(), c.Player.State(), c.Player.Speed(), c.Layers)
}
