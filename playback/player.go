// Package playback holds the mutable viewing state of a loaded replay: which
// turn is shown, whether it advances on its own, how fast, and which layers
// are visible.
package playback

import (
	"fmt"
	"math"
	"time"

	"github.com/Speedy-Consoles/ants-insight/replay"
)

// State is the autoplay state of a Player.
type State int

const (
	Paused State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

const (
	MinSpeed     = 0.2
	MaxSpeed     = 50.0
	SpeedStep    = 0.2
	DefaultSpeed = 1.0
)

// Player is the playback state machine. At speed s, autoplay shows 2*s turns
// per second and holds on the last turn.
type Player struct {
	turns   int
	turn    int
	state   State
	speed   float64
	elapsed time.Duration
	dirty   bool
}

// NewPlayer creates a Player over turns turns, starting at turn 0. The first
// frame always needs drawing.
func NewPlayer(turns int, autoplay bool, speed float64) *Player {
	if turns < 1 {
		panic(fmt.Errorf("%w: replay has no turns", replay.ErrIndexOutOfRange))
	}
	p := &Player{
		turns: turns,
		speed: clampSpeed(speed),
		dirty: true,
	}
	if autoplay {
		p.state = Playing
	}
	return p
}

// Turn returns the index of the shown turn.
func (p *Player) Turn() int { return p.turn }

// Turns returns the number of turns in the replay.
func (p *Player) Turns() int { return p.turns }

// State reports whether autoplay is running.
func (p *Player) State() State { return p.state }

// Speed returns the speed factor. Autoplay shows 2*Speed turns per second.
func (p *Player) Speed() float64 { return p.speed }

// Interval is the time one turn stays on screen during autoplay.
func (p *Player) Interval() time.Duration {
	return time.Duration(float64(time.Second) / (2 * p.speed))
}

// Advance feeds elapsed wall-clock time into autoplay and reports whether the
// turn changed. At most one turn is advanced per call.
func (p *Player) Advance(dt time.Duration) bool {
	if p.state != Playing {
		return false
	}
	p.elapsed += dt
	if p.elapsed < p.Interval() || p.turn >= p.turns-1 {
		return false
	}
	p.turn++
	p.elapsed = 0
	p.dirty = true
	return true
}

// StepForward pauses and shows the next turn if there is one.
func (p *Player) StepForward() {
	p.pause()
	p.SetTurn(p.turn + 1)
}

// StepBack pauses and shows the previous turn if there is one.
func (p *Player) StepBack() {
	p.pause()
	p.SetTurn(p.turn - 1)
}

// First pauses and jumps to turn 0.
func (p *Player) First() {
	p.pause()
	p.SetTurn(0)
}

// Last pauses and jumps to the final turn.
func (p *Player) Last() {
	p.pause()
	p.SetTurn(p.turns - 1)
}

// pause stops autoplay. Leaving Playing changes the status line, so it
// needs a redraw even when the turn stays put.
func (p *Player) pause() {
	if p.state == Playing {
		p.state = Paused
		p.dirty = true
	}
}

// SetTurn shows turn i, clamped to the valid range. Autoplay state is left
// alone.
func (p *Player) SetTurn(i int) {
	i = max(0, min(i, p.turns-1))
	if i != p.turn {
		p.turn = i
		p.dirty = true
	}
	p.elapsed = 0
}

// TogglePlay flips between Playing and Paused without changing the turn.
func (p *Player) TogglePlay() {
	if p.state == Playing {
		p.state = Paused
	} else {
		p.state = Playing
	}
	p.elapsed = 0
	p.dirty = true
}

// AdjustSpeed adds delta to the speed, clamped to [MinSpeed, MaxSpeed].
func (p *Player) AdjustSpeed(delta float64) {
	p.SetSpeed(p.speed + delta)
}

// SetSpeed sets the speed, clamped to [MinSpeed, MaxSpeed].
func (p *Player) SetSpeed(speed float64) {
	speed = clampSpeed(speed)
	if speed != p.speed {
		p.speed = speed
		p.dirty = true
	}
}

func clampSpeed(speed float64) float64 {
	if math.IsNaN(speed) {
		return DefaultSpeed
	}
	speed = math.Round(speed*10) / 10
	return max(MinSpeed, min(speed, MaxSpeed))
}

// NeedsRedraw reports whether the shown turn or the status changed since the
// last TakeRedraw.
func (p *Player) NeedsRedraw() bool { return p.dirty }

// MarkDirty forces a redraw without changing the turn.
func (p *Player) MarkDirty() { p.dirty = true }

// TakeRedraw returns the redraw flag and clears it.
func (p *Player) TakeRedraw() bool {
	dirty := p.dirty
	p.dirty = false
	return dirty
}
