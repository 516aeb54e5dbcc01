package viewer

import (
	"github.com/Speedy-Consoles/ants-insight/playback"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = map[ebiten.Key]playback.Key{
	ebiten.KeyQ:          playback.KeyQ,
	ebiten.KeyArrowRight: playback.KeyRight,
	ebiten.KeyArrowLeft:  playback.KeyLeft,
	ebiten.KeyArrowUp:    playback.KeyUp,
	ebiten.KeyArrowDown:  playback.KeyDown,
	ebiten.KeySpace:      playback.KeySpace,
	ebiten.KeyHome:       playback.KeyHome,
	ebiten.KeyEnd:        playback.KeyEnd,
	ebiten.KeyF1:         playback.KeyF1,
	ebiten.KeyC:          playback.KeyC,
	ebiten.KeyDigit0:     playback.Key0,
	ebiten.KeyDigit1:     playback.Key1,
	ebiten.KeyDigit2:     playback.Key2,
	ebiten.KeyDigit3:     playback.Key3,
	ebiten.KeyDigit4:     playback.Key4,
	ebiten.KeyDigit5:     playback.Key5,
	ebiten.KeyDigit6:     playback.Key6,
	ebiten.KeyDigit7:     playback.Key7,
	ebiten.KeyDigit8:     playback.Key8,
	ebiten.KeyDigit9:     playback.Key9,
	ebiten.KeyNumpad0:    playback.Key0,
	ebiten.KeyNumpad1:    playback.Key1,
	ebiten.KeyNumpad2:    playback.Key2,
	ebiten.KeyNumpad3:    playback.Key3,
	ebiten.KeyNumpad4:    playback.Key4,
	ebiten.KeyNumpad5:    playback.Key5,
	ebiten.KeyNumpad6:    playback.Key6,
	ebiten.KeyNumpad7:    playback.Key7,
	ebiten.KeyNumpad8:    playback.Key8,
	ebiten.KeyNumpad9:    playback.Key9,
}

// TranslateKey maps an ebiten key to the key the controller understands.
func TranslateKey(k ebiten.Key) playback.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return playback.KeyUnknown
}

// Input is the resource collecting events between frames.
type Input struct {
	Pending []playback.Event
}

// Push queues ev for the next frame.
func (in *Input) Push(ev playback.Event) {
	in.Pending = append(in.Pending, ev)
}

// eventSource turns ebiten's polled state into discrete events.
type eventSource struct {
	keys          []ebiten.Key
	focused       bool
	closeReported bool
	width, height int
}

func (s *eventSource) poll(in *Input) {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		if key := TranslateKey(k); key != playback.KeyUnknown {
			in.Push(playback.KeyEvent(key))
		}
	}

	focused := ebiten.IsFocused()
	if focused && !s.focused {
		in.Push(playback.FocusEvent())
	}
	s.focused = focused

	if ebiten.IsWindowBeingClosed() && !s.closeReported {
		s.closeReported = true
		in.Push(playback.CloseEvent())
	}
}

// layout reports a resize when the outside size changed.
func (s *eventSource) layout(in *Input, width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	in.Push(playback.ResizeEvent(width, height))
}
