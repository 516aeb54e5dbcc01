package playback

// Key is a keyboard key the viewer reacts to. Keys are independent of the
// windowing library so the controller can be driven from tests and headless
// tools.
type Key int

const (
	KeyUnknown Key = iota
	KeyQ
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeySpace
	KeyHome
	KeyEnd
	KeyF1
	KeyC
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

var keyNames = map[Key]string{
	KeyQ:     "Q",
	KeyRight: "Right",
	KeyLeft:  "Left",
	KeyUp:    "Up",
	KeyDown:  "Down",
	KeySpace: "Space",
	KeyHome:  "Home",
	KeyEnd:   "End",
	KeyF1:    "F1",
	KeyC:     "C",
}

func (k Key) String() string {
	if k >= Key0 && k <= Key9 {
		return string(rune('0' + int(k-Key0)))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Layer returns the layer a digit key toggles: 1-9 map to layers 0-8 and 0
// maps to layer 9.
func (k Key) Layer() (int, bool) {
	switch {
	case k == Key0:
		return 9, true
	case k >= Key1 && k <= Key9:
		return int(k - Key1), true
	}
	return 0, false
}

// EventKind tells which fields of an Event are set.
type EventKind int

const (
	EventKey EventKind = iota
	EventResize
	EventFocus
	EventClose
)

// Event is one discrete input from the window system.
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int
	Height int
}

// Event constructors used by event sources and tests.

func KeyEvent(k Key) Event               { return Event{Kind: EventKey, Key: k} }
func ResizeEvent(width, height int) Event { return Event{Kind: EventResize, Width: width, Height: height} }
func FocusEvent() Event                  { return Event{Kind: EventFocus} }
func CloseEvent() Event                  { return Event{Kind: EventClose} }
