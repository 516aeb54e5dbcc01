package tick

import "time"

// Frame is passed to every system during one scheduler tick.
type Frame struct {
	DeltaTime time.Duration
	Index     int64
	Commands  *Commands
	Resources *Resources
}

func newFrame(dt time.Duration, index int64, resources *Resources) *Frame {
	return &Frame{
		DeltaTime: dt,
		Index:     index,
		Commands:  newCommands(),
		Resources: resources,
	}
}

// System is one step of the per-frame pipeline. Systems may declare
// Singleton fields, which are initialized on registration, and keep any
// other state they need between frames.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}
