package tick_test

import (
	"fmt"
	"time"

	"github.com/Speedy-Consoles/ants-insight/tick"
)

type Clock struct {
	Elapsed time.Duration
}

type Status struct {
	Line string
}

type ClockSystem struct {
	Clock tick.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *tick.Frame) {
	s.Clock.Get().Elapsed += frame.DeltaTime
}

type StatusSystem struct {
	Clock  tick.Singleton[Clock]
	Status tick.Singleton[Status]
}

func (s *StatusSystem) Execute(frame *tick.Frame) {
	elapsed := s.Clock.Get().Elapsed
	frame.Commands.Defer(func() {
		s.Status.Get().Line = fmt.Sprintf("frame %d at %v", frame.Index, elapsed)
	})
}

// ExampleScheduler builds a small pipeline. Systems run in registration
// order, Singleton fields are wired on Register, and deferred commands run
// after the last system of each frame.
func ExampleScheduler() {
	resources := tick.NewResources()
	tick.Insert(resources, Clock{})
	tick.Insert(resources, Status{})

	scheduler := tick.NewScheduler(resources)
	scheduler.Register(&ClockSystem{})
	scheduler.Register(&StatusSystem{})

	for range 3 {
		scheduler.Once(16 * time.Millisecond)
		fmt.Println(tick.Get[Status](resources).Line)
	}

	stats := scheduler.Stats()
	for _, s := range stats.Systems {
		fmt.Printf("%s ran %d times\n", s.Name, s.ExecutionCount)
	}

	// Output:
	// frame 0 at 16ms
	// frame 1 at 32ms
	// frame 2 at 48ms
	// ClockSystem ran 3 times
	// StatusSystem ran 3 times
}

// ExampleNewSingleton shows that every accessor for a type shares one value.
func ExampleNewSingleton() {
	resources := tick.NewResources()

	clock := tick.NewSingleton(resources, Clock{Elapsed: time.Second})
	fmt.Println(clock.Get().Elapsed)

	same := tick.NewSingleton[Clock](resources)
	same.Get().Elapsed += time.Second
	fmt.Println(clock.Get().Elapsed)

	// Output:
	// 1s
	// 2s
}
