package tick

// Commands buffers work that must run after every system of a frame has
// executed, such as rendering callbacks or resource swaps.
type Commands struct {
	defers []func()
	stop   bool
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Stop asks the scheduler to end Run once the current frame completes.
func (c *Commands) Stop() {
	c.stop = true
}

// Len returns the number of queued functions.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs the queued functions in order and resets the buffer. Functions
// deferred while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	c.defers = c.defers[:0]
}
