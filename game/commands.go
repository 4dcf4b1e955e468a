package game

// Commands buffers operations that are applied at the end of a frame, after the
// EndFrame pass. Use it to destroy entities from inside hooks without disturbing
// the pass in progress.
type Commands struct {
	destroys []*Entity
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run at the end of the frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Destroy queues an entity for destruction at the end of the frame.
func (c *Commands) Destroy(e *Entity) {
	c.destroys = append(c.destroys, e)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.destroys) + len(c.defers)
}

// Flush applies destroys first, then deferred functions in queue order, and
// resets the buffer. Operations queued during a flush run in the next flush.
func (c *Commands) Flush() {
	destroys, defers := c.destroys, c.defers
	c.destroys, c.defers = nil, nil

	destroyed := make(map[*Entity]bool, len(destroys))
	for _, e := range destroys {
		if destroyed[e] {
			continue
		}
		Destroy(e)
		destroyed[e] = true
	}

	for _, fn := range defers {
		fn()
	}
}
