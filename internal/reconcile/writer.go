package reconcile

import (
	"sync"
	"time"
)

// DefaultCoalesceDelay batches rapid mutations into one physical write.
const DefaultCoalesceDelay = 50 * time.Millisecond

// coalescer serializes background writes of the latest snapshot. Multiple
// schedules between writes collapse into a single write of the newest
// data; the last write always reflects the latest state.
type coalescer struct {
	write func(data []byte)
	delay time.Duration

	mu     sync.Mutex
	latest []byte
	dirty  bool

	notify chan struct{}
	stop   chan struct{}
	done   chan struct{}
}

func newCoalescer(write func(data []byte), delay time.Duration) *coalescer {
	c := &coalescer{
		write:  write,
		delay:  delay,
		notify: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go c.loop()
	return c
}

// Schedule records data as the newest pending snapshot and wakes the
// writer. Never blocks the caller.
func (c *coalescer) Schedule(data []byte) {
	c.mu.Lock()
	c.latest = data
	c.dirty = true
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Flush writes the pending snapshot synchronously, if there is one.
func (c *coalescer) Flush() {
	c.mu.Lock()
	data := c.latest
	wasDirty := c.dirty
	c.dirty = false
	c.mu.Unlock()

	if wasDirty && data != nil {
		c.write(data)
	}
}

// Close flushes pending data and stops the background writer.
func (c *coalescer) Close() {
	close(c.stop)
	<-c.done
}

func (c *coalescer) loop() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			c.Flush()
			return
		case <-c.notify:
			if c.delay > 0 {
				select {
				case <-time.After(c.delay):
				case <-c.stop:
					c.Flush()
					return
				}
			}
			c.Flush()
		}
	}
}
