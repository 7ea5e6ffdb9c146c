package testutil

import (
	"sync"
	"time"
)

// Clock is a fast-forwardable time source for fixtures. The zero offset
// tracks the wall clock; Advance shifts every subsequent Now by the
// accumulated offset.
type Clock struct {
	mu     sync.RWMutex
	offset time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Now().UTC().Add(c.offset)
}

// Advance fast-forwards the clock by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += d
}

// Reset drops any accumulated offset
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = 0
}
