// Package testutil provides deterministic helpers shared by tests and
// the conformance harness.
package testutil

import "sync"

// SeqClock is a thread-safe monotonic logical clock.
//
// The harness and tests use it to assign evaluation sequence numbers
// without touching wall time, so the same scenario always produces the
// same trace.
type SeqClock struct {
	mu  sync.Mutex
	seq int64
}

// NewSeqClock creates a clock starting at 0. The first Next() returns 1.
func NewSeqClock() *SeqClock {
	return &SeqClock{}
}

// Next increments and returns the next sequence number.
func (c *SeqClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *SeqClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset sets the clock back to 0 so a scenario can be re-run with
// identical sequence numbers.
func (c *SeqClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
