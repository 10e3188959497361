package state

import "sync/atomic"

// Clock is the store's monotonic revision counter.
//
// Each changing transition (dispatch, undo, redo) stamps the new snapshot
// with Clock.Next(). No-op transitions do not advance it, so two equal
// revisions always mean the same snapshot.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// The Store's single-writer design means only one goroutine calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next revision and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current revision without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
