package httputil

import (
	"context"
	"sync/atomic"
)

// Semaphore bounds concurrent outbound work. Report deliveries are
// fired off the request path, so without a bound a burst of ending
// sessions could open an unbounded number of connections.
type Semaphore struct {
	slots   chan struct{}
	dropped atomic.Int64
}

// NewSemaphore creates a semaphore with the given number of slots.
// A non-positive limit is treated as 1.
func NewSemaphore(limit int) *Semaphore {
	if limit <= 0 {
		limit = 1
	}
	return &Semaphore{slots: make(chan struct{}, limit)}
}

// TryAcquire takes a slot if one is free. Returns false immediately if
// the semaphore is full, counting the caller as dropped.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Acquire blocks until a slot is free or the context is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by a successful acquire.
func (s *Semaphore) Release() {
	select {
	case <-s.slots:
	default:
		// Release without a matching acquire is a programming error;
		// swallowing it beats blocking the caller.
	}
}

// DroppedCount reports how many TryAcquire calls were refused.
func (s *Semaphore) DroppedCount() int64 {
	return s.dropped.Load()
}

// Available reports how many slots are currently free.
func (s *Semaphore) Available() int {
	return cap(s.slots) - len(s.slots)
}

// InUse reports how many slots are currently held.
func (s *Semaphore) InUse() int {
	return len(s.slots)
}
