package pomodoro

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrLoopStopped is returned by Do once Run has returned.
	ErrLoopStopped = errors.New("scheduler loop stopped")
	// ErrLoopReused is returned by every Run call after the first.
	ErrLoopReused = errors.New("scheduler loop already run")
)

// LoopScheduler funnels timer callbacks and submitted work onto the single
// goroutine running Run, so an Engine driven by it never needs locking.
type LoopScheduler struct {
	clock   clockwork.Clock
	queue   chan func()
	done    chan struct{}
	started atomic.Bool
}

// NewLoopScheduler creates a loop scheduler on clock. Use
// clockwork.NewRealClock() in production and a fake clock in tests.
func NewLoopScheduler(clock clockwork.Clock) *LoopScheduler {
	return &LoopScheduler{
		clock: clock,
		queue: make(chan func(), 16),
		done:  make(chan struct{}),
	}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return s.clock.AfterFunc(d, func() {
		select {
		case s.queue <- f:
		case <-s.done:
		}
	})
}

func (s *LoopScheduler) Now() time.Time {
	return s.clock.Now()
}

// Run executes queued callbacks until ctx is cancelled. A loop runs once;
// create a new LoopScheduler to start again.
func (s *LoopScheduler) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrLoopReused
	}
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-s.queue:
			f()
		}
	}
}

// Do runs f on the loop goroutine and waits for it to finish.
func (s *LoopScheduler) Do(ctx context.Context, f func()) error {
	finished := make(chan struct{})
	work := func() {
		defer close(finished)
		f()
	}

	select {
	case s.queue <- work:
	case <-s.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-s.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
