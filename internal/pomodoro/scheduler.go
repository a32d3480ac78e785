package pomodoro

import (
	"sort"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// fired or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Implementations must run every
// callback on the same execution context that calls into the Engine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// ManualScheduler is a Scheduler driven by virtual time. Callbacks only run
// inside Advance, on the caller's goroutine, in due-time order.
type ManualScheduler struct {
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (t *manualTimer) live() bool {
	return !t.stopped && !t.fired
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &manualTimer{at: s.now.Add(d), seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *ManualScheduler) Now() time.Time {
	return s.now
}

// Advance moves the clock forward by d, firing every callback that falls
// due, including ones scheduled by callbacks during the advance.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = target
	s.prune()
}

// Pending returns the number of callbacks that have neither fired nor been
// stopped.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.live() {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Time) *manualTimer {
	var due []*manualTimer
	for _, t := range s.timers {
		if t.live() && !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (s *ManualScheduler) prune() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if t.live() {
			live = append(live, t)
		}
	}
	s.timers = live
}
