package timer

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/pomodoro"
	"github.com/abhisek/focusflow/internal/screen"
)

// firedMsg delivers a due callback back to the Update loop.
type firedMsg struct {
	screen.Broadcast
	sched *teaScheduler
	id    uint64
}

// teaScheduler turns engine callbacks into tea.Tick commands, so every
// callback runs inside Update on the program's event loop. AfterFunc only
// queues the command; the screen hands queued commands to the runtime with
// Flush at the end of each Update.
type teaScheduler struct {
	now    func() time.Time
	nextID uint64
	live   map[uint64]func()
	queued []tea.Cmd
}

var _ pomodoro.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{
		now:  time.Now,
		live: make(map[uint64]func()),
	}
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) pomodoro.Timer {
	s.nextID++
	id := s.nextID
	s.live[id] = f
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return firedMsg{sched: s, id: id}
	}))
	return teaTimer{sched: s, id: id}
}

func (s *teaScheduler) Now() time.Time {
	return s.now()
}

// Flush returns the tick commands queued since the last call.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Fire runs the callback for id unless it was stopped. A stopped timer's
// tick still arrives; it is dropped here.
func (s *teaScheduler) Fire(id uint64) bool {
	f, ok := s.live[id]
	if !ok {
		return false
	}
	delete(s.live, id)
	f()
	return true
}

// Pending returns the number of callbacks that have not fired or been stopped.
func (s *teaScheduler) Pending() int {
	return len(s.live)
}

type teaTimer struct {
	sched *teaScheduler
	id    uint64
}

func (t teaTimer) Stop() bool {
	if _, ok := t.sched.live[t.id]; !ok {
		return false
	}
	delete(t.sched.live, t.id)
	return true
}
