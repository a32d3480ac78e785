package pomodoro

import (
	"testing"
	"time"
)

// fakeAlerter counts Play and Stop calls.
type fakeAlerter struct {
	plays int
	stops int
}

func (f *fakeAlerter) Play() { f.plays++ }
func (f *fakeAlerter) Stop() { f.stops++ }

var epoch = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) (*Engine, *ManualScheduler, *fakeAlerter) {
	sched := NewManualScheduler(epoch)
	alert := &fakeAlerter{}
	opts = append([]Option{WithAlerter(alert)}, opts...)
	return NewEngine(sched, opts...), sched, alert
}

func TestEngine_ToggleStartsAndStopsTicking(t *testing.T) {
	e, sched, _ := newTestEngine()

	e.Toggle()
	if !e.State().IsRunning() {
		t.Fatal("expected running after toggle")
	}

	sched.Advance(3 * time.Second)
	if got := e.State().RemainingSeconds; got != 1497 {
		t.Errorf("RemainingSeconds = %d, want 1497", got)
	}

	e.Toggle()
	if e.State().IsRunning() {
		t.Fatal("expected paused after second toggle")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d after pause, want 0", sched.Pending())
	}

	sched.Advance(time.Minute)
	if got := e.State().RemainingSeconds; got != 1497 {
		t.Errorf("RemainingSeconds moved while paused: %d", got)
	}
}

func TestEngine_FullSessionSwitchesToBreak(t *testing.T) {
	e, sched, alert := newTestEngine()

	e.Toggle()
	sched.Advance(25 * 60 * time.Second)

	s := e.State()
	if s.RemainingSeconds != 0 || s.Status != StatusTransitioning {
		t.Fatalf("at zero: %+v", s)
	}
	if s.Phase != PhaseSession {
		t.Errorf("phase switched before the transition delay")
	}
	if alert.plays != 1 {
		t.Errorf("alert plays = %d, want 1", alert.plays)
	}

	sched.Advance(TransitionDelay)
	s = e.State()
	if s.Phase != PhaseBreak {
		t.Errorf("Phase = %s, want Break", s.Phase)
	}
	if s.RemainingSeconds != 5*60 {
		t.Errorf("RemainingSeconds = %d, want 300", s.RemainingSeconds)
	}
	if !s.IsRunning() {
		t.Error("expected running after the transition")
	}

	sched.Advance(time.Second)
	if got := e.State().RemainingSeconds; got != 299 {
		t.Errorf("RemainingSeconds = %d, want 299", got)
	}
}

func TestEngine_BreakSwitchesBackToSession(t *testing.T) {
	e, sched, alert := newTestEngine()
	e.AdjustLength(KindSession, -24) // 1 minute
	e.AdjustLength(KindBreak, -4)    // 1 minute

	e.Toggle()
	sched.Advance(60*time.Second + TransitionDelay)
	if e.State().Phase != PhaseBreak {
		t.Fatalf("Phase = %s, want Break", e.State().Phase)
	}

	sched.Advance(60*time.Second + TransitionDelay)
	s := e.State()
	if s.Phase != PhaseSession || s.RemainingSeconds != 60 {
		t.Errorf("after break: %+v", s)
	}
	if alert.plays != 2 {
		t.Errorf("alert plays = %d, want 2", alert.plays)
	}
}

func TestEngine_PhaseEndHook(t *testing.T) {
	var ends []PhaseEnd
	e, sched, _ := newTestEngine(WithPhaseEndHook(func(p PhaseEnd) {
		ends = append(ends, p)
	}))
	e.AdjustLength(KindSession, -23) // 2 minutes

	e.Toggle()
	sched.Advance(2 * time.Minute)

	if len(ends) != 1 {
		t.Fatalf("got %d phase ends, want 1", len(ends))
	}
	if ends[0].Phase != PhaseSession || ends[0].Minutes != 2 {
		t.Errorf("phase end = %+v", ends[0])
	}
	if !ends[0].EndedAt.Equal(epoch.Add(2 * time.Minute)) {
		t.Errorf("EndedAt = %v, want %v", ends[0].EndedAt, epoch.Add(2*time.Minute))
	}
}

func TestEngine_AdjustRejectedWhileRunning(t *testing.T) {
	e, sched, _ := newTestEngine()
	e.Toggle()
	sched.Advance(2 * time.Second)

	before := e.State()
	for _, kind := range []Kind{KindSession, KindBreak} {
		for _, delta := range []int{-1, 1} {
			if e.AdjustLength(kind, delta) {
				t.Errorf("AdjustLength(%s, %d) accepted while running", kind, delta)
			}
		}
	}
	if e.State() != before {
		t.Errorf("state changed: %+v -> %+v", before, e.State())
	}
}

func TestEngine_AdjustRejectedWhileTransitioning(t *testing.T) {
	e, sched, _ := newTestEngine()
	e.AdjustLength(KindSession, -24)
	e.Toggle()
	sched.Advance(time.Minute)

	if e.State().Status != StatusTransitioning {
		t.Fatalf("Status = %s, want transitioning", e.State().Status)
	}
	if e.AdjustLength(KindBreak, 1) {
		t.Error("adjustment accepted during transition")
	}
}

func TestEngine_PresetWhileRunningAppliesImmediately(t *testing.T) {
	e, sched, _ := newTestEngine()
	e.Toggle()
	sched.Advance(10 * time.Second)

	e.ApplyPreset(15)
	s := e.State()
	if s.RemainingSeconds != 900 || s.SessionLength != 15 {
		t.Errorf("after preset: %+v", s)
	}
	if !s.IsRunning() {
		t.Error("preset should not stop the countdown")
	}

	sched.Advance(time.Second)
	if got := e.State().RemainingSeconds; got != 899 {
		t.Errorf("RemainingSeconds = %d, want 899", got)
	}
}

func TestEngine_PauseDuringTransitionSwitchesAndStays(t *testing.T) {
	e, sched, _ := newTestEngine()
	e.AdjustLength(KindSession, -24)
	e.Toggle()
	sched.Advance(time.Minute)

	e.Toggle()
	s := e.State()
	if s.Phase != PhaseBreak || s.RemainingSeconds != 300 || s.IsRunning() {
		t.Fatalf("after pause in transition: %+v", s)
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}

	// The cancelled switch must not restart the countdown.
	sched.Advance(10 * time.Second)
	if got := e.State(); got != s {
		t.Errorf("stale callback changed state: %+v", got)
	}
}

func TestEngine_ResetRestoresDefaultsAndCancelsTimers(t *testing.T) {
	e, sched, alert := newTestEngine()
	e.AdjustLength(KindBreak, 7)
	e.AdjustLength(KindSession, -20)
	e.Toggle()
	sched.Advance(5*time.Minute + 500*time.Millisecond)
	e.ApplyPreset(5)

	e.Reset()

	if got := e.State(); got != DefaultState() {
		t.Errorf("after reset: %+v, want %+v", got, DefaultState())
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d after reset, want 0", sched.Pending())
	}
	if alert.stops != 1 {
		t.Errorf("alert stops = %d, want 1", alert.stops)
	}

	changes := 0
	e.onChange = func(State) { changes++ }
	sched.Advance(time.Hour)
	if changes != 0 {
		t.Errorf("%d state changes after reset, want 0", changes)
	}
	if got := e.State(); got != DefaultState() {
		t.Errorf("state drifted after reset: %+v", got)
	}
}

func TestEngine_ResetDuringTransitionCancelsSwitch(t *testing.T) {
	e, sched, _ := newTestEngine()
	e.AdjustLength(KindSession, -24)
	e.Toggle()
	sched.Advance(time.Minute)

	e.Reset()
	sched.Advance(5 * time.Second)

	if got := e.State(); got != DefaultState() {
		t.Errorf("after reset in transition: %+v", got)
	}
}

func TestEngine_StaleCallbackIgnored(t *testing.T) {
	e, sched, _ := newTestEngine()
	e.Toggle()

	// Capture the pending tick, then stop and restart the timer. The old
	// callback is invoked by hand to simulate a timer that fired just
	// before Stop.
	stale := sched.timers[len(sched.timers)-1]
	e.Toggle()
	e.Toggle()

	before := e.State()
	stale.fn()
	if got := e.State(); got != before {
		t.Errorf("stale tick changed state: %+v -> %+v", before, got)
	}
}

func TestEngine_ChangeHook(t *testing.T) {
	var seen []State
	e, sched, _ := newTestEngine(WithChangeHook(func(s State) {
		seen = append(seen, s)
	}))

	e.AdjustLength(KindBreak, 1)
	e.Toggle()
	sched.Advance(2 * time.Second)

	if len(seen) != 4 {
		t.Fatalf("got %d changes, want 4", len(seen))
	}
	if seen[len(seen)-1].RemainingSeconds != 1498 {
		t.Errorf("last change remaining = %d, want 1498", seen[len(seen)-1].RemainingSeconds)
	}
}
