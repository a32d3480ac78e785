package pomodoro

import "time"

// Alerter plays the end-of-phase sound.
type Alerter interface {
	Play()
	Stop()
}

type nopAlerter struct{}

func (nopAlerter) Play() {}
func (nopAlerter) Stop() {}

// PhaseEnd describes a phase whose countdown reached zero.
type PhaseEnd struct {
	Phase   Phase
	Minutes int
	EndedAt time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithAlerter sets the player used when a phase ends.
func WithAlerter(a Alerter) Option {
	return func(e *Engine) {
		if a != nil {
			e.alert = a
		}
	}
}

// WithChangeHook registers fn to run after every state change.
func WithChangeHook(fn func(State)) Option {
	return func(e *Engine) { e.onChange = fn }
}

// WithPhaseEndHook registers fn to run when a phase reaches zero.
func WithPhaseEndHook(fn func(PhaseEnd)) Option {
	return func(e *Engine) { e.onPhaseEnd = fn }
}

// Engine drives a State with a Scheduler. It is not safe for concurrent
// use: every method and every scheduled callback must run on the
// scheduler's execution context.
type Engine struct {
	state State
	sched Scheduler
	alert Alerter

	// At most one callback is pending: the next tick or the phase switch.
	pending Timer
	// epoch invalidates callbacks that fired before stopTimers ran.
	epoch uint64

	onChange   func(State)
	onPhaseEnd func(PhaseEnd)
}

// NewEngine creates an engine in the default state.
func NewEngine(sched Scheduler, opts ...Option) *Engine {
	e := &Engine{
		state: DefaultState(),
		sched: sched,
		alert: nopAlerter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// AdjustLength changes the session or break length by delta minutes.
// It returns false, leaving the state untouched, while the timer runs.
func (e *Engine) AdjustLength(kind Kind, delta int) bool {
	next, ok := Adjust(e.state, kind, delta)
	if !ok {
		return false
	}
	e.state = next
	e.changed()
	return true
}

// ApplyPreset sets the session length and remaining time to minutes. Unlike
// AdjustLength it applies while running.
func (e *Engine) ApplyPreset(minutes int) {
	e.state = ApplyPreset(e.state, minutes)
	e.changed()
}

// Toggle starts or pauses the countdown. Pausing during the transition
// window completes the phase switch immediately and leaves the timer paused
// on the new phase.
func (e *Engine) Toggle() {
	switch e.state.Status {
	case StatusPaused:
		e.state = Start(e.state)
		if e.state.RemainingSeconds == 0 {
			e.state.Status = StatusTransitioning
			e.schedule(TransitionDelay, e.switchPhase)
		} else {
			e.schedule(TickInterval, e.tick)
		}
	case StatusRunning:
		e.stopTimers()
		e.state = Pause(e.state)
	case StatusTransitioning:
		e.stopTimers()
		e.state = Pause(SwitchPhase(e.state))
	}
	e.changed()
}

// Reset cancels any pending callback, silences the alert and restores the
// default state.
func (e *Engine) Reset() {
	e.stopTimers()
	e.alert.Stop()
	e.state = DefaultState()
	e.changed()
}

func (e *Engine) tick() {
	next, reachedZero := Tick(e.state)
	e.state = next
	if !reachedZero {
		e.schedule(TickInterval, e.tick)
		e.changed()
		return
	}

	e.alert.Play()
	if e.onPhaseEnd != nil {
		e.onPhaseEnd(PhaseEnd{
			Phase:   e.state.Phase,
			Minutes: e.state.LengthOf(e.state.Phase),
			EndedAt: e.sched.Now(),
		})
	}
	e.schedule(TransitionDelay, e.switchPhase)
	e.changed()
}

func (e *Engine) switchPhase() {
	e.state = SwitchPhase(e.state)
	e.schedule(TickInterval, e.tick)
	e.changed()
}

func (e *Engine) schedule(d time.Duration, fn func()) {
	epoch := e.epoch
	e.pending = e.sched.AfterFunc(d, func() {
		if epoch != e.epoch {
			return
		}
		e.pending = nil
		fn()
	})
}

// stopTimers is the single cancellation path for every exit from running.
func (e *Engine) stopTimers() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.epoch++
}

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange(e.state)
	}
}
