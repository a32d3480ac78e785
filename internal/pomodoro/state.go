package pomodoro

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultSessionLength = 25 // minutes
	DefaultBreakLength   = 5  // minutes

	MinLength = 1
	MaxLength = 60

	// TickInterval is the countdown resolution.
	TickInterval = time.Second

	// TransitionDelay is how long the timer sits at 00:00 while the alert
	// plays before switching phase.
	TransitionDelay = time.Second
)

// Phase is the active half of the Pomodoro cycle.
type Phase int

const (
	PhaseSession Phase = iota // Focused work
	PhaseBreak                // Rest
)

func (p Phase) String() string {
	if p == PhaseBreak {
		return "Break"
	}
	return "Session"
}

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	if p == PhaseSession {
		return PhaseBreak
	}
	return PhaseSession
}

// Kind selects which configured length an adjustment targets.
type Kind int

const (
	KindSession Kind = iota
	KindBreak
)

func (k Kind) String() string {
	if k == KindBreak {
		return "break"
	}
	return "session"
}

// Status is the run state of the timer.
type Status int

const (
	StatusPaused        Status = iota // Not counting down
	StatusRunning                     // Ticking once per second
	StatusTransitioning               // At zero, waiting for the phase switch
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusTransitioning:
		return "transitioning"
	default:
		return "paused"
	}
}

// Preset is a named shortcut that sets the session length directly.
type Preset struct {
	Name    string
	Minutes int
}

// Presets lists the built-in shortcuts in display order.
var Presets = []Preset{
	{Name: "Pomodoro", Minutes: 25},
	{Name: "Short", Minutes: 5},
	{Name: "Long", Minutes: 15},
}

// PresetByName looks up a preset, ignoring case.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// State is a snapshot of the timer. All transition functions in this file
// take a State by value and return the next one.
type State struct {
	BreakLength      int // minutes
	SessionLength    int // minutes
	RemainingSeconds int
	Phase            Phase
	Status           Status
}

// DefaultState returns the state the timer starts in and resets to.
func DefaultState() State {
	return State{
		BreakLength:      DefaultBreakLength,
		SessionLength:    DefaultSessionLength,
		RemainingSeconds: DefaultSessionLength * 60,
		Phase:            PhaseSession,
		Status:           StatusPaused,
	}
}

// IsRunning reports whether the countdown is active. The transition window
// counts as running: adjustments stay blocked until the timer is paused.
func (s State) IsRunning() bool {
	return s.Status != StatusPaused
}

// LengthOf returns the configured length of p in minutes.
func (s State) LengthOf(p Phase) int {
	if p == PhaseBreak {
		return s.BreakLength
	}
	return s.SessionLength
}

// Display renders the remaining time as MM:SS.
func (s State) Display() string {
	return FormatTime(s.RemainingSeconds)
}

// Progress returns the elapsed fraction of the current phase in [0, 1].
func (s State) Progress() float64 {
	total := s.LengthOf(s.Phase) * 60
	if total <= 0 {
		return 0
	}
	p := 1 - float64(s.RemainingSeconds)/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Adjust changes the session or break length by delta minutes. It is
// rejected while running. Adjusting the session length during the session
// phase resets the remaining time to the new length.
func Adjust(s State, kind Kind, delta int) (State, bool) {
	if s.IsRunning() {
		return s, false
	}
	switch kind {
	case KindBreak:
		s.BreakLength = clampLength(s.BreakLength + delta)
	case KindSession:
		s.SessionLength = clampLength(s.SessionLength + delta)
		if s.Phase == PhaseSession {
			s.RemainingSeconds = s.SessionLength * 60
		}
	}
	return s, true
}

// ApplyPreset sets the session length and the remaining time to minutes,
// whatever the status or phase.
func ApplyPreset(s State, minutes int) State {
	m := clampLength(minutes)
	s.SessionLength = m
	s.RemainingSeconds = m * 60
	return s
}

// Start moves a paused timer into the running state.
func Start(s State) State {
	if s.Status == StatusPaused {
		s.Status = StatusRunning
	}
	return s
}

// Pause stops the countdown without touching the remaining time.
func Pause(s State) State {
	s.Status = StatusPaused
	return s
}

// Tick advances the countdown by one second. It reports true when the
// remaining time has reached zero, at which point the state is
// Transitioning.
func Tick(s State) (State, bool) {
	if s.Status != StatusRunning {
		return s, false
	}
	if s.RemainingSeconds > 0 {
		s.RemainingSeconds--
	}
	if s.RemainingSeconds == 0 {
		s.Status = StatusTransitioning
		return s, true
	}
	return s, false
}

// SwitchPhase flips Session and Break and loads the new phase's length.
func SwitchPhase(s State) State {
	s.Phase = s.Phase.Next()
	s.RemainingSeconds = s.LengthOf(s.Phase) * 60
	s.Status = StatusRunning
	return s
}

// FormatTime renders seconds as zero-padded MM:SS.
func FormatTime(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func clampLength(v int) int {
	return min(MaxLength, max(MinLength, v))
}
