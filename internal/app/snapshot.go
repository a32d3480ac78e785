package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/pomodoro"
	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screens/timer"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

// SnapshotOptions describes a single frame rendered without a program.
type SnapshotOptions struct {
	Variant theme.Variant
	// Elapsed is how long the timer has been running. Zero renders the
	// paused default.
	Elapsed time.Duration
	Width   int
	Height  int
}

// Snapshot renders one full frame of the timer screen. Time is simulated,
// so any point in the cycle renders instantly.
func Snapshot(opts SnapshotOptions) string {
	sched := pomodoro.NewManualScheduler(time.Now())
	t := timer.New(timer.Options{Variant: opts.Variant, Scheduler: sched})
	if opts.Elapsed > 0 {
		t.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
		sched.Advance(opts.Elapsed)
	}

	m := AppModel{
		router: router.New(t),
		width:  opts.Width,
		height: opts.Height,
	}
	return m.render()
}
