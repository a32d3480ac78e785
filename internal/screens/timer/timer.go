package timer

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/alert"
	"github.com/abhisek/focusflow/internal/log"
	"github.com/abhisek/focusflow/internal/pomodoro"
	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/store"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

const recordTimeout = 5 * time.Second

// Options configures a TimerScreen. Every field is optional.
type Options struct {
	Variant theme.Variant
	Alert   *alert.Gate
	History store.PhaseRepo
	RunID   string

	// Scheduler overrides the Bubble Tea scheduler. Tests pass a
	// pomodoro.ManualScheduler and advance it directly.
	Scheduler pomodoro.Scheduler

	// OpenHistory builds the screen pushed by the history key.
	OpenHistory func() screen.Screen
}

// TimerScreen implements screen.Screen for the Pomodoro timer.
type TimerScreen struct {
	engine      *pomodoro.Engine
	sched       pomodoro.Scheduler
	keys        keyMap
	alert       *alert.Gate
	history     store.PhaseRepo
	runID       string
	variant     theme.Variant
	openHistory func() screen.Screen

	// cmds collects work produced by engine hooks until the next flush.
	cmds    []tea.Cmd
	saveErr error
}

var _ screen.Screen = (*TimerScreen)(nil)
var _ screen.KeyHintProvider = (*TimerScreen)(nil)
var _ screen.StatusProvider = (*TimerScreen)(nil)

// New creates a TimerScreen in the default state.
func New(opts Options) *TimerScreen {
	t := &TimerScreen{
		sched:       opts.Scheduler,
		keys:        defaultKeyMap(),
		alert:       opts.Alert,
		history:     opts.History,
		runID:       opts.RunID,
		variant:     opts.Variant,
		openHistory: opts.OpenHistory,
	}
	if t.sched == nil {
		t.sched = newTeaScheduler()
	}
	if t.variant == "" {
		t.variant = theme.VariantFocusFlow
	}

	engineOpts := []pomodoro.Option{pomodoro.WithPhaseEndHook(t.record)}
	if t.alert != nil {
		engineOpts = append(engineOpts, pomodoro.WithAlerter(t.alert))
	}
	t.engine = pomodoro.NewEngine(t.sched, engineOpts...)
	return t
}

// State returns the engine's current state.
func (t *TimerScreen) State() pomodoro.State {
	return t.engine.State()
}

// Variant returns the active render variant.
func (t *TimerScreen) Variant() theme.Variant {
	return t.variant
}

func (t *TimerScreen) Init() tea.Cmd {
	return nil
}

func (t *TimerScreen) Title() string {
	return "Timer"
}

func (t *TimerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		hint(t.keys.Toggle),
		hint(t.keys.Reset),
	}
	if !t.engine.State().IsRunning() {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Session"},
			layout.KeyHint{Key: "←→", Description: "Break"},
		)
	}
	hints = append(hints,
		layout.KeyHint{Key: "1-3", Description: "Preset"},
		hint(t.keys.Mute),
	)
	if t.openHistory != nil {
		hints = append(hints, hint(t.keys.History))
	}
	return hints
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (t *TimerScreen) Status() layout.Status {
	s := t.engine.State()
	fg := theme.Primary
	if s.Phase == pomodoro.PhaseBreak {
		fg = theme.Success
	}
	return layout.Status{
		Label: s.Phase.String() + " · " + s.Status.String(),
		Color: fg,
		Muted: t.alert != nil && !t.alert.Enabled(),
	}
}

func (t *TimerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case firedMsg:
		if ts, ok := t.sched.(*teaScheduler); ok && msg.sched == ts {
			ts.Fire(msg.id)
		}

	case phaseRecordedMsg:
		t.saveErr = msg.Err

	case screen.PreferencesMsg:
		t.applyPreferences(msg)

	case tea.KeyPressMsg:
		cmd := t.handleKey(msg)
		return t, tea.Batch(cmd, t.flush())
	}

	return t, t.flush()
}

func (t *TimerScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, t.keys.Toggle):
		t.engine.Toggle()
		log.Debug().Str("status", t.engine.State().Status.String()).Msg("timer toggled")

	case key.Matches(msg, t.keys.Reset):
		t.engine.Reset()
		log.Debug().Msg("timer reset")

	case key.Matches(msg, t.keys.SessionUp):
		t.engine.AdjustLength(pomodoro.KindSession, 1)
	case key.Matches(msg, t.keys.SessionDown):
		t.engine.AdjustLength(pomodoro.KindSession, -1)
	case key.Matches(msg, t.keys.BreakUp):
		t.engine.AdjustLength(pomodoro.KindBreak, 1)
	case key.Matches(msg, t.keys.BreakDown):
		t.engine.AdjustLength(pomodoro.KindBreak, -1)

	case key.Matches(msg, t.keys.Mute):
		if t.alert != nil {
			t.alert.SetEnabled(!t.alert.Enabled())
		}

	case key.Matches(msg, t.keys.Variant):
		t.variant = nextVariant(t.variant)

	case key.Matches(msg, t.keys.History):
		if t.openHistory != nil {
			next := t.openHistory()
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: next}
			}
		}

	default:
		for i, b := range t.keys.Presets {
			if key.Matches(msg, b) && i < len(pomodoro.Presets) {
				t.engine.ApplyPreset(pomodoro.Presets[i].Minutes)
				log.Debug().Str("preset", pomodoro.Presets[i].Name).Msg("preset applied")
				break
			}
		}
	}
	return nil
}

func (t *TimerScreen) applyPreferences(msg screen.PreferencesMsg) {
	if v, ok := theme.ParseVariant(msg.Variant); ok {
		t.variant = v
	}
	if t.alert != nil && msg.Sound != nil {
		t.alert.SetEnabled(*msg.Sound)
	}
}

func nextVariant(v theme.Variant) theme.Variant {
	for i, cur := range theme.Variants {
		if cur == v {
			return theme.Variants[(i+1)%len(theme.Variants)]
		}
	}
	return theme.Variants[0]
}

// record is the engine's phase-end hook. The store write runs as a command
// so a slow disk never blocks the countdown.
func (t *TimerScreen) record(end pomodoro.PhaseEnd) {
	log.Info().
		Str("phase", end.Phase.String()).
		Int("minutes", end.Minutes).
		Msg("phase ended")

	if t.history == nil {
		return
	}
	repo := t.history
	rec := store.PhaseRecord{
		RunID:   t.runID,
		Phase:   end.Phase.String(),
		Minutes: end.Minutes,
		EndedAt: end.EndedAt,
	}
	t.cmds = append(t.cmds, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		err := repo.AppendPhase(ctx, rec)
		if err != nil {
			log.Warn().Err(err).Str("phase", rec.Phase).Msg("failed to record phase")
		}
		return phaseRecordedMsg{Err: err}
	})
}

// flush hands queued hook work and scheduler ticks to the runtime.
func (t *TimerScreen) flush() tea.Cmd {
	cmds := t.cmds
	t.cmds = nil
	if ts, ok := t.sched.(*teaScheduler); ok {
		cmds = append(cmds, ts.Flush())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
