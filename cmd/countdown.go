package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/alert"
	"github.com/abhisek/focusflow/internal/log"
	"github.com/abhisek/focusflow/internal/pomodoro"
	"github.com/abhisek/focusflow/internal/store"
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Run the timer without the TUI",
	Long: `Run the timer in plain text mode. Each second the remaining time is
printed on a single line. The countdown stops after --phases completed phases,
or on Ctrl+C.`,
	RunE: runCountdown,
}

func init() {
	countdownCmd.Flags().Int("session", pomodoro.DefaultSessionLength, "Session length in minutes (1-60)")
	countdownCmd.Flags().Int("break", pomodoro.DefaultBreakLength, "Break length in minutes (1-60)")
	countdownCmd.Flags().String("preset", "", "Preset name (pomodoro, short or long); overrides --session")
	countdownCmd.Flags().Int("phases", 2, "Stop after this many completed phases (0 runs until interrupted)")
	countdownCmd.Flags().Bool("record", false, "Record completed phases in the history database")
}

// countdown drives an Engine on a LoopScheduler and writes its state to out.
type countdown struct {
	engine  *pomodoro.Engine
	loop    *pomodoro.LoopScheduler
	out     io.Writer
	history store.PhaseRepo
	runID   string
	limit   int

	completed int
	stop      context.CancelFunc
}

type countdownOptions struct {
	Session int
	Break   int
	Preset  int // minutes; 0 means unset
	Phases  int
	Alert   pomodoro.Alerter
	History store.PhaseRepo
	RunID   string
	Out     io.Writer
}

func newCountdown(clock clockwork.Clock, opts countdownOptions) *countdown {
	c := &countdown{
		loop:    pomodoro.NewLoopScheduler(clock),
		out:     opts.Out,
		history: opts.History,
		runID:   opts.RunID,
		limit:   opts.Phases,
	}
	c.engine = pomodoro.NewEngine(c.loop,
		pomodoro.WithAlerter(opts.Alert),
		pomodoro.WithChangeHook(c.print),
		pomodoro.WithPhaseEndHook(c.phaseEnded),
	)

	// The engine always starts from the defaults; flags are applied as
	// adjustments so the usual clamping holds.
	c.engine.AdjustLength(pomodoro.KindSession, opts.Session-pomodoro.DefaultSessionLength)
	c.engine.AdjustLength(pomodoro.KindBreak, opts.Break-pomodoro.DefaultBreakLength)
	if opts.Preset > 0 {
		c.engine.ApplyPreset(opts.Preset)
	}
	return c
}

// Run starts the countdown and blocks until the phase limit is reached or
// ctx is cancelled.
func (c *countdown) Run(ctx context.Context) error {
	ctx, c.stop = context.WithCancel(ctx)
	defer c.stop()

	errc := make(chan error, 1)
	go func() { errc <- c.loop.Run(ctx) }()

	if err := c.loop.Do(ctx, c.engine.Toggle); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	<-errc
	fmt.Fprintln(c.out)

	if c.limit > 0 && c.completed >= c.limit {
		return nil
	}
	return ctx.Err()
}

func (c *countdown) print(s pomodoro.State) {
	fmt.Fprintf(c.out, "\r%-8s %s  %-13s", s.Phase, s.Display(), s.Status)
}

func (c *countdown) phaseEnded(end pomodoro.PhaseEnd) {
	c.completed++
	log.Info().
		Str("phase", end.Phase.String()).
		Int("minutes", end.Minutes).
		Int("completed", c.completed).
		Msg("phase ended")

	if c.history != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		err := c.history.AppendPhase(ctx, store.PhaseRecord{
			RunID:   c.runID,
			Phase:   end.Phase.String(),
			Minutes: end.Minutes,
			EndedAt: end.EndedAt,
		})
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("failed to record phase")
		}
	}

	// Let the alert sound through the transition delay before exiting.
	if c.limit > 0 && c.completed == c.limit {
		c.loop.AfterFunc(pomodoro.TransitionDelay, c.stop)
	}
}

const recordTimeout = 5 * time.Second

func runCountdown(cmd *cobra.Command, args []string) error {
	sessionLen, _ := cmd.Flags().GetInt("session")
	breakLen, _ := cmd.Flags().GetInt("break")
	presetName, _ := cmd.Flags().GetString("preset")
	phases, _ := cmd.Flags().GetInt("phases")
	record, _ := cmd.Flags().GetBool("record")

	if err := checkLength("session", sessionLen); err != nil {
		return err
	}
	if err := checkLength("break", breakLen); err != nil {
		return err
	}
	if phases < 0 {
		return fmt.Errorf("--phases must not be negative, got %d", phases)
	}

	opts := countdownOptions{
		Session: sessionLen,
		Break:   breakLen,
		Phases:  phases,
		RunID:   uuid.New().String(),
		Out:     cmd.OutOrStdout(),
	}
	if presetName != "" {
		p, ok := pomodoro.PresetByName(presetName)
		if !ok {
			return fmt.Errorf("unknown preset %q: must be pomodoro, short or long", presetName)
		}
		opts.Preset = p.Minutes
	}

	if record {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.History = st.PhaseRepo()
	}

	gate := alert.Open(alertOptions(cfg, cmd.OutOrStdout()))
	defer gate.Stop()
	opts.Alert = gate

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newCountdown(clockwork.NewRealClock(), opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Stopped.")
		return nil
	}
	return err
}

func checkLength(name string, v int) error {
	if v < pomodoro.MinLength || v > pomodoro.MaxLength {
		return fmt.Errorf("--%s must be between %d and %d minutes, got %d",
			name, pomodoro.MinLength, pomodoro.MaxLength, v)
	}
	return nil
}
