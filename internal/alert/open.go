package alert

import (
	"io"

	"github.com/abhisek/focusflow/internal/log"
)

// Options selects and configures the alert player.
type Options struct {
	Enabled bool
	File    string
	Volume  float64
	// Fallback receives the terminal bell when no audio device is usable.
	// Nil means silence.
	Fallback io.Writer
}

// Open returns a gated player. It prefers audio output and degrades to the
// terminal bell, then to silence, logging why.
func Open(opts Options) *Gate {
	var p Player = Nop{}
	bp, err := NewBeep(opts.File, opts.Volume)
	switch {
	case err == nil:
		p = bp
	case opts.Fallback != nil:
		log.Warn().Err(err).Msg("audio unavailable, using terminal bell")
		p = NewBell(opts.Fallback)
	default:
		log.Warn().Err(err).Msg("audio unavailable, alerts are silent")
	}
	return NewGate(p, opts.Enabled)
}
