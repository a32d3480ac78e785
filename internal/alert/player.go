package alert

import (
	"io"
	"sync"
	"sync/atomic"
)

// Player plays the end-of-phase alert. Play restarts the sound from the
// beginning; Stop silences it.
type Player interface {
	Play()
	Stop()
}

// Nop is a Player that makes no sound.
type Nop struct{}

func (Nop) Play() {}
func (Nop) Stop() {}

// BellPlayer rings the terminal bell.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a BellPlayer writing to w.
func NewBell(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (b *BellPlayer) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}

// Stop is a no-op; the bell cannot be interrupted.
func (b *BellPlayer) Stop() {}

// Gate wraps a Player with a mute switch. Stop always reaches the inner
// player so muting mid-alert still silences it.
type Gate struct {
	inner   Player
	enabled atomic.Bool
}

// NewGate wraps p, starting enabled or muted.
func NewGate(p Player, enabled bool) *Gate {
	g := &Gate{inner: p}
	g.enabled.Store(enabled)
	return g
}

func (g *Gate) Play() {
	if g.enabled.Load() {
		g.inner.Play()
	}
}

func (g *Gate) Stop() {
	g.inner.Stop()
}

// SetEnabled turns sound on or off.
func (g *Gate) SetEnabled(on bool) {
	g.enabled.Store(on)
	if !on {
		g.inner.Stop()
	}
}

// Enabled reports whether sound is on.
func (g *Gate) Enabled() bool {
	return g.enabled.Load()
}
