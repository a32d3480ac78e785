package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const tomatoArt = `     \|/
   .-'''-.
  /       \
 |  25:00  |
  \       /
   '-...-'`

// ripple frames pulse around the tomato
var rippleFrames = []string{"·", "•", "●", "•"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the timer.
// Any key skips it; otherwise it waits on the final frame.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next: next,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	tomatoStyle := lipgloss.NewStyle().Foreground(theme.Error)
	rendered := tomatoStyle.Render(tomatoArt)

	// Phase 2+: ripples around the tomato
	if w.elapsed >= phase1End {
		frame := rippleFrames[w.tickCount%len(rippleFrames)]

		primary := lipgloss.NewStyle().Foreground(theme.Primary).Render(frame)
		green := lipgloss.NewStyle().Foreground(theme.Success).Render(frame)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[1] = primary + "  " + lines[1] + "  " + green
		}
		if len(lines) > 3 {
			lines[3] = green + "  " + lines[3] + "  " + primary
		}
		if len(lines) > 5 {
			lines[5] = primary + "  " + lines[5] + "  " + green
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Focus for a while. Then breathe.")
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to start")
		sections = append(sections, hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
