package timer

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/pomodoro"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

func (t *TimerScreen) View(width, height int) string {
	s := t.engine.State()
	onBreak := s.Phase == pomodoro.PhaseBreak

	var sections []string
	sections = append(sections, t.renderTitle(), "")
	if !layout.IsCompactHeight(height) || t.variant == theme.VariantClassic {
		sections = append(sections, renderLengths(s), "")
	}
	sections = append(sections, t.renderClock(s, onBreak), "")
	sections = append(sections, t.renderProgress(s, onBreak, min(width-8, 48)), "")
	sections = append(sections, renderButtons(s))

	if !layout.IsCompactHeight(height) {
		sections = append(sections, "", renderPresets())
	}
	if t.saveErr != nil {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("history not saved: "+t.saveErr.Error()))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (t *TimerScreen) renderTitle() string {
	switch t.variant {
	case theme.VariantGradient:
		return components.GradientText("F O C U S F L O W", theme.SessionFrom, theme.SessionTo)
	case theme.VariantFocusFlow:
		return theme.Title.Render("F O C U S F L O W")
	default:
		return theme.Title.Render("25 + 5 Clock")
	}
}

func renderLengths(s pomodoro.State) string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	breakCard := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		label.Render("Break Length"),
		"",
		components.Stepper(s.BreakLength, "←", "→"),
	))
	sessionCard := theme.SessionLengthCard.Render(lipgloss.JoinVertical(lipgloss.Center,
		label.Foreground(theme.Text).Render("Session Length"),
		"",
		components.Stepper(s.SessionLength, "↓", "↑"),
	))
	return lipgloss.JoinHorizontal(lipgloss.Top, breakCard, "  ", sessionCard)
}

func (t *TimerScreen) renderClock(s pomodoro.State, onBreak bool) string {
	fg, bg := theme.PhaseColors(onBreak)
	phase := s.Phase.String()

	switch t.variant {
	case theme.VariantGradient:
		from, to := theme.PhaseGradient(onBreak)
		body := lipgloss.JoinVertical(lipgloss.Center,
			components.GradientText(strings.ToUpper(phase), from, to),
			"",
			components.GradientText(components.BigClock(s.Display()), from, to),
		)
		return theme.Card.
			BorderForeground(from).
			Padding(1, 4).
			Render(body)

	case theme.VariantFocusFlow:
		body := lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Render(phase),
			"",
			components.BigClock(s.Display()),
		)
		return lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(1, 4).
			Render(body)

	default:
		body := lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Render(phase),
			"",
			lipgloss.NewStyle().Bold(true).Render(s.Display()),
		)
		return lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(1, 6).
			Render(body)
	}
}

func (t *TimerScreen) renderProgress(s pomodoro.State, onBreak bool, width int) string {
	bar := components.NewProgressBar("", s.Progress(), true, max(width, 12))
	switch {
	case t.variant == theme.VariantGradient:
		bar.Fill, bar.To = theme.PhaseGradient(onBreak)
	case onBreak:
		bar.Fill = theme.Success
	default:
		bar.Fill = theme.Primary
	}
	return bar.View()
}

func renderButtons(s pomodoro.State) string {
	label := "Start"
	if s.IsRunning() {
		label = "Pause"
	}
	toggle := components.NewButton(label, "space", true).View()
	reset := components.NewButton("Reset", "r", false).View()
	return lipgloss.JoinHorizontal(lipgloss.Center, toggle, "   ", reset)
}

func renderPresets() string {
	parts := make([]string, 0, len(pomodoro.Presets))
	for i, p := range pomodoro.Presets {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(string(rune('1'+i)))+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Name+" "+strconv.Itoa(p.Minutes)))
	}
	return strings.Join(parts, "   ")
}
