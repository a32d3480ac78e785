package components

import (
	"strconv"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Button is a styled button with its keyboard shortcut.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// NewButton creates a new button.
func NewButton(label, key string, active bool) Button {
	return Button{
		Label:  label,
		Key:    key,
		Active: active,
	}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " " + lipgloss.NewStyle().Faint(true).Render("["+b.Key+"]")
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// Stepper renders a "− value +" control for a length setting.
func Stepper(value int, decKey, incKey string) string {
	dec := theme.Decrease.Render("− " + decKey)
	inc := theme.Increase.Render(incKey + " +")
	num := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(6).
		Align(lipgloss.Center).
		Render(strconv.Itoa(value))
	return lipgloss.JoinHorizontal(lipgloss.Center, dec, num, inc)
}
