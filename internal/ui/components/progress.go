package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	// Fill colors the completed part. When To is set the fill is a
	// gradient from Fill to To.
	Fill color.Color
	To   color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	var filledStr string
	if p.To != nil && filled > 0 {
		// Color each cell by its position along the whole bar so the
		// gradient does not stretch as the bar fills.
		var b strings.Builder
		for i := range filled {
			c := Blend(fill, p.To, float64(i)/float64(max(barWidth-1, 1)))
			b.WriteString(lipgloss.NewStyle().Background(c).Render(" "))
		}
		filledStr = b.String()
	} else {
		filledStr = lipgloss.NewStyle().
			Background(fill).
			Render(strings.Repeat(" ", filled))
	}

	emptyStr := theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}
