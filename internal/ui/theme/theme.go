package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: slate background, indigo for focus, green for rest.
var (
	Primary   = lipgloss.Color("#818CF8") // Indigo 400
	Secondary = lipgloss.Color("#A5B4FC") // Indigo 300
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#16A34A") // Green 600
	Error     = lipgloss.Color("#DC2626") // Red 600
	Text      = lipgloss.Color("#F3F4F6") // Gray 100
	TextDim   = lipgloss.Color("#9CA3AF") // Gray 400
	BgDark    = lipgloss.Color("#111827") // Gray 900
	BgCard    = lipgloss.Color("#1F2937") // Gray 800
	Border    = lipgloss.Color("#374151") // Gray 700
)

// Phase colors. The timer card flips between these when the phase changes.
var (
	SessionFg   = lipgloss.Color("#312E81") // Indigo 900
	SessionBg   = lipgloss.Color("#E0E7FF") // Indigo 100
	SessionCard = lipgloss.Color("#312E81")
	BreakFg     = lipgloss.Color("#14532D") // Green 900
	BreakBg     = lipgloss.Color("#DCFCE7") // Green 100

	// Gradient stops for the gradient variant.
	SessionFrom = lipgloss.Color("#6366F1")
	SessionTo   = lipgloss.Color("#EC4899")
	BreakFrom   = lipgloss.Color("#22C55E")
	BreakTo     = lipgloss.Color("#06B6D4")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	SessionLengthCard = Card.
				Background(SessionCard).
				BorderForeground(Primary)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(lipgloss.Color("#4F46E5")). // Indigo 600
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(Border).
			Foreground(Text).
			Padding(0, 2)

	Decrease = lipgloss.NewStyle().
			Background(Error).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	Increase = lipgloss.NewStyle().
			Background(Success).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)
)

// Variant selects how the timer screen is drawn.
type Variant string

const (
	// VariantClassic is a plain card with the MM:SS readout.
	VariantClassic Variant = "classic"
	// VariantFocusFlow adds the splash screen and big block digits.
	VariantFocusFlow Variant = "focusflow"
	// VariantGradient draws the digits and progress bar with color gradients.
	VariantGradient Variant = "gradient"
)

// Variants lists every known variant in display order.
var Variants = []Variant{VariantClassic, VariantFocusFlow, VariantGradient}

// ParseVariant returns the named variant, or VariantFocusFlow and false if
// name is unknown.
func ParseVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if string(v) == name {
			return v, true
		}
	}
	return VariantFocusFlow, false
}

// PhaseColors returns the foreground and background of the timer card.
func PhaseColors(onBreak bool) (fg, bg color.Color) {
	if onBreak {
		return BreakFg, BreakBg
	}
	return SessionFg, SessionBg
}

// PhaseGradient returns the gradient stops for the gradient variant.
func PhaseGradient(onBreak bool) (from, to color.Color) {
	if onBreak {
		return BreakFrom, BreakTo
	}
	return SessionFrom, SessionTo
}
