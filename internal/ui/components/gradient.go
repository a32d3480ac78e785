package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Blend mixes from and to in CIE-L*uv space. t is clamped to [0,1].
func Blend(from, to color.Color, t float64) color.Color {
	a, ok := colorful.MakeColor(from)
	if !ok {
		return from
	}
	b, ok := colorful.MakeColor(to)
	if !ok {
		return from
	}
	t = min(max(t, 0), 1)
	return a.BlendLuv(b, t).Clamped()
}

// GradientText colors s column by column from one color to another.
// Multi-line text shares one horizontal gradient so columns line up.
func GradientText(s string, from, to color.Color) string {
	lines := strings.Split(s, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	if width == 0 {
		return s
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for col, r := range []rune(line) {
			if r == ' ' {
				b.WriteRune(r)
				continue
			}
			c := Blend(from, to, float64(col)/float64(max(width-1, 1)))
			b.WriteString(lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(r)))
		}
		out[i] = b.String()
	}
	return strings.Join(out, "\n")
}
