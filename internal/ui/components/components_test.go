package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func TestBigClock(t *testing.T) {
	out := BigClock("25:00")
	lines := strings.Split(out, "\n")
	if len(lines) != glyphHeight {
		t.Fatalf("expected %d rows, got %d", glyphHeight, len(lines))
	}
	// 4 digits of width 3, a colon of width 1, 4 separating spaces.
	want := 4*3 + 1 + 4
	for i, line := range lines {
		if got := len([]rune(line)); got != want {
			t.Errorf("row %d width = %d, want %d", i, got, want)
		}
	}
	if lines[0] != "███ ███   ███ ███" {
		t.Errorf("unexpected top row %q", lines[0])
	}
}

func TestBigClockSkipsUnknown(t *testing.T) {
	if BigClock("1x") != BigClock("1") {
		t.Error("unknown runes should be skipped")
	}
}

func TestBlendEndpoints(t *testing.T) {
	from := lipgloss.Color("#000000")
	to := lipgloss.Color("#ffffff")

	start, _ := colorful.MakeColor(Blend(from, to, 0))
	end, _ := colorful.MakeColor(Blend(from, to, 1))
	clamped, _ := colorful.MakeColor(Blend(from, to, 7))

	if start.Hex() != "#000000" {
		t.Errorf("Blend at 0 = %s, want #000000", start.Hex())
	}
	if end.Hex() != "#ffffff" {
		t.Errorf("Blend at 1 = %s, want #ffffff", end.Hex())
	}
	if clamped.Hex() != end.Hex() {
		t.Errorf("Blend beyond 1 = %s, want %s", clamped.Hex(), end.Hex())
	}
}

func TestGradientTextKeepsShape(t *testing.T) {
	in := "ab\n c"
	out := GradientText(in, lipgloss.Color("#6366F1"), lipgloss.Color("#EC4899"))
	if got := lipgloss.Height(out); got != 2 {
		t.Errorf("height = %d, want 2", got)
	}
	if got := lipgloss.Width(out); got != 2 {
		t.Errorf("width = %d, want 2", got)
	}
}

func TestProgressBarWidth(t *testing.T) {
	tests := []struct {
		name string
		bar  ProgressBar
	}{
		{"solid", NewProgressBar("", 0.5, false, 20)},
		{"gradient", ProgressBar{Percent: 0.3, Width: 20, Fill: lipgloss.Color("#22C55E"), To: lipgloss.Color("#06B6D4")}},
		{"overflow", NewProgressBar("", 1.7, false, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lipgloss.Width(tt.bar.View()); got != 20 {
				t.Errorf("width = %d, want 20", got)
			}
		})
	}
}

func TestButtonShowsKey(t *testing.T) {
	out := NewButton("Start", "space", true).View()
	if !strings.Contains(out, "Start") || !strings.Contains(out, "[space]") {
		t.Errorf("unexpected button %q", out)
	}
}
