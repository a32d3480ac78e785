package components

import "strings"

// glyphHeight is the number of rows in each big glyph.
const glyphHeight = 5

var glyphs = map[rune][glyphHeight]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" ██", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "▪", " ", "▪", " "},
}

// BigClock renders text such as "25:00" in five-row block digits.
// Characters without a glyph are skipped.
func BigClock(text string) string {
	var rows [glyphHeight]strings.Builder
	first := true
	for _, r := range text {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(g[i])
		}
		first = false
	}

	lines := make([]string, glyphHeight)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}
