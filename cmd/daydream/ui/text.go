package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to fit width terminal cells. Hangul and other wide
// runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width cells, truncating if it is longer.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// Wrap breaks s into lines of at most width cells. Existing line breaks are
// kept.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := strings.Builder{}
		w := 0
		for _, r := range para {
			rw := runewidth.RuneWidth(r)
			if w+rw > width {
				out = append(out, line.String())
				line.Reset()
				w = 0
			}
			line.WriteRune(r)
			w += rw
		}
		out = append(out, line.String())
	}
	return out
}
