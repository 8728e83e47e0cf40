package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const sgrReset = "\x1b[0m"

// overlayAt draws top over base with its top-left corner at x, y. Both may
// contain ANSI styling; cells of base outside top are kept.
func overlayAt(base, top string, x, y int) string {
	if top == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(top, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		under := baseLines[row]
		underWidth := ansi.StringWidth(under)

		left := ansi.Truncate(under, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if end := x + ansi.StringWidth(line); end < underWidth {
			right = ansi.Cut(under, end, underWidth)
		}
		baseLines[row] = left + sgrReset + line + sgrReset + right
	}
	return strings.Join(baseLines, "\n")
}

// clampLines truncates view to width columns and height lines.
func clampLines(view string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
