package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlaceOverlay draws fg on top of bg at the given cell position. Both are
// pre-rendered multi-line strings; splicing is ANSI-aware so styled
// backgrounds survive around the overlay.
func PlaceOverlay(x, y int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)
		fgWidth := ansi.StringWidth(fgLine)

		left := ansi.Truncate(bgLine, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if x+fgWidth < bgWidth {
			right = ansi.Cut(bgLine, x+fgWidth, bgWidth)
		}
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}
