package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dreamster/internal/ui/styles"
)

// Bar describes one progress bar. Fractions are of the whole track.
type Bar struct {
	Progress float64
	Buffered float64
	// PreviewEnd marks where the preview window ends; 0 or 1 hides it.
	PreviewEnd float64
}

// RenderProgressBar renders b in width cells: played cells as a gradient,
// buffered cells muted, and the part past the preview window dotted behind
// a marker.
//
//	━━━━━━──────┃·········
func RenderProgressBar(b Bar, width int) string {
	if width <= 0 {
		return ""
	}

	filled := cells(b.Progress, width)
	buffered := max(cells(b.Buffered, width), filled)
	mark := width
	if b.PreviewEnd > 0 && b.PreviewEnd < 1 {
		mark = min(cells(b.PreviewEnd, width), width-1)
		filled = min(filled, mark)
		buffered = min(buffered, mark)
	}

	var sb strings.Builder
	if filled > 0 {
		t := styles.T()
		for _, c := range styles.Blend(filled, t.Primary, t.Secondary) {
			sb.WriteString(lipgloss.NewStyle().Foreground(c).Render(filledCell))
		}
	}
	sb.WriteString(bufferedStyle().Render(strings.Repeat(emptyCell, buffered-filled)))
	sb.WriteString(lockedStyle().Render(strings.Repeat(emptyCell, mark-buffered)))
	if mark < width {
		sb.WriteString(markStyle().Render(previewMark))
		sb.WriteString(lockedStyle().Render(strings.Repeat(lockedCell, width-mark-1)))
	}
	return sb.String()
}

func cells(fraction float64, width int) int {
	return min(max(int(fraction*float64(width)), 0), width)
}
