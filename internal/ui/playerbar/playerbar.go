// Package playerbar renders the player controls of the track view.
package playerbar

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dreamster/internal/playback"
	"github.com/llehouerou/dreamster/internal/ui/render"
)

// Height is the rendered height: two content rows plus borders.
const Height = 4

// State holds everything needed to render the player bar.
type State struct {
	Title        string
	Artist       string
	Status       playback.State
	Position     time.Duration
	Duration     time.Duration
	Progress     float64
	Buffered     float64
	Buffering    bool
	Volume       float64
	Muted        bool
	Preview      bool // viewer is limited to the preview window
	PreviewLimit time.Duration
	LimitReached bool
}

// NewState builds a State from a controller snapshot.
func NewState(s playback.Session, title, artist string, muted bool) State {
	return State{
		Title:        title,
		Artist:       artist,
		Status:       s.State,
		Position:     s.Position,
		Duration:     s.Duration,
		Progress:     s.Progress,
		Buffered:     s.Buffered,
		Buffering:    s.Buffering,
		Volume:       s.Volume,
		Muted:        muted,
		Preview:      !s.Authenticated,
		PreviewLimit: s.PreviewLimit,
		LimitReached: s.LimitReached,
	}
}

// Render returns the player bar for the given width, "" when idle.
func Render(s State, width int) string {
	if s.Status == playback.StateIdle {
		return ""
	}

	// border (2) + padding (2)
	innerWidth := max(width-4, 10)

	// Line 1: ▶  Title · Artist                     ♪ 80%
	volume := RenderVolume(s.Volume, s.Muted)
	head := statusSymbol(s) + "  "
	titleWidth := innerWidth - lipgloss.Width(head) - lipgloss.Width(volume) - 1
	head += renderTitle(s.Title, s.Artist, titleWidth)
	line1 := render.Row(head, volume, innerWidth)

	// Line 2: ━━━━──┃·····   0:12 / 3:00   preview 0:18 left
	timeStr := timeStyle().Render(render.Clock(s.Position) + " / " + render.Clock(s.Duration))
	note := previewNote(s)
	tail := "  " + timeStr
	if note != "" {
		tail += "  " + note
	}
	barWidth := max(innerWidth-lipgloss.Width(tail), 5)
	line2 := RenderProgressBar(bar(s), barWidth) + tail

	return barStyle().Width(width - 2).Render(line1 + "\n" + line2)
}

func bar(s State) Bar {
	b := Bar{Progress: s.Progress, Buffered: s.Buffered}
	if s.Preview && s.Duration > s.PreviewLimit {
		b.PreviewEnd = float64(s.PreviewLimit) / float64(s.Duration)
	}
	return b
}

func statusSymbol(s State) string {
	switch s.Status {
	case playback.StatePlaying:
		if s.Buffering {
			return loadSymbol
		}
		return playingStyle().Render(playSymbol)
	case playback.StateLoading:
		return loadSymbol
	case playback.StateEnded:
		return endSymbol
	case playback.StateErrored:
		return errorStyle().Render(errorSymbol)
	default:
		return pauseSymbol
	}
}

func renderTitle(title, artist string, width int) string {
	if title == "" {
		title = "Unknown Track"
	}
	title = render.TruncateEllipsis(title, width)
	rest := width - lipgloss.Width(title) - 3
	if artist == "" || rest < 4 {
		return titleStyle().Render(title)
	}
	return titleStyle().Render(title) + artistStyle().Render(" · "+render.TruncateEllipsis(artist, rest))
}

func previewNote(s State) string {
	if !s.Preview || s.Status == playback.StateErrored {
		return ""
	}
	if s.LimitReached || s.Position >= s.PreviewLimit {
		return markStyle().Render("preview ended")
	}
	remaining := s.PreviewLimit - s.Position
	if s.Duration > 0 {
		remaining = min(remaining, s.Duration-s.Position)
	}
	return timeStyle().Render("preview " + render.Clock(remaining) + " left")
}
