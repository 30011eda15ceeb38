package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dreamster/internal/ui/styles"
)

const (
	playSymbol   = "▶"
	pauseSymbol  = "⏸"
	loadSymbol   = "◌"
	endSymbol    = "■"
	errorSymbol  = "✕"
	filledCell   = "━"
	emptyCell    = "─"
	lockedCell   = "·"
	previewMark  = "┃"
	volumeSymbol = "♪"
)

func titleStyle() lipgloss.Style   { return styles.T().S().Title }
func artistStyle() lipgloss.Style  { return styles.T().S().Muted }
func playingStyle() lipgloss.Style { return styles.T().S().Playing }
func timeStyle() lipgloss.Style    { return styles.T().S().Muted }
func lockedStyle() lipgloss.Style  { return styles.T().S().Subtle }
func markStyle() lipgloss.Style    { return styles.T().S().Warning }
func errorStyle() lipgloss.Style   { return styles.T().S().Error }

func bufferedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().FgMuted)
}

func barStyle() lipgloss.Style {
	return styles.T().S().Panel
}
