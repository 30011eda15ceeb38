package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestBlend_Endpoints(t *testing.T) {
	colors := Blend(5, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))

	assert.Len(t, colors, 5)
	assert.Equal(t, lipgloss.Color("#000000"), colors[0])
	assert.Equal(t, lipgloss.Color("#ffffff"), colors[4])
}

func TestBlend_Small(t *testing.T) {
	assert.Nil(t, Blend(0, "#000000", "#ffffff"))
	assert.Equal(t, []lipgloss.Color{"#123456"}, Blend(1, "#123456", "#ffffff"))
}

func TestBlend_ANSIFallsBackToGray(t *testing.T) {
	colors := Blend(3, lipgloss.Color("240"), lipgloss.Color("240"))
	assert.Equal(t, lipgloss.Color("#808080"), colors[1])
}

func TestBlend_SameColorIsFlat(t *testing.T) {
	colors := Blend(4, lipgloss.Color("#8b5cf6"), lipgloss.Color("#8b5cf6"))
	for _, c := range colors {
		assert.Equal(t, lipgloss.Color("#8b5cf6"), c)
	}
}

func TestGradient_KeepsText(t *testing.T) {
	out := Gradient("dreamster", true, T().Primary, T().Secondary)
	assert.Equal(t, "dreamster", ansi.Strip(out))
	assert.Empty(t, Gradient("", false, T().Primary, T().Secondary))
}
