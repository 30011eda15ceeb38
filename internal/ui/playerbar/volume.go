package playerbar

import "fmt"

// RenderVolume renders the volume indicator.
// Format: "♪ 80%" or "♪ mute"
func RenderVolume(volume float64, muted bool) string {
	if muted {
		return timeStyle().Render(volumeSymbol + " mute")
	}
	return timeStyle().Render(fmt.Sprintf("%s %3d%%", volumeSymbol, int(volume*100+0.5)))
}
