// internal/player/state.go
package player

// State represents the internal state of a Player.
//
//	┌──────────┐   load    ┌──────────┐  decoded  ┌──────────┐
//	│ Stopped  │ ─────────▶│ Loading  │ ─────────▶│  Paused  │
//	└──────────┘           └──────────┘           └──────────┘
//	     ▲                      │ fetch/decode       │   ▲
//	     │                      │ error        play  │   │ pause / end
//	     └──────────────────────┘                    ▼   │
//	                                              ┌──────────┐
//	                                              │ Playing  │
//	                                              └──────────┘
//
// A decoded source always starts paused: audio only flows after Play.
// Load from any state stops the current source first.
type State int

const (
	StateStopped State = iota
	StateLoading
	StatePaused
	StatePlaying
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateLoading:
		return "Loading"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// HasSource returns true if a decoded source is attached (Paused or Playing).
func (s State) HasSource() bool {
	return s == StatePaused || s == StatePlaying
}
