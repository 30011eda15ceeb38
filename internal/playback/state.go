// internal/playback/state.go
package playback

// State represents the playback state of a session.
//
// Valid transitions:
//   - Idle    → Loading (via Load)
//   - Idle    → Errored (via Load without a source URL)
//   - Loading → Ready   (metadata known and playable through)
//   - Loading → Errored (media error)
//   - Ready, Paused, Ended → Playing (via Play, once the media primitive accepts)
//   - Playing → Paused  (via Pause, or when the preview limit is reached)
//   - Playing → Ended   (natural end of the source)
//   - any     → Errored (media error, rejected play)
//   - any     → Idle    (via Teardown)
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateEnded
	StateErrored
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	case StateErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// IsPlayable returns true if Play may start playback from this state.
func (s State) IsPlayable() bool {
	return s == StateReady || s == StatePaused || s == StateEnded
}

// HasMedia returns true if a source is loaded and usable.
func (s State) HasMedia() bool {
	return s == StateReady || s == StatePlaying || s == StatePaused || s == StateEnded
}
