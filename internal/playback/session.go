package playback

import "time"

// Session is a snapshot of the controller's current playback session.
type Session struct {
	TrackID       string
	SourceURL     string
	State         State
	Authenticated bool
	Position      time.Duration
	Duration      time.Duration
	Progress      float64
	Buffered      float64
	Buffering     bool
	Volume        float64
	PreviewLimit  time.Duration
	LimitReached  bool
	LastError     error
}

// IsPlaying returns true if audio is flowing.
func (s Session) IsPlaying() bool {
	return s.State == StatePlaying
}

// ControlsEnabled returns false when the session cannot be played without
// a new Load.
func (s Session) ControlsEnabled() bool {
	if s.State == StateErrored {
		return KindOf(s.LastError).Recoverable()
	}
	return s.State.HasMedia()
}

// PreviewRemaining returns how much of the preview window is left, or -1
// when the viewer has full access.
func (s Session) PreviewRemaining() time.Duration {
	if s.Authenticated {
		return -1
	}
	return max(s.PreviewLimit-s.Position, 0)
}

// ErrorKind classifies LastError.
func (s Session) ErrorKind() ErrorKind {
	return KindOf(s.LastError)
}
