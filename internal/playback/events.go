package playback

import "time"

// StateChange is emitted when the session state changes.
type StateChange struct {
	TrackID  string
	Previous State
	Current  State
}

// TimeChange is emitted when the session position changes, whether by
// playback advance, seek, pause at the preview limit, or end of track.
//
// Progress is Position/Duration, 0 while the duration is unknown. For
// viewers without access it never exceeds PreviewLimit/Duration.
type TimeChange struct {
	Position time.Duration
	Progress float64
}

// BufferChange is emitted when the buffered fraction of the source changes.
type BufferChange struct {
	Fraction float64
}

// VolumeChange is emitted when the output level changes, whoever set it.
type VolumeChange struct {
	Volume float64
}

// PreviewLimitReached is emitted when an unauthenticated viewer hits the
// preview limit. It is a policy signal, not an error: the session stays
// usable below the limit.
type PreviewLimitReached struct {
	TrackID string
	Limit   time.Duration
}

// ErrorEvent is emitted when the session enters the Errored state.
type ErrorEvent struct {
	TrackID string
	Kind    ErrorKind
	Err     error
}
