package player

import "time"

// Event is a notification emitted by a media primitive.
// The set of events is closed: only the types in this file implement it.
type Event interface {
	event()
}

// LoadedMetadata is emitted once the source duration is known.
type LoadedMetadata struct {
	Duration time.Duration
}

// CanPlayThrough is emitted when enough of the source is available to play
// to the end without stalling.
type CanPlayThrough struct{}

// TimeUpdate is emitted periodically while playing.
type TimeUpdate struct {
	Position time.Duration
}

// Progress reports how far the source has been buffered.
type Progress struct {
	BufferedEnd time.Duration
}

// Ended is emitted when playback reaches the natural end of the source.
type Ended struct{}

// Error is emitted when loading or decoding the source fails.
type Error struct {
	Err error
}

// Waiting is emitted when playback stalls for lack of data.
type Waiting struct{}

// Playing is emitted when audio output actually starts or resumes.
type Playing struct{}

func (LoadedMetadata) event() {}
func (CanPlayThrough) event() {}
func (TimeUpdate) event()     {}
func (Progress) event()       {}
func (Ended) event()          {}
func (Error) event()          {}
func (Waiting) event()        {}
func (Playing) event()        {}
