package playback

import "errors"

// Session failures. Errors reported by the controller wrap one of these.
var (
	// ErrSourceUnavailable means no playable URL was resolved for the track.
	// Terminal until Load is called with a valid source.
	ErrSourceUnavailable = errors.New("no playable source for track")

	// ErrMediaLoad means the media primitive failed to load, decode or
	// fetch the source. Terminal until Load is called again.
	ErrMediaLoad = errors.New("media failed to load")

	// ErrPlaybackRejected means the media primitive refused to start.
	// Recoverable: Play may be retried.
	ErrPlaybackRejected = errors.New("playback rejected")
)

// ErrorKind names the failure class of an error reported by the controller.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindSourceUnavailable
	KindMediaLoad
	KindPlaybackRejected
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindSourceUnavailable:
		return "SourceUnavailable"
	case KindMediaLoad:
		return "MediaLoadFailure"
	case KindPlaybackRejected:
		return "PlaybackRejected"
	default:
		return "Unknown"
	}
}

// Recoverable reports whether Play can be retried without a new Load.
func (k ErrorKind) Recoverable() bool {
	return k == KindPlaybackRejected
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrSourceUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, ErrPlaybackRejected):
		return KindPlaybackRejected
	default:
		return KindMediaLoad
	}
}
