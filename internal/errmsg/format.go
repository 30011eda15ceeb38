// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/dreamster/internal/catalog"
	"github.com/llehouerou/dreamster/internal/playback"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpTrackLoad     Op = "load track"
	OpSourceResolve Op = "resolve audio source"
	OpShareRecord   Op = "record share"

	// Playback operations
	OpAudioLoad     Op = "load audio"
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Persistence
	OpStateOpen Op = "open preferences"
	OpStateSave Op = "save preferences"

	// Initialization
	OpConfigLoad Op = "load config"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Playback describes a playback failure for the listener.
func Playback(err error) string {
	switch playback.KindOf(err) {
	case playback.KindNone:
		return ""
	case playback.KindSourceUnavailable:
		return "This track has no playable audio."
	case playback.KindPlaybackRejected:
		return "Playback was blocked. Press space to try again."
	default:
		return Format(OpAudioLoad, mediaCause(err))
	}
}

// mediaCause returns what the media reported, without the playback
// sentinel it was joined with.
func mediaCause(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}
	for _, e := range joined.Unwrap() {
		if e != playback.ErrMediaLoad {
			return e
		}
	}
	return err
}

// Track describes a failure to open a track.
func Track(id string, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, catalog.ErrUnauthorized):
		return "Your session has expired. Sign in again."
	case errors.Is(err, catalog.ErrTrackUnavailable):
		return fmt.Sprintf("Track '%s' is unavailable.", id)
	default:
		return FormatWith(OpTrackLoad, id, err)
	}
}
