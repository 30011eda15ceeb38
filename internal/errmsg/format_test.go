//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/llehouerou/dreamster/internal/catalog"
	"github.com/llehouerou/dreamster/internal/playback"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTrackLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpTrackLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load track: connection refused",
		},
		{
			name:     "seek operation",
			op:       OpPlaybackSeek,
			err:      errors.New("out of range"),
			expected: "Failed to seek: out of range",
		},
		{
			name:     "state save operation",
			op:       OpStateSave,
			err:      errors.New("disk full"),
			expected: "Failed to save preferences: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSourceResolve,
			context:  "trk_1",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats with context",
			op:       OpSourceResolve,
			context:  "trk_1",
			err:      errors.New("timeout"),
			expected: "Failed to resolve audio source 'trk_1': timeout",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpSourceResolve,
			context:  "",
			err:      errors.New("timeout"),
			expected: "Failed to resolve audio source: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestPlayback(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"no error", nil, ""},
		{
			"no source",
			fmt.Errorf("%w: track x", playback.ErrSourceUnavailable),
			"This track has no playable audio.",
		},
		{
			"rejected",
			fmt.Errorf("%w: %w", playback.ErrPlaybackRejected, errors.New("device busy")),
			"Playback was blocked. Press space to try again.",
		},
		{
			"media failure",
			fmt.Errorf("%w: %w", playback.ErrMediaLoad, errors.New("decode mp3: bad frame")),
			"Failed to load audio: decode mp3: bad frame",
		},
		{
			"media failure without cause",
			playback.ErrMediaLoad,
			"Failed to load audio: media failed to load",
		},
		{
			"media failure wrapped once more",
			fmt.Errorf("track 7: %w", fmt.Errorf("%w: %w", playback.ErrMediaLoad, errors.New("status 500"))),
			"Failed to load audio: track 7: media failed to load: status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Playback(tt.err); got != tt.expected {
				t.Errorf("Playback() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTrack(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"no error", nil, ""},
		{"unauthorized", catalog.ErrUnauthorized, "Your session has expired. Sign in again."},
		{
			"unavailable",
			fmt.Errorf("%w: trk_1: gone", catalog.ErrTrackUnavailable),
			"Track 'trk_1' is unavailable.",
		},
		{"other", errors.New("bad json"), "Failed to load track 'trk_1': bad json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Track("trk_1", tt.err); got != tt.expected {
				t.Errorf("Track() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpTrackLoad, OpSourceResolve, OpShareRecord,
		OpAudioLoad, OpPlaybackStart, OpPlaybackSeek,
		OpStateOpen, OpStateSave,
		OpConfigLoad, OpInitialize,
	}

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}
			msg := Format(op, errors.New("test"))
			if msg == "" {
				t.Error("Format should produce non-empty message")
			}
		})
	}
}
