// internal/playback/state_test.go
package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateLoading, "Loading"},
		{StateReady, "Ready"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateEnded, "Ended"},
		{StateErrored, "Errored"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsPlayable(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateLoading, false},
		{StateReady, true},
		{StatePlaying, false},
		{StatePaused, true},
		{StateEnded, true},
		{StateErrored, false},
	}
	for _, tt := range tests {
		if got := tt.state.IsPlayable(); got != tt.want {
			t.Errorf("%v.IsPlayable() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestState_HasMedia(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateLoading, false},
		{StateReady, true},
		{StatePlaying, true},
		{StatePaused, true},
		{StateEnded, true},
		{StateErrored, false},
	}
	for _, tt := range tests {
		if got := tt.state.HasMedia(); got != tt.want {
			t.Errorf("%v.HasMedia() = %v, want %v", tt.state, got, tt.want)
		}
	}
}
