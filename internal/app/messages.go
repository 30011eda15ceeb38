package app

import (
	"github.com/llehouerou/dreamster/internal/catalog"
	"github.com/llehouerou/dreamster/internal/playback"
)

// PlaybackMessage is implemented by messages coming from the controller.
// Each carries the subscription it was read from so messages of a replaced
// controller can be told apart.
type PlaybackMessage interface {
	subscription() *playback.Subscription
}

// TrackOpenedMsg carries a fetched track and its resolved audio source.
type TrackOpenedMsg struct {
	Attempt int
	Track   *catalog.Track
	Source  catalog.Source
}

// TrackFailedMsg reports that the track could not be fetched.
type TrackFailedMsg struct {
	Attempt int
	TrackID string
	Err     error
}

// StateChangedMsg wraps a controller state transition.
type StateChangedMsg struct {
	Sub   *playback.Subscription
	Event playback.StateChange
}

// TimeChangedMsg wraps a position update.
type TimeChangedMsg struct {
	Sub   *playback.Subscription
	Event playback.TimeChange
}

// BufferChangedMsg wraps a buffer update.
type BufferChangedMsg struct {
	Sub   *playback.Subscription
	Event playback.BufferChange
}

// VolumeChangedMsg wraps an output level change, including ones made over
// D-Bus.
type VolumeChangedMsg struct {
	Sub   *playback.Subscription
	Event playback.VolumeChange
}

// PreviewLimitMsg is sent when the preview window has been used up.
type PreviewLimitMsg struct {
	Sub   *playback.Subscription
	Event playback.PreviewLimitReached
}

// PlaybackErrorMsg wraps a playback failure.
type PlaybackErrorMsg struct {
	Sub   *playback.Subscription
	Event playback.ErrorEvent
}

// PlaybackClosedMsg is sent once a controller's subscription is closed.
type PlaybackClosedMsg struct {
	Sub *playback.Subscription
}

func (m StateChangedMsg) subscription() *playback.Subscription   { return m.Sub }
func (m TimeChangedMsg) subscription() *playback.Subscription    { return m.Sub }
func (m BufferChangedMsg) subscription() *playback.Subscription  { return m.Sub }
func (m VolumeChangedMsg) subscription() *playback.Subscription  { return m.Sub }
func (m PreviewLimitMsg) subscription() *playback.Subscription   { return m.Sub }
func (m PlaybackErrorMsg) subscription() *playback.Subscription  { return m.Sub }
func (m PlaybackClosedMsg) subscription() *playback.Subscription { return m.Sub }

// DesktopNotifiedMsg reports the outcome of a desktop notification.
type DesktopNotifiedMsg struct {
	ID  uint32
	Err error
}

// AuthChangedMsg is sent when the viewer signs in or out.
type AuthChangedMsg struct {
	Authenticated bool
}
