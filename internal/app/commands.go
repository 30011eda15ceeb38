package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dreamster/internal/notify"
	"github.com/llehouerou/dreamster/internal/playback"
)

const openTimeout = 20 * time.Second

// OpenTrackCmd fetches trackID and resolves its audio source.
func OpenTrackCmd(c Catalog, trackID string, attempt int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
		defer cancel()

		t, err := c.Track(ctx, trackID)
		if err != nil {
			return TrackFailedMsg{Attempt: attempt, TrackID: trackID, Err: err}
		}
		src, err := c.ResolveSource(ctx, t)
		if err != nil {
			return TrackFailedMsg{Attempt: attempt, TrackID: trackID, Err: err}
		}
		return TrackOpenedMsg{Attempt: attempt, Track: t, Source: src}
	}
}

// WatchPlayback returns a command that waits for the next controller event.
// It listens on all subscription channels and converts events to tea.Msg.
func WatchPlayback(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg{Sub: sub, Event: e}
		case e := <-sub.TimeChanged:
			return TimeChangedMsg{Sub: sub, Event: e}
		case e := <-sub.BufferChanged:
			return BufferChangedMsg{Sub: sub, Event: e}
		case e := <-sub.VolumeChanged:
			return VolumeChangedMsg{Sub: sub, Event: e}
		case e := <-sub.PreviewLimit:
			return PreviewLimitMsg{Sub: sub, Event: e}
		case e := <-sub.Error:
			return PlaybackErrorMsg{Sub: sub, Event: e}
		case <-sub.Done:
			return PlaybackClosedMsg{Sub: sub}
		}
	}
}

// NotifyCmd sends a desktop notification off the UI goroutine.
func NotifyCmd(n notify.Notifier, notif notify.Notification) tea.Cmd {
	return func() tea.Msg {
		id, err := n.Notify(notif)
		return DesktopNotifiedMsg{ID: id, Err: err}
	}
}

// WatchAuth returns a command that waits for the viewer to sign in or out.
func WatchAuth(ch <-chan bool) tea.Cmd {
	return waitForChannel(ch, func(authenticated bool, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return AuthChangedMsg{Authenticated: authenticated}
	})
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}
