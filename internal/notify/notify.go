// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"fmt"
	"time"
)

// Urgency represents freedesktop notification priority levels.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const (
	appName      = "Dreamster"
	desktopEntry = "dreamster"

	// CategoryPreview marks notifications about an ended preview.
	CategoryPreview = "x-dreamster.preview"

	// previewTimeout is how long the preview notification stays up, in ms.
	previewTimeout int32 = 8000
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Category   string  // freedesktop category hint (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Nop is a Notifier that drops every notification.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }

func (Nop) Close(uint32) error { return nil }

// PreviewEnded builds the notification shown when a signed out listener
// has heard the whole preview of a track.
func PreviewEnded(title, artist string, limit time.Duration) Notification {
	what := title
	if artist != "" {
		what = fmt.Sprintf("%s by %s", title, artist)
	}
	return Notification{
		Title:    "Preview ended",
		Body:     fmt.Sprintf("You heard the first %d seconds of %s. Sign in to keep listening.", int(limit.Seconds()), what),
		Icon:     "audio-x-generic",
		Category: CategoryPreview,
		Timeout:  previewTimeout,
		Urgency:  UrgencyNormal,
	}
}

// hints returns the freedesktop hints sent along with n.
func hints(n Notification) map[string]any {
	h := map[string]any{
		"urgency":       byte(n.Urgency),
		"desktop-entry": desktopEntry,
	}
	if n.Category != "" {
		h["category"] = n.Category
	}
	if n.Urgency == UrgencyLow {
		h["transient"] = true
	}
	return h
}
