//go:build linux

package notify

import (
	"os"
	"testing"
	"time"
)

func requireSessionBus(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := n.(Nop); ok {
		t.Skip("session bus unreachable")
	}
	return n
}

func TestNew_WithoutSessionBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/nonexistent/dreamster-test-bus")

	n, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if n == nil {
		t.Fatal("New() returned nil notifier")
	}
}

func TestNotify_PreviewEnded(t *testing.T) {
	notifier := requireSessionBus(t)

	n := PreviewEnded("Night Drive", "Lumen", 30*time.Second)
	n.Timeout = 1000
	id, err := notifier.Notify(n)
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if id == 0 {
		t.Error("Notify() returned id=0, expected non-zero")
	}
	if err := notifier.Close(id); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestNotify_SecondPreviewReplacesFirst(t *testing.T) {
	notifier := requireSessionBus(t)

	first := PreviewEnded("Night Drive", "Lumen", 30*time.Second)
	first.Timeout = 2000
	id1, err := notifier.Notify(first)
	if err != nil {
		t.Fatalf("first Notify() error: %v", err)
	}

	second := PreviewEnded("Night Drive", "Lumen", 30*time.Second)
	second.Timeout = 1000
	second.ReplacesID = id1
	id2, err := notifier.Notify(second)
	if err != nil {
		t.Fatalf("second Notify() error: %v", err)
	}
	if id2 != id1 {
		t.Errorf("replacing notification got id=%d, want id=%d", id2, id1)
	}

	if err := notifier.Close(id2); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
