package share

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/dreamster/internal/catalog"
)

type fakeSink struct {
	mu     sync.Mutex
	events []catalog.ShareEvent
	err    error
	block  chan struct{}
}

func (f *fakeSink) RecordShare(ctx context.Context, e catalog.ShareEvent) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

func (f *fakeSink) recorded() []catalog.ShareEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.ShareEvent(nil), f.events...)
}

func TestRecorder_Opened(t *testing.T) {
	sink := &fakeSink{}
	r := NewRecorder(sink, nil)

	r.Opened("trk_1")
	r.Opened("trk_1")
	r.Wait()

	events := sink.recorded()
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, "trk_1", e.TrackID)
		assert.Equal(t, Platform, e.Platform)
		assert.False(t, e.At.IsZero())
		_, err := uuid.Parse(e.ID)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, events[0].ID, events[1].ID, "each open is a distinct event")
}

func TestRecorder_Opened_DoesNotBlock(t *testing.T) {
	sink := &fakeSink{block: make(chan struct{})}
	r := NewRecorder(sink, nil)

	r.Opened("trk_1") // returns while the sink is blocked

	assert.Empty(t, sink.recorded())
	close(sink.block)
	r.Wait()
	assert.Len(t, sink.recorded(), 1)
}

func TestRecorder_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := log.New(&lockedWriter{w: &buf, mu: &mu})
	sink := &fakeSink{err: errors.New("boom")}
	r := NewRecorder(sink, logger)

	r.Opened("trk_2")
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, buf.String(), "share not recorded")
	assert.Contains(t, buf.String(), "trk_2")
}

func TestRecorder_IgnoresEmptyTrack(t *testing.T) {
	sink := &fakeSink{}
	r := NewRecorder(sink, nil)

	r.Opened("")
	r.Wait()

	assert.Empty(t, sink.recorded())
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
