// Package share records that a track view was opened.
package share

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/llehouerou/dreamster/internal/catalog"
)

// Platform tags every event recorded by this client.
const Platform = "dreamster"

const defaultTimeout = 10 * time.Second

// Sink stores share events.
type Sink interface {
	RecordShare(ctx context.Context, e catalog.ShareEvent) error
}

// Recorder fires share events without blocking the caller. Failures are
// logged and otherwise ignored.
type Recorder struct {
	sink    Sink
	logger  *log.Logger
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewRecorder creates a recorder posting to sink. A nil logger discards.
func NewRecorder(sink Sink, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		sink:    sink,
		logger:  logger,
		timeout: defaultTimeout,
		now:     time.Now,
	}
}

// Opened records one view of trackID in the background.
func (r *Recorder) Opened(trackID string) {
	if trackID == "" {
		return
	}
	e := catalog.ShareEvent{
		ID:       uuid.New().String(),
		TrackID:  trackID,
		Platform: Platform,
		At:       r.now(),
	}
	r.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.sink.RecordShare(ctx, e); err != nil {
			r.logger.Warn("share not recorded", "track", trackID, "event", e.ID, "err", err)
			return
		}
		r.logger.Debug("share recorded", "track", trackID, "event", e.ID)
	})
}

// Wait blocks until every pending event has been sent or has failed.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
