package playback

import (
	"fmt"
	"time"

	"github.com/llehouerou/dreamster/internal/player"
)

// handle processes one media event. Events from a previous session or a
// superseded load are dropped.
func (c *Controller) handle(gen uint64, src player.Source, e player.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen || src != c.source {
		return
	}

	switch e := e.(type) {
	case player.LoadedMetadata:
		c.duration = max(e.Duration, 0)
		c.hasMetadata = true
		c.position = clampPosition(c.position, c.duration)
		c.maybeReadyLocked()
		c.emitTimeLocked()
	case player.CanPlayThrough:
		c.playThrough = true
		c.maybeReadyLocked()
	case player.TimeUpdate:
		c.handleTimeUpdate(e.Position)
	case player.Progress:
		c.buffered = bufferedFraction(e.BufferedEnd, c.duration)
		c.emitBufferLocked()
	case player.Waiting:
		c.buffering = true
	case player.Playing:
		c.buffering = false
	case player.Ended:
		c.endLocked()
	case player.Error:
		c.failLocked(fmt.Errorf("%w: %w", ErrMediaLoad, e.Err))
	}
}

// handleTimeUpdate is the authoritative preview limit check: whichever path
// brought playback to the limit, it stops here at exactly the limit.
func (c *Controller) handleTimeUpdate(pos time.Duration) {
	if c.state != StatePlaying && !c.playPending {
		return // stale tick after pause, seek or cap
	}

	if !c.authorizedLocked() && pos >= c.limit {
		c.capLocked()
		return
	}

	c.position = clampPosition(pos, c.duration)
	c.emitTimeLocked()
}

// settlePlay applies the outcome of a media Play call.
func (c *Controller) settlePlay(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	if !c.playPending {
		// Paused or capped while the request was in flight.
		if err == nil && c.state != StatePlaying {
			c.media.Pause()
		}
		return
	}
	c.playPending = false

	if err != nil {
		c.failLocked(fmt.Errorf("%w: %w", ErrPlaybackRejected, err))
		return
	}

	if !c.authorizedLocked() && c.position >= c.limit {
		c.capLocked()
		return
	}

	c.lastErr = nil
	c.setStateLocked(StatePlaying)
}

func (c *Controller) maybeReadyLocked() {
	if c.state != StateLoading || !c.hasMetadata || !c.playThrough {
		return
	}
	if c.seekPending {
		c.seekPending = false
		target := clampPosition(c.pendingSeek, c.duration)
		if !c.authorizedLocked() && target >= c.limit {
			c.media.SeekTo(c.limit)
			c.capLocked()
			return
		}
		c.media.SeekTo(target)
		c.position = target
		c.emitTimeLocked()
	}
	c.setStateLocked(StateReady)
}

// capLocked stops playback at exactly the preview limit.
func (c *Controller) capLocked() {
	c.media.Pause()
	c.playPending = false
	c.position = c.limit
	c.setStateLocked(StatePaused)
	c.emitTimeLocked()
	c.raiseLimitLocked(false)
}

// raiseLimitLocked emits PreviewLimitReached once per crossing, or
// unconditionally when force is set.
func (c *Controller) raiseLimitLocked(force bool) {
	if c.limitReached && !force {
		return
	}
	c.limitReached = true
	c.logger.Info("preview limit reached", "track", c.trackID, "limit", c.limit)
	c.broadcast(func(s *Subscription) {
		s.sendPreviewLimit(PreviewLimitReached{TrackID: c.trackID, Limit: c.limit})
	})
}

func (c *Controller) endLocked() {
	if !c.state.HasMedia() {
		return
	}
	c.playPending = false
	c.position = 0
	c.limitReached = false
	c.setStateLocked(StateEnded)
	c.emitTimeLocked()
}

func (c *Controller) failLocked(err error) {
	if c.state == StatePlaying || c.playPending {
		c.media.Pause()
	}
	c.playPending = false
	c.buffering = false
	c.lastErr = err
	kind := KindOf(err)
	c.logger.Warn("playback error", "track", c.trackID, "kind", kind, "err", err)
	c.setStateLocked(StateErrored)
	c.broadcast(func(s *Subscription) {
		s.sendError(ErrorEvent{TrackID: c.trackID, Kind: kind, Err: err})
	})
}

func (c *Controller) setStateLocked(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	c.logger.Debug("state changed", "track", c.trackID, "from", prev, "to", next)
	e := StateChange{TrackID: c.trackID, Previous: prev, Current: next}
	c.broadcast(func(s *Subscription) { s.sendState(e) })
}

func (c *Controller) emitTimeLocked() {
	capped := c.auth == nil || !c.auth.Authenticated()
	e := TimeChange{
		Position: c.position,
		Progress: progressFraction(c.position, c.duration, c.limit, capped),
	}
	c.broadcast(func(s *Subscription) { s.sendTime(e) })
}

func (c *Controller) emitBufferLocked() {
	e := BufferChange{Fraction: c.buffered}
	c.broadcast(func(s *Subscription) { s.sendBuffer(e) })
}

func (c *Controller) broadcast(send func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		send(sub)
	}
}
