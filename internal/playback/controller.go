// internal/playback/controller.go
package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/dreamster/internal/player"
)

// Authenticator reports whether the current viewer has full access.
type Authenticator interface {
	Authenticated() bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for session diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPreviewLimit overrides PreviewLimit.
func WithPreviewLimit(d time.Duration) Option {
	return func(c *Controller) { c.limit = d }
}

// Controller drives one media primitive through playback sessions and
// enforces the preview limit for viewers without access.
//
// Every Load starts a new session. Events and play outcomes belonging to a
// previous session are discarded. The only place where natural playback can
// cross the preview limit is handleTimeUpdate; Play and Seek refuse
// obviously capped requests up front.
//
// Operations never block on the media primitive and never return errors:
// failures surface as the Errored state and an ErrorEvent.
type Controller struct {
	mu     sync.Mutex
	media  player.Interface
	auth   Authenticator
	limit  time.Duration
	logger *log.Logger

	gen      uint64
	source   player.Source
	unlisten func()
	closed   bool

	trackID      string
	sourceURL    string
	state        State
	position     time.Duration
	duration     time.Duration
	buffered     float64
	buffering    bool
	volume       float64
	lastErr      error
	hasMetadata  bool
	playThrough  bool
	limitReached bool
	playPending  bool
	seekPending  bool
	pendingSeek  time.Duration

	subs   []*Subscription
	subsMu sync.RWMutex
}

// New creates a controller attached to media. A nil auth treats every
// viewer as unauthenticated.
func New(media player.Interface, auth Authenticator, opts ...Option) *Controller {
	c := &Controller{
		media:  media,
		auth:   auth,
		limit:  PreviewLimit,
		logger: log.New(io.Discard),
		volume: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load starts a new session for trackID playing sourceURL.
// An empty sourceURL puts the session straight into Errored with
// ErrSourceUnavailable.
func (c *Controller) Load(trackID, sourceURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.detachLocked()
	c.trackID = trackID
	c.sourceURL = sourceURL
	c.position = 0
	c.duration = 0
	c.buffered = 0
	c.buffering = false
	c.lastErr = nil
	c.hasMetadata = false
	c.playThrough = false
	c.limitReached = false
	c.seekPending = false
	c.pendingSeek = 0

	if sourceURL == "" {
		c.emitTimeLocked()
		c.failLocked(fmt.Errorf("%w: track %s", ErrSourceUnavailable, trackID))
		return
	}

	c.logger.Debug("loading track", "track", trackID, "url", sourceURL)
	c.setStateLocked(StateLoading)
	c.emitTimeLocked()
	c.emitBufferLocked()

	gen := c.gen
	c.unlisten = c.media.Listen(func(src player.Source, e player.Event) {
		c.handle(gen, src, e)
	})
	c.source = c.media.Load(sourceURL)
}

// Play starts or resumes playback. It is a no-op unless the session is
// Ready, Paused, Ended, or Errored after a rejected play. Playing from
// Ended restarts at the beginning.
//
// The outcome arrives later as a transition to Playing or Errored.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.playPending {
		return
	}

	retry := c.state == StateErrored && KindOf(c.lastErr).Recoverable()
	if !c.state.IsPlayable() && !retry {
		c.logger.Debug("play ignored", "track", c.trackID, "state", c.state)
		return
	}

	if c.state == StateEnded {
		c.position = 0
		c.media.SeekTo(0)
		c.emitTimeLocked()
	}

	if !c.authorizedLocked() && c.position >= c.limit {
		c.setStateLocked(StatePaused)
		c.raiseLimitLocked(true)
		return
	}

	c.playPending = true
	gen := c.gen
	c.media.Play(func(err error) {
		c.settlePlay(gen, err)
	})
}

// Pause pauses playback. It is a no-op unless playing or a play request
// is pending.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || (c.state != StatePlaying && !c.playPending) {
		return
	}

	wasPlaying := c.state == StatePlaying
	c.playPending = false
	c.media.Pause()

	if !wasPlaying {
		return
	}

	pos := clampPosition(c.media.Position(), c.duration)
	if !c.authorizedLocked() && pos >= c.limit {
		c.capLocked()
		return
	}
	c.position = pos
	c.setStateLocked(StatePaused)
	c.emitTimeLocked()
}

// Seek moves playback to target, clamped to the track. For viewers without
// access a target at or past the preview limit lands exactly on the limit,
// pauses, and raises PreviewLimitReached.
//
// While Loading the target is kept and applied once the session is Ready
// and the duration is known.
func (c *Controller) Seek(target time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || (!c.state.HasMedia() && c.state != StateLoading) {
		return
	}

	target = clampPosition(target, c.duration)

	if c.state == StateLoading {
		c.seekPending = true
		c.pendingSeek = target
		if c.authorizedLocked() || target < c.limit {
			c.position = target
			c.emitTimeLocked()
		}
		return
	}

	if !c.authorizedLocked() && target >= c.limit {
		c.media.SeekTo(c.limit)
		c.capLocked()
		return
	}

	c.media.SeekTo(target)
	c.position = target
	if target < c.limit {
		c.limitReached = false
	}
	if c.state == StateEnded {
		c.setStateLocked(StatePaused)
	}
	c.emitTimeLocked()
}

// SetVolume sets the output level, clamped to [0, 1]. Subscribers see
// a VolumeChange when the level actually changes.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	v = clampVolume(v)
	changed := v != c.volume
	c.volume = v
	c.media.SetVolume(v)
	if changed {
		e := VolumeChange{Volume: v}
		c.broadcast(func(s *Subscription) { s.sendVolume(e) })
	}
}

// AuthChanged re-reads the authentication state. A viewer who just gained
// access has the preview limit lifted on the current session.
func (c *Controller) AuthChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.authorizedLocked() {
		c.logger.Info("preview limit lifted", "track", c.trackID)
		c.emitTimeLocked()
		return
	}

	if c.state == StatePlaying && c.position >= c.limit {
		c.capLocked()
	}
}

// Teardown ends the current session and releases the listener on the
// media primitive. It is safe to call more than once.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
}

// Close tears down the session and closes all subscriptions.
// The media primitive itself is left open for the next controller.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.teardownLocked()
	c.closed = true
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()

	return nil
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Session returns a snapshot of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	authed := c.authorizedLocked()
	return Session{
		TrackID:       c.trackID,
		SourceURL:     c.sourceURL,
		State:         c.state,
		Authenticated: authed,
		Position:      c.position,
		Duration:      c.duration,
		Progress:      progressFraction(c.position, c.duration, c.limit, !authed),
		Buffered:      c.buffered,
		Buffering:     c.buffering,
		Volume:        c.volume,
		PreviewLimit:  c.limit,
		LimitReached:  c.limitReached,
		LastError:     c.lastErr,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Position returns the current session position.
func (c *Controller) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *Controller) teardownLocked() {
	if c.closed {
		return
	}
	c.detachLocked()
	c.setStateLocked(StateIdle)
	c.trackID = ""
	c.sourceURL = ""
	c.position = 0
	c.duration = 0
	c.buffered = 0
	c.buffering = false
	c.lastErr = nil
	c.limitReached = false
	c.seekPending = false
	c.pendingSeek = 0
}

// detachLocked releases the current listener, silences the media and
// invalidates callbacks from the current session.
func (c *Controller) detachLocked() {
	if c.unlisten != nil {
		c.unlisten()
		c.unlisten = nil
	}
	if c.state == StatePlaying || c.playPending {
		c.media.Pause()
	}
	c.playPending = false
	c.gen++
}

// authorizedLocked reads the authentication state. Access lifts any
// pending limit signal.
func (c *Controller) authorizedLocked() bool {
	if c.auth == nil || !c.auth.Authenticated() {
		return false
	}
	c.limitReached = false
	return true
}
