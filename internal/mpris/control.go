// Package mpris exposes the track view's controller to desktop media keys
// over the MPRIS D-Bus interface.
package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/llehouerou/dreamster/internal/playback"
)

// Player is the controller surface driven by media keys. Every request
// goes through the controller so the preview limit applies to media keys
// as well.
type Player interface {
	Play()
	Pause()
	Seek(target time.Duration)
	SetVolume(v float64)
	Session() playback.Session
}

// Metadata describes the track currently shown.
type Metadata struct {
	TrackID    string
	Title      string
	Artist     string
	ArtworkURL string
	Duration   time.Duration
}

// Status mirrors the MPRIS playback status.
type Status string

const (
	StatusPlaying Status = "Playing"
	StatusPaused  Status = "Paused"
	StatusStopped Status = "Stopped"
)

// controls maps MPRIS requests onto the attached player. With nothing
// attached every request is a no-op.
type controls struct {
	mu     sync.RWMutex
	player Player
	meta   Metadata
}

func (c *controls) attach(p Player, meta Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = p
	c.meta = meta
}

func (c *controls) current() (Player, Metadata) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player, c.meta
}

func (c *controls) play() {
	if p, _ := c.current(); p != nil {
		p.Play()
	}
}

func (c *controls) pause() {
	if p, _ := c.current(); p != nil {
		p.Pause()
	}
}

func (c *controls) playPause() {
	p, _ := c.current()
	if p == nil {
		return
	}
	if p.Session().IsPlaying() {
		p.Pause()
		return
	}
	p.Play()
}

func (c *controls) seekBy(offset time.Duration) {
	p, _ := c.current()
	if p == nil {
		return
	}
	p.Seek(p.Session().Position + offset)
}

// setPosition seeks only when objectPath still names the current track.
func (c *controls) setPosition(objectPath string, pos time.Duration) {
	p, meta := c.current()
	if p == nil || objectPath != trackObjectPath(meta.TrackID) {
		return
	}
	p.Seek(pos)
}

func (c *controls) setVolume(v float64) {
	if p, _ := c.current(); p != nil {
		p.SetVolume(v)
	}
}

func (c *controls) session() (playback.Session, bool) {
	p, _ := c.current()
	if p == nil {
		return playback.Session{}, false
	}
	return p.Session(), true
}

func (c *controls) status() Status {
	s, ok := c.session()
	if !ok {
		return StatusStopped
	}
	switch s.State {
	case playback.StatePlaying:
		return StatusPlaying
	case playback.StateReady, playback.StatePaused:
		return StatusPaused
	default:
		return StatusStopped
	}
}

func trackObjectPath(trackID string) string {
	if trackID == "" {
		return "/org/mpris/MediaPlayer2/TrackList/NoTrack"
	}
	h := fnv.New64a()
	h.Write([]byte(trackID))
	return fmt.Sprintf("/org/dreamster/Track/%x", h.Sum64())
}
