//go:build linux

package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter serves MPRIS over D-Bus for whichever controller is attached.
type Adapter struct {
	controls *controls
	server   *server.Server
}

// New creates and starts a new MPRIS adapter.
func New() (*Adapter, error) {
	a := &Adapter{controls: &controls{}}

	a.server = server.NewServer("dreamster", &rootAdapter{}, &playerAdapter{c: a.controls})

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Attach routes media keys to p, which plays the track described by meta.
// Attach(nil, Metadata{}) detaches.
func (a *Adapter) Attach(p Player, meta Metadata) {
	a.controls.attach(p, meta)
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	a.controls.attach(nil, Metadata{})
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Dreamster", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	c *controls
}

func (p *playerAdapter) Next() error {
	return nil // Single track view
}

func (p *playerAdapter) Previous() error {
	return nil // Single track view
}

func (p *playerAdapter) Pause() error {
	p.c.pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.c.playPause()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.c.pause()
	return nil
}

func (p *playerAdapter) Play() error {
	p.c.play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.c.seekBy(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	p.c.setPosition(trackID, time.Duration(position)*time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.c.status() {
	case StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case StatusPaused:
		return types.PlaybackStatusPaused, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	_, meta := p.c.current()
	if meta.TrackID == "" {
		return types.Metadata{}, nil
	}

	duration := meta.Duration
	if s, ok := p.c.session(); ok && s.Duration > 0 {
		duration = s.Duration
	}

	return types.Metadata{
		TrackId: dbus.ObjectPath(trackObjectPath(meta.TrackID)),
		Length:  types.Microseconds(duration.Microseconds()),
		Title:   meta.Title,
		Artist:  []string{meta.Artist},
		ArtUrl:  meta.ArtworkURL,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	s, ok := p.c.session()
	if !ok {
		return 1.0, nil
	}
	return s.Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.c.setVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	s, _ := p.c.session()
	return s.Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	s, ok := p.c.session()
	return ok && s.ControlsEnabled(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	s, ok := p.c.session()
	return ok && s.IsPlaying(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	s, ok := p.c.session()
	return ok && s.State.HasMedia(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
