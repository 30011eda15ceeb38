package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

const tickInterval = 250 * time.Millisecond

// maxSourceSize bounds the in-memory body. Tests lower it.
var maxSourceSize int64 = 512 << 20

var (
	// ErrNoSource is reported by Play when no decoded source is attached.
	ErrNoSource = errors.New("no source loaded")
	// ErrSourceTooLarge is reported when a body exceeds the buffer limit.
	ErrSourceTooLarge = errors.New("audio source too large")
)

// Player streams audio from an HTTP URL to the speaker.
//
// The whole body is buffered in memory before decoding so the decoded
// stream is seekable. Events are emitted from background goroutines.
type Player struct {
	mu        sync.Mutex
	client    *http.Client
	out       output
	listeners listeners

	state       State
	source      Source
	cancel      context.CancelFunc
	streamer    beep.StreamSeekCloser
	format      beep.Format
	outRate     beep.SampleRate
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	volumeLevel float64
	drained     bool
	stopTick    chan struct{}
}

// New creates a player that fetches sources with client.
// A nil client uses a client without a global timeout; loads are bounded
// by cancellation instead.
func New(client *http.Client) *Player {
	return newPlayer(client, &speakerOutput{})
}

func newPlayer(client *http.Client, out output) *Player {
	if client == nil {
		client = &http.Client{}
	}
	return &Player{
		client:      client,
		out:         out,
		state:       StateStopped,
		volumeLevel: 1.0,
	}
}

// Load stops the current source and starts fetching url in the background.
func (p *Player) Load(url string) Source {
	p.mu.Lock()
	p.stopLocked()
	p.source++
	src := p.source
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.state = StateLoading
	p.mu.Unlock()

	go p.fetch(ctx, src, url)
	return src
}

// State returns the internal player state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Listen registers fn for all events emitted by the player.
func (p *Player) Listen(fn Listener) func() {
	return p.listeners.add(fn)
}

// Close stops playback and releases the current source.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *Player) fetch(ctx context.Context, src Source, url string) {
	p.listeners.emit(src, Waiting{})

	streamer, format, err := p.open(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return // superseded or closed
		}
		p.fail(src, err)
		return
	}

	p.mu.Lock()
	if src != p.source {
		p.mu.Unlock()
		streamer.Close()
		return
	}
	if err := p.attachLocked(streamer, format); err != nil {
		p.mu.Unlock()
		streamer.Close()
		p.fail(src, err)
		return
	}
	duration := format.SampleRate.D(streamer.Len())
	p.mu.Unlock()

	p.listeners.emit(src, LoadedMetadata{Duration: duration})
	p.listeners.emit(src, Progress{BufferedEnd: duration})
	p.listeners.emit(src, CanPlayThrough{})
}

func (p *Player) fail(src Source, err error) {
	p.mu.Lock()
	if src == p.source && p.state == StateLoading {
		p.state = StateStopped
	}
	p.mu.Unlock()
	p.listeners.emit(src, Error{Err: err})
}

func (p *Player) open(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, beep.Format{}, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize+1))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("read stream: %w", err)
	}
	if int64(len(data)) > maxSourceSize {
		return nil, beep.Format{}, fmt.Errorf("%w: over %d bytes", ErrSourceTooLarge, int64(maxSourceSize))
	}

	kind := detectFormat(resp.Header.Get("Content-Type"), url, data)
	return decode(data, kind)
}

// attachLocked wires a decoded source into the output, paused.
func (p *Player) attachLocked(streamer beep.StreamSeekCloser, format beep.Format) error {
	rate, err := p.out.Init(format.SampleRate)
	if err != nil {
		return fmt.Errorf("init output: %w", err)
	}

	p.streamer = streamer
	p.format = format
	p.outRate = rate
	p.state = StatePaused
	p.chainLocked(true)
	p.queueLocked()
	return nil
}

// chainLocked builds the Ctrl, Resample and Volume chain over the decoded
// source. A resampler that reached the end of its input stays ended, so a
// drained source needs a new chain before it can play again.
func (p *Player) chainLocked(paused bool) {
	var s beep.Streamer = p.streamer
	if p.format.SampleRate != p.outRate {
		s = beep.Resample(4, p.format.SampleRate, p.outRate, p.streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: paused}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.volumeLevel <= 0,
	}
}

// queueLocked hands the volume chain to the output, followed by a
// callback that reports the natural end of the source.
func (p *Player) queueLocked() {
	src := p.source
	p.drained = false
	p.out.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the output goroutine with its lock held.
		go p.finished(src)
	})))
}

func (p *Player) finished(src Source) {
	p.mu.Lock()
	if src != p.source || !p.state.HasSource() {
		p.mu.Unlock()
		return
	}
	p.drained = true
	p.state = StatePaused
	p.stopTickerLocked()
	p.mu.Unlock()

	p.listeners.emit(src, Ended{})
}

// stopLocked releases the current source and cancels any in-flight fetch.
func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.stopTickerLocked()

	if p.state.HasSource() {
		p.out.Clear()
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.drained = false
	p.state = StateStopped
}
