package player

import (
	"fmt"
	"time"
)

// Play resumes the attached source. done is called from another goroutine
// with nil once audio flows, or with ErrNoSource.
func (p *Player) Play(done func(error)) {
	p.mu.Lock()
	if !p.state.HasSource() {
		p.mu.Unlock()
		go done(ErrNoSource)
		return
	}

	if p.drained {
		p.chainLocked(true)
		p.queueLocked()
	}
	p.out.Lock()
	p.ctrl.Paused = false
	p.out.Unlock()
	p.state = StatePlaying

	src := p.source
	p.startTickerLocked(src)
	p.mu.Unlock()

	go func() {
		done(nil)
		p.listeners.emit(src, Playing{})
	}()
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying || p.ctrl == nil {
		return
	}
	p.out.Lock()
	p.ctrl.Paused = true
	p.out.Unlock()
	p.state = StatePaused
	p.stopTickerLocked()
}

// SeekTo moves playback to an absolute position, clamped to the source.
func (p *Player) SeekTo(position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.HasSource() {
		return
	}

	n := min(max(p.format.SampleRate.N(position), 0), p.streamer.Len())

	p.out.Lock()
	err := p.streamer.Seek(n)
	p.out.Unlock()

	if err != nil {
		src := p.source
		go p.listeners.emit(src, Error{Err: fmt.Errorf("seek: %w", err)})
	}
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	p.out.Lock()
	pos := p.streamer.Position()
	p.out.Unlock()
	return p.format.SampleRate.D(pos)
}

func (p *Player) startTickerLocked(src Source) {
	p.stopTickerLocked()
	stop := make(chan struct{})
	p.stopTick = stop
	go p.tickLoop(src, stop)
}

func (p *Player) stopTickerLocked() {
	if p.stopTick != nil {
		close(p.stopTick)
		p.stopTick = nil
	}
}

// tickLoop emits TimeUpdate events until stop is closed.
func (p *Player) tickLoop(src Source, stop <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.listeners.emit(src, TimeUpdate{Position: p.Position()})
		}
	}
}
