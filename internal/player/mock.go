// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is a test double for Player.
//
// Nothing happens on its own: tests drive the mock with Emit and
// ResolvePlay, which deliver events and play outcomes to the code under test.
type Mock struct {
	mu           sync.Mutex
	listeners    listeners
	source       Source
	position     time.Duration
	volume       float64
	playing      bool
	closed       bool
	loadCalls    []string
	seekCalls    []time.Duration
	pauseCalls   int
	pendingPlays []func(error)
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{volume: 1}
}

func (m *Mock) Load(url string) Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, url)
	m.source++
	m.position = 0
	m.playing = false
	m.pendingPlays = nil
	return m.source
}

func (m *Mock) Play(done func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingPlays = append(m.pendingPlays, done)
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	m.playing = false
}

func (m *Mock) SeekTo(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, position)
	m.position = position
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = level
}

func (m *Mock) Listen(fn Listener) func() {
	return m.listeners.add(fn)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// Emit delivers e to the current listeners, tagged with the latest source.
// A TimeUpdate also moves the mock's position.
func (m *Mock) Emit(e Event) {
	m.mu.Lock()
	src := m.source
	if tu, ok := e.(TimeUpdate); ok {
		m.position = tu.Position
	}
	m.mu.Unlock()
	m.listeners.emit(src, e)
}

// EmitFrom delivers e tagged with an explicit source, to simulate late
// notifications from a superseded load.
func (m *Mock) EmitFrom(src Source, e Event) {
	m.listeners.emit(src, e)
}

// ResolvePlay settles the oldest pending Play call with err.
// It reports false when no Play call is pending.
func (m *Mock) ResolvePlay(err error) bool {
	m.mu.Lock()
	if len(m.pendingPlays) == 0 {
		m.mu.Unlock()
		return false
	}
	done := m.pendingPlays[0]
	m.pendingPlays = m.pendingPlays[1:]
	if err == nil {
		m.playing = true
	}
	m.mu.Unlock()
	done(err)
	return true
}

// TakePendingPlays removes and returns the pending Play callbacks without
// settling them.
func (m *Mock) TakePendingPlays() []func(error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.pendingPlays
	m.pendingPlays = nil
	return p
}

func (m *Mock) PendingPlays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pendingPlays)
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) ListenerCount() int { return m.listeners.count() }

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
