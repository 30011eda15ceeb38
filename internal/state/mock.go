// internal/state/mock.go
package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu     sync.Mutex
	volume *VolumeState
	recent []RecentTrack
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetVolume() (*VolumeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volume == nil {
		return &VolumeState{Volume: 1.0}, nil
	}
	v := *m.volume
	return &v, nil
}

func (m *Mock) SaveVolume(v VolumeState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = &v
}

func (m *Mock) RecordOpened(t RecentTrack) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent = append([]RecentTrack{t}, m.recent...)
	return nil
}

func (m *Mock) LastTrackID() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.recent) == 0 {
		return "", nil
	}
	return m.recent[0].TrackID, nil
}

func (m *Mock) RecentTracks(limit int) ([]RecentTrack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecentTrack(nil), m.recent[:min(limit, len(m.recent))]...), nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
