// internal/state/interface.go
package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetVolume() (*VolumeState, error)
	SaveVolume(v VolumeState)
	RecordOpened(t RecentTrack) error
	LastTrackID() (string, error)
	RecentTracks(limit int) ([]RecentTrack, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
