package state

import (
	"database/sql"
	"errors"
)

// VolumeState represents the saved volume state.
type VolumeState struct {
	Volume float64
	Muted  bool
}

// Level returns the effective output level.
func (v VolumeState) Level() float64 {
	if v.Muted {
		return 0
	}
	return v.Volume
}

// GetVolume returns the saved volume state, full volume when nothing was saved.
func (m *Manager) GetVolume() (*VolumeState, error) {
	return getVolume(m.db)
}

func getVolume(db *sql.DB) (*VolumeState, error) {
	var volume float64
	var muted bool

	row := db.QueryRow(`SELECT volume, muted FROM preferences WHERE id = 1`)
	err := row.Scan(&volume, &muted)
	if errors.Is(err, sql.ErrNoRows) {
		return &VolumeState{Volume: 1.0, Muted: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &VolumeState{Volume: volume, Muted: muted}, nil
}

func saveVolume(db *sql.DB, v VolumeState) error {
	_, err := db.Exec(`
		INSERT INTO preferences (id, volume, muted)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted
	`, v.Volume, v.Muted)
	return err
}
