package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/dreamster/internal/db"
)

// maxRecentTracks bounds the recent_tracks table.
const maxRecentTracks = 50

// RecentTrack is a track the listener opened.
type RecentTrack struct {
	TrackID  string
	Title    string
	Artist   string
	OpenedAt time.Time
}

// RecordOpened marks trackID as the last opened track and adds it to the
// recent list, keeping only the newest entries.
func (m *Manager) RecordOpened(t RecentTrack) error {
	if t.OpenedAt.IsZero() {
		t.OpenedAt = time.Now()
	}
	return db.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO preferences (id, last_track_id) VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET last_track_id = excluded.last_track_id
		`, t.TrackID); err != nil {
			return err
		}

		if _, err := tx.Exec(`
			INSERT INTO recent_tracks (track_id, title, artist, opened_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(track_id) DO UPDATE SET
				title = excluded.title,
				artist = excluded.artist,
				opened_at = excluded.opened_at
		`, t.TrackID, t.Title, db.NullString(t.Artist), t.OpenedAt.UnixNano()); err != nil {
			return err
		}

		_, err := tx.Exec(`
			DELETE FROM recent_tracks WHERE id NOT IN (
				SELECT id FROM recent_tracks ORDER BY opened_at DESC LIMIT ?
			)
		`, maxRecentTracks)
		return err
	})
}

// LastTrackID returns the last opened track, "" when none.
func (m *Manager) LastTrackID() (string, error) {
	var id sql.NullString
	err := m.db.QueryRow(`SELECT last_track_id FROM preferences WHERE id = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return db.NullStringValue(id), nil
}

// RecentTracks returns up to limit recently opened tracks, newest first.
func (m *Manager) RecentTracks(limit int) ([]RecentTrack, error) {
	rows, err := m.db.Query(`
		SELECT track_id, title, artist, opened_at
		FROM recent_tracks
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []RecentTrack
	for rows.Next() {
		var (
			t      RecentTrack
			artist sql.NullString
			opened int64
		)
		if err := rows.Scan(&t.TrackID, &t.Title, &artist, &opened); err != nil {
			return nil, err
		}
		t.Artist = db.NullStringValue(artist)
		t.OpenedAt = time.Unix(0, opened)
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
