package state

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/llehouerou/dreamster/internal/db"
)

// migrations upgrade the database one version at a time. Append only.
var migrations = []string{
	// 1: preferences and recently opened tracks
	`CREATE TABLE preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		volume REAL NOT NULL DEFAULT 1.0,
		last_track_id TEXT
	);

	CREATE TABLE recent_tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		track_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		artist TEXT,
		opened_at INTEGER NOT NULL
	);

	CREATE INDEX idx_recent_tracks_opened_at ON recent_tracks(opened_at DESC);`,

	// 2: mute survives restarts
	`ALTER TABLE preferences ADD COLUMN muted INTEGER NOT NULL DEFAULT 0;`,
}

func initSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := db.Migrate(ctx, conn, migrations); err != nil {
		return fmt.Errorf("state schema: %w", err)
	}
	return nil
}
