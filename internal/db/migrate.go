package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate brings the schema up to len(steps). steps[i] upgrades a version i
// database to version i+1; each step runs in its own transaction together
// with the version bump.
func Migrate(ctx context.Context, db *sql.DB, steps []string) (int, error) {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return 0, fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if version > len(steps) {
		return version, fmt.Errorf("schema version %d is newer than this build (%d)", version, len(steps))
	}

	for i := version; i < len(steps); i++ {
		err := WithTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, steps[i]); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `DELETE FROM schema_version`)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, i+1)
			return err
		})
		if err != nil {
			return i, fmt.Errorf("migrate to version %d: %w", i+1, err)
		}
	}
	return len(steps), nil
}
