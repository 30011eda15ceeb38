package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "dreamster"
	dbFileName   = "dreamster.db"
	saveDebounce = 500 * time.Millisecond
	openTimeout  = 5 * time.Second
)

// Manager persists listener preferences across runs. Nothing about a
// playback session is stored here.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *VolumeState
}

// Open opens the database under the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens or creates the database at path.
func OpenPath(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	// One writer at a time; the debounced volume save runs on a timer goroutine.
	conn.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()
	if err := initSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Manager{db: conn}, nil
}

// Close flushes a pending volume save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	var err error
	if pending != nil {
		err = saveVolume(m.db, *pending)
	}
	return errors.Join(err, m.db.Close())
}

// SaveVolume schedules the volume level to be persisted. Rapid changes
// (holding a volume key) collapse into a single write.
func (m *Manager) SaveVolume(v VolumeState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &v

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
