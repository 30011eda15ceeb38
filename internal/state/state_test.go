package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestManager creates a manager backed by a fresh database file.
func openTestManager(t *testing.T) (*Manager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state", "test.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	return m, path
}

func TestGetVolume_Empty(t *testing.T) {
	m, _ := openTestManager(t)
	defer m.Close()

	v, err := m.GetVolume()
	if err != nil {
		t.Fatalf("GetVolume failed: %v", err)
	}
	if v.Volume != 1.0 || v.Muted {
		t.Errorf("GetVolume() = %+v, want full volume unmuted", v)
	}
}

func TestSaveVolume_FlushedOnClose(t *testing.T) {
	m, path := openTestManager(t)

	m.SaveVolume(VolumeState{Volume: 0.2})
	m.SaveVolume(VolumeState{Volume: 0.4, Muted: true})
	require.NoError(t, m.Close())

	reopened, err := OpenPath(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 0.4, v.Volume, 1e-9)
	assert.True(t, v.Muted)
	assert.InDelta(t, 0.0, v.Level(), 1e-9)
}

func TestSaveVolume_Debounced(t *testing.T) {
	m, _ := openTestManager(t)
	defer m.Close()

	m.SaveVolume(VolumeState{Volume: 0.7})

	v, err := m.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v.Volume, 1e-9, "write should wait for the debounce")

	require.Eventually(t, func() bool {
		v, err := m.GetVolume()
		return err == nil && v.Volume == 0.7
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRecordOpened_LastTrack(t *testing.T) {
	m, _ := openTestManager(t)
	defer m.Close()

	id, err := m.LastTrackID()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "trk_1", Title: "First"}))
	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "trk_2", Title: "Second", Artist: "Someone"}))

	id, err = m.LastTrackID()
	require.NoError(t, err)
	assert.Equal(t, "trk_2", id)
}

func TestRecordOpened_KeepsVolume(t *testing.T) {
	m, path := openTestManager(t)
	m.SaveVolume(VolumeState{Volume: 0.3})
	require.NoError(t, m.Close())

	m, err := OpenPath(path)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "trk_1", Title: "First"}))

	v, err := m.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 0.3, v.Volume, 1e-9)
}

func TestRecentTracks_NewestFirstAndDeduplicated(t *testing.T) {
	m, _ := openTestManager(t)
	defer m.Close()

	base := time.Unix(1_700_000_000, 0)
	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "a", Title: "A", OpenedAt: base}))
	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "b", Title: "B", Artist: "Band", OpenedAt: base.Add(time.Minute)}))
	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "a", Title: "A (remaster)", OpenedAt: base.Add(2 * time.Minute)}))

	tracks, err := m.RecentTracks(10)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "a", tracks[0].TrackID)
	assert.Equal(t, "A (remaster)", tracks[0].Title)
	assert.Empty(t, tracks[0].Artist)
	assert.Equal(t, "b", tracks[1].TrackID)
	assert.Equal(t, "Band", tracks[1].Artist)
	assert.True(t, tracks[1].OpenedAt.Equal(base.Add(time.Minute)))
}

func TestRecentTracks_Trimmed(t *testing.T) {
	m, _ := openTestManager(t)
	defer m.Close()

	base := time.Unix(1_700_000_000, 0)
	for i := range maxRecentTracks + 5 {
		tr := RecentTrack{
			TrackID:  "trk_" + string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Title:    "t",
			OpenedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, m.RecordOpened(tr))
	}

	tracks, err := m.RecentTracks(maxRecentTracks * 2)
	require.NoError(t, err)
	assert.Len(t, tracks, maxRecentTracks)
}

func TestOpenPath_ReopenKeepsData(t *testing.T) {
	m, path := openTestManager(t)
	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "x", Title: "X"}))
	require.NoError(t, m.Close())

	m, err := OpenPath(path)
	require.NoError(t, err)
	defer m.Close()

	id, err := m.LastTrackID()
	require.NoError(t, err)
	assert.Equal(t, "x", id)

	var version int
	require.NoError(t, m.db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version))
	assert.Equal(t, len(migrations), version)
}

func TestMock_RecordsTracks(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "one"}))
	require.NoError(t, m.RecordOpened(RecentTrack{TrackID: "two"}))

	id, _ := m.LastTrackID()
	assert.Equal(t, "two", id)

	recent, _ := m.RecentTracks(1)
	assert.Len(t, recent, 1)

	require.NoError(t, m.Close())
	assert.True(t, m.Closed())
}
