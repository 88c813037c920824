package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Record(KindConnect, "vpn.example.com", 100))
	require.NoError(t, store.Record(KindDisconnect, "vpn.example.com", 100))
	require.NoError(t, store.Record(KindStale, "", 200))

	events, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first.
	assert.Equal(t, KindStale, events[0].Kind)
	assert.Equal(t, KindDisconnect, events[1].Kind)
	assert.Equal(t, KindConnect, events[2].Kind)
	assert.Equal(t, "vpn.example.com", events[2].Server)
	assert.Equal(t, 100, events[2].PID)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Time.IsZero())
}

func TestRecentHonorsLimit(t *testing.T) {
	store := tempStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(KindConnect, "vpn.example.com", i+1))
	}

	events, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, 5, events[0].PID)
	assert.Equal(t, 4, events[1].PID)
}

func TestRecentEmpty(t *testing.T) {
	store := tempStore(t)

	events, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(KindConnect, "vpn.example.com", 1))
}
