package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/ocmgr/common"
)

func tempProfileStore(t *testing.T) *ProfileStore {
	t.Helper()
	store, err := NewProfileStore(filepath.Join(t.TempDir(), "profiles.yaml"))
	require.NoError(t, err)
	return store
}

func TestProfileStoreAddAndGet(t *testing.T) {
	store := tempProfileStore(t)

	err := store.Add(&Profile{
		Name:      "work",
		Server:    "vpn.example.com",
		Username:  "alice",
		Authgroup: "staff",
	})
	require.NoError(t, err)

	p, err := store.GetByName("work")
	require.NoError(t, err)
	assert.Equal(t, "vpn.example.com", p.Server)
	assert.Equal(t, "alice", p.Username)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.Created.IsZero())
}

func TestProfileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")

	store, err := NewProfileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(&Profile{Name: "work", Server: "vpn.example.com", NoDTLS: true}))

	reloaded, err := NewProfileStore(path)
	require.NoError(t, err)
	p, err := reloaded.GetByName("work")
	require.NoError(t, err)
	assert.Equal(t, "vpn.example.com", p.Server)
	assert.True(t, p.NoDTLS)
}

func TestProfileStoreRejectsDuplicateName(t *testing.T) {
	store := tempProfileStore(t)
	require.NoError(t, store.Add(&Profile{Name: "work", Server: "a.example.com"}))

	err := store.Add(&Profile{Name: "work", Server: "b.example.com"})
	require.ErrorIs(t, err, common.ErrDuplicateName)
}

func TestProfileStoreRejectsInvalidProfile(t *testing.T) {
	store := tempProfileStore(t)

	require.ErrorIs(t, store.Add(&Profile{Server: "vpn.example.com"}), common.ErrInvalidProfile)
	require.ErrorIs(t, store.Add(&Profile{Name: "work"}), common.ErrInvalidProfile)
}

func TestProfileStoreRemove(t *testing.T) {
	store := tempProfileStore(t)
	require.NoError(t, store.Add(&Profile{Name: "work", Server: "vpn.example.com"}))

	require.NoError(t, store.Remove("work"))

	_, err := store.GetByName("work")
	require.ErrorIs(t, err, common.ErrProfileNotFound)
	require.ErrorIs(t, store.Remove("work"), common.ErrProfileNotFound)
}

func TestProfileStoreMarkUsed(t *testing.T) {
	store := tempProfileStore(t)
	require.NoError(t, store.Add(&Profile{Name: "work", Server: "vpn.example.com"}))

	require.NoError(t, store.MarkUsed("work"))

	p, err := store.GetByName("work")
	require.NoError(t, err)
	assert.False(t, p.LastUsed.IsZero())
}

func TestProfileStoreMissingFileIsEmpty(t *testing.T) {
	store := tempProfileStore(t)
	assert.Empty(t, store.List())
}
