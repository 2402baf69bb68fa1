package readstate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DatabaseFile)

	store, err := NewSQLiteStore(path, "default")
	require.NoError(t, err)

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save("2.0.0"))
	require.NoError(t, store.Save("2.1.0"))

	version, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2.1.0", version)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path, "default")
	require.NoError(t, err)
	defer reopened.Close()

	version, ok, err = reopened.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2.1.0", version)
}

func TestSQLiteStore_ProfilesAreIndependent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DatabaseFile)

	work, err := NewSQLiteStore(path, "work")
	require.NoError(t, err)
	defer work.Close()
	require.NoError(t, work.Save("3.0.0"))

	home, err := NewSQLiteStore(path, "home")
	require.NoError(t, err)
	defer home.Close()

	_, ok, err := home.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_WithTracker(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), DatabaseFile), "default")
	require.NoError(t, err)

	cat := catalogue("3.0", "2.5")
	tracker := NewTracker(store)
	assert.Equal(t, 2, tracker.UnreadCount(cat))
	tracker.Acknowledge(cat)
	assert.Equal(t, 0, tracker.UnreadCount(cat))
	require.NoError(t, tracker.Close())
}
