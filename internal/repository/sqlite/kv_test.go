package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*KVStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "baku.db")
	store, err := NewKVStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestKVStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	value, ok, err := store.Get(context.Background(), "baku_xp")

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestKVStore_SetOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "hasSeenOnboarding", "false"))
	require.NoError(t, store.Set(ctx, "hasSeenOnboarding", "true"))

	value, ok, err := store.Get(ctx, "hasSeenOnboarding")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestKVStore_SetMany(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.SetMany(ctx, map[string]string{
		"baku_xp":    "120",
		"baku_level": "2",
	})
	require.NoError(t, err)

	xp, _, err := store.Get(ctx, "baku_xp")
	assert.NoError(t, err)
	assert.Equal(t, "120", xp)

	level, _, err := store.Get(ctx, "baku_level")
	assert.NoError(t, err)
	assert.Equal(t, "2", level)
}

func TestKVStore_PersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "baku_xp", "40"))
	require.NoError(t, store.Close())

	reopened, err := NewKVStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "baku_xp")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "40", value)
}
