package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Set(ctx, "userCart", []byte(`[{"id":"a"}]`)))

	data, err := store.Get(ctx, "userCart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))
}

func TestFileStoreGetMissingSlot(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Get(context.Background(), "userCart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Set(ctx, "userCart", []byte("old")))
	require.NoError(t, store.Set(ctx, "userCart", []byte("new")))

	data, err := store.Get(ctx, "userCart")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Set(ctx, "userCart", []byte("data")))
	require.NoError(t, store.Remove(ctx, "userCart"))

	_, err := store.Get(ctx, "userCart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRemoveMissingSlot(t *testing.T) {
	store := NewFileStore(t.TempDir())
	assert.NoError(t, store.Remove(context.Background(), "userCart"))
}

func TestFileStoreCreatesDirOnWrite(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewFileStore(dir)

	require.NoError(t, store.Set(ctx, "userCart", []byte("[]")))

	data, err := store.Get(ctx, "userCart")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileStoreSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Set(ctx, "userCart", []byte("a")))
	require.NoError(t, store.Set(ctx, "other", []byte("b")))
	require.NoError(t, store.Remove(ctx, "other"))

	data, err := store.Get(ctx, "userCart")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}
