package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveReadRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated_contracts")
	store, err := New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	name := "contract_reservation_7_details_3.pdf"

	require.NoError(t, store.Save(ctx, name, []byte("first")))
	require.NoError(t, store.Save(ctx, name, []byte("second")))

	data, err := store.Read(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// Временные файлы не остаются в каталоге
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, store.Remove(ctx, name))
	_, err = store.Read(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RemoveMissing(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "missing.pdf"))
}

func TestStore_InvalidName(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b.pdf", `a\b.pdf`} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, store.Save(ctx, name, []byte("x")), ErrInvalidName)
			_, err := store.Read(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}
