package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/rpda/pkg/adapters/file"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, file.New(t.TempDir()))
}

func TestStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	snap := &domain.Snapshot{State: "q1", Stack: []domain.Symbol{"X"}, LastConsumed: "a", Steps: 1}
	require.NoError(t, store.Save(ctx, "s1", snap))
	require.NoError(t, store.Save(ctx, "s1", snap))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "s1.json", entries[0].Name())

	// Stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.Load(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, "nope"))
}

func TestStore_InvalidID(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Save(ctx, id, domain.NewSnapshot("q0")), "id %q", id)
	}
}
