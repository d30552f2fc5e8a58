package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/rpda/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := &domain.Snapshot{
			State:        "q1",
			Stack:        []domain.Symbol{"X", "Y"},
			LastConsumed: "a",
			Steps:        2,
		}

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap, loaded)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		snap := domain.NewSnapshot("q0")
		require.NoError(t, store.Save(ctx, sessionID, snap))

		// Mutating the caller's copy must not leak into the store.
		snap.Stack = append(snap.Stack, "Z")
		snap.State = "changed"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "q0", loaded.State)
		assert.Empty(t, loaded.Stack)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSnapshot("q0"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSnapshot("q0"))
		_ = store.Save(ctx, id2, domain.NewSnapshot("q0"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
