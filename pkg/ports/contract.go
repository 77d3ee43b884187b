package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractSnapshot(states ...int) *domain.Snapshot {
	snap := &domain.Snapshot{
		Domain:    "contract",
		Hasher:    "exact",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, v := range states {
		snap.States = append(snap.States, domain.NewState(domain.ObjectInstance{
			Name: "n", Class: "node", Values: map[string]int{"v": v},
		}))
	}
	return snap
}

// RunTableStoreContract runs a suite of tests to verify that a TableStore implementation
// adheres to the defined interface contract.
func RunTableStoreContract(t *testing.T, store TableStore) {
	ctx := context.Background()
	name := "contract-table-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := contractSnapshot(3, 1, 2)
		snap.Unexpanded = []int{2}

		err := store.Save(ctx, name, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Domain, loaded.Domain)
		assert.Equal(t, snap.Hasher, loaded.Hasher)
		assert.True(t, snap.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, snap.Unexpanded, loaded.Unexpanded)

		// Order is the id assignment and must survive the round trip.
		require.Len(t, loaded.States, 3)
		h := domain.ExactHasher{}
		for i := range snap.States {
			assert.Equal(t, h.Key(snap.States[i]), h.Key(loaded.States[i]), "state %d", i)
		}
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractSnapshot(1)))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Len(t, loaded.States, 1)
	})

	t.Run("Save Nil", func(t *testing.T) {
		err := store.Save(ctx, name+"-nil", nil)
		assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, name, contractSnapshot(0))
		require.NoError(t, err)

		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, contractSnapshot(0))
		_ = store.Save(ctx, id2, contractSnapshot(1))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
