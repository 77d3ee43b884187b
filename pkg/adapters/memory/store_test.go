package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/tabula/pkg/adapters/memory"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunTableStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	s := domain.NewState(domain.ObjectInstance{Name: "n", Class: "node", Values: map[string]int{"v": 0}})
	snap := &domain.Snapshot{Domain: "iso", States: []*domain.State{s}}
	require.NoError(t, store.Save(ctx, "iso", snap))

	// Mutating the caller's copy must not leak into the store.
	s.Objects[0].Values["v"] = 7

	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	v, err := loaded.States[0].Value("n", "v")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}
