package enumerator

import (
	"errors"
	"testing"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestorePreservesIds(t *testing.T) {
	d, at := chainDomain(t, 5)
	e := New(d, domain.ExactHasher{})
	require.NoError(t, e.FindReachableStatesAndEnumerate(at(0)))

	snap := e.Snapshot()
	assert.Equal(t, "chain", snap.Domain)
	assert.Equal(t, "exact", snap.Hasher)
	require.Len(t, snap.States, 5)

	restored, err := Restore(d, domain.ExactHasher{}, snap)
	require.NoError(t, err)
	assert.Equal(t, e.NumStatesEnumerated(), restored.NumStatesEnumerated())

	for i, s := range e.States() {
		id, err := restored.EnumeratedID(s)
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}

	// Restored states count as visited.
	require.NoError(t, restored.FindReachableStatesAndEnumerate(at(0)))
	assert.Equal(t, 5, restored.NumStatesEnumerated())
}

func TestSnapshot_RestoreRejectsMismatch(t *testing.T) {
	d, at := chainDomain(t, 3)

	_, err := Restore(d, domain.ExactHasher{}, &domain.Snapshot{Domain: "other"})
	assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)

	_, err = Restore(d, domain.ExactHasher{}, &domain.Snapshot{
		Domain: "chain",
		States: []*domain.State{at(1), at(1)},
	})
	assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)

	_, err = Restore(d, domain.ExactHasher{}, &domain.Snapshot{
		Domain: "chain",
		States: []*domain.State{nil},
	})
	assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)
}

func TestSnapshot_CarriesInterruptedFrontier(t *testing.T) {
	transient := errors.New("transient")
	failing := true
	d, at := flakyChain(t, &failing, transient)

	e := New(d, domain.ExactHasher{})
	require.ErrorIs(t, e.FindReachableStatesAndEnumerate(at(0)), transient)

	snap := e.Snapshot()
	assert.Equal(t, []int{1}, snap.Unexpanded)

	failing = false
	restored, err := Restore(d, domain.ExactHasher{}, snap)
	require.NoError(t, err)
	require.NoError(t, restored.FindReachableStatesAndEnumerate(at(0)))
	assert.Equal(t, 4, restored.NumStatesEnumerated())
}

func TestSnapshot_RestoreRejectsBadInput(t *testing.T) {
	d, at := chainDomain(t, 3)

	_, err := Restore(d, domain.ExactHasher{}, nil)
	assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)

	_, err = Restore(d, domain.ExactHasher{}, &domain.Snapshot{
		Domain:     "chain",
		States:     []*domain.State{at(0)},
		Unexpanded: []int{3},
	})
	assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)
}
