package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// WriteDomainFile writes content into a fresh temporary directory and returns the file path.
// It fails the test immediately on error.
func WriteDomainFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write domain file")
	return path
}

// SlipperyChain builds a chain of positions [0, size) with a single seed at 0.
// "right" moves one step with probability 1-slip and stays put otherwise; it is
// not applicable at the last position.
func SlipperyChain(t *testing.T, size int, slip float64) (*domain.Domain, []*domain.State) {
	t.Helper()

	b := dsl.New("chain").WithRand(func() float64 { return 0 })
	b.Class("agent").Int("pos", 0, size-1)
	b.Seed(dsl.Object("a0", "agent").Set("pos", 0))

	right := b.Action("right").When(dsl.Compare("a0", "pos", "<", size-1))
	if slip > 0 {
		right.Outcome(1-slip, dsl.Add("a0", "pos", 1)).Outcome(slip)
	} else {
		right.Deterministic(dsl.Add("a0", "pos", 1))
	}

	d, seeds, err := b.Build()
	require.NoError(t, err, "Failed to build chain domain")
	return d, seeds
}
