package ports

import (
	"context"

	"github.com/aretw0/tabula/pkg/domain"
)

// TableStore defines the interface for persisting enumeration tables.
// A restored table keeps every id, so tabulated states stay valid across runs.
type TableStore interface {
	// Save persists the snapshot under name, replacing any previous one.
	Save(ctx context.Context, name string, snap *domain.Snapshot) error

	// Load retrieves the snapshot stored under name.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Snapshot, error)

	// Delete removes the snapshot stored under name.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored snapshots.
	List(ctx context.Context) ([]string, error)
}
