package enumerator

import (
	"fmt"
	"time"

	"github.com/aretw0/tabula/pkg/domain"
)

// Snapshot captures the table for persistence. States are shared, not copied.
func (e *Enumerator) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Domain:     e.domain.Name,
		Hasher:     domain.HasherName(e.hasher),
		States:     e.States(),
		CreatedAt:  time.Now().UTC(),
		Unexpanded: e.table.pending(),
	}
}

// Restore rebuilds an Enumerator from a snapshot, preserving every id and the
// frontier of an interrupted pass.
// It fails with domain.ErrSnapshotMismatch if the snapshot belongs to another
// domain or if two of its states collapse to the same key under hasher.
func Restore(d *domain.Domain, hasher domain.StateHasher, snap *domain.Snapshot, opts ...Option) (*Enumerator, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil: %w", domain.ErrSnapshotMismatch)
	}
	if snap.Domain != d.Name {
		return nil, fmt.Errorf("snapshot domain %q, want %q: %w", snap.Domain, d.Name, domain.ErrSnapshotMismatch)
	}

	e := New(d, hasher, opts...)
	for i, s := range snap.States {
		if s == nil {
			return nil, fmt.Errorf("snapshot state %d is nil: %w", i, domain.ErrSnapshotMismatch)
		}
		id, isNew := e.table.add(hasher.Key(s), s)
		if !isNew {
			return nil, fmt.Errorf("snapshot states %d and %d are equivalent: %w", id, i, domain.ErrSnapshotMismatch)
		}
	}

	pending := make(map[int]bool, len(snap.Unexpanded))
	for _, id := range snap.Unexpanded {
		if id < 0 || id >= e.table.len() {
			return nil, fmt.Errorf("unexpanded id %d not in [0, %d): %w", id, e.table.len(), domain.ErrSnapshotMismatch)
		}
		pending[id] = true
	}
	for id := range e.table.len() {
		if !pending[id] {
			e.table.markExpanded(id)
		}
	}

	e.logger.Debug("enumeration table restored", "states", e.table.len(), "pending", len(pending))
	return e, nil
}
