package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/tabula/pkg/domain"
)

// Store implements ports.TableStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

// Save persists a copy of the snapshot.
func (s *Store) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil: %w", domain.ErrSnapshotMismatch)
	}
	copied := cloneSnapshot(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves a copy of the snapshot so callers cannot mutate the stored table.
func (s *Store) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[name]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return cloneSnapshot(snap), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored snapshot names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cloneSnapshot(snap *domain.Snapshot) *domain.Snapshot {
	out := *snap
	out.States = make([]*domain.State, len(snap.States))
	for i, st := range snap.States {
		out.States[i] = st.Clone()
	}
	if snap.Sealed != nil {
		out.Sealed = append([]byte(nil), snap.Sealed...)
	}
	if snap.Unexpanded != nil {
		out.Unexpanded = append([]int(nil), snap.Unexpanded...)
	}
	return &out
}
