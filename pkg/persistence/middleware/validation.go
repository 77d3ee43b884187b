package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/ports"
)

type validationMiddleware struct {
	next ports.TableStore
}

// NewValidationMiddleware rejects malformed tables on both Save and Load with
// domain.ErrSnapshotMismatch, so a corrupt table never reaches an enumerator.
func NewValidationMiddleware() Middleware {
	return func(next ports.TableStore) ports.TableStore {
		return &validationMiddleware{next: next}
	}
}

func validate(snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil table: %w", domain.ErrSnapshotMismatch)
	}
	if snap.Domain == "" {
		return fmt.Errorf("table has no domain: %w", domain.ErrSnapshotMismatch)
	}
	for i, s := range snap.States {
		if s == nil {
			return fmt.Errorf("state %d is nil: %w", i, domain.ErrSnapshotMismatch)
		}
	}
	return nil
}

func (m *validationMiddleware) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	if err := validate(snap); err != nil {
		return err
	}
	return m.next.Save(ctx, name, snap)
}

func (m *validationMiddleware) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	snap, err := m.next.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := validate(snap); err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}
	return snap, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
