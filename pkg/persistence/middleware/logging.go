package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.TableStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level and failures at warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.TableStore) ports.TableStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, name string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "op", op, "table", name, "duration", time.Since(start))
	if err != nil {
		m.logger.Warn("table store operation failed", append(attrs, "error", err)...)
		return
	}
	m.logger.Debug("table store operation", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	start := time.Now()
	err := m.next.Save(ctx, name, snap)
	states := 0
	if snap != nil {
		states = len(snap.States)
	}
	m.log("save", name, start, err, "states", states)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	start := time.Now()
	snap, err := m.next.Load(ctx, name)
	m.log("load", name, start, err)
	return snap, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log("delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log("list", "*", start, err, "count", len(names))
	return names, err
}
