package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/tabula/pkg/ports"
	"github.com/gofrs/flock"
)

// Locker implements ports.DistributedLocker with advisory file locks.
// Each key gets a "<key>.lock" file next to the table files.
type Locker struct {
	BasePath string
	interval time.Duration
}

// NewLocker creates a Locker over basePath, defaulting like New.
func NewLocker(basePath string) *Locker {
	if basePath == "" {
		basePath = filepath.Join(".tabula", "tables")
	}
	return &Locker{BasePath: basePath, interval: 50 * time.Millisecond}
}

// Lock retries until the file lock is held or ctx is done.
// The lock dies with the process, so ttl is not needed and is ignored.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	if key == "" {
		return nil, fmt.Errorf("lock key cannot be empty")
	}
	if err := os.MkdirAll(l.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(filepath.Join(l.BasePath, key+".lock"))
	ok, err := fl.TryLockContext(ctx, l.interval)
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s is held elsewhere", fl.Path())
	}
	return func(context.Context) error { return fl.Unlock() }, nil
}
