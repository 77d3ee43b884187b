package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/tabula/internal/adapters/file"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements TableStore
var _ ports.TableStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunTableStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_YAMLContract(t *testing.T) {
	ports.RunTableStoreContract(t, file.NewYAML(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := file.NewYAML(dir)
	require.NoError(t, store.Save(ctx, "grid", &domain.Snapshot{Domain: "grid"}))

	_, err := os.Stat(filepath.Join(dir, "grid.yaml"))
	assert.NoError(t, err)

	// A JSON store over the same directory ignores YAML tables.
	names, err := file.New(dir).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFileStore_EmptyName(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", &domain.Snapshot{}))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

var _ ports.DistributedLocker = (*file.Locker)(nil)

func TestLocker_Exclusive(t *testing.T) {
	dir := t.TempDir()
	locker := file.NewLocker(dir)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "grid", time.Second)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = file.NewLocker(dir).Lock(waitCtx, "grid", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock, err = file.NewLocker(dir).Lock(ctx, "grid", time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))

	// Lock files never show up as tables.
	names, err := file.New(dir).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocker_EmptyKey(t *testing.T) {
	_, err := file.NewLocker(t.TempDir()).Lock(context.Background(), "", time.Second)
	assert.Error(t, err)
}
