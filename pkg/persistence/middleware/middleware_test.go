package middleware_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/tabula/internal/adapters/file"
	"github.com/aretw0/tabula/pkg/adapters/memory"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/persistence/middleware"
	"github.com/aretw0/tabula/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func encryption(t *testing.T, cfg middleware.EncryptionConfig) middleware.Middleware {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw
}

func snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Domain:    "grid",
		Hasher:    "exact",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		States: []*domain.State{
			domain.NewState(domain.ObjectInstance{Name: "a0", Class: "agent", Values: map[string]int{"x": 4}}),
		},
	}
}

func TestChain_Contract(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
		encryption(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)
	ports.RunTableStoreContract(t, store)

	assert.Contains(t, buf.String(), "op=save")
	assert.Contains(t, buf.String(), "op=load")
}

func TestEncryption_FileContract(t *testing.T) {
	store := middleware.Chain(file.New(t.TempDir()), encryption(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
	ports.RunTableStoreContract(t, store)
}

func TestEncryption_HidesStates(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	secure := encryption(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)

	require.NoError(t, secure.Save(ctx, "grid", snapshot()))

	raw, err := underlying.Load(ctx, "grid")
	require.NoError(t, err)
	assert.Empty(t, raw.States, "states must not be stored in plain text")
	assert.NotEmpty(t, raw.Sealed)
	assert.Equal(t, "grid", raw.Domain, "metadata stays readable")

	loaded, err := secure.Load(ctx, "grid")
	require.NoError(t, err)
	require.Len(t, loaded.States, 1)
	x, err := loaded.States[0].Value("a0", "x")
	require.NoError(t, err)
	assert.Equal(t, 4, x)
	assert.Nil(t, loaded.Sealed)
}

func TestEncryption_KeyRotation(t *testing.T) {
	ctx := context.Background()
	oldKey, newKey := generateKey(t), generateKey(t)
	underlying := memory.NewStore()

	require.NoError(t, encryption(t, middleware.EncryptionConfig{ActiveKey: oldKey})(underlying).Save(ctx, "grid", snapshot()))

	rotated := encryption(t, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}})(underlying)
	loaded, err := rotated.Load(ctx, "grid")
	require.NoError(t, err)
	assert.Len(t, loaded.States, 1)

	wrong := encryption(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err = wrong.Load(ctx, "grid")
	assert.Error(t, err)
}

func TestEncryption_FailsSecureOnPlainTables(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, "grid", snapshot()))

	_, err := encryption(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying).Load(ctx, "grid")
	assert.ErrorContains(t, err, "sealed")
}

func TestEncryption_NilSnapshot(t *testing.T) {
	secure := encryption(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(memory.NewStore())
	err := secure.Save(context.Background(), "grid", nil)
	assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)
}

func TestEncryption_KeepsFrontier(t *testing.T) {
	ctx := context.Background()
	secure := encryption(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(memory.NewStore())

	snap := snapshot()
	snap.Unexpanded = []int{0}
	require.NoError(t, secure.Save(ctx, "grid", snap))

	loaded, err := secure.Load(ctx, "grid")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, loaded.Unexpanded)
}

func TestEncryption_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	store := middleware.NewValidationMiddleware()(underlying)

	assert.ErrorIs(t, store.Save(ctx, "x", &domain.Snapshot{}), domain.ErrSnapshotMismatch)
	assert.ErrorIs(t, store.Save(ctx, "x", &domain.Snapshot{Domain: "d", States: []*domain.State{nil}}), domain.ErrSnapshotMismatch)

	require.NoError(t, underlying.Save(ctx, "bad", &domain.Snapshot{}))
	_, err := store.Load(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrSnapshotMismatch)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestLogging_ReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := middleware.NewLoggingMiddleware(logger)(memory.NewStore())

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	assert.Contains(t, buf.String(), "table store operation failed")
}
