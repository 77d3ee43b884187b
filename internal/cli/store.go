package cli

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aretw0/tabula/internal/adapters/file"
	"github.com/aretw0/tabula/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/tabula/pkg/adapters/redis"
	"github.com/aretw0/tabula/pkg/persistence/middleware"
	"github.com/aretw0/tabula/pkg/ports"
)

// StoreOptions selects a table store backend.
type StoreOptions struct {
	// Kind is one of "file", "yaml", "redis" or "memory".
	Kind      string
	Dir       string
	RedisAddr string
	RedisDB   int

	// Key, hex encoded, enables encryption at rest (AES-256).
	Key string
}

// Store bundles a TableStore with its optional locker and cleanup.
type Store struct {
	ports.TableStore
	Locker ports.DistributedLocker
	Close  func() error
}

// OpenStore creates the table store described by opts.
// Every store validates tables and logs its operations.
func OpenStore(opts StoreOptions, logger *slog.Logger) (*Store, error) {
	store, err := openBackend(opts)
	if err != nil {
		return nil, err
	}

	mws := []middleware.Middleware{
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	}
	if opts.Key != "" {
		key, err := hex.DecodeString(opts.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}

	store.TableStore = middleware.Chain(store.TableStore, mws...)
	return store, nil
}

func openBackend(opts StoreOptions) (*Store, error) {
	noop := func() error { return nil }

	switch opts.Kind {
	case "", "file":
		return &Store{TableStore: file.New(opts.Dir), Locker: file.NewLocker(opts.Dir), Close: noop}, nil
	case "yaml":
		return &Store{TableStore: file.NewYAML(opts.Dir), Locker: file.NewLocker(opts.Dir), Close: noop}, nil
	case "memory":
		return &Store{TableStore: memory.NewStore(), Close: noop}, nil
	case "redis":
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis store requires an address")
		}
		s := redisAdapter.New(opts.RedisAddr, "", opts.RedisDB)
		return &Store{
			TableStore: s,
			Locker:     redisAdapter.NewLocker(s.Client(), redisAdapter.DefaultPrefix),
			Close:      s.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q (want file, yaml, redis or memory)", opts.Kind)
	}
}
