package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/internal/compiler"
	"github.com/aretw0/tabula/internal/metrics"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/ports"
)

// Options carries the flags shared by every command that loads a domain.
type Options struct {
	DomainPath string
	Hasher     string
	Mask       []string
	Debug      bool

	// Locker serializes saves when the table store is shared.
	Locker ports.DistributedLocker
}

// CreateEngine loads and tabulates a domain file with standard CLI conventions.
// An empty Hasher keeps the one declared in the file.
func CreateEngine(opts Options, logger *slog.Logger, rec *metrics.Recorder) (*tabula.Engine, error) {
	engineOpts := []tabula.Option{tabula.WithLogger(logger)}

	if opts.Hasher != "" {
		h, ok := domain.HasherByName(opts.Hasher, opts.Mask...)
		if !ok {
			return nil, fmt.Errorf("unknown hasher %q (want exact, identifier-independent or mask)", opts.Hasher)
		}
		engineOpts = append(engineOpts, tabula.WithHasher(h))
	}
	if opts.Debug {
		engineOpts = append(engineOpts, tabula.WithHooks(createDebugHooks(logger)))
	}
	if rec != nil {
		engineOpts = append(engineOpts, tabula.WithRecorder(rec))
	}
	if opts.Locker != nil {
		engineOpts = append(engineOpts, tabula.WithLocker(opts.Locker))
	}

	engine, err := tabula.Load(opts.DomainPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

func createDebugHooks(logger *slog.Logger) domain.EnumerationHooks {
	return domain.EnumerationHooks{
		OnStateDiscovered: func(e *domain.DiscoveryEvent) {
			logger.Debug("state discovered", "id", e.ID, "state", e.State.String())
		},
		OnPassComplete: func(e *domain.PassEvent) {
			logger.Debug("pass complete",
				"seed_id", e.SeedID,
				"discovered", e.Discovered,
				"expanded", e.Expanded,
				"total", e.Total,
				"duration", e.Duration,
			)
		},
	}
}

// RestoreEngine compiles the domain file and restores a stored table for it
// instead of enumerating from the declared seeds.
func RestoreEngine(ctx context.Context, opts Options, store ports.TableStore, name string, logger *slog.Logger) (*tabula.Engine, error) {
	res, err := compiler.New().CompileFile(opts.DomainPath)
	if err != nil {
		return nil, err
	}

	engineOpts := []tabula.Option{tabula.WithLogger(logger)}
	if opts.Hasher != "" {
		h, ok := domain.HasherByName(opts.Hasher, opts.Mask...)
		if !ok {
			return nil, fmt.Errorf("unknown hasher %q", opts.Hasher)
		}
		engineOpts = append(engineOpts, tabula.WithHasher(h))
	} else if domain.HasherName(res.Hasher) == "mask" {
		engineOpts = append(engineOpts, tabula.WithHasher(res.Hasher))
	}

	engine, err := tabula.Restore(ctx, store, name, res.Domain, nil, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error restoring table %s: %w", name, err)
	}
	return engine, nil
}
