package tabula

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tabula/internal/compiler"
	"github.com/aretw0/tabula/internal/metrics"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/enumerator"
	"github.com/aretw0/tabula/pkg/ports"
	"github.com/aretw0/tabula/pkg/tabulated"
)

// Version is the release version, overridden at build time via -ldflags.
var Version = "dev"

// lockTTL bounds how long a crashed writer can hold a table lock.
const lockTTL = 30 * time.Second

// Engine is the high-level entry point for the Tabula library.
// It enumerates a factored domain from its seeds and exposes the generated
// tabulated domain.
type Engine struct {
	wrapper *tabulated.Wrapper
	seeds   []*domain.State

	hasher   domain.StateHasher
	hooks    domain.EnumerationHooks
	recorder *metrics.Recorder
	locker   ports.DistributedLocker
	rand     func() float64
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithHasher overrides the equivalence abstraction.
// The default is the identifier-independent hasher, or the one named in a domain file.
func WithHasher(h domain.StateHasher) Option {
	return func(e *Engine) {
		e.hasher = h
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers enumeration observability hooks.
func WithHooks(hooks domain.EnumerationHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRecorder attaches a Prometheus recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLocker serializes Save calls across processes.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithRand sets the sampler used by actions compiled from a domain file.
func WithRand(r func() float64) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

func newEngine(opts []Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

func (e *Engine) enumeratorOptions() []enumerator.Option {
	opts := []enumerator.Option{
		enumerator.WithLogger(e.logger),
		enumerator.WithHooks(e.hooks),
	}
	if e.recorder != nil {
		opts = append(opts, enumerator.WithRecorder(e.recorder))
	}
	return opts
}

// New enumerates every state reachable from seeds and generates the tabulated domain.
func New(d *domain.Domain, seeds []*domain.State, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	if e.hasher == nil {
		e.hasher = domain.IdentifierIndependentHasher{}
	}
	return e.build(tabulated.NewWrapper(d, e.hasher, e.enumeratorOptions()...), seeds)
}

// Load compiles a YAML domain file and tabulates it from the seeds it declares.
func Load(path string, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	var copts []compiler.Option
	if e.rand != nil {
		copts = append(copts, compiler.WithRand(e.rand))
	}
	res, err := compiler.New(copts...).CompileFile(path)
	if err != nil {
		return nil, err
	}
	if len(res.Seeds) == 0 {
		return nil, fmt.Errorf("domain %s declares no seeds", res.Domain.Name)
	}
	if e.hasher == nil {
		e.hasher = res.Hasher
	}
	e.logger.Info("domain compiled", "path", path, "domain", res.Domain.Name, "seeds", len(res.Seeds))
	return e.build(tabulated.NewWrapper(res.Domain, e.hasher, e.enumeratorOptions()...), res.Seeds)
}

// Restore rebuilds an Engine from a stored table without re-enumerating.
// Extra seeds are enumerated on top of the restored ids.
// A built-in hasher given with WithHasher must match the one the table was saved with.
func Restore(ctx context.Context, store ports.TableStore, name string, d *domain.Domain, seeds []*domain.State, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	snap, err := store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", name, err)
	}
	if e.hasher == nil {
		// Mask and custom hashers carry configuration the snapshot does not record.
		h, ok := domain.HasherByName(snap.Hasher)
		if !ok || snap.Hasher == "mask" {
			return nil, fmt.Errorf("table %s uses hasher %q: %w", name, snap.Hasher, domain.ErrSnapshotMismatch)
		}
		e.hasher = h
	} else if got := domain.HasherName(e.hasher); got != "custom" && got != snap.Hasher {
		return nil, fmt.Errorf("table %s uses hasher %q, not %q: %w", name, snap.Hasher, got, domain.ErrSnapshotMismatch)
	}

	en, err := enumerator.Restore(d, e.hasher, snap, e.enumeratorOptions()...)
	if err != nil {
		return nil, err
	}
	return e.build(tabulated.FromEnumerator(en), seeds)
}

func (e *Engine) build(w *tabulated.Wrapper, seeds []*domain.State) (*Engine, error) {
	e.wrapper = w
	e.seeds = seeds

	start := time.Now()
	for _, s := range seeds {
		if err := w.AddReachableStatesFrom(s); err != nil {
			return nil, fmt.Errorf("enumeration failed: %w", err)
		}
	}
	if _, err := w.GenerateDomain(); err != nil {
		return nil, err
	}

	e.logger.Info("domain tabulated",
		"domain", w.InputDomain().Name,
		"states", w.Enumerator().NumStatesEnumerated(),
		"duration", time.Since(start),
	)
	return e, nil
}

// Wrapper returns the underlying tabulated domain wrapper.
func (e *Engine) Wrapper() *tabulated.Wrapper { return e.wrapper }

// Domain returns the generated tabulated domain.
func (e *Engine) Domain() *domain.Domain { return e.wrapper.Domain() }

// InputDomain returns the source factored domain.
func (e *Engine) InputDomain() *domain.Domain { return e.wrapper.InputDomain() }

// Model resolves the full tabular transition model.
func (e *Engine) Model() (*tabulated.Model, error) { return e.wrapper.Model() }

// NumStates returns the number of enumerated states.
func (e *Engine) NumStates() int { return e.wrapper.Enumerator().NumStatesEnumerated() }

// States returns the source states ordered by id.
func (e *Engine) States() []*domain.State { return e.wrapper.Enumerator().States() }

// SeedIDs returns the ids of the seed states in the order they were given.
func (e *Engine) SeedIDs() ([]int, error) {
	ids := make([]int, 0, len(e.seeds))
	for _, s := range e.seeds {
		id, err := e.wrapper.Enumerator().EnumeratedID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Save persists the enumeration table under name.
// With a locker configured, concurrent writers to the same name are serialized.
func (e *Engine) Save(ctx context.Context, store ports.TableStore, name string) error {
	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, name, lockTTL)
		if err != nil {
			return fmt.Errorf("failed to lock table %s: %w", name, err)
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				e.logger.Warn("failed to release table lock", "table", name, "error", err)
			}
		}()
	}

	if err := store.Save(ctx, name, e.wrapper.Enumerator().Snapshot()); err != nil {
		return fmt.Errorf("failed to save table %s: %w", name, err)
	}
	e.logger.Debug("table saved", "table", name, "states", e.NumStates())
	return nil
}
