package enumerator

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tabula/internal/metrics"
	"github.com/aretw0/tabula/pkg/domain"
)

// Enumerator discovers every state reachable from seed states and assigns each
// a stable integer id in discovery order.
//
// It is not safe for concurrent use while a pass is running. Once enumeration
// is finished the Enumerator may be shared read-only.
type Enumerator struct {
	domain *domain.Domain
	hasher domain.StateHasher
	table  *table

	logger   *slog.Logger
	hooks    domain.EnumerationHooks
	recorder *metrics.Recorder
}

// New creates an empty Enumerator over the given domain and equivalence abstraction.
func New(d *domain.Domain, hasher domain.StateHasher, opts ...Option) *Enumerator {
	e := &Enumerator{
		domain: d,
		hasher: hasher,
		table:  newTable(64),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.logger = e.logger.With("domain", d.Name)
	return e
}

// Domain returns the source domain being enumerated.
func (e *Enumerator) Domain() *domain.Domain { return e.domain }

// Hasher returns the equivalence abstraction used for deduplication.
func (e *Enumerator) Hasher() domain.StateHasher { return e.hasher }

// Recorder returns the attached Prometheus recorder, if any.
func (e *Enumerator) Recorder() *metrics.Recorder { return e.recorder }

// FindReachableStatesAndEnumerate runs a breadth-first reachability pass from seed.
// Every applicable action is expanded over its full transition distribution, so
// all stochastically reachable successors are enumerated. States already in the
// table, from this pass or an earlier one, keep their ids and are not expanded again.
//
// A pass that fails leaves its frontier in the table; the next pass, from any
// seed, expands it before returning.
//
// An infinite reachable set never terminates; bounding it is the caller's job.
func (e *Enumerator) FindReachableStatesAndEnumerate(seed *domain.State) error {
	if seed == nil {
		return fmt.Errorf("seed state is nil")
	}

	start := time.Now()
	before := e.table.len()
	expanded := 0

	seedID, isNew := e.enumerate(seed)
	queue := e.table.pending()
	if len(queue) == 0 {
		e.logger.Debug("seed already enumerated", "id", seedID)
		return nil
	}
	if !isNew {
		e.logger.Debug("resuming interrupted pass", "id", seedID, "pending", len(queue))
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		current, _ := e.table.valueOf(id)

		for _, a := range e.domain.Actions() {
			ok, err := a.Applicable(current, nil)
			if err != nil {
				return fmt.Errorf("checking action %s in %s: %w", a.Name(), current, err)
			}
			if !ok {
				continue
			}
			tps, err := a.Transitions(current, nil)
			if err != nil {
				return fmt.Errorf("expanding action %s from %s: %w", a.Name(), current, err)
			}
			for _, tp := range tps {
				if next, isNew := e.enumerate(tp.State); isNew {
					queue = append(queue, next)
				}
			}
		}

		e.table.markExpanded(id)
		expanded++
		e.expanded(id, current)
	}

	elapsed := time.Since(start)
	discovered := e.table.len() - before
	e.logger.Debug("reachability pass complete",
		"seed_id", seedID,
		"discovered", discovered,
		"total", e.table.len(),
		"duration", elapsed,
	)
	if e.recorder != nil {
		e.recorder.PassComplete(e.domain.Name, elapsed, e.table.len())
	}
	if e.hooks.OnPassComplete != nil {
		e.hooks.OnPassComplete(&domain.PassEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventPassComplete},
			SeedID:     seedID,
			Discovered: discovered,
			Expanded:   expanded,
			Total:      e.table.len(),
			Duration:   elapsed,
		})
	}
	return nil
}

// enumerate adds s to the table if its key is unknown.
func (e *Enumerator) enumerate(s *domain.State) (int, bool) {
	id, isNew := e.table.add(e.hasher.Key(s), s)
	if !isNew {
		return id, false
	}
	if e.recorder != nil {
		e.recorder.Discovered(e.domain.Name)
	}
	if e.hooks.OnStateDiscovered != nil {
		e.hooks.OnStateDiscovered(&domain.DiscoveryEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateDiscovered},
			ID:        id,
			State:     s,
		})
	}
	return id, true
}

func (e *Enumerator) expanded(id int, s *domain.State) {
	if e.recorder != nil {
		e.recorder.Expanded(e.domain.Name)
	}
	if e.hooks.OnStateExpanded != nil {
		e.hooks.OnStateExpanded(&domain.DiscoveryEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateExpanded},
			ID:        id,
			State:     s,
		})
	}
}

// NumStatesEnumerated returns the number of states in the table.
func (e *Enumerator) NumStatesEnumerated() int {
	return e.table.len()
}

// EnumeratedID returns the id of s under the hasher's equivalence.
// It returns domain.ErrNotEnumerated if no equivalent state was discovered.
func (e *Enumerator) EnumeratedID(s *domain.State) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("nil state: %w", domain.ErrNotEnumerated)
	}
	id, ok := e.table.indexOf(e.hasher.Key(s))
	if !ok {
		return 0, fmt.Errorf("%s: %w", s, domain.ErrNotEnumerated)
	}
	return id, nil
}

// StateForEnumerationID returns the canonical state stored for id.
// It returns domain.ErrOutOfRange unless 0 <= id < NumStatesEnumerated().
func (e *Enumerator) StateForEnumerationID(id int) (*domain.State, error) {
	s, ok := e.table.valueOf(id)
	if !ok {
		return nil, fmt.Errorf("id %d not in [0, %d): %w", id, e.table.len(), domain.ErrOutOfRange)
	}
	return s, nil
}

// States returns the enumerated states ordered by id.
func (e *Enumerator) States() []*domain.State {
	out := make([]*domain.State, e.table.len())
	copy(out, e.table.index)
	return out
}
