package tabulated

import (
	"fmt"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/enumerator"
)

// Wrapper generates a tabulated domain from a factored input domain.
type Wrapper struct {
	input      *domain.Domain
	enumerator *enumerator.Enumerator
	tabDomain  *domain.Domain
}

// NewWrapper creates a Wrapper with its own enumerator over input.
func NewWrapper(input *domain.Domain, hasher domain.StateHasher, opts ...enumerator.Option) *Wrapper {
	return FromEnumerator(enumerator.New(input, hasher, opts...))
}

// FromEnumerator creates a Wrapper sharing an existing enumerator.
func FromEnumerator(e *enumerator.Enumerator) *Wrapper {
	return &Wrapper{
		input:      e.Domain(),
		enumerator: e,
	}
}

// Enumerator returns the shared enumerator.
func (w *Wrapper) Enumerator() *enumerator.Enumerator { return w.enumerator }

// InputDomain returns the wrapped source domain.
func (w *Wrapper) InputDomain() *domain.Domain { return w.input }

// AddReachableStatesFrom enumerates every state reachable from s.
func (w *Wrapper) AddReachableStatesFrom(s *domain.State) error {
	return w.enumerator.FindReachableStatesAndEnumerate(s)
}

// GenerateDomain builds the tabulated domain. It fails with
// domain.ErrUnsupportedDomain, without building anything, if any source action
// is parameterized.
func (w *Wrapper) GenerateDomain() (*domain.Domain, error) {
	actions := w.input.Actions()
	for _, a := range actions {
		if domain.IsParameterized(a) {
			return nil, fmt.Errorf("action %s takes parameters %v: %w", a.Name(), a.ParameterClasses(), domain.ErrUnsupportedDomain)
		}
	}

	tab := domain.NewDomain(w.input.Name)
	class := &domain.ObjectClass{
		Name: domain.ClassState,
		Attributes: []domain.Attribute{{
			Name:  domain.AttState,
			Type:  domain.AttributeInt,
			Lower: 0,
			Upper: w.enumerator.NumStatesEnumerated() - 1,
		}},
	}
	if err := tab.AddClass(class); err != nil {
		return nil, err
	}
	for _, a := range actions {
		if err := tab.AddAction(&actionWrapper{wrapper: w, src: a}); err != nil {
			return nil, err
		}
	}

	w.tabDomain = tab
	return tab, nil
}

// Domain returns the last generated tabulated domain, or nil before GenerateDomain.
func (w *Wrapper) Domain() *domain.Domain { return w.tabDomain }

// StateID extracts the enumeration id carried by a tabulated state.
func (w *Wrapper) StateID(ts *domain.State) (int, error) {
	if ts == nil {
		return 0, fmt.Errorf("nil tabulated state")
	}
	o, ok := ts.FirstObjectOfClass(domain.ClassState)
	if !ok {
		return 0, fmt.Errorf("state has no object of class %q", domain.ClassState)
	}
	id, ok := o.Value(domain.AttState)
	if !ok {
		return 0, fmt.Errorf("object %s has no attribute %q", o.Name, domain.AttState)
	}
	return id, nil
}

// SourceDomainState returns the source state behind a tabulated state.
// It propagates domain.ErrOutOfRange.
func (w *Wrapper) SourceDomainState(ts *domain.State) (*domain.State, error) {
	id, err := w.StateID(ts)
	if err != nil {
		return nil, err
	}
	return w.enumerator.StateForEnumerationID(id)
}

// TabularizedState returns a fresh tabulated state for a source state.
// It propagates domain.ErrNotEnumerated.
func (w *Wrapper) TabularizedState(s *domain.State) (*domain.State, error) {
	id, err := w.enumerator.EnumeratedID(s)
	if err != nil {
		return nil, err
	}
	return StateFor(id), nil
}

// StateFor builds the tabulated state carrying id.
func StateFor(id int) *domain.State {
	return domain.NewState(domain.ObjectInstance{
		Name:   domain.ClassState,
		Class:  domain.ClassState,
		Values: map[string]int{domain.AttState: id},
	})
}
