package tabulated

import (
	"fmt"

	"github.com/aretw0/tabula/pkg/domain"
)

// actionWrapper exposes a source action over tabulated states.
// Every call decodes the id, delegates to the source action and encodes the result.
type actionWrapper struct {
	wrapper *Wrapper
	src     domain.Action
}

var _ domain.Action = (*actionWrapper)(nil)

// Name implements domain.Action. Wrapped actions keep the source name.
func (a *actionWrapper) Name() string { return a.src.Name() }

// ParameterClasses implements domain.Action. Tabulated actions never take parameters.
func (a *actionWrapper) ParameterClasses() []string { return nil }

// Applicable implements domain.Action.
// It fails with domain.ErrOutOfRange if ts does not decode to an enumerated state.
func (a *actionWrapper) Applicable(ts *domain.State, params []string) (bool, error) {
	ok, err := a.applicable(ts, params)
	a.record("applicable", err)
	return ok, err
}

func (a *actionWrapper) applicable(ts *domain.State, params []string) (bool, error) {
	src, err := a.wrapper.SourceDomainState(ts)
	if err != nil {
		return false, err
	}
	return a.src.Applicable(src, params)
}

// Perform implements domain.Action.
// It fails with domain.ErrNotEnumerated if the sampled outcome was never enumerated.
func (a *actionWrapper) Perform(ts *domain.State, params []string) (*domain.State, error) {
	next, err := a.perform(ts, params)
	a.record("perform", err)
	return next, err
}

func (a *actionWrapper) perform(ts *domain.State, params []string) (*domain.State, error) {
	src, err := a.wrapper.SourceDomainState(ts)
	if err != nil {
		return nil, err
	}
	srcNext, err := a.src.Perform(src, params)
	if err != nil {
		return nil, err
	}
	next, err := a.wrapper.TabularizedState(srcNext)
	if err != nil {
		return nil, fmt.Errorf("%s produced an unknown state: %w", a.src.Name(), err)
	}
	return next, nil
}

// Transitions implements domain.Action. Probabilities are preserved unchanged.
func (a *actionWrapper) Transitions(ts *domain.State, params []string) ([]domain.TransitionProbability, error) {
	tps, err := a.transitions(ts, params)
	a.record("transitions", err)
	return tps, err
}

func (a *actionWrapper) transitions(ts *domain.State, params []string) ([]domain.TransitionProbability, error) {
	src, err := a.wrapper.SourceDomainState(ts)
	if err != nil {
		return nil, err
	}
	srcTPs, err := a.src.Transitions(src, params)
	if err != nil {
		return nil, err
	}
	tabTPs := make([]domain.TransitionProbability, 0, len(srcTPs))
	for _, stp := range srcTPs {
		next, err := a.wrapper.TabularizedState(stp.State)
		if err != nil {
			return nil, fmt.Errorf("%s produced an unknown outcome: %w", a.src.Name(), err)
		}
		tabTPs = append(tabTPs, domain.TransitionProbability{State: next, P: stp.P})
	}
	return tabTPs, nil
}

func (a *actionWrapper) record(op string, err error) {
	r := a.wrapper.enumerator.Recorder()
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.ActionCall(a.wrapper.input.Name, a.src.Name(), op, outcome)
}
