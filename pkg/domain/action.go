package domain

import (
	"fmt"
	"math/rand/v2"
)

// Action is the capability every domain action exposes.
// Implementations must be safe to call repeatedly on the same state and must
// never mutate the state they receive.
type Action interface {
	// Name identifies the action within its domain.
	Name() string

	// ParameterClasses lists the object classes the action is parameterized by.
	// Tabulation only supports actions returning an empty list.
	ParameterClasses() []string

	// Applicable reports whether the action's preconditions hold in s.
	// An error means s could not be evaluated at all, not that the action is inapplicable.
	Applicable(s *State, params []string) (bool, error)

	// Perform samples a single outcome of executing the action in s.
	Perform(s *State, params []string) (*State, error)

	// Transitions returns the full outcome distribution of executing the action in s.
	Transitions(s *State, params []string) ([]TransitionProbability, error)
}

// IsParameterized reports whether the action accepts parameters.
func IsParameterized(a Action) bool {
	return len(a.ParameterClasses()) > 0
}

// PreconditionFunc decides whether an action is applicable.
type PreconditionFunc func(s *State, params []string) bool

// DynamicsFunc produces the outcome distribution of an action.
type DynamicsFunc func(s *State, params []string) ([]TransitionProbability, error)

// FuncAction implements Action from plain functions.
// A nil Precondition means the action is always applicable.
type FuncAction struct {
	ActionName   string
	Parameters   []string
	Precondition PreconditionFunc
	Dynamics     DynamicsFunc

	// Rand supplies samples in [0, 1) for Perform. Defaults to math/rand/v2.
	Rand func() float64
}

// Name implements Action.
func (a *FuncAction) Name() string { return a.ActionName }

// ParameterClasses implements Action.
func (a *FuncAction) ParameterClasses() []string { return a.Parameters }

// Applicable implements Action.
func (a *FuncAction) Applicable(s *State, params []string) (bool, error) {
	if a.Precondition == nil {
		return true, nil
	}
	return a.Precondition(s, params), nil
}

// Transitions implements Action.
func (a *FuncAction) Transitions(s *State, params []string) ([]TransitionProbability, error) {
	if a.Dynamics == nil {
		return []TransitionProbability{{State: s, P: 1}}, nil
	}
	return a.Dynamics(s, params)
}

// Perform implements Action by sampling from Transitions.
func (a *FuncAction) Perform(s *State, params []string) (*State, error) {
	ok, err := a.Applicable(s, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", a.ActionName, ErrNotApplicable)
	}
	tps, err := a.Transitions(s, params)
	if err != nil {
		return nil, err
	}
	r := rand.Float64
	if a.Rand != nil {
		r = a.Rand
	}
	return Sample(tps, r())
}
