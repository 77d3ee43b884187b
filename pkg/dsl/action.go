package dsl

import (
	"fmt"

	"github.com/aretw0/tabula/pkg/domain"
)

// Condition is a precondition over a state.
type Condition interface {
	Holds(s *domain.State) bool
}

// ConditionFunc adapts a function to Condition.
type ConditionFunc func(s *domain.State) bool

// Holds implements Condition.
func (f ConditionFunc) Holds(s *domain.State) bool { return f(s) }

// Effect transforms a state into a successor. It must not mutate s.
type Effect func(d *domain.Domain, s *domain.State) (*domain.State, error)

type outcome struct {
	p       float64
	effects []Effect
}

// ActionBuilder provides a fluent API for configuring an action.
type ActionBuilder struct {
	name       string
	params     []string
	conditions []Condition
	outcomes   []outcome
}

// When adds preconditions. All of them must hold for the action to be applicable.
func (a *ActionBuilder) When(conds ...Condition) *ActionBuilder {
	a.conditions = append(a.conditions, conds...)
	return a
}

// Params declares the parameter classes of the action.
// Parameterized actions can be built but cannot be tabulated.
func (a *ActionBuilder) Params(classes ...string) *ActionBuilder {
	a.params = append(a.params, classes...)
	return a
}

// Outcome adds a weighted outcome. Effects are applied in order.
// An outcome without effects leaves the state unchanged.
func (a *ActionBuilder) Outcome(p float64, effects ...Effect) *ActionBuilder {
	a.outcomes = append(a.outcomes, outcome{p: p, effects: effects})
	return a
}

// Deterministic is shorthand for a single outcome with probability 1.
func (a *ActionBuilder) Deterministic(effects ...Effect) *ActionBuilder {
	return a.Outcome(1, effects...)
}

func (a *ActionBuilder) build(d *domain.Domain, r func() float64) (domain.Action, error) {
	for _, c := range a.conditions {
		if v, ok := c.(interface{ validate() error }); ok {
			if err := v.validate(); err != nil {
				return nil, err
			}
		}
	}

	outcomes := a.outcomes
	if len(outcomes) == 0 {
		outcomes = []outcome{{p: 1}}
	}
	if err := checkDistribution(outcomes); err != nil {
		return nil, err
	}

	conditions := a.conditions
	return &domain.FuncAction{
		ActionName: a.name,
		Parameters: a.params,
		Precondition: func(s *domain.State, _ []string) bool {
			for _, c := range conditions {
				if !c.Holds(s) {
					return false
				}
			}
			return true
		},
		Dynamics: func(s *domain.State, _ []string) ([]domain.TransitionProbability, error) {
			tps := make([]domain.TransitionProbability, 0, len(outcomes))
			for _, o := range outcomes {
				next := s
				for _, eff := range o.effects {
					var err error
					if next, err = eff(d, next); err != nil {
						return nil, fmt.Errorf("%s: %w", a.name, err)
					}
				}
				tps = append(tps, domain.TransitionProbability{State: next, P: o.p})
			}
			return tps, nil
		},
		Rand: r,
	}, nil
}

// comparison compares object.attribute against a constant.
type comparison struct {
	object, attribute, op string
	value                 int
}

// Compare builds a condition "object.attribute op value".
// Supported operators: ==, !=, <, <=, >, >=.
// The condition is false when the object or attribute is missing.
func Compare(object, attribute, op string, value int) Condition {
	return comparison{object: object, attribute: attribute, op: op, value: value}
}

func (c comparison) validate() error {
	if _, ok := operators[c.op]; !ok {
		return fmt.Errorf("unknown operator %q", c.op)
	}
	return nil
}

// Holds implements Condition.
func (c comparison) Holds(s *domain.State) bool {
	v, err := s.Value(c.object, c.attribute)
	if err != nil {
		return false
	}
	fn, ok := operators[c.op]
	return ok && fn(v, c.value)
}

var operators = map[string]func(a, b int) bool{
	"==": func(a, b int) bool { return a == b },
	"!=": func(a, b int) bool { return a != b },
	"<":  func(a, b int) bool { return a < b },
	"<=": func(a, b int) bool { return a <= b },
	">":  func(a, b int) bool { return a > b },
	">=": func(a, b int) bool { return a >= b },
}

// Set assigns object.attribute. The value is clamped to the attribute bounds.
func Set(object, attribute string, value int) Effect {
	return func(d *domain.Domain, s *domain.State) (*domain.State, error) {
		v, err := clamp(d, s, object, attribute, value)
		if err != nil {
			return nil, err
		}
		return s.Set(object, attribute, v)
	}
}

// Add increments object.attribute by delta, clamped to the attribute bounds.
func Add(object, attribute string, delta int) Effect {
	return func(d *domain.Domain, s *domain.State) (*domain.State, error) {
		cur, err := s.Value(object, attribute)
		if err != nil {
			return nil, err
		}
		v, err := clamp(d, s, object, attribute, cur+delta)
		if err != nil {
			return nil, err
		}
		return s.Set(object, attribute, v)
	}
}

func clamp(d *domain.Domain, s *domain.State, object, attribute string, v int) (int, error) {
	o, ok := s.Object(object)
	if !ok {
		return 0, fmt.Errorf("object %q not found in state", object)
	}
	class, ok := d.Class(o.Class)
	if !ok {
		return 0, fmt.Errorf("object %q has unknown class %q", object, o.Class)
	}
	attr, ok := class.Attribute(attribute)
	if !ok {
		return 0, fmt.Errorf("class %q has no attribute %q", o.Class, attribute)
	}
	return attr.Clamp(v), nil
}
