package dsl

import (
	"fmt"
	"math"

	"github.com/aretw0/tabula/pkg/domain"
)

// probabilityTolerance bounds the rounding error accepted when outcome probabilities are summed.
const probabilityTolerance = 1e-9

// Builder manages the domain construction.
type Builder struct {
	name    string
	classes []*ClassBuilder
	actions []*ActionBuilder
	seeds   []*domain.State
	rand    func() float64
}

// New creates a new domain builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Class declares an object class.
// If the class already exists, it returns the existing builder.
func (b *Builder) Class(name string) *ClassBuilder {
	for _, cb := range b.classes {
		if cb.class.Name == name {
			return cb
		}
	}
	cb := &ClassBuilder{class: &domain.ObjectClass{Name: name}}
	b.classes = append(b.classes, cb)
	return cb
}

// Action declares an action.
// If the action already exists, it returns the existing builder.
func (b *Builder) Action(name string) *ActionBuilder {
	for _, ab := range b.actions {
		if ab.name == name {
			return ab
		}
	}
	ab := &ActionBuilder{name: name}
	b.actions = append(b.actions, ab)
	return ab
}

// Seed adds a seed state made of the given objects.
func (b *Builder) Seed(objects ...*ObjectBuilder) *Builder {
	instances := make([]domain.ObjectInstance, 0, len(objects))
	for _, o := range objects {
		instances = append(instances, o.instance)
	}
	b.seeds = append(b.seeds, domain.NewState(instances...))
	return b
}

// WithRand sets the sampler used by Perform on every built action.
func (b *Builder) WithRand(r func() float64) *Builder {
	b.rand = r
	return b
}

// Build compiles the declarations into a domain and its seed states.
func (b *Builder) Build() (*domain.Domain, []*domain.State, error) {
	d := domain.NewDomain(b.name)

	for _, cb := range b.classes {
		if err := d.AddClass(cb.class); err != nil {
			return nil, nil, err
		}
	}

	for _, s := range b.seeds {
		if err := validateState(d, s); err != nil {
			return nil, nil, fmt.Errorf("invalid seed: %w", err)
		}
	}

	for _, ab := range b.actions {
		action, err := ab.build(d, b.rand)
		if err != nil {
			return nil, nil, fmt.Errorf("action %s: %w", ab.name, err)
		}
		if err := d.AddAction(action); err != nil {
			return nil, nil, err
		}
	}

	return d, b.seeds, nil
}

// validateState checks that every object belongs to a declared class and that
// every attribute value is within bounds.
func validateState(d *domain.Domain, s *domain.State) error {
	for _, o := range s.Objects {
		class, ok := d.Class(o.Class)
		if !ok {
			return fmt.Errorf("object %s: unknown class %q", o.Name, o.Class)
		}
		for _, attr := range class.Attributes {
			v, ok := o.Values[attr.Name]
			if !ok {
				return fmt.Errorf("object %s: attribute %q not set", o.Name, attr.Name)
			}
			if !attr.Contains(v) {
				return fmt.Errorf("object %s: %s=%d outside [%d, %d]", o.Name, attr.Name, v, attr.Lower, attr.Upper)
			}
		}
	}
	return nil
}

func checkDistribution(outcomes []outcome) error {
	sum := 0.0
	for _, o := range outcomes {
		if o.p < 0 {
			return fmt.Errorf("negative probability %v", o.p)
		}
		sum += o.p
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return fmt.Errorf("outcome probabilities sum to %v, want 1", sum)
	}
	return nil
}
