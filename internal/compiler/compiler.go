package compiler

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/tabula/internal/dto"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/dsl"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Result is a compiled domain file.
type Result struct {
	Domain *domain.Domain
	Seeds  []*domain.State
	Hasher domain.StateHasher
}

// Compiler turns YAML domain definitions into domains.
type Compiler struct {
	rand func() float64
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRand sets the sampler used by Perform on compiled actions.
func WithRand(r func() float64) Option {
	return func(c *Compiler) {
		c.rand = r
	}
}

// New creates a new compiler instance.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompileFile reads and compiles a domain file.
func (c *Compiler) CompileFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read domain file: %w", err)
	}
	return c.Compile(data)
}

// Compile parses YAML content and builds the domain it describes.
func (c *Compiler) Compile(data []byte) (*Result, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse domain file: %w", err)
	}

	var file dto.DomainFile
	if err := mapstructure.Decode(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode domain file: %w", err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("domain missing name")
	}

	hasher, ok := domain.HasherByName(file.Hasher, file.Mask...)
	if !ok {
		return nil, fmt.Errorf("unknown hasher %q", file.Hasher)
	}

	b := dsl.New(file.Name)
	if c.rand != nil {
		b.WithRand(c.rand)
	}

	for _, cs := range file.Classes {
		if err := addClass(b, cs); err != nil {
			return nil, err
		}
	}

	for _, seed := range file.Seeds {
		objects := make([]*dsl.ObjectBuilder, 0, len(seed.Objects))
		for _, spec := range seed.Objects {
			ob := dsl.Object(spec.Name, spec.Class)
			for attr, v := range spec.Values {
				ob.Set(attr, v)
			}
			objects = append(objects, ob)
		}
		b.Seed(objects...)
	}

	for _, as := range file.Actions {
		if err := addAction(b, as); err != nil {
			return nil, fmt.Errorf("action %s: %w", as.Name, err)
		}
	}

	d, seeds, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Result{Domain: d, Seeds: seeds, Hasher: hasher}, nil
}

func addClass(b *dsl.Builder, cs dto.ClassSpec) error {
	if cs.Name == "" {
		return fmt.Errorf("class missing name")
	}
	cb := b.Class(cs.Name)
	for _, attr := range cs.Attributes {
		switch attr.Type {
		case "", string(domain.AttributeInt):
			if attr.Min > attr.Max {
				return fmt.Errorf("class %s: attribute %s has min %d > max %d", cs.Name, attr.Name, attr.Min, attr.Max)
			}
			cb.Int(attr.Name, attr.Min, attr.Max)
		case string(domain.AttributeBool):
			cb.Bool(attr.Name)
		default:
			return fmt.Errorf("class %s: attribute %s has unknown type %q", cs.Name, attr.Name, attr.Type)
		}
	}
	return nil
}

func addAction(b *dsl.Builder, as dto.ActionSpec) error {
	if as.Name == "" {
		return fmt.Errorf("missing name")
	}
	ab := b.Action(as.Name)
	ab.Params(as.Parameters...)

	for _, raw := range as.When {
		cond, err := parseCondition(raw)
		if err != nil {
			return err
		}
		ab.When(cond)
	}

	for _, o := range as.Outcomes {
		effects := make([]dsl.Effect, 0, len(o.Effects))
		for _, es := range o.Effects {
			eff, err := parseEffect(es)
			if err != nil {
				return err
			}
			effects = append(effects, eff)
		}
		ab.Outcome(o.P, effects...)
	}
	return nil
}

// parseCondition accepts either "object.attribute op value" or a ConditionSpec map.
func parseCondition(raw any) (dsl.Condition, error) {
	switch v := raw.(type) {
	case string:
		fields := strings.Fields(v)
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid condition %q: want \"object.attribute op value\"", v)
		}
		object, attr, err := splitTarget(fields[0])
		if err != nil {
			return nil, err
		}
		value, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("invalid condition %q: %w", v, err)
		}
		return dsl.Compare(object, attr, fields[1], value), nil

	case map[string]any, map[any]any:
		var cs dto.ConditionSpec
		if err := mapstructure.Decode(v, &cs); err != nil {
			return nil, fmt.Errorf("failed to decode condition: %w", err)
		}
		if cs.Object == "" || cs.Attribute == "" {
			return nil, fmt.Errorf("condition missing object or attribute")
		}
		return dsl.Compare(cs.Object, cs.Attribute, cs.Op, cs.Value), nil

	default:
		return nil, fmt.Errorf("invalid condition type: %T", v)
	}
}

func parseEffect(es dto.EffectSpec) (dsl.Effect, error) {
	object, attr, err := splitTarget(es.Target)
	if err != nil {
		return nil, err
	}
	switch es.Op {
	case "set":
		return dsl.Set(object, attr, es.Value), nil
	case "add":
		return dsl.Add(object, attr, es.Value), nil
	default:
		return nil, fmt.Errorf("unknown effect %q", es.Op)
	}
}

func splitTarget(target string) (string, string, error) {
	object, attr, ok := strings.Cut(target, ".")
	if !ok || object == "" || attr == "" {
		return "", "", fmt.Errorf("invalid target %q: want \"object.attribute\"", target)
	}
	return object, attr, nil
}
