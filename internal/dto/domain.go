package dto

// DomainFile is the on-disk shape of a factored domain definition.
// It uses "mapstructure" tags so it can be decoded from generic YAML maps.
type DomainFile struct {
	Name    string       `json:"name" mapstructure:"name"`
	Hasher  string       `json:"hasher" mapstructure:"hasher"`
	Mask    []string     `json:"mask" mapstructure:"mask"`
	Classes []ClassSpec  `json:"classes" mapstructure:"classes"`
	Seeds   []SeedSpec   `json:"seeds" mapstructure:"seeds"`
	Actions []ActionSpec `json:"actions" mapstructure:"actions"`
}

type ClassSpec struct {
	Name       string          `json:"name" mapstructure:"name"`
	Attributes []AttributeSpec `json:"attributes" mapstructure:"attributes"`
}

type AttributeSpec struct {
	Name string `json:"name" mapstructure:"name"`
	Type string `json:"type" mapstructure:"type"`
	Min  int    `json:"min" mapstructure:"min"`
	Max  int    `json:"max" mapstructure:"max"`
}

// SeedSpec is one initial state.
type SeedSpec struct {
	Objects []ObjectSpec `json:"objects" mapstructure:"objects"`
}

type ObjectSpec struct {
	Name   string         `json:"name" mapstructure:"name"`
	Class  string         `json:"class" mapstructure:"class"`
	Values map[string]int `json:"values" mapstructure:"values"`
}

type ActionSpec struct {
	Name       string        `json:"name" mapstructure:"name"`
	Parameters []string      `json:"parameters" mapstructure:"parameters"`
	When       []any         `json:"when" mapstructure:"when"`
	Outcomes   []OutcomeSpec `json:"outcomes" mapstructure:"outcomes"`
}

// ConditionSpec is the long form of a precondition.
// The short form is a string such as "a0.x < 4".
type ConditionSpec struct {
	Object    string `json:"object" mapstructure:"object"`
	Attribute string `json:"attribute" mapstructure:"attribute"`
	Op        string `json:"op" mapstructure:"op"`
	Value     int    `json:"value" mapstructure:"value"`
}

type OutcomeSpec struct {
	P       float64      `json:"p" mapstructure:"p"`
	Effects []EffectSpec `json:"effects" mapstructure:"effects"`
}

// EffectSpec targets "object.attribute". Op is "set" or "add".
type EffectSpec struct {
	Op     string `json:"op" mapstructure:"op"`
	Target string `json:"target" mapstructure:"target"`
	Value  int    `json:"value" mapstructure:"value"`
}
