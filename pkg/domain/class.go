package domain

// AttributeType defines how an attribute value is interpreted.
type AttributeType string

const (
	AttributeInt  AttributeType = "int"
	AttributeBool AttributeType = "bool" // Stored as 0 or 1
)

// Attribute describes a discrete attribute with inclusive bounds.
type Attribute struct {
	Name  string        `json:"name" yaml:"name"`
	Type  AttributeType `json:"type" yaml:"type"`
	Lower int           `json:"lower" yaml:"lower"`
	Upper int           `json:"upper" yaml:"upper"`
}

// Contains reports whether v lies within the attribute bounds.
func (a Attribute) Contains(v int) bool {
	return v >= a.Lower && v <= a.Upper
}

// Clamp forces v into the attribute bounds.
func (a Attribute) Clamp(v int) int {
	if v < a.Lower {
		return a.Lower
	}
	if v > a.Upper {
		return a.Upper
	}
	return v
}

// ObjectClass groups the attributes shared by a kind of object.
type ObjectClass struct {
	Name       string      `json:"name" yaml:"name"`
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

// Attribute returns the attribute definition with the given name.
func (c *ObjectClass) Attribute(name string) (Attribute, bool) {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
