package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ObjectInstance is a named instance of an object class holding attribute values.
type ObjectInstance struct {
	Name   string         `json:"name" yaml:"name"`
	Class  string         `json:"class" yaml:"class"`
	Values map[string]int `json:"values" yaml:"values"`
}

// Value returns the value of an attribute and whether it is set.
func (o ObjectInstance) Value(attribute string) (int, bool) {
	v, ok := o.Values[attribute]
	return v, ok
}

func (o ObjectInstance) clone() ObjectInstance {
	values := make(map[string]int, len(o.Values))
	for k, v := range o.Values {
		values[k] = v
	}
	return ObjectInstance{Name: o.Name, Class: o.Class, Values: values}
}

// State is a factored state: an ordered set of object instances.
// States handed to the enumerator are never mutated; use Set to derive new ones.
type State struct {
	Objects []ObjectInstance `json:"objects" yaml:"objects"`
}

// NewState creates a state from the given objects. The objects are copied.
func NewState(objects ...ObjectInstance) *State {
	s := &State{Objects: make([]ObjectInstance, 0, len(objects))}
	for _, o := range objects {
		s.Objects = append(s.Objects, o.clone())
	}
	return s
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	return NewState(s.Objects...)
}

// Object returns the object instance with the given name.
func (s *State) Object(name string) (ObjectInstance, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return ObjectInstance{}, false
}

// FirstObjectOfClass returns the first object instance of the given class.
func (s *State) FirstObjectOfClass(class string) (ObjectInstance, bool) {
	for _, o := range s.Objects {
		if o.Class == class {
			return o, true
		}
	}
	return ObjectInstance{}, false
}

// Value returns the value of object.attribute.
func (s *State) Value(object, attribute string) (int, error) {
	o, ok := s.Object(object)
	if !ok {
		return 0, fmt.Errorf("object %q not found in state", object)
	}
	v, ok := o.Value(attribute)
	if !ok {
		return 0, fmt.Errorf("attribute %q not set on object %q", attribute, object)
	}
	return v, nil
}

// Set returns a copy of the state with object.attribute set to value.
func (s *State) Set(object, attribute string, value int) (*State, error) {
	next := s.Clone()
	for i := range next.Objects {
		if next.Objects[i].Name == object {
			next.Objects[i].Values[attribute] = value
			return next, nil
		}
	}
	return nil, fmt.Errorf("object %q not found in state", object)
}

// String renders the state as "name:class{attr=v,...} ..." with sorted attributes.
func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}
	parts := make([]string, 0, len(s.Objects))
	for _, o := range s.Objects {
		parts = append(parts, fmt.Sprintf("%s:%s{%s}", o.Name, o.Class, formatValues(o.Values, nil)))
	}
	return strings.Join(parts, " ")
}

// formatValues renders values sorted by attribute name. When keep is non-nil,
// only attributes for which keep returns true are included.
func formatValues(values map[string]int, keep func(string) bool) string {
	names := make([]string, 0, len(values))
	for k := range values {
		if keep == nil || keep(k) {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, k := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s=%d", k, values[k])
	}
	return sb.String()
}
