package domain

import "fmt"

// Domain is a factored decision-process domain: object classes and actions.
// Actions keep their insertion order.
type Domain struct {
	Name string

	classes []*ObjectClass
	actions []Action
}

// NewDomain creates an empty domain.
func NewDomain(name string) *Domain {
	return &Domain{Name: name}
}

// AddClass registers an object class. Class names must be unique.
func (d *Domain) AddClass(c *ObjectClass) error {
	if _, ok := d.Class(c.Name); ok {
		return fmt.Errorf("object class %q already defined", c.Name)
	}
	d.classes = append(d.classes, c)
	return nil
}

// Class returns the object class with the given name.
func (d *Domain) Class(name string) (*ObjectClass, bool) {
	for _, c := range d.classes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Classes returns the registered object classes.
func (d *Domain) Classes() []*ObjectClass {
	out := make([]*ObjectClass, len(d.classes))
	copy(out, d.classes)
	return out
}

// AddAction registers an action. Action names must be unique.
func (d *Domain) AddAction(a Action) error {
	if _, ok := d.Action(a.Name()); ok {
		return fmt.Errorf("action %q already defined", a.Name())
	}
	d.actions = append(d.actions, a)
	return nil
}

// Action returns the action with the given name.
func (d *Domain) Action(name string) (Action, bool) {
	for _, a := range d.actions {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Actions returns the registered actions in insertion order.
func (d *Domain) Actions() []Action {
	out := make([]Action, len(d.actions))
	copy(out, d.actions)
	return out
}

// ActionNames returns the names of the registered actions in insertion order.
func (d *Domain) ActionNames() []string {
	names := make([]string, 0, len(d.actions))
	for _, a := range d.actions {
		names = append(names, a.Name())
	}
	return names
}
