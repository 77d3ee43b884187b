package dsl

import "github.com/aretw0/tabula/pkg/domain"

// ClassBuilder provides a fluent API for configuring an object class.
type ClassBuilder struct {
	class *domain.ObjectClass
}

// Int adds an integer attribute with inclusive bounds.
func (c *ClassBuilder) Int(name string, lower, upper int) *ClassBuilder {
	c.class.Attributes = append(c.class.Attributes, domain.Attribute{
		Name:  name,
		Type:  domain.AttributeInt,
		Lower: lower,
		Upper: upper,
	})
	return c
}

// Bool adds a boolean attribute stored as 0 or 1.
func (c *ClassBuilder) Bool(name string) *ClassBuilder {
	c.class.Attributes = append(c.class.Attributes, domain.Attribute{
		Name:  name,
		Type:  domain.AttributeBool,
		Lower: 0,
		Upper: 1,
	})
	return c
}

// ObjectBuilder configures an object instance for a seed state.
type ObjectBuilder struct {
	instance domain.ObjectInstance
}

// Object starts an object instance of the given class.
func Object(name, class string) *ObjectBuilder {
	return &ObjectBuilder{instance: domain.ObjectInstance{
		Name:   name,
		Class:  class,
		Values: make(map[string]int),
	}}
}

// Set assigns an attribute value.
func (o *ObjectBuilder) Set(attribute string, value int) *ObjectBuilder {
	o.instance.Values[attribute] = value
	return o
}
