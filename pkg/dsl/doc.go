/*
Package dsl provides a Go DSL for programmatically constructing factored Tabula domains.

It allows developers to declare object classes, seed states and actions with a
fluent builder instead of implementing domain.Action by hand. This is
particularly useful for unit testing, small planning problems, and as the
target of the YAML compiler.

Example usage:

	package main

	import (
		"github.com/aretw0/tabula/pkg/dsl"
	)

	func main() {
		b := dsl.New("chain")

		b.Class("agent").Int("pos", 0, 4)

		b.Seed(dsl.Object("a0", "agent").Set("pos", 0))

		b.Action("right").
			When(dsl.Compare("a0", "pos", "<", 4)).
			Outcome(0.8, dsl.Add("a0", "pos", 1)).
			Outcome(0.2)

		d, seeds, err := b.Build()
		// ... pass d and seeds to tabula.New(...)
	}
*/
package dsl
