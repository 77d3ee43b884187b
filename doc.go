/*
Package tabula turns factored decision-process domains into tabulated ones.

A factored domain describes states as sets of objects with bounded integer
attributes. Tabular planners and learners (value iteration, Q-tables, foreign
harnesses) instead want every state to be a single integer. Tabula enumerates
every state reachable from a set of seed states, assigns each one a stable id in
breadth-first discovery order, and generates a new domain whose states carry
only that id and whose actions delegate to the source actions.

# Usage

Build a domain with the dsl package, or describe it in YAML and use Load.

	b := dsl.New("chain")
	b.Class("agent").Int("pos", 0, 3)
	b.Seed(dsl.Object("a0", "agent").Set("pos", 0))
	b.Action("right").
		When(dsl.Compare("a0", "pos", "<", 3)).
		Outcome(0.8, dsl.Add("a0", "pos", 1)).
		Outcome(0.2)

	d, seeds, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := tabula.New(d, seeds)
	if err != nil {
		log.Fatal(err)
	}

	model, _ := eng.Model()
	fmt.Println(model.NumStates) // 4

# Equivalence

Which states count as "the same" is decided by a domain.StateHasher. The
default ignores object names, so states that differ only by renaming objects
of the same class share an id.

# Persistence

Enumeration tables can be saved to any ports.TableStore (memory, files, Redis)
and restored later with the same ids.
*/
package tabula
