package tabulated

import "fmt"

// Outcome is one entry of a tabular transition distribution.
type Outcome struct {
	Next int     `json:"next" yaml:"next"`
	P    float64 `json:"p" yaml:"p"`
}

// Model is the fully resolved tabular form of a domain, ready for tabular
// solvers or foreign harnesses that only understand integer states.
type Model struct {
	Domain    string   `json:"domain" yaml:"domain"`
	NumStates int      `json:"num_states" yaml:"num_states"`
	Actions   []string `json:"actions" yaml:"actions"`

	// Transitions[s][a] lists the outcomes of action Actions[a] in state s.
	// It is nil when the action is not applicable in s.
	Transitions [][][]Outcome `json:"transitions" yaml:"transitions"`
}

// Model resolves every (state, action) pair through the tabulated domain.
// The domain is generated first if GenerateDomain has not been called.
func (w *Wrapper) Model() (*Model, error) {
	tab := w.tabDomain
	if tab == nil {
		var err error
		if tab, err = w.GenerateDomain(); err != nil {
			return nil, err
		}
	}

	actions := tab.Actions()
	n := w.enumerator.NumStatesEnumerated()
	m := &Model{
		Domain:      tab.Name,
		NumStates:   n,
		Actions:     tab.ActionNames(),
		Transitions: make([][][]Outcome, n),
	}

	for id := 0; id < n; id++ {
		ts := StateFor(id)
		row := make([][]Outcome, len(actions))
		for ai, a := range actions {
			ok, err := a.Applicable(ts, nil)
			if err != nil {
				return nil, fmt.Errorf("state %d, action %s: %w", id, a.Name(), err)
			}
			if !ok {
				continue
			}
			tps, err := a.Transitions(ts, nil)
			if err != nil {
				return nil, fmt.Errorf("state %d, action %s: %w", id, a.Name(), err)
			}
			outcomes := make([]Outcome, 0, len(tps))
			for _, tp := range tps {
				next, err := w.StateID(tp.State)
				if err != nil {
					return nil, err
				}
				outcomes = append(outcomes, Outcome{Next: next, P: tp.P})
			}
			row[ai] = outcomes
		}
		m.Transitions[id] = row
	}
	return m, nil
}

// Outcomes returns the outcomes of the named action in state s.
// ok is false when the state or action is unknown or the action is not applicable.
func (m *Model) Outcomes(s int, action string) ([]Outcome, bool) {
	if s < 0 || s >= len(m.Transitions) {
		return nil, false
	}
	for ai, name := range m.Actions {
		if name == action {
			out := m.Transitions[s][ai]
			return out, out != nil
		}
	}
	return nil, false
}

// Applicable returns the names of the actions applicable in state s.
func (m *Model) Applicable(s int) []string {
	if s < 0 || s >= len(m.Transitions) {
		return nil
	}
	var names []string
	for ai, name := range m.Actions {
		if m.Transitions[s][ai] != nil {
			names = append(names, name)
		}
	}
	return names
}
