package domain

import "fmt"

// TransitionProbability is one outcome of an action's transition distribution.
type TransitionProbability struct {
	State *State  `json:"state" yaml:"state"`
	P     float64 `json:"p" yaml:"p"`
}

// Sample picks an outcome from a distribution given r in [0, 1).
// Probabilities are not required to sum to exactly 1; the last outcome absorbs
// any rounding remainder.
func Sample(tps []TransitionProbability, r float64) (*State, error) {
	if len(tps) == 0 {
		return nil, fmt.Errorf("cannot sample from an empty distribution")
	}
	sum := 0.0
	for _, tp := range tps {
		sum += tp.P
		if r < sum {
			return tp.State, nil
		}
	}
	return tps[len(tps)-1].State, nil
}
