package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/tabula/pkg/tabulated"
)

// probabilityTolerance bounds the rounding error accepted when summing a distribution.
const probabilityTolerance = 1e-9

// ValidateModel checks a tabulated model for defects a tabular solver would trip on:
// actions that are never applicable, distributions that do not sum to one, and
// outcomes pointing outside the state space.
func ValidateModel(m *tabulated.Model) error {
	var errors []string

	used := make([]bool, len(m.Actions))
	for s := 0; s < m.NumStates; s++ {
		for ai, outcomes := range m.Transitions[s] {
			if outcomes == nil {
				continue
			}
			used[ai] = true

			sum := 0.0
			for _, o := range outcomes {
				if o.Next < 0 || o.Next >= m.NumStates {
					errors = append(errors, fmt.Sprintf("state %d, action '%s': outcome %d out of range", s, m.Actions[ai], o.Next))
				}
				if o.P < 0 {
					errors = append(errors, fmt.Sprintf("state %d, action '%s': negative probability %v", s, m.Actions[ai], o.P))
				}
				sum += o.P
			}
			if math.Abs(sum-1) > probabilityTolerance {
				errors = append(errors, fmt.Sprintf("state %d, action '%s': probabilities sum to %v", s, m.Actions[ai], sum))
			}
		}
	}

	for ai, ok := range used {
		if !ok {
			errors = append(errors, fmt.Sprintf("action '%s' is never applicable", m.Actions[ai]))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// AbsorbingStates returns the states in which no action is applicable.
func AbsorbingStates(m *tabulated.Model) []int {
	var ids []int
	for s := 0; s < m.NumStates; s++ {
		if len(m.Applicable(s)) == 0 {
			ids = append(ids, s)
		}
	}
	return ids
}
