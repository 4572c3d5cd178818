// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"golang.org/x/exp/slices"

	"github.com/prost-go/prost/state"
)

// ApplicableActions returns a vector of length NumActions() where
// entry i is i (applicable and reasonable), -1 (a precondition is
// violated), or j<i (equivalent to action j under the determinization
// — a duplicate), per §4.4. Results are cached by state hash key.
func (t *Task) ApplicableActions(s state.State) []int {
	if s.HashKey >= 0 {
		if cached, ok := t.applicableCache[s.HashKey]; ok {
			return cached
		}
	}

	n := t.NumActions()
	result := make([]int, n)
	determinizedSuccessors := make([]state.State, n)
	determinizedValid := make([]bool, n)

	for i, a := range t.ActionStates {
		if !t.preconditionsHold(s, a) {
			result[i] = -1
			continue
		}
		result[i] = i

		if !t.CheckReasonability {
			continue
		}
		successor, _ := t.CalcStateTransitionDeterministic(s, i)
		for j := 0; j < i; j++ {
			if result[j] != j || !determinizedValid[j] {
				continue
			}
			if slices.Equal(successor.Values, determinizedSuccessors[j].Values) {
				result[i] = j
				break
			}
		}
		determinizedSuccessors[i] = successor
		determinizedValid[i] = true
	}

	if s.HashKey >= 0 {
		t.applicableCache[s.HashKey] = result
	}
	return result
}

func (t *Task) preconditionsHold(s state.State, a ActionState) bool {
	for _, preIdx := range a.RelevantPreconditions {
		pre := t.Preconditions[preIdx]
		if pre.Evaluate(s, a.Index, a.Values, t.NonFluentValues) == 0 {
			return false
		}
	}
	return true
}
