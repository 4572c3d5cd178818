// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"math/rand"

	"github.com/prost-go/prost/state"
)

// SampleSuccessor evaluates every CPF under evaluate_pd and returns the
// resulting PDState (§4.4). Deterministic CPFs return Dirac
// distributions; slots with only one possible value are already
// resolved once this returns.
func (t *Task) SampleSuccessor(s state.State, actionIndex int) state.PDState {
	pd := state.NewPDState(len(t.StateFluents), s.StepsToGo-1)
	actionValues := t.ActionStates[actionIndex].Values
	for i, cpf := range t.CPFs {
		pd.Values[i] = cpf.EvaluatePD(s, actionIndex, actionValues, t.NonFluentValues)
	}
	return pd
}

// CalcSuccessorState computes the full successor PDState and then
// draws a concrete successor State from it using rng (§4.4).
func (t *Task) CalcSuccessorState(s state.State, actionIndex int, rng *rand.Rand) state.State {
	pd := t.SampleSuccessor(s, actionIndex)
	return pd.Sample(rng, t.HashTable)
}

// CalcStateTransitionDeterministic evaluates the determinized CPFs
// instead of the probabilistic ones, used by DFS/IDS (§4.4, §4.7). It
// returns the successor state and the immediate reward of the
// transition under the determinized reward function.
func (t *Task) CalcStateTransitionDeterministic(s state.State, actionIndex int) (state.State, float64) {
	actionValues := t.ActionStates[actionIndex].Values
	values := make([]float64, len(t.StateFluents))
	for i, cpf := range t.CPFs {
		values[i] = cpf.EvaluateDeterminized(s, actionIndex, actionValues, t.NonFluentValues)
	}
	successor := state.NewState(values, s.StepsToGo-1, t.HashTable)
	reward := t.RewardFn.EvaluateDeterminized(s, actionIndex, actionValues, t.NonFluentValues)
	return successor, reward
}
