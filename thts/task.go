// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package thts

import (
	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/state"
)

// Task is the subset of task.Task the tree search needs beyond
// engine.Task: the full probabilistic successor distribution (rather
// than one sampled draw) and the final-reward leaf evaluation (§4.8).
type Task interface {
	engine.Task
	SampleSuccessor(s state.State, actionIndex int) state.PDState
	OptimalFinalReward(s state.State) float64
	OptimalFinalAction(s state.State) int
	HashKeyTable() *state.HashKeyTable
}

// isRepresentative mirrors engine's unexported helper of the same
// name: only an action that is applicable and not a
// determinization-duplicate of an earlier index gets its own child
// (§4.4).
func isRepresentative(applicable []int, i int) bool {
	return applicable[i] == i
}
