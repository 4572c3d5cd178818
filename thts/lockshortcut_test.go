// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package thts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	prost "github.com/prost-go/prost"
	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/lock"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
	"github.com/prost-go/prost/thts/backup"
	"github.com/prost-go/prost/thts/initializer"
	"github.com/prost-go/prost/thts/outcome"
	"github.com/prost-go/prost/thts/selection"
)

// newBernoulliGoalTask mirrors lock_test.go's fixture for §8 scenario
// 2: fluent s with CPF "if a then KronDelta(1) else Bernoulli(0.5)",
// reward = s, H=2, goal-test action = a (index 1).
func newBernoulliGoalTask(t *testing.T) *task.Task {
	t.Helper()
	pool := expr.NewPool()
	sf := pool.StateFluentRef(0)
	af := pool.ActionFluentRef(0)
	cpf := pool.IfThenElseExpr(af, pool.Unary(expr.KronDelta, pool.Const(1)), pool.Unary(expr.Bernoulli, pool.Const(0.5)))
	rewardExpr := pool.StateFluentRef(0)

	cpfEval := eval.New(pool, cpf, cpf, eval.None, 0, []int64{0, 0}, []int64{0, 0}, 0)
	rewardEval := eval.New(pool, rewardExpr, rewardExpr, eval.None, 1, []int64{0, 0}, []int64{0, 0}, 0)
	rewardEval.RewardMin, rewardEval.RewardMax = 0, 1

	hashTable := &state.HashKeyTable{NumEvaluatables: 2, Affects: [][]int{{}}}
	initial := state.State{Values: []float64{0}, FluentHashes: []int64{0, 0}, HashKey: -1, StepsToGo: 2}

	return task.NewTask(
		"bernoulli-goal", 2, 1.0, initial,
		[]task.FluentInfo{{Index: 0, Name: "s", Domain: []float64{0, 1}}},
		[]task.FluentInfo{{Index: 0, Name: "a", Domain: []float64{0, 1}}},
		nil, nil, pool,
		[]*eval.Evaluatable{cpfEval}, rewardEval, nil,
		[]task.ActionState{{Index: 0, Values: []float64{0}}, {Index: 1, Values: []float64{1}}},
		task.FinalRewardConfig{Policy: task.FinalRewardNoop},
		true, 1,
		hashTable, []int64{1},
	)
}

// TestInitializeDecisionNodeDetectsGoalLock pins down the node-level
// half of §8 scenario 2: a goal state must be flagged GoalLock (not
// RewardLock, which is the dead-end-only case) and its leaf value must
// come from the goal-test action's reward, not action 0's.
func TestInitializeDecisionNodeDetectsGoalLock(t *testing.T) {
	require := require.New(t)
	tk := newBernoulliGoalTask(t)
	det := lock.New(tk)
	rng := rand.New(rand.NewSource(1))

	e := New(tk, Config{
		ActionSelector:  selection.New(1.0, selection.Log, 0, rng),
		OutcomeSelector: outcome.New(rng),
		Backup:          backup.MaxMC{},
		Initializer:     initializer.New(engine.NewUniform(0), 0, 0),
		Termination:     prost.TerminationTrials,
		MaxTrials:       50,
		RewardLock:      det,
		State:           prost.NewEngineState(1),
	})

	goalState := state.State{Values: []float64{1}, HashKey: -1, StepsToGo: 1}
	node := &Node{}
	e.initializeDecisionNode(node, goalState, tk.ApplicableActions(goalState))

	require.True(node.GoalLock)
	require.False(node.RewardLock)
	require.True(node.Initialized)

	total := e.rewardLockValue(node, goalState, 0)
	require.Equal(1.0, total) // reward(s=1, goalTestAction) * stepsToGo(1)
}

// TestSearchSkipsTrialsAtGoalLockRoot covers the engine-level half: a
// root state that is itself a goal lock resolves via uniquePolicy
// without running any trials, and subsequent calls reuse the detector's
// memoized result rather than re-deriving it.
func TestSearchSkipsTrialsAtGoalLockRoot(t *testing.T) {
	require := require.New(t)
	tk := newBernoulliGoalTask(t)
	det := lock.New(tk)
	rng := rand.New(rand.NewSource(2))

	e := New(tk, Config{
		ActionSelector:  selection.New(1.0, selection.Log, 0, rng),
		OutcomeSelector: outcome.New(rng),
		Backup:          backup.MaxMC{},
		Initializer:     initializer.New(engine.NewUniform(0), 0, 0),
		Termination:     prost.TerminationTrials,
		MaxTrials:       50,
		RewardLock:      det,
		State:           prost.NewEngineState(1),
	})

	goalState := state.State{Values: []float64{1}, HashKey: -1, StepsToGo: 2}
	applicable := tk.ApplicableActions(goalState)

	e.Search(goalState, applicable)
	require.Equal(0, e.TrialsThisStep)
	require.True(e.root.Solved)
	require.True(e.root.GoalLock)
}
