// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package lock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/lock"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
)

// newBernoulliGoalTask builds the §8 scenario 2 task: fluent s with
// CPF "if a then KronDelta(1) else Bernoulli(0.5)", reward = s, H=2,
// goal-test action = a.
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

func TestGoalLockDetectedAtSOne(t *testing.T) {
	require := require.New(t)
	tk := newBernoulliGoalTask(t)
	det := lock.New(tk)

	sOne := state.State{Values: []float64{1}}
	require.True(det.IsGoal(sOne))

	sZero := tk.InitialState
	require.False(det.IsGoal(sZero))
}

func TestGoalLockMemoized(t *testing.T) {
	require := require.New(t)
	tk := newBernoulliGoalTask(t)
	det := lock.New(tk)

	sOne := state.State{Values: []float64{1}}
	require.True(det.IsGoal(sOne))
	// Second call must hit the memo rather than re-running the
	// fixed point; behaviorally indistinguishable but documents the
	// §5 "proven locks are cached" contract.
	require.True(det.IsGoal(sOne))
}

// newDeadEndTask builds a single boolean fluent that never leaves 0
// under any action, with reward pinned at the task minimum.
func newDeadEndTask(t *testing.T) *task.Task {
	t.Helper()
	pool := expr.NewPool()
	sf := pool.StateFluentRef(0)
	cpf := pool.Unary(expr.KronDelta, sf) // self-loop: s' = s
	rewardExpr := pool.Const(-1)          // constant minimum reward

	cpfEval := eval.New(pool, cpf, cpf, eval.None, 0, []int64{0, 0}, []int64{0, 0}, 0)
	rewardEval := eval.New(pool, rewardExpr, rewardExpr, eval.None, 1, []int64{0, 0}, []int64{0, 0}, 0)
	rewardEval.RewardMin, rewardEval.RewardMax = -1, 1

	hashTable := &state.HashKeyTable{NumEvaluatables: 2, Affects: [][]int{{}}}
	initial := state.State{Values: []float64{0}, FluentHashes: []int64{0, 0}, HashKey: -1, StepsToGo: 5}

	return task.NewTask(
		"dead-end", 5, 1.0, initial,
		[]task.FluentInfo{{Index: 0, Name: "s", Domain: []float64{0, 1}}},
		[]task.FluentInfo{{Index: 0, Name: "a", Domain: []float64{0, 1}}},
		nil, nil, pool,
		[]*eval.Evaluatable{cpfEval}, rewardEval, nil,
		[]task.ActionState{{Index: 0, Values: []float64{0}}, {Index: 1, Values: []float64{1}}},
		task.FinalRewardConfig{Policy: task.FinalRewardNoop},
		true, -1,
		hashTable, []int64{1},
	)
}

func TestDeadEndClosure(t *testing.T) {
	require := require.New(t)
	tk := newDeadEndTask(t)
	det := lock.New(tk)

	require.True(det.IsDeadEnd(tk.InitialState))
	// §8 law: every successor of a proven dead end is also a dead end.
	require.True(det.IsDeadEnd(state.State{Values: []float64{0}}))
}
