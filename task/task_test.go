// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package task_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
)

// newDiracTask builds the §8 scenario 1 task: one boolean state fluent
// s with CPF KronDelta(not s), reward = s, horizon 3, single (noop)
// action.
func newDiracTask(t *testing.T) *task.Task {
	t.Helper()
	pool := expr.NewPool()
	sf := pool.StateFluentRef(0)
	notS := pool.Unary(expr.Not, sf)
	cpf := pool.Unary(expr.KronDelta, notS)

	rewardExpr := pool.StateFluentRef(0)

	cpfEval := eval.New(pool, cpf, cpf, eval.None, 0, []int64{0}, []int64{0}, 0)
	cpfEval.Domain = []float64{0, 1}

	rewardEval := eval.New(pool, rewardExpr, rewardExpr, eval.None, 1, []int64{0}, []int64{0}, 0)
	rewardEval.RewardMin, rewardEval.RewardMax = 0, 1
	rewardEval.ActionIndependent = true

	hashTable := &state.HashKeyTable{NumEvaluatables: 2, Enabled: false, Affects: [][]int{{}}}
	initial := state.State{Values: []float64{0}, FluentHashes: []int64{0, 0}, HashKey: -1, StepsToGo: 3}

	tk := task.NewTask(
		"dirac", 3, 1.0,
		initial,
		[]task.FluentInfo{{Index: 0, Name: "s", Domain: []float64{0, 1}}},
		nil, nil, nil,
		pool,
		[]*eval.Evaluatable{cpfEval}, rewardEval, nil,
		[]task.ActionState{{Index: 0, Values: nil, ScheduledFluents: nil}},
		task.FinalRewardConfig{Policy: task.FinalRewardNoop},
		false, -1,
		hashTable, nil,
	)
	return tk
}

func TestDiracOnlyCPFScenario(t *testing.T) {
	require := require.New(t)
	tk := newDiracTask(t)

	s := tk.InitialState
	require.Equal(0.0, tk.Reward(s, 0))

	rng := rand.New(rand.NewSource(1))
	s1 := tk.CalcSuccessorState(s, 0, rng)
	require.Equal(1.0, s1.Values[0])
	require.Equal(1.0, tk.Reward(s1, 0))

	s2 := tk.CalcSuccessorState(s1, 0, rng)
	require.Equal(0.0, s2.Values[0])
	require.Equal(0.0, tk.Reward(s2, 0))
}

func TestRewardWithinDeclaredRange(t *testing.T) {
	require := require.New(t)
	tk := newDiracTask(t)
	lo, hi := tk.RewardRange()

	s := tk.InitialState
	r := tk.Reward(s, 0)
	require.GreaterOrEqual(r, lo)
	require.LessOrEqual(r, hi)
}

func TestBestOfCandidateSet(t *testing.T) {
	require := require.New(t)

	pool := expr.NewPool()
	rewardVals := []float64{0.2, 0.5, -0.1}
	// reward(s, a) = rewardVals[a] via a Switch on the action index,
	// fed through an action fluent whose value carries the action's
	// own index for this synthetic test task.
	af := pool.ActionFluentRef(0)
	sw := pool.SwitchExpr(
		expr.SwitchCase{Cond: pool.Binary(expr.Eq, af, pool.Const(0)), Value: pool.Const(rewardVals[0])},
		expr.SwitchCase{Cond: pool.Binary(expr.Eq, af, pool.Const(1)), Value: pool.Const(rewardVals[1])},
		expr.SwitchCase{Cond: -1, Value: pool.Const(rewardVals[2])},
	)
	rewardEval := eval.New(pool, sw, sw, eval.None, 0, []int64{0, 0, 0}, []int64{0, 0, 0}, 0)
	rewardEval.RewardMin, rewardEval.RewardMax = -1, 1

	hashTable := &state.HashKeyTable{NumEvaluatables: 1, Enabled: false}
	initial := state.State{Values: nil, FluentHashes: []int64{0}, HashKey: -1, StepsToGo: 1}

	actionStates := []task.ActionState{
		{Index: 0, Values: []float64{0}},
		{Index: 1, Values: []float64{1}},
		{Index: 2, Values: []float64{2}},
	}

	tk := task.NewTask(
		"candset", 1, 1.0, initial,
		nil, []task.FluentInfo{{Index: 0, Name: "a"}}, nil, nil,
		pool, nil, rewardEval, nil,
		actionStates,
		task.FinalRewardConfig{Policy: task.FinalRewardBestOfCandidateSet, CandidateSet: []int{0, 1, 2}},
		false, -1, hashTable, nil,
	)

	require.Equal(1, tk.OptimalFinalAction(initial))
	require.InDelta(0.5, tk.OptimalFinalReward(initial), 1e-9)
}
