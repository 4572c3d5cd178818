// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
)

// newTwoActionTask builds a boolean fluent s with CPF "if a then
// KronDelta(not s) else KronDelta(s)", reward = s (action-independent),
// two actions (noop, flip), horizon steps configurable.
func newTwoActionTask(t *testing.T, horizon int) *task.Task {
	t.Helper()
	pool := expr.NewPool()
	sf := pool.StateFluentRef(0)
	af := pool.ActionFluentRef(0)
	notS := pool.Unary(expr.Not, sf)
	cpf := pool.IfThenElseExpr(af, pool.Unary(expr.KronDelta, notS), pool.Unary(expr.KronDelta, sf))
	rewardExpr := pool.StateFluentRef(0)

	cpfEval := eval.New(pool, cpf, cpf, eval.None, 0, []int64{0, 0}, []int64{0, 0}, 0)
	rewardEval := eval.New(pool, rewardExpr, rewardExpr, eval.None, 1, []int64{0, 0}, []int64{0, 0}, 0)
	rewardEval.RewardMin, rewardEval.RewardMax = 0, 1
	rewardEval.ActionIndependent = true

	hashTable := &state.HashKeyTable{NumEvaluatables: 2, Affects: [][]int{{}}}
	initial := state.State{Values: []float64{0}, FluentHashes: []int64{0, 0}, HashKey: -1, StepsToGo: horizon}

	return task.NewTask(
		"two-action", horizon, 1.0, initial,
		[]task.FluentInfo{{Index: 0, Name: "s", Domain: []float64{0, 1}}},
		[]task.FluentInfo{{Index: 0, Name: "a", Domain: []float64{0, 1}}},
		nil, nil, pool,
		[]*eval.Evaluatable{cpfEval}, rewardEval, nil,
		[]task.ActionState{{Index: 0, Values: []float64{0}}, {Index: 1, Values: []float64{1}}},
		task.FinalRewardConfig{Policy: task.FinalRewardNoop},
		false, -1,
		hashTable, nil,
	)
}

func TestUniformEstimateQValues(t *testing.T) {
	require := require.New(t)
	u := engine.NewUniform(0.5)
	q := u.EstimateQValues(state.State{}, []int{0, 1})
	require.Equal([]float64{0.5, 0.5}, q)

	q = u.EstimateQValues(state.State{}, []int{0, -1})
	require.Equal(0.5, q[0])
	require.Equal(engine.NegInf, q[1])
}

func TestEstimateBestActionsTieInclusive(t *testing.T) {
	require := require.New(t)
	best := engine.EstimateBestActions([]float64{1, 2, 2, engine.NegInf})
	require.ElementsMatch([]int{1, 2}, best)
}

func TestRandomWalkStaysWithinRewardRange(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 3)
	rng := rand.New(rand.NewSource(7))
	rw := engine.NewRandomWalk(tk, rng, 25)

	applicable := tk.ApplicableActions(tk.InitialState)
	q := rw.EstimateQValues(tk.InitialState, applicable)
	for i, a := range applicable {
		if a < 0 {
			continue
		}
		require.GreaterOrEqual(q[i], 0.0)
		require.LessOrEqual(q[i], 1.0)
	}
}

func TestDFSPrefersFlippingIntoReward(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	dfs := engine.NewDFS(tk)

	applicable := tk.ApplicableActions(tk.InitialState)
	q := dfs.EstimateQValues(tk.InitialState, applicable)

	// From s=0, flipping (action 1) reaches s=1 immediately, which is
	// worth strictly more than staying at s=0 under noop.
	require.Greater(q[1], q[0])
}

func TestMinimalLookaheadActionIndependentReward(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	mls := engine.NewMinimalLookahead(tk)

	applicable := tk.ApplicableActions(tk.InitialState)
	q := mls.EstimateQValues(tk.InitialState, applicable)
	require.Greater(q[1], q[0])
}

func TestIDSAgreesWithDFSAtFullDepth(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	ids := engine.NewIDS(tk, 2)
	ids.TerminateWithReasonableAction = false

	applicable := tk.ApplicableActions(tk.InitialState)
	q := ids.EstimateQValues(tk.InitialState, applicable)
	require.Greater(q[1], q[0])
}
