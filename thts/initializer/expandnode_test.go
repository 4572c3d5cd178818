// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package initializer_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
	"github.com/prost-go/prost/thts"
	"github.com/prost-go/prost/thts/initializer"
)

func newTwoActionTask(t *testing.T) *task.Task {
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
	initial := state.State{Values: []float64{0}, FluentHashes: []int64{0, 0}, HashKey: -1, StepsToGo: 2}

	return task.NewTask(
		"two-action", 2, 1.0, initial,
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

func TestInitializeSeedsChildrenAndParentVisits(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t)
	sub := engine.NewUniform(2.0)
	init := initializer.New(sub, 1.0, 3)

	node := &thts.Node{}
	applicable := tk.ApplicableActions(tk.InitialState)
	newChild := func(prob float64) *thts.Node { return &thts.Node{Prob: prob} }

	init.Initialize(node, tk.InitialState, tk, applicable, newChild)

	require.Len(node.Children, 2)
	require.NotNil(node.Children[0])
	require.NotNil(node.Children[1])
	require.Equal(3, node.Children[0].NumberOfVisits)
	require.Equal(float64(2*2.0), node.Children[0].FutureReward) // heuristicWeight(1) * stepsToGo(2) * q(2.0)
	require.Equal(6, node.NumberOfVisits)                        // two children, 3 initial visits each
	require.Equal(node.Children[0].FutureReward, node.FutureReward)
}

func TestInitializeDefaultsZeroParams(t *testing.T) {
	require := require.New(t)
	init := initializer.New(nil, 0, 0)
	require.Equal(1.0, init.HeuristicWeight)
	require.Equal(1, init.NumberOfInitialVisits)
}

func TestInitializeSkipsInapplicableAndAliasesDuplicates(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t)
	sub := engine.NewUniform(1.0)
	init := initializer.New(sub, 1, 1)

	node := &thts.Node{}
	newChild := func(prob float64) *thts.Node { return &thts.Node{Prob: prob} }

	// applicable has three slots: action 1 inapplicable, action 2 a
	// duplicate of action 0 under determinization; EstimateQValues only
	// needs len(applicable) matching entries, not NumActions().
	applicable := []int{0, -1, 0}
	init.Initialize(node, tk.InitialState, tk, applicable, newChild)

	require.Nil(node.Children[1])
	require.Same(node.Children[0], node.Children[2])
}

// TestInitializeQueriesSubEngineExactlyOnce pins down the calling
// contract between ExpandNode and its SubEngine: one EstimateQValues
// call per Initialize, with the node's own state and applicable-action
// vector passed through unchanged. A real SearchEngine would make this
// hard to tell apart from "happens to return the right numbers"; the
// mock makes the call itself the assertion.
func TestInitializeQueriesSubEngineExactlyOnce(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	tk := newTwoActionTask(t)
	applicable := tk.ApplicableActions(tk.InitialState)

	sub := NewMockSearchEngine(ctrl)
	sub.EXPECT().
		EstimateQValues(tk.InitialState, applicable).
		Times(1).
		Return([]float64{1.5, 2.5})

	init := initializer.New(sub, 1.0, 1)
	node := &thts.Node{}
	newChild := func(prob float64) *thts.Node { return &thts.Node{Prob: prob} }

	init.Initialize(node, tk.InitialState, tk, applicable, newChild)

	require.Equal(float64(2*2.5), node.Children[1].FutureReward)
}
