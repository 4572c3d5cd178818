// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package taskio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
	"github.com/prost-go/prost/taskio"
)

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

	hashTable := &state.HashKeyTable{
		NumEvaluatables:  2,
		Affects:          [][]int{{0, 1}},
		StateHashByValue: [][]int64{{0, 1}},
		FluentFactor:     [][]int64{{1, 1}},
	}
	initial := state.NewState([]float64{0}, horizon, hashTable)

	return task.NewTask(
		"two-action", horizon, 0.9, initial,
		[]task.FluentInfo{{Index: 0, Name: "s", Domain: []float64{0, 1}}},
		[]task.FluentInfo{{Index: 0, Name: "a", Domain: []float64{0, 1}}},
		[]task.FluentInfo{{Index: 0, Name: "MAX-TRIES", Domain: []float64{5}}},
		[]float64{5},
		pool,
		[]*eval.Evaluatable{cpfEval}, rewardEval, nil,
		[]task.ActionState{
			{Index: 0, Values: []float64{0}},
			{Index: 1, Values: []float64{1}, ScheduledFluents: []int{0}},
		},
		task.FinalRewardConfig{Policy: task.FinalRewardFirstApplicable, CandidateSet: []int{0, 1}},
		true, 1,
		hashTable, []int64{1, 1},
	)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 5)
	doc := &taskio.Document{
		Task:     tk,
		Training: []state.State{tk.InitialState},
	}

	b := taskio.Marshal(doc)
	require.NotEmpty(b)

	got, err := taskio.Unmarshal(b)
	require.NoError(err)
	require.NotNil(got.Task)

	gt := got.Task
	require.Equal(tk.Name, gt.Name)
	require.Equal(tk.Horizon, gt.Horizon)
	require.Equal(tk.Discount, gt.Discount)
	require.Equal(tk.InitialState.Values, gt.InitialState.Values)
	require.Equal(tk.GoalTestAction, gt.GoalTestAction)
	require.Equal(tk.RewardLockDetectionEnabled, gt.RewardLockDetectionEnabled)
	require.Equal(tk.FinalReward, gt.FinalReward)
	require.Equal(tk.KleeneBase, gt.KleeneBase)
	require.Len(gt.StateFluents, len(tk.StateFluents))
	require.Len(gt.ActionFluents, len(tk.ActionFluents))
	require.Len(gt.NonFluents, len(tk.NonFluents))
	require.Equal(tk.NonFluentValues, gt.NonFluentValues)
	require.Len(gt.CPFs, len(tk.CPFs))
	require.Equal(tk.RewardFn.RewardMin, gt.RewardFn.RewardMin)
	require.Equal(tk.RewardFn.RewardMax, gt.RewardFn.RewardMax)
	require.Equal(tk.RewardFn.ActionIndependent, gt.RewardFn.ActionIndependent)
	require.Len(gt.ActionStates, len(tk.ActionStates))
	require.Equal(tk.ActionStates[1].ScheduledFluents, gt.ActionStates[1].ScheduledFluents)
	require.Len(got.Training, 1)
}

func TestReadWriteRoundTrip(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 3)
	doc := &taskio.Document{Task: tk}

	var buf bytes.Buffer
	require.NoError(taskio.Write(&buf, doc))

	got, err := taskio.Read(&buf)
	require.NoError(err)
	require.Equal(tk.Name, got.Task.Name)
	require.Empty(got.Training)
}
