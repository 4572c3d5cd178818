// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package thts_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
	"github.com/prost-go/prost/thts"
	"github.com/prost-go/prost/thts/backup"
	"github.com/prost-go/prost/thts/initializer"
	"github.com/prost-go/prost/thts/outcome"
	"github.com/prost-go/prost/thts/selection"

	prost "github.com/prost-go/prost"
)

// newTwoActionTask builds a boolean fluent s with CPF "if a then
// KronDelta(not s) else KronDelta(s)", reward = s (action-independent),
// two actions (noop, flip). Mirrors engine_test.go's task of the same
// name; each package's test file builds its own copy since unexported
// test helpers don't cross package boundaries.
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

func newMCUCTConfig(rng *rand.Rand) thts.Config {
	sel := selection.New(1.0, selection.Log, 0, rng)
	out := outcome.New(rng)
	return thts.Config{
		ActionSelector:  sel,
		OutcomeSelector: out,
		Backup:          backup.MaxMC{},
		Initializer:     initializer.New(engine.NewUniform(0), 0, 0),
		Termination:     prost.TerminationTrials,
		MaxTrials:       200,
		Recommendation:  prost.RecommendMostPlayedArm,
		State:           prost.NewEngineState(7),
	}
}

func TestEstimateQValuesPrefersFlippingIntoReward(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	rng := rand.New(rand.NewSource(11))

	e := thts.New(tk, newMCUCTConfig(rng))
	applicable := tk.ApplicableActions(tk.InitialState)
	q := e.EstimateQValues(tk.InitialState, applicable)

	// From s=0, flipping (action 1) reaches s=1 immediately, worth
	// strictly more than staying at s=0 under noop.
	require.Greater(q[1], q[0])
}

func TestSearchRecommendsFlipAction(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	rng := rand.New(rand.NewSource(3))

	e := thts.New(tk, newMCUCTConfig(rng))
	applicable := tk.ApplicableActions(tk.InitialState)
	e.Search(tk.InitialState, applicable)

	require.Equal(1, e.RecommendedAction(applicable))
}

func TestSearchHonorsMaxTimeTermination(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	rng := rand.New(rand.NewSource(5))

	cfg := newMCUCTConfig(rng)
	cfg.Termination = prost.TerminationTime
	cfg.MaxTrials = 0
	cfg.MaxTime = 5 * time.Millisecond

	e := thts.New(tk, cfg)
	applicable := tk.ApplicableActions(tk.InitialState)

	start := time.Now()
	e.Search(tk.InitialState, applicable)
	require.Less(time.Since(start), time.Second)
	require.Greater(e.TrialsThisStep, 0)
}

func TestUniquePolicyShortcutSkipsTrials(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	rng := rand.New(rand.NewSource(9))

	e := thts.New(tk, newMCUCTConfig(rng))
	// Only one applicable action: the shortcut fires and no trial runs.
	e.Search(tk.InitialState, []int{0, -1})
	require.Equal(0, e.TrialsThisStep)
	require.Equal(0, e.RecommendedAction([]int{0, -1}))
}

func TestPartialBellmanRunsWithUnsolvedMonteCarlo(t *testing.T) {
	require := require.New(t)
	tk := newTwoActionTask(t, 2)
	rng := rand.New(rand.NewSource(13))

	cfg := newMCUCTConfig(rng)
	cfg.Backup = backup.NewPartialBellman()
	cfg.OutcomeSelector = outcome.NewUnsolved(rng)

	e := thts.New(tk, cfg)
	applicable := tk.ApplicableActions(tk.InitialState)
	e.Search(tk.InitialState, applicable)

	require.Greater(e.TrialsThisStep, 0)
	require.Equal(1, e.RecommendedAction(applicable))
}
