// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package eval

import (
	"math"

	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
)

// New constructs an Evaluatable. vectorSize bounds the Vector cache
// (ignored for other policies); callers pass 0 when the policy is not
// Vector.
func New(pool *expr.Pool, original, determinized int, policy Policy, evalIndex int, actionHashKey, actionHashKeyKleene []int64, vectorSize int) *Evaluatable {
	return &Evaluatable{
		Pool:                pool,
		OriginalExpr:        original,
		DeterminizedExpr:    determinized,
		Policy:              policy,
		EvalIndex:           evalIndex,
		ActionHashKey:       actionHashKey,
		ActionHashKeyKleene: actionHashKeyKleene,
		deterministic:       newValueCache[float64](policy, vectorSize),
		probabilistic:       newValueCache[state.DiscretePD](policy, vectorSize),
		kleene:              newValueCache[state.ValueSet](policy, vectorSize),
	}
}

// key computes the lookup key of §4.3 step 1: the state-fluent hash
// key of this evaluatable plus the current action's contribution.
func (e *Evaluatable) key(s state.State, actionIndex int) int64 {
	return s.FluentHashes[e.EvalIndex] + e.ActionHashKey[actionIndex]
}

func (e *Evaluatable) kleeneKey(k state.KleeneState, base []int64, actionIndex int) int64 {
	return k.KleeneHashKey(base) + e.ActionHashKeyKleene[actionIndex]
}

// Evaluate dispatches to the deterministic evaluator of the original
// expression, consulting and populating the deterministic cache.
// Values that are NaN/Inf (an unresolved division by zero, §7) are
// never stored, per the Evaluatable contract of §4.3.
func (e *Evaluatable) Evaluate(s state.State, actionIndex int, actionValues, nonFluentValues []float64) float64 {
	key := e.key(s, actionIndex)
	if v, ok := e.deterministic.get(key); ok {
		return v
	}
	v := e.Pool.Evaluate(e.OriginalExpr, &expr.Context{
		StateValues:     s.Values,
		ActionValues:    actionValues,
		NonFluentValues: nonFluentValues,
	})
	if isFinite(v) {
		e.deterministic.put(key, v)
	}
	return v
}

// EvaluateDeterminized evaluates the determinized form instead of the
// original, used on DFS/IDS search paths (§4.4).
func (e *Evaluatable) EvaluateDeterminized(s state.State, actionIndex int, actionValues, nonFluentValues []float64) float64 {
	// The determinized form shares the same hash key (it depends on
	// the same influencing fluents) but must not be confused with the
	// probabilistic cache, so it reuses the deterministic cache keyed
	// the same way: callers only ever use one of Evaluate/
	// EvaluateDeterminized for a given Evaluatable in practice (a CPF
	// is either searched probabilistically or deterministically within
	// one engine run).
	key := e.key(s, actionIndex)
	if v, ok := e.deterministic.get(key); ok {
		return v
	}
	v := e.Pool.Evaluate(e.DeterminizedExpr, &expr.Context{
		StateValues:     s.Values,
		ActionValues:    actionValues,
		NonFluentValues: nonFluentValues,
	})
	if isFinite(v) {
		e.deterministic.put(key, v)
	}
	return v
}

// EvaluatePD dispatches to the probabilistic evaluator, consulting and
// populating the DiscretePD cache.
func (e *Evaluatable) EvaluatePD(s state.State, actionIndex int, actionValues, nonFluentValues []float64) state.DiscretePD {
	key := e.key(s, actionIndex)
	if v, ok := e.probabilistic.get(key); ok {
		return v
	}
	v := e.Pool.EvaluatePD(e.OriginalExpr, &expr.Context{
		StateValues:     s.Values,
		ActionValues:    actionValues,
		NonFluentValues: nonFluentValues,
	})
	e.probabilistic.put(key, v)
	return v
}

// EvaluateKleene dispatches to the Kleene evaluator, consulting and
// populating the ValueSet cache keyed by the Kleene hash key plus this
// evaluatable's action-hash-key-Kleene contribution.
func (e *Evaluatable) EvaluateKleene(k state.KleeneState, kleeneBase []int64, actionIndex int, actionValues, nonFluentValues []float64) state.ValueSet {
	key := e.kleeneKey(k, kleeneBase, actionIndex)
	if v, ok := e.kleene.get(key); ok {
		return v
	}
	v := e.Pool.EvaluateKleene(e.OriginalExpr, &expr.KleeneContext{
		State:           k,
		ActionValues:    actionValues,
		NonFluentValues: nonFluentValues,
	})
	e.kleene.put(key, v)
	return v
}

// DisableCaching transitions this Evaluatable's Map caches to
// DisabledMap (§5, §7). Idempotent.
func (e *Evaluatable) DisableCaching() {
	e.deterministic.disable()
	e.probabilistic.disable()
	e.kleene.disable()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
