// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine defines the search-engine contract of §4.6 and the
// simple, non-tree engines of §4.7 that can stand alone or serve as
// the initializer's sub-engine inside THTS.
package engine

import (
	"math"
	"math/rand"

	"github.com/prost-go/prost/state"
)

// Task is the subset of task.Task every engine needs. Kept as an
// interface (rather than importing task directly into thts/selection/
// etc.) per the §9 design note on passing an explicit context value
// into every consumer instead of relying on per-class statics.
type Task interface {
	Reward(s state.State, actionIndex int) float64
	RewardRange() (float64, float64)
	NumActions() int
	ApplicableActions(s state.State) []int
	CalcStateTransitionDeterministic(s state.State, actionIndex int) (state.State, float64)
	CalcSuccessorState(s state.State, actionIndex int, rng *rand.Rand) state.State
	HorizonSteps() int
	DiscountFactor() float64
}

// NegInf is the Q-value assigned to an inapplicable action (§4.6).
var NegInf = math.Inf(-1)

// SearchEngine is the common contract of §4.6: an engine exposes at
// least one of EstimateQValues, EstimateBestActions, or
// EstimateStateValue, and declares whether it consumes the
// probabilistic or determinized task, whether it caches, whether it
// uses reward-lock detection, and its maximum search depth.
type SearchEngine interface {
	// EstimateQValues returns one entry per action; NegInf for
	// inapplicable actions.
	EstimateQValues(s state.State, applicable []int) []float64
	// UsesCaching reports whether this engine's evaluatable caches are
	// active; disabling caching cascades to every sub-engine (§4.6).
	UsesCaching() bool
	// SetCaching cascades a caching toggle into this engine and any
	// sub-engine it wraps.
	SetCaching(enabled bool)
	// MaxSearchDepth bounds how many steps this engine looks ahead.
	MaxSearchDepth() int
}

// isRepresentative reports whether action i is applicable and not a
// determinization-duplicate of some j<i (§4.4): only representative
// actions carry a meaningful Q-value, mirroring the original's
// "actionsToExpand[i] == i" guard on every simple engine.
func isRepresentative(applicable []int, i int) bool {
	return applicable[i] == i
}

// EstimateBestActions derives tie-inclusive argmax actions from an
// engine's Q-vector, the helper every simple engine and THTS's
// recommendation function share (§4.6).
func EstimateBestActions(q []float64) []int {
	best := NegInf
	var out []int
	for a, v := range q {
		switch {
		case v > best:
			best = v
			out = []int{a}
		case v == best:
			out = append(out, a)
		}
	}
	return out
}

// EstimateStateValue reduces a Q-vector to a single scalar, the max
// over applicable actions (§4.6).
func EstimateStateValue(q []float64) float64 {
	best := NegInf
	for _, v := range q {
		if v > best {
			best = v
		}
	}
	return best
}
