// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/prost-go/prost/state"
)

// IDS runs DFS at successively greater search depths from the same
// root, stopping as soon as one of two criteria is met: a reasonable
// action has clearly separated itself from the rest, or the engine's
// learned maximum search depth is reached (§4.7). The returned
// Q-values are those of the deepest DFS pass, divided by that pass's
// depth (an average reward per step).
type IDS struct {
	task    TaskWithFinalReward
	dfs     *DFS
	caching bool
	cache   *ristretto.Cache[int64, []float64]

	maxSearchDepth int
	minSearchDepth int

	// TerminateWithReasonableAction enables the early-exit heuristic:
	// stop deepening once some action beats noop (or, if noop is
	// inapplicable, once any two applicable actions disagree).
	TerminateWithReasonableAction bool

	TerminationTimeout       time.Duration
	StrictTerminationTimeout time.Duration

	AccumulatedSearchDepth int
	NumberOfRuns           int
	CacheHits              int

	// elapsedTimeByDepth[d] collects the wall-clock cost of a depth-d
	// DFS pass during Learn, used to choose MaxSearchDepth afterward.
	elapsedTimeByDepth [][]time.Duration
	isLearning         bool
}

// NewIDS returns an IDS engine bound to task, wrapping its own DFS
// sub-engine at maxSearchDepth.
func NewIDS(task TaskWithFinalReward, maxSearchDepth int) *IDS {
	cache, err := ristretto.NewCache(&ristretto.Config[int64, []float64]{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		panic(err)
	}
	return &IDS{
		task:                          task,
		dfs:                           NewDFS(task),
		caching:                       true,
		cache:                         cache,
		maxSearchDepth:                maxSearchDepth,
		minSearchDepth:                2,
		TerminateWithReasonableAction: true,
		TerminationTimeout:            5 * time.Millisecond,
		StrictTerminationTimeout:      100 * time.Millisecond,
		elapsedTimeByDepth:            make([][]time.Duration, maxSearchDepth+2),
	}
}

func (ids *IDS) EstimateQValues(s state.State, applicable []int) []float64 {
	if ids.caching {
		if cached, ok := ids.cache.Get(s.HashKey); ok {
			ids.CacheHits++
			return append([]float64(nil), cached...)
		}
	}

	limit := ids.maxSearchDepth
	if s.StepsToGo < limit {
		limit = s.StepsToGo
	}

	start := time.Now()
	depth := 1
	q := make([]float64, len(applicable))
	for {
		depth++
		q = ids.dfsToDepth(s, applicable, depth)
		if !ids.moreIterations(start, depth, limit, applicable, q) {
			break
		}
	}

	for i := range q {
		if isRepresentative(applicable, i) {
			q[i] /= float64(depth)
		}
	}

	ids.AccumulatedSearchDepth += depth
	ids.NumberOfRuns++
	if ids.caching {
		// TODO: every result is cached regardless of whether it was
		// reached with a reasonable action or a timeout; restricting
		// this would avoid caching under-searched values.
		ids.cache.Set(s.HashKey, append([]float64(nil), q...), 1)
		ids.cache.Wait()
	}
	return q
}

// dfsToDepth truncates the rootState's steps-to-go to depth and runs
// the wrapped DFS, giving the same bounded-horizon behavior as the
// original's "reset then increment remainingSteps" loop.
func (ids *IDS) dfsToDepth(s state.State, applicable []int, depth int) []float64 {
	capped := s
	capped.StepsToGo = depth
	return ids.dfs.EstimateQValues(capped, applicable)
}

// moreIterations decides whether another, deeper DFS pass should run,
// implementing §4.7's two criteria: a reasonable action has already
// separated itself, or the learned/derived max depth has been reached.
func (ids *IDS) moreIterations(start time.Time, depth, limit int, applicable []int, q []float64) bool {
	elapsed := time.Since(start)

	if ids.isLearning {
		ids.elapsedTimeByDepth[depth] = append(ids.elapsedTimeByDepth[depth], elapsed)
		if elapsed > ids.StrictTerminationTimeout {
			ids.elapsedTimeByDepth = ids.elapsedTimeByDepth[:depth]
			ids.maxSearchDepth = depth - 1
			return false
		}
		return depth < limit
	}

	if ids.TerminateWithReasonableAction && reasonableActionFound(applicable, q) {
		return false
	}

	return depth < limit
}

// reasonableActionFound reports whether noop is dominated by some
// other applicable action, or — when noop isn't applicable — whether
// any two applicable actions already disagree (§4.7).
func reasonableActionFound(applicable []int, q []float64) bool {
	if isRepresentative(applicable, 0) {
		for i := 1; i < len(q); i++ {
			if isRepresentative(applicable, i) && q[i] > q[0] {
				return true
			}
		}
		return false
	}

	first := -1
	for i := 1; i < len(q); i++ {
		if isRepresentative(applicable, i) {
			first = i
			break
		}
	}
	if first == -1 {
		return false
	}
	for i := first + 1; i < len(q); i++ {
		if isRepresentative(applicable, i) && q[i] != q[first] {
			return true
		}
	}
	return false
}

// Learn runs IDS on every state of trainingSet with caching disabled,
// recording the per-depth wall-clock cost, then derives MaxSearchDepth
// as the greatest depth whose average cost (over states that reached
// it) stays under TerminationTimeout (§4.7's learning phase).
func (ids *IDS) Learn(trainingSet []state.State) {
	ids.dfs.SetCaching(false)
	wasCaching := ids.caching
	ids.caching = false
	ids.isLearning = true

	for _, s := range trainingSet {
		applicable := ids.task.ApplicableActions(s)
		ids.EstimateQValues(s, applicable)
		if ids.maxSearchDepth < ids.minSearchDepth {
			ids.maxSearchDepth = 0
			ids.isLearning = false
			ids.caching = wasCaching
			ids.resetStats()
			return
		}
	}

	ids.isLearning = false
	ids.caching = wasCaching

	derived := 0
	for depth := ids.minSearchDepth; depth < len(ids.elapsedTimeByDepth); depth++ {
		samples := ids.elapsedTimeByDepth[depth]
		if len(samples) <= len(trainingSet)/2 {
			break
		}
		var total time.Duration
		for _, d := range samples {
			total += d
		}
		average := total / time.Duration(len(samples))
		if average < ids.TerminationTimeout {
			derived = depth
		} else {
			break
		}
	}

	ids.maxSearchDepth = derived
	ids.dfs.SetCaching(wasCaching)
	ids.resetStats()
}

func (ids *IDS) resetStats() {
	ids.AccumulatedSearchDepth = 0
	ids.CacheHits = 0
	ids.NumberOfRuns = 0
}

func (ids *IDS) UsesCaching() bool { return ids.caching }

func (ids *IDS) SetCaching(enabled bool) {
	ids.caching = enabled
	ids.dfs.SetCaching(enabled)
}

func (ids *IDS) MaxSearchDepth() int { return ids.maxSearchDepth }
