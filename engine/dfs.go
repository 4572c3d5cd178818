// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/prost-go/prost/state"
)

// TaskWithFinalReward is the subset of task.Task DFS needs beyond
// Task: the leaf evaluation used once steps-to-go reaches zero (§4.4
// final-reward policies, §4.7).
type TaskWithFinalReward interface {
	Task
	OptimalFinalReward(s state.State) float64
}

// DFS exhaustively expands the determinized task to the horizon,
// memoizing state values by hash key (ignoring steps-to-go, since the
// determinized successor of a state is independent of how many steps
// remain once expanded) (§4.7).
type DFS struct {
	task    TaskWithFinalReward
	caching bool
	cache   *ristretto.Cache[int64, float64]
}

// NewDFS returns a DFS engine bound to task with caching enabled.
func NewDFS(task TaskWithFinalReward) *DFS {
	cache, err := ristretto.NewCache(&ristretto.Config[int64, float64]{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		panic(err)
	}
	return &DFS{task: task, caching: true, cache: cache}
}

func (d *DFS) EstimateQValues(s state.State, applicable []int) []float64 {
	q := make([]float64, len(applicable))
	for i := range applicable {
		if !isRepresentative(applicable, i) {
			q[i] = NegInf
			continue
		}
		q[i] = d.applyAction(s, i)
	}
	return q
}

// applyAction determinizes the transition under actionIndex and either
// returns the cached continuation value, the final reward if the
// successor is a leaf, or recursively expands the successor (§4.7).
func (d *DFS) applyAction(s state.State, actionIndex int) float64 {
	successor, reward := d.task.CalcStateTransitionDeterministic(s, actionIndex)

	if d.caching {
		if v, ok := d.cache.Get(successor.HashKey); ok {
			return reward + v
		}
	}

	if successor.StepsToGo == 1 {
		return reward + d.task.OptimalFinalReward(successor)
	}

	return reward + d.expand(successor)
}

// expand evaluates every applicable determinized action from state and
// returns the best continuation value, caching the result.
func (d *DFS) expand(s state.State) float64 {
	applicable := d.task.ApplicableActions(s)
	best := NegInf
	for i := range applicable {
		if !isRepresentative(applicable, i) {
			continue
		}
		v := d.applyAction(s, i)
		if v > best {
			best = v
		}
	}

	if d.caching {
		d.cache.Set(s.HashKey, best, 1)
		d.cache.Wait()
	}
	return best
}

func (d *DFS) UsesCaching() bool { return d.caching }

func (d *DFS) SetCaching(enabled bool) { d.caching = enabled }

func (d *DFS) MaxSearchDepth() int { return 0 }
