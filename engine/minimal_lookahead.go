// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/prost-go/prost/state"
)

// MinimalLookaheadTask is the subset of Task MinimalLookahead needs
// beyond the base interface: whether the reward is action-independent
// and whether noop is free of scheduled effects and preconditions
// (§4.7).
type MinimalLookaheadTask interface {
	Task
	RewardActionIndependent() bool
	NoopTrivial() bool
}

// MinimalLookahead estimates each action's Q-value by averaging an
// immediate reward with the noop reward of the action's determinized
// successor, a one-ply lookahead that surfaces an action's delayed
// payoff without a full determinized search (§4.7). When the reward
// never reads an action fluent, the immediate term is the noop reward
// of s, shared by every action; when noop is trivial, it is the
// action's own reward in s. In every other case each action's Q-value
// is its immediate reward alone, with no lookahead.
type MinimalLookahead struct {
	task    MinimalLookaheadTask
	caching bool
	cache   *ristretto.Cache[int64, []float64]

	NumberOfRuns int
	CacheHits    int
}

// NewMinimalLookahead returns a MinimalLookahead engine bound to task
// with caching enabled.
func NewMinimalLookahead(task MinimalLookaheadTask) *MinimalLookahead {
	cache, err := ristretto.NewCache(&ristretto.Config[int64, []float64]{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		panic(err)
	}
	return &MinimalLookahead{task: task, caching: true, cache: cache}
}

func (m *MinimalLookahead) EstimateQValues(s state.State, applicable []int) []float64 {
	q := make([]float64, len(applicable))

	if m.caching {
		if cached, ok := m.cache.Get(s.HashKey); ok {
			m.CacheHits++
			copy(q, cached)
			return q
		}
	}

	switch {
	case m.task.RewardActionIndependent():
		// The reward doesn't depend on the action taken in s, so every
		// action shares the same first term; only the successor's noop
		// reward distinguishes them.
		r1 := m.task.Reward(s, 0)
		for i := range applicable {
			if !isRepresentative(applicable, i) {
				q[i] = NegInf
				continue
			}
			next, _ := m.task.CalcStateTransitionDeterministic(s, i)
			r2 := m.task.Reward(next, 0)
			q[i] = (r1 + r2) / 2.0
		}
	case m.task.NoopTrivial():
		// Noop is always applicable and has no effect of its own, so we
		// can use it to surface the delayed payoff of every action.
		for i := range applicable {
			if !isRepresentative(applicable, i) {
				q[i] = NegInf
				continue
			}
			next, r1 := m.task.CalcStateTransitionDeterministic(s, i)
			r2 := m.task.Reward(next, 0)
			q[i] = (r1 + r2) / 2.0
		}
	default:
		for i := range applicable {
			if !isRepresentative(applicable, i) {
				q[i] = NegInf
				continue
			}
			q[i] = m.task.Reward(s, i)
		}
	}

	m.NumberOfRuns++
	if m.caching {
		stored := append([]float64(nil), q...)
		m.cache.Set(s.HashKey, stored, 1)
		m.cache.Wait()
	}
	return q
}

func (m *MinimalLookahead) UsesCaching() bool { return m.caching }

func (m *MinimalLookahead) SetCaching(enabled bool) { m.caching = enabled }

func (m *MinimalLookahead) MaxSearchDepth() int { return 1 }
