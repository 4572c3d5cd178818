// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/prost-go/prost/state"
)

// RandomWalk estimates each action's Q-value by averaging the
// accumulated reward of simulating the probabilistic task to the
// horizon, picking a uniformly random applicable action at every step
// after the first (§4.7).
type RandomWalk struct {
	task       Task
	rng        *rand.Rand
	Iterations int
}

// NewRandomWalk returns a RandomWalk engine bound to task, sampling
// with rng and averaging over iterations rollouts per action.
func NewRandomWalk(task Task, rng *rand.Rand, iterations int) *RandomWalk {
	if iterations <= 0 {
		iterations = 1
	}
	return &RandomWalk{task: task, rng: rng, Iterations: iterations}
}

func (rw *RandomWalk) EstimateQValues(s state.State, applicable []int) []float64 {
	q := make([]float64, len(applicable))
	for i := range applicable {
		if !isRepresentative(applicable, i) {
			q[i] = NegInf
			continue
		}
		q[i] = rw.rollout(s, i) / float64(s.StepsToGo)
	}
	return q
}

// rollout averages Iterations independent walks that start by taking
// firstAction, then continue with a uniformly random applicable action
// at every subsequent step until the horizon is reached.
func (rw *RandomWalk) rollout(root state.State, firstAction int) float64 {
	rewards := make([]float64, rw.Iterations)
	for i := range rewards {
		reward := rw.task.Reward(root, firstAction)
		current := rw.task.CalcSuccessorState(root, firstAction, rw.rng)

		for current.StepsToGo > 0 {
			applicable := rw.task.ApplicableActions(current)
			choices := applicableIndices(applicable)
			a := choices[rw.rng.Intn(len(choices))]
			reward += rw.task.Reward(current, a)
			current = rw.task.CalcSuccessorState(current, a, rw.rng)
		}
		rewards[i] = reward
	}
	return stat.Mean(rewards, nil)
}

func applicableIndices(applicable []int) []int {
	out := make([]int, 0, len(applicable))
	for i, a := range applicable {
		if a >= 0 {
			out = append(out, i)
		}
	}
	return out
}

func (rw *RandomWalk) UsesCaching() bool   { return false }
func (rw *RandomWalk) SetCaching(bool)     {}
func (rw *RandomWalk) MaxSearchDepth() int { return 0 }
