// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package outcome implements the two outcome-selection ingredients of
// §4.9: Monte-Carlo sampling over a transition variable's component
// distribution, and its unsolved variant that rescales the
// distribution across outcomes not yet proven solved.
package outcome

import (
	"math/rand"

	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/thts"
)

// MonteCarlo samples a child index directly from the component
// distribution's probability mass, allocating a child node the first
// time an outcome is reached (§4.9).
type MonteCarlo struct {
	Rng *rand.Rand
}

func New(rng *rand.Rand) *MonteCarlo { return &MonteCarlo{Rng: rng} }

func (m *MonteCarlo) SelectOutcome(node *thts.Node, pd state.DiscretePD, isLast bool, newChild func(prob float64) *thts.Node) (int, float64) {
	idx := sampleIndex(pd, m.Rng)
	ensureChild(node, idx, pd.Probs[idx], newChild)
	return idx, pd.Values[idx]
}

// UnsolvedMonteCarlo restricts sampling to outcomes not yet proven
// solved, rescaling their probability mass to sum to 1 before drawing;
// paired with Partial-Bellman backup so a trial never wastes effort
// revisiting an outcome whose value is already settled (§4.9).
type UnsolvedMonteCarlo struct {
	Rng *rand.Rand
}

func NewUnsolved(rng *rand.Rand) *UnsolvedMonteCarlo { return &UnsolvedMonteCarlo{Rng: rng} }

func (u *UnsolvedMonteCarlo) SelectOutcome(node *thts.Node, pd state.DiscretePD, isLast bool, newChild func(prob float64) *thts.Node) (int, float64) {
	for len(node.Children) < len(pd.Values) {
		node.Children = append(node.Children, nil)
	}

	unsolvedMass := 0.0
	for i := range pd.Values {
		if node.Children[i] == nil || !node.Children[i].Solved {
			unsolvedMass += pd.Probs[i]
		}
	}
	if unsolvedMass <= 0 {
		// Every outcome is solved; fall back to plain sampling so the
		// caller still makes progress instead of looping forever.
		idx := sampleIndex(pd, u.Rng)
		ensureChild(node, idx, pd.Probs[idx], newChild)
		return idx, pd.Values[idx]
	}

	r := u.Rng.Float64() * unsolvedMass
	cum := 0.0
	for i := range pd.Values {
		if node.Children[i] != nil && node.Children[i].Solved {
			continue
		}
		cum += pd.Probs[i]
		if r < cum {
			ensureChild(node, i, pd.Probs[i], newChild)
			return i, pd.Values[i]
		}
	}
	last := len(pd.Values) - 1
	ensureChild(node, last, pd.Probs[last], newChild)
	return last, pd.Values[last]
}

func sampleIndex(pd state.DiscretePD, rng *rand.Rand) int {
	r := rng.Float64()
	cum := 0.0
	for i, p := range pd.Probs {
		cum += p
		if r < cum {
			return i
		}
	}
	return len(pd.Probs) - 1
}

func ensureChild(node *thts.Node, idx int, prob float64, newChild func(prob float64) *thts.Node) {
	for len(node.Children) <= idx {
		node.Children = append(node.Children, nil)
	}
	if node.Children[idx] == nil {
		node.Children[idx] = newChild(prob)
	}
}
