// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package initializer implements the "ExpandNode" tip-node
// initializer of §4.9: seed a freshly-created decision node by
// querying a cheaper sub-engine for a heuristic Q-vector, installing
// one chance-node child per applicable action.
package initializer

import (
	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/thts"
)

// ExpandNode queries SubEngine for a Q-vector over s's applicable
// actions, seeds each action child's FutureReward as
// HeuristicWeight*StepsToGo*Q_a, and gives it NumberOfInitialVisits
// starting visits so early UCB1 comparisons aren't dominated by noise
// from a single sample (§4.9). Inapplicable actions get no child; a
// duplicate action shares the child of the earlier action it
// duplicates.
type ExpandNode struct {
	SubEngine engine.SearchEngine

	HeuristicWeight       float64
	NumberOfInitialVisits int
}

// New returns an ExpandNode initializer wrapping subEngine, with
// HeuristicWeight defaulting to 1 and NumberOfInitialVisits to 1 when
// given as 0.
func New(subEngine engine.SearchEngine, heuristicWeight float64, numberOfInitialVisits int) *ExpandNode {
	if heuristicWeight == 0 {
		heuristicWeight = 1
	}
	if numberOfInitialVisits == 0 {
		numberOfInitialVisits = 1
	}
	return &ExpandNode{SubEngine: subEngine, HeuristicWeight: heuristicWeight, NumberOfInitialVisits: numberOfInitialVisits}
}

// Initialize implements thts.Initializer.
func (e *ExpandNode) Initialize(node *thts.Node, s state.State, task thts.Task, applicable []int, newChild func(prob float64) *thts.Node) {
	q := e.SubEngine.EstimateQValues(s, applicable)

	node.Children = make([]*thts.Node, len(applicable))
	best := node.FutureReward
	any := false

	for i := range applicable {
		if applicable[i] < 0 {
			continue
		}
		if applicable[i] < i {
			// Duplicate of an earlier, equivalent action under
			// determinization: share that action's chance node rather
			// than allocating a redundant one.
			node.Children[i] = node.Children[applicable[i]]
			continue
		}

		child := newChild(1.0)
		if child == nil {
			continue
		}
		child.FutureReward = e.HeuristicWeight * float64(s.StepsToGo) * q[i]
		child.NumberOfVisits = e.NumberOfInitialVisits
		child.Initialized = true
		node.Children[i] = child
		node.NumberOfVisits += e.NumberOfInitialVisits

		if v := child.ExpectedRewardEstimate(); !any || v > best {
			best, any = v, true
		}
	}

	if any {
		node.FutureReward = best
	}
}
