// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package thts implements Trial-Based Heuristic Tree Search (§4.8): a
// generic anytime tree-search loop whose four ingredients — action
// selection, outcome selection, backup, and leaf initialization — are
// supplied by the thts/selection, thts/outcome, thts/backup, and
// thts/initializer packages.
package thts

// Node is a single tree node, serving as either a decision node (one
// child per applicable action) or a chance node (one child per
// outcome of a sampled transition variable), depending on where it
// sits in the tree; THTS never needs to distinguish the two at the
// type level since both only ever need the fields below (§4.8).
type Node struct {
	Children []*Node

	NumberOfVisits int

	// FutureReward is this node's current value estimate: for a leaf
	// decision node it is the total (immediate + continuation) reward
	// observed on the trial that created it; for a non-leaf decision
	// node it is the max over its action children's own estimates
	// (which already embed each action's reward); for a chance node it
	// is the running estimate its backup function maintains (§4.9).
	FutureReward float64

	// Prob is the probability of reaching this node from its parent
	// chance node, used by Partial-Bellman backup to weight children.
	Prob float64

	Solved     bool
	RewardLock bool

	// GoalLock marks a decision node proven a goal lock (§4.5): reward
	// is pinned at the task maximum under the goal-test action rather
	// than the task minimum under noop, so its leaf value is computed
	// from that action instead of RewardLock's action-0 shortcut.
	GoalLock bool

	// BackupLocked marks a chance node whose Partial-Bellman backup
	// value stopped changing on some earlier visit within the current
	// trial's ascent (§4.9): further visits this same trial skip
	// recomputation. BackupLockTrial records which trial engaged it, so
	// the next trial to reach this node releases the lock before
	// checking it rather than honoring a stale one.
	BackupLocked    bool
	BackupLockTrial int

	// Initialized marks that initializeDecisionNode has already run on
	// this node (decision nodes only); chance nodes are always
	// considered initialized once created.
	Initialized bool
}

// ExpectedRewardEstimate is the value used for action-selection and
// backup comparisons (§4.9): simply the node's current estimate, since
// immediate rewards are folded into FutureReward at the point they are
// computed rather than stored separately.
func (n *Node) ExpectedRewardEstimate() float64 { return n.FutureReward }

// Reset clears a node back to its zero value in place, so a reused
// arena slot doesn't need a fresh allocation (§4.8 "node arena").
func (n *Node) Reset() {
	n.Children = n.Children[:0]
	n.NumberOfVisits = 0
	n.FutureReward = 0
	n.Prob = 0
	n.Solved = false
	n.RewardLock = false
	n.GoalLock = false
	n.BackupLocked = false
	n.BackupLockTrial = 0
	n.Initialized = false
}
