// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package thts

import "github.com/prost-go/prost/state"

// ActionSelector picks which applicable action a decision node expands
// next mid-trial (§4.9). isRoot lets the implementation apply
// root-only heuristics like forced exploration of the least-visited
// child.
type ActionSelector interface {
	SelectAction(node *Node, applicable []int, isRoot bool) int
}

// OutcomeSelector picks which outcome of one probabilistic variable's
// component distribution a trial descends into (§4.9). newChild
// allocates the chosen slot's node (a chance node if another variable
// remains unresolved, a decision node if this is the last one) the
// first time it is visited; isLast reports which of the two the slot
// holds (both are the same Node type, so newChild takes no kind).
type OutcomeSelector interface {
	SelectOutcome(node *Node, pd state.DiscretePD, isLast bool, newChild func(prob float64) *Node) (childIndex int, value float64)
}

// BackupContext carries the per-visit depth information a backup
// function needs to gate a backup lock (Partial-Bellman only)
// explicitly, rather than the source's pattern of reaching back into
// the owning engine for it (§9 design note). Trial is a counter
// bumped once per runTrial call, so a lock engaged during one trial's
// ascent is recognized as stale on the next; StepsToGo is the node's
// own remaining-steps and TipStepsToGo is the depth at which this
// trial's first newly-expanded node was found, mirroring the source's
// tipNodeOfTrial depth guard.
type BackupContext struct {
	Trial        int
	StepsToGo    int
	TipStepsToGo int
}

// BackupFunction propagates a trial's return value back up through the
// decision and chance nodes it visited (§4.9).
type BackupFunction interface {
	// BackupDecisionLeaf installs total (immediate + continuation
	// reward) as a decision node's estimate and marks it solved.
	BackupDecisionLeaf(node *Node, total float64)
	// BackupDecisionNode recomputes a non-leaf decision node's estimate
	// as the max over its (already backed-up) action children, solved
	// iff every child is initialized and solved.
	BackupDecisionNode(node *Node)
	// BackupChanceNode folds one more sample (the total return observed
	// on the outcome just visited) into node's running estimate, using
	// node.Children as needed (MaxMC and Partial-Bellman recompute a
	// weighted mean over every outcome rather than just the latest).
	// ctx is ignored by backups that have no lock to gate.
	BackupChanceNode(node *Node, sample float64, ctx BackupContext)
}

// Initializer seeds a freshly-created decision node the first time a
// trial reaches it, typically by querying a cheaper sub-engine for a
// heuristic Q-vector and installing one chance-node child per
// applicable action (§4.9's "ExpandNode").
type Initializer interface {
	Initialize(node *Node, s state.State, task Task, applicable []int, newChild func(prob float64) *Node)
}
