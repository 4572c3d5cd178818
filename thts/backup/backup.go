// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package backup implements the backup-function ingredients of §4.9:
// how a decision node folds a trial's return into its own estimate
// (Leaf, Decision), and the three ways a chance node aggregates the
// returns of its outcomes (MC, MaxMC, Partial-Bellman).
package backup

import (
	"math"

	"github.com/prost-go/prost/thts"
)

// Decision backs up every decision node the same way regardless of
// which chance-node backup is paired with it: a leaf stores the
// trial's total return and is immediately solved; a non-leaf takes the
// max over its already-backed-up action children.
type Decision struct{}

func (Decision) BackupDecisionLeaf(node *thts.Node, total float64) {
	node.FutureReward = total
	node.NumberOfVisits++
	node.Solved = true
}

func (Decision) BackupDecisionNode(node *thts.Node) {
	best := math.Inf(-1)
	solved := true
	any := false
	for _, c := range node.Children {
		if c == nil {
			continue
		}
		any = true
		if !c.Initialized || !c.Solved {
			solved = false
		}
		if v := c.ExpectedRewardEstimate(); v > best {
			best = v
		}
	}
	if any {
		node.FutureReward = best
	}
	node.NumberOfVisits++
	node.Solved = any && solved
}

// MC is the Monte-Carlo chance-node backup (§4.9): a running mean with
// a tunable learning rate that decays as the node accumulates visits,
// future += (alpha/(1+decay*visits)) * (sample-future).
type MC struct {
	Alpha float64
	Decay float64
}

func NewMC(alpha, decay float64) MC { return MC{Alpha: alpha, Decay: decay} }

func (m MC) BackupDecisionLeaf(node *thts.Node, total float64) { Decision{}.BackupDecisionLeaf(node, total) }
func (m MC) BackupDecisionNode(node *thts.Node)                { Decision{}.BackupDecisionNode(node) }

func (m MC) BackupChanceNode(node *thts.Node, sample float64, ctx thts.BackupContext) {
	node.NumberOfVisits++
	rate := m.Alpha / (1 + m.Decay*float64(node.NumberOfVisits))
	node.FutureReward += rate * (sample - node.FutureReward)
}

// MaxMC recomputes a chance node's estimate as the visit-weighted mean
// of its outcome children's own estimates, rather than maintaining a
// running average of raw samples (§4.9).
type MaxMC struct{}

func (MaxMC) BackupDecisionLeaf(node *thts.Node, total float64) { Decision{}.BackupDecisionLeaf(node, total) }
func (MaxMC) BackupDecisionNode(node *thts.Node)                { Decision{}.BackupDecisionNode(node) }

func (MaxMC) BackupChanceNode(node *thts.Node, sample float64, ctx thts.BackupContext) {
	node.NumberOfVisits++
	var weightedSum float64
	var totalVisits float64
	for _, c := range node.Children {
		if c == nil || c.NumberOfVisits == 0 {
			continue
		}
		weightedSum += float64(c.NumberOfVisits) * c.ExpectedRewardEstimate()
		totalVisits += float64(c.NumberOfVisits)
	}
	if totalVisits > 0 {
		node.FutureReward = weightedSum / totalVisits
	} else {
		node.FutureReward = sample
	}
}

// PartialBellman recomputes a chance node's estimate as the
// probability-weighted mean of its outcome children's own estimates,
// and is solved once the probability mass of its solved children is
// within epsilon of 1 — the counterpart to UnsolvedMonteCarlo outcome
// selection (§4.9). It also engages a backup lock: once a visit in a
// trial's ascent leaves a node's value unchanged, strictly above the
// depth of that trial's own tip node, further visits during the SAME
// trial skip recomputation (source: backup_function.cc's lockBackup,
// a single engine-wide latch reset every trial and gated by
// node->stepsToGo > tipNode->stepsToGo). The lock is released as soon
// as a later trial reaches the node again, so a subtree change on a
// subsequent trial is never hidden behind a stale mean.
type PartialBellman struct {
	SolvedEpsilon float64
}

func NewPartialBellman() PartialBellman { return PartialBellman{SolvedEpsilon: 1e-6} }

func (PartialBellman) BackupDecisionLeaf(node *thts.Node, total float64) {
	Decision{}.BackupDecisionLeaf(node, total)
}
func (PartialBellman) BackupDecisionNode(node *thts.Node) { Decision{}.BackupDecisionNode(node) }

func (p PartialBellman) BackupChanceNode(node *thts.Node, sample float64, ctx thts.BackupContext) {
	node.NumberOfVisits++

	if node.BackupLocked {
		if node.BackupLockTrial == ctx.Trial {
			return
		}
		node.BackupLocked = false
	}

	var weightedSum, probMass, solvedMass float64
	for _, c := range node.Children {
		if c == nil {
			continue
		}
		weightedSum += c.Prob * c.ExpectedRewardEstimate()
		probMass += c.Prob
		if c.Solved {
			solvedMass += c.Prob
		}
	}

	before := node.FutureReward
	if probMass > 0 {
		node.FutureReward = weightedSum / probMass
	} else {
		node.FutureReward = sample
	}

	if probMass > 0 && solvedMass >= probMass-p.solvedEpsilon() {
		node.Solved = true
	}

	if node.FutureReward == before && ctx.StepsToGo > ctx.TipStepsToGo {
		node.BackupLocked = true
		node.BackupLockTrial = ctx.Trial
	}
}

func (p PartialBellman) solvedEpsilon() float64 {
	if p.SolvedEpsilon <= 0 {
		return 1e-6
	}
	return p.SolvedEpsilon
}
