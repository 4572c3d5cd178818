// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package thts

import "github.com/prost-go/prost/state"

// runTrial simulates one trial from the root, threading the current
// state and the reward of the action that led to each node directly
// through the recursion rather than through shared per-depth arrays —
// the idiomatic Go replacement for the source's states[]/actions[]
// bookkeeping (§9 design note on explicit context values).
func (e *THTS) runTrial(root state.State) {
	applicable := e.task.ApplicableActions(root)
	e.tipNodesThisTrial = 0
	e.tipStepsToGoThisTrial = 0
	e.trialSeq++
	e.visitDecision(e.root, root, applicable, 0, true)
}

// visitDecision runs one decision-node step of a trial (§4.8).
// entryReward is the immediate reward of the action that led into s (0
// for the root). The return value is entryReward plus whatever
// continuation value this node resolves to, the quantity the caller's
// chance-node backup needs.
func (e *THTS) visitDecision(node *Node, s state.State, applicable []int, entryReward float64, isRoot bool) float64 {
	if !isRoot {
		if s.StepsToGo == 1 {
			total := entryReward + e.task.OptimalFinalReward(s)
			e.cfg.Backup.BackupDecisionLeaf(node, total)
			return total
		}
		if e.caching && s.HashKey >= 0 {
			if v, ok := e.solvedCache[s.HashKey]; ok {
				e.CacheHits++
				total := entryReward + v
				e.cfg.Backup.BackupDecisionLeaf(node, total)
				return total
			}
		}
	}

	if !node.Initialized {
		e.initializeDecisionNode(node, s, applicable)
		if !isRoot {
			if e.tipNodesThisTrial == 0 {
				e.tipStepsToGoThisTrial = s.StepsToGo
			}
			e.tipNodesThisTrial++
			e.TipNodesExpandedTotal++
		}
	}

	if node.RewardLock || node.GoalLock {
		total := e.rewardLockValue(node, s, entryReward)
		e.cfg.Backup.BackupDecisionLeaf(node, total)
		return total
	}

	var futureReward float64
	if e.continueTrial() {
		a := e.cfg.ActionSelector.SelectAction(node, applicable, isRoot)
		immediateReward := e.task.Reward(s, a)
		pd := e.task.SampleSuccessor(s, a)
		values := make([]float64, len(pd.Values))
		lastNonDirac := pd.LastNonDirac()

		futureReward = e.visitChance(node.Children[a], pd, values, 0, lastNonDirac, s.StepsToGo-1, immediateReward)
		e.cfg.Backup.BackupDecisionNode(node)
	} else {
		futureReward = node.ExpectedRewardEstimate()
	}

	total := entryReward + futureReward
	if e.caching && node.Solved && s.HashKey >= 0 {
		e.solvedCache[s.HashKey] = futureReward
	}
	return total
}

// visitChance resolves one probabilistic variable at a time out of
// pd.Values, writing each sampled value into values, until every
// variable up to lastVarIndex is fixed, at which point it finalizes
// the successor state and recurses into the next decision node. When
// lastVarIndex is -1 (every component was already Dirac), the loop
// falls straight through to a single dummy chance-node child, matching
// §4.8's note about deterministic transitions still needing one chance
// layer for bookkeeping consistency.
func (e *THTS) visitChance(node *Node, pd state.PDState, values []float64, varIndex, lastVarIndex, nextStepsToGo int, entryReward float64) float64 {
	for varIndex < len(pd.Values) && pd.Values[varIndex].IsDirac() {
		values[varIndex] = pd.Values[varIndex].Values[0]
		varIndex++
	}

	var future float64
	if varIndex > lastVarIndex {
		successor := state.NewState(values, nextStepsToGo, e.task.HashKeyTable())
		if len(node.Children) == 0 {
			child := e.newChild(1.0)
			node.Children = append(node.Children, child)
		}
		child := node.Children[0]
		applicable := e.task.ApplicableActions(successor)
		future = e.visitDecision(child, successor, applicable, entryReward, false)
	} else {
		childIndex, value := e.cfg.OutcomeSelector.SelectOutcome(node, pd.Values[varIndex], varIndex == lastVarIndex, func(prob float64) *Node {
			return e.newChild(prob)
		})
		values[varIndex] = value
		for len(node.Children) <= childIndex {
			node.Children = append(node.Children, nil)
		}
		if varIndex == lastVarIndex {
			for j := varIndex + 1; j < len(pd.Values); j++ {
				values[j] = pd.Values[j].Values[0]
			}
			successor := state.NewState(values, nextStepsToGo, e.task.HashKeyTable())
			applicable := e.task.ApplicableActions(successor)
			future = e.visitDecision(node.Children[childIndex], successor, applicable, entryReward, false)
		} else {
			future = e.visitChance(node.Children[childIndex], pd, values, varIndex+1, lastVarIndex, nextStepsToGo, entryReward)
		}
	}

	e.cfg.Backup.BackupChanceNode(node, future, BackupContext{
		Trial:        e.trialSeq,
		StepsToGo:    nextStepsToGo,
		TipStepsToGo: e.tipStepsToGoThisTrial,
	})
	return future
}

// continueTrial implements §4.8's tip-node budget: a trial may expand
// at most TipNodeBudget (default: the task horizon) previously-unseen
// nodes before it is forced to stop descending and read off whatever
// value the tip node already holds.
func (e *THTS) continueTrial() bool {
	budget := e.cfg.TipNodeBudget
	if budget <= 0 {
		budget = e.task.HorizonSteps()
	}
	return e.tipNodesThisTrial < budget
}

func (e *THTS) initializeDecisionNode(node *Node, s state.State, applicable []int) {
	if e.cfg.RewardLock != nil {
		if e.cfg.RewardLock.IsDeadEnd(s) {
			node.RewardLock = true
			node.Initialized = true
			return
		}
		if e.cfg.RewardLock.IsGoal(s) {
			node.GoalLock = true
			node.Initialized = true
			return
		}
	}
	e.cfg.Initializer.Initialize(node, s, e.task, applicable, e.newChild)
	node.Initialized = true
}

// rewardLockValue returns the total (entry + lock) reward for a node
// already flagged RewardLock or GoalLock: the task's reward under
// noop for a dead end (§4.5's own dead-end fixpoint verifies reward
// equality under action 0 at every step) or under the goal-test action
// for a goal (fixpointGoal verifies equality under that action, not
// action 0, so the leaf value must be read off the same action).
func (e *THTS) rewardLockValue(node *Node, s state.State, entryReward float64) float64 {
	action := 0
	if node.GoalLock {
		action = e.cfg.RewardLock.GoalTestActionIndex()
	}
	lockValue := e.task.Reward(s, action) * float64(s.StepsToGo)
	return entryReward + lockValue
}
