// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
)

// The accessors below let *Task satisfy lock.Task and engine.Task
// without those packages importing task directly (avoiding an import
// cycle, per the §9 design note on hoisting shared state into an
// explicit context value passed to every consumer).

// ExprPool returns the expression arena shared by every CPF,
// precondition, and the reward function.
func (t *Task) ExprPool() *expr.Pool { return t.Pool }

// CPFExpr returns the original (non-determinized) expression index of
// the CPF defining state fluent fluentIndex.
func (t *Task) CPFExpr(fluentIndex int) int { return t.CPFs[fluentIndex].OriginalExpr }

// NumStateFluents returns the number of state fluents.
func (t *Task) NumStateFluents() int { return len(t.StateFluents) }

// GoalTestActionIdx returns the action index reward-lock detection
// uses as its goal test, or -1 if none is configured.
func (t *Task) GoalTestActionIdx() int { return t.GoalTestAction }

// RewardExprIdx returns the reward function's original expression
// index.
func (t *Task) RewardExprIdx() int { return t.RewardFn.OriginalExpr }

// KleeneBaseTable returns the per-variable Kleene hash base (§4.1).
func (t *Task) KleeneBaseTable() []int64 { return t.KleeneBase }

// ActionFluentValues returns the action-fluent value vector of joint
// action actionIndex.
func (t *Task) ActionFluentValues(actionIndex int) []float64 {
	return t.ActionStates[actionIndex].Values
}

// NonFluentVals returns the task's non-fluent (instance constant)
// values.
func (t *Task) NonFluentVals() []float64 { return t.NonFluentValues }

// HorizonSteps returns the task's finite horizon H.
func (t *Task) HorizonSteps() int { return t.Horizon }

// DiscountFactor returns the task's discount factor gamma.
func (t *Task) DiscountFactor() float64 { return t.Discount }

// RewardActionIndependent reports whether the reward function never
// reads an action fluent, used by MinimalLookahead (§4.7) to decide it
// can freely substitute noop when computing a continuation reward.
func (t *Task) RewardActionIndependent() bool { return t.RewardFn.ActionIndependent }

// HashKeyTable returns the per-variable hash-key table used to
// finalize states sampled during a THTS trial (§4.1, §4.8).
func (t *Task) HashKeyTable() *state.HashKeyTable { return t.HashTable }

// NoopTrivial reports whether action 0 (noop) schedules no action
// fluents and has no relevant preconditions, i.e. it is always
// applicable and never changes anything by itself (§4.7).
func (t *Task) NoopTrivial() bool {
	noop := t.ActionStates[0]
	return len(noop.ScheduledFluents) == 0 && len(noop.RelevantPreconditions) == 0
}
