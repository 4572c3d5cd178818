// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lock implements reward-lock detection (§4.5): a state from
// which every reachable state yields the same reward is either a dead
// end (reward always at task minimum) or a goal (reward always at
// task maximum under the goal-test action). Both searches are
// fixed-point reasoning in Kleene semantics over the finite set of
// reachable Kleene states, memoized in two append-only sets keyed by
// state hash key — the "BDDs" of §4.5/§9, represented here as plain
// Go maps since the design note replaces the source's custom
// data structure with whatever the host language's idiomatic
// associative container is.
package lock

import (
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
)

// Task is the subset of task.Task the detector needs, kept as an
// interface so lock has no import-cycle dependency on the task
// package.
type Task interface {
	ExprPool() *expr.Pool
	CPFExpr(fluentIndex int) int // expression index of the CPF's original form
	NumStateFluents() int
	GoalTestActionIdx() int
	RewardRange() (float64, float64)
	RewardExprIdx() int
	KleeneBaseTable() []int64
	ActionFluentValues(actionIndex int) []float64
	NonFluentVals() []float64
	NumActions() int
}

// Detector caches proven dead ends and goals across calls, keyed by
// the Kleene hash key of the state tested (§4.5, §5: "process-wide;
// updates are monotonic").
type Detector struct {
	task Task

	deadEnds map[int64]bool
	goals    map[int64]bool

	// maxIterations bounds the fixed point in case of a modeling bug;
	// the true termination argument is the finite, monotone-growing
	// reachable Kleene state set (§4.5).
	maxIterations int
}

// New returns a Detector bound to task, with both memo sets allocated
// empty up front (§5).
func New(task Task) *Detector {
	return &Detector{
		task:          task,
		deadEnds:      make(map[int64]bool),
		goals:         make(map[int64]bool),
		maxIterations: 1000,
	}
}

func (d *Detector) kleeneKey(k state.KleeneState) int64 {
	return k.KleeneHashKey(d.task.KleeneBaseTable())
}

// IsDeadEnd reports whether s is a reward lock at the task's minimum
// reward (§4.5). Non-conclusive results return false (§5 Failure
// semantics): the state is then treated as a regular node by the
// caller.
func (d *Detector) IsDeadEnd(s state.State) bool {
	k := state.NewKleeneState(s)
	key := d.kleeneKey(k)
	if cached, ok := d.deadEnds[key]; ok {
		return cached
	}

	result := d.fixpointDeadEnd(k)
	d.deadEnds[key] = result
	return result
}

// fixpointDeadEnd implements the procedure of §4.5: evaluate noop; if
// its Kleene reward is not the task minimum, not a dead end. Otherwise
// repeatedly Kleene-union the successor sets of every action,
// discarding transitions that leave the minimum-reward region, until
// the union stabilizes.
func (d *Detector) fixpointDeadEnd(k state.KleeneState) bool {
	minR, _ := d.task.RewardRange()
	if !d.kleeneRewardIsExactly(k, 0, minR) {
		return false
	}

	current := k
	for i := 0; i < d.maxIterations; i++ {
		next := current
		changed := false
		for a := 0; a < d.task.NumActions(); a++ {
			succ := d.kleeneSuccessor(current, a)
			if !d.kleeneRewardIsExactly(succ, a, minR) {
				continue // this action can escape the minimum-reward region
			}
			joined := next.Join(succ)
			if !kleeneEqual(joined, next) {
				changed = true
			}
			next = joined
		}
		if !changed {
			return true
		}
		current = next
	}
	return false
}

// GoalTestActionIndex exposes the action index IsGoal checks reward
// equality under, so a caller that confirms a goal lock can compute
// the lock's own reward value the same way IsGoal did, rather than
// assuming some other action's reward coincides with it.
func (d *Detector) GoalTestActionIndex() int {
	return d.task.GoalTestActionIdx()
}

// IsGoal reports whether s is a reward lock at the task's maximum
// reward under the goal-test action (§4.5).
func (d *Detector) IsGoal(s state.State) bool {
	if d.task.GoalTestActionIdx() < 0 {
		return false
	}
	k := state.NewKleeneState(s)
	key := d.kleeneKey(k)
	if cached, ok := d.goals[key]; ok {
		return cached
	}

	result := d.fixpointGoal(k)
	d.goals[key] = result
	return result
}

func (d *Detector) fixpointGoal(k state.KleeneState) bool {
	_, maxR := d.task.RewardRange()
	goalAction := d.task.GoalTestActionIdx()

	current := k
	for i := 0; i < d.maxIterations; i++ {
		if !d.kleeneRewardIsExactly(current, goalAction, maxR) {
			return false
		}
		succ := d.kleeneSuccessor(current, goalAction)
		joined := current.Join(succ)
		if kleeneEqual(joined, current) {
			return true
		}
		current = joined
	}
	return false
}

func (d *Detector) kleeneRewardIsExactly(k state.KleeneState, actionIndex int, want float64) bool {
	kctx := &expr.KleeneContext{
		State:           k,
		ActionValues:    d.task.ActionFluentValues(actionIndex),
		NonFluentValues: d.task.NonFluentVals(),
	}
	vs := d.task.ExprPool().EvaluateKleene(d.task.RewardExprIdx(), kctx)
	return len(vs) == 1 && vs[0] == want
}

func (d *Detector) kleeneSuccessor(k state.KleeneState, actionIndex int) state.KleeneState {
	out := make([]state.ValueSet, d.task.NumStateFluents())
	kctx := &expr.KleeneContext{
		State:           k,
		ActionValues:    d.task.ActionFluentValues(actionIndex),
		NonFluentValues: d.task.NonFluentVals(),
	}
	for i := 0; i < d.task.NumStateFluents(); i++ {
		out[i] = d.task.ExprPool().EvaluateKleene(d.task.CPFExpr(i), kctx)
	}
	return state.KleeneState{Values: out}
}

func kleeneEqual(a, b state.KleeneState) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if len(a.Values[i]) != len(b.Values[i]) {
			return false
		}
		for _, v := range a.Values[i] {
			if !b.Values[i].Contains(v) {
				return false
			}
		}
	}
	return true
}
