// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package task implements the Task model of §4.4: the immutable,
// load-time-validated description of one planning problem — fluents,
// CPFs, action states, the initial state, the final-reward policy, and
// applicability.
package task

import (
	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
)

// FluentInfo describes one ground, typed fluent: its stable index, its
// name, and its ordered value domain (§3 "Fluents").
type FluentInfo struct {
	Index  int
	Name   string
	Domain []float64
}

// ActionState is one ground joint action (§3): a vector of action
// fluent values, the indices of the action fluents that are true, and
// the indices of the preconditions that mention any of them.
type ActionState struct {
	Index                int
	Values               []float64
	ScheduledFluents     []int
	RelevantPreconditions []int
}

// FinalRewardConfig bundles the final-reward policy (§4.4) with its
// candidate set, meaningful only under BestOfCandidateSet.
type FinalRewardConfig struct {
	Policy       FinalRewardPolicy
	CandidateSet []int
}

// FinalRewardPolicy names the strategy computing the last step's value
// (§3, §4.4).
type FinalRewardPolicy int

const (
	FinalRewardNoop FinalRewardPolicy = iota
	FinalRewardFirstApplicable
	FinalRewardBestOfCandidateSet
)

// Task is the immutable, validated planning problem description of
// §4.4. Every slice is fixed after NewTask returns.
type Task struct {
	Name     string
	Horizon  int
	Discount float64

	InitialState state.State

	StateFluents  []FluentInfo
	ActionFluents []FluentInfo
	NonFluents    []FluentInfo

	NonFluentValues []float64

	Pool *expr.Pool

	// CPFs is ordered deterministic-before-probabilistic (§3, §4.4),
	// one per state fluent, indexed by fluent index.
	CPFs          []*eval.Evaluatable
	RewardFn      *eval.Evaluatable
	Preconditions []*eval.Evaluatable

	ActionStates []ActionState

	FinalReward FinalRewardConfig

	RewardLockDetectionEnabled bool
	GoalTestAction             int

	HashTable  *state.HashKeyTable
	KleeneBase []int64

	// CheckReasonability enables the "duplicate under determinization"
	// pruning pass of §4.4; disabled engines skip it for speed.
	CheckReasonability bool

	applicableCache map[int64][]int
}

// NewTask wires the immutable fields together and allocates the
// applicability cache. All slices are expected to already be
// populated and validated by the task loader (taskio package); NewTask
// performs no further validation, matching §4.4's "immutable after
// load" contract.
func NewTask(
	name string, horizon int, discount float64,
	initial state.State,
	stateFluents, actionFluents, nonFluents []FluentInfo,
	nonFluentValues []float64,
	pool *expr.Pool,
	cpfs []*eval.Evaluatable, reward *eval.Evaluatable, preconditions []*eval.Evaluatable,
	actionStates []ActionState,
	finalReward FinalRewardConfig,
	rewardLockDetection bool, goalTestAction int,
	hashTable *state.HashKeyTable, kleeneBase []int64,
) *Task {
	return &Task{
		Name:                       name,
		Horizon:                    horizon,
		Discount:                   discount,
		InitialState:               initial,
		StateFluents:               stateFluents,
		ActionFluents:              actionFluents,
		NonFluents:                 nonFluents,
		NonFluentValues:            nonFluentValues,
		Pool:                       pool,
		CPFs:                       cpfs,
		RewardFn:                   reward,
		Preconditions:              preconditions,
		ActionStates:               actionStates,
		FinalReward:                finalReward,
		RewardLockDetectionEnabled: rewardLockDetection,
		GoalTestAction:             goalTestAction,
		HashTable:                  hashTable,
		KleeneBase:                 kleeneBase,
		applicableCache:            make(map[int64][]int),
	}
}

// NumActions returns the number of joint actions, |A|.
func (t *Task) NumActions() int { return len(t.ActionStates) }

// Reward returns reward(s,a) (§3, §4.4); RewardRange reports the
// declared [min,max] range. Every reachable call must satisfy Rmin <= value <= Rmax
// (§8's first quantified invariant) by construction of the reward CPF
// at load time.
func (t *Task) Reward(s state.State, actionIndex int) float64 {
	return t.RewardFn.Evaluate(s, actionIndex, t.ActionStates[actionIndex].Values, t.NonFluentValues)
}

// RewardRange returns the declared [min, max] of the reward function.
func (t *Task) RewardRange() (float64, float64) {
	return t.RewardFn.RewardMin, t.RewardFn.RewardMax
}

// DisableCaching transitions every Map-backed Evaluatable cache to
// DisabledMap (§5, §7): CPFs, reward, and preconditions. Called by the
// external memory watchdog; idempotent because each Evaluatable's
// DisableCaching is idempotent.
func (t *Task) DisableCaching() {
	for _, cpf := range t.CPFs {
		if cpf != nil {
			cpf.DisableCaching()
		}
	}
	t.RewardFn.DisableCaching()
	for _, pre := range t.Preconditions {
		pre.DisableCaching()
	}
}
