// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package thts

import (
	"math"
	"time"

	"golang.org/x/exp/maps"

	prost "github.com/prost-go/prost"
	"github.com/prost-go/prost/lock"
	"github.com/prost-go/prost/state"
)

// negInf is the Q-value of an inapplicable or unexpanded action,
// matching engine.NegInf.
var negInf = math.Inf(-1)

// Config bundles an THTS engine's four pluggable ingredients and its
// trial budget (§4.9).
type Config struct {
	ActionSelector  ActionSelector
	OutcomeSelector OutcomeSelector
	Backup          BackupFunction
	Initializer     Initializer

	Termination prost.TerminationMode
	MaxTrials   int
	MaxTime     time.Duration

	Recommendation prost.RecommendationMode

	// MaxNodes bounds the node arena; 0 defaults to 100000.
	MaxNodes int

	// TipNodeBudget bounds how many previously-unvisited nodes a single
	// trial may expand; 0 defaults to the task horizon (§4.8
	// continue_trial).
	TipNodeBudget int

	// RewardLock enables the reward-lock shortcut of §4.8/§4.5 when
	// non-nil.
	RewardLock *lock.Detector

	// State is the engine's shared RNG/stopwatch ground (§9). New
	// allocates one if State is nil.
	State *prost.EngineState
}

// THTS is the generic trial-based tree search of §4.8, assembled from
// the four ingredients named in a Config.
type THTS struct {
	task Task
	cfg  Config

	arena *arena
	root  *Node

	caching bool

	// solvedCache remembers the future-reward value of every decision
	// node that has been proven solved this planning step, keyed by
	// state hash; a trial reaching the same state elsewhere in the tree
	// can reuse it instead of expanding again (§4.8's "cached-solved-
	// state shortcut").
	solvedCache map[int64]float64

	tipNodesThisTrial     int
	tipStepsToGoThisTrial int

	// trialSeq counts runTrial calls across this engine's lifetime, so a
	// backup lock stamped with the trial that engaged it (§4.9) can be
	// recognized as stale once a later trial reaches the same node.
	trialSeq int

	TrialsThisStep        int
	TipNodesExpandedTotal int
	CacheHits             int
}

// New returns a THTS engine bound to task, defaulting Config.MaxNodes
// to 100000 and Config.State to prost.NewEngineState(1), a fixed seed,
// if unset.
func New(task Task, cfg Config) *THTS {
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = 100000
	}
	if cfg.State == nil {
		cfg.State = prost.NewEngineState(1)
	}
	return &THTS{
		task:        task,
		cfg:         cfg,
		arena:       newArena(cfg.MaxNodes),
		caching:     true,
		solvedCache: make(map[int64]float64),
	}
}

// EstimateQValues runs a full planning step from s and reports the
// root's per-action value estimates, satisfying engine.SearchEngine so
// THTS can itself serve as another engine's sub-engine or be compared
// against the simple engines of §4.7 in tests (§4.6's assert-false
// caveat does not apply here: unlike the original, nothing requires
// this method to be unsupported).
func (e *THTS) EstimateQValues(s state.State, applicable []int) []float64 {
	e.Search(s, applicable)

	q := make([]float64, len(applicable))
	for i := range applicable {
		if !isRepresentative(applicable, i) || e.root.Children[i] == nil {
			q[i] = negInf
			continue
		}
		q[i] = e.root.Children[i].ExpectedRewardEstimate()
	}
	return q
}

func (e *THTS) UsesCaching() bool { return e.caching }

func (e *THTS) SetCaching(enabled bool) { e.caching = enabled }

// MaxSearchDepth is unbounded; THTS searches until its trial budget is
// exhausted rather than to a fixed depth.
func (e *THTS) MaxSearchDepth() int { return 0 }

// Search runs one planning step from s: if a unique policy shortcut
// applies, no trial runs at all; otherwise the tree grows by repeated
// trials until moreTrials says stop (§4.8).
func (e *THTS) Search(s state.State, applicable []int) {
	e.arena.resetRound()
	e.TrialsThisStep = 0
	maps.Clear(e.solvedCache)
	e.root = e.arena.get(1.0)
	if e.root == nil {
		panic("thts: node arena too small to hold even the root")
	}

	if _, ok := e.uniquePolicy(s, applicable); ok {
		e.initializeDecisionNode(e.root, s, applicable)
		e.root.Solved = true
		return
	}

	e.cfg.State.StartStopwatch()
	for e.moreTrials() {
		e.runTrial(s)
		e.TrialsThisStep++
	}
}

// RecommendedAction applies §4.8's recommend rule: Expected-Best-Arm
// once any root child is solved, else the configured default
// (Most-Played-Arm or Expected-Best-Arm).
func (e *THTS) RecommendedAction(applicable []int) int {
	mode := e.cfg.Recommendation
	for i := range applicable {
		if isRepresentative(applicable, i) && e.root.Children[i] != nil && e.root.Children[i].Solved {
			mode = prost.RecommendExpectedBestArm
			break
		}
	}

	best := negInf
	var ties []int
	for i := range applicable {
		if !isRepresentative(applicable, i) || e.root.Children[i] == nil {
			continue
		}
		c := e.root.Children[i]
		var v float64
		if mode == prost.RecommendExpectedBestArm {
			v = c.ExpectedRewardEstimate()
		} else {
			v = float64(c.NumberOfVisits)
		}
		switch {
		case v > best:
			best = v
			ties = []int{i}
		case v == best:
			ties = append(ties, i)
		}
	}
	if len(ties) == 0 {
		return 0
	}
	return ties[e.cfg.State.RNG.Intn(len(ties))]
}

// uniquePolicy implements §4.8's get_unique_policy: conditions under
// which no trial is needed because the answer is forced.
func (e *THTS) uniquePolicy(s state.State, applicable []int) (int, bool) {
	reps := 0
	only := -1
	for i := range applicable {
		if isRepresentative(applicable, i) {
			reps++
			only = i
		}
	}
	if reps == 1 {
		return only, true
	}
	if s.StepsToGo == 1 {
		return e.task.OptimalFinalAction(s), true
	}
	if e.cfg.RewardLock != nil && (e.cfg.RewardLock.IsDeadEnd(s) || e.cfg.RewardLock.IsGoal(s)) {
		for i := range applicable {
			if isRepresentative(applicable, i) {
				return i, true
			}
		}
		return 0, true
	}
	return -1, false
}

// moreTrials checks the trial-budget predicates of §4.8, evaluated
// only at trial boundaries.
func (e *THTS) moreTrials() bool {
	if e.arena.occupied() >= e.arena.capacity() {
		return false
	}
	switch e.cfg.Termination {
	case prost.TerminationTrials:
		return e.cfg.MaxTrials <= 0 || e.TrialsThisStep < e.cfg.MaxTrials
	case prost.TerminationTimeAndTrials:
		if e.cfg.MaxTrials > 0 && e.TrialsThisStep >= e.cfg.MaxTrials {
			return false
		}
		return e.cfg.MaxTime <= 0 || e.cfg.State.Elapsed() < e.cfg.MaxTime
	default: // prost.TerminationTime
		return e.cfg.MaxTime <= 0 || e.cfg.State.Elapsed() < e.cfg.MaxTime
	}
}

func (e *THTS) newChild(prob float64) *Node {
	return e.arena.get(prob)
}
