// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "github.com/prost-go/prost"

// The IPPC2011 preset expands (per the original source's main.cc) to
// [MC-UCT -sd 15 -i [IDS -sd 15]]: a depth-15 THTS search using UCB1 /
// Monte-Carlo / MaxMC with an IDS initializer of the same depth.
var IPPC2011 = &Params{
	Engine:              THTSEngine,
	MaxSearchDepth:      15,
	RewardLockDetection: true,
	CacheRewardLocks:    true,

	ActionSelection:    UCB1ActionSelection,
	MagicConstantScale: 1.0,
	ExplorationFamily:  FamilyLog,

	OutcomeSelection: MonteCarloOutcome,
	Backup:           MaxMCBackup,

	HeuristicWeight:       1.0,
	NumberOfInitialVisits: 1,
	Initializer: &Params{
		Engine:                        IDSEngine,
		MaxSearchDepth:                15,
		Caching:                       true,
		TerminateWithReasonableAction: true,
	},

	Termination:    prost.TerminationTime,
	MaxNodes:       100000,
	Recommendation: prost.RecommendMostPlayedArm,
}

// MCUCT is DP-UCT's Monte-Carlo sibling (Monte-Carlo outcome
// selection and MaxMC backup instead of DP-UCT's unsolved Monte-Carlo
// and Partial-Bellman): plain MC-UCT with no -sd cap and a bare
// Uniform(0) initializer, left bare so CLI overrides decide both
// (mirrors the descriptor grammar's [MC-UCT ...] base form).
var MCUCT = &Params{
	Engine:              THTSEngine,
	RewardLockDetection: true,
	CacheRewardLocks:    true,

	ActionSelection:    UCB1ActionSelection,
	MagicConstantScale: 1.0,
	ExplorationFamily:  FamilyLog,

	OutcomeSelection: MonteCarloOutcome,
	Backup:           MaxMCBackup,

	HeuristicWeight:       1.0,
	NumberOfInitialVisits: 1,
	Initializer:           &Params{Engine: UniformEngine},

	Termination:    prost.TerminationTime,
	MaxNodes:       100000,
	Recommendation: prost.RecommendMostPlayedArm,
}

// DPUCT is MC-UCT with the Partial-Bellman backup and the unsolved
// Monte-Carlo outcome selector it is paired with (§4.9): the
// "Dynamic-Programming UCT" of the original IPPC entries.
var DPUCT = &Params{
	Engine:              THTSEngine,
	RewardLockDetection: true,
	CacheRewardLocks:    true,

	ActionSelection:    UCB1ActionSelection,
	MagicConstantScale: 1.0,
	ExplorationFamily:  FamilyLog,

	OutcomeSelection:      UnsolvedMonteCarloOutcome,
	Backup:                PartialBellmanBackup,
	PartialBellmanEpsilon: 1e-6,

	HeuristicWeight:       1.0,
	NumberOfInitialVisits: 1,
	Initializer:           &Params{Engine: UniformEngine},

	Termination:    prost.TerminationTime,
	MaxNodes:       100000,
	Recommendation: prost.RecommendMostPlayedArm,
}

// UCTStar applies the original source's [UCTStar <options>] :=
// [DP-UCT -ndn 1 -iv 1 <options>] expansion: a tip-node budget of 1
// forces every trial to expand exactly one new node, and a single
// initial visit keeps UCB1's exploration term meaningful from the
// first action selection.
var UCTStar = &Params{
	Engine:              THTSEngine,
	RewardLockDetection: true,
	CacheRewardLocks:    true,

	ActionSelection:    UCB1ActionSelection,
	MagicConstantScale: 1.0,
	ExplorationFamily:  FamilyLog,

	OutcomeSelection:      UnsolvedMonteCarloOutcome,
	Backup:                PartialBellmanBackup,
	PartialBellmanEpsilon: 1e-6,

	HeuristicWeight:       1.0,
	NumberOfInitialVisits: 1,
	TipNodeBudget:         1,
	Initializer:           &Params{Engine: UniformEngine},

	Termination:    prost.TerminationTime,
	MaxNodes:       100000,
	Recommendation: prost.RecommendMostPlayedArm,
}

// MaxUCT, IPPC2014 and BFS have no literal expansion in the original
// source's main.cc (only IPPC2011 and UCTStar do); these three are
// reconstructed from spec.md's description of their intent rather than
// a found preset string (an Open Question, decided here rather than
// left unimplemented):
//
//   - MaxUCT: DP-UCT's ingredients (Partial-Bellman / unsolved MC) but
//     with the plain MC-UCT recommendation policy (most-played-arm
//     still applies; the distinguishing trait is the backup pairing),
//     so MaxUCT is DPUCT with a depth-15 IDS initializer, echoing how
//     IPPC2011 pairs MC-UCT with IDS.
//   - IPPC2014: the 2011 entry's depth search widened to the task's
//     full horizon (no -sd cap) and with the visit-difference
//     heuristic enabled, matching the later competition's move away
//     from depth-bounded lookahead.
//   - BFS: a non-THTS baseline, the Minimal-Lookahead engine by
//     itself, matching its role elsewhere in spec.md as the cheapest
//     comparison point.
var MaxUCT = &Params{
	Engine:              THTSEngine,
	RewardLockDetection: true,
	CacheRewardLocks:    true,

	ActionSelection:    UCB1ActionSelection,
	MagicConstantScale: 1.0,
	ExplorationFamily:  FamilyLog,

	OutcomeSelection:      UnsolvedMonteCarloOutcome,
	Backup:                PartialBellmanBackup,
	PartialBellmanEpsilon: 1e-6,

	HeuristicWeight:       1.0,
	NumberOfInitialVisits: 1,
	Initializer: &Params{
		Engine:                        IDSEngine,
		MaxSearchDepth:                15,
		Caching:                       true,
		TerminateWithReasonableAction: true,
	},

	Termination:    prost.TerminationTime,
	MaxNodes:       100000,
	Recommendation: prost.RecommendMostPlayedArm,
}

var IPPC2014 = &Params{
	Engine:              THTSEngine,
	RewardLockDetection: true,
	CacheRewardLocks:    true,

	ActionSelection:    UCB1ActionSelection,
	MagicConstantScale: 1.0,
	ExplorationFamily:  FamilyLog,
	MaxVisitDiff:       1.0,

	OutcomeSelection: MonteCarloOutcome,
	Backup:           MaxMCBackup,

	HeuristicWeight:       1.0,
	NumberOfInitialVisits: 1,
	Initializer: &Params{
		Engine:                        IDSEngine,
		MaxSearchDepth:                15,
		Caching:                       true,
		TerminateWithReasonableAction: true,
	},

	Termination:    prost.TerminationTime,
	MaxNodes:       100000,
	Recommendation: prost.RecommendMostPlayedArm,
}

var BFS = &Params{
	Engine: MLSEngine,
}
