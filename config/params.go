// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config turns a CLI-style engine descriptor (§6) into a
// runnable engine.SearchEngine. It mirrors the teacher's
// presets.go/builder.go split: Params is the typed, flag-shaped
// parameter set; a preset is a named *Params value; Builder applies
// overrides fluently on top of one; Assemble walks a validated Params
// tree and wires the concrete thts ingredients and engines it names.
package config

import (
	"time"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/lock"
	"github.com/prost-go/prost/thts"
)

// EngineKind names one of the top-level search engines recognized by
// the descriptor grammar's SE token (§6).
type EngineKind int

const (
	UnknownEngine EngineKind = iota
	THTSEngine
	IDSEngine
	DFSEngine
	MLSEngine
	UniformEngine
	RandomWalkEngine
)

// ActionSelectionKind names a THTS -act ingredient.
type ActionSelectionKind int

const (
	UnknownActionSelection ActionSelectionKind = iota
	UCB1ActionSelection
)

// OutcomeSelectionKind names a THTS -out ingredient.
type OutcomeSelectionKind int

const (
	UnknownOutcomeSelection OutcomeSelectionKind = iota
	MonteCarloOutcome
	UnsolvedMonteCarloOutcome
)

// BackupKind names a THTS -backup ingredient.
type BackupKind int

const (
	UnknownBackup BackupKind = iota
	MCBackup
	MaxMCBackup
	PartialBellmanBackup
)

// Params is the typed form of one bracketed SE descriptor (§6),
// covering every recognized flag across the six engine kinds. Fields
// irrelevant to Engine are left at their zero value.
type Params struct {
	Engine EngineKind

	// Shared engine flags.
	Caching             bool
	MaxSearchDepth      int // -sd; 0 means no limit
	Timeout             time.Duration
	RewardLockDetection bool
	CacheRewardLocks    bool

	// THTS ingredient selection and their tuning knobs.
	ActionSelection    ActionSelectionKind
	MagicConstantScale float64
	ExplorationFamily  selectionFamily
	MaxVisitDiff       float64

	OutcomeSelection OutcomeSelectionKind

	Backup                BackupKind
	MCAlpha               float64
	MCDecay               float64
	PartialBellmanEpsilon float64

	HeuristicWeight       float64
	NumberOfInitialVisits int
	Initializer           *Params // -init [SubSE ...]

	Termination    prost.TerminationMode
	MaxTrials      int // -r
	MaxNodes       int // -mnn
	TipNodeBudget  int // -ndn; 0 defaults to task horizon
	Recommendation prost.RecommendationMode

	// RandomWalk-only.
	Iterations int

	// IDS-only.
	TerminateWithReasonableAction bool
	LearningTimeout               time.Duration

	// Uniform-only.
	UniformValue float64
}

// selectionFamily mirrors selection.ExplorationFamily without
// importing the selection package from params.go, keeping Params
// free of a hard dependency on any one ingredient implementation.
type selectionFamily int

const (
	FamilyLog selectionFamily = iota
	FamilySqrt
	FamilyIdentity
	FamilyLogSquared
)

// Task is the task surface Assemble needs: every engine kind's own
// task interface, union'd, since a single *task.Task value built by
// the taskio reader satisfies all of them at once.
type Task interface {
	thts.Task
	lock.Task
	RewardActionIndependent() bool
	NoopTrivial() bool
}
