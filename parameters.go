// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package prost holds the shared sentinels and run-time context used
// across the planner: errors, the per-run EngineState, and the
// TerminationMode vocabulary the THTS framework and simple engines
// share.
package prost

import (
	"math/rand"
	"time"
)

// TerminationMode selects how a search engine's main loop decides to
// stop (§4.8, §6 `-T`).
type TerminationMode int

const (
	TerminationTime TerminationMode = iota
	TerminationTrials
	TerminationTimeAndTrials
)

// RecommendationMode selects how THTS picks the final action(s) from
// the root's children (§4.8 `recommend`).
type RecommendationMode int

const (
	RecommendExpectedBestArm RecommendationMode = iota
	RecommendMostPlayedArm
)

// EngineState consolidates the per-run mutable ground the design notes
// (§9) call out as "global mutable state for RNG, caches, and BDDs":
// one PRNG stream and a monotonic stopwatch, shared by every
// ingredient in a single engine instance. Never shared across engines.
type EngineState struct {
	RNG *rand.Rand

	start time.Time
}

// NewEngineState seeds a fresh EngineState. seed == 0 draws entropy
// from the runtime clock; any other value makes trials reproducible
// (§5 Determinism).
func NewEngineState(seed int64) *EngineState {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &EngineState{RNG: rand.New(rand.NewSource(seed))}
}

// StartStopwatch resets the monotonic clock used by TIME termination.
func (e *EngineState) StartStopwatch() { e.start = time.Now() }

// Elapsed returns the time since the last StartStopwatch call.
func (e *EngineState) Elapsed() time.Duration { return time.Since(e.start) }
