// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"time"

	"github.com/prost-go/prost"
)

// Builder applies CLI-style overrides on top of a preset, validating
// each one as it is set so a descriptor parser (§6) can short-circuit
// on the first bad flag without building the whole Params tree first.
type Builder struct {
	params *Params
	err    error
}

// NewBuilder starts from a clone of preset (never the preset itself,
// so repeated builds never mutate the shared var).
func NewBuilder(preset *Params) *Builder {
	clone := *preset
	if preset.Initializer != nil {
		sub := *preset.Initializer
		clone.Initializer = &sub
	}
	return &Builder{params: &clone}
}

func (b *Builder) fail(err error, fragment string) *Builder {
	if b.err == nil {
		b.err = prost.WrapConfig(err, fragment)
	}
	return b
}

// WithCaching sets the -uc flag.
func (b *Builder) WithCaching(v bool) *Builder {
	if b.err != nil {
		return b
	}
	b.params.Caching = v
	return b
}

// WithMaxSearchDepth sets the -sd flag. 0 means no limit.
func (b *Builder) WithMaxSearchDepth(depth int) *Builder {
	if b.err != nil {
		return b
	}
	if depth < 0 {
		return b.fail(prost.ErrMalformedDescriptor, "-sd")
	}
	b.params.MaxSearchDepth = depth
	return b
}

// WithTimeout sets the -t flag.
func (b *Builder) WithTimeout(d time.Duration) *Builder {
	if b.err != nil {
		return b
	}
	if d < 0 {
		return b.fail(prost.ErrMalformedDescriptor, "-t")
	}
	b.params.Timeout = d
	return b
}

// WithRewardLockDetection sets the -rld flag.
func (b *Builder) WithRewardLockDetection(v bool) *Builder {
	if b.err != nil {
		return b
	}
	b.params.RewardLockDetection = v
	return b
}

// WithCacheRewardLocks sets the -crl flag.
func (b *Builder) WithCacheRewardLocks(v bool) *Builder {
	if b.err != nil {
		return b
	}
	b.params.CacheRewardLocks = v
	return b
}

// WithActionSelection sets a THTS engine's -act ingredient.
func (b *Builder) WithActionSelection(kind ActionSelectionKind, mcs, maxVisitDiff float64, family selectionFamily) *Builder {
	if b.err != nil {
		return b
	}
	if kind == UnknownActionSelection {
		return b.fail(prost.ErrUnknownFlag, "-act")
	}
	b.params.ActionSelection = kind
	b.params.MagicConstantScale = mcs
	b.params.MaxVisitDiff = maxVisitDiff
	b.params.ExplorationFamily = family
	return b
}

// WithOutcomeSelection sets a THTS engine's -out ingredient.
func (b *Builder) WithOutcomeSelection(kind OutcomeSelectionKind) *Builder {
	if b.err != nil {
		return b
	}
	if kind == UnknownOutcomeSelection {
		return b.fail(prost.ErrUnknownFlag, "-out")
	}
	b.params.OutcomeSelection = kind
	return b
}

// WithBackup sets a THTS engine's -backup ingredient and its knobs;
// alpha/decay apply only to MC, epsilon only to Partial-Bellman.
func (b *Builder) WithBackup(kind BackupKind, alpha, decay, epsilon float64) *Builder {
	if b.err != nil {
		return b
	}
	if kind == UnknownBackup {
		return b.fail(prost.ErrUnknownFlag, "-backup")
	}
	b.params.Backup = kind
	b.params.MCAlpha = alpha
	b.params.MCDecay = decay
	b.params.PartialBellmanEpsilon = epsilon
	return b
}

// WithInitializer sets the -init sub-engine descriptor, along with the
// -iv/-hw flags that scale its heuristic into the parent's Q-values.
func (b *Builder) WithInitializer(sub *Params, heuristicWeight float64, numberOfInitialVisits int) *Builder {
	if b.err != nil {
		return b
	}
	if sub == nil {
		return b.fail(prost.ErrMissingIngredient, "-init")
	}
	b.params.Initializer = sub
	if heuristicWeight != 0 {
		b.params.HeuristicWeight = heuristicWeight
	}
	if numberOfInitialVisits != 0 {
		b.params.NumberOfInitialVisits = numberOfInitialVisits
	}
	return b
}

// WithInitializerEngine sets just the -init sub-engine descriptor,
// leaving -iv/-hw to WithInitializerVisits/WithHeuristicWeight; a
// descriptor parser sees those three flags in any order, so it needs
// to set each independently rather than all at once.
func (b *Builder) WithInitializerEngine(sub *Params) *Builder {
	if b.err != nil {
		return b
	}
	if sub == nil {
		return b.fail(prost.ErrMissingIngredient, "-init")
	}
	b.params.Initializer = sub
	return b
}

// WithHeuristicWeight sets the -hw flag.
func (b *Builder) WithHeuristicWeight(v float64) *Builder {
	if b.err != nil {
		return b
	}
	b.params.HeuristicWeight = v
	return b
}

// WithInitializerVisits sets the -iv flag.
func (b *Builder) WithInitializerVisits(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(prost.ErrMalformedDescriptor, "-iv")
	}
	b.params.NumberOfInitialVisits = n
	return b
}

// WithTermination sets the -T, -r and -t flags together, since the
// termination mode decides which of MaxTrials/Timeout are load-bearing.
func (b *Builder) WithTermination(mode prost.TerminationMode, maxTrials int, timeout time.Duration) *Builder {
	if b.err != nil {
		return b
	}
	b.params.Termination = mode
	b.params.MaxTrials = maxTrials
	b.params.Timeout = timeout
	return b
}

// WithTerminationMode sets just the -T flag, leaving -r/-t to
// WithMaxTrials/WithTimeout; a descriptor parser sees all three flags
// independently and in any order.
func (b *Builder) WithTerminationMode(mode prost.TerminationMode) *Builder {
	if b.err != nil {
		return b
	}
	b.params.Termination = mode
	return b
}

// WithMaxTrials sets the -r flag.
func (b *Builder) WithMaxTrials(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(prost.ErrMalformedDescriptor, "-r")
	}
	b.params.MaxTrials = n
	return b
}

// WithRecommendation sets the -mv flag.
func (b *Builder) WithRecommendation(mode prost.RecommendationMode) *Builder {
	if b.err != nil {
		return b
	}
	b.params.Recommendation = mode
	return b
}

// WithMaxNodes sets the -mnn flag.
func (b *Builder) WithMaxNodes(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(prost.ErrMalformedDescriptor, "-mnn")
	}
	b.params.MaxNodes = n
	return b
}

// WithTipNodeBudget sets the -ndn flag. A negative n means "H" (the
// task horizon), recorded as 0, which the THTS trial loop reads as the
// task horizon.
func (b *Builder) WithTipNodeBudget(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		n = 0
	}
	b.params.TipNodeBudget = n
	return b
}

// WithIterations sets a RandomWalk engine's iteration count.
func (b *Builder) WithIterations(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		return b.fail(prost.ErrMalformedDescriptor, "-iter")
	}
	b.params.Iterations = n
	return b
}

// WithUniformValue sets a Uniform engine's constant Q-value.
func (b *Builder) WithUniformValue(v float64) *Builder {
	if b.err != nil {
		return b
	}
	b.params.UniformValue = v
	return b
}

// Build validates the accumulated Params and returns it, or the first
// error encountered by any With* call or by Validate.
func (b *Builder) Build() (*Params, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := Validate(b.params); err != nil {
		return nil, err
	}
	return b.params, nil
}
