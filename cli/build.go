// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/config"
)

// presets maps the descriptor grammar's engine-name shortcuts to their
// canonical config.Params (§6, "plus shortcuts IPPC2011, IPPC2014,
// MC-UCT, UCTStar, DP-UCT, MaxUCT, BFS expanding to canonical THTS
// configurations").
var presets = map[string]*config.Params{
	"IPPC2011": config.IPPC2011,
	"IPPC2014": config.IPPC2014,
	"MC-UCT":   config.MCUCT,
	"UCTStar":  config.UCTStar,
	"DP-UCT":   config.DPUCT,
	"MaxUCT":   config.MaxUCT,
	"BFS":      config.BFS,
}

// bareEngines maps the grammar's primitive engine names to the
// Params.Engine they construct with no ingredients of their own.
var bareEngines = map[string]config.EngineKind{
	"THTS":       config.THTSEngine,
	"IDS":        config.IDSEngine,
	"DFS":        config.DFSEngine,
	"MLS":        config.MLSEngine,
	"Uniform":    config.UniformEngine,
	"RandomWalk": config.RandomWalkEngine,
}

// Build parses descriptor and turns it into a validated config.Params,
// ready for config.Assemble.
func Build(descriptor string) (*config.Params, error) {
	n, err := parseDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	return buildNode(n)
}

func buildNode(n *node) (*config.Params, error) {
	var b *config.Builder
	switch {
	case presets[n.Engine] != nil:
		b = config.NewBuilder(presets[n.Engine])
	case bareEngines[n.Engine] != 0:
		b = config.NewBuilder(&config.Params{Engine: bareEngines[n.Engine]})
	default:
		return nil, errors.Wrap(prost.ErrUnknownEngine, n.Engine)
	}

	for _, f := range n.Flags {
		var err error
		b, err = applyFlag(b, f)
		if err != nil {
			return nil, err
		}
	}

	return b.Build()
}

func applyFlag(b *config.Builder, f flag) (*config.Builder, error) {
	switch f.Name {
	case "-uc":
		v, err := boolFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithCaching(v), nil

	case "-sd":
		v, err := intFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithMaxSearchDepth(v), nil

	case "-t":
		v, err := floatFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithTimeout(time.Duration(v * float64(time.Second))), nil

	case "-rld":
		v, err := boolFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithRewardLockDetection(v), nil

	case "-crl":
		v, err := boolFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithCacheRewardLocks(v), nil

	case "-T":
		mode, err := terminationMode(f.Value)
		if err != nil {
			return nil, err
		}
		return b.WithTerminationMode(mode), nil

	case "-r":
		v, err := intFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithMaxTrials(v), nil

	case "-ndn":
		if f.Value == "H" {
			return b.WithTipNodeBudget(0), nil
		}
		v, err := intFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithTipNodeBudget(v), nil

	case "-mnn":
		v, err := intFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithMaxNodes(v), nil

	case "-mv":
		v, err := boolFlag(f)
		if err != nil {
			return nil, err
		}
		if v {
			return b.WithRecommendation(prost.RecommendMostPlayedArm), nil
		}
		return b.WithRecommendation(prost.RecommendExpectedBestArm), nil

	case "-iv":
		v, err := intFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithInitializerVisits(v), nil

	case "-hw":
		v, err := floatFlag(f)
		if err != nil {
			return nil, err
		}
		return b.WithHeuristicWeight(v), nil

	case "-act":
		if f.Sub == nil {
			return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-act requires a bracketed ingredient")
		}
		return applyActionSelection(b, f.Sub)

	case "-out":
		if f.Sub == nil {
			return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-out requires a bracketed ingredient")
		}
		return applyOutcomeSelection(b, f.Sub)

	case "-backup":
		if f.Sub == nil {
			return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-backup requires a bracketed ingredient")
		}
		return applyBackup(b, f.Sub)

	case "-init":
		if f.Sub == nil {
			return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-init requires a bracketed search engine")
		}
		sub, err := buildNode(f.Sub)
		if err != nil {
			return nil, err
		}
		return b.WithInitializerEngine(sub), nil

	default:
		return nil, errors.Wrap(prost.ErrUnknownFlag, f.Name)
	}
}

func applyActionSelection(b *config.Builder, n *node) (*config.Builder, error) {
	if n.Engine != "UCB1" {
		return nil, errors.Wrap(prost.ErrUnknownFlag, "-act "+n.Engine)
	}
	mcs, family := 1.0, config.FamilyLog
	for _, f := range n.Flags {
		switch f.Name {
		case "-mcs":
			v, err := strconv.ParseFloat(f.Value, 64)
			if err != nil {
				return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-mcs")
			}
			mcs = v
		case "-er":
			switch f.Value {
			case "LOG":
				family = config.FamilyLog
			case "SQRT":
				family = config.FamilySqrt
			case "LIN":
				family = config.FamilyIdentity
			case "E.SQRT":
				family = config.FamilyLogSquared
			default:
				return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-er "+f.Value)
			}
		default:
			return nil, errors.Wrap(prost.ErrUnknownFlag, f.Name)
		}
	}
	return b.WithActionSelection(config.UCB1ActionSelection, mcs, 0, family), nil
}

func applyOutcomeSelection(b *config.Builder, n *node) (*config.Builder, error) {
	switch n.Engine {
	case "MonteCarlo":
		return b.WithOutcomeSelection(config.MonteCarloOutcome), nil
	case "UnsolvedMonteCarlo":
		return b.WithOutcomeSelection(config.UnsolvedMonteCarloOutcome), nil
	default:
		return nil, errors.Wrap(prost.ErrUnknownFlag, "-out "+n.Engine)
	}
}

func applyBackup(b *config.Builder, n *node) (*config.Builder, error) {
	switch n.Engine {
	case "MC":
		alpha, decay := 1.0, 0.0
		for _, f := range n.Flags {
			switch f.Name {
			case "-alpha":
				v, err := strconv.ParseFloat(f.Value, 64)
				if err != nil {
					return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-alpha")
				}
				alpha = v
			case "-decay":
				v, err := strconv.ParseFloat(f.Value, 64)
				if err != nil {
					return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-decay")
				}
				decay = v
			default:
				return nil, errors.Wrap(prost.ErrUnknownFlag, f.Name)
			}
		}
		return b.WithBackup(config.MCBackup, alpha, decay, 0), nil

	case "MaxMC":
		return b.WithBackup(config.MaxMCBackup, 0, 0, 0), nil

	case "PartialBellman":
		eps := 1e-6
		for _, f := range n.Flags {
			if f.Name != "-eps" {
				return nil, errors.Wrap(prost.ErrUnknownFlag, f.Name)
			}
			v, err := strconv.ParseFloat(f.Value, 64)
			if err != nil {
				return nil, errors.Wrap(prost.ErrMalformedDescriptor, "-eps")
			}
			eps = v
		}
		return b.WithBackup(config.PartialBellmanBackup, 0, 0, eps), nil

	default:
		return nil, errors.Wrap(prost.ErrUnknownFlag, "-backup "+n.Engine)
	}
}


func terminationMode(s string) (prost.TerminationMode, error) {
	switch s {
	case "TIME":
		return prost.TerminationTime, nil
	case "TRIALS":
		return prost.TerminationTrials, nil
	case "TIME_AND_TRIALS":
		return prost.TerminationTimeAndTrials, nil
	default:
		return 0, errors.Wrap(prost.ErrMalformedDescriptor, "-T "+s)
	}
}

func boolFlag(f flag) (bool, error) {
	switch f.Value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, errors.Wrap(prost.ErrMalformedDescriptor, f.Name+" "+f.Value)
	}
}

func intFlag(f flag) (int, error) {
	v, err := strconv.Atoi(f.Value)
	if err != nil {
		return 0, errors.Wrap(prost.ErrMalformedDescriptor, f.Name+" "+f.Value)
	}
	return v, nil
}

func floatFlag(f flag) (float64, error) {
	v, err := strconv.ParseFloat(f.Value, 64)
	if err != nil {
		return 0, errors.Wrap(prost.ErrMalformedDescriptor, f.Name+" "+f.Value)
	}
	return v, nil
}
