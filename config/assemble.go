// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"github.com/prost-go/prost"
	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/lock"
	"github.com/prost-go/prost/thts"
	"github.com/prost-go/prost/thts/backup"
	"github.com/prost-go/prost/thts/initializer"
	"github.com/prost-go/prost/thts/outcome"
	"github.com/prost-go/prost/thts/selection"
)

// Assemble validates p and wires a runnable engine.SearchEngine bound
// to tk and st, recursively resolving a THTS engine's -init sub-engine
// descriptor (§6). A single *task.Task built by taskio satisfies Task,
// so one value works for every engine kind Assemble may construct.
func Assemble(p *Params, tk Task, st *prost.EngineState) (engine.SearchEngine, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	return assemble(p, tk, st)
}

func assemble(p *Params, tk Task, st *prost.EngineState) (engine.SearchEngine, error) {
	switch p.Engine {
	case UniformEngine:
		return engine.NewUniform(p.UniformValue), nil
	case RandomWalkEngine:
		iterations := p.Iterations
		if iterations <= 0 {
			iterations = 100
		}
		return engine.NewRandomWalk(tk, st.RNG, iterations), nil
	case DFSEngine:
		return engine.NewDFS(tk), nil
	case MLSEngine:
		return engine.NewMinimalLookahead(tk), nil
	case IDSEngine:
		ids := engine.NewIDS(tk, p.MaxSearchDepth)
		ids.TerminateWithReasonableAction = p.TerminateWithReasonableAction
		if p.LearningTimeout > 0 {
			ids.TerminationTimeout = p.LearningTimeout
		}
		return ids, nil
	case THTSEngine:
		return assembleTHTS(p, tk, st)
	default:
		return nil, prost.WrapConfig(prost.ErrUnknownEngine, "Engine")
	}
}

func assembleTHTS(p *Params, tk Task, st *prost.EngineState) (*thts.THTS, error) {
	sub, err := assemble(p.Initializer, tk, st)
	if err != nil {
		return nil, err
	}

	sel, err := assembleActionSelector(p, st)
	if err != nil {
		return nil, err
	}
	out, err := assembleOutcomeSelector(p, st)
	if err != nil {
		return nil, err
	}
	bk, err := assembleBackup(p)
	if err != nil {
		return nil, err
	}

	heuristicWeight := p.HeuristicWeight
	if heuristicWeight == 0 {
		heuristicWeight = 1.0
	}
	init := initializer.New(sub, heuristicWeight, p.NumberOfInitialVisits)

	cfg := thts.Config{
		ActionSelector:  sel,
		OutcomeSelector: out,
		Backup:          bk,
		Initializer:     init,
		Termination:     p.Termination,
		MaxTrials:       p.MaxTrials,
		MaxTime:         p.Timeout,
		Recommendation:  p.Recommendation,
		MaxNodes:        p.MaxNodes,
		TipNodeBudget:   p.TipNodeBudget,
		State:           st,
	}
	if p.RewardLockDetection {
		cfg.RewardLock = lock.New(tk)
	}
	return thts.New(tk, cfg), nil
}

func assembleActionSelector(p *Params, st *prost.EngineState) (thts.ActionSelector, error) {
	switch p.ActionSelection {
	case UCB1ActionSelection:
		return selection.New(p.MagicConstantScale, toExplorationFamily(p.ExplorationFamily), p.MaxVisitDiff, st.RNG), nil
	default:
		return nil, prost.WrapConfig(prost.ErrUnknownFlag, "-act")
	}
}

func assembleOutcomeSelector(p *Params, st *prost.EngineState) (thts.OutcomeSelector, error) {
	switch p.OutcomeSelection {
	case MonteCarloOutcome:
		return outcome.New(st.RNG), nil
	case UnsolvedMonteCarloOutcome:
		return outcome.NewUnsolved(st.RNG), nil
	default:
		return nil, prost.WrapConfig(prost.ErrUnknownFlag, "-out")
	}
}

func assembleBackup(p *Params) (thts.BackupFunction, error) {
	switch p.Backup {
	case MCBackup:
		return backup.NewMC(p.MCAlpha, p.MCDecay), nil
	case MaxMCBackup:
		return backup.MaxMC{}, nil
	case PartialBellmanBackup:
		pb := backup.NewPartialBellman()
		if p.PartialBellmanEpsilon > 0 {
			pb.SolvedEpsilon = p.PartialBellmanEpsilon
		}
		return pb, nil
	default:
		return nil, prost.WrapConfig(prost.ErrUnknownFlag, "-backup")
	}
}

func toExplorationFamily(f selectionFamily) selection.ExplorationFamily {
	switch f {
	case FamilySqrt:
		return selection.Sqrt
	case FamilyIdentity:
		return selection.Identity
	case FamilyLogSquared:
		return selection.LogSquared
	default:
		return selection.Log
	}
}
