// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/config"
)

func TestValidatePresetsAllPass(t *testing.T) {
	require := require.New(t)
	presets := []*config.Params{
		config.IPPC2011, config.IPPC2014, config.MCUCT, config.UCTStar,
		config.DPUCT, config.MaxUCT, config.BFS,
	}
	for _, p := range presets {
		require.NoError(config.Validate(p))
	}
}

func TestValidateRejectsUnknownEngine(t *testing.T) {
	require := require.New(t)
	err := config.Validate(&config.Params{Engine: config.UnknownEngine})
	require.Error(err)
}

func TestValidateRejectsTHTSMissingIngredient(t *testing.T) {
	require := require.New(t)

	missingAction := &config.Params{
		Engine:           config.THTSEngine,
		OutcomeSelection: config.MonteCarloOutcome,
		Backup:           config.MaxMCBackup,
		Initializer:      &config.Params{Engine: config.UniformEngine},
	}
	require.Error(config.Validate(missingAction))

	missingInitializer := &config.Params{
		Engine:           config.THTSEngine,
		ActionSelection:  config.UCB1ActionSelection,
		OutcomeSelection: config.MonteCarloOutcome,
		Backup:           config.MaxMCBackup,
	}
	require.Error(config.Validate(missingInitializer))
}

func TestValidateRecursesIntoInitializer(t *testing.T) {
	require := require.New(t)
	p := &config.Params{
		Engine:           config.THTSEngine,
		ActionSelection:  config.UCB1ActionSelection,
		OutcomeSelection: config.MonteCarloOutcome,
		Backup:           config.MaxMCBackup,
		Initializer:      &config.Params{Engine: config.THTSEngine},
	}
	require.Error(config.Validate(p))
}
