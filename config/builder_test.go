// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/config"
)

func TestBuilderAppliesOverridesOnClone(t *testing.T) {
	require := require.New(t)

	p, err := config.NewBuilder(config.IPPC2011).
		WithMaxSearchDepth(5).
		WithTermination(prost.TerminationTrials, 500, 0).
		Build()
	require.NoError(err)
	require.Equal(5, p.MaxSearchDepth)
	require.Equal(500, p.MaxTrials)

	// The shared preset var itself must be untouched.
	require.Equal(15, config.IPPC2011.MaxSearchDepth)
}

func TestBuilderShortCircuitsOnFirstError(t *testing.T) {
	require := require.New(t)

	_, err := config.NewBuilder(config.MCUCT).
		WithMaxSearchDepth(-1).
		WithTimeout(5 * time.Second). // never applied, err already set
		Build()
	require.Error(err)
}

func TestBuilderWithInitializerRejectsNil(t *testing.T) {
	require := require.New(t)

	_, err := config.NewBuilder(config.MCUCT).
		WithInitializer(nil, 1, 1).
		Build()
	require.Error(err)
}

func TestBuilderWithIngredientsRejectsUnknownKind(t *testing.T) {
	require := require.New(t)

	_, err := config.NewBuilder(config.MCUCT).
		WithBackup(config.UnknownBackup, 0, 0, 0).
		Build()
	require.Error(err)
}
