// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package state_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/state"
)

func TestDiscretePDValidate(t *testing.T) {
	require := require.New(t)

	require.NoError(state.Dirac(1).Validate())

	bad := state.DiscretePD{Values: []float64{0, 1}, Probs: []float64{0.5, 0.4}}
	require.Error(bad.Validate())

	unsorted := state.DiscretePD{Values: []float64{1, 0}, Probs: []float64{0.5, 0.5}}
	require.Error(unsorted.Validate())
}

func TestBernoulliClamping(t *testing.T) {
	require := require.New(t)

	require.True(state.Bernoulli(-1).IsDirac())
	require.Equal(0.0, state.Bernoulli(-1).Values[0])

	require.True(state.Bernoulli(2).IsDirac())
	require.Equal(1.0, state.Bernoulli(2).Values[0])

	pd := state.Bernoulli(0.3)
	require.NoError(pd.Validate())
	require.InDelta(0.3, pd.TruthProb(), 1e-9)
}

func TestCrossProductDedup(t *testing.T) {
	require := require.New(t)

	a := state.Bernoulli(0.5)
	b := state.Dirac(1)
	sum := state.CrossProduct(a, b, func(x, y float64) float64 { return x + y })
	require.NoError(sum.Validate())
	require.Equal([]float64{1, 2}, sum.Values)
}

func TestSampleDistribution(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(1))
	pd := state.Bernoulli(0.5)

	ones := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if pd.Sample(rng) == 1 {
			ones++
		}
	}
	require.InDelta(0.5, float64(ones)/n, 0.03)
}
