// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package selection_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/thts"
	"github.com/prost-go/prost/thts/selection"
)

func TestSelectActionVisitsUnvisitedChildFirst(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(1))
	u := selection.New(1.0, selection.Log, 0, rng)

	node := &thts.Node{
		NumberOfVisits: 2,
		Children: []*thts.Node{
			{FutureReward: 1, NumberOfVisits: 1},
			{FutureReward: 0, NumberOfVisits: 0},
		},
	}

	got := u.SelectAction(node, []int{0, 1}, false)
	require.Equal(1, got)
}

func TestSelectActionAtRootExploresLeastVisited(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(2))
	u := selection.New(1.0, selection.Log, 0, rng)

	node := &thts.Node{
		NumberOfVisits: 10,
		Children: []*thts.Node{
			{FutureReward: 5, NumberOfVisits: 9},
			{FutureReward: 0, NumberOfVisits: 0},
		},
	}

	got := u.SelectAction(node, []int{0, 1}, true)
	require.Equal(1, got)
	require.Equal(1, u.ExploreCount)
}

func TestSelectActionAtRootForcesVisitDifference(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(4))
	u := selection.New(1.0, selection.Log, 2.0, rng)

	node := &thts.Node{
		NumberOfVisits: 11,
		Children: []*thts.Node{
			{FutureReward: 5, NumberOfVisits: 10},
			{FutureReward: 0, NumberOfVisits: 1},
		},
	}

	got := u.SelectAction(node, []int{0, 1}, true)
	require.Equal(1, got)
	require.Equal(1, u.ExploreCount)
}

func TestSelectActionSkipsDuplicateAndInapplicableActions(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(3))
	u := selection.New(1.0, selection.Sqrt, 0, rng)

	node := &thts.Node{
		NumberOfVisits: 6,
		Children: []*thts.Node{
			{FutureReward: 1, NumberOfVisits: 3},
			nil,
			{FutureReward: 1, NumberOfVisits: 3},
		},
	}
	// applicable[1] == -1 (inapplicable), applicable[2] == 0 (duplicate
	// of action 0, aliased to the same child): only index 0 may be
	// returned.
	got := u.SelectAction(node, []int{0, -1, 0}, false)
	require.Equal(0, got)
}
