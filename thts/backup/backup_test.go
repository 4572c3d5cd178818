// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package backup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prost-go/prost/thts"
	"github.com/prost-go/prost/thts/backup"
)

func TestDecisionBackupDecisionLeafSolvesImmediately(t *testing.T) {
	require := require.New(t)
	node := &thts.Node{}
	backup.Decision{}.BackupDecisionLeaf(node, 3.5)

	require.Equal(3.5, node.FutureReward)
	require.True(node.Solved)
	require.Equal(1, node.NumberOfVisits)
}

func TestDecisionBackupDecisionNodeTakesMaxOverChildren(t *testing.T) {
	require := require.New(t)
	node := &thts.Node{
		Children: []*thts.Node{
			{FutureReward: 1, Initialized: true, Solved: true},
			{FutureReward: 4, Initialized: true, Solved: true},
			nil,
		},
	}
	backup.Decision{}.BackupDecisionNode(node)

	require.Equal(4.0, node.FutureReward)
	require.True(node.Solved)
}

func TestDecisionBackupDecisionNodeUnsolvedIfAnyChildUnsolved(t *testing.T) {
	require := require.New(t)
	node := &thts.Node{
		Children: []*thts.Node{
			{FutureReward: 1, Initialized: true, Solved: true},
			{FutureReward: 4, Initialized: false, Solved: false},
		},
	}
	backup.Decision{}.BackupDecisionNode(node)

	require.Equal(4.0, node.FutureReward)
	require.False(node.Solved)
}

func TestMCBackupChanceNodeMovesTowardSample(t *testing.T) {
	require := require.New(t)
	m := backup.NewMC(0.3, 0)
	node := &thts.Node{FutureReward: 0}

	m.BackupChanceNode(node, 10, thts.BackupContext{})
	require.InDelta(3.0, node.FutureReward, 1e-9)
	require.Equal(1, node.NumberOfVisits)
}

func TestMaxMCBackupChanceNodeAveragesByVisits(t *testing.T) {
	require := require.New(t)
	node := &thts.Node{
		Children: []*thts.Node{
			{FutureReward: 2, NumberOfVisits: 3},
			{FutureReward: 8, NumberOfVisits: 1},
		},
	}
	backup.MaxMC{}.BackupChanceNode(node, 0, thts.BackupContext{})

	// weighted mean = (2*3 + 8*1) / 4 = 3.5
	require.InDelta(3.5, node.FutureReward, 1e-9)
}

func TestPartialBellmanSolvesWhenProbMassFullySolved(t *testing.T) {
	require := require.New(t)
	p := backup.NewPartialBellman()
	node := &thts.Node{
		Children: []*thts.Node{
			{FutureReward: 1, Prob: 0.5, Initialized: true, Solved: true},
			{FutureReward: 3, Prob: 0.5, Initialized: true, Solved: true},
		},
	}
	p.BackupChanceNode(node, 0, thts.BackupContext{Trial: 1, StepsToGo: 3, TipStepsToGo: 1})

	require.InDelta(2.0, node.FutureReward, 1e-9)
	require.True(node.Solved)
}

func TestPartialBellmanLocksWhenValueStopsChanging(t *testing.T) {
	require := require.New(t)
	p := backup.NewPartialBellman()
	node := &thts.Node{
		Children: []*thts.Node{
			{FutureReward: 2, Prob: 1.0, Initialized: true},
		},
	}
	ctx := thts.BackupContext{Trial: 1, StepsToGo: 3, TipStepsToGo: 1}

	p.BackupChanceNode(node, 0, ctx)
	require.False(node.BackupLocked)

	before := node.FutureReward
	p.BackupChanceNode(node, 0, ctx)
	require.Equal(before, node.FutureReward)
	require.True(node.BackupLocked)

	// Once locked, further visits within the same trial skip
	// recomputation even if a child later changes.
	node.Children[0].FutureReward = 99
	p.BackupChanceNode(node, 0, ctx)
	require.Equal(before, node.FutureReward)
}

func TestPartialBellmanReleasesLockOnNextTrial(t *testing.T) {
	require := require.New(t)
	p := backup.NewPartialBellman()
	node := &thts.Node{
		Children: []*thts.Node{
			{FutureReward: 2, Prob: 1.0, Initialized: true},
		},
	}
	ctx := thts.BackupContext{Trial: 1, StepsToGo: 3, TipStepsToGo: 1}
	p.BackupChanceNode(node, 0, ctx)
	p.BackupChanceNode(node, 0, ctx)
	require.True(node.BackupLocked)

	// A later trial whose subtree actually changed must see it: the
	// lock releases the moment a new trial reaches this node.
	node.Children[0].FutureReward = 99
	next := thts.BackupContext{Trial: 2, StepsToGo: 3, TipStepsToGo: 1}
	p.BackupChanceNode(node, 0, next)
	require.Equal(99.0, node.FutureReward)
	require.False(node.BackupLocked)
}

func TestPartialBellmanDepthGuardSkipsLockAtOrBelowTip(t *testing.T) {
	require := require.New(t)
	p := backup.NewPartialBellman()
	node := &thts.Node{
		Children: []*thts.Node{
			{FutureReward: 2, Prob: 1.0, Initialized: true},
		},
	}
	// StepsToGo == TipStepsToGo: this node sits at the trial's own tip
	// depth, so it must never engage the lock regardless of how many
	// unchanged visits it sees.
	ctx := thts.BackupContext{Trial: 1, StepsToGo: 1, TipStepsToGo: 1}
	p.BackupChanceNode(node, 0, ctx)
	p.BackupChanceNode(node, 0, ctx)
	require.False(node.BackupLocked)
}
