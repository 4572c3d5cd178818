// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package selection implements the UCB1 action-selection ingredient of
// §4.9: bandit-style exploration over a decision node's action
// children, with two root-only heuristics that guarantee a minimum
// amount of exploration before the UCB1 formula takes over.
package selection

import (
	"math"
	"math/rand"

	"github.com/prost-go/prost/thts"
)

// ExplorationFamily names one of §4.9's exploration-rate functions
// f(parentVisits) used inside the UCB1 formula.
type ExplorationFamily int

const (
	Log ExplorationFamily = iota
	Sqrt
	Identity
	LogSquared
)

// UCB1 is the action-selection ingredient of §4.9. MagicConstantScale
// ("mcs") and Family tune the exploration/exploitation balance;
// MaxVisitDiff, when positive, forces a visit to the least-visited
// unsolved child whenever the most-visited child has pulled too far
// ahead, preventing a single early success from starving its siblings.
type UCB1 struct {
	MagicConstantScale float64
	Family             ExplorationFamily
	MaxVisitDiff       float64
	Rng                *rand.Rand

	ExploreCount int
	ExploitCount int
}

// New returns a UCB1 selector. A MaxVisitDiff of 0 disables the
// visit-difference heuristic.
func New(mcs float64, family ExplorationFamily, maxVisitDiff float64, rng *rand.Rand) *UCB1 {
	return &UCB1{MagicConstantScale: mcs, Family: family, MaxVisitDiff: maxVisitDiff, Rng: rng}
}

// SelectAction implements thts.ActionSelector.
func (u *UCB1) SelectAction(node *thts.Node, applicable []int, isRoot bool) int {
	if isRoot {
		if a, ok := u.selectLeastVisitedUnsolved(node, applicable); ok {
			u.ExploreCount++
			return a
		}
		if a, ok := u.selectByVisitDifference(node, applicable); ok {
			u.ExploreCount++
			return a
		}
		u.ExploitCount++
	}
	return u.selectUCB1(node, applicable)
}

// selectLeastVisitedUnsolved guarantees every root action is tried at
// least once before UCB1 starts weighing them against each other.
func (u *UCB1) selectLeastVisitedUnsolved(node *thts.Node, applicable []int) (int, bool) {
	for i := range applicable {
		if !isRepresentative(applicable, i) || node.Children[i] == nil || node.Children[i].Solved {
			continue
		}
		if node.Children[i].NumberOfVisits == 0 {
			return i, true
		}
	}
	return 0, false
}

// selectByVisitDifference forces a visit to the least-visited unsolved
// child once the most-visited child has pulled MaxVisitDiff times
// ahead of it, breaking the starvation an aggressive UCB1 estimate can
// otherwise cause (§4.9).
func (u *UCB1) selectByVisitDifference(node *thts.Node, applicable []int) (int, bool) {
	if u.MaxVisitDiff <= 0 {
		return 0, false
	}
	minVisits, maxVisits := math.MaxInt64, 0
	minIdx := -1
	for i := range applicable {
		if !isRepresentative(applicable, i) || node.Children[i] == nil || node.Children[i].Solved {
			continue
		}
		v := node.Children[i].NumberOfVisits
		if v < minVisits {
			minVisits, minIdx = v, i
		}
		if v > maxVisits {
			maxVisits = v
		}
	}
	if minIdx == -1 {
		return 0, false
	}
	if float64(maxVisits) > u.MaxVisitDiff*float64(minVisits+1) {
		return minIdx, true
	}
	return 0, false
}

// selectUCB1 applies the standard formula: visit any not-yet-sampled
// child immediately, otherwise pick the child maximizing
// expected_reward_estimate + magicConstant*sqrt(f(parentVisits)/visits),
// breaking ties uniformly at random.
func (u *UCB1) selectUCB1(node *thts.Node, applicable []int) int {
	for i := range applicable {
		if isRepresentative(applicable, i) && node.Children[i] != nil && node.Children[i].NumberOfVisits == 0 {
			return i
		}
	}

	magic := u.magicConstant(node)
	rate := u.explorationRate(float64(node.NumberOfVisits))

	best := math.Inf(-1)
	var ties []int
	for i := range applicable {
		if !isRepresentative(applicable, i) || node.Children[i] == nil {
			continue
		}
		c := node.Children[i]
		value := c.ExpectedRewardEstimate() + magic*math.Sqrt(rate/float64(c.NumberOfVisits))
		switch {
		case value > best:
			best = value
			ties = []int{i}
		case value == best:
			ties = append(ties, i)
		}
	}
	if len(ties) == 0 {
		return firstRepresentative(applicable)
	}
	return ties[u.Rng.Intn(len(ties))]
}

// magicConstant scales the parent's own value estimate so exploration
// bonuses stay comparable to the reward's own magnitude, floored at
// 100 the way §4.9 specifies.
func (u *UCB1) magicConstant(node *thts.Node) float64 {
	mc := u.MagicConstantScale * math.Abs(node.ExpectedRewardEstimate())
	if mc < 100 {
		return 100
	}
	return mc
}

func (u *UCB1) explorationRate(parentVisits float64) float64 {
	switch u.Family {
	case Log:
		return math.Log(parentVisits)
	case Sqrt:
		return math.Sqrt(parentVisits)
	case LogSquared:
		l := math.Log(parentVisits)
		return l * l
	default: // Identity
		return parentVisits
	}
}

func isRepresentative(applicable []int, i int) bool { return applicable[i] == i }

func firstRepresentative(applicable []int) int {
	for i := range applicable {
		if isRepresentative(applicable, i) {
			return i
		}
	}
	return 0
}
