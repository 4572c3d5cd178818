// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import "github.com/prost-go/prost/state"

// OptimalFinalAction and OptimalFinalReward implement the three
// final-reward strategies of §3/§4.4.

// OptimalFinalAction returns the action to execute at the step where
// steps-to-go reaches zero, per the task's FinalReward policy.
func (t *Task) OptimalFinalAction(s state.State) int {
	switch t.FinalReward.Policy {
	case FinalRewardNoop:
		return 0
	case FinalRewardFirstApplicable:
		applicable := t.ApplicableActions(s)
		for _, a := range applicable {
			if a >= 0 {
				return a
			}
		}
		return 0
	case FinalRewardBestOfCandidateSet:
		best, bestReward := -1, 0.0
		applicable := t.ApplicableActions(s)
		for _, cand := range t.FinalReward.CandidateSet {
			if applicable[cand] < 0 {
				continue
			}
			r := t.Reward(s, cand)
			if best == -1 || r > bestReward {
				best, bestReward = cand, r
			}
		}
		if best == -1 {
			return 0
		}
		return best
	}
	return 0
}

// OptimalFinalReward returns reward(s, OptimalFinalAction(s)).
func (t *Task) OptimalFinalReward(s state.State) float64 {
	return t.Reward(s, t.OptimalFinalAction(s))
}
