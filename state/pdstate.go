// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "math/rand"

// PDState is the probabilistic counterpart of State: every slot holds
// a DiscretePD rather than a concrete value (§3). It is what
// Task.SampleSuccessor produces before a concrete successor is drawn.
type PDState struct {
	Values    []DiscretePD
	StepsToGo int
}

// NewPDState allocates a PDState of n variables, all initially Dirac
// at 0; callers fill each slot as CPFs evaluate.
func NewPDState(n, stepsToGo int) PDState {
	vals := make([]DiscretePD, n)
	for i := range vals {
		vals[i] = Dirac(0)
	}
	return PDState{Values: vals, StepsToGo: stepsToGo}
}

// LastNonDirac returns the index of the last variable whose
// distribution is not a single point, or -1 if every variable is
// resolved — the "L" of §4.8's visit_decision, used to decide whether
// the trial descends a real chance node or a one-child dummy one.
func (p PDState) LastNonDirac() int {
	for i := len(p.Values) - 1; i >= 0; i-- {
		if !p.Values[i].IsDirac() {
			return i
		}
	}
	return -1
}

// Sample draws a concrete value per variable from its component
// distribution using rng, writing a new State with the given
// hash-key table. Dirac slots resolve without consuming randomness.
func (p PDState) Sample(rng *rand.Rand, table *HashKeyTable) State {
	values := make([]float64, len(p.Values))
	for i, pd := range p.Values {
		values[i] = pd.Sample(rng)
	}
	return NewState(values, p.StepsToGo, table)
}

// Sample draws one value from the distribution according to its
// probability mass, consuming one float64 from rng.
func (pd DiscretePD) Sample(rng *rand.Rand) float64 {
	if pd.IsDirac() {
		return pd.Values[0]
	}
	r := rng.Float64()
	cum := 0.0
	for i, p := range pd.Probs {
		cum += p
		if r < cum {
			return pd.Values[i]
		}
	}
	return pd.Values[len(pd.Values)-1]
}
