// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state holds the three state representations the planner
// reasons over: concrete State, probabilistic PDState, and the
// three-valued KleeneState, plus the per-variable DiscretePD type and
// the hash-key machinery of §4.1.
package state

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

const probEpsilon = 1e-7

// DiscretePD is a finite, strictly increasing sequence of values paired
// with matching positive probabilities summing to 1 (§3). It is the
// value every probabilistic CPF evaluation produces.
type DiscretePD struct {
	Values []float64
	Probs  []float64
}

// Dirac returns the single-outcome distribution at v.
func Dirac(v float64) DiscretePD {
	return DiscretePD{Values: []float64{v}, Probs: []float64{1}}
}

// IsDirac reports whether the distribution has a single outcome.
func (pd DiscretePD) IsDirac() bool { return len(pd.Values) == 1 }

// Validate checks the invariants of §3: values sorted and unique, all
// probabilities positive, and the probabilities sum to 1 within
// probEpsilon.
func (pd DiscretePD) Validate() error {
	if len(pd.Values) != len(pd.Probs) {
		return errors.New("DiscretePD: values/probs length mismatch")
	}
	if len(pd.Values) == 0 {
		return errors.New("DiscretePD: empty distribution")
	}
	sum := 0.0
	for i, p := range pd.Probs {
		if p <= 0 {
			return errors.Newf("DiscretePD: non-positive probability %v", p)
		}
		if i > 0 && pd.Values[i] <= pd.Values[i-1] {
			return errors.New("DiscretePD: values must be strictly increasing")
		}
		sum += p
	}
	if !floats.EqualWithinAbs(sum, 1.0, probEpsilon) {
		return errors.Newf("DiscretePD: probabilities sum to %v, want 1", sum)
	}
	return nil
}

// ProbOf returns the probability mass on the given value, 0 if absent.
func (pd DiscretePD) ProbOf(v float64) float64 {
	for i, x := range pd.Values {
		if x == v {
			return pd.Probs[i]
		}
	}
	return 0
}

// TruthProb returns the probability mass on any nonzero value, the
// "probability of true" helper named in §3.
func (pd DiscretePD) TruthProb() float64 {
	return 1 - pd.ProbOf(0)
}

// FalsityProb is the complement of TruthProb.
func (pd DiscretePD) FalsityProb() float64 { return pd.ProbOf(0) }

// Normalize rescales a raw (value,prob) multiset so probabilities sum
// to 1, merging duplicate values by summing their mass and sorting the
// result — the step every connective combinator needs after building
// a cross-product (§4.2.2).
func Normalize(values, probs []float64) DiscretePD {
	merged := make(map[float64]float64, len(values))
	for i, v := range values {
		merged[v] += probs[i]
	}
	out := DiscretePD{Values: make([]float64, 0, len(merged)), Probs: make([]float64, 0, len(merged))}
	for v, p := range merged {
		out.Values = append(out.Values, v)
		out.Probs = append(out.Probs, p)
	}
	sortByValue(&out)
	total := floats.Sum(out.Probs)
	if total > 0 && !floats.EqualWithinAbs(total, 1.0, probEpsilon) {
		floats.Scale(1/total, out.Probs)
	}
	return out
}

func sortByValue(pd *DiscretePD) {
	for i := 1; i < len(pd.Values); i++ {
		for j := i; j > 0 && pd.Values[j] < pd.Values[j-1]; j-- {
			pd.Values[j], pd.Values[j-1] = pd.Values[j-1], pd.Values[j]
			pd.Probs[j], pd.Probs[j-1] = pd.Probs[j-1], pd.Probs[j]
		}
	}
}

// Bernoulli builds the {0: 1-p, 1: p} distribution, clamping p to
// [0,1] as §4.2.2 requires.
func Bernoulli(p float64) DiscretePD {
	switch {
	case p <= 0:
		return Dirac(0)
	case p >= 1:
		return Dirac(1)
	default:
		return DiscretePD{Values: []float64{0, 1}, Probs: []float64{1 - p, p}}
	}
}

// CrossProduct combines two distributions element-wise under combine,
// multiplying probabilities and deduplicating/summing resulting
// values (§4.2.2's "exhaustive cross-product sampling over outcomes").
func CrossProduct(a, b DiscretePD, combine func(x, y float64) float64) DiscretePD {
	values := make([]float64, 0, len(a.Values)*len(b.Values))
	probs := make([]float64, 0, len(a.Values)*len(b.Values))
	for i, av := range a.Values {
		for j, bv := range b.Values {
			values = append(values, combine(av, bv))
			probs = append(probs, a.Probs[i]*b.Probs[j])
		}
	}
	return Normalize(values, probs)
}
