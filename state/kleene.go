// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "math/bits"

// ValueSet is a non-empty set of possible values for one variable
// under Kleene (three-valued) semantics — "the variable is certainly
// one of these" (§3). Represented as a sorted slice; domains in this
// system are small enough (bounded enum domains) that this beats a
// map on both memory and iteration order determinism.
type ValueSet []float64

// Of builds a ValueSet from the given values, deduplicating and
// sorting them.
func Of(values ...float64) ValueSet {
	seen := make(map[float64]bool, len(values))
	out := make(ValueSet, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Contains reports whether v is a member.
func (vs ValueSet) Contains(v float64) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

// Min and Max return the endpoints used by the interval-style Kleene
// comparisons of §4.2.2 (</≤/>/≥).
func (vs ValueSet) Min() float64 { return vs[0] }
func (vs ValueSet) Max() float64 { return vs[len(vs)-1] }

// Union is the join of two Kleene value sets (§3): the abstraction
// only ever grows, which is what makes reward-lock fixed-point search
// (§4.5) terminate.
func (vs ValueSet) Union(other ValueSet) ValueSet {
	return Of(append(append(ValueSet{}, vs...), other...)...)
}

// Minkowski combines every pair of values from vs and other under op,
// used by +, -, * Kleene evaluation (§4.2.2), which is exact because
// value sets are finite.
func (vs ValueSet) Minkowski(other ValueSet, op func(a, b float64) float64) ValueSet {
	out := make([]float64, 0, len(vs)*len(other))
	for _, a := range vs {
		for _, b := range other {
			out = append(out, op(a, b))
		}
	}
	return Of(out...)
}

// KleeneState is the over-approximate state representation: each slot
// holds a ValueSet instead of a single value (§3).
type KleeneState struct {
	Values []ValueSet
}

// NewKleeneState lifts a concrete State into Kleene semantics, one
// singleton per variable.
func NewKleeneState(s State) KleeneState {
	vals := make([]ValueSet, len(s.Values))
	for i, v := range s.Values {
		vals[i] = Of(v)
	}
	return KleeneState{Values: vals}
}

// Join returns a new Kleene state whose every slot is the union of the
// two states' slots (neither input is modified), the "join of two
// Kleene states is element-wise union" of §3.
func (k KleeneState) Join(other KleeneState) KleeneState {
	out := make([]ValueSet, len(k.Values))
	for i := range k.Values {
		out[i] = k.Values[i].Union(other.Values[i])
	}
	return KleeneState{Values: out}
}

// Contains reports whether concrete state s is included in k,
// value-set-wise, the containment relation the Kleene-soundness law
// of §8 is stated over.
func (k KleeneState) Contains(s State) bool {
	for i, v := range s.Values {
		if !k.Values[i].Contains(v) {
			return false
		}
	}
	return true
}

// KleeneHashKey packs each variable's value set into a bitmask and
// combines them with a per-variable base, per §4.1
// ("kleene.calc_hash_key": popcount(mask) * base[i] summed over i —
// mirroring the source's bit-popcount encoding of "which domain
// values are present").
func (k KleeneState) KleeneHashKey(base []int64) int64 {
	var key int64
	for i, vs := range k.Values {
		var mask uint64
		for _, v := range vs {
			mask |= 1 << uint(int(v))
		}
		key += int64(bits.OnesCount64(mask)) * base[i]
	}
	return key
}
