// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package state

// State is a concrete assignment of values to every state fluent,
// paired with a steps-to-go counter and the incremental hash keys of
// §4.1. Deterministic fluents occupy the low indices, probabilistic
// ones the high indices, matching the task-load ordering in §3.
type State struct {
	Values       []float64
	StepsToGo    int
	HashKey      int64 // -1 when hashing is disabled for this task
	FluentHashes []int64
}

// HashKeyTable gives each variable a per-value additive hash
// contribution (§4.1 calc_state_hash_key) and, for each evaluatable
// that the variable influences, a per-value factor chosen at task
// load so every reachable fluent combination yields a unique key
// (§4.1 calc_state_fluent_hash_keys).
type HashKeyTable struct {
	// StateHashByValue[i][v] is the contribution of fluent i holding
	// value-index v to the whole-state hash key.
	StateHashByValue [][]int64
	// FluentFactor[i][e] is the per-unit-of-value factor fluent i
	// contributes to evaluatable e's state-fluent hash key.
	FluentFactor [][]int64
	// Affects[i] lists the evaluatable indices influenced by fluent i.
	Affects [][]int
	// NumEvaluatables bounds the FluentHashes vector.
	NumEvaluatables int
	// Enabled is false when overflow was detected at load time (§4.1);
	// CalcStateHashKey then always returns -1.
	Enabled bool
}

// NewState builds a State from fluent values, computing both hash
// keys per the invariants of §3: the hash key is -1 if hashing is
// disabled, else the sum over variables of per-value contributions.
func NewState(values []float64, stepsToGo int, table *HashKeyTable) State {
	s := State{
		Values:       append([]float64(nil), values...),
		StepsToGo:    stepsToGo,
		FluentHashes: make([]int64, table.NumEvaluatables),
	}
	s.HashKey = table.calcStateHashKey(s.Values)
	table.calcStateFluentHashKeys(s.Values, s.FluentHashes)
	return s
}

func (t *HashKeyTable) calcStateHashKey(values []float64) int64 {
	if !t.Enabled {
		return -1
	}
	var key int64
	for i, v := range values {
		idx := int(v)
		if idx < 0 || idx >= len(t.StateHashByValue[i]) {
			return -1
		}
		key += t.StateHashByValue[i][idx]
	}
	return key
}

func (t *HashKeyTable) calcStateFluentHashKeys(values []float64, out []int64) {
	for i, v := range values {
		if v <= 0 {
			continue
		}
		for _, e := range t.Affects[i] {
			out[e] += int64(v) * t.FluentFactor[i][e]
		}
	}
}

// Recalc recomputes both hash keys from scratch, used by the
// round-trip test property of §8 ("sampled successor's state hash key
// equals the canonical recomputation").
func (s *State) Recalc(table *HashKeyTable) {
	for i := range s.FluentHashes {
		s.FluentHashes[i] = 0
	}
	s.HashKey = table.calcStateHashKey(s.Values)
	table.calcStateFluentHashKeys(s.Values, s.FluentHashes)
}

// Clone returns an independent copy, used when a trial resolves Dirac
// components into a working successor before sampling the rest.
func (s State) Clone() State {
	return State{
		Values:       append([]float64(nil), s.Values...),
		StepsToGo:    s.StepsToGo,
		HashKey:      s.HashKey,
		FluentHashes: append([]int64(nil), s.FluentHashes...),
	}
}
