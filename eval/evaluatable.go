// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package eval implements the Evaluatable wrapper of §4.3: dispatch
// into one of expr's three evaluators, applying a caching policy keyed
// by the per-evaluatable state-fluent hash key plus an action-specific
// increment.
package eval

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
)

// Policy names the caching strategy of §3/§4.3.
type Policy int

const (
	// None performs no caching; every call recomputes.
	None Policy = iota
	// Map caches in a bounded key->value store (ristretto-backed),
	// appropriate when the key space is large or sparse.
	Map
	// Vector caches in a dense slice indexed directly by hash key,
	// appropriate when the key space is small and fully enumerable at
	// load time (the task binary format precomputes its contents,
	// §6).
	Vector
	// DisabledMap behaves like Map for reads but drops writes; it is
	// what Map caches degrade to once the memory watchdog calls
	// DisableCaching (§5, §7).
	DisabledMap
)

// Kind names which of CPF / reward / precondition this Evaluatable
// wraps (§3).
type Kind int

const (
	CPF Kind = iota
	Reward
	Precondition
)

// Evaluatable wraps one logical expression with the load-time policy
// decisions of §4.3: its original and determinized forms, a caching
// policy, and the hash-key increments each action index contributes.
type Evaluatable struct {
	Pool *expr.Pool

	Kind Kind
	// HeadFluent is the state-fluent index a CPF evaluatable defines;
	// meaningless for Reward/Precondition.
	HeadFluent int
	// Domain bounds the value domain for a CPF (§3).
	Domain []float64

	// ActionIndependent marks a reward function that never reads an
	// action fluent (§3, used by MinimalLookahead, §4.7).
	ActionIndependent bool
	RewardMin, RewardMax float64

	OriginalExpr     int // index into Pool: the as-written expression
	DeterminizedExpr int // index into Pool: used on deterministic search paths (§4.4)

	Policy Policy
	// EvalIndex is this evaluatable's slot in a state's FluentHashes
	// vector (§4.1).
	EvalIndex int
	// ActionHashKey[a] is the hash increment evaluatable contributes
	// for joint action a (§4.3 step 1).
	ActionHashKey []int64
	// ActionHashKeyKleene is the analogous table for Kleene caching.
	ActionHashKeyKleene []int64

	deterministic *scalarCache
	probabilistic *pdCache
	kleene        *kleeneCache
}

// scalarCache, pdCache, and kleeneCache each implement the same
// vector/map/disabled-map storage shape for their respective value
// type, parameterized by Go generics so the three only differ in
// payload type.
type scalarCache = valueCache[float64]
type pdCache = valueCache[state.DiscretePD]
type kleeneCache = valueCache[state.ValueSet]

type valueCache[V any] struct {
	policy Policy
	vector []V
	filled []bool
	ring   *ristretto.Cache[int64, V]
}

func newValueCache[V any](policy Policy, vectorSize int) *valueCache[V] {
	c := &valueCache[V]{policy: policy}
	switch policy {
	case Vector:
		c.vector = make([]V, vectorSize)
		c.filled = make([]bool, vectorSize)
	case Map, DisabledMap:
		ring, err := ristretto.NewCache(&ristretto.Config[int64, V]{
			NumCounters: 1e5,
			MaxCost:     1 << 20,
			BufferItems: 64,
		})
		if err != nil {
			panic(err)
		}
		c.ring = ring
	}
	return c
}

func (c *valueCache[V]) get(key int64) (V, bool) {
	var zero V
	switch c.policy {
	case Vector:
		if key < 0 || int(key) >= len(c.vector) || !c.filled[key] {
			return zero, false
		}
		return c.vector[key], true
	case Map, DisabledMap:
		return c.ring.Get(key)
	default:
		return zero, false
	}
}

func (c *valueCache[V]) put(key int64, v V) {
	switch c.policy {
	case Vector:
		if key < 0 || int(key) >= len(c.vector) {
			return
		}
		c.vector[key] = v
		c.filled[key] = true
	case Map:
		c.ring.Set(key, v, 1)
		c.ring.Wait()
	case DisabledMap:
		// Disabled: reads are still served from whatever was already
		// present, writes are dropped (§4.3 step 3, §5).
	}
}

// Disable transitions a Map cache to DisabledMap, the memory
// watchdog's effect (§5, §7). Idempotent: calling it twice is the
// same as once (§8 law).
func (c *valueCache[V]) disable() {
	if c.policy == Map {
		c.policy = DisabledMap
	}
}
