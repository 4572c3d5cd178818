// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package thts

// arena is the pre-sized, owned pool of nodes §4.8 calls for: a fixed
// backing slice handed out slot by slot and rewound (not
// reallocated) at the start of every new planning step, so the same
// memory is reused across the lifetime of an episode rather than
// garbage-collected and reallocated on every decision.
type arena struct {
	nodes []Node
	next  int
}

// newArena preallocates capacity nodes.
func newArena(capacity int) *arena {
	return &arena{nodes: make([]Node, capacity)}
}

// get returns the next free slot reset in place with the given
// reach-probability, or nil once capacity is exhausted — the hard node
// cap of §4.8, which the main trial loop treats as a termination
// signal rather than a fatal error.
func (a *arena) get(prob float64) *Node {
	if a.next >= len(a.nodes) {
		return nil
	}
	n := &a.nodes[a.next]
	n.Reset()
	n.Prob = prob
	a.next++
	return n
}

// resetRound rewinds the arena for a new planning step without
// reallocating its backing slice.
func (a *arena) resetRound() { a.next = 0 }

// occupied reports how many slots are currently in use.
func (a *arena) occupied() int { return a.next }

// capacity reports the arena's fixed size.
func (a *arena) capacity() int { return len(a.nodes) }
