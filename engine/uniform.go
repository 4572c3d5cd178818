// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import "github.com/prost-go/prost/state"

// Uniform returns a constant Q-value for every applicable action
// (§4.7). Used as a heuristic of last resort, and — when Value is set
// to the task's maximum reward — as an admissible initializer.
type Uniform struct {
	Value float64
}

// NewUniform returns an engine that always reports value for
// applicable actions.
func NewUniform(value float64) *Uniform { return &Uniform{Value: value} }

func (u *Uniform) EstimateQValues(s state.State, applicable []int) []float64 {
	q := make([]float64, len(applicable))
	for i := range applicable {
		if isRepresentative(applicable, i) {
			q[i] = u.Value
		} else {
			q[i] = NegInf
		}
	}
	return q
}

func (u *Uniform) UsesCaching() bool     { return false }
func (u *Uniform) SetCaching(bool)       {}
func (u *Uniform) MaxSearchDepth() int   { return 0 }
