// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package expr

import (
	"math"

	"github.com/prost-go/prost/state"
)

// EvaluateKleene computes the three-valued (Kleene) value of the
// expression at idx (§4.2.3). Atomic state fluents return the Kleene
// set at that slot; action fluents and numeric constants return
// singletons.
//
// Grounded on the source's evaluateToKleeneOutcome family
// (original_source/src/logical_expressions_includes/evaluate_to_kleene_outcome.cc):
// Conjunction/Disjunction short-circuit to a singleton as soon as one
// child is a definite value that decides the result ({0} for And, a
// nonzero singleton for Or); otherwise they accumulate both members.
// Division is implemented, per the §9 open question, as cross-product
// division (not the source's buggy multiplication); when the divisor
// set contains 0, the zero divisors are dropped and the lhs's own
// minimum and maximum are added to the result.
func (p *Pool) EvaluateKleene(idx int, kctx *KleeneContext) state.ValueSet {
	n := p.nodes[idx]
	switch n.Kind {
	case Const:
		return state.Of(n.Value)
	case StateFluent:
		return append(state.ValueSet(nil), kctx.State.Values[n.Index]...)
	case ActionFluent:
		return state.Of(kctx.ActionValues[n.Index])
	case NonFluent:
		return state.Of(kctx.NonFluentValues[n.Index])

	case And:
		return p.kleeneConjunction(n.Children, kctx)
	case Or:
		return p.kleeneDisjunction(n.Children, kctx)
	case Not:
		child := p.EvaluateKleene(n.Children[0], kctx)
		switch {
		case len(child) == 1 && child[0] == 0:
			return state.Of(1)
		case len(child) == 1:
			return state.Of(0)
		default:
			return state.Of(0, 1)
		}

	case Eq:
		lhs := p.EvaluateKleene(n.Children[0], kctx)
		rhs := p.EvaluateKleene(n.Children[1], kctx)
		if len(lhs) == 1 && len(rhs) == 1 {
			return state.Of(boolf(lhs[0] == rhs[0]))
		}
		for _, v := range lhs {
			if rhs.Contains(v) {
				return state.Of(0, 1)
			}
		}
		return state.Of(0)

	case Gt, Lt, Ge, Le:
		lhs := p.EvaluateKleene(n.Children[0], kctx)
		rhs := p.EvaluateKleene(n.Children[1], kctx)
		return kleeneOrderingSet(lhs, rhs, n.Kind)

	case Plus:
		return p.kleeneMinkowski(n, kctx, func(a, b float64) float64 { return a + b })
	case Minus:
		return p.kleeneMinkowski(n, kctx, func(a, b float64) float64 { return a - b })
	case Times:
		return p.kleeneMinkowski(n, kctx, func(a, b float64) float64 { return a * b })
	case Div:
		rhs := p.EvaluateKleene(n.Children[1], kctx)
		if rhs.Contains(0) {
			// Division-by-zero widening per §7: the set becomes
			// unbounded; we represent that as the lhs's own domain
			// widened by the nonzero divisors, plus the bug-fix from
			// §9 (cross-product division, not multiplication).
			lhs := p.EvaluateKleene(n.Children[0], kctx)
			out := lhs.Minkowski(nonZero(rhs), func(a, b float64) float64 { return a / b })
			return out.Union(state.Of(lhs.Max(), lhs.Min()))
		}
		lhs := p.EvaluateKleene(n.Children[0], kctx)
		return lhs.Minkowski(rhs, func(a, b float64) float64 { return a / b })

	case Negate:
		child := p.EvaluateKleene(n.Children[0], kctx)
		out := make([]float64, len(child))
		for i, v := range child {
			out[i] = -v
		}
		return state.Of(out...)
	case Exp:
		child := p.EvaluateKleene(n.Children[0], kctx)
		out := make([]float64, len(child))
		for i, v := range child {
			out[i] = math.Exp(v)
		}
		return state.Of(out...)

	case KronDelta:
		return p.EvaluateKleene(n.Children[0], kctx)
	case Bernoulli:
		arg := p.EvaluateKleene(n.Children[0], kctx)
		if len(arg) == 1 {
			return state.Of(boolf(arg[0] != 0))
		}
		return state.Of(0, 1)
	case Discrete:
		var out state.ValueSet
		for _, c := range n.Cases {
			out = out.Union(p.EvaluateKleene(c.ValueExpr, kctx))
		}
		return out

	case IfThenElse:
		cond := p.EvaluateKleene(n.Children[0], kctx)
		switch {
		case len(cond) == 1 && cond[0] != 0:
			return p.EvaluateKleene(n.Children[1], kctx)
		case len(cond) == 1:
			return p.EvaluateKleene(n.Children[2], kctx)
		default:
			return p.EvaluateKleene(n.Children[1], kctx).Union(p.EvaluateKleene(n.Children[2], kctx))
		}

	case Switch:
		return p.kleeneSwitch(n, kctx)
	}
	panic("expr: unknown kind in EvaluateKleene")
}

// KleeneContext supplies the fluent values a Kleene evaluation needs:
// the Kleene state, the current joint action (actions are never
// abstracted, only state fluents are), and the non-fluent constants.
type KleeneContext struct {
	State           state.KleeneState
	ActionValues    []float64
	NonFluentValues []float64
}

func nonZero(vs state.ValueSet) state.ValueSet {
	out := make(state.ValueSet, 0, len(vs))
	for _, v := range vs {
		if v != 0 {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return state.Of(1) // avoid an empty set; division is undefined but must not panic
	}
	return out
}

func (p *Pool) kleeneConjunction(children []int, kctx *KleeneContext) state.ValueSet {
	res := state.ValueSet{}
	for _, c := range children {
		tmp := p.EvaluateKleene(c, kctx)
		if len(tmp) == 1 {
			if tmp[0] == 0 {
				return state.Of(0)
			}
			res = res.Union(state.Of(1))
		} else {
			if tmp.Contains(0) {
				res = res.Union(state.Of(0))
			}
			res = res.Union(state.Of(1))
		}
	}
	if len(res) == 0 {
		return state.Of(1)
	}
	return res
}

func (p *Pool) kleeneDisjunction(children []int, kctx *KleeneContext) state.ValueSet {
	res := state.ValueSet{}
	for _, c := range children {
		tmp := p.EvaluateKleene(c, kctx)
		if len(tmp) == 1 {
			if tmp[0] != 0 {
				return state.Of(1)
			}
			res = res.Union(state.Of(0))
		} else {
			if tmp.Contains(0) {
				res = res.Union(state.Of(0))
			}
			res = res.Union(state.Of(1))
		}
	}
	if len(res) == 0 {
		return state.Of(0)
	}
	return res
}

// kleeneOrderingSet implements the endpoint rule shared by </≤/>/≥: "x
// can be greater than y if the biggest possible x exceeds the smallest
// possible y" and its complement for the negative case, per the
// source's GreaterExpression/LowerExpression.
func kleeneOrderingSet(lhs, rhs state.ValueSet, k Kind) state.ValueSet {
	var out state.ValueSet
	switch k {
	case Gt:
		if lhs.Max() > rhs.Min() {
			out = out.Union(state.Of(1))
		}
		if lhs.Min() <= rhs.Max() {
			out = out.Union(state.Of(0))
		}
	case Lt:
		if lhs.Min() < rhs.Max() {
			out = out.Union(state.Of(1))
		}
		if lhs.Max() >= rhs.Min() {
			out = out.Union(state.Of(0))
		}
	case Ge:
		if lhs.Max() >= rhs.Min() {
			out = out.Union(state.Of(1))
		}
		if lhs.Min() < rhs.Max() {
			out = out.Union(state.Of(0))
		}
	case Le:
		if lhs.Min() <= rhs.Max() {
			out = out.Union(state.Of(1))
		}
		if lhs.Max() > rhs.Min() {
			out = out.Union(state.Of(0))
		}
	}
	return out
}

func (p *Pool) kleeneMinkowski(n Node, kctx *KleeneContext, op func(a, b float64) float64) state.ValueSet {
	lhs := p.EvaluateKleene(n.Children[0], kctx)
	rhs := p.EvaluateKleene(n.Children[1], kctx)
	return lhs.Minkowski(rhs, op)
}

func (p *Pool) kleeneSwitch(n Node, kctx *KleeneContext) state.ValueSet {
	var out state.ValueSet
	for _, arm := range n.Switch {
		if arm.Cond == -1 {
			return out.Union(p.EvaluateKleene(arm.Value, kctx))
		}
		cond := p.EvaluateKleene(arm.Cond, kctx)
		if len(cond) == 1 && cond[0] == 0 {
			continue
		}
		out = out.Union(p.EvaluateKleene(arm.Value, kctx))
		if len(cond) == 1 && cond[0] != 0 {
			return out
		}
	}
	return out
}
