// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package expr

import "math"

// Evaluate computes the deterministic value of the expression at idx
// (§4.2.1). Connectives short-circuit: And returns 0 on the first
// false child, Or returns 1 on the first true child. Bernoulli and
// Discrete are only meaningful under EvaluatePD, but in a determinized
// form (produced by the task loader) they collapse to their mode or to
// 1/0 — here Bernoulli evaluates to 1 when its probability is at
// least 0.5 and to 0 otherwise, and Discrete to its most probable
// value, matching the determinized-CPF contract of §4.4.
func (p *Pool) Evaluate(idx int, ctx *Context) float64 {
	n := p.nodes[idx]
	switch n.Kind {
	case Const:
		return n.Value
	case StateFluent:
		return ctx.StateValues[n.Index]
	case ActionFluent:
		return ctx.ActionValues[n.Index]
	case NonFluent:
		return ctx.NonFluentValues[n.Index]

	case And:
		for _, c := range n.Children {
			if p.Evaluate(c, ctx) == 0 {
				return 0
			}
		}
		return 1
	case Or:
		for _, c := range n.Children {
			if p.Evaluate(c, ctx) != 0 {
				return 1
			}
		}
		return 0
	case Not:
		if p.Evaluate(n.Children[0], ctx) == 0 {
			return 1
		}
		return 0

	case Eq:
		if p.Evaluate(n.Children[0], ctx) == p.Evaluate(n.Children[1], ctx) {
			return 1
		}
		return 0
	case Gt:
		if p.Evaluate(n.Children[0], ctx) > p.Evaluate(n.Children[1], ctx) {
			return 1
		}
		return 0
	case Lt:
		if p.Evaluate(n.Children[0], ctx) < p.Evaluate(n.Children[1], ctx) {
			return 1
		}
		return 0
	case Ge:
		if p.Evaluate(n.Children[0], ctx) >= p.Evaluate(n.Children[1], ctx) {
			return 1
		}
		return 0
	case Le:
		if p.Evaluate(n.Children[0], ctx) <= p.Evaluate(n.Children[1], ctx) {
			return 1
		}
		return 0

	case Plus:
		return p.Evaluate(n.Children[0], ctx) + p.Evaluate(n.Children[1], ctx)
	case Minus:
		return p.Evaluate(n.Children[0], ctx) - p.Evaluate(n.Children[1], ctx)
	case Times:
		return p.Evaluate(n.Children[0], ctx) * p.Evaluate(n.Children[1], ctx)
	case Div:
		rhs := p.Evaluate(n.Children[1], ctx)
		// Runtime division by zero is permitted to flow through as
		// +/-Inf or NaN (§7 Arithmetic error); callers must not cache
		// such a result (enforced by the eval package, not here).
		return p.Evaluate(n.Children[0], ctx) / rhs

	case Negate:
		return -p.Evaluate(n.Children[0], ctx)
	case Exp:
		return math.Exp(p.Evaluate(n.Children[0], ctx))

	case KronDelta:
		return p.Evaluate(n.Children[0], ctx)
	case Bernoulli:
		// Determinized form: collapse to the mode (p >= 0.5 -> 1).
		if p.Evaluate(n.Children[0], ctx) >= 0.5 {
			return 1
		}
		return 0
	case Discrete:
		return p.evaluateDiscreteDeterminized(n, ctx)

	case IfThenElse:
		if p.Evaluate(n.Children[0], ctx) != 0 {
			return p.Evaluate(n.Children[1], ctx)
		}
		return p.Evaluate(n.Children[2], ctx)

	case Switch:
		return p.evaluateSwitchDeterminized(n, ctx)
	}
	panic("expr: unknown kind in Evaluate")
}

// evaluateDiscreteDeterminized collapses a Discrete node to the value
// with highest probability mass (its mode), the determinized form
// §4.2.1 permits.
func (p *Pool) evaluateDiscreteDeterminized(n Node, ctx *Context) float64 {
	bestVal, bestProb := 0.0, -1.0
	for _, c := range n.Cases {
		prob := p.Evaluate(c.ProbExpr, ctx)
		if prob > bestProb {
			bestProb = prob
			bestVal = p.Evaluate(c.ValueExpr, ctx)
		}
	}
	return bestVal
}

func (p *Pool) evaluateSwitchDeterminized(n Node, ctx *Context) float64 {
	for _, arm := range n.Switch {
		if arm.Cond == -1 || p.Evaluate(arm.Cond, ctx) != 0 {
			return p.Evaluate(arm.Value, ctx)
		}
	}
	panic("expr: switch with no matching arm and no default")
}
