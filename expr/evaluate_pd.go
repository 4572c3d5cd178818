// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package expr

import (
	"math"

	"github.com/prost-go/prost/state"
)

// EvaluatePD computes the probabilistic value of the expression at idx
// (§4.2.2). Atomic expressions return a Dirac at the deterministic
// value. Connectives and arithmetic combine component distributions:
// when both operands are Dirac the result is Dirac of the combined
// value; for affine structure (one Dirac operand) the Dirac value is
// pushed in as a constant; otherwise outcomes are cross-multiplied and
// deduplicated.
func (p *Pool) EvaluatePD(idx int, ctx *Context) state.DiscretePD {
	n := p.nodes[idx]
	switch n.Kind {
	case Const:
		return state.Dirac(n.Value)
	case StateFluent:
		return state.Dirac(ctx.StateValues[n.Index])
	case ActionFluent:
		return state.Dirac(ctx.ActionValues[n.Index])
	case NonFluent:
		return state.Dirac(ctx.NonFluentValues[n.Index])

	case And:
		return p.combineVariadicPD(n.Children, ctx, func(a, b float64) float64 {
			if a == 0 || b == 0 {
				return 0
			}
			return 1
		}, 1)
	case Or:
		return p.combineVariadicPD(n.Children, ctx, func(a, b float64) float64 {
			if a != 0 || b != 0 {
				return 1
			}
			return 0
		}, 0)
	case Not:
		return p.combinePD(noChild, n.Children[0], ctx, func(_, b float64) float64 {
			if b == 0 {
				return 1
			}
			return 0
		})

	case Eq:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return boolf(a == b) })
	case Gt:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return boolf(a > b) })
	case Lt:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return boolf(a < b) })
	case Ge:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return boolf(a >= b) })
	case Le:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return boolf(a <= b) })

	case Plus:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return a + b })
	case Minus:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return a - b })
	case Times:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return a * b })
	case Div:
		return p.combine2PD(n, ctx, func(a, b float64) float64 { return a / b })

	case Negate:
		return p.combinePD(noChild, n.Children[0], ctx, func(_, b float64) float64 { return -b })
	case Exp:
		return p.combinePD(noChild, n.Children[0], ctx, func(_, b float64) float64 { return math.Exp(b) })

	case KronDelta:
		return p.EvaluatePD(n.Children[0], ctx)
	case Bernoulli:
		prob := p.Evaluate(n.Children[0], ctx)
		return state.Bernoulli(prob)
	case Discrete:
		return p.evaluateDiscretePD(n, ctx)

	case IfThenElse:
		cond := p.EvaluatePD(n.Children[0], ctx)
		if cond.IsDirac() {
			if cond.Values[0] != 0 {
				return p.EvaluatePD(n.Children[1], ctx)
			}
			return p.EvaluatePD(n.Children[2], ctx)
		}
		// Cross-product fallback over the condition's outcomes.
		thenPD := p.EvaluatePD(n.Children[1], ctx)
		elsePD := p.EvaluatePD(n.Children[2], ctx)
		values := make([]float64, 0, len(cond.Values)*(len(thenPD.Values)+len(elsePD.Values)))
		probs := make([]float64, 0, cap(values))
		for i, cv := range cond.Values {
			branch := elsePD
			if cv != 0 {
				branch = thenPD
			}
			for j, bv := range branch.Values {
				values = append(values, bv)
				probs = append(probs, cond.Probs[i]*branch.Probs[j])
			}
		}
		return state.Normalize(values, probs)

	case Switch:
		return p.evaluateSwitchPD(n, ctx)
	}
	panic("expr: unknown kind in EvaluatePD")
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

const noChild = -1

// combinePD evaluates the (possibly ignored) lhs and the rhs child
// under op, handling the Dirac fast path directly and falling back to
// a cross product otherwise. lhs == noChild marks a unary operator.
func (p *Pool) combinePD(lhs, rhs int, ctx *Context, op func(a, b float64) float64) state.DiscretePD {
	rhsPD := p.EvaluatePD(rhs, ctx)
	if lhs == noChild {
		if rhsPD.IsDirac() {
			return state.Dirac(op(0, rhsPD.Values[0]))
		}
		values := make([]float64, len(rhsPD.Values))
		for i, v := range rhsPD.Values {
			values[i] = op(0, v)
		}
		return state.Normalize(values, append([]float64(nil), rhsPD.Probs...))
	}
	lhsPD := p.EvaluatePD(lhs, ctx)
	return state.CrossProduct(lhsPD, rhsPD, op)
}

func (p *Pool) combine2PD(n Node, ctx *Context, op func(a, b float64) float64) state.DiscretePD {
	lhsPD := p.EvaluatePD(n.Children[0], ctx)
	rhsPD := p.EvaluatePD(n.Children[1], ctx)
	if lhsPD.IsDirac() && rhsPD.IsDirac() {
		return state.Dirac(op(lhsPD.Values[0], rhsPD.Values[0]))
	}
	return state.CrossProduct(lhsPD, rhsPD, op)
}

// combineVariadicPD folds an n-ary connective left to right through
// combine2-style cross products, seeding the accumulator with
// identity (the neutral element: 1 for And, 0 for Or).
func (p *Pool) combineVariadicPD(children []int, ctx *Context, op func(a, b float64) float64, identity float64) state.DiscretePD {
	acc := state.Dirac(identity)
	for _, c := range children {
		childPD := p.EvaluatePD(c, ctx)
		if acc.IsDirac() && childPD.IsDirac() {
			acc = state.Dirac(op(acc.Values[0], childPD.Values[0]))
			continue
		}
		acc = state.CrossProduct(acc, childPD, op)
	}
	return acc
}

func (p *Pool) evaluateDiscretePD(n Node, ctx *Context) state.DiscretePD {
	values := make([]float64, 0, len(n.Cases))
	probs := make([]float64, 0, len(n.Cases))
	for _, c := range n.Cases {
		values = append(values, p.Evaluate(c.ValueExpr, ctx))
		probs = append(probs, p.Evaluate(c.ProbExpr, ctx))
	}
	return state.Normalize(values, probs)
}

func (p *Pool) evaluateSwitchPD(n Node, ctx *Context) state.DiscretePD {
	return p.evaluateSwitchArmsPD(n.Switch, ctx)
}

// evaluateSwitchArmsPD evaluates a Switch's arms in order, the
// probabilistic counterpart of evaluateSwitchDeterminized. A Dirac
// guard resolves immediately, same as the deterministic evaluator. A
// non-Dirac guard can't be resolved that way, so it is treated like
// IfThenElse's own non-Dirac condition: this arm's value distribution
// and the distribution of evaluating the remaining arms are mixed by
// the guard's true/false probability mass, rather than assuming one
// side and dropping the other (which would silently discard outcomes
// on a falling-through trial).
func (p *Pool) evaluateSwitchArmsPD(arms []SwitchCase, ctx *Context) state.DiscretePD {
	if len(arms) == 0 {
		panic("expr: switch with no matching arm and no default")
	}
	arm := arms[0]
	if arm.Cond == -1 {
		return p.EvaluatePD(arm.Value, ctx)
	}

	condPD := p.EvaluatePD(arm.Cond, ctx)
	if condPD.IsDirac() {
		if condPD.Values[0] != 0 {
			return p.EvaluatePD(arm.Value, ctx)
		}
		return p.evaluateSwitchArmsPD(arms[1:], ctx)
	}

	thenPD := p.EvaluatePD(arm.Value, ctx)
	elsePD := p.evaluateSwitchArmsPD(arms[1:], ctx)
	values := make([]float64, 0, len(condPD.Values)*(len(thenPD.Values)+len(elsePD.Values)))
	probs := make([]float64, 0, cap(values))
	for i, cv := range condPD.Values {
		branch := elsePD
		if cv != 0 {
			branch = thenPD
		}
		for j, bv := range branch.Values {
			values = append(values, bv)
			probs = append(probs, condPD.Probs[i]*branch.Probs[j])
		}
	}
	return state.Normalize(values, probs)
}
