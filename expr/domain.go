// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package expr

import "math"

// Interval is a closed [Min, Max] bound, the domain-as-interval helper
// of §4.2 used at task load to size vector caches.
type Interval struct {
	Min, Max float64
}

// DomainContext supplies the per-fluent value domains (as intervals)
// the interval calculator needs for StateFluent/ActionFluent/NonFluent
// leaves.
type DomainContext struct {
	StateFluentDomain  []Interval
	ActionFluentDomain []Interval
	NonFluentDomain    []Interval
}

// Interval computes the value-domain bound of the expression at idx.
// Division whose divisor interval contains zero widens to the whole
// real line and is the caller's cue to emit the §7 arithmetic warning.
// Per the §9 open question, the max across all four endpoint products
// is used rather than the source's single (buggy) arm.
func (p *Pool) Interval(idx int, dctx *DomainContext) Interval {
	n := p.nodes[idx]
	switch n.Kind {
	case Const:
		return Interval{n.Value, n.Value}
	case StateFluent:
		return dctx.StateFluentDomain[n.Index]
	case ActionFluent:
		return dctx.ActionFluentDomain[n.Index]
	case NonFluent:
		return dctx.NonFluentDomain[n.Index]

	case And, Or, Not, Eq, Gt, Lt, Ge, Le, Bernoulli:
		return Interval{0, 1}

	case Plus:
		a, b := p.Interval(n.Children[0], dctx), p.Interval(n.Children[1], dctx)
		return Interval{a.Min + b.Min, a.Max + b.Max}
	case Minus:
		a, b := p.Interval(n.Children[0], dctx), p.Interval(n.Children[1], dctx)
		return Interval{a.Min - b.Max, a.Max - b.Min}
	case Times:
		a, b := p.Interval(n.Children[0], dctx), p.Interval(n.Children[1], dctx)
		return productInterval(a, b)
	case Div:
		a, b := p.Interval(n.Children[0], dctx), p.Interval(n.Children[1], dctx)
		if b.Min <= 0 && b.Max >= 0 {
			return Interval{math.Inf(-1), math.Inf(1)}
		}
		return productInterval(a, Interval{1 / b.Max, 1 / b.Min})

	case Negate:
		a := p.Interval(n.Children[0], dctx)
		return Interval{-a.Max, -a.Min}
	case Exp:
		a := p.Interval(n.Children[0], dctx)
		return Interval{math.Exp(a.Min), math.Exp(a.Max)}

	case KronDelta:
		return p.Interval(n.Children[0], dctx)
	case Discrete:
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, c := range n.Cases {
			v := p.Interval(c.ValueExpr, dctx)
			lo, hi = math.Min(lo, v.Min), math.Max(hi, v.Max)
		}
		return Interval{lo, hi}

	case IfThenElse:
		a, b := p.Interval(n.Children[1], dctx), p.Interval(n.Children[2], dctx)
		return Interval{math.Min(a.Min, b.Min), math.Max(a.Max, b.Max)}
	case Switch:
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, arm := range n.Switch {
			v := p.Interval(arm.Value, dctx)
			lo, hi = math.Min(lo, v.Min), math.Max(hi, v.Max)
		}
		return Interval{lo, hi}
	}
	panic("expr: unknown kind in Interval")
}

// productInterval computes the max/min over all four endpoint products
// of two intervals, fixing the §9 bug where the source used
// rhsMax*rhsMax in one arm instead of lhsMax*rhsMax.
func productInterval(a, b Interval) Interval {
	p1, p2, p3, p4 := a.Min*b.Min, a.Min*b.Max, a.Max*b.Min, a.Max*b.Max
	lo := math.Min(math.Min(p1, p2), math.Min(p3, p4))
	hi := math.Max(math.Max(p1, p2), math.Max(p3, p4))
	return Interval{lo, hi}
}
