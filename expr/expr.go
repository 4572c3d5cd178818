// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package expr implements the logical expression tree of §4.2: a
// single sum type with an enum discriminant (Kind) and three
// evaluators dispatching on it, per the design note in §9 that replaces
// the source's deep virtual-dispatch class hierarchy. Expressions are
// immutable and DAG-shared across CPFs; a Pool is the arena that owns
// every Node for the lifetime of a Task, addressed by index rather
// than pointer so sharing needs no reference counting.
package expr

// Kind discriminates the sum type's variants (§3 "Logical expression").
type Kind int

const (
	Const Kind = iota
	StateFluent
	ActionFluent
	NonFluent

	And
	Or
	Not

	Eq
	Gt
	Lt
	Ge
	Le

	Plus
	Minus
	Times
	Div

	Negate // unary arithmetic negation
	Exp    // e^x

	KronDelta
	Bernoulli
	Discrete

	IfThenElse
	Switch
)

// Node is one immutable entry in a Pool. Children are indices into the
// owning Pool, not pointers, per the arena-ownership design note (§9).
type Node struct {
	Kind Kind

	// Children holds sub-expression indices. Their meaning depends on
	// Kind:
	//   And/Or:      one per operand
	//   Not/Negate/Exp: exactly one
	//   Eq/Gt/Lt/Ge/Le/Plus/Minus/Times/Div: exactly two, [lhs, rhs]
	//   KronDelta:   exactly one
	//   Bernoulli:   exactly one (the probability-of-true expression)
	//   IfThenElse:  exactly three, [cond, then, else]
	Children []int

	// Value holds the constant for Const nodes.
	Value float64

	// Index holds the fluent table index for StateFluent, ActionFluent,
	// and NonFluent nodes.
	Index int

	// Cases holds the (value, probability) expression pairs of a
	// Discrete node, each indexing into the owning Pool.
	Cases []DiscreteCase

	// Switch holds the ordered (condition, value) arms of a Switch
	// node. An arm with Cond == -1 is the default arm and is only
	// legal as the last entry.
	Switch []SwitchCase
}

// DiscreteCase is one (value expression, probability expression) pair
// of a Discrete distribution node.
type DiscreteCase struct {
	ValueExpr int
	ProbExpr  int
}

// SwitchCase is one (condition, value) arm of a Switch node.
type SwitchCase struct {
	Cond  int // -1 marks the default arm
	Value int
}

// Pool is the arena owning every Node of one Task. Expressions are
// appended once at task-load time and never mutated afterward.
type Pool struct {
	nodes []Node
}

// NewPool returns an empty arena.
func NewPool() *Pool { return &Pool{} }

// Add appends n and returns its index, the handle every evaluator and
// every CPF/precondition/reward reference uses thereafter.
func (p *Pool) Add(n Node) int {
	p.nodes = append(p.nodes, n)
	return len(p.nodes) - 1
}

// Node returns the node at idx.
func (p *Pool) Node(idx int) Node { return p.nodes[idx] }

// Len returns the number of nodes in the arena.
func (p *Pool) Len() int { return len(p.nodes) }

// Const adds and returns the index of a numeric constant.
func (p *Pool) Const(v float64) int { return p.Add(Node{Kind: Const, Value: v}) }

// StateFluentRef adds and returns the index of a reference to state
// fluent idx.
func (p *Pool) StateFluentRef(idx int) int { return p.Add(Node{Kind: StateFluent, Index: idx}) }

// ActionFluentRef adds and returns the index of a reference to action
// fluent idx.
func (p *Pool) ActionFluentRef(idx int) int { return p.Add(Node{Kind: ActionFluent, Index: idx}) }

// NonFluentRef adds and returns the index of a reference to non-fluent
// idx.
func (p *Pool) NonFluentRef(idx int) int { return p.Add(Node{Kind: NonFluent, Index: idx}) }

// Binary adds a two-child node of the given kind.
func (p *Pool) Binary(k Kind, lhs, rhs int) int {
	return p.Add(Node{Kind: k, Children: []int{lhs, rhs}})
}

// Unary adds a one-child node of the given kind.
func (p *Pool) Unary(k Kind, child int) int {
	return p.Add(Node{Kind: k, Children: []int{child}})
}

// Variadic adds an n-ary And/Or node.
func (p *Pool) Variadic(k Kind, children ...int) int {
	return p.Add(Node{Kind: k, Children: append([]int(nil), children...)})
}

// IfThenElseExpr adds a conditional node.
func (p *Pool) IfThenElseExpr(cond, then, els int) int {
	return p.Add(Node{Kind: IfThenElse, Children: []int{cond, then, els}})
}

// DiscreteExpr adds a discrete probability table node.
func (p *Pool) DiscreteExpr(cases ...DiscreteCase) int {
	return p.Add(Node{Kind: Discrete, Cases: append([]DiscreteCase(nil), cases...)})
}

// SwitchExpr adds a switch/case node.
func (p *Pool) SwitchExpr(cases ...SwitchCase) int {
	return p.Add(Node{Kind: Switch, Switch: append([]SwitchCase(nil), cases...)})
}

// Context supplies the fluent values an evaluator needs: the current
// state's fluent values, the joint action's fluent values, and the
// task's non-fluent (instance constant) values.
type Context struct {
	StateValues    []float64
	ActionValues   []float64
	NonFluentValues []float64
}
