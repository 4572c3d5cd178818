// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package taskio

import (
	"github.com/cockroachdb/errors"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/expr"
)

// encodePool serializes every node of pool in index order; a node's
// Children/Cases/Switch entries are indices into this same sequence,
// so decoding can rebuild the pool with one linear pass.
func encodePool(pool *expr.Pool) []byte {
	var b []byte
	n := pool.Len()
	b = appendVarint(b, int64(n))
	for i := 0; i < n; i++ {
		nd := pool.Node(i)
		b = appendVarint(b, int64(nd.Kind))
		b = appendFloat64(b, nd.Value)
		b = appendVarint(b, int64(nd.Index))
		b = appendInts(b, nd.Children)

		b = appendVarint(b, int64(len(nd.Cases)))
		for _, c := range nd.Cases {
			b = appendVarint(b, int64(c.ValueExpr))
			b = appendVarint(b, int64(c.ProbExpr))
		}

		b = appendVarint(b, int64(len(nd.Switch)))
		for _, s := range nd.Switch {
			b = appendVarint(b, int64(s.Cond))
			b = appendVarint(b, int64(s.Value))
		}
	}
	return b
}

func decodePool(b []byte) (*expr.Pool, error) {
	pool := expr.NewPool()
	count, off := consumeVarint(b)
	if off < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "pool count")
	}
	for i := int64(0); i < count; i++ {
		kind, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "pool node kind")
		}
		off += l

		value, l := consumeFloat64(b[off:])
		if l < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "pool node value")
		}
		off += l

		index, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "pool node index")
		}
		off += l

		children, l, err := consumeInts(b[off:])
		if err != nil {
			return nil, err
		}
		off += l

		numCases, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "pool node cases count")
		}
		off += l
		cases := make([]expr.DiscreteCase, numCases)
		for j := range cases {
			ve, l := consumeVarint(b[off:])
			if l < 0 {
				return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "discrete case value")
			}
			off += l
			pe, l := consumeVarint(b[off:])
			if l < 0 {
				return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "discrete case prob")
			}
			off += l
			cases[j] = expr.DiscreteCase{ValueExpr: int(ve), ProbExpr: int(pe)}
		}

		numSwitch, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "pool node switch count")
		}
		off += l
		arms := make([]expr.SwitchCase, numSwitch)
		for j := range arms {
			cond, l := consumeVarint(b[off:])
			if l < 0 {
				return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "switch cond")
			}
			off += l
			val, l := consumeVarint(b[off:])
			if l < 0 {
				return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "switch value")
			}
			off += l
			arms[j] = expr.SwitchCase{Cond: int(cond), Value: int(val)}
		}

		pool.Add(expr.Node{
			Kind:     expr.Kind(kind),
			Children: children,
			Value:    value,
			Index:    int(index),
			Cases:    cases,
			Switch:   arms,
		})
	}
	return pool, nil
}
