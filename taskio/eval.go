// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package taskio

import (
	"github.com/cockroachdb/errors"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
)

// evalVectorSize is the Vector-cache size every decoded evaluatable is
// built with. The envelope carries only the caching policy, not a
// table size or precomputed cache contents, so the size is 0; a Vector
// cache never grows past the size it was built with (writes to keys
// outside it are dropped), so a Vector-policy evaluatable loaded here
// caches nothing.
const evalVectorSize = 0

func encodeEvaluatable(e *eval.Evaluatable) []byte {
	var b []byte
	b = appendVarint(b, int64(e.Kind))
	b = appendVarint(b, int64(e.HeadFluent))
	b = appendFloat64s(b, e.Domain)
	b = appendBool(b, e.ActionIndependent)
	b = appendFloat64(b, e.RewardMin)
	b = appendFloat64(b, e.RewardMax)
	b = appendVarint(b, int64(e.OriginalExpr))
	b = appendVarint(b, int64(e.DeterminizedExpr))
	b = appendVarint(b, int64(e.Policy))
	b = appendVarint(b, int64(e.EvalIndex))
	b = appendInt64s(b, e.ActionHashKey)
	b = appendInt64s(b, e.ActionHashKeyKleene)
	return b
}

func decodeEvaluatable(b []byte, pool *expr.Pool) (*eval.Evaluatable, error) {
	kind, l := consumeVarint(b)
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable kind")
	}
	off := l

	headFluent, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable head fluent")
	}
	off += l

	domain, l, err := consumeFloat64s(b[off:])
	if err != nil {
		return nil, err
	}
	off += l

	actionIndependent, l := consumeBool(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable action independence")
	}
	off += l

	rewardMin, l := consumeFloat64(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable reward min")
	}
	off += l

	rewardMax, l := consumeFloat64(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable reward max")
	}
	off += l

	original, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable original expr")
	}
	off += l

	determinized, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable determinized expr")
	}
	off += l

	policy, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable policy")
	}
	off += l

	evalIndex, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable eval index")
	}
	off += l

	actionHashKey, l, err := consumeInt64s(b[off:])
	if err != nil {
		return nil, err
	}
	off += l

	actionHashKeyKleene, _, err := consumeInt64s(b[off:])
	if err != nil {
		return nil, err
	}

	e := eval.New(pool, int(original), int(determinized), eval.Policy(policy), int(evalIndex),
		actionHashKey, actionHashKeyKleene, evalVectorSize)
	e.Kind = eval.Kind(kind)
	e.HeadFluent = int(headFluent)
	e.Domain = domain
	e.ActionIndependent = actionIndependent
	e.RewardMin = rewardMin
	e.RewardMax = rewardMax
	return e, nil
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return appendVarint(b, 1)
	}
	return appendVarint(b, 0)
}

func consumeBool(b []byte) (bool, int) {
	v, n := consumeVarint(b)
	return v != 0, n
}
