// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package taskio reads and writes the compiled task description of §6:
// the binary artifact the (out-of-scope) planning-language parser
// produces, containing a task's fluents, compiled expression trees,
// and precomputed hash-key tables ready to load into a task.Task.
// Rather than the original's hand-rolled byte-offset binary, each
// section is framed with google.golang.org/protobuf's wire primitives
// (protowire): a field-tagged, length-delimited envelope per section,
// with ordinary varint/fixed64 encoding inside. A full .proto schema
// would only re-describe task.Task's existing Go types for no
// round-trip benefit beyond what protowire's primitives already give
// the encoder/decoder pair below.
package taskio

import (
	"math"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/prost-go/prost"
)

// Section numbers, one per §6 section, in on-disk order.
const (
	secHeader protowire.Number = iota + 1
	secInitialState
	secActionFluents
	secStateFluents
	secPool
	secReward
	secPreconditions
	secActionStates
	secHashTable
	secKleeneBase
	secTrainingSet
)

// appendSection frames payload as a tagged, length-delimited section.
func appendSection(b []byte, num protowire.Number, payload []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(len(payload)))
	return append(b, payload...)
}

// consumeSection reads one tagged, length-delimited section and
// returns its field number, payload, and the number of bytes consumed.
func consumeSection(b []byte) (protowire.Number, []byte, int, error) {
	num, typ, tagLen := protowire.ConsumeTag(b)
	if tagLen < 0 {
		return 0, nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "section tag")
	}
	if typ != protowire.BytesType {
		return 0, nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "section type")
	}
	n, nLen := protowire.ConsumeVarint(b[tagLen:])
	if nLen < 0 {
		return 0, nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "section length")
	}
	start := tagLen + nLen
	end := start + int(n)
	if end > len(b) {
		return 0, nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "section truncated")
	}
	return num, b[start:end], end, nil
}

func appendVarint(b []byte, v int64) []byte {
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

func consumeVarint(b []byte) (int64, int) {
	u, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, n
	}
	return protowire.DecodeZigZag(u), n
}

func appendFloat64(b []byte, v float64) []byte {
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func consumeFloat64(b []byte) (float64, int) {
	u, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, n
	}
	return math.Float64frombits(u), n
}

func appendString(b []byte, s string) []byte {
	return protowire.AppendString(b, s)
}

func consumeString(b []byte) (string, int) {
	return protowire.ConsumeString(b)
}

func appendInts(b []byte, vs []int) []byte {
	b = protowire.AppendVarint(b, uint64(len(vs)))
	for _, v := range vs {
		b = appendVarint(b, int64(v))
	}
	return b
}

func consumeInts(b []byte) ([]int, int, error) {
	n, nLen := protowire.ConsumeVarint(b)
	if nLen < 0 {
		return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "int slice length")
	}
	off := nLen
	out := make([]int, n)
	for i := range out {
		v, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "int slice entry")
		}
		out[i] = int(v)
		off += l
	}
	return out, off, nil
}

func appendInt64s(b []byte, vs []int64) []byte {
	b = protowire.AppendVarint(b, uint64(len(vs)))
	for _, v := range vs {
		b = appendVarint(b, v)
	}
	return b
}

func consumeInt64s(b []byte) ([]int64, int, error) {
	n, nLen := protowire.ConsumeVarint(b)
	if nLen < 0 {
		return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "int64 slice length")
	}
	off := nLen
	out := make([]int64, n)
	for i := range out {
		v, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "int64 slice entry")
		}
		out[i] = v
		off += l
	}
	return out, off, nil
}

func appendFloat64s(b []byte, vs []float64) []byte {
	b = protowire.AppendVarint(b, uint64(len(vs)))
	for _, v := range vs {
		b = appendFloat64(b, v)
	}
	return b
}

func consumeFloat64s(b []byte) ([]float64, int, error) {
	n, nLen := protowire.ConsumeVarint(b)
	if nLen < 0 {
		return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "float64 slice length")
	}
	off := nLen
	out := make([]float64, n)
	for i := range out {
		v, l := consumeFloat64(b[off:])
		if l < 0 {
			return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "float64 slice entry")
		}
		out[i] = v
		off += l
	}
	return out, off, nil
}
