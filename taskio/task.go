// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package taskio

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/eval"
	"github.com/prost-go/prost/expr"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
)

// Document is the decoded contents of one task binary: the task ready
// to plan with, plus the training set of state vectors §6 says is used
// to tune IDS's learned search depth.
type Document struct {
	Task     *task.Task
	Training []state.State
}

// Marshal encodes doc into the envelope format: one tagged, length-
// delimited section per §6 section, written in the fixed order the
// section constants declare.
func Marshal(doc *Document) []byte {
	t := doc.Task
	var b []byte

	b = appendSection(b, secHeader, encodeHeader(t))
	b = appendSection(b, secInitialState, encodeState(t.InitialState))
	b = appendSection(b, secActionFluents, encodeFluentInfos(t.ActionFluents))
	b = appendSection(b, secStateFluents, encodeStateFluents(t))
	b = appendSection(b, secPool, encodePool(t.Pool))
	b = appendSection(b, secReward, encodeEvaluatable(t.RewardFn))
	b = appendSection(b, secPreconditions, encodeEvaluatables(t.Preconditions))
	b = appendSection(b, secActionStates, encodeActionStates(t.ActionStates))
	b = appendSection(b, secHashTable, encodeHashTable(t.HashTable))
	b = appendSection(b, secKleeneBase, appendInt64s(nil, t.KleeneBase))
	b = appendSection(b, secTrainingSet, encodeTrainingSet(doc.Training))

	return b
}

// Unmarshal decodes b back into a Document, rebuilding the task's
// expression pool before any CPF/reward/precondition that references
// it, since every downstream section addresses pool nodes by index.
func Unmarshal(b []byte) (*Document, error) {
	sections := make(map[protowire.Number][]byte)
	for len(b) > 0 {
		num, payload, n, err := consumeSection(b)
		if err != nil {
			return nil, err
		}
		sections[num] = payload
		b = b[n:]
	}

	header, err := decodeHeader(sections[secHeader])
	if err != nil {
		return nil, err
	}

	initial, err := decodeState(sections[secInitialState], nil)
	if err != nil {
		return nil, err
	}

	actionFluents, err := decodeFluentInfos(sections[secActionFluents])
	if err != nil {
		return nil, err
	}

	stateFluents, nonFluents, nonFluentValues, err := decodeStateFluentsSection(sections[secStateFluents])
	if err != nil {
		return nil, err
	}

	pool, err := decodePool(sections[secPool])
	if err != nil {
		return nil, err
	}

	rewardFn, err := decodeEvaluatable(sections[secReward], pool)
	if err != nil {
		return nil, err
	}

	preconditions, err := decodeEvaluatables(sections[secPreconditions], pool)
	if err != nil {
		return nil, err
	}

	actionStates, err := decodeActionStates(sections[secActionStates])
	if err != nil {
		return nil, err
	}

	hashTable, err := decodeHashTable(sections[secHashTable])
	if err != nil {
		return nil, err
	}

	kleeneBase, _, err := consumeInt64s(sections[secKleeneBase])
	if err != nil {
		return nil, err
	}

	training, err := decodeTrainingSet(sections[secTrainingSet], hashTable)
	if err != nil {
		return nil, err
	}

	initial = state.NewState(initial.Values, header.horizon, hashTable)

	cpfs, err := decodeCPFs(stateFluents, pool, hashTable)
	if err != nil {
		return nil, err
	}

	t := task.NewTask(
		header.name, header.horizon, header.discount,
		initial,
		stateFluentInfos(stateFluents), actionFluents, nonFluents,
		nonFluentValues, pool,
		cpfs, rewardFn, preconditions,
		actionStates,
		header.finalReward,
		header.rewardLockDetection, header.goalTestAction,
		hashTable, kleeneBase,
	)

	return &Document{Task: t, Training: training}, nil
}

// stateFluentDef pairs a FluentInfo with the still-undecoded bytes of
// its compiled CPF evaluatable; the CPF can't be decoded until the
// pool section (which follows it on disk) has been read.
type stateFluentDef struct {
	info task.FluentInfo
	raw  []byte
}

func stateFluentInfos(defs []stateFluentDef) []task.FluentInfo {
	out := make([]task.FluentInfo, len(defs))
	for i, d := range defs {
		out[i] = d.info
	}
	return out
}

func decodeCPFs(defs []stateFluentDef, pool *expr.Pool, hashTable *state.HashKeyTable) ([]*eval.Evaluatable, error) {
	out := make([]*eval.Evaluatable, len(defs))
	for i, d := range defs {
		e, err := decodeEvaluatable(d.raw, pool)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func encodeEvaluatables(es []*eval.Evaluatable) []byte {
	var b []byte
	b = appendVarint(b, int64(len(es)))
	for _, e := range es {
		payload := encodeEvaluatable(e)
		b = appendVarint(b, int64(len(payload)))
		b = append(b, payload...)
	}
	return b
}

func decodeEvaluatables(b []byte, pool *expr.Pool) ([]*eval.Evaluatable, error) {
	n, off := consumeVarint(b)
	if off < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable list count")
	}
	out := make([]*eval.Evaluatable, n)
	for i := range out {
		l, ll := consumeVarint(b[off:])
		if ll < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "evaluatable list entry length")
		}
		off += ll
		e, err := decodeEvaluatable(b[off:off+int(l)], pool)
		if err != nil {
			return nil, err
		}
		out[i] = e
		off += int(l)
	}
	return out, nil
}
