// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package taskio

import (
	"github.com/cockroachdb/errors"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
)

// header captures §6's header section plus the small fixed-size
// sections (booleans, final-reward token, goal-test action) the
// original groups with it.
type header struct {
	name                string
	horizon             int
	discount            float64
	finalReward         task.FinalRewardConfig
	rewardLockDetection bool
	goalTestAction      int
}

func encodeHeader(t *task.Task) []byte {
	var b []byte
	b = appendString(b, t.Name)
	b = appendVarint(b, int64(t.Horizon))
	b = appendFloat64(b, t.Discount)
	b = appendVarint(b, int64(t.FinalReward.Policy))
	b = appendInts(b, t.FinalReward.CandidateSet)
	b = appendBool(b, t.RewardLockDetectionEnabled)
	b = appendVarint(b, int64(t.GoalTestAction))
	return b
}

func decodeHeader(b []byte) (*header, error) {
	name, l := consumeString(b)
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "header name")
	}
	off := l

	horizon, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "header horizon")
	}
	off += l

	discount, l := consumeFloat64(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "header discount")
	}
	off += l

	policy, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "header final reward policy")
	}
	off += l

	candidates, l, err := consumeInts(b[off:])
	if err != nil {
		return nil, err
	}
	off += l

	rewardLockDetection, l := consumeBool(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "header reward lock flag")
	}
	off += l

	goalTestAction, _ := consumeVarint(b[off:])

	return &header{
		name:     name,
		horizon:  int(horizon),
		discount: discount,
		finalReward: task.FinalRewardConfig{
			Policy:       task.FinalRewardPolicy(policy),
			CandidateSet: candidates,
		},
		rewardLockDetection: rewardLockDetection,
		goalTestAction:      int(goalTestAction),
	}, nil
}

func encodeState(s state.State) []byte {
	var b []byte
	b = appendFloat64s(b, s.Values)
	b = appendVarint(b, int64(s.StepsToGo))
	return b
}

func decodeState(b []byte, table *state.HashKeyTable) (state.State, error) {
	values, l, err := consumeFloat64s(b)
	if err != nil {
		return state.State{}, err
	}
	stepsToGo, _ := consumeVarint(b[l:])
	return state.State{Values: values, StepsToGo: int(stepsToGo)}, nil
}

func encodeFluentInfos(infos []task.FluentInfo) []byte {
	var b []byte
	b = appendVarint(b, int64(len(infos)))
	for _, f := range infos {
		b = appendVarint(b, int64(f.Index))
		b = appendString(b, f.Name)
		b = appendFloat64s(b, f.Domain)
	}
	return b
}

func decodeFluentInfos(b []byte) ([]task.FluentInfo, error) {
	out, _, err := decodeFluentInfosN(b)
	return out, err
}

func decodeFluentInfosN(b []byte) ([]task.FluentInfo, int, error) {
	n, off := consumeVarint(b)
	if off < 0 {
		return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "fluent info count")
	}
	out := make([]task.FluentInfo, n)
	for i := range out {
		idx, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "fluent info index")
		}
		off += l
		name, l := consumeString(b[off:])
		if l < 0 {
			return nil, 0, errors.Wrap(prost.ErrMalformedTaskBinary, "fluent info name")
		}
		off += l
		domain, l, err := consumeFloat64s(b[off:])
		if err != nil {
			return nil, 0, err
		}
		off += l
		out[i] = task.FluentInfo{Index: int(idx), Name: name, Domain: domain}
	}
	return out, off, nil
}

// encodeStateFluents writes §6's per-state-fluent sections (fluent
// info plus its compiled CPF evaluatable) followed by the task's
// non-fluents and their values, since both share the "named, typed,
// constant-at-load" shape.
func encodeStateFluents(t *task.Task) []byte {
	var b []byte
	b = appendVarint(b, int64(len(t.StateFluents)))
	for i, f := range t.StateFluents {
		b = appendVarint(b, int64(f.Index))
		b = appendString(b, f.Name)
		b = appendFloat64s(b, f.Domain)
		payload := encodeEvaluatable(t.CPFs[i])
		b = appendVarint(b, int64(len(payload)))
		b = append(b, payload...)
	}
	b = append(b, encodeFluentInfos(t.NonFluents)...)
	b = appendFloat64s(b, t.NonFluentValues)
	return b
}

// decodeStateFluentsSection reads each state fluent's FluentInfo and
// stages its CPF evaluatable's raw bytes on the returned stateFluentDef
// (the pool those bytes reference is decoded from a later section, so
// decodeCPFs finishes the job once the pool is available).
func decodeStateFluentsSection(b []byte) ([]stateFluentDef, []task.FluentInfo, []float64, error) {
	n, off := consumeVarint(b)
	if off < 0 {
		return nil, nil, nil, errors.Wrap(prost.ErrMalformedTaskBinary, "state fluent count")
	}
	defs := make([]stateFluentDef, n)
	for i := range defs {
		idx, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, nil, nil, errors.Wrap(prost.ErrMalformedTaskBinary, "state fluent index")
		}
		off += l
		name, l := consumeString(b[off:])
		if l < 0 {
			return nil, nil, nil, errors.Wrap(prost.ErrMalformedTaskBinary, "state fluent name")
		}
		off += l
		domain, l, err := consumeFloat64s(b[off:])
		if err != nil {
			return nil, nil, nil, err
		}
		off += l
		evalLen, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, nil, nil, errors.Wrap(prost.ErrMalformedTaskBinary, "state fluent cpf length")
		}
		off += l
		defs[i].info = task.FluentInfo{Index: int(idx), Name: name, Domain: domain}
		defs[i].raw = b[off : off+int(evalLen)]
		off += int(evalLen)
	}

	nonFluents, l, err := decodeFluentInfosN(b[off:])
	if err != nil {
		return nil, nil, nil, err
	}
	off += l
	nonFluentValues, _, err := consumeFloat64s(b[off:])
	if err != nil {
		return nil, nil, nil, err
	}

	return defs, nonFluents, nonFluentValues, nil
}

func encodeActionStates(as []task.ActionState) []byte {
	var b []byte
	b = appendVarint(b, int64(len(as)))
	for _, a := range as {
		b = appendVarint(b, int64(a.Index))
		b = appendFloat64s(b, a.Values)
		b = appendInts(b, a.ScheduledFluents)
		b = appendInts(b, a.RelevantPreconditions)
	}
	return b
}

func decodeActionStates(b []byte) ([]task.ActionState, error) {
	n, off := consumeVarint(b)
	if off < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "action state count")
	}
	out := make([]task.ActionState, n)
	for i := range out {
		idx, l := consumeVarint(b[off:])
		if l < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "action state index")
		}
		off += l
		values, l, err := consumeFloat64s(b[off:])
		if err != nil {
			return nil, err
		}
		off += l
		scheduled, l, err := consumeInts(b[off:])
		if err != nil {
			return nil, err
		}
		off += l
		relevant, l, err := consumeInts(b[off:])
		if err != nil {
			return nil, err
		}
		off += l
		out[i] = task.ActionState{
			Index:                 int(idx),
			Values:                values,
			ScheduledFluents:      scheduled,
			RelevantPreconditions: relevant,
		}
	}
	return out, nil
}

func encodeHashTable(ht *state.HashKeyTable) []byte {
	var b []byte
	b = appendVarint(b, int64(len(ht.StateHashByValue)))
	for _, row := range ht.StateHashByValue {
		b = appendInt64s(b, row)
	}
	b = appendVarint(b, int64(len(ht.FluentFactor)))
	for _, row := range ht.FluentFactor {
		b = appendInt64s(b, row)
	}
	b = appendVarint(b, int64(len(ht.Affects)))
	for _, row := range ht.Affects {
		b = appendInts(b, row)
	}
	b = appendVarint(b, int64(ht.NumEvaluatables))
	b = appendBool(b, ht.Enabled)
	return b
}

func decodeHashTable(b []byte) (*state.HashKeyTable, error) {
	n, off := consumeVarint(b)
	if off < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "hash table state-hash rows")
	}
	stateHash := make([][]int64, n)
	for i := range stateHash {
		row, l, err := consumeInt64s(b[off:])
		if err != nil {
			return nil, err
		}
		stateHash[i] = row
		off += l
	}

	n, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "hash table fluent factor rows")
	}
	off += l
	factor := make([][]int64, n)
	for i := range factor {
		row, l, err := consumeInt64s(b[off:])
		if err != nil {
			return nil, err
		}
		factor[i] = row
		off += l
	}

	n, l = consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "hash table affects rows")
	}
	off += l
	affects := make([][]int, n)
	for i := range affects {
		row, l, err := consumeInts(b[off:])
		if err != nil {
			return nil, err
		}
		affects[i] = row
		off += l
	}

	numEvaluatables, l := consumeVarint(b[off:])
	if l < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "hash table num evaluatables")
	}
	off += l
	enabled, _ := consumeBool(b[off:])

	return &state.HashKeyTable{
		StateHashByValue: stateHash,
		FluentFactor:     factor,
		Affects:          affects,
		NumEvaluatables:  int(numEvaluatables),
		Enabled:          enabled,
	}, nil
}

func encodeTrainingSet(training []state.State) []byte {
	var b []byte
	b = appendVarint(b, int64(len(training)))
	for _, s := range training {
		payload := encodeState(s)
		b = appendVarint(b, int64(len(payload)))
		b = append(b, payload...)
	}
	return b
}

func decodeTrainingSet(b []byte, table *state.HashKeyTable) ([]state.State, error) {
	n, off := consumeVarint(b)
	if off < 0 {
		return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "training set count")
	}
	out := make([]state.State, n)
	for i := range out {
		l, ll := consumeVarint(b[off:])
		if ll < 0 {
			return nil, errors.Wrap(prost.ErrMalformedTaskBinary, "training set entry length")
		}
		off += ll
		s, err := decodeState(b[off:off+int(l)], table)
		if err != nil {
			return nil, err
		}
		out[i] = state.NewState(s.Values, s.StepsToGo, table)
		off += int(l)
	}
	return out, nil
}
