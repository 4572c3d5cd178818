// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package simclient specifies the session lifecycle of the IPPC-style
// simulator protocol (an XML dialect over TCP) that a deployed planner
// talks to: connect, request a session, then for each round request
// the round, submit actions until a round-end arrives, and finally end
// the session. The wire protocol itself is out of scope; this package
// gives the outer driver (cmd/prost) a concrete interface to call and
// the value-translation logic a submitted `turn` message needs before
// it can be folded into a state.State.
package simclient

import "context"

// ObservedFluent is one `observed-fluent` entry of a `turn` message: a
// grounded fluent name, its arguments, and the value the simulator
// reports for it.
type ObservedFluent struct {
	Name  string
	Args  []string
	Value string
}

// Turn is the simulator's response to a submitted action (or to a
// round request): the fluents that changed and this step's reward.
type Turn struct {
	Observed        []ObservedFluent
	ImmediateReward float64
}

// RoundEnd is a `round-end` or `end-session` message: the cumulative
// reward for the round that just finished.
type RoundEnd struct {
	Reward float64
}

// Session is one planner run against a simulator session.
//
// A typical driver loop:
//
//	rounds, _ := s.InitSession(ctx, problemName)
//	for round := 0; round < rounds; round++ {
//		turn, _ := s.InitRound(ctx)
//		for {
//			action := plan(turn)
//			next, done, _, _ := s.SubmitAction(ctx, action)
//			if done {
//				break
//			}
//			turn = next
//		}
//	}
//	s.FinishSession(ctx)
type Session interface {
	// InitSession opens the session for problemName and returns the
	// number of rounds the simulator will run.
	InitSession(ctx context.Context, problemName string) (numberOfRounds int, err error)

	// InitRound requests a new round and returns its initial state.
	InitRound(ctx context.Context) (Turn, error)

	// SubmitAction submits one ground joint action (each element a
	// fully qualified action name, e.g. "put-out(x1, y3)" or a no-arg
	// action name) and returns the simulator's response. done is true
	// when the response was round-end or end-session, in which case
	// reward holds the round's cumulative reward instead of a turn.
	SubmitAction(ctx context.Context, action []string) (turn Turn, done bool, reward RoundEnd, err error)

	// FinishSession ends the session and releases the connection.
	FinishSession(ctx context.Context) error
}
