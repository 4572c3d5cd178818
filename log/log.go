// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log is a thin facade over github.com/luxfi/log, giving the
// rest of the module one place to name a logger instead of importing
// luxfi/log directly everywhere.
package log

import "github.com/luxfi/log"

// Logger is an alias for the interface every package here accepts and
// stores; components take one in their constructor rather than
// reaching for a global.
type Logger = log.Logger

// New returns a named logger (§9's per-component log tags: "engine",
// "thts", "taskio", ...).
func New(name string) Logger {
	return log.NewLogger(name)
}

// NoOp returns a logger that discards everything, for tests and for
// any component constructed without one.
func NoOp() Logger {
	return log.NewNoOpLogger()
}
