// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package prost

import "github.com/cockroachdb/errors"

// Configuration errors: malformed CLI descriptor, unknown flag, missing
// ingredient, unknown token in a task file. Reported with the offending
// fragment and fatal to the process (§7).
var (
	ErrUnknownEngine       = errors.New("unknown search engine name")
	ErrUnknownFlag         = errors.New("unknown flag")
	ErrMissingIngredient   = errors.New("THTS requires all four ingredients: action selection, outcome selection, backup, initializer")
	ErrMalformedDescriptor = errors.New("malformed engine descriptor")
)

// Task errors: undefined references, duplicate definitions, missing or
// redefined reward CPF. Reported at load time and fatal.
var (
	ErrUndefinedFluent      = errors.New("undefined fluent reference")
	ErrDuplicateDefinition  = errors.New("duplicate definition")
	ErrRewardCPFUndefined   = errors.New("reward CPF undefined")
	ErrRewardCPFRedefined   = errors.New("reward CPF redefined")
	ErrMalformedTaskBinary  = errors.New("malformed task binary")
	ErrHashKeyOverflow      = errors.New("state-fluent hash key space overflow")
)

// WrapConfig wraps err as a configuration error, attaching the offending
// fragment (a flag name, a descriptor token) for diagnostics.
func WrapConfig(err error, fragment string) error {
	return errors.Wrapf(err, "in %q", fragment)
}

// WrapTask wraps err as a task-load error, attaching the offending
// fragment (a fluent name, a formula snippet).
func WrapTask(err error, fragment string) error {
	return errors.Wrapf(err, "in %q", fragment)
}
