// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "github.com/prost-go/prost"

// Validate checks p for internal consistency (§7's configuration error
// taxonomy): an unknown engine kind, a THTS engine missing one of its
// four required ingredients, or a malformed numeric flag.
func Validate(p *Params) error {
	switch p.Engine {
	case THTSEngine:
		return validateTHTS(p)
	case IDSEngine, DFSEngine, MLSEngine, UniformEngine, RandomWalkEngine:
		return nil
	default:
		return prost.WrapConfig(prost.ErrUnknownEngine, "Engine")
	}
}

func validateTHTS(p *Params) error {
	if p.ActionSelection == UnknownActionSelection {
		return prost.WrapConfig(prost.ErrMissingIngredient, "-act")
	}
	if p.OutcomeSelection == UnknownOutcomeSelection {
		return prost.WrapConfig(prost.ErrMissingIngredient, "-out")
	}
	if p.Backup == UnknownBackup {
		return prost.WrapConfig(prost.ErrMissingIngredient, "-backup")
	}
	if p.Initializer == nil {
		return prost.WrapConfig(prost.ErrMissingIngredient, "-init")
	}
	if err := Validate(p.Initializer); err != nil {
		return err
	}
	if p.MaxSearchDepth < 0 {
		return prost.WrapConfig(prost.ErrMalformedDescriptor, "-sd")
	}
	return nil
}
