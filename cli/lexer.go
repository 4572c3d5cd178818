// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cli parses §6's nested engine descriptor grammar,
// `[SE -flag value … -flag [SubSE …] …]`, into a config.Params ready
// for config.Assemble. There is no general-purpose Go package for this
// bracket-nested, whitespace-delimited token grammar in the examples
// or the wider ecosystem (it isn't shell-style flags, and it isn't
// JSON/YAML) — it is small and specific enough that a hand-written
// lexer/recursive-descent parser is the idiomatic fit, the same way
// the original's own main.cc hand-parses argv rather than reaching for
// a generic options library.
package cli

import "strings"

type tokenKind int

const (
	tokWord tokenKind = iota
	tokLBracket
	tokRBracket
)

type token struct {
	kind tokenKind
	text string
}

// lex splits a descriptor string into bracket and word tokens. Brackets
// may be flush against adjacent words (`[MC-UCT`, `15]`), so they are
// split off character by character rather than relying on whitespace
// alone.
func lex(s string) []token {
	var toks []token
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			toks = append(toks, token{kind: tokWord, text: word.String()})
			word.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '[':
			flush()
			toks = append(toks, token{kind: tokLBracket})
		case r == ']':
			flush()
			toks = append(toks, token{kind: tokRBracket})
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return toks
}
