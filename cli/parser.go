// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/cockroachdb/errors"

	"github.com/prost-go/prost"
)

// node is one parsed `[SE -flag value ...]` descriptor.
type node struct {
	Engine string
	Flags  []flag
}

// flag is one `-name value` or `-name [SubSE ...]` pair. Exactly one
// of Value/Sub is set, unless the flag takes no argument.
type flag struct {
	Name  string
	Value string
	Sub   *node
}

// parse reads one bracketed descriptor from toks, returning the node
// and the tokens following its closing bracket.
func parse(toks []token) (*node, []token, error) {
	if len(toks) == 0 || toks[0].kind != tokLBracket {
		return nil, nil, errors.Wrap(prost.ErrMalformedDescriptor, "expected '['")
	}
	toks = toks[1:]

	if len(toks) == 0 || toks[0].kind != tokWord {
		return nil, nil, errors.Wrap(prost.ErrMalformedDescriptor, "expected engine name")
	}
	n := &node{Engine: toks[0].text}
	toks = toks[1:]

	for len(toks) > 0 && toks[0].kind == tokWord && isFlagName(toks[0].text) {
		name := toks[0].text
		toks = toks[1:]

		if len(toks) == 0 {
			return nil, nil, errors.Wrap(prost.ErrMalformedDescriptor, name+" missing value")
		}

		if toks[0].kind == tokLBracket {
			sub, rest, err := parse(toks)
			if err != nil {
				return nil, nil, err
			}
			n.Flags = append(n.Flags, flag{Name: name, Sub: sub})
			toks = rest
			continue
		}

		if toks[0].kind != tokWord {
			return nil, nil, errors.Wrap(prost.ErrMalformedDescriptor, name+" missing value")
		}
		n.Flags = append(n.Flags, flag{Name: name, Value: toks[0].text})
		toks = toks[1:]
	}

	if len(toks) == 0 || toks[0].kind != tokRBracket {
		return nil, nil, errors.Wrap(prost.ErrMalformedDescriptor, "expected ']'")
	}
	return n, toks[1:], nil
}

func isFlagName(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	c := s[1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parseDescriptor parses a complete `[SE ...]` descriptor string into
// its AST. Trailing tokens after the closing bracket are an error.
func parseDescriptor(descriptor string) (*node, error) {
	toks := lex(descriptor)
	n, rest, err := parse(toks)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.Wrap(prost.ErrMalformedDescriptor, "trailing tokens after descriptor")
	}
	return n, nil
}
