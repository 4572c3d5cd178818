// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package taskio

import "io"

// Read decodes a Document from r, which holds a complete task binary
// (see Marshal). The whole stream is buffered before decoding since
// the envelope carries no outer length prefix of its own.
func Read(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}

// Write encodes doc and writes it to w.
func Write(w io.Writer, doc *Document) error {
	_, err := w.Write(Marshal(doc))
	return err
}
