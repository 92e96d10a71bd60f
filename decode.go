// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"bytes"
	"io"

	"github.com/creachadair/xmlrec/schema"
)

// Decode parses a single XML document from r and converts it to a record
// with schema s. No partial record is returned in case of error.
func Decode(r io.Reader, s *schema.Record) (*Record, error) {
	b, err := NewBuilder(s)
	if err != nil {
		return nil, err
	}
	st, err := NewStream(r)
	if err != nil {
		return nil, err
	}
	if err := st.Parse(b); err != nil {
		return nil, err
	}
	return b.Record()
}

// Unmarshal converts the XML document in data to a record with schema s.
func Unmarshal(data []byte, s *schema.Record) (*Record, error) {
	return Decode(bytes.NewReader(data), s)
}
