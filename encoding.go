// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/xmlrec/internal/ordered"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding of [Record.Encode].
type Format byte

// Constants defining the supported output formats.
const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// EncodeOptions control the encoding of a record. A nil *EncodeOptions is
// ready for use and encodes compact JSON with the schema field names.
type EncodeOptions struct {
	Format Format

	// Indent, if positive, is the number of spaces per level of nesting.
	// Indentation is always used for YAML.
	Indent int

	// KeyName, if non-nil, maps schema field names to output keys.
	KeyName func(string) string
}

func (o *EncodeOptions) format() Format {
	if o == nil {
		return JSON
	}
	return o.Format
}

func (o *EncodeOptions) indent() int {
	if o == nil {
		return 0
	}
	return o.Indent
}

func (o *EncodeOptions) keyName(s string) string {
	if o == nil || o.KeyName == nil {
		return s
	}
	return o.KeyName(s)
}

// Encode writes r to w as a single document. Fields are written in schema
// order; unset fields are omitted.
func (r *Record) Encode(w io.Writer, opts *EncodeOptions) error { return Encode(w, r, opts) }

// Encode writes v to w as a single document. The value v may be a *Record,
// a []*Record, or any value the chosen format can encode directly, such as
// the value of a scalar field.
func Encode(w io.Writer, v any, opts *EncodeOptions) error {
	obj := orderedValue(v, opts)
	switch f := opts.format(); f {
	case JSON:
		data, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		if n := opts.indent(); n > 0 {
			var buf bytes.Buffer
			if err := json.Indent(&buf, data, "", strings.Repeat(" ", n)); err != nil {
				return err
			}
			data = buf.Bytes()
		}
		_, err = w.Write(append(data, '\n'))
		return err

	case YAML:
		enc := yaml.NewEncoder(w)
		if n := opts.indent(); n > 0 {
			enc.SetIndent(n)
		}
		if err := enc.Encode(obj); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown format %v", f)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (r *Record) MarshalJSON() ([]byte, error) { return r.ordered(nil).MarshalJSON() }

// MarshalYAML implements the yaml.Marshaler interface.
func (r *Record) MarshalYAML() (any, error) { return r.ordered(nil).MarshalYAML() }

func (r *Record) ordered(opts *EncodeOptions) ordered.Object {
	obj := make(ordered.Object, 0, r.Len())
	for name, v := range r.All() {
		obj = append(obj, ordered.Member{Key: opts.keyName(name), Value: orderedValue(v, opts)})
	}
	return obj
}

func orderedValue(v any, opts *EncodeOptions) any {
	switch t := v.(type) {
	case *Record:
		return t.ordered(opts)
	case []*Record:
		elts := make([]ordered.Object, len(t))
		for i, elt := range t {
			elts[i] = elt.ordered(opts)
		}
		return elts
	default:
		return v
	}
}
