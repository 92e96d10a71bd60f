// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"fmt"
	"iter"

	"github.com/creachadair/xmlrec/schema"
)

// A Record is a value conforming to a record schema.
//
// The value of a field has concrete type bool, int32, int64, float32,
// float64, or string for scalar fields according to their kind, *Record for
// nested record fields, and []*Record for array fields. A field that did not
// occur in the input is unset.
type Record struct {
	schema *schema.Record
	values map[string]any
}

// NewRecord constructs an empty record with the given schema.
func NewRecord(s *schema.Record) *Record {
	return &Record{schema: s, values: make(map[string]any, len(s.Fields))}
}

// Schema returns the schema of r.
func (r *Record) Schema() *schema.Record { return r.schema }

// Len reports the number of fields of r that are set.
func (r *Record) Len() int { return len(r.values) }

// Get returns the value of the named field and reports whether it is set.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the named field is set.
func (r *Record) Has(name string) bool { _, ok := r.values[name]; return ok }

// Set sets the value of the named field. It reports an error if the schema
// of r has no such field, or if v does not conform to the field's type.
func (r *Record) Set(name string, v any) error {
	f, ok := r.schema.Field(name)
	if !ok {
		return fmt.Errorf("record has no field %q", name)
	}
	if err := conforms(f.Type, v); err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	r.values[name] = v
	return nil
}

// set sets a field without checking. The caller is responsible for the
// invariants enforced by Set.
func (r *Record) set(name string, v any) { r.values[name] = v }

// All is a range function over the fields of r that are set, in schema
// order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, f := range r.schema.Fields {
			v, ok := r.values[f.Name]
			if ok && !yield(f.Name, v) {
				return
			}
		}
	}
}

// Map returns a copy of the contents of r as plain Go values. Nested records
// become map[string]any and arrays become []any.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for name, v := range r.values {
		out[name] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *Record:
		return t.Map()
	case []*Record:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = elt.Map()
		}
		return out
	default:
		return v
	}
}

func (r *Record) String() string { return fmt.Sprint(r.Map()) }

// conforms reports whether v is a valid value for a field of type n.
func conforms(n schema.Node, v any) error {
	switch t := n.(type) {
	case *schema.Record:
		rec, ok := v.(*Record)
		if !ok || rec == nil {
			return fmt.Errorf("got %T, want record", v)
		} else if rec.schema != t {
			return fmt.Errorf("record schema mismatch")
		}
		return nil

	case *schema.Array:
		elts, ok := v.([]*Record)
		if !ok {
			return fmt.Errorf("got %T, want []*Record", v)
		}
		for i, elt := range elts {
			if elt == nil || elt.schema != t.Element {
				return fmt.Errorf("element %d: record schema mismatch", i)
			}
		}
		return nil

	case *schema.Scalar:
		var ok bool
		switch t.Kind {
		case schema.Boolean:
			_, ok = v.(bool)
		case schema.Int32:
			_, ok = v.(int32)
		case schema.Int64:
			_, ok = v.(int64)
		case schema.Float32:
			_, ok = v.(float32)
		case schema.Float64:
			_, ok = v.(float64)
		case schema.String:
			_, ok = v.(string)
		}
		if !ok {
			return fmt.Errorf("got %T, want %v", v, t.Kind)
		}
		return nil

	default:
		return fmt.Errorf("unknown schema node %T", n)
	}
}
