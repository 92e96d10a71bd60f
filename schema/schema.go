// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package schema defines the type trees that describe the records produced
// by an xmlrec conversion.
//
// A schema is a tree of three node kinds: a [Record] has an ordered list of
// uniquely-named fields, an [Array] has a single element type (always a
// record), and a [Scalar] is a leaf of one of six primitive kinds. Schemas
// are read-only once constructed; the same tree may be shared by any number
// of concurrent conversions.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the primitive type of a [Scalar].
type Kind byte

// Constants defining the scalar kinds.
const (
	Invalid Kind = iota
	Boolean
	Int32
	Int64
	Float32
	Float64
	String
)

var kindStr = [...]string{
	Invalid: "invalid",
	Boolean: "boolean",
	Int32:   "int",
	Int64:   "long",
	Float32: "float",
	Float64: "double",
	String:  "string",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return kindStr[Invalid]
}

// Errors reported by [Child].
var (
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidNesting = errors.New("scalar cannot contain elements")
)

// A Node is a single node of a schema tree. The concrete type of a Node is
// one of *Record, *Array, or *Scalar.
type Node interface {
	String() string

	isNode()
}

// A Field is a named member of a Record.
type Field struct {
	Name string
	Type Node
}

// A Record is a node describing an ordered set of named fields.
type Record struct {
	Name   string
	Fields []Field

	index map[string]int // populated by NewRecord
}

// NewRecord constructs a Record with the given name and fields. It reports an
// error if a field name is empty or duplicated, or if a field has no type.
func NewRecord(name string, fields ...Field) (*Record, error) {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("record %q: field %d has no name", name, i)
		} else if f.Type == nil {
			return nil, fmt.Errorf("record %q: field %q has no type", name, f.Name)
		} else if _, ok := idx[f.Name]; ok {
			return nil, fmt.Errorf("record %q: duplicate field %q", name, f.Name)
		}
		idx[f.Name] = i
	}
	return &Record{Name: name, Fields: fields, index: idx}, nil
}

// MustRecord is as NewRecord, but panics on error.
func MustRecord(name string, fields ...Field) *Record {
	r, err := NewRecord(name, fields...)
	if err != nil {
		panic(err)
	}
	return r
}

// Field returns the field of r with the given name, if it exists.
func (r *Record) Field(name string) (Field, bool) {
	if r.index != nil {
		if i, ok := r.index[name]; ok {
			return r.Fields[i], true
		}
		return Field{}, false
	}
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Len reports the number of fields in r.
func (r *Record) Len() int { return len(r.Fields) }

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("record ")
	if r.Name != "" {
		sb.WriteString(r.Name)
		sb.WriteByte(' ')
	}
	sb.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", f.Name, f.Type)
	}
	sb.WriteByte('}')
	return sb.String()
}

func (*Record) isNode() {}

// An Array is a node describing a sequence of values of one element type.
type Array struct {
	Element Node
}

// ArrayOf returns an Array node whose elements have type elt.
func ArrayOf(elt *Record) *Array { return &Array{Element: elt} }

func (a *Array) String() string { return fmt.Sprintf("array<%v>", a.Element) }

func (*Array) isNode() {}

// A Scalar is a leaf node holding a single primitive value.
type Scalar struct {
	Kind Kind
}

// Of returns a Scalar node of the given kind.
func Of(k Kind) *Scalar { return &Scalar{Kind: k} }

func (s *Scalar) String() string { return s.Kind.String() }

func (*Scalar) isNode() {}

// Child resolves the schema of an element named tag nested inside an element
// whose schema is parent.
//
// For a Record, tag must name one of its fields. For an Array, the element
// schema is returned regardless of tag, since array elements are anonymous in
// the event stream. A Scalar has no children. Child does not modify parent.
func Child(parent Node, tag string) (Node, error) {
	switch p := parent.(type) {
	case *Record:
		f, ok := p.Field(tag)
		if !ok {
			return nil, fmt.Errorf("%w %q in %s", ErrUnknownField, tag, recordName(p))
		}
		return f.Type, nil
	case *Array:
		return p.Element, nil
	case *Scalar:
		return nil, fmt.Errorf("%w: %q inside %v", ErrInvalidNesting, tag, p.Kind)
	default:
		return nil, fmt.Errorf("unknown schema node %T", parent)
	}
}

func recordName(r *Record) string {
	if r.Name == "" {
		return "record"
	}
	return "record " + r.Name
}

// Validate checks that root describes a convertible record: every node is
// non-nil, field names are unique and non-empty, array elements are records,
// scalar kinds are valid, and the tree has no cycles.
func Validate(root *Record) error {
	if root == nil {
		return errors.New("nil root schema")
	}
	return validate(root, make(map[*Record]bool))
}

func validate(n Node, active map[*Record]bool) error {
	switch t := n.(type) {
	case *Record:
		if t == nil {
			return errors.New("nil record")
		} else if active[t] {
			return fmt.Errorf("cycle through %s", recordName(t))
		}
		active[t] = true
		defer delete(active, t)

		seen := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if f.Name == "" {
				return fmt.Errorf("%s: empty field name", recordName(t))
			} else if seen[f.Name] {
				return fmt.Errorf("%s: duplicate field %q", recordName(t), f.Name)
			}
			seen[f.Name] = true
			if err := validate(f.Type, active); err != nil {
				return fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
		return nil

	case *Array:
		if t == nil {
			return errors.New("nil array")
		}
		elt, ok := t.Element.(*Record)
		if !ok {
			return fmt.Errorf("array element must be a record, not %v", t.Element)
		}
		return validate(elt, active)

	case *Scalar:
		if t == nil {
			return errors.New("nil scalar")
		} else if t.Kind <= Invalid || t.Kind > String {
			return fmt.Errorf("invalid scalar kind %d", t.Kind)
		}
		return nil

	case nil:
		return errors.New("missing type")
	default:
		return fmt.Errorf("unknown schema node %T", n)
	}
}
