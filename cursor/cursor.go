// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a decoded record.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/xmlrec"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method.  This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T any](v any, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// ParsePath splits a dotted path string like "cd.0.title" into path elements
// suitable for Down. Components that parse as decimal integers become ints,
// all others are field names. An empty string yields an empty path.
func ParsePath(s string) []any {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	out := make([]any, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			out[i] = n
		} else {
			out[i] = p
		}
	}
	return out
}

// A Cursor is a pointer that navigates into the structure of a record.
// The values it visits are *xmlrec.Record, []*xmlrec.Record, and the scalar
// field values of records.
type Cursor struct {
	org any
	stk []any
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin any) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() any { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() any {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []any {
	return append([]any{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are strings (denoting field names),
// integers (denoting offsets into arrays), or functions.  If the path cannot
// be completely consumed, traversal stops at the last value reached and an
// error is recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be a record,
// and the string names a field of that record which must be set.
//
// If a path element is an integer, the corresponding value must be an array
// of records or a record. For an array the integer is an element offset; for a
// record it selects among the fields that are set, in schema order.
// Negative indices count backward from the end (-1 is last, -2 second last).
// An error is reported if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(any) (any, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			rec, ok := cur.(*xmlrec.Record)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, elt)
			}
			v, ok := rec.Get(t)
			if !ok {
				if _, known := rec.Schema().Field(t); known {
					return c.setErrorf("field %q is not set", t)
				}
				return c.setErrorf("field %q not found", t)
			}
			cur = c.push(v)

		case int:
			switch e := cur.(type) {
			case []*xmlrec.Record:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", i, len(e))
				}
				cur = c.push(e[i])
			case *xmlrec.Record:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					return c.setErrorf("record index %d out of bounds (n=%d)", i, e.Len())
				}
				cur = c.push(nthValue(e, i))
			default:
				return c.setErrorf("cannot traverse %T with %v", cur, elt)
			}

		case func(any) (any, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v any) any { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// nthValue returns the value of the ith set field of r, which must exist.
func nthValue(r *xmlrec.Record, i int) any {
	for _, v := range r.All() {
		if i == 0 {
			return v
		}
		i--
	}
	panic("index out of range")
}
