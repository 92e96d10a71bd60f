// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"errors"
	"slices"

	"github.com/creachadair/mds/stack"
	"github.com/creachadair/xmlrec/schema"
	"go4.org/mem"
)

// A container is a stack frame for an open element. The concrete type of a
// container is one of *pendingRecord, *pendingArray, or *pendingScalar.
type container interface {
	key() string
	node() schema.Node
}

// A pendingRecord is an open element whose schema is a record.
type pendingRecord struct {
	tag    string
	schema *schema.Record
	rec    *Record
}

func newPendingRecord(tag string, s *schema.Record) *pendingRecord {
	return &pendingRecord{tag: tag, schema: s, rec: NewRecord(s)}
}

func (p *pendingRecord) key() string       { return p.tag }
func (p *pendingRecord) node() schema.Node { return p.schema }

// A pendingArray collects the elements of an array field. It does not
// correspond to any single element in the input: each of its elements is
// opened and closed under the array's own tag.
type pendingArray struct {
	tag    string
	schema *schema.Array
	elems  []*Record
}

func (p *pendingArray) key() string       { return p.tag }
func (p *pendingArray) node() schema.Node { return p.schema }

// A pendingScalar is an open leaf element.
type pendingScalar struct {
	tag     string
	schema  *schema.Scalar
	text    []byte
	hasText bool
}

func (p *pendingScalar) key() string       { return p.tag }
func (p *pendingScalar) node() schema.Node { return p.schema }

// value returns the coerced value of p.
func (p *pendingScalar) value() (any, error) {
	if !p.hasText {
		return nil, newError(InvalidAttach, p.tag, nil, "element has no text")
	}
	v, err := Coerce(p.schema.Kind, p.text)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Tag = p.tag
		}
		return nil, err
	}
	return v, nil
}

// A machine is the container stack engine. It consumes open, text, and close
// events and maintains a stack of containers for the open elements.
type machine struct {
	root *schema.Record
	stk  *stack.Stack[container]
}

func newMachine(root *schema.Record) *machine {
	return &machine{root: root, stk: stack.New[container]()}
}

func (m *machine) top() container {
	c, _ := m.stk.Peek(0)
	return c
}

// push adds a container for an element named tag with schema n.
// An array pushes its own container and a record for its first element.
func (m *machine) push(tag string, n schema.Node) error {
	switch t := n.(type) {
	case *schema.Record:
		m.stk.Push(newPendingRecord(tag, t))
	case *schema.Array:
		return m.pushArray(tag, t, nil)
	case *schema.Scalar:
		m.stk.Push(&pendingScalar{tag: tag, schema: t})
	default:
		return newError(InvalidAttach, tag, nil, "unknown schema node %T", n)
	}
	return nil
}

// pushArray adds an array container holding elems, followed by a record for
// its next element.
func (m *machine) pushArray(tag string, a *schema.Array, elems []*Record) error {
	elt, ok := a.Element.(*schema.Record)
	if !ok {
		return newError(InvalidAttach, tag, nil, "array element is %v, not a record", a.Element)
	}
	m.stk.Push(&pendingArray{tag: tag, schema: a, elems: slices.Clone(elems)})
	m.stk.Push(newPendingRecord(tag, elt))
	return nil
}

func (m *machine) open(tag string) error {
	if m.stk.Len() == 0 {
		return m.push(tag, m.root) // the root element has the root schema
	}

	// An array sees only its own tag. Any other tag is a sibling of the
	// array in the enclosing record, so the array is complete.
	for {
		a, ok := m.top().(*pendingArray)
		if !ok || a.tag == tag || m.stk.Len() < 2 {
			break
		}
		if err := m.reduce(); err != nil {
			return err
		}
	}

	parent := m.top()
	child, err := schema.Child(parent.node(), tag)
	if err != nil {
		switch {
		case errors.Is(err, schema.ErrUnknownField):
			return newError(UnknownField, tag, err, "in <%s>", parent.key())
		case errors.Is(err, schema.ErrInvalidNesting):
			return newError(InvalidNesting, tag, err, "in <%s>", parent.key())
		default:
			return newError(InvalidNesting, tag, err, "")
		}
	}

	// An array field resumed after other siblings keeps its earlier elements.
	if a, ok := child.(*schema.Array); ok {
		if r, ok := parent.(*pendingRecord); ok {
			if prior, ok := r.rec.Get(tag); ok {
				return m.pushArray(tag, a, prior.([]*Record))
			}
		}
	}

	if _, ok := child.(*schema.Scalar); ok {
		// If the sole field of an array element is repeated, the repetition
		// starts the next element: close the current one and open another.
		if r, ok := parent.(*pendingRecord); ok && m.repeatsSoleField(r, tag) {
			if err := m.reduce(); err != nil {
				return err
			}
			m.stk.Push(newPendingRecord(r.tag, r.schema))
		}
	}
	return m.push(tag, child)
}

// repeatsSoleField reports whether r is an element of an open array, has
// exactly one field, named tag, and that field is already set.
func (m *machine) repeatsSoleField(r *pendingRecord, tag string) bool {
	if len(r.schema.Fields) != 1 || r.schema.Fields[0].Name != tag || !r.rec.Has(tag) {
		return false
	}
	below, ok := m.stk.Peek(1)
	if !ok {
		return false
	}
	_, isArray := below.(*pendingArray)
	return isArray
}

func (m *machine) text(text []byte) error {
	s, ok := m.top().(*pendingScalar)
	if !ok {
		if mem.TrimSpace(mem.B(text)).Len() == 0 {
			return nil // formatting inside an element with no content
		}
		var tag string
		if c := m.top(); c != nil {
			tag = c.key()
		}
		return newError(UnexpectedText, tag, nil, "%q", text)
	}
	s.text = append(s.text, text...)
	s.hasText = true
	return nil
}

func (m *machine) close(tag string) error {
	// Arrays atop the stack are complete, and belong to the element closing.
	for m.stk.Len() > 1 {
		if _, ok := m.top().(*pendingArray); !ok {
			break
		}
		if err := m.reduce(); err != nil {
			return err
		}
	}
	if m.stk.Len() > 1 {
		return m.reduce()
	}
	return nil
}

// reduce pops the top container and attaches its value to the container
// beneath it. Precondition: m.stk.Len() > 1.
func (m *machine) reduce() error {
	child, _ := m.stk.Pop()
	switch p := m.top().(type) {
	case *pendingRecord:
		switch c := child.(type) {
		case *pendingScalar:
			v, err := c.value()
			if err != nil {
				return err
			}
			p.rec.set(c.tag, v)
		case *pendingRecord:
			p.rec.set(c.tag, c.rec)
		case *pendingArray:
			p.rec.set(c.tag, c.values())
		}
		return nil

	case *pendingArray:
		switch c := child.(type) {
		case *pendingScalar:
			// open resolves the children of an array to its element record, so
			// no scalar is pushed directly above an array. This rule completes
			// the attach table for a bare field value as a one-field element.
			elt := p.schema.Element.(*schema.Record)
			if _, ok := elt.Field(c.tag); !ok {
				return newError(InvalidAttach, c.tag, nil, "not a field of the elements of <%s>", p.tag)
			}
			v, err := c.value()
			if err != nil {
				return err
			}
			rec := NewRecord(elt)
			rec.set(c.tag, v)
			p.elems = append(p.elems, rec)
		case *pendingRecord:
			p.elems = append(p.elems, c.rec)
		default:
			return newError(InvalidAttach, child.key(), nil, "cannot add to array <%s>", p.tag)
		}
		return nil

	default:
		return newError(InvalidAttach, child.key(), nil, "cannot attach to <%s>", p.key())
	}
}

// values returns the elements of p, never nil.
func (p *pendingArray) values() []*Record {
	if p.elems == nil {
		return []*Record{}
	}
	return p.elems
}

// extract returns the completed root record. It fails unless exactly one
// container remains and that container is a record.
func (m *machine) extract() (*Record, error) {
	if n := m.stk.Len(); n != 1 {
		return nil, newError(IncompleteDocument, "", nil, "%d open containers, want 1", n)
	}
	c, _ := m.stk.Pop()
	r, ok := c.(*pendingRecord)
	if !ok {
		return nil, newError(IncompleteDocument, c.key(), nil, "root is not a record")
	}
	return r.rec, nil
}
