// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"fmt"

	"github.com/creachadair/xmlrec/schema"
)

// A Handler handles element events from an input stream. If a method reports
// an error, the event source must stop and return that error to its caller.
//
// The event source is responsible for well-formedness: Open and Close events
// must be properly nested, and the tag passed to Close must match the
// corresponding Open. A Handler does not re-check tag names.
type Handler interface {
	// Open reports the start of an element with the given tag name.
	Open(tag string) error

	// Text reports character data inside the most-recently-opened element.
	// Character data may be delivered in several consecutive chunks.
	// The slice is only valid for the duration of the call.
	Text(text []byte) error

	// Close reports the end of the most-recently-opened element.
	Close(tag string) error
}

// A Builder is a [Handler] that constructs a [Record] from element events,
// according to a record schema.
//
// A Builder handles exactly one conversion: construct it, deliver the events
// for one document, then call Record. The first error reported by any method
// ends the conversion; all later calls report the same error. A Builder is
// not safe for concurrent use, but any number of builders may share a schema.
type Builder struct {
	m    *machine
	err  error
	done bool
}

// NewBuilder constructs a Builder for documents whose root element has the
// given schema. It reports an error if root is not a valid schema.
func NewBuilder(root *schema.Record) (*Builder, error) {
	if err := schema.Validate(root); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Builder{m: newMachine(root)}, nil
}

// Open implements part of the [Handler] interface.
func (b *Builder) Open(tag string) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.fail(b.m.open(tag))
}

// Text implements part of the [Handler] interface.
func (b *Builder) Text(text []byte) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.fail(b.m.text(text))
}

// Close implements part of the [Handler] interface.
func (b *Builder) Close(tag string) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.fail(b.m.close(tag))
}

// Record returns the record built from the events delivered to b. It must be
// called exactly once, after the last event. It reports an error of kind
// IncompleteDocument unless the events described exactly one complete root
// element.
func (b *Builder) Record() (*Record, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	b.done = true
	return b.m.extract()
}

// Depth reports the number of containers currently open.
func (b *Builder) Depth() int { return b.m.stk.Len() }

func (b *Builder) check() error {
	if b.err != nil {
		return b.err
	} else if b.done {
		return ErrFinished
	}
	return nil
}

func (b *Builder) fail(err error) error {
	if err != nil {
		b.err = err
	}
	return err
}
