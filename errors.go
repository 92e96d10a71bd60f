// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies the failures reported by a [Builder].
type ErrorKind byte

// Constants defining the error kinds.
const (
	UnknownField       ErrorKind = iota + 1 // tag is not a field of the current record
	InvalidNesting                          // element opened inside a scalar
	UnexpectedText                          // character data outside a scalar
	InvalidAttach                           // a closed element cannot be attached to its parent
	MalformedNumber                         // leaf text does not parse as its numeric kind
	IncompleteDocument                      // the stream did not leave exactly one record
)

var errKindStr = [...]string{
	UnknownField:       "unknown field",
	InvalidNesting:     "invalid nesting",
	UnexpectedText:     "unexpected text",
	InvalidAttach:      "invalid attach",
	MalformedNumber:    "malformed number",
	IncompleteDocument: "incomplete document",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(errKindStr) {
		return errKindStr[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Sentinel errors for use with [errors.Is]. An error reported by a Builder
// matches the sentinel with the same Kind.
var (
	ErrUnknownField       = &Error{Kind: UnknownField}
	ErrInvalidNesting     = &Error{Kind: InvalidNesting}
	ErrUnexpectedText     = &Error{Kind: UnexpectedText}
	ErrInvalidAttach      = &Error{Kind: InvalidAttach}
	ErrMalformedNumber    = &Error{Kind: MalformedNumber}
	ErrIncompleteDocument = &Error{Kind: IncompleteDocument}
)

// ErrFinished is reported by a Builder that is used after its record has
// been extracted.
var ErrFinished = errors.New("builder has already produced its record")

// Error is the concrete type of conversion errors reported by a [Builder].
// Every such error is fatal to the conversion that reported it.
type Error struct {
	Kind    ErrorKind
	Tag     string  // the element involved, if known
	Pos     LineCol // the input location, if known
	Message string

	err error
}

func newError(kind ErrorKind, tag string, err error, msg string, args ...any) *Error {
	return &Error{Kind: kind, Tag: tag, Message: fmt.Sprintf(msg, args...), err: err}
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if !e.Pos.IsZero() {
		fmt.Fprintf(&sb, "at %s: ", e.Pos)
	}
	sb.WriteString(e.Kind.String())
	if e.Tag != "" {
		fmt.Fprintf(&sb, " <%s>", e.Tag)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.err != nil {
		fmt.Fprintf(&sb, ": %v", e.err)
	}
	return sb.String()
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same kind as e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// SyntaxError is the concrete type of errors reported by a [Stream] when the
// input is not well-formed XML.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Location.IsZero() {
		return s.Message
	}
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
