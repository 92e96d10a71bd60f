// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/xsd/pkg/xmlstream"

	"go4.org/mem"
)

// Stream is a stream parser that consumes XML input and delivers element
// events to a Handler corresponding with the structure of the input.
type Stream struct {
	r   *xmlstream.Reader
	pos LineCol
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) (*Stream, error) {
	xr, err := xmlstream.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xml reader: %w", err)
	}
	return &Stream{r: xr}, nil
}

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError]. If a Handler method reports an error, parsing
// stops and that error is returned; if it is an [*Error] without a location,
// the location of the current input event is filled in.
//
// Character data is delivered to h only when it is the content of a leaf
// element, or when it is not entirely whitespace. Whitespace used to format
// the document between elements is discarded.
func (s *Stream) Parse(h Handler) error {
	var text []byte // pending character data
	leaf := false   // whether no element started since the last start
	for {
		ev, err := s.r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return &SyntaxError{Location: s.pos, Message: err.Error(), err: err}
		}
		s.pos = LineCol{Line: ev.Line, Column: ev.Column}

		switch ev.Kind {
		case xmlstream.EventStartElement:
			if err := s.flush(h, text, false); err != nil {
				return err
			}
			text, leaf = text[:0], true
			if err := s.checkError(h.Open(ev.Name.Local)); err != nil {
				return err
			}

		case xmlstream.EventEndElement:
			if err := s.flush(h, text, leaf); err != nil {
				return err
			}
			text, leaf = text[:0], false
			if err := s.checkError(h.Close(ev.Name.Local)); err != nil {
				return err
			}

		case xmlstream.EventCharData:
			text = append(text, ev.Text...)
		}
	}
}

// flush delivers pending character data to h. Unless the text is the content
// of a leaf element, whitespace-only text is discarded.
func (s *Stream) flush(h Handler, text []byte, leaf bool) error {
	if len(text) == 0 {
		return nil
	} else if !leaf && mem.TrimSpace(mem.B(text)).Len() == 0 {
		return nil
	}
	return s.checkError(h.Text(text))
}

func (s *Stream) checkError(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Pos.IsZero() {
		e.Pos = s.pos
	}
	return err
}
