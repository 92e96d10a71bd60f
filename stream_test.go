// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package xmlrec_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/xmlrec"
	"github.com/creachadair/xmlrec/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`<a/>`, "Open a\nClose a"},
		{`<a></a>`, "Open a\nClose a"},

		{`<a><b>x</b></a>`, `
Open a
Open b
Text <x>
Close b
Close a`},

		// Formatting whitespace between elements is discarded, but the
		// content of a leaf is delivered intact.
		{"<?xml version=\"1.0\"?>\n<a>\n  <b>  </b>\n  <c> y </c>\n</a>\n", `
Open a
Open b
Text <  >
Close b
Open c
Text < y >
Close c
Close a`},

		// Non-space text outside a leaf is delivered.
		{`<a>hi<b>x</b>tail</a>`, `
Open a
Text <hi>
Open b
Text <x>
Close b
Text <tail>
Close a`},

		{`<a><b><![CDATA[x<y]]></b></a>`, `
Open a
Open b
Text <x<y>
Close b
Close a`},

		{`<a><b><c>1</c></b><b/></a>`, `
Open a
Open b
Open c
Text <1>
Close c
Close b
Open b
Close b
Close a`},
	}

	for _, test := range tests {
		st, err := xmlrec.NewStream(strings.NewReader(test.input))
		if err != nil {
			t.Fatalf("NewStream: %v", err)
		}
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamSyntaxErrors(t *testing.T) {
	tests := []string{
		`<a><b></a>`,
		`<a>`,
		`<a></b>`,
		`<a><<b/></a>`,
	}
	for _, input := range tests {
		st, err := xmlrec.NewStream(strings.NewReader(input))
		if err != nil {
			t.Fatalf("NewStream: %v", err)
		}
		err = st.Parse(new(testHandler))
		var serr *xmlrec.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input: %#q\nParse: got %v (%T), want *SyntaxError", input, err, err)
		}
	}
}

func TestStreamHandlerError(t *testing.T) {
	const input = "<person>\n<first>nils</first>\n<middle>x</middle>\n</person>"

	b, err := xmlrec.NewBuilder(testutil.FlatSchema)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	st, err := xmlrec.NewStream(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	err = st.Parse(b)

	var e *xmlrec.Error
	if !errors.As(err, &e) {
		t.Fatalf("Parse: got %v (%T), want *xmlrec.Error", err, err)
	}
	if e.Kind != xmlrec.UnknownField || e.Tag != "middle" {
		t.Errorf("Parse: got %v %q, want unknown field middle", e.Kind, e.Tag)
	}
	if e.Pos.Line != 3 {
		t.Errorf("Error line: got %d, want 3", e.Pos.Line)
	}
	if !strings.HasPrefix(err.Error(), "at 3:") {
		t.Errorf("Error text %q lacks location prefix", err.Error())
	}
}

func TestStreamStopsAtHandlerError(t *testing.T) {
	st, err := xmlrec.NewStream(strings.NewReader(`<a><b>x</b><c>y</c></a>`))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	stop := errors.New("stop")
	th := &testHandler{failOn: "Close b", err: stop}
	if err := st.Parse(th); err != stop {
		t.Errorf("Parse: got %v, want %v", err, stop)
	}
	const want = "Open a\nOpen b\nText <x>\nClose b"
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf bytes.Buffer

	failOn string // if set, fail with err after recording this event
	err    error
}

func (t *testHandler) pr(msg string, args ...any) error {
	line := fmt.Sprintf(msg, args...)
	t.buf.WriteString(line + "\n")
	if t.failOn != "" && line == t.failOn {
		return t.err
	}
	return nil
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) Open(tag string) error   { return t.pr("Open %s", tag) }
func (t *testHandler) Close(tag string) error  { return t.pr("Close %s", tag) }
func (t *testHandler) Text(text []byte) error  { return t.pr("Text <%s>", text) }
