// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmlrec_test

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/xmlrec"
	"github.com/creachadair/xmlrec/internal/testutil"
)

// catalogInput generates a catalog document with n entries.
func catalogInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("<catalog>\n")
	for i := range n {
		fmt.Fprintf(&buf, `  <cd>
    <title>Title %[1]d</title>
    <artist>Artist %[1]d</artist>
    <price>%[1]d.90</price>
    <year>%[2]d</year>
    <sales>%[3]d</sales>
    <remastered>%[4]v</remastered>
  </cd>
`, i, 1950+i%70, int64(i)*1000003, i%2 == 0)
	}
	buf.WriteString("  <owner>bench</owner>\n</catalog>\n")
	return buf.Bytes()
}

func BenchmarkDecode(b *testing.B) {
	input := catalogInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Tokens", func(b *testing.B) {
		for b.Loop() {
			dec := xml.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Stream", func(b *testing.B) {
		for b.Loop() {
			st, err := xmlrec.NewStream(bytes.NewReader(input))
			if err != nil {
				b.Fatalf("NewStream: %v", err)
			}
			if err := st.Parse(discard{}); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})

	b.Run("Record", func(b *testing.B) {
		for b.Loop() {
			rec, err := xmlrec.Unmarshal(input, testutil.CatalogSchema)
			if err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
			if v, _ := rec.Get("cd"); len(v.([]*xmlrec.Record)) != 2000 {
				b.Fatalf("Wrong element count: %d", len(v.([]*xmlrec.Record)))
			}
		}
	})
}

type discard struct{}

func (discard) Open(string) error  { return nil }
func (discard) Close(string) error { return nil }
func (discard) Text([]byte) error  { return nil }
