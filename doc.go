// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package xmlrec converts XML documents into schema-typed records.
//
// # Schemas
//
// The shape of the output is described by a schema tree (see package
// [github.com/creachadair/xmlrec/schema]): records with named fields, arrays
// of records, and scalar leaves of kind boolean, int, long, float, double,
// or string. Schemas may be built in code, or loaded from an Avro schema file
// with package [github.com/creachadair/xmlrec/schema/avsc].
//
// # Decoding
//
// The simplest way to convert a document is Decode:
//
//	rec, err := xmlrec.Decode(input, personSchema)
//	if err != nil {
//	   log.Fatalf("Decode failed: %v", err)
//	}
//	name, _ := rec.Get("firstname")
//
// # Handlers
//
// Conversion is driven by element events. The Handler interface accepts the
// events of a single document:
//
//	Method | Description
//	------ | ----------------------------------------
//	Open   | start of an element <tag>
//	Text   | character data inside an element
//	Close  | end of an element </tag>
//
// A Builder is a Handler that constructs a Record. A Stream reads XML from an
// io.Reader and delivers its events to a Handler:
//
//	b, err := xmlrec.NewBuilder(personSchema)
//	...
//	s, err := xmlrec.NewStream(input)
//	...
//	if err := s.Parse(b); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	rec, err := b.Record()
//
// Any other event source may drive a Builder directly, provided it delivers
// properly nested events.
//
// # Elements and fields
//
// The root element has the root schema, regardless of its tag. Every nested
// element names a field of the enclosing record. The elements of an array
// field are written by repeating the field's tag, once per element:
//
//	<siblings><name>iona</name></siblings>
//	<siblings><name>liz</name></siblings>
//
// When the element record has exactly one field, the elements may instead be
// written as repetitions of that field inside a single wrapper:
//
//	<siblings><name>iona</name><name>liz</name></siblings>
//
// Both forms produce an array of two records.
//
// # Output
//
// A Record implements json.Marshaler and yaml.Marshaler, writing its fields in
// schema order. Use Encode for control over the format, indentation, and key
// names of the output:
//
//	err := rec.Encode(os.Stdout, &xmlrec.EncodeOptions{Format: xmlrec.YAML})
//
// # Errors
//
// A conversion stops at the first error. Errors reported by a Builder have
// concrete type *Error, and may be matched by kind with errors.Is, for example
// errors.Is(err, xmlrec.ErrUnknownField). Malformed XML is reported by a
// Stream as a *SyntaxError.
package xmlrec
