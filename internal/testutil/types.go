// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import "github.com/creachadair/xmlrec/schema"

func field(name string, t schema.Node) schema.Field { return schema.Field{Name: name, Type: t} }

var str = schema.Of(schema.String)

// FlatSchema is a record of two string fields.
var FlatSchema = schema.MustRecord("flat",
	field("first", str),
	field("last", str),
)

// FlatXML is a document matching FlatSchema.
const FlatXML = `<person><first>nils</first><last>bouchardon</last></person>`

// NestedSchema is a record with a nested address record.
var NestedSchema = schema.MustRecord("nested",
	field("firstname", str),
	field("lastname", str),
	field("address", schema.MustRecord("address",
		field("streetaddress", str),
		field("city", str),
	)),
)

// NestedXML is a document matching NestedSchema.
const NestedXML = `<?xml version="1.0" encoding="UTF-8"?>
<person>
  <firstname>nils</firstname>
  <lastname>bouchardon</lastname>
  <address>
    <streetaddress>champs elysees</streetaddress>
    <city>paris</city>
  </address>
</person>
`

// SiblingSchema is the single-field element record of ArraySchema.
var SiblingSchema = schema.MustRecord("sibling", field("name", str))

// ArraySchema is a record with an array of single-field records.
var ArraySchema = schema.MustRecord("witharray",
	field("firstname", str),
	field("lastname", str),
	field("siblings", schema.ArrayOf(SiblingSchema)),
)

// ArrayXML is a document matching ArraySchema, with one element per
// repetition of the array tag.
const ArrayXML = `<person>
  <firstname>nils</firstname>
  <lastname>bouchardon</lastname>
  <siblings><name>iona</name></siblings>
  <siblings><name>liz</name></siblings>
</person>`

// PackedArrayXML is equivalent to ArrayXML, with all the elements of the
// array repeated inside a single wrapper.
const PackedArrayXML = `<person>
  <firstname>nils</firstname>
  <lastname>bouchardon</lastname>
  <siblings>
    <name>iona</name>
    <name>liz</name>
  </siblings>
</person>`

// CatalogSchema describes a catalog of CDs, exercising every scalar kind.
var CatalogSchema = schema.MustRecord("catalog",
	field("cd", schema.ArrayOf(schema.MustRecord("cd",
		field("title", str),
		field("artist", str),
		field("country", str),
		field("company", str),
		field("price", schema.Of(schema.Float32)),
		field("year", schema.Of(schema.Int32)),
		field("sales", schema.Of(schema.Int64)),
		field("rating", schema.Of(schema.Float64)),
		field("remastered", schema.Of(schema.Boolean)),
	))),
	field("owner", str),
)

// CatalogXML is a document matching CatalogSchema.
const CatalogXML = `<catalog>
  <cd>
    <title>Empire Burlesque</title>
    <artist>Bob Dylan</artist>
    <country>USA</country>
    <company>Columbia</company>
    <price>10.90</price>
    <year>1985</year>
    <sales>3000000000</sales>
    <rating>4.25</rating>
    <remastered>true</remastered>
  </cd>
  <cd>
    <title>Hide your heart</title>
    <artist>Bonnie Tyler</artist>
    <country>UK</country>
    <company>CBS Records</company>
    <price>9.90</price>
    <year>1988</year>
    <sales>12</sales>
    <rating>3.5</rating>
    <remastered>0</remastered>
  </cd>
  <owner>nils</owner>
</catalog>`
