// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package avsc loads record schemas from Avro schema definitions.
//
// Only the subset of Avro that the converter can populate is accepted: the
// top-level type must be a record, fields may be records, arrays of records,
// or one of the primitive types boolean, int, long, float, double, and
// string. A record defined once may be referred to later by its simple or
// fully-qualified name. Unions, maps, enums, fixed, bytes, and null are
// rejected.
//
// The input may contain comments and trailing commas, as permitted by JWCC.
package avsc

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creachadair/xmlrec/schema"
	"github.com/goccy/go-json"
	"github.com/tailscale/hujson"
)

var primitives = map[string]schema.Kind{
	"boolean": schema.Boolean,
	"int":     schema.Int32,
	"long":    schema.Int64,
	"float":   schema.Float32,
	"double":  schema.Float64,
	"string":  schema.String,
}

// Parse parses an Avro schema definition from data.
func Parse(data []byte) (*schema.Record, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid schema text: %w", err)
	}
	var v any
	if err := json.Unmarshal(std, &v); err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}
	p := &parser{named: make(map[string]*schema.Record)}
	n, err := p.parse(v, "")
	if err != nil {
		return nil, err
	}
	rec, ok := n.(*schema.Record)
	if !ok {
		return nil, fmt.Errorf("top-level type must be a record, not %v", n)
	}
	if err := schema.Validate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ParseFile reads and parses the Avro schema definition in the named file.
func ParseFile(path string) (*schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// MustParse parses s as an Avro schema definition, and panics on error.
func MustParse(s string) *schema.Record {
	rec, err := Parse([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("avsc.MustParse: %v", err))
	}
	return rec
}

type parser struct {
	named map[string]*schema.Record // simple and full names of defined records
}

// parse converts a decoded JSON schema value into a node. The namespace ns is
// inherited by records that do not declare their own.
func (p *parser) parse(v any, ns string) (schema.Node, error) {
	switch t := v.(type) {
	case string:
		return p.resolve(t, ns)
	case map[string]any:
		return p.parseObject(t, ns)
	case []any:
		return nil, errors.New("union types are not supported")
	case nil:
		return nil, errors.New("missing type")
	default:
		return nil, fmt.Errorf("invalid type %v", v)
	}
}

func (p *parser) resolve(name, ns string) (schema.Node, error) {
	if k, ok := primitives[name]; ok {
		return schema.Of(k), nil
	}
	switch name {
	case "null", "bytes":
		return nil, fmt.Errorf("type %q is not supported", name)
	}
	if ns != "" && !strings.Contains(name, ".") {
		if r, ok := p.named[ns+"."+name]; ok {
			return r, nil
		}
	}
	if r, ok := p.named[name]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

func (p *parser) parseObject(obj map[string]any, ns string) (schema.Node, error) {
	tv, ok := obj["type"]
	if !ok {
		return nil, errors.New("object has no type")
	}
	tname, ok := tv.(string)
	if !ok {
		// An object whose type is itself a complex type, e.g. {"type": {...}}.
		return p.parse(tv, ns)
	}
	switch tname {
	case "record":
		return p.parseRecord(obj, ns)
	case "array":
		elt, err := p.parse(obj["items"], ns)
		if err != nil {
			return nil, fmt.Errorf("array items: %w", err)
		}
		rec, ok := elt.(*schema.Record)
		if !ok {
			return nil, fmt.Errorf("array items must be a record, not %v", elt)
		}
		return schema.ArrayOf(rec), nil
	case "map", "enum", "fixed", "error":
		return nil, fmt.Errorf("type %q is not supported", tname)
	}
	return p.resolve(tname, ns)
}

func (p *parser) parseRecord(obj map[string]any, ns string) (*schema.Record, error) {
	name, _ := obj["name"].(string)
	if name == "" {
		return nil, errors.New("record has no name")
	}
	if s, ok := obj["namespace"].(string); ok {
		ns = s
	}
	full := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ns, name = name[:i], name[i+1:]
	} else if ns != "" {
		full = ns + "." + name
	}
	if _, ok := p.named[full]; ok {
		return nil, fmt.Errorf("record %q is already defined", full)
	}

	raw, ok := obj["fields"].([]any)
	if !ok {
		return nil, fmt.Errorf("record %q: missing fields", full)
	}

	// Register the record before its fields are parsed, so that a
	// self-reference resolves and is then rejected by validation as a cycle.
	rec := &schema.Record{Name: name}
	p.named[full] = rec
	if _, ok := p.named[name]; !ok {
		p.named[name] = rec
	}

	fields := make([]schema.Field, 0, len(raw))
	for i, fv := range raw {
		fobj, ok := fv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %q: field %d is not an object", full, i)
		}
		fname, _ := fobj["name"].(string)
		ftype, err := p.parse(fobj["type"], ns)
		if err != nil {
			return nil, fmt.Errorf("record %q: field %q: %w", full, fname, err)
		}
		fields = append(fields, schema.Field{Name: fname, Type: ftype})
	}
	built, err := schema.NewRecord(name, fields...)
	if err != nil {
		return nil, err
	}
	*rec = *built
	return rec, nil
}
