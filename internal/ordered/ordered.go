// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ordered implements an object type whose members are encoded as
// JSON and YAML in a fixed order.
package ordered

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// A Member is a single key-value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// An Object is a sequence of members, encoded as a JSON object or YAML
// mapping with keys in sequence order.
type Object []Member

// MarshalJSON implements the json.Marshaler interface.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (o Object) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, m := range o {
		key, val := new(yaml.Node), new(yaml.Node)
		if err := key.Encode(m.Key); err != nil {
			return nil, err
		}
		if err := val.Encode(m.Value); err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Key, err)
		}
		out.Content = append(out.Content, key, val)
	}
	return out, nil
}
