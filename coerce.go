// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import (
	"fmt"
	"math"

	"github.com/creachadair/xmlrec/schema"

	"go4.org/mem"
)

// Coerce converts the raw text of a leaf element to a value of the given
// scalar kind. The concrete type of the result is bool, int32, int64,
// float32, float64, or string according to kind.
//
// Boolean coercion never fails: the text "true" or "1" is true, and anything
// else is false. Numeric text may be surrounded by whitespace; otherwise a
// syntax error or overflow is reported as an *Error of kind MalformedNumber.
// Floats must be finite, in decimal or exponential notation.
// String text is returned as-is.
func Coerce(kind schema.Kind, text []byte) (any, error) {
	m := mem.B(text)
	switch kind {
	case schema.Boolean:
		return m.EqualString("true") || m.EqualString("1"), nil

	case schema.Int32:
		v, err := mem.ParseInt(mem.TrimSpace(m), 10, 32)
		if err != nil {
			return nil, malformed(kind, text, err)
		}
		return int32(v), nil

	case schema.Int64:
		v, err := mem.ParseInt(mem.TrimSpace(m), 10, 64)
		if err != nil {
			return nil, malformed(kind, text, err)
		}
		return v, nil

	case schema.Float32:
		v, err := parseFloat(kind, text, 32)
		if err != nil {
			return nil, err
		}
		return float32(v), nil

	case schema.Float64:
		v, err := parseFloat(kind, text, 64)
		if err != nil {
			return nil, err
		}
		return v, nil

	case schema.String:
		return m.StringCopy(), nil

	default:
		return nil, fmt.Errorf("unsupported scalar kind %v", kind)
	}
}

// parseFloat parses decimal or exponential notation. Underscores, hex
// mantissas, and non-finite values are rejected.
func parseFloat(kind schema.Kind, text []byte, bits int) (float64, error) {
	m := mem.TrimSpace(mem.B(text))
	for i := range m.Len() {
		switch m.At(i) {
		case '_', 'x', 'X':
			return 0, malformed(kind, text, nil)
		}
	}
	v, err := mem.ParseFloat(m, bits)
	if err != nil {
		return 0, malformed(kind, text, err)
	} else if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, malformed(kind, text, nil)
	}
	return v, nil
}

func malformed(kind schema.Kind, text []byte, err error) *Error {
	return newError(MalformedNumber, "", err, "invalid %v %q", kind, text)
}
