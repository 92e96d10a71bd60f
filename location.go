// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package xmlrec

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // column offset in line, 1-based
}

// IsZero reports whether lc is the zero location, meaning "unknown".
func (lc LineCol) IsZero() bool { return lc.Line == 0 && lc.Column == 0 }

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }
