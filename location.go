package jfeed

import "fmt"

// A Span describes a contiguous span of the input, as absolute byte offsets
// counted from the most recent reset.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// IsValid reports whether lc refers to a location in the input.  The zero
// LineCol is used for tokens that did not come from a Tokenizer.
func (lc LineCol) IsValid() bool { return lc.Line > 0 }
