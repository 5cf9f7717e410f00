// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"io"
	"strings"

	"github.com/creachadair/jfeed"
)

var (
	// ErrExtraInput is reported by ParseSingle when the input contains more
	// than one value.
	ErrExtraInput = errors.New("extra input after value")

	// ErrNoInput is reported by ParseSingle when the input contains no value.
	ErrNoInput = errors.New("no value in input")
)

// A Parser is an incremental parser that constructs values from JSON text
// delivered in chunks of any size. Call Feed as input arrives, and Values to
// collect the top-level values completed so far. Call Finalize at the end of
// the input.
//
// If Feed, FeedString, Finalize, or ReadFrom reports a syntax error, or a
// handler reports an error, the parser is reset to its initial state,
// discarding any values not yet collected, so that it is ready for fresh
// input. An error reading input does not reset the parser.
type Parser struct {
	asm *Assembler
	mux jfeed.Mux
	st  *jfeed.Stream
}

// NewParser constructs a new empty Parser.
func NewParser() *Parser {
	p := &Parser{asm: NewAssembler()}
	p.mux.Add(p.asm)
	p.mux.Add(resetOnError{Handler: jfeed.Discard, asm: p.asm})
	p.st = jfeed.NewStream(&p.mux)
	return p
}

// resetOnError discards all the values of asm when the stream reports an
// error, including those waiting to be collected.
type resetOnError struct {
	jfeed.Handler
	asm *Assembler
}

func (r resetOnError) SyntaxError(error) { r.asm.Reset() }

// Handle adds h to receive the parser events used to construct values.
// Events are delivered to h after the parser has processed them, in the
// order handlers were added.
func (p *Parser) Handle(h jfeed.Handler) { p.mux.Add(h) }

// SetMaxDepth limits the nesting depth of objects and arrays to n.  If n ≤ 0,
// the depth is not limited. The default is no limit.
func (p *Parser) SetMaxDepth(n int) { p.st.SetMaxDepth(n) }

// Feed consumes the next chunk of input.
func (p *Parser) Feed(data []byte) error { return p.st.Feed(data) }

// FeedString consumes the next chunk of input.
func (p *Parser) FeedString(text string) error { return p.st.FeedString(text) }

// Finalize reports the end of the input.
func (p *Parser) Finalize() error { return p.st.Finalize() }

// ReadFrom feeds the contents of r to p until r reports io.EOF. It does not
// call Finalize. It returns the number of bytes read. After an error from r,
// the input already read remains in p.
func (p *Parser) ReadFrom(r io.Reader) (int64, error) { return p.st.ReadFrom(r) }

// Values returns the top-level values completed since the last call, in input
// order, and removes them from the parser.
func (p *Parser) Values() []Value { return p.asm.Values() }

// Reset discards all buffered input, partial values, and uncollected values.
func (p *Parser) Reset() { p.st.Reset(); p.asm.Reset() }

// Parse parses and returns the JSON values from r. In case of error, any
// complete values already parsed are returned along with the error.
func Parse(r io.Reader) ([]Value, error) {
	asm := NewAssembler()
	st := jfeed.NewStream(asm)
	if _, err := st.ReadFrom(r); err != nil {
		return asm.Values(), err
	}
	err := st.Finalize()
	return asm.Values(), err
}

// ParseString parses and returns the JSON values from text.
func ParseString(text string) ([]Value, error) { return Parse(strings.NewReader(text)) }

// ParseSingle parses and returns a single JSON value from r. If r contains
// data after the first value, apart from whitespace, ParseSingle returns the
// first value along with ErrExtraInput. If r contains no value, it reports
// ErrNoInput.
func ParseSingle(r io.Reader) (Value, error) {
	vs, err := Parse(r)
	if err != nil {
		return nil, err
	} else if len(vs) == 0 {
		return nil, ErrNoInput
	} else if len(vs) > 1 {
		return vs[0], ErrExtraInput
	}
	return vs[0], nil
}
