// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfeed

import "fmt"

// State is a state of the grammar state machine. The Parser keeps one State
// for each open object or array.
type State byte

// Constants defining the valid State values.
const (
	ArrayStart           State = iota // after "[", want a value or "]"
	ArrayValue                        // want an array element
	ArrayValueSeparator               // after an element, want "," or "]"
	ObjectStart                       // after "{", want a key or "}"
	ObjectKey                         // want a member key
	ObjectKeySeparator                // after a key, want ":"
	ObjectValue                       // after ":", want a member value
	ObjectValueSeparator              // after a member, want "," or "}"
)

var stateStr = [...]string{
	ArrayStart:           "ARRAY_START",
	ArrayValue:           "ARRAY_VALUE",
	ArrayValueSeparator:  "ARRAY_VALUE_SEPARATOR",
	ObjectStart:          "OBJECT_START",
	ObjectKey:            "OBJECT_KEY",
	ObjectKeySeparator:   "OBJECT_KEY_SEPARATOR",
	ObjectValue:          "OBJECT_VALUE",
	ObjectValueSeparator: "OBJECT_VALUE_SEPARATOR",
}

func (s State) String() string {
	v := int(s)
	if v >= len(stateStr) {
		return "INVALID_STATE"
	}
	return stateStr[v]
}

// A Handler handles events from a Parser. If a method reports an error,
// parsing stops and that error is returned to the caller.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, and that each ObjectKey is followed by exactly one value (either a
// Value or a balanced Begin/End pair) before the next key or EndObject.
type Handler interface {
	// Begin a new object, whose open brace is tok.
	BeginObject(tok Token) error

	// Report the key of the next member of the innermost open object.
	// The decoded key is tok.Value, a string.
	ObjectKey(tok Token) error

	// End the most-recently-opened object, whose close brace is tok.
	EndObject(tok Token) error

	// Begin a new array, whose open bracket is tok.
	BeginArray(tok Token) error

	// End the most-recently-opened array, whose close bracket is tok.
	EndArray(tok Token) error

	// Report a string, number, boolean, or null value.
	Value(tok Token) error
}

// ErrorHandler is an optional interface that a Handler may implement to be
// notified of errors. A Stream calls SyntaxError with each error that stops
// parsing, after resetting its state and before returning the error.
type ErrorHandler interface {
	SyntaxError(err error)
}

// A Parser is a stack-based state machine that consumes tokens one at a time,
// checks them against the JSON grammar, and delivers events to a Handler.
// Each token is processed as a single state transition, so the input may
// stop and resume between any two tokens at any depth of nesting.
//
// A Parser accepts any number of consecutive top-level values.
// After an error, the Parser reports the same error for every subsequent
// call until it is Reset.
type Parser struct {
	h   Handler
	stk []State
	max int
	err error
}

// NewParser constructs a Parser that delivers events to h.
func NewParser(h Handler) *Parser { return &Parser{h: h} }

// SetMaxDepth limits the nesting depth of objects and arrays to n.  If n ≤ 0,
// the depth is not limited. The default is no limit.
func (p *Parser) SetMaxDepth(n int) { p.max = max(n, 0) }

// Reset discards the state stack and any error.
func (p *Parser) Reset() { p.stk = p.stk[:0]; p.err = nil }

// Depth reports the number of currently-open objects and arrays.
func (p *Parser) Depth() int { return len(p.stk) }

// State reports the state on top of the stack, and false if the stack is
// empty.
func (p *Parser) State() (State, bool) {
	if len(p.stk) == 0 {
		return 0, false
	}
	return p.stk[len(p.stk)-1], true
}

// Err reports the error that stopped p, if any.
func (p *Parser) Err() error { return p.err }

// Feed processes each of tokens in order, stopping at the first error.
func (p *Parser) Feed(tokens ...Token) error {
	for _, tok := range tokens {
		if err := p.FeedToken(tok); err != nil {
			return err
		}
	}
	return nil
}

// FeedToken advances the state machine by one token. It satisfies the
// TokenHandler interface, so a Parser can consume the output of a Tokenizer.
func (p *Parser) FeedToken(tok Token) error {
	if p.err != nil {
		return p.err
	}
	if err := p.dispatch(tok); err != nil {
		p.err = err
		return err
	}
	return nil
}

// Finalize reports the end of the token stream. It is an error if any object
// or array is still open.
func (p *Parser) Finalize() error {
	if p.err != nil {
		return p.err
	}
	if s, ok := p.State(); ok {
		p.err = &GrammarError{
			State:   s,
			Depth:   len(p.stk),
			Message: fmt.Sprintf("token stream ended unexpectedly in state %q", s.String()),
		}
	}
	return p.err
}

func (p *Parser) dispatch(tok Token) error {
	s, ok := p.State()
	if !ok {
		return p.value(tok)
	}
	switch s {
	case ObjectStart:
		if tok.Kind == BraceClose {
			return p.closeObject(tok)
		}
		p.set(ObjectKey)
		return p.dispatch(tok)

	case ObjectKey:
		if tok.Kind != StringLiteral {
			return p.unexpected(tok)
		}
		p.set(ObjectKeySeparator)
		return p.h.ObjectKey(tok)

	case ObjectKeySeparator:
		if tok.Kind != Colon {
			return p.unexpected(tok)
		}
		p.set(ObjectValue)
		return nil

	case ObjectValueSeparator:
		switch tok.Kind {
		case BraceClose:
			return p.closeObject(tok)
		case Comma:
			p.set(ObjectKey)
			return nil
		}
		return p.unexpected(tok)

	case ArrayStart:
		if tok.Kind == BracketClose {
			return p.closeArray(tok)
		}
		p.set(ArrayValue)
		return p.dispatch(tok)

	case ArrayValueSeparator:
		switch tok.Kind {
		case BracketClose:
			return p.closeArray(tok)
		case Comma:
			p.set(ArrayValue)
			return nil
		}
		return p.unexpected(tok)
	}

	// ArrayValue and ObjectValue want a value, as at the top level.
	return p.value(tok)
}

// value handles a token where a value is expected.
func (p *Parser) value(tok Token) error {
	switch tok.Kind {
	case BraceOpen:
		if err := p.push(ObjectStart, tok); err != nil {
			return err
		}
		return p.h.BeginObject(tok)

	case BracketOpen:
		if err := p.push(ArrayStart, tok); err != nil {
			return err
		}
		return p.h.BeginArray(tok)

	case StringLiteral, NumberLiteral, BooleanLiteral, NullLiteral:
		p.endValue()
		return p.h.Value(tok)
	}
	return p.unexpected(tok)
}

func (p *Parser) closeObject(tok Token) error {
	p.pop()
	p.endValue()
	return p.h.EndObject(tok)
}

func (p *Parser) closeArray(tok Token) error {
	p.pop()
	p.endValue()
	return p.h.EndArray(tok)
}

// endValue records that a value has been completed in the current container.
// At the top level there is nothing to record.
func (p *Parser) endValue() {
	switch s, _ := p.State(); {
	case len(p.stk) == 0:
		// top-level value
	case s == ArrayValue:
		p.set(ArrayValueSeparator)
	case s == ObjectValue:
		p.set(ObjectValueSeparator)
	}
}

func (p *Parser) set(s State) { p.stk[len(p.stk)-1] = s }

func (p *Parser) pop() { p.stk = p.stk[:len(p.stk)-1] }

func (p *Parser) push(s State, tok Token) error {
	if p.max > 0 && len(p.stk) >= p.max {
		return p.grammarError(tok, fmt.Sprintf("nesting depth exceeds %d", p.max))
	}
	p.stk = append(p.stk, s)
	return nil
}

func (p *Parser) unexpected(tok Token) error {
	if s, ok := p.State(); ok {
		return p.grammarError(tok, fmt.Sprintf("unexpected token %q in state %q", tok.Kind.String(), s.String()))
	}
	return p.grammarError(tok, fmt.Sprintf("unexpected token %q (no state)", tok.Kind.String()))
}

func (p *Parser) grammarError(tok Token, msg string) error {
	s, _ := p.State()
	return &GrammarError{
		Token:   tok.Kind,
		State:   s,
		Depth:   len(p.stk),
		Offset:  tok.Span.Pos,
		Pos:     tok.Pos,
		Message: msg,
	}
}
