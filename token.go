// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfeed

import (
	"fmt"
	"strconv"
)

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid        Kind = iota // invalid token
	BraceOpen                  // left brace "{"
	BraceClose                 // right brace "}"
	BracketOpen                // left square bracket "["
	BracketClose               // right square bracket "]"
	Colon                      // colon ":"
	Comma                      // comma ","
	StringLiteral              // quoted string
	NumberLiteral              // integer or floating-point number
	BooleanLiteral             // constant: true or false
	NullLiteral                // constant: null
)

var kindStr = [...]string{
	Invalid:        "INVALID",
	BraceOpen:      "BRACE_OPEN",
	BraceClose:     "BRACE_CLOSE",
	BracketOpen:    "BRACKET_OPEN",
	BracketClose:   "BRACKET_CLOSE",
	Colon:          "COLON",
	Comma:          "COMMA",
	StringLiteral:  "STRING_LITERAL",
	NumberLiteral:  "NUMBER_LITERAL",
	BooleanLiteral: "BOOLEAN_LITERAL",
	NullLiteral:    "NULL_LITERAL",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsLiteral reports whether k is one of the literal value kinds.
func (k Kind) IsLiteral() bool { return k >= StringLiteral && k <= NullLiteral }

// A Token is a single lexical unit of JSON text.
//
// The concrete type of Value is determined by Kind:
//
//	Kind            | Value
//	--------------- | ------------------------------------------
//	StringLiteral   | string, with escapes decoded
//	NumberLiteral   | int64 if the number is integral and fits, else float64
//	BooleanLiteral  | bool
//	NullLiteral     | nil
//	(structural)    | nil
type Token struct {
	Kind  Kind
	Value any
	Text  string // the source text of a number or constant, otherwise empty

	Span Span    // location of the lexeme in the input
	Pos  LineCol // line and column of the start of the lexeme
}

// String renders the token in a compact human-readable form.
func (t Token) String() string {
	switch t.Kind {
	case StringLiteral:
		s, _ := t.Value.(string)
		return t.Kind.String() + " " + strconv.Quote(s)
	case NumberLiteral, BooleanLiteral, NullLiteral:
		if t.Text != "" {
			return t.Kind.String() + " " + t.Text
		}
		return fmt.Sprintf("%v %v", t.Kind, t.Value)
	default:
		return t.Kind.String()
	}
}

var delimKind = [256]Kind{
	'{': BraceOpen,
	'}': BraceClose,
	'[': BracketOpen,
	']': BracketClose,
	':': Colon,
	',': Comma,
}

// Delim returns a structural token for one of the characters "{}[]:,".
// For any other character it returns a token of kind Invalid.
func Delim(c byte) Token { return Token{Kind: delimKind[c]} }

// Literal returns a literal token carrying v. The kind of the token is chosen
// from the type of v: string, bool, nil, or a Go integer or floating-point
// type. Integers are normalized to int64 and float32 to float64. For any other
// type Literal returns a token of kind Invalid.
func Literal(v any) Token {
	switch t := v.(type) {
	case nil:
		return Token{Kind: NullLiteral}
	case bool:
		return Token{Kind: BooleanLiteral, Value: t}
	case string:
		return Token{Kind: StringLiteral, Value: t}
	case int:
		return Token{Kind: NumberLiteral, Value: int64(t)}
	case int32:
		return Token{Kind: NumberLiteral, Value: int64(t)}
	case int64:
		return Token{Kind: NumberLiteral, Value: t}
	case float32:
		return Token{Kind: NumberLiteral, Value: float64(t)}
	case float64:
		return Token{Kind: NumberLiteral, Value: t}
	default:
		return Token{Kind: Invalid, Value: v}
	}
}
