// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfeed

import (
	"fmt"

	"github.com/creachadair/jfeed/internal/escape"
	"go4.org/mem"
)

// A TokenHandler receives tokens from a Tokenizer. If FeedToken reports an
// error, tokenizing stops and that error is returned to the caller.
type TokenHandler interface {
	FeedToken(Token) error
}

// TokenFunc adapts a function to the TokenHandler interface.
type TokenFunc func(Token) error

// FeedToken satisfies the TokenHandler interface.
func (f TokenFunc) FeedToken(tok Token) error { return f(tok) }

type lexMode byte

const (
	modeStart   lexMode = iota // between tokens
	modeString                 // inside a string
	modeEscape                 // after "\" in a string
	modeUnicode                // inside "\uXXXX"
	modeNumber                 // inside a number
	modeWord                   // inside true, false, or null
)

// numState records how much of the number grammar has been matched.
type numState byte

const (
	numSign     numState = iota // "-", want a digit
	numZero                     // leading "0"
	numInt                      // integer digits
	numPoint                    // ".", want a digit
	numFrac                     // fraction digits
	numExp                      // "e" or "E", want a sign or digit
	numExpSign                  // exponent sign, want a digit
	numExpDigit                 // exponent digits
)

// complete reports whether a number may end in state n.
func (n numState) complete() bool {
	return n == numZero || n == numInt || n == numFrac || n == numExpDigit
}

// next reports the state after c is appended to a number in state n, and
// whether c is permitted there.
func (n numState) next(c byte) (numState, bool) {
	switch n {
	case numSign:
		if c == '0' {
			return numZero, true
		} else if isDigit(c) {
			return numInt, true
		}
	case numZero, numInt, numFrac:
		if isDigit(c) && n != numZero {
			return n, true
		} else if c == '.' && n != numFrac {
			return numPoint, true
		} else if c == 'e' || c == 'E' {
			return numExp, true
		}
	case numPoint:
		if isDigit(c) {
			return numFrac, true
		}
	case numExp:
		if c == '+' || c == '-' {
			return numExpSign, true
		} else if isDigit(c) {
			return numExpDigit, true
		}
	case numExpSign, numExpDigit:
		if isDigit(c) {
			return numExpDigit, true
		}
	}
	return n, false
}

// A Tokenizer converts a stream of JSON text, delivered in chunks of any size,
// into a sequence of tokens. Each token is passed to a TokenHandler as soon as
// the lexeme that produces it is known to be complete.
//
// A lexeme may be split across any number of calls to Feed. Numbers and the
// constants true, false, and null are not complete until a delimiter
// (whitespace, a structural character, or Finalize) follows them.
//
// After an error, the Tokenizer reports the same error for every subsequent
// call until it is Reset.
type Tokenizer struct {
	h TokenHandler

	mode lexMode
	num  numState
	unit rune // partial "\u" code unit
	nhex int  // hex digits seen in unit

	buf []byte         // source text of the current number or constant
	str escape.Builder // decoded text of the current string
	err error

	off       int // absolute offset of the next byte
	line, col int // location of the next byte (0-based)

	start       int // offset of the current lexeme
	sline, scol int // location of the current lexeme (0-based)
}

// NewTokenizer constructs a Tokenizer that delivers tokens to h.
func NewTokenizer(h TokenHandler) *Tokenizer { return &Tokenizer{h: h} }

// Feed consumes the next chunk of input text.
func (t *Tokenizer) Feed(data []byte) error { return t.feed(mem.B(data)) }

// FeedString consumes the next chunk of input text.
func (t *Tokenizer) FeedString(text string) error { return t.feed(mem.S(text)) }

// Finalize reports the end of the input. A number or constant still pending
// is completed. It is an error if the input ends inside a string or with an
// incomplete number or constant.
func (t *Tokenizer) Finalize() error {
	if t.err != nil {
		return t.err
	}
	var err error
	switch t.mode {
	case modeNumber:
		if !t.num.complete() {
			err = t.numberError(0, false)
		} else {
			err = t.emitNumber()
		}
	case modeWord:
		err = t.emitWord()
	case modeString:
		err = t.failf("", "unterminated string")
	case modeEscape, modeUnicode:
		err = t.failf("", "unterminated escape sequence")
	}
	if err != nil {
		t.err = err
	}
	return err
}

// Reset discards all buffered input and any error, and restarts offsets from
// zero. The handler is retained.
func (t *Tokenizer) Reset() {
	*t = Tokenizer{h: t.h, buf: t.buf[:0], str: t.str}
	t.str.Reset()
}

// Offset reports the absolute offset of the next input byte.
func (t *Tokenizer) Offset() int { return t.off }

// Pos reports the line and column of the next input byte.
func (t *Tokenizer) Pos() LineCol { return LineCol{Line: t.line + 1, Column: t.col} }

// Err reports the error that stopped t, if any.
func (t *Tokenizer) Err() error { return t.err }

func (t *Tokenizer) feed(m mem.RO) error {
	if t.err != nil {
		return t.err
	}
	for i := 0; i < m.Len(); i++ {
		c := m.At(i)
		if err := t.step(c); err != nil {
			t.err = err
			return err
		}
		t.off++
		if c == '\n' {
			t.line++
			t.col = 0
		} else {
			t.col++
		}
	}
	return nil
}

// step advances the state machine by one input byte.
func (t *Tokenizer) step(c byte) error {
	switch t.mode {
	case modeString:
		return t.stepString(c)
	case modeEscape:
		return t.stepEscape(c)
	case modeUnicode:
		return t.stepUnicode(c)
	case modeNumber:
		if next, ok := t.num.next(c); ok {
			t.num = next
			t.buf = append(t.buf, c)
			return nil
		} else if !t.num.complete() || (t.num == numZero && isDigit(c)) {
			return t.numberError(c, true)
		} else if !isDelim(c) {
			return t.failf(string(t.buf)+string(c), "unexpected %q after number", c)
		}
		if err := t.emitNumber(); err != nil {
			return err
		}
	case modeWord:
		if isNameByte(c) {
			t.buf = append(t.buf, c)
			return t.checkWord()
		} else if !isDelim(c) {
			return t.failf(string(t.buf)+string(c), "unexpected %q after %q", c, t.buf)
		}
		if err := t.emitWord(); err != nil {
			return err
		}
	}
	return t.stepStart(c)
}

// stepStart handles c when no lexeme is in progress.
func (t *Tokenizer) stepStart(c byte) error {
	t.start, t.sline, t.scol = t.off, t.line, t.col
	switch {
	case isSpace(c):
		return nil
	case c == '"':
		t.mode = modeString
		t.str.Reset()
		return nil
	case c == '-' || isDigit(c):
		t.mode = modeNumber
		switch c {
		case '-':
			t.num = numSign
		case '0':
			t.num = numZero
		default:
			t.num = numInt
		}
		t.buf = append(t.buf[:0], c)
		return nil
	case isNameByte(c):
		t.mode = modeWord
		t.buf = append(t.buf[:0], c)
		return t.checkWord()
	}
	if k := delimKind[c]; k != Invalid {
		return t.emit(Token{Kind: k}, t.off+1)
	}
	return t.failf(string(c), "unexpected %q", c)
}

func (t *Tokenizer) stepString(c byte) error {
	switch {
	case c == '"':
		t.mode = modeStart
		s, err := t.str.Text()
		if err != nil {
			return t.failf("", "%v", err)
		}
		return t.emit(Token{Kind: StringLiteral, Value: s}, t.off+1)
	case c == '\\':
		t.mode = modeEscape
	case c < ' ':
		return t.failf(string(c), "unescaped control %q in string", c)
	default:
		t.str.AddByte(c)
	}
	return nil
}

func (t *Tokenizer) stepEscape(c byte) error {
	if c == 'u' {
		t.mode = modeUnicode
		t.unit, t.nhex = 0, 0
		return nil
	} else if !t.str.AddEscape(c) {
		return t.failf(`\`+string(c), "invalid %q after escape", c)
	}
	t.mode = modeString
	return nil
}

func (t *Tokenizer) stepUnicode(c byte) error {
	v, ok := escape.HexDigit(c)
	if !ok {
		return t.failf(string(c), "invalid Unicode escape: not a hex digit: %q", c)
	}
	t.unit = t.unit<<4 | v
	t.nhex++
	if t.nhex == 4 {
		t.str.AddUnit(t.unit)
		t.mode = modeString
	}
	return nil
}

// numberError reports a malformed number. If next is true, c is the byte that
// could not be consumed.
func (t *Tokenizer) numberError(c byte, next bool) error {
	frag := string(t.buf)
	if next {
		frag += string(c)
	}
	switch t.num {
	case numSign:
		return t.failf(frag, "want digit after sign in %q", frag)
	case numZero:
		return t.failf(frag, "extra leading zeroes in %q", frag)
	case numPoint:
		return t.failf(frag, "no digits after decimal point in %q", frag)
	default:
		return t.failf(frag, "missing exponent digits in %q", frag)
	}
}

func (t *Tokenizer) emitNumber() error {
	t.mode = modeStart
	text := mem.B(t.buf)
	tok := Token{Kind: NumberLiteral, Text: text.StringCopy()}
	if t.num == numZero || t.num == numInt {
		if z, err := mem.ParseInt(text, 10, 64); err == nil {
			tok.Value = z
		}
	}
	if tok.Value == nil {
		// Fractions, exponents, and integers too large for int64.
		f, err := mem.ParseFloat(text, 64)
		if err != nil {
			return t.failf(tok.Text, "number %s out of range", tok.Text)
		}
		tok.Value = f
	}
	return t.emit(tok, t.off)
}

var keywords = [...]struct {
	word  mem.RO
	kind  Kind
	value any
}{
	{mem.S("true"), BooleanLiteral, true},
	{mem.S("false"), BooleanLiteral, false},
	{mem.S("null"), NullLiteral, nil},
}

// checkWord reports an error if the buffered text is not a prefix of any of
// the constant names.
func (t *Tokenizer) checkWord() error {
	cur := mem.B(t.buf)
	for _, kw := range keywords {
		if mem.HasPrefix(kw.word, cur) {
			return nil
		}
	}
	return t.failf(string(t.buf), "unknown constant %q", t.buf)
}

func (t *Tokenizer) emitWord() error {
	t.mode = modeStart
	cur := mem.B(t.buf)
	for _, kw := range keywords {
		if kw.word.Equal(cur) {
			return t.emit(Token{Kind: kw.kind, Value: kw.value, Text: kw.word.StringCopy()}, t.off)
		}
	}
	return t.failf(string(t.buf), "incomplete constant %q", t.buf)
}

// emit delivers tok, which spans from the start of the current lexeme to end.
func (t *Tokenizer) emit(tok Token, end int) error {
	tok.Span = Span{Pos: t.start, End: end}
	tok.Pos = LineCol{Line: t.sline + 1, Column: t.scol}
	return t.h.FeedToken(tok)
}

func (t *Tokenizer) failf(frag, msg string, args ...any) error {
	return &LexicalError{
		Offset:   t.off,
		Pos:      t.Pos(),
		Fragment: frag,
		Message:  fmt.Sprintf(msg, args...),
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == '\t'
}

func isDelim(c byte) bool    { return isSpace(c) || delimKind[c] != Invalid }
func isDigit(c byte) bool    { return '0' <= c && c <= '9' }
func isNameByte(c byte) bool { return c >= 'a' && c <= 'z' }
