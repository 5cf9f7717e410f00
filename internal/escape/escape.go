// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes the contents of JSON strings whose escape sequences
// may arrive one byte at a time.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrInvalidUTF8 is reported by Builder.Text for string contents that are
// not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in string")

var simpleEsc = [256]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// A Builder accumulates the decoded contents of a JSON string.
// The zero value is ready for use.
//
// A high surrogate delivered by AddUnit is held until the next code unit
// arrives. If that unit is the matching low surrogate, the pair is combined;
// otherwise the unpaired surrogate is replaced by U+FFFD.
type Builder struct {
	buf  []byte
	high rune // pending high surrogate, or 0
}

// Reset discards the contents of b, retaining its storage.
func (b *Builder) Reset() { b.buf = b.buf[:0]; b.high = 0 }

// Len reports the number of decoded bytes in b, not counting a pending
// surrogate.
func (b *Builder) Len() int { return len(b.buf) }

// AddByte appends a single unescaped byte of string content.
func (b *Builder) AddByte(c byte) {
	b.flush()
	b.buf = append(b.buf, c)
}

// AddEscape appends the character denoted by the single-character escape
// "\c", and reports whether c is a valid escape. The "\u" escape is not a
// single-character escape; use AddUnit for its decoded value.
func (b *Builder) AddEscape(c byte) bool {
	d := simpleEsc[c]
	if d == 0 {
		return false
	}
	b.AddByte(d)
	return true
}

// AddUnit appends the UTF-16 code unit u decoded from a "\uXXXX" escape.
func (b *Builder) AddUnit(u rune) {
	if b.high != 0 {
		hi := b.high
		b.high = 0
		if isLow(u) {
			b.addRune(utf16.DecodeRune(hi, u))
			return
		}
		b.addRune(utf8.RuneError)
	}
	switch {
	case isHigh(u):
		b.high = u
	case isLow(u):
		b.addRune(utf8.RuneError)
	default:
		b.addRune(u)
	}
}

// Text returns the decoded contents of b. It reports ErrInvalidUTF8 if the
// contents are not valid UTF-8.
func (b *Builder) Text() (string, error) {
	b.flush()
	if !mem.ValidUTF8(mem.B(b.buf)) {
		return "", ErrInvalidUTF8
	}
	return string(b.buf), nil
}

func (b *Builder) flush() {
	if b.high != 0 {
		b.high = 0
		b.addRune(utf8.RuneError)
	}
}

func (b *Builder) addRune(r rune) { b.buf = utf8.AppendRune(b.buf, r) }

func isHigh(u rune) bool { return 0xd800 <= u && u < 0xdc00 }
func isLow(u rune) bool  { return 0xdc00 <= u && u < 0xe000 }

// HexDigit reports the value of the hexadecimal digit c, and whether c is a
// valid hexadecimal digit.
func HexDigit(c byte) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0'), true
	case 'a' <= c && c <= 'f':
		return rune(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return rune(c - 'A' + 10), true
	}
	return 0, false
}
