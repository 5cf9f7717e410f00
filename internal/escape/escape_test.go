// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jfeed/internal/escape"
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name  string
		build func(*escape.Builder)
		want  string
	}{
		{"Empty", func(*escape.Builder) {}, ""},
		{"Bytes", func(b *escape.Builder) {
			for _, c := range []byte("héllo") {
				b.AddByte(c)
			}
		}, "héllo"},
		{"Escapes", func(b *escape.Builder) {
			for _, c := range []byte(`"\/bfnrt`) {
				b.AddEscape(c)
			}
		}, "\"\\/\b\f\n\r\t"},
		{"BMP", func(b *escape.Builder) { b.AddUnit(0x00e9); b.AddUnit(0x4e16) }, "é世"},
		{"Pair", func(b *escape.Builder) { b.AddUnit(0xd83d); b.AddUnit(0xde00) }, "😀"},
		{"LoneHigh", func(b *escape.Builder) { b.AddUnit(0xd83d) }, "�"},
		{"LoneLow", func(b *escape.Builder) { b.AddUnit(0xde00); b.AddByte('x') }, "�x"},
		{"HighHigh", func(b *escape.Builder) {
			b.AddUnit(0xd800)
			b.AddUnit(0xd800)
			b.AddUnit(0xdc00)
		}, "�\U00010000"},
		{"HighThenByte", func(b *escape.Builder) { b.AddUnit(0xd800); b.AddByte('a') }, "�a"},
		{"HighThenEscape", func(b *escape.Builder) { b.AddUnit(0xd800); b.AddEscape('n') }, "�\n"},
		{"HighThenBMP", func(b *escape.Builder) { b.AddUnit(0xd800); b.AddUnit('z') }, "�z"},
		{"Nul", func(b *escape.Builder) { b.AddUnit(0) }, "\x00"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var b escape.Builder
			test.build(&b)
			got, err := b.Text()
			if err != nil {
				t.Fatalf("Text: unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("Text: got %q, want %q", got, test.want)
			}
		})
	}
}

func TestBuilderInvalid(t *testing.T) {
	var b escape.Builder
	if b.AddEscape('x') {
		t.Error(`AddEscape('x'): got true, want false`)
	}
	if b.AddEscape('u') {
		t.Error(`AddEscape('u'): got true, want false`)
	}

	b.AddByte(0xff)
	if _, err := b.Text(); !errors.Is(err, escape.ErrInvalidUTF8) {
		t.Errorf("Text: got %v, want %v", err, escape.ErrInvalidUTF8)
	}
	if b.Len() != 1 {
		t.Errorf("Len: got %d, want 1", b.Len())
	}

	b.Reset()
	if got, err := b.Text(); err != nil || got != "" {
		t.Errorf("After Reset: got %q, %v", got, err)
	}
}

func TestHexDigit(t *testing.T) {
	for i, c := range []byte("0123456789abcdef") {
		if v, ok := escape.HexDigit(c); !ok || v != rune(i) {
			t.Errorf("HexDigit(%q): got %d, %v; want %d", c, v, ok, i)
		}
	}
	for i, c := range []byte("ABCDEF") {
		if v, ok := escape.HexDigit(c); !ok || v != rune(i+10) {
			t.Errorf("HexDigit(%q): got %d, %v; want %d", c, v, ok, i+10)
		}
	}
	for _, c := range []byte("gG/: x") {
		if _, ok := escape.HexDigit(c); ok {
			t.Errorf("HexDigit(%q): got true, want false", c)
		}
	}
}
