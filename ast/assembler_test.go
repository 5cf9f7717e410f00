// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/creachadair/jfeed"
	"github.com/creachadair/jfeed/ast"
	"github.com/google/go-cmp/cmp"
)

func TestAssembler(t *testing.T) {
	asm := ast.NewAssembler()
	p := jfeed.NewParser(asm)
	if err := p.Feed(
		jfeed.Delim('{'), jfeed.Literal("k1"), jfeed.Delim(':'), jfeed.Literal(1), jfeed.Delim(','),
		jfeed.Literal("k2"), jfeed.Delim(':'), jfeed.Literal(2),
	); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	if asm.Len() != 0 || asm.Depth() != 1 {
		t.Errorf("Partial: got len %d depth %d, want 0, 1", asm.Len(), asm.Depth())
	}
	if vs := asm.Values(); len(vs) != 0 {
		t.Errorf("Values before close: got %v, want none", vs)
	}

	if err := p.Feed(jfeed.Delim('}'), jfeed.Delim('['), jfeed.Delim('{'), jfeed.Delim('}'), jfeed.Delim('['),
		jfeed.Literal(1), jfeed.Delim(','), jfeed.Literal(2.5), jfeed.Delim(','), jfeed.Literal(nil),
		jfeed.Delim(']'), jfeed.Delim(']'), jfeed.Literal(true)); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	if asm.Len() != 3 || asm.Depth() != 0 {
		t.Errorf("Complete: got len %d depth %d, want 3, 0", asm.Len(), asm.Depth())
	}
	want := []ast.Value{
		ast.Object{ast.Field("k1", ast.Int(1)), ast.Field("k2", ast.Int(2))},
		ast.Array{ast.Object{}, ast.Array{ast.Int(1), ast.Float(2.5), ast.Null}},
		ast.Bool(true),
	}
	if diff := cmp.Diff(want, asm.Values()); diff != "" {
		t.Errorf("Values (-want, +got):\n%s", diff)
	}

	// Values drains the queue.
	if vs := asm.Values(); vs != nil {
		t.Errorf("Values after drain: got %v, want nil", vs)
	}
}

func TestAssemblerDuplicateKeys(t *testing.T) {
	vs, err := ast.ParseString(`{"a": 1, "b": 2, "a": [3]}`)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	// The last value for a key wins, in the position of the first.
	want := []ast.Value{ast.Object{
		ast.Field("a", ast.Array{ast.Int(3)}),
		ast.Field("b", ast.Int(2)),
	}}
	if diff := cmp.Diff(want, vs); diff != "" {
		t.Errorf("Values (-want, +got):\n%s", diff)
	}
}

func TestAssemblerReset(t *testing.T) {
	asm := ast.NewAssembler()
	p := jfeed.NewParser(asm)
	if err := p.Feed(jfeed.Literal("done"), jfeed.Delim('['), jfeed.Literal(1)); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	asm.Reset()
	p.Reset()
	if asm.Len() != 0 || asm.Depth() != 0 {
		t.Errorf("After Reset: got len %d depth %d, want 0, 0", asm.Len(), asm.Depth())
	}
	if err := p.Feed(jfeed.Delim('['), jfeed.Delim(']')); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]ast.Value{ast.Array{}}, asm.Values()); diff != "" {
		t.Errorf("Values (-want, +got):\n%s", diff)
	}
}

func TestAssemblerErrors(t *testing.T) {
	tok := jfeed.Literal("x")
	tests := []struct {
		name string
		run  func(*ast.Assembler) error
	}{
		{"KeyAtTop", func(a *ast.Assembler) error { return a.ObjectKey(tok) }},
		{"KeyInArray", func(a *ast.Assembler) error {
			a.BeginArray(jfeed.Delim('['))
			return a.ObjectKey(tok)
		}},
		{"ValueWithoutKey", func(a *ast.Assembler) error {
			a.BeginObject(jfeed.Delim('{'))
			return a.Value(tok)
		}},
		{"UnbalancedObject", func(a *ast.Assembler) error { return a.EndObject(jfeed.Delim('}')) }},
		{"MismatchedArray", func(a *ast.Assembler) error {
			a.BeginObject(jfeed.Delim('{'))
			return a.EndArray(jfeed.Delim(']'))
		}},
		{"InvalidValue", func(a *ast.Assembler) error { return a.Value(jfeed.Delim(',')) }},
		{"BadNumber", func(a *ast.Assembler) error {
			return a.Value(jfeed.Token{Kind: jfeed.NumberLiteral, Value: "12"})
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.run(ast.NewAssembler())
			if err == nil {
				t.Fatal("Got nil, want error")
			}
			t.Logf("Got expected error: %v", err)
		})
	}
}

func TestAssemblerStreamError(t *testing.T) {
	asm := ast.NewAssembler()
	s := jfeed.NewStream(asm)
	if err := s.FeedString(`"ok" [1,}`); err == nil {
		t.Fatal("Feed: got nil, want error")
	}
	if got := asm.Depth(); got != 0 {
		t.Errorf("Depth after error: got %d, want 0", got)
	}

	// A fresh value after the error is not attached to the abandoned array.
	if err := s.FeedString(`2`); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: unexpected error: %v", err)
	}
	want := []ast.Value{ast.String("ok"), ast.Int(2)}
	if diff := cmp.Diff(want, asm.Values()); diff != "" {
		t.Errorf("Values (-want, +got):\n%s", diff)
	}
}
