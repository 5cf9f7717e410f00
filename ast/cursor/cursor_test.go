// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jfeed/ast"
	"github.com/creachadair/jfeed/ast/cursor"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func TestCursor(t *testing.T) {
	v, err := ast.ParseString(testJSON)
	if err != nil || len(v) != 1 {
		t.Fatalf("Parse: got %d values, err=%v", len(v), err)
	}
	root := v[0].(ast.Object)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, root, false},
		{"NoMatch", []any{"nonesuch"}, root, true},
		{"WrongType", []any{"o", "x"}, root.Find("o").Value, true},

		{"ArrayPos", []any{"list", 1},
			root.Find("list").Value.(ast.Array)[1],
			false,
		},
		{"ArrayNeg", []any{"list", -1},
			root.Find("list").Value.(ast.Array)[1],
			false,
		},
		{"ArrayRange", []any{"o", 25},
			root.Find("o").Value,
			true,
		},
		{"ObjIndex", []any{1, "hello"}, ast.String("there"), false},
		{"ObjPath", []any{"xyz", "d"}, ast.Bool(true), false},
		{"Nested", []any{"list", 0, "x"}, ast.Int(1), false},

		{"FuncArray", []any{"o", testPathFunc}, ast.Int(2), false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Int(3), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, ast.Bool(true), true},
		{"BadElement", []any{3.5}, root, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(root).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %v, want error", tc.path, c.Value())
			}
			got := c.Value()
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Down %+v: wrong result (-got, +want):\n%s", tc.path, diff)
			}
		})
	}
}

func TestCursorNavigation(t *testing.T) {
	v, err := ast.ParseSingle(strings.NewReader(`[[1, [2, 3]], 4]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := cursor.New(v)
	if !c.AtOrigin() {
		t.Error("New cursor is not at origin")
	}
	c.Down(0, 1, -1)
	if got, want := c.Value(), ast.Value(ast.Int(3)); got != want {
		t.Errorf("Value: got %v, want %v", got, want)
	}
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path: got %d elements, want 4", got)
	}
	c.Up().Up()
	if diff := cmp.Diff(c.Value(), ast.Array{ast.Int(1), ast.Array{ast.Int(2), ast.Int(3)}}); diff != "" {
		t.Errorf("After Up (-got, +want):\n%s", diff)
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("After Reset: origin=%v err=%v", c.AtOrigin(), c.Err())
	}
	if diff := cmp.Diff(c.Origin(), v); diff != "" {
		t.Errorf("Origin (-got, +want):\n%s", diff)
	}
}

func TestPath(t *testing.T) {
	v := ast.ToValue(map[string]any{
		"a": []any{"x", map[string]any{"b": 25}},
	})
	if got, err := cursor.Path[ast.Int](v, "a", 1, "b"); err != nil {
		t.Errorf("Path: unexpected error: %v", err)
	} else if got != 25 {
		t.Errorf("Path: got %v, want 25", got)
	}
	if got, err := cursor.Path[ast.String](v, "a", 1, "b"); err == nil {
		t.Errorf("Path: got %v, want type error", got)
	}
	if got, err := cursor.Path[ast.String](v, cursor.ParsePath("a.0")...); err != nil || got != "x" {
		t.Errorf("Path a.0: got %q, %v; want x", got, err)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input string
		want  []any
	}{
		{"", nil},
		{"a", []any{"a"}},
		{"a.0.-1.b", []any{"a", 0, -1, "b"}},
		{"1x.y", []any{"1x", "y"}},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(cursor.ParsePath(tc.input), tc.want); diff != "" {
			t.Errorf("ParsePath(%q) (-got, +want):\n%s", tc.input, diff)
		}
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Array:
		return ast.ToValue(len(t)), nil
	case ast.Object:
		return ast.ToValue(len(t)), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}

func TestPathError(t *testing.T) {
	v := ast.ToValue(map[string]any{"a": []any{1, 2}})
	c := cursor.New(v).Down("a", 5, "b")
	var perr *cursor.PathError
	if !errors.As(c.Err(), &perr) {
		t.Fatalf("Down: got %v, want *PathError", c.Err())
	}
	if perr.Step != 1 || perr.Elem != 5 {
		t.Errorf("PathError: got step %d elem %v, want step 1 elem 5", perr.Step, perr.Elem)
	}
	if diff := cmp.Diff(perr.Value, c.Value()); diff != "" {
		t.Errorf("PathError value (-got, +want):\n%s", diff)
	}

	// Errors from a function step are wrapped, not replaced.
	bad := errors.New("bad step")
	c.Reset()
	c.Down(func(ast.Value) (ast.Value, error) { return nil, bad })
	if !errors.Is(c.Err(), bad) {
		t.Errorf("Down: got %v, want %v", c.Err(), bad)
	}
	if !c.AtOrigin() {
		t.Error("Cursor moved after a failed step")
	}
}
