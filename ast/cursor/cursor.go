// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor navigates the values assembled by package ast.
//
// A path is a sequence of steps applied one at a time from a starting value.
// Each step is one of:
//
//	string                              member key of an object
//	int                                 element offset of an array or object
//	func(ast.Value) (ast.Value, error)  computed successor
//
// Offsets below zero are taken from the end, so -1 selects the final element.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jfeed/ast"
)

// Path follows path from v and returns the value reached, which must have
// type T.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if c.err != nil {
		return zero, c.err
	}
	if out, ok := c.Value().(T); ok {
		return out, nil
	}
	return zero, fmt.Errorf("value at end of path is %T, not %T", c.Value(), zero)
}

// ParsePath splits a dotted path like "items.0.name" into steps for Down.
// Integer components become int steps, the rest are keys. An empty string
// yields an empty path.
func ParsePath(s string) []any {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	path := make([]any, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			path[i] = n
		} else {
			path[i] = p
		}
	}
	return path
}

// PathError reports a step of a path that could not be followed.
type PathError struct {
	Step  int       // offset of the failing step in the path
	Elem  any       // the failing step
	Value ast.Value // the value the step was applied to
	Err   error
}

func (e *PathError) Error() string { return fmt.Sprintf("step %d (%v): %v", e.Step, e.Elem, e.Err) }

func (e *PathError) Unwrap() error { return e.Err }

// A Cursor records a position inside a value, as the chain of values visited
// on the way down from its origin.
type Cursor struct {
	org   ast.Value
	trail []ast.Value
	err   error
}

// New returns a Cursor positioned at origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the value c started from.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c has not moved below its origin.
func (c *Cursor) AtOrigin() bool { return len(c.trail) == 0 }

// Value returns the value at the current position.
func (c *Cursor) Value() ast.Value {
	if n := len(c.trail); n > 0 {
		return c.trail[n-1]
	}
	return c.org
}

// Path returns the values visited from the origin to the current position,
// inclusive of both.
func (c *Cursor) Path() []ast.Value {
	out := make([]ast.Value, 0, len(c.trail)+1)
	return append(append(out, c.org), c.trail...)
}

// Err returns the error from the latest call to Down, or nil. A non-nil
// error is a *PathError.
func (c *Cursor) Err() error { return c.err }

// Up returns c to the previous position. At the origin it does nothing.
func (c *Cursor) Up() *Cursor {
	if n := len(c.trail); n > 0 {
		c.trail = c.trail[:n-1]
	}
	return c
}

// Reset returns c to its origin and clears its error.
func (c *Cursor) Reset() { c.trail = c.trail[:0]; c.err = nil }

// Down applies the steps of path in order, starting from the current value.
// If a step cannot be followed, c stays at the last value reached and Err
// reports which step failed.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for i, elem := range path {
		cur := c.Value()
		next, err := step(cur, elem)
		if err != nil {
			c.err = &PathError{Step: i, Elem: elem, Value: cur, Err: err}
			break
		}
		c.trail = append(c.trail, next)
	}
	return c
}

// step resolves a single path element against v.
func step(v ast.Value, elem any) (ast.Value, error) {
	switch e := elem.(type) {
	case string:
		obj, ok := v.(ast.Object)
		if !ok {
			return nil, fmt.Errorf("%s has no keys", kind(v))
		}
		if m := obj.Find(e); m != nil {
			return m.Value, nil
		}
		return nil, fmt.Errorf("no member with key %q", e)

	case int:
		var n int
		switch t := v.(type) {
		case ast.Array:
			n = len(t)
		case ast.Object:
			n = len(t)
		default:
			return nil, fmt.Errorf("%s has no elements", kind(v))
		}
		i := e
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("offset %d outside %s of length %d", e, kind(v), n)
		}
		if obj, ok := v.(ast.Object); ok {
			return obj[i].Value, nil
		}
		return v.(ast.Array)[i], nil

	case func(ast.Value) (ast.Value, error):
		return e(v)
	}
	return nil, fmt.Errorf("unsupported step type %T", elem)
}

func kind(v ast.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type().String()
}
