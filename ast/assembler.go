// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	"github.com/creachadair/jfeed"
)

// An Assembler implements the jfeed.Handler interface to construct values
// from parser events. Each value completed at the top level is added to a
// queue, which the caller drains with Values.
type Assembler struct {
	stk  []*frame
	done []Value
}

// A frame is the in-progress state of one open object or array.
type frame struct {
	isObj  bool
	array  Array
	object Object
	index  map[string]int // key → offset in object
	key    string         // pending member key
	hasKey bool
}

// NewAssembler constructs an empty Assembler.
func NewAssembler() *Assembler { return new(Assembler) }

// Values returns the top-level values completed since the last call, in input
// order, and removes them from the queue.
func (a *Assembler) Values() []Value {
	vs := a.done
	a.done = nil
	return vs
}

// Len reports the number of completed values waiting in the queue.
func (a *Assembler) Len() int { return len(a.done) }

// Depth reports the number of objects and arrays under construction.
func (a *Assembler) Depth() int { return len(a.stk) }

// Reset discards all values, including those waiting in the queue.
func (a *Assembler) Reset() { a.stk = a.stk[:0]; a.done = nil }

// SyntaxError satisfies the jfeed.ErrorHandler interface. It discards the
// objects and arrays under construction. Completed values stay in the queue.
func (a *Assembler) SyntaxError(error) { a.stk = a.stk[:0] }

// BeginObject satisfies the jfeed.Handler interface.
func (a *Assembler) BeginObject(jfeed.Token) error {
	a.stk = append(a.stk, &frame{isObj: true, object: Object{}})
	return nil
}

// ObjectKey satisfies the jfeed.Handler interface.
func (a *Assembler) ObjectKey(tok jfeed.Token) error {
	f := a.top()
	if f == nil || !f.isObj {
		return errors.New("object key outside of an object")
	}
	key, ok := tok.Value.(string)
	if !ok {
		return fmt.Errorf("invalid object key %v", tok)
	}
	f.key, f.hasKey = key, true
	return nil
}

// EndObject satisfies the jfeed.Handler interface.
func (a *Assembler) EndObject(jfeed.Token) error {
	f := a.pop()
	if f == nil || !f.isObj {
		return errors.New("unbalanced end of object")
	}
	return a.reduce(f.object)
}

// BeginArray satisfies the jfeed.Handler interface.
func (a *Assembler) BeginArray(jfeed.Token) error {
	a.stk = append(a.stk, &frame{array: Array{}})
	return nil
}

// EndArray satisfies the jfeed.Handler interface.
func (a *Assembler) EndArray(jfeed.Token) error {
	f := a.pop()
	if f == nil || f.isObj {
		return errors.New("unbalanced end of array")
	}
	return a.reduce(f.array)
}

// Value satisfies the jfeed.Handler interface.
func (a *Assembler) Value(tok jfeed.Token) error {
	v, err := valueOf(tok)
	if err != nil {
		return err
	}
	return a.reduce(v)
}

// reduce attaches a completed value to the innermost open container, or adds
// it to the queue if there is none.
func (a *Assembler) reduce(v Value) error {
	f := a.top()
	if f == nil {
		a.done = append(a.done, v)
		return nil
	} else if !f.isObj {
		f.array = append(f.array, v)
		return nil
	} else if !f.hasKey {
		return errors.New("object value without a key")
	}
	f.put(f.key, v)
	f.key, f.hasKey = "", false
	return nil
}

// put sets the value of key in the object. A repeated key replaces the value
// of the existing member.
func (f *frame) put(key string, v Value) {
	if i, ok := f.index[key]; ok {
		f.object[i].Value = v
		return
	}
	if f.index == nil {
		f.index = make(map[string]int)
	}
	f.index[key] = len(f.object)
	f.object = append(f.object, Field(key, v))
}

func (a *Assembler) top() *frame {
	if len(a.stk) == 0 {
		return nil
	}
	return a.stk[len(a.stk)-1]
}

func (a *Assembler) pop() *frame {
	f := a.top()
	if f != nil {
		a.stk = a.stk[:len(a.stk)-1]
	}
	return f
}

// valueOf converts a literal token into a Value.
func valueOf(tok jfeed.Token) (Value, error) {
	switch tok.Kind {
	case jfeed.StringLiteral:
		if s, ok := tok.Value.(string); ok {
			return String(s), nil
		}
	case jfeed.NumberLiteral:
		switch z := tok.Value.(type) {
		case int64:
			return Int(z), nil
		case float64:
			return Float(z), nil
		}
	case jfeed.BooleanLiteral:
		if b, ok := tok.Value.(bool); ok {
			return Bool(b), nil
		}
	case jfeed.NullLiteral:
		return Null, nil
	}
	return nil, fmt.Errorf("invalid value %v", tok)
}
