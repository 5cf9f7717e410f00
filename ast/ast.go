// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a representation of JSON values, and an incremental
// parser that constructs values from JSON text delivered in chunks.
package ast

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Type identifies the JSON type of a Value.
type Type byte

// Constants defining the valid Type values.
const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

var typeStr = [...]string{
	NullType:   "null",
	BoolType:   "boolean",
	NumberType: "number",
	StringType: "string",
	ArrayType:  "array",
	ObjectType: "object",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return "invalid"
	}
	return typeStr[t]
}

// A Value is an arbitrary JSON value. The concrete type is one of Null, Bool,
// Int, Float, String, Array, or Object.
type Value interface {
	Type() Type
}

type nullValue struct{}

func (nullValue) Type() Type { return NullType }

// Null is the JSON null constant.
var Null Value = nullValue{}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Type() Type { return BoolType }

// An Int is a number with no fraction or exponent.
type Int int64

func (Int) Type() Type { return NumberType }

// A Float is a number with a fraction or exponent, or an integer too large to
// be represented as an Int.
type Float float64

func (Float) Type() Type { return NumberType }

// A String is a string value.
type String string

func (String) Type() Type { return StringType }

// An Array is a sequence of values.
type Array []Value

func (Array) Type() Type { return ArrayType }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// An Object is a collection of key-value members, in input order.
type Object []*Member

func (Object) Type() Type { return ObjectType }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of the members of o, in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member { return &Member{Key: key, Value: value} }

// ToValue converts a Go value into a Value.
//
// The concrete type of v must be nil, bool, a signed or unsigned integer
// type, float32, float64, string, []any, []Value, map[string]any, or a Value.
// Slices and maps are converted element by element, and map members are
// ordered by key. An unsigned integer too large for an Int becomes a Float.
// ToValue panics for any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint:
		return fromUint(uint64(t))
	case uint64:
		return fromUint(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case string:
		return String(t)
	case []Value:
		return Array(t)
	case []any:
		arr := make(Array, len(t))
		for i, elt := range t {
			arr[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		obj := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			obj = append(obj, Field(key, ToValue(t[key])))
		}
		return obj
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

func fromUint(z uint64) Value {
	if z > math.MaxInt64 {
		return Float(z)
	}
	return Int(z)
}
