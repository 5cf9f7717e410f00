// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/creachadair/jfeed/ast"
	"github.com/tailscale/hujson"
)

// Splits returns every way of cutting text into two chunks, including the
// cuts with an empty first or last chunk.
func Splits(text string) [][]string {
	out := make([][]string, 0, len(text)+1)
	for i := 0; i <= len(text); i++ {
		out = append(out, []string{text[:i], text[i:]})
	}
	return out
}

// Bytewise returns text cut into chunks of one byte each.
func Bytewise(text string) []string { return Chunks(text, 1) }

// Chunks returns text cut into chunks of n bytes each, except that the last
// chunk may be shorter. It panics if n <= 0.
func Chunks(text string, n int) []string {
	if n <= 0 {
		panic("invalid chunk size")
	}
	var out []string
	for len(text) > n {
		out = append(out, text[:n])
		text = text[n:]
	}
	return append(out, text)
}

// A Case is a single test input from a case file.
type Case struct {
	Name  string `json:"name"`
	Input string `json:"input"`

	// For an invalid case, the text expected in the error message.
	Error string `json:"error,omitempty"`
}

// Cases is the structure of a case file.
type Cases struct {
	Valid   []Case `json:"valid"`
	Invalid []Case `json:"invalid"`
}

// LoadCases reads a case file from path. The file is JSON with comments and
// trailing commas permitted.
func LoadCases(path string) (*Cases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize %s: %w", path, err)
	}
	var cs Cases
	if err := json.Unmarshal(std, &cs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cs, nil
}

// DecodeAll decodes the sequence of JSON values in text with encoding/json,
// and converts each to an ast.Value. It is an independent reference for the
// results of the incremental parser.
func DecodeAll(text string) ([]ast.Value, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var out []ast.Value
	for dec.More() {
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, FromJSON(v))
	}
	return out, nil
}

// FromJSON converts a value decoded by encoding/json, with numbers decoded as
// json.Number, into an ast.Value.
func FromJSON(v any) ast.Value {
	switch t := v.(type) {
	case json.Number:
		if z, err := t.Int64(); err == nil {
			return ast.Int(z)
		}
		f, err := t.Float64()
		if err != nil {
			panic(fmt.Sprintf("invalid number %q: %v", t, err))
		}
		return ast.Float(f)
	case []any:
		arr := make(ast.Array, len(t))
		for i, elt := range t {
			arr[i] = FromJSON(elt)
		}
		return arr
	case map[string]any:
		obj := make(ast.Object, 0, len(t))
		for key, elt := range t {
			obj = append(obj, ast.Field(key, FromJSON(elt)))
		}
		return obj
	default:
		return ast.ToValue(v)
	}
}
