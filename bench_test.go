// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfeed_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/jfeed"
	"github.com/creachadair/jfeed/ast"
)

// benchInput constructs a document of n records with a mix of value types.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"episodes": [`)
	for i := range n {
		if i > 0 {
			buf.WriteString(",\n")
		}
		fmt.Fprintf(&buf, `{"episode": %d, "title": "Episode · %d", "rating": %.2f, `+
			`"hasDetail": %v, "tags": ["a", "b\n", null], "summary": "whatever blah blah"}`,
			i, i, float64(i)/7, i%2 == 0)
	}
	buf.WriteString("]}\n")
	return buf.Bytes()
}

func BenchmarkStream(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	for _, size := range []int{64, 4096, len(input)} {
		b.Run(fmt.Sprintf("Stream-%d", size), func(b *testing.B) {
			s := jfeed.NewStream(jfeed.Discard)
			for b.Loop() {
				for rest := input; len(rest) > 0; {
					n := min(size, len(rest))
					if err := s.Feed(rest[:n]); err != nil {
						b.Fatalf("Unexpected error: %v", err)
					}
					rest = rest[n:]
				}
				if err := s.Finalize(); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})
	}

	b.Run("Unmarshal", func(b *testing.B) {
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		for b.Loop() {
			if _, err := ast.ParseSingle(bytes.NewReader(input)); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
