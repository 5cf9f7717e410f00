// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfeed

import "fmt"

// LexicalError is the concrete type of errors reported by a Tokenizer for
// malformed input text.
type LexicalError struct {
	Offset   int     // absolute byte offset of the error
	Pos      LineCol // line and column of the error
	Fragment string  // the offending input, if known
	Message  string
}

// Error satisfies the error interface.
func (e *LexicalError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", e.Pos, e.Offset, e.Message)
}

// GrammarError is the concrete type of errors reported by a Parser for a
// token that is not valid in the current state, or for input that ends while
// a container is still open.
type GrammarError struct {
	Token Kind  // the rejected token kind; Invalid at the end of the stream
	State State // the top of the state stack; meaningful only if Depth > 0
	Depth int   // the number of open containers

	Offset  int     // absolute byte offset of the rejected token
	Pos     LineCol // zero if the location is not known
	Message string
}

// Error satisfies the error interface.
func (e *GrammarError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("at %s: %s", e.Pos, e.Message)
	}
	return e.Message
}
