// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jfeed implements an incremental JSON parser.
//
// The input is JSON text delivered in chunks of any size, split at any point:
// between tokens, inside a string or escape sequence, inside a number, or
// inside a multi-byte UTF-8 character. Parsing proceeds as far as the input
// allows and resumes when more arrives, without buffering the whole input.
//
// # Tokenizing
//
// The Tokenizer type converts input text into a sequence of Token values and
// delivers each to a TokenHandler as soon as it is complete:
//
//	tz := jfeed.NewTokenizer(jfeed.TokenFunc(func(tok jfeed.Token) error {
//	   log.Printf("Token: %v", tok)
//	   return nil
//	}))
//	tz.FeedString(`{"a": tr`)
//	tz.FeedString(`ue}`)
//	if err := tz.Finalize(); err != nil {
//	   log.Fatalf("Tokenize failed: %v", err)
//	}
//
// Lexical errors have concrete type *jfeed.LexicalError.
//
// # Parsing
//
// The Parser type is a stack-based state machine that checks a sequence of
// tokens against the JSON grammar and reports the structure of the input to
// a Handler. A Parser implements TokenHandler, so it can be connected
// directly to a Tokenizer. Grammar errors have concrete type
// *jfeed.GrammarError, and name the rejected token kind and the state that
// rejected it.
//
// # Streaming
//
// The Stream type connects a Tokenizer to a Parser. Construct a Stream with a
// Handler, then call Feed as input arrives and Finalize at the end:
//
//	s := jfeed.NewStream(handler)
//	for chunk := range input {
//	   if err := s.Feed(chunk); err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	}
//	if err := s.Finalize(); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// A Stream resets itself when it reports an error, so it is ready for fresh
// input. To deliver events to more than one handler, use a Mux.
//
// # Handlers
//
// The Handler interface accepts parser events. The methods of a handler
// correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	member     | ObjectKey                 | "key": (followed by its value)
//	array      | BeginArray, EndArray      | [ ... ]
//	value      | Value                     | true, false, null, number, string
//
// Each method is passed the token that caused the event. Events are
// delivered in input order, synchronously, and the parser state has already
// been advanced past the token when its event is delivered.
//
// To construct values from the event stream, see package ast.
package jfeed
