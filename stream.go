// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfeed

import (
	"errors"
	"fmt"
	"io"
)

// readBlockBytes is the size of the chunks read by Stream.ReadFrom.
const readBlockBytes = 16384

// Stream is an incremental JSON parser that delivers events to a Handler.  It
// owns a Tokenizer and a Parser, and connects the output of the former to the
// input of the latter.
//
// Input may be delivered in chunks of any size by calling Feed or FeedString.
// Events are delivered synchronously, before the call that produced them
// returns. Call Finalize at the end of the input to complete any pending
// value and check that no object or array was left open.
//
// If Feed, FeedString, or Finalize reports an error, the Stream is reset to
// its initial state before the error is returned, so the caller may start
// over with fresh input. If the handler implements ErrorHandler, its
// SyntaxError method is also called with the error.
type Stream struct {
	tz *Tokenizer
	ps *Parser
	h  Handler
}

// NewStream constructs a new Stream that delivers events to h.
func NewStream(h Handler) *Stream {
	ps := NewParser(h)
	return &Stream{tz: NewTokenizer(ps), ps: ps, h: h}
}

// SetMaxDepth limits the nesting depth of objects and arrays to n.  If n ≤ 0,
// the depth is not limited. The default is no limit.
func (s *Stream) SetMaxDepth(n int) { s.ps.SetMaxDepth(n) }

// Feed consumes the next chunk of input.
func (s *Stream) Feed(data []byte) error { return s.check(s.tz.Feed(data)) }

// FeedString consumes the next chunk of input.
func (s *Stream) FeedString(text string) error { return s.check(s.tz.FeedString(text)) }

// Finalize reports the end of the input.
func (s *Stream) Finalize() error {
	if err := s.tz.Finalize(); err != nil {
		return s.check(err)
	}
	err := s.ps.Finalize()
	var gerr *GrammarError
	if errors.As(err, &gerr) && gerr.Token == Invalid {
		gerr.Offset, gerr.Pos = s.tz.Offset(), s.tz.Pos()
	}
	return s.check(err)
}

// Reset discards all buffered input and parser state.
func (s *Stream) Reset() { s.tz.Reset(); s.ps.Reset() }

// Depth reports the number of currently-open objects and arrays.
func (s *Stream) Depth() int { return s.ps.Depth() }

// Offset reports the number of bytes consumed since the last reset.
func (s *Stream) Offset() int { return s.tz.Offset() }

// ReadFrom feeds the contents of r to s in chunks until r reports io.EOF.
// It does not call Finalize. It returns the number of bytes read.  Errors
// from r are returned without resetting s.
func (s *Stream) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, readBlockBytes)
	var nr int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			nr += int64(n)
			if ferr := s.Feed(buf[:n]); ferr != nil {
				return nr, ferr
			}
		}
		if err == io.EOF {
			return nr, nil
		} else if err != nil {
			return nr, fmt.Errorf("read input: %w", err)
		}
	}
}

func (s *Stream) check(err error) error {
	if err == nil {
		return nil
	}
	s.Reset()
	if eh, ok := s.h.(ErrorHandler); ok {
		eh.SyntaxError(err)
	}
	return err
}
