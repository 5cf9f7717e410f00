// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfeed

import "slices"

// A Mux is a Handler that delivers each event to a sequence of handlers, in
// the order they were added. Delivery of an event stops at the first handler
// that reports an error. The zero value is ready for use, and ignores all
// events.
type Mux struct {
	hs []Handler
}

// Add adds h to the end of the handlers of m.
func (m *Mux) Add(h Handler) { m.hs = append(m.hs, h) }

// Remove removes the first occurrence of h from m, and reports whether it was
// found. The dynamic type of h must be comparable.
func (m *Mux) Remove(h Handler) bool {
	i := slices.Index(m.hs, h)
	if i < 0 {
		return false
	}
	m.hs = slices.Delete(m.hs, i, i+1)
	return true
}

// Handlers returns a copy of the handlers of m, in delivery order.
func (m *Mux) Handlers() []Handler { return slices.Clone(m.hs) }

// Len reports the number of handlers in m.
func (m *Mux) Len() int { return len(m.hs) }

func (m *Mux) each(f func(Handler) error) error {
	for _, h := range m.hs {
		if err := f(h); err != nil {
			return err
		}
	}
	return nil
}

// BeginObject satisfies the Handler interface.
func (m *Mux) BeginObject(tok Token) error {
	return m.each(func(h Handler) error { return h.BeginObject(tok) })
}

// ObjectKey satisfies the Handler interface.
func (m *Mux) ObjectKey(tok Token) error {
	return m.each(func(h Handler) error { return h.ObjectKey(tok) })
}

// EndObject satisfies the Handler interface.
func (m *Mux) EndObject(tok Token) error {
	return m.each(func(h Handler) error { return h.EndObject(tok) })
}

// BeginArray satisfies the Handler interface.
func (m *Mux) BeginArray(tok Token) error {
	return m.each(func(h Handler) error { return h.BeginArray(tok) })
}

// EndArray satisfies the Handler interface.
func (m *Mux) EndArray(tok Token) error {
	return m.each(func(h Handler) error { return h.EndArray(tok) })
}

// Value satisfies the Handler interface.
func (m *Mux) Value(tok Token) error {
	return m.each(func(h Handler) error { return h.Value(tok) })
}

// SyntaxError satisfies the ErrorHandler interface. It forwards err to each
// handler of m that implements ErrorHandler.
func (m *Mux) SyntaxError(err error) {
	for _, h := range m.hs {
		if eh, ok := h.(ErrorHandler); ok {
			eh.SyntaxError(err)
		}
	}
}

// Discard is a Handler that ignores all events. A Stream with this handler
// checks its input for well-formedness and does nothing else.
var Discard Handler = discard{}

type discard struct{}

func (discard) BeginObject(Token) error { return nil }
func (discard) ObjectKey(Token) error   { return nil }
func (discard) EndObject(Token) error   { return nil }
func (discard) BeginArray(Token) error  { return nil }
func (discard) EndArray(Token) error    { return nil }
func (discard) Value(Token) error       { return nil }
