// Package erased implements dynamic-dispatch erasure (§9) as an
// out-of-scope collaborator whose interface we still specify: a thin
// forwarding layer that lets a Value or Stream cross a boundary that
// only wants to hold a single concrete type (a plugin registry, a
// function-value callback table) rather than the underlying interface
// itself. It performs no protocol logic of its own — every call forwards
// verbatim to the wrapped implementation: a thin forward, not a second
// implementation.
package erased

import vs "github.com/kodraus/valuestream"

// Value type-erases any vs.Value down to a single function value, the Go
// analog of boxing a trait object behind a v-table: a caller that only
// wants "a thing I can call Stream on" doesn't need the original Value's
// concrete type, just this one closure.
type Value struct {
	stream    func(vs.Stream) error
	isDynamic bool
}

// WrapValue erases v into a Value. If v is nil, the erased Value streams
// Null.
func WrapValue(v vs.Value) Value {
	if v == nil {
		return Value{stream: func(s vs.Stream) error { return s.Null() }}
	}
	return Value{stream: v.Stream, isDynamic: v.IsDynamic()}
}

func (e Value) Stream(s vs.Stream) error { return e.stream(s) }
func (e Value) IsDynamic() bool          { return e.isDynamic }

var _ vs.Value = Value{}

// Stream is a v-table over the Stream interface: it holds the wrapped
// implementation as a vs.Stream and has one method per event, each
// forwarding verbatim to it. It has no per-event function fields, so an
// individual event cannot be replaced on a Stream value.
type Stream struct {
	inner vs.Stream
}

// WrapStream erases inner into a v-table Stream that forwards every call
// to it verbatim.
func WrapStream(inner vs.Stream) *Stream {
	return &Stream{inner: inner}
}

var _ vs.Stream = (*Stream)(nil)

func (e *Stream) IsTextBased() bool { return e.inner.IsTextBased() }

func (e *Stream) Unit() error     { return e.inner.Unit() }
func (e *Stream) Null() error     { return e.inner.Null() }
func (e *Stream) Bool(v bool) error { return e.inner.Bool(v) }

func (e *Stream) TextBegin(hint vs.Hint) error       { return e.inner.TextBegin(hint) }
func (e *Stream) TextFragment(s string) error         { return e.inner.TextFragment(s) }
func (e *Stream) TextFragmentComputed(s string) error { return e.inner.TextFragmentComputed(s) }
func (e *Stream) TextEnd() error                      { return e.inner.TextEnd() }

func (e *Stream) BinaryBegin(hint vs.Hint) error         { return e.inner.BinaryBegin(hint) }
func (e *Stream) BinaryFragment(b []byte) error           { return e.inner.BinaryFragment(b) }
func (e *Stream) BinaryFragmentComputed(b []byte) error   { return e.inner.BinaryFragmentComputed(b) }
func (e *Stream) BinaryEnd() error                        { return e.inner.BinaryEnd() }

func (e *Stream) MapBegin(hint vs.Hint) error { return e.inner.MapBegin(hint) }
func (e *Stream) MapKeyBegin() error          { return e.inner.MapKeyBegin() }
func (e *Stream) MapKeyEnd() error            { return e.inner.MapKeyEnd() }
func (e *Stream) MapValueBegin() error        { return e.inner.MapValueBegin() }
func (e *Stream) MapValueEnd() error          { return e.inner.MapValueEnd() }
func (e *Stream) MapEnd() error               { return e.inner.MapEnd() }

func (e *Stream) SeqBegin(hint vs.Hint) error { return e.inner.SeqBegin(hint) }
func (e *Stream) SeqValueBegin() error        { return e.inner.SeqValueBegin() }
func (e *Stream) SeqValueEnd() error          { return e.inner.SeqValueEnd() }
func (e *Stream) SeqEnd() error               { return e.inner.SeqEnd() }
