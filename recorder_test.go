package valuestream_test

import (
	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/tag"
)

func tagIndexZero() tag.Index { return tag.NewIndex(0) }

func labelOf(name string) tag.Label { return tag.NewLabel(name) }

// traceStream is a minimal Basic implementation (wrapped in a Desugar) that
// records every Basic event it receives as a short opcode string, for
// asserting desugaring and grammar behavior in tests without pulling in
// jsonstream.
type traceStream struct {
	vs.Desugar
	textBased bool
	events    []string
}

func newTraceStream(textBased bool) *traceStream {
	t := &traceStream{textBased: textBased}
	t.Desugar = vs.Desugar{Basic: t}
	return t
}

var _ vs.Basic = (*traceStream)(nil)

func (t *traceStream) record(op string) error {
	t.events = append(t.events, op)
	return nil
}

func (t *traceStream) IsTextBased() bool { return t.textBased }

func (t *traceStream) Unit() error         { return t.record("unit") }
func (t *traceStream) Null() error         { return t.record("null") }
func (t *traceStream) Bool(v bool) error   { return t.record("bool") }

func (t *traceStream) TextBegin(vs.Hint) error          { return t.record("text_begin") }
func (t *traceStream) TextFragmentComputed(s string) error { return t.record("text_fragment:" + s) }
func (t *traceStream) TextEnd() error                    { return t.record("text_end") }

func (t *traceStream) BinaryBegin(vs.Hint) error           { return t.record("binary_begin") }
func (t *traceStream) BinaryFragmentComputed(b []byte) error { return t.record("binary_fragment") }
func (t *traceStream) BinaryEnd() error                     { return t.record("binary_end") }

func (t *traceStream) MapBegin(vs.Hint) error { return t.record("map_begin") }
func (t *traceStream) MapKeyBegin() error     { return t.record("map_key_begin") }
func (t *traceStream) MapKeyEnd() error       { return t.record("map_key_end") }
func (t *traceStream) MapValueBegin() error   { return t.record("map_value_begin") }
func (t *traceStream) MapValueEnd() error     { return t.record("map_value_end") }
func (t *traceStream) MapEnd() error          { return t.record("map_end") }

func (t *traceStream) SeqBegin(vs.Hint) error { return t.record("seq_begin") }
func (t *traceStream) SeqValueBegin() error   { return t.record("seq_value_begin") }
func (t *traceStream) SeqValueEnd() error     { return t.record("seq_value_end") }
func (t *traceStream) SeqEnd() error          { return t.record("seq_end") }

// EnumBegin/EnumEnd/TaggedBegin/TaggedEnd are not part of Basic (Desugar's
// default bodies for them are no-ops), so traceStream overrides them
// directly to observe enum/tagged wrapping in tests.
func (t *traceStream) EnumBegin(bt vs.BeginTag) error { return t.record("enum_begin:" + tagString(bt)) }
func (t *traceStream) EnumEnd(bt vs.BeginTag) error   { return t.record("enum_end:" + tagString(bt)) }

func (t *traceStream) TaggedBegin(bt vs.BeginTag) error { return t.record("tagged_begin:" + tagString(bt)) }
func (t *traceStream) TaggedEnd(bt vs.BeginTag) error   { return t.record("tagged_end:" + tagString(bt)) }

func tagString(bt vs.BeginTag) string {
	if !bt.HasTag {
		return "none"
	}
	tg := bt.Tag
	switch {
	case tg.HasLabel:
		return tg.Label.Value
	case tg.HasIdent:
		return tg.Ident
	default:
		return "anon"
	}
}

// recordValue is a Value that emits a fixed I32 for round-trip tests.
type recordValue struct{ n int32 }

func (r recordValue) Stream(s vs.Stream) error { return s.I32(r.n) }
func (r recordValue) IsDynamic() bool          { return false }

var _ vs.Value = recordValue{}
