// Package valuestream is the core of a structured-data streaming protocol:
// a push-based visitor protocol by which producers (Value) describe a
// value as a sequence of typed events to consumers (Stream). Formats such
// as JSON are written as Streams rather than bespoke encoders; see the
// jsonstream package for the reference writer and reader.
package valuestream

import "github.com/kodraus/valuestream/tag"

// Hint carries an advisory length count for a Begin event, used by
// consumers that want to preallocate. A hint is never a correctness
// requirement: a producer that emits MapBegin(Hint(3)) is not required to
// emit exactly three entries, though a conforming producer should only
// emit a hint it can honor.
type Hint struct {
	N     int
	Known bool
}

// NoHint is the absence of a length hint.
var NoHint = Hint{}

// WithHint constructs a known Hint.
func WithHint(n int) Hint {
	return Hint{N: n, Known: true}
}

// BeginTag carries the optional tag payload of a *Begin event together
// with the advisory size hint some Begin events also carry (MapBegin,
// SeqBegin, RecordBegin, TupleBegin).
type BeginTag struct {
	Tag    tag.Tag
	HasTag bool
	Hint   Hint
}

// NoTag is a BeginTag carrying neither a tag nor a hint.
var NoTag = BeginTag{}

// WithTag constructs a BeginTag carrying t and no hint.
func WithTag(t tag.Tag) BeginTag {
	return BeginTag{Tag: t, HasTag: true}
}
