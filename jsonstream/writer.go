// Package jsonstream implements a reference RFC 8259 JSON encoding of the
// streaming protocol: Writer is a Stream that renders events as JSON
// text, and Reader is a resumable Source that parses a JSON byte slice
// back into events. Both are written in terms of valuestream.Stream /
// valuestream.Value so any producer or consumer of the core protocol
// can be driven through JSON without a bespoke codec.
package jsonstream

import (
	"context"
	"io"
	"math"
	"math/big"
	"strconv"

	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/tag"
	"github.com/kodraus/valuestream/telemetry"
)

// WriterOption configures a Writer constructed by NewWriter.
type WriterOption func(*writerOptions)

type writerOptions struct {
	indent         string
	logger         telemetry.Logger
	quoteLargeInts bool
}

// WithIndent enables pretty-printing: each nesting level is indented by
// one copy of indent and composite members are separated by newlines.
// The zero value (the default, when WithIndent is never passed) emits
// compact JSON with no insignificant whitespace.
func WithIndent(indent string) WriterOption {
	return func(o *writerOptions) { o.indent = indent }
}

// WithLogger attaches a logger used for diagnostic tracing of malformed
// input the writer declines to encode (e.g. a computed record label).
// Never consulted for control flow.
func WithLogger(l telemetry.Logger) WriterOption {
	return func(o *writerOptions) { o.logger = l }
}

// WithQuoteLargeInts renders integers outside the ±2^53 safe-integer
// range as JSON strings instead of numbers, the common interop
// workaround for JSON consumers that decode numbers into IEEE 754
// doubles.
func WithQuoteLargeInts() WriterOption {
	return func(o *writerOptions) { o.quoteLargeInts = true }
}

const safeIntBound = int64(1) << 53

// Writer renders the streaming protocol's event alphabet as JSON text
// (§4.6). It implements the full valuestream.Stream interface directly
// rather than through valuestream.Desugar: the numeric-reconstruction and
// internally-tagged-enum state it needs to track spans several Stream
// methods Desugar only no-ops, so Writer specializes every method itself.
type Writer struct {
	out  io.Writer
	opts writerOptions
	err  error

	// quoteStack tracks whether the current text/binary substream should
	// be wrapped in double quotes. It is pushed (false) on every
	// MapKeyBegin/ConstantBegin/numeric-modifier-Begin and popped on the
	// matching End, since these contexts can nest inside ordinary string
	// or composite values.
	quoteStack []bool

	// emptyDepth mirrors a single is_current_depth_empty flag: because
	// container Begin/End calls nest strictly, one shared flag is enough
	// to know whether the value about to be written is the first in its
	// immediately enclosing container.
	emptyDepth bool
	depth      int

	// numStack tracks the in-progress number-reconstruction state for
	// each currently open IntBegin/BinfloatBegin/DecfloatBegin.
	numStack []*numState

	// enumWrapper tracks, per currently open EnumBegin/TaggedBegin pair,
	// whether an externally-tagged wrapper object was opened.
	enumWrapper []bool
}

type numState struct {
	seenDigit    bool
	pendingMinus bool
	null         bool
}

// NewWriter constructs a Writer that renders to out.
func NewWriter(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{out: out, quoteStack: []bool{true}}
	for _, fn := range opts {
		if fn != nil {
			fn(&w.opts)
		}
	}
	if w.opts.logger == nil {
		w.opts.logger = telemetry.NopLogger{}
	}
	return w
}

var _ vs.Stream = (*Writer)(nil)

func (w *Writer) quoting() bool {
	return w.quoteStack[len(w.quoteStack)-1]
}

func (w *Writer) pushQuoting(q bool) { w.quoteStack = append(w.quoteStack, q) }

func (w *Writer) popQuoting() {
	w.quoteStack = w.quoteStack[:len(w.quoteStack)-1]
}

func (w *Writer) writeByte(b byte) {
	if w.err != nil {
		return
	}
	if _, err := w.out.Write([]byte{b}); err != nil {
		w.fail(err)
	}
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.fail(err)
	}
}

func (w *Writer) fail(err error) {
	w.err = err
	w.opts.logger.Error(context.Background(), "jsonstream: write to underlying sink failed", "err", err)
}

func (w *Writer) reject(err error) error {
	w.err = err
	w.opts.logger.Error(context.Background(), "jsonstream: declined to encode value", "err", err)
	return err
}

func (w *Writer) newline() {
	if w.opts.indent == "" {
		return
	}
	w.writeByte('\n')
	for i := 0; i < w.depth; i++ {
		w.writeString(w.opts.indent)
	}
}

// beforeElement writes the comma (and, in indented mode, the following
// newline/indent) that precedes every element but the first inside the
// innermost open container.
func (w *Writer) beforeElement() {
	if !w.emptyDepth {
		w.writeByte(',')
	}
	w.emptyDepth = false
	if w.opts.indent != "" {
		w.newline()
	}
}

func (w *Writer) openContainer(open byte) {
	w.writeByte(open)
	w.emptyDepth = true
	w.depth++
}

func (w *Writer) closeContainer(c byte) {
	w.depth--
	if !w.emptyDepth {
		w.newline()
	}
	w.emptyDepth = false
	w.writeByte(c)
}

// IsTextBased reports true: the writer wants primitive bool/int/float
// values routed to it as decimal text rather than native byte encodings.
func (w *Writer) IsTextBased() bool { return true }

func (w *Writer) Unit() error { w.writeString("null"); return w.err }
func (w *Writer) Null() error { w.writeString("null"); return w.err }

func (w *Writer) Bool(v bool) error {
	if v {
		w.writeString("true")
	} else {
		w.writeString("false")
	}
	return w.err
}

func (w *Writer) TextBegin(vs.Hint) error {
	if w.quoting() {
		w.writeByte('"')
	}
	return w.err
}

func (w *Writer) TextFragment(s string) error { return w.TextFragmentComputed(s) }

func (w *Writer) TextFragmentComputed(s string) error {
	if len(w.numStack) > 0 {
		return w.feedNumberFragment(s)
	}
	// quoting() only gates whether TextBegin/TextEnd wrote the surrounding
	// '"' bytes (e.g. a map key, whose quotes MapKeyBegin/MapKeyEnd emit
	// themselves) — escaping of the content always applies.
	escapeInto(w, s)
	return w.err
}

func (w *Writer) TextEnd() error {
	if w.quoting() {
		w.writeByte('"')
	}
	return w.err
}

// BinaryBegin opens a JSON array: §6.1 renders binary content as a JSON
// array of byte integers rather than a quoted string, since JSON strings
// must be valid UTF-8 and a byte string is not guaranteed to be.
func (w *Writer) BinaryBegin(vs.Hint) error {
	w.openContainer('[')
	return w.err
}

func (w *Writer) BinaryFragment(b []byte) error { return w.BinaryFragmentComputed(b) }

func (w *Writer) BinaryFragmentComputed(b []byte) error {
	for _, by := range b {
		w.beforeElement()
		w.writeString(strconv.FormatUint(uint64(by), 10))
	}
	return w.err
}

func (w *Writer) BinaryEnd() error {
	w.closeContainer(']')
	return w.err
}

func (w *Writer) MapBegin(vs.Hint) error {
	w.openContainer('{')
	return w.err
}

func (w *Writer) MapKeyBegin() error {
	w.beforeElement()
	w.writeByte('"')
	w.pushQuoting(false)
	return w.err
}

func (w *Writer) MapKeyEnd() error {
	w.popQuoting()
	w.writeByte('"')
	return w.err
}

func (w *Writer) MapValueBegin() error {
	w.writeByte(':')
	if w.opts.indent != "" {
		w.writeByte(' ')
	}
	return w.err
}

func (w *Writer) MapValueEnd() error { return w.err }

func (w *Writer) MapEnd() error {
	w.closeContainer('}')
	return w.err
}

func (w *Writer) SeqBegin(vs.Hint) error {
	w.openContainer('[')
	return w.err
}

func (w *Writer) SeqValueBegin() error {
	w.beforeElement()
	return w.err
}

func (w *Writer) SeqValueEnd() error { return w.err }

func (w *Writer) SeqEnd() error {
	w.closeContainer(']')
	return w.err
}

func (w *Writer) writeIntToken(s string, magnitude *big.Int) error {
	if w.opts.quoteLargeInts && magnitude != nil && !fitsSafeInteger(magnitude) {
		w.writeByte('"')
		w.writeString(s)
		w.writeByte('"')
		return w.err
	}
	w.writeString(s)
	return w.err
}

func fitsSafeInteger(v *big.Int) bool {
	bound := big.NewInt(safeIntBound)
	neg := new(big.Int).Neg(bound)
	return v.Cmp(neg) >= 0 && v.Cmp(bound) <= 0
}

func (w *Writer) U8(v uint8) error  { return w.writeIntToken(strconv.FormatUint(uint64(v), 10), nil) }
func (w *Writer) U16(v uint16) error {
	return w.writeIntToken(strconv.FormatUint(uint64(v), 10), nil)
}
func (w *Writer) U32(v uint32) error {
	return w.writeIntToken(strconv.FormatUint(uint64(v), 10), big.NewInt(int64(v)))
}
func (w *Writer) U64(v uint64) error {
	return w.writeIntToken(strconv.FormatUint(v, 10), new(big.Int).SetUint64(v))
}
func (w *Writer) U128(v *big.Int) error { return w.writeIntToken(v.String(), v) }

func (w *Writer) I8(v int8) error   { return w.writeIntToken(strconv.FormatInt(int64(v), 10), nil) }
func (w *Writer) I16(v int16) error { return w.writeIntToken(strconv.FormatInt(int64(v), 10), nil) }
func (w *Writer) I32(v int32) error {
	return w.writeIntToken(strconv.FormatInt(int64(v), 10), big.NewInt(int64(v)))
}
func (w *Writer) I64(v int64) error {
	return w.writeIntToken(strconv.FormatInt(v, 10), big.NewInt(v))
}
func (w *Writer) I128(v *big.Int) error { return w.writeIntToken(v.String(), v) }

func (w *Writer) F32(v float32) error { return w.writeFloat(float64(v), 32) }
func (w *Writer) F64(v float64) error { return w.writeFloat(v, 64) }

// writeFloat maps NaN and ±Inf to null, since JSON has no literal for
// them (§4.4: "format consumers SHOULD map them to Null").
func (w *Writer) writeFloat(v float64, bits int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		w.writeString("null")
		return w.err
	}
	w.writeString(strconv.FormatFloat(v, 'g', -1, bits))
	return w.err
}

func (w *Writer) TaggedBegin(t vs.BeginTag) error {
	if len(w.enumWrapper) == 0 {
		// A Tagged group outside of an enum carries no JSON shape of its
		// own: the tag is metadata for non-textual formats, discarded
		// here same as the desugared default.
		return w.err
	}
	if t.HasTag && t.Tag.HasLabel {
		w.openContainer('{')
		w.writeByte('"')
		escapeInto(w, t.Tag.Label.Value)
		w.writeByte('"')
		w.writeByte(':')
		if w.opts.indent != "" {
			w.writeByte(' ')
		}
		w.enumWrapper[len(w.enumWrapper)-1] = true
	}
	return w.err
}

func (w *Writer) TaggedEnd(vs.BeginTag) error {
	if len(w.enumWrapper) > 0 && w.enumWrapper[len(w.enumWrapper)-1] {
		w.closeContainer('}')
	}
	return w.err
}

func (w *Writer) RecordBegin(t vs.BeginTag) error {
	w.openContainer('{')
	return w.err
}

func (w *Writer) RecordValueBegin(label tag.Label) error {
	if !label.Static {
		return w.reject(vs.NewUnsupportedError("record_value_begin", "record label must be static, got computed label "+strconv.Quote(label.Value)))
	}
	w.beforeElement()
	w.writeByte('"')
	escapeInto(w, label.Value)
	w.writeByte('"')
	w.writeByte(':')
	if w.opts.indent != "" {
		w.writeByte(' ')
	}
	return w.err
}

func (w *Writer) RecordValueEnd() error { return w.err }

func (w *Writer) RecordEnd() error {
	w.closeContainer('}')
	return w.err
}

func (w *Writer) TupleBegin(t vs.BeginTag) error {
	w.openContainer('[')
	return w.err
}

func (w *Writer) TupleValueBegin(tag.Index) error {
	w.beforeElement()
	return w.err
}

func (w *Writer) TupleValueEnd() error { return w.err }

func (w *Writer) TupleEnd() error {
	w.closeContainer(']')
	return w.err
}

func (w *Writer) EnumBegin(vs.BeginTag) error {
	w.enumWrapper = append(w.enumWrapper, false)
	return w.err
}

func (w *Writer) EnumEnd(vs.BeginTag) error {
	w.enumWrapper = w.enumWrapper[:len(w.enumWrapper)-1]
	return w.err
}

func (w *Writer) DynamicBegin() error   { return w.err }
func (w *Writer) DynamicEnd() error     { return w.err }
func (w *Writer) FixedSizeBegin() error { return w.err }
func (w *Writer) FixedSizeEnd() error   { return w.err }

func (w *Writer) OptionalSomeBegin() error { return w.err }
func (w *Writer) OptionalSomeEnd() error   { return w.err }
func (w *Writer) OptionalNone() error      { w.writeString("null"); return w.err }

func (w *Writer) IntBegin() error {
	w.numStack = append(w.numStack, &numState{})
	w.pushQuoting(false)
	return w.err
}

func (w *Writer) IntEnd() error {
	w.finishNumber()
	w.numStack = w.numStack[:len(w.numStack)-1]
	w.popQuoting()
	return w.err
}

func (w *Writer) BinfloatBegin() error {
	w.numStack = append(w.numStack, &numState{})
	w.pushQuoting(false)
	return w.err
}

func (w *Writer) BinfloatEnd() error {
	w.finishNumber()
	w.numStack = w.numStack[:len(w.numStack)-1]
	w.popQuoting()
	return w.err
}

func (w *Writer) DecfloatBegin() error {
	w.numStack = append(w.numStack, &numState{})
	w.pushQuoting(false)
	return w.err
}

func (w *Writer) DecfloatEnd() error {
	w.finishNumber()
	w.numStack = w.numStack[:len(w.numStack)-1]
	w.popQuoting()
	return w.err
}

// finishNumber flushes a short-circuited "null" if the number's text
// never produced a digit (e.g. it was entirely "NaN"/"Infinity").
func (w *Writer) finishNumber() {
	st := w.numStack[len(w.numStack)-1]
	if !st.seenDigit {
		w.writeString("null")
	}
}

func (w *Writer) ConstantBegin() error {
	w.pushQuoting(false)
	return w.err
}

func (w *Writer) ConstantEnd() error {
	w.popQuoting()
	return w.err
}

// feedNumberFragment implements §4.6's number-reconstruction handler: the
// first fragment is scanned for a leading sign or a non-numeric literal
// (NaN/Infinity), after which digits are emitted verbatim.
func (w *Writer) feedNumberFragment(s string) error {
	st := w.numStack[len(w.numStack)-1]
	if st.null {
		return w.err
	}
	if !st.seenDigit {
		if len(s) > 0 {
			switch s[0] {
			case '-':
				st.pendingMinus = true
				s = s[1:]
			case 'n', 'N', 'i', 'I':
				st.null = true
				return w.err
			}
		}
		if len(s) == 0 {
			return w.err
		}
		st.seenDigit = true
		if st.pendingMinus {
			w.writeByte('-')
		}
	}
	w.writeString(s)
	return w.err
}

// escapeTable is the 256-entry JSON string-escape lookup table (§4.6), ported
// from the original source's byte-indexed escape table: a non-zero entry
// names the short escape to emit, 'u' means a \u00XX control escape, and
// zero means copy the byte unchanged.
var escapeTable = buildEscapeTable()

func buildEscapeTable() [256]byte {
	var t [256]byte
	for i := 0; i < 0x20; i++ {
		t[i] = 'u'
	}
	t['\b'] = 'b'
	t['\t'] = 't'
	t['\n'] = 'n'
	t['\f'] = 'f'
	t['\r'] = 'r'
	t['"'] = '"'
	t['\\'] = '\\'
	return t
}

const hexDigits = "0123456789abcdef"

func escapeInto(w *Writer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		esc := escapeTable[b]
		if esc == 0 {
			continue
		}
		if start < i {
			w.writeString(s[start:i])
		}
		switch esc {
		case 'u':
			w.writeString("\\u00")
			w.writeByte(hexDigits[b>>4])
			w.writeByte(hexDigits[b&0xF])
		default:
			w.writeByte('\\')
			w.writeByte(esc)
		}
		start = i + 1
	}
	if start < len(s) {
		w.writeString(s[start:])
	}
}

