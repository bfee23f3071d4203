package jsonstream

import (
	"context"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/internal/validate"
	"github.com/kodraus/valuestream/telemetry"
)

// Resume reports whether a resumable source has more work to do (§4.7).
type Resume int

const (
	// ResumeContinue means Step must be called again to make progress.
	ResumeContinue Resume = iota
	// ResumeDone means the source has emitted its final event.
	ResumeDone
)

func (r Resume) String() string {
	if r == ResumeDone {
		return "done"
	}
	return "continue"
}

// position disambiguates which containing-context event Step emits next.
type position int

const (
	posRoot position = iota
	posMapEmpty
	posMapKey
	posMapValue
	posSeqEmpty
	posSeqElem
)

// ReaderOption configures a Reader constructed by NewReader.
type ReaderOption func(*readerOptions)

type readerOptions struct {
	logger     telemetry.Logger
	tracer     telemetry.Tracer
	metrics    telemetry.Metrics
	requestID  string
	stepBudget int
}

// WithReaderLogger attaches a logger used for diagnostic tracing of grammar
// violations the reader detects while scanning.
func WithReaderLogger(l telemetry.Logger) ReaderOption {
	return func(o *readerOptions) { o.logger = l }
}

// WithTracer attaches a tracer that spans each Step call.
func WithTracer(t telemetry.Tracer) ReaderOption {
	return func(o *readerOptions) { o.tracer = t }
}

// WithMetrics attaches a metrics recorder incremented once per Step call
// that returns without error. The reader does not report container-stack
// depth through it.
func WithMetrics(m telemetry.Metrics) ReaderOption {
	return func(o *readerOptions) { o.metrics = m }
}

// WithRequestID sets the diagnostic correlation ID included in the log
// entry the reader writes when a Step fails; it is not added to the
// returned error or to trace spans. When unset, NewReader generates one with
// uuid.NewString(), mirroring the request-correlation convention used for
// inbound transport requests elsewhere in this stack.
func WithRequestID(id string) ReaderOption {
	return func(o *readerOptions) { o.requestID = id }
}

// WithStepBudget bounds how many bytes of string content a single Step
// call scans before it cuts the in-progress text fragment short and
// returns ResumeContinue, generalizing §4.7's observation that "string
// yield points are chosen to avoid unbounded in-call work" into a
// caller-configurable limit instead of a fixed escape-driven one. Zero
// (the default) means unlimited: a string scans to its natural end (a
// closing quote or an escape) in one call.
func WithStepBudget(maxBytesPerFragment int) ReaderOption {
	return func(o *readerOptions) { o.stepBudget = maxBytesPerFragment }
}

// Reader is a resumable push-source (§4.7) over a JSON byte slice: each
// call to Step drives at most one meaningful unit of the grammar onto a
// Stream and reports whether more work remains.
type Reader struct {
	src      []byte
	head     int
	inStr    bool
	position position
	counters validate.Counters

	opts    readerOptions
	limiter *rate.Limiter
	done    bool
}

// NewReader constructs a Reader over src.
func NewReader(src []byte, opts ...ReaderOption) *Reader {
	r := &Reader{src: src}
	for _, fn := range opts {
		if fn != nil {
			fn(&r.opts)
		}
	}
	if r.opts.logger == nil {
		r.opts.logger = telemetry.NopLogger{}
	}
	if r.opts.tracer == nil {
		r.opts.tracer = telemetry.NopTracer{}
	}
	if r.opts.metrics == nil {
		r.opts.metrics = telemetry.NopMetrics{}
	}
	if r.opts.requestID == "" {
		r.opts.requestID = uuid.NewString()
	}
	return r
}

// RequestID returns the diagnostic correlation ID this Reader was
// constructed with (explicit via WithRequestID, or generated).
func (r *Reader) RequestID() string { return r.opts.requestID }

// StreamToEnd drives s with Step calls until the source reports
// ResumeDone or an error, a convenience wrapper for callers that do not
// need to interleave their own work between steps.
func (r *Reader) StreamToEnd(ctx context.Context, s vs.Stream) error {
	for {
		resume, err := r.Step(ctx, s)
		if err != nil {
			return err
		}
		if resume == ResumeDone {
			return nil
		}
	}
}

// Step runs one resumable unit of work (§4.7's stream_resume), pushing
// zero or more events onto s, and reports whether the source is
// exhausted. Calling Step again after it has returned ResumeDone returns
// ErrSourceExhausted.
func (r *Reader) Step(ctx context.Context, s vs.Stream) (Resume, error) {
	if r.done {
		return ResumeDone, vs.ErrSourceExhausted
	}
	ctx, span := r.opts.tracer.Start(ctx, "jsonstream.Reader.Step")
	defer span.End()

	if r.opts.stepBudget > 0 {
		r.limiter = rate.NewLimiter(0, r.opts.stepBudget)
	}

	resume, err := r.step(ctx, s)
	if err != nil {
		span.RecordError(err)
		r.opts.logger.Error(ctx, "jsonstream: reader step failed",
			"request_id", r.opts.requestID, "head", r.head, "err", err)
		r.done = true
		return ResumeContinue, err
	}
	r.opts.metrics.IncEvents(ctx, "json_reader_step")
	if resume == ResumeDone {
		r.done = true
	}
	return resume, nil
}

func (r *Reader) fail(op, message string) (Resume, error) {
	return ResumeContinue, vs.NewMalformedError(op, message)
}

func (r *Reader) step(ctx context.Context, s vs.Stream) (Resume, error) {
	if r.head == 0 && !r.inStr {
		if err := s.DynamicBegin(); err != nil {
			return ResumeContinue, vs.NewPropagatedError("dynamic_begin", err)
		}
	}

	if r.inStr {
		fragment, partial, newHead, err := r.strFragment(r.head)
		if err != nil {
			return r.fail("text_fragment", err.Error())
		}
		r.head = newHead
		if err := s.TextFragmentComputed(fragment); err != nil {
			return ResumeContinue, vs.NewPropagatedError("text_fragment", err)
		}
		if !partial {
			r.inStr = false
			if err := s.TextEnd(); err != nil {
				return ResumeContinue, vs.NewPropagatedError("text_end", err)
			}
			return r.maybeDone(s)
		}
		return ResumeContinue, nil
	}

	for r.head < len(r.src) {
		b := r.src[r.head]
		switch {
		case b == '"':
			r.head++
			if err := r.strBegin(s); err != nil {
				return ResumeContinue, err
			}
			fragment, partial, newHead, ferr := r.strFragment(r.head)
			if ferr != nil {
				return r.fail("text_fragment", ferr.Error())
			}
			r.head = newHead
			if !partial {
				if err := s.TextBegin(vs.NoHint); err != nil {
					return ResumeContinue, vs.NewPropagatedError("text_begin", err)
				}
				if err := s.TextFragmentComputed(fragment); err != nil {
					return ResumeContinue, vs.NewPropagatedError("text_fragment", err)
				}
				if err := s.TextEnd(); err != nil {
					return ResumeContinue, vs.NewPropagatedError("text_end", err)
				}
				return r.maybeDone(s)
			}
			r.inStr = true
			if err := s.TextBegin(vs.NoHint); err != nil {
				return ResumeContinue, vs.NewPropagatedError("text_begin", err)
			}
			if err := s.TextFragmentComputed(fragment); err != nil {
				return ResumeContinue, vs.NewPropagatedError("text_fragment", err)
			}
			return ResumeContinue, nil

		case b == '{':
			r.head++
			if err := r.mapBegin(s); err != nil {
				return ResumeContinue, err
			}
			return ResumeContinue, nil

		case b == '}':
			r.head++
			if err := r.mapEnd(s); err != nil {
				return ResumeContinue, err
			}
			return r.maybeDone(s)

		case b == '[':
			r.head++
			if err := r.seqBegin(s); err != nil {
				return ResumeContinue, err
			}
			return ResumeContinue, nil

		case b == ']':
			r.head++
			if err := r.seqEnd(s); err != nil {
				return ResumeContinue, err
			}
			return r.maybeDone(s)

		case b == ':':
			r.head++
			if r.position != posMapKey {
				return r.fail("map_key_end", "':' outside a map key context")
			}
			r.position = posMapValue
			if err := s.MapKeyEnd(); err != nil {
				return ResumeContinue, vs.NewPropagatedError("map_key_end", err)
			}
			return ResumeContinue, nil

		case b == ',':
			r.head++
			if err := r.valueSeqSep(s); err != nil {
				return ResumeContinue, err
			}
			return ResumeContinue, nil

		case b == 't':
			if !matchLiteral(r.src, r.head, "true") {
				return r.fail("bool", "invalid literal, expected 'true'")
			}
			r.head += 4
			if err := r.valueBegin(s); err != nil {
				return ResumeContinue, err
			}
			if err := s.Bool(true); err != nil {
				return ResumeContinue, vs.NewPropagatedError("bool", err)
			}
			return r.maybeDone(s)

		case b == 'f':
			if !matchLiteral(r.src, r.head, "false") {
				return r.fail("bool", "invalid literal, expected 'false'")
			}
			r.head += 5
			if err := r.valueBegin(s); err != nil {
				return ResumeContinue, err
			}
			if err := s.Bool(false); err != nil {
				return ResumeContinue, vs.NewPropagatedError("bool", err)
			}
			return r.maybeDone(s)

		case b == 'n':
			if !matchLiteral(r.src, r.head, "null") {
				return r.fail("null", "invalid literal, expected 'null'")
			}
			r.head += 4
			if err := r.valueBegin(s); err != nil {
				return ResumeContinue, err
			}
			if err := s.Null(); err != nil {
				return ResumeContinue, vs.NewPropagatedError("null", err)
			}
			return r.maybeDone(s)

		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			r.head++

		case b >= '0' && b <= '9' || b == '-':
			return r.number(s)

		default:
			return r.fail("value", "unexpected byte "+strconv.QuoteRune(rune(b)))
		}
	}

	return r.maybeDone(s)
}

func matchLiteral(src []byte, head int, lit string) bool {
	if head+len(lit) > len(src) {
		return false
	}
	return string(src[head:head+len(lit)]) == lit
}

func (r *Reader) maybeDone(s vs.Stream) (Resume, error) {
	if r.head < len(r.src) {
		return ResumeContinue, nil
	}
	if !r.counters.Balanced() {
		return r.fail("end_of_input", "unbalanced container nesting at end of input")
	}
	if err := s.DynamicEnd(); err != nil {
		return ResumeContinue, vs.NewPropagatedError("dynamic_end", err)
	}
	return ResumeDone, nil
}

func (r *Reader) mapBegin(s vs.Stream) error {
	switch r.position {
	case posSeqEmpty, posSeqElem:
		if err := s.SeqValueBegin(); err != nil {
			return vs.NewPropagatedError("seq_value_begin", err)
		}
	case posMapValue:
		if err := s.MapValueBegin(); err != nil {
			return vs.NewPropagatedError("map_value_begin", err)
		}
	case posRoot:
	default:
		return vs.NewMalformedError("map_begin", "unexpected '{' in this context")
	}
	if err := r.counters.MapOpen(); err != nil {
		return vs.NewMalformedError("map_begin", err.Error())
	}
	r.position = posMapEmpty
	if err := s.MapBegin(vs.NoHint); err != nil {
		return vs.NewPropagatedError("map_begin", err)
	}
	return nil
}

func (r *Reader) mapEnd(s vs.Stream) error {
	switch r.position {
	case posMapEmpty:
	case posMapValue:
		if err := s.MapValueEnd(); err != nil {
			return vs.NewPropagatedError("map_value_end", err)
		}
	default:
		return vs.NewMalformedError("map_end", "unexpected '}' in this context")
	}
	if err := r.counters.MapClose(); err != nil {
		return vs.NewMalformedError("map_end", err.Error())
	}
	r.position = containerToPosition(r.counters.Current())
	if err := s.MapEnd(); err != nil {
		return vs.NewPropagatedError("map_end", err)
	}
	return nil
}

func (r *Reader) seqBegin(s vs.Stream) error {
	switch r.position {
	case posSeqEmpty, posSeqElem:
		if err := s.SeqValueBegin(); err != nil {
			return vs.NewPropagatedError("seq_value_begin", err)
		}
	case posMapValue:
		if err := s.MapValueBegin(); err != nil {
			return vs.NewPropagatedError("map_value_begin", err)
		}
	case posRoot:
	default:
		return vs.NewMalformedError("seq_begin", "unexpected '[' in this context")
	}
	if err := r.counters.SeqOpen(); err != nil {
		return vs.NewMalformedError("seq_begin", err.Error())
	}
	r.position = posSeqEmpty
	if err := s.SeqBegin(vs.NoHint); err != nil {
		return vs.NewPropagatedError("seq_begin", err)
	}
	return nil
}

func (r *Reader) seqEnd(s vs.Stream) error {
	switch r.position {
	case posSeqEmpty:
	case posSeqElem:
		if err := s.SeqValueEnd(); err != nil {
			return vs.NewPropagatedError("seq_value_end", err)
		}
	default:
		return vs.NewMalformedError("seq_end", "unexpected ']' in this context")
	}
	if err := r.counters.SeqClose(); err != nil {
		return vs.NewMalformedError("seq_end", err.Error())
	}
	r.position = containerToPosition(r.counters.Current())
	if err := s.SeqEnd(); err != nil {
		return vs.NewPropagatedError("seq_end", err)
	}
	return nil
}

func containerToPosition(c validate.Container) position {
	switch c {
	case validate.Map:
		return posMapValue
	case validate.Seq:
		return posSeqElem
	default:
		return posRoot
	}
}

func (r *Reader) valueSeqSep(s vs.Stream) error {
	switch r.position {
	case posSeqElem:
		if err := s.SeqValueEnd(); err != nil {
			return vs.NewPropagatedError("seq_value_end", err)
		}
		return nil
	case posMapValue:
		r.position = posMapKey
		if err := s.MapValueEnd(); err != nil {
			return vs.NewPropagatedError("map_value_end", err)
		}
		return nil
	default:
		return vs.NewMalformedError("value_sep", "unexpected ',' in this context")
	}
}

func (r *Reader) strBegin(s vs.Stream) error {
	switch r.position {
	case posSeqEmpty, posSeqElem:
		r.position = posSeqElem
		if err := s.SeqValueBegin(); err != nil {
			return vs.NewPropagatedError("seq_value_begin", err)
		}
	case posMapEmpty:
		r.position = posMapKey
		if err := s.MapKeyBegin(); err != nil {
			return vs.NewPropagatedError("map_key_begin", err)
		}
	case posMapKey:
		if err := s.MapKeyBegin(); err != nil {
			return vs.NewPropagatedError("map_key_begin", err)
		}
	case posMapValue:
		if err := s.MapValueBegin(); err != nil {
			return vs.NewPropagatedError("map_value_begin", err)
		}
	case posRoot:
	default:
		return vs.NewMalformedError("text_begin", "unexpected string in this context")
	}
	return nil
}

func (r *Reader) valueBegin(s vs.Stream) error {
	switch r.position {
	case posSeqEmpty, posSeqElem:
		r.position = posSeqElem
		if err := s.SeqValueBegin(); err != nil {
			return vs.NewPropagatedError("seq_value_begin", err)
		}
	case posMapValue:
		if err := s.MapValueBegin(); err != nil {
			return vs.NewPropagatedError("map_value_begin", err)
		}
	case posRoot:
	default:
		return vs.NewMalformedError("value_begin", "unexpected value in this context")
	}
	return nil
}

// number scans a JSON number literal (§4.7) and emits it either as a
// text-wrapped IntBegin/DecfloatBegin substream (text-based consumers) or
// as a concrete typed primitive (binary-based consumers).
func (r *Reader) number(s vs.Stream) (Resume, error) {
	start := r.head
	head := r.head
	isFloat := false
	if head < len(r.src) && r.src[head] == '-' {
		head++
	}
	for head < len(r.src) {
		switch r.src[head] {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			head++
		case '.', 'e', 'E', '+':
			isFloat = true
			head++
		case '-':
			if r.src[head-1] != 'e' && r.src[head-1] != 'E' {
				goto scanned
			}
			head++
		default:
			goto scanned
		}
	}
scanned:
	if head == start {
		return r.fail("number", "expected a number")
	}
	lit := string(r.src[start:head])
	r.head = head

	if err := r.valueBegin(s); err != nil {
		return ResumeContinue, err
	}

	if !s.IsTextBased() {
		if err := r.emitConcreteNumber(s, lit, isFloat); err != nil {
			return ResumeContinue, err
		}
		return r.maybeDone(s)
	}

	var beginErr, endErr error
	if isFloat {
		beginErr = s.DecfloatBegin()
	} else {
		beginErr = s.IntBegin()
	}
	if beginErr != nil {
		return ResumeContinue, vs.NewPropagatedError("number_begin", beginErr)
	}
	if err := s.TextBegin(vs.NoHint); err != nil {
		return ResumeContinue, vs.NewPropagatedError("text_begin", err)
	}
	if err := s.TextFragmentComputed(lit); err != nil {
		return ResumeContinue, vs.NewPropagatedError("text_fragment", err)
	}
	if err := s.TextEnd(); err != nil {
		return ResumeContinue, vs.NewPropagatedError("text_end", err)
	}
	if isFloat {
		endErr = s.DecfloatEnd()
	} else {
		endErr = s.IntEnd()
	}
	if endErr != nil {
		return ResumeContinue, vs.NewPropagatedError("number_end", endErr)
	}
	return r.maybeDone(s)
}

func (r *Reader) emitConcreteNumber(s vs.Stream, lit string, isFloat bool) error {
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return vs.NewMalformedError("number", "invalid float literal: "+err.Error())
		}
		if serr := s.F64(f); serr != nil {
			return vs.NewPropagatedError("f64", serr)
		}
		return nil
	}
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		if serr := s.I64(i); serr != nil {
			return vs.NewPropagatedError("i64", serr)
		}
		return nil
	}
	bi, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return vs.NewMalformedError("number", "invalid integer literal")
	}
	if serr := s.I128(bi); serr != nil {
		return vs.NewPropagatedError("i128", serr)
	}
	return nil
}

// strFragment scans forward from head looking for the closing quote or
// an escape sequence, honoring the configured step budget (§4.7's escape
// handling, generalized to also yield on a byte-count cutoff).
//
// Escapes currently supported: \\ \n \r \" (§4.7 §3): any other escape is
// reported as malformed rather than silently passed through.
func (r *Reader) strFragment(head int) (fragment string, partial bool, newHead int, err error) {
	src := r.src
	if head < len(src) && src[head] == '\\' {
		if head+1 >= len(src) {
			return "", false, head, errShortEscape
		}
		switch src[head+1] {
		case 'n':
			return "\n", true, head + 2, nil
		case 'r':
			return "\r", true, head + 2, nil
		case '"':
			return "\"", true, head + 2, nil
		case '\\':
			return "\\", true, head + 2, nil
		default:
			return "", false, head, errUnsupportedEscape
		}
	}

	start := head
	for head < len(src) {
		switch src[head] {
		case '\\':
			return string(src[start:head]), true, head, nil
		case '"':
			return string(src[start:head]), false, head + 1, nil
		default:
			if r.limiter != nil && !r.limiter.Allow() {
				return string(src[start:head]), true, head, nil
			}
			head++
		}
	}
	return "", false, head, errUnterminatedString
}

var (
	errShortEscape        = vs.NewMalformedError("text_fragment", "truncated escape sequence at end of input")
	errUnsupportedEscape  = vs.NewMalformedError("text_fragment", "unsupported escape sequence, only \\\\ \\n \\r \\\" are implemented")
	errUnterminatedString = vs.NewMalformedError("text_fragment", "unterminated string at end of input")
)
