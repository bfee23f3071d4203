package valuestream

import (
	"errors"
	"fmt"
)

// Kind classifies the observable subcategory of a streaming protocol
// failure (§7). Every event method returns an error; when that error is a
// *Error, Kind says where it was raised.
type Kind string

const (
	// KindUnsupported indicates the consumer cannot represent this event
	// at this point, e.g. a JSON writer receiving MapBegin while unquoted
	// inside a number context.
	KindUnsupported Kind = "unsupported"

	// KindMalformed indicates a protocol invariant was violated:
	// unbalanced nesting, a text fragment split off a UTF-8 character
	// boundary, an escape sequence after end-of-input in the JSON reader.
	KindMalformed Kind = "malformed"

	// KindPropagated indicates an I/O or formatter error surfaced from
	// the underlying sink or source rather than raised by the protocol
	// itself.
	KindPropagated Kind = "propagated"
)

// Error is the single opaque error kind the protocol raises, distinguished
// only by where it was raised (Kind). Error wraps an optional cause so
// callers can still unwrap through to the underlying I/O error via
// errors.Is / errors.As.
type Error struct {
	kind    Kind
	op      string
	message string
	cause   error
}

// NewUnsupportedError constructs a KindUnsupported Error. op names the
// event method that could not be handled (e.g. "map_begin").
func NewUnsupportedError(op, message string) *Error {
	if op == "" {
		panic("valuestream: op is required")
	}
	return &Error{kind: KindUnsupported, op: op, message: message}
}

// NewMalformedError constructs a KindMalformed Error.
func NewMalformedError(op, message string) *Error {
	if op == "" {
		panic("valuestream: op is required")
	}
	return &Error{kind: KindMalformed, op: op, message: message}
}

// NewPropagatedError wraps cause as a KindPropagated Error. cause must be
// non-nil: a propagated error always has an underlying failure to point
// to.
func NewPropagatedError(op string, cause error) *Error {
	if op == "" {
		panic("valuestream: op is required")
	}
	if cause == nil {
		panic("valuestream: cause is required for a propagated error")
	}
	return &Error{kind: KindPropagated, op: op, cause: cause}
}

// Kind returns the coarse-grained classification of the failure.
func (e *Error) Kind() Kind { return e.kind }

// Op returns the event method name that raised the error.
func (e *Error) Op() string { return e.op }

// Unwrap exposes the wrapped cause, if any, to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Error() string {
	msg := e.message
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	if msg == "" {
		msg = string(e.kind)
	}
	return fmt.Sprintf("valuestream: %s: %s: %s", e.kind, e.op, msg)
}

// ErrStreamClosed is returned by any event method called on a Validator
// after a prior call has already failed a grammar check. Per §7's propagation policy, a failure
// aborts the current stream; it is no longer usable, and callers must
// tolerate truncation after an error.
var ErrStreamClosed = errors.New("valuestream: stream is closed after a prior error")

// ErrSourceExhausted is returned by a resumable source's Step method (such
// as jsonstream.Reader.Step) when it is called again after already
// reporting ResumeDone or failing.
var ErrSourceExhausted = errors.New("valuestream: source already reported done")

// IsKind reports whether err is a *Error (directly or via errors.As) with
// the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}
