package valuestream

import (
	"context"
	"math/big"

	"github.com/kodraus/valuestream/internal/validate"
	"github.com/kodraus/valuestream/tag"
	"github.com/kodraus/valuestream/telemetry"
)

// frame identifies one entry on the validator's container stack (§4.2's
// conceptual states: Root, Map(key|value), Seq, Record, Tuple, Enum,
// Text, Binary, Number).
type frame int

const (
	frameMapKey frame = iota
	frameMapValue
	frameSeq
	frameRecordKey
	frameRecordValue
	frameTuple
	frameEnum
	frameText
	frameBinary
	frameNumber
)

// ValidatorOption configures a Validator constructed by NewValidator.
type ValidatorOption func(*validatorOptions)

type validatorOptions struct {
	metrics telemetry.Metrics
}

// WithMetrics attaches a Metrics recorder that observes the container
// stack depth on every push and pop, giving an operator visibility into
// how deeply nested the values a producer emits actually get.
func WithMetrics(m telemetry.Metrics) ValidatorOption {
	return func(o *validatorOptions) { o.metrics = m }
}

// Validator wraps any Stream and checks every event against the grammar
// in §3/§4.2 before forwarding it, surfacing precise protocol violations
// as *Error values of KindMalformed. A production-grade producer runs its
// debug builds through a Validator; a release build may trust itself and
// skip it (§4.2).
type Validator struct {
	next     Stream
	stack    []frame
	counters validate.Counters
	closed   bool
	opts     validatorOptions
}

// NewValidator returns a Stream that validates events before forwarding
// them to next.
func NewValidator(next Stream, opts ...ValidatorOption) *Validator {
	v := &Validator{next: next}
	for _, fn := range opts {
		if fn != nil {
			fn(&v.opts)
		}
	}
	if v.opts.metrics == nil {
		v.opts.metrics = telemetry.NopMetrics{}
	}
	return v
}

// recordDepth reports the current container-stack depth, called whenever
// push or pop changes it.
func (v *Validator) recordDepth() {
	v.opts.metrics.RecordDepth(context.Background(), len(v.stack))
}

var _ Stream = (*Validator)(nil)

func (v *Validator) fail(op, message string) error {
	v.closed = true
	return NewMalformedError(op, message)
}

func (v *Validator) top() (frame, bool) {
	if len(v.stack) == 0 {
		return 0, false
	}
	return v.stack[len(v.stack)-1], true
}

func (v *Validator) push(f frame) {
	v.stack = append(v.stack, f)
	v.recordDepth()
}

func (v *Validator) pop(op string, want frame) error {
	f, ok := v.top()
	if !ok || f != want {
		return v.fail(op, "unbalanced or interleaved container close")
	}
	v.stack = v.stack[:len(v.stack)-1]
	v.recordDepth()
	return nil
}

// checkNotInFragment fails if the cursor is currently inside a Text or
// Binary substream, where only matching-kind fragment events are legal
// (invariant 2 of §3).
func (v *Validator) checkNotInFragment(op string) error {
	if f, ok := v.top(); ok && (f == frameText || f == frameBinary) {
		return v.fail(op, "text/binary substreams may not nest other events")
	}
	return nil
}

func (v *Validator) guard(op string) error {
	if v.closed {
		return ErrStreamClosed
	}
	return v.checkNotInFragment(op)
}

func (v *Validator) IsTextBased() bool { return v.next.IsTextBased() }

func (v *Validator) Unit() error {
	if err := v.guard("unit"); err != nil {
		return err
	}
	return v.next.Unit()
}

func (v *Validator) Null() error {
	if err := v.guard("null"); err != nil {
		return err
	}
	return v.next.Null()
}

func (v *Validator) Bool(b bool) error {
	if err := v.guard("bool"); err != nil {
		return err
	}
	return v.next.Bool(b)
}

func (v *Validator) TextBegin(hint Hint) error {
	if err := v.guard("text_begin"); err != nil {
		return err
	}
	v.push(frameText)
	return v.next.TextBegin(hint)
}

func (v *Validator) textFragment(op string, call func() error) error {
	if v.closed {
		return ErrStreamClosed
	}
	if f, ok := v.top(); !ok || f != frameText {
		return v.fail(op, "text fragment outside of TextBegin/TextEnd")
	}
	return call()
}

func (v *Validator) TextFragment(s string) error {
	return v.textFragment("text_fragment", func() error { return v.next.TextFragment(s) })
}

func (v *Validator) TextFragmentComputed(s string) error {
	return v.textFragment("text_fragment_computed", func() error { return v.next.TextFragmentComputed(s) })
}

func (v *Validator) TextEnd() error {
	if v.closed {
		return ErrStreamClosed
	}
	if err := v.pop("text_end", frameText); err != nil {
		return err
	}
	return v.next.TextEnd()
}

func (v *Validator) BinaryBegin(hint Hint) error {
	if err := v.guard("binary_begin"); err != nil {
		return err
	}
	v.push(frameBinary)
	return v.next.BinaryBegin(hint)
}

func (v *Validator) binaryFragment(op string, call func() error) error {
	if v.closed {
		return ErrStreamClosed
	}
	if f, ok := v.top(); !ok || f != frameBinary {
		return v.fail(op, "binary fragment outside of BinaryBegin/BinaryEnd")
	}
	return call()
}

func (v *Validator) BinaryFragment(b []byte) error {
	return v.binaryFragment("binary_fragment", func() error { return v.next.BinaryFragment(b) })
}

func (v *Validator) BinaryFragmentComputed(b []byte) error {
	return v.binaryFragment("binary_fragment_computed", func() error { return v.next.BinaryFragmentComputed(b) })
}

func (v *Validator) BinaryEnd() error {
	if v.closed {
		return ErrStreamClosed
	}
	if err := v.pop("binary_end", frameBinary); err != nil {
		return err
	}
	return v.next.BinaryEnd()
}

func (v *Validator) MapBegin(hint Hint) error {
	if err := v.guard("map_begin"); err != nil {
		return err
	}
	if err := v.counters.MapOpen(); err != nil {
		return v.fail("map_begin", err.Error())
	}
	v.push(frameMapKey)
	return v.next.MapBegin(hint)
}

func (v *Validator) MapKeyBegin() error {
	if err := v.guard("map_key_begin"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameMapKey {
		return v.fail("map_key_begin", "expected a map awaiting a key")
	}
	return v.next.MapKeyBegin()
}

func (v *Validator) MapKeyEnd() error {
	if err := v.guard("map_key_end"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameMapKey {
		return v.fail("map_key_end", "MapKeyEnd without a matching MapKeyBegin")
	}
	v.stack[len(v.stack)-1] = frameMapValue
	return v.next.MapKeyEnd()
}

func (v *Validator) MapValueBegin() error {
	if err := v.guard("map_value_begin"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameMapValue {
		return v.fail("map_value_begin", "expected a map awaiting a value")
	}
	return v.next.MapValueBegin()
}

func (v *Validator) MapValueEnd() error {
	if err := v.guard("map_value_end"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameMapValue {
		return v.fail("map_value_end", "MapValueEnd without a matching MapValueBegin")
	}
	v.stack[len(v.stack)-1] = frameMapKey
	return v.next.MapValueEnd()
}

func (v *Validator) MapEnd() error {
	if v.closed {
		return ErrStreamClosed
	}
	if f, ok := v.top(); !ok || f != frameMapKey {
		return v.fail("map_end", "MapEnd while a key/value pair is still open")
	}
	v.stack = v.stack[:len(v.stack)-1]
	v.recordDepth()
	if err := v.counters.MapClose(); err != nil {
		return v.fail("map_end", err.Error())
	}
	return v.next.MapEnd()
}

func (v *Validator) SeqBegin(hint Hint) error {
	if err := v.guard("seq_begin"); err != nil {
		return err
	}
	if err := v.counters.SeqOpen(); err != nil {
		return v.fail("seq_begin", err.Error())
	}
	v.push(frameSeq)
	return v.next.SeqBegin(hint)
}

func (v *Validator) SeqValueBegin() error {
	if err := v.guard("seq_value_begin"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameSeq {
		return v.fail("seq_value_begin", "expected an open sequence")
	}
	return v.next.SeqValueBegin()
}

func (v *Validator) SeqValueEnd() error {
	if err := v.guard("seq_value_end"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameSeq {
		return v.fail("seq_value_end", "expected an open sequence")
	}
	return v.next.SeqValueEnd()
}

func (v *Validator) SeqEnd() error {
	if v.closed {
		return ErrStreamClosed
	}
	if err := v.pop("seq_end", frameSeq); err != nil {
		return err
	}
	if err := v.counters.SeqClose(); err != nil {
		return v.fail("seq_end", err.Error())
	}
	return v.next.SeqEnd()
}

func (v *Validator) U8(x uint8) error      { return v.guardedPrimitive("u8", func() error { return v.next.U8(x) }) }
func (v *Validator) U16(x uint16) error    { return v.guardedPrimitive("u16", func() error { return v.next.U16(x) }) }
func (v *Validator) U32(x uint32) error    { return v.guardedPrimitive("u32", func() error { return v.next.U32(x) }) }
func (v *Validator) U64(x uint64) error    { return v.guardedPrimitive("u64", func() error { return v.next.U64(x) }) }
func (v *Validator) U128(x *big.Int) error { return v.guardedPrimitive("u128", func() error { return v.next.U128(x) }) }
func (v *Validator) I8(x int8) error       { return v.guardedPrimitive("i8", func() error { return v.next.I8(x) }) }
func (v *Validator) I16(x int16) error     { return v.guardedPrimitive("i16", func() error { return v.next.I16(x) }) }
func (v *Validator) I32(x int32) error     { return v.guardedPrimitive("i32", func() error { return v.next.I32(x) }) }
func (v *Validator) I64(x int64) error     { return v.guardedPrimitive("i64", func() error { return v.next.I64(x) }) }
func (v *Validator) I128(x *big.Int) error { return v.guardedPrimitive("i128", func() error { return v.next.I128(x) }) }
func (v *Validator) F32(x float32) error   { return v.guardedPrimitive("f32", func() error { return v.next.F32(x) }) }
func (v *Validator) F64(x float64) error   { return v.guardedPrimitive("f64", func() error { return v.next.F64(x) }) }

func (v *Validator) guardedPrimitive(op string, call func() error) error {
	if err := v.guard(op); err != nil {
		return err
	}
	return call()
}

func (v *Validator) TaggedBegin(t BeginTag) error {
	if err := v.guard("tagged_begin"); err != nil {
		return err
	}
	return v.next.TaggedBegin(t)
}

func (v *Validator) TaggedEnd(t BeginTag) error {
	if err := v.guard("tagged_end"); err != nil {
		return err
	}
	return v.next.TaggedEnd(t)
}

func (v *Validator) RecordBegin(t BeginTag) error {
	if err := v.guard("record_begin"); err != nil {
		return err
	}
	v.push(frameRecordKey)
	return v.next.RecordBegin(t)
}

// RecordValueBegin does not reject a computed (non-static) label: that
// restriction is specific to wire formats whose encoding of a record
// requires a stable field name (§6.1, enforced by jsonstream.Writer), not
// a universal grammar invariant — a computed label is a perfectly valid
// event for a format that doesn't need one (e.g. an index-addressed
// binary format).
func (v *Validator) RecordValueBegin(label tag.Label) error {
	if err := v.guard("record_value_begin"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameRecordKey {
		return v.fail("record_value_begin", "expected a record awaiting a field")
	}
	v.stack[len(v.stack)-1] = frameRecordValue
	return v.next.RecordValueBegin(label)
}

func (v *Validator) RecordValueEnd() error {
	if err := v.guard("record_value_end"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameRecordValue {
		return v.fail("record_value_end", "RecordValueEnd without a matching RecordValueBegin")
	}
	v.stack[len(v.stack)-1] = frameRecordKey
	return v.next.RecordValueEnd()
}

func (v *Validator) RecordEnd() error {
	if v.closed {
		return ErrStreamClosed
	}
	if err := v.pop("record_end", frameRecordKey); err != nil {
		return err
	}
	return v.next.RecordEnd()
}

func (v *Validator) TupleBegin(t BeginTag) error {
	if err := v.guard("tuple_begin"); err != nil {
		return err
	}
	v.push(frameTuple)
	return v.next.TupleBegin(t)
}

func (v *Validator) TupleValueBegin(idx tag.Index) error {
	if err := v.guard("tuple_value_begin"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameTuple {
		return v.fail("tuple_value_begin", "expected an open tuple")
	}
	return v.next.TupleValueBegin(idx)
}

func (v *Validator) TupleValueEnd() error {
	if err := v.guard("tuple_value_end"); err != nil {
		return err
	}
	if f, ok := v.top(); !ok || f != frameTuple {
		return v.fail("tuple_value_end", "expected an open tuple")
	}
	return v.next.TupleValueEnd()
}

func (v *Validator) TupleEnd() error {
	if v.closed {
		return ErrStreamClosed
	}
	if err := v.pop("tuple_end", frameTuple); err != nil {
		return err
	}
	return v.next.TupleEnd()
}

// EnumBegin/EnumEnd check the nesting part of invariant 4 of §3: the
// validator pushes a frameEnum marker that stays on the stack, underneath
// whatever the inner group itself pushes, and EnumEnd pops it only once
// every container opened inside the enum is closed. The number of groups
// or values between EnumBegin and EnumEnd is not checked: an enum holding
// no value, or several, is accepted.
func (v *Validator) EnumBegin(t BeginTag) error {
	if err := v.guard("enum_begin"); err != nil {
		return err
	}
	v.push(frameEnum)
	return v.next.EnumBegin(t)
}

func (v *Validator) EnumEnd(t BeginTag) error {
	if v.closed {
		return ErrStreamClosed
	}
	f, ok := v.top()
	if !ok || f != frameEnum {
		return v.fail("enum_end", "EnumEnd without a matching EnumBegin")
	}
	v.stack = v.stack[:len(v.stack)-1]
	v.recordDepth()
	return v.next.EnumEnd(t)
}

func (v *Validator) DynamicBegin() error {
	if err := v.guard("dynamic_begin"); err != nil {
		return err
	}
	return v.next.DynamicBegin()
}

func (v *Validator) DynamicEnd() error {
	if err := v.guard("dynamic_end"); err != nil {
		return err
	}
	return v.next.DynamicEnd()
}

func (v *Validator) FixedSizeBegin() error {
	if err := v.guard("fixed_size_begin"); err != nil {
		return err
	}
	return v.next.FixedSizeBegin()
}

func (v *Validator) FixedSizeEnd() error {
	if err := v.guard("fixed_size_end"); err != nil {
		return err
	}
	return v.next.FixedSizeEnd()
}

func (v *Validator) OptionalSomeBegin() error {
	if err := v.guard("optional_some_begin"); err != nil {
		return err
	}
	return v.next.OptionalSomeBegin()
}

func (v *Validator) OptionalSomeEnd() error {
	if err := v.guard("optional_some_end"); err != nil {
		return err
	}
	return v.next.OptionalSomeEnd()
}

func (v *Validator) OptionalNone() error {
	if err := v.guard("optional_none"); err != nil {
		return err
	}
	return v.next.OptionalNone()
}

func (v *Validator) numberWrapBegin(op string, call func() error) error {
	if err := v.guard(op); err != nil {
		return err
	}
	v.push(frameNumber)
	return call()
}

func (v *Validator) numberWrapEnd(op string, call func() error) error {
	if v.closed {
		return ErrStreamClosed
	}
	if err := v.pop(op, frameNumber); err != nil {
		return err
	}
	return call()
}

func (v *Validator) IntBegin() error { return v.numberWrapBegin("int_begin", v.next.IntBegin) }
func (v *Validator) IntEnd() error   { return v.numberWrapEnd("int_end", v.next.IntEnd) }

func (v *Validator) BinfloatBegin() error {
	return v.numberWrapBegin("binfloat_begin", v.next.BinfloatBegin)
}
func (v *Validator) BinfloatEnd() error { return v.numberWrapEnd("binfloat_end", v.next.BinfloatEnd) }

func (v *Validator) DecfloatBegin() error {
	return v.numberWrapBegin("decfloat_begin", v.next.DecfloatBegin)
}
func (v *Validator) DecfloatEnd() error { return v.numberWrapEnd("decfloat_end", v.next.DecfloatEnd) }

func (v *Validator) ConstantBegin() error {
	if err := v.guard("constant_begin"); err != nil {
		return err
	}
	return v.next.ConstantBegin()
}

func (v *Validator) ConstantEnd() error {
	if err := v.guard("constant_end"); err != nil {
		return err
	}
	return v.next.ConstantEnd()
}

// Done reports whether the stream has returned to the root with every
// container balanced. Call it after driving a Value to completion to
// assert the Balance property from §8.
func (v *Validator) Done() bool {
	return len(v.stack) == 0 && v.counters.Balanced() && !v.closed
}
