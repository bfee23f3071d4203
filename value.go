package valuestream

import "math/big"

// Value is the producer trait (§4.3): the contract implemented by any Go
// type that can describe itself as a sequence of events.
type Value interface {
	// Stream pushes all events representing the value onto s. It fails
	// only if s fails: the value itself never raises a protocol error
	// about its own shape, only about the parts of itself it cannot
	// represent (which it reports via s returning an error).
	Stream(s Stream) error

	// IsDynamic hints to consumers that inline known-static values that
	// this value's concrete type is not known statically at the call
	// site, so it should be wrapped in DynamicBegin/DynamicEnd. The
	// blanket behavior for ordinary Go values is true; primitive
	// wrapper types in the values package override it to false.
	IsDynamic() bool
}

// Fast-path accessor interfaces. A Value may optionally implement any of
// these to let a consumer short-circuit the full event dance when it only
// needs a primitive view. Contract (§4.3): if an accessor returns
// (x, true), the value must also stream as exactly that primitive event
// (possibly wrapped in OptionalSomeBegin/End or DynamicBegin/End).
type (
	BoolAccessor interface {
		ToBool() (v bool, ok bool)
	}
	Int64Accessor interface {
		ToInt64() (v int64, ok bool)
	}
	Uint64Accessor interface {
		ToUint64() (v uint64, ok bool)
	}
	BigIntAccessor interface {
		ToBigInt() (v *big.Int, ok bool)
	}
	Float64Accessor interface {
		ToFloat64() (v float64, ok bool)
	}
	TextAccessor interface {
		ToText() (v string, ok bool)
	}
	BinaryAccessor interface {
		ToBinary() (v []byte, ok bool)
	}
)

// ToBool returns v's bool view. If v implements BoolAccessor the override
// is used directly; otherwise a single-primitive extraction stream is run
// against v per the accessor-consistency contract in §8.
func ToBool(v Value) (bool, bool) {
	if a, ok := v.(BoolAccessor); ok {
		return a.ToBool()
	}
	r := newPrimitiveRecorder()
	if err := v.Stream(r); err != nil || !r.matched {
		return false, false
	}
	b, ok := r.value.(bool)
	return b, ok
}

// ToInt64 returns v's int64 view, widening any 8- to 64-bit integer that
// fits. A 128-bit integer event is not converted, even when its value fits.
func ToInt64(v Value) (int64, bool) {
	if a, ok := v.(Int64Accessor); ok {
		return a.ToInt64()
	}
	r := newPrimitiveRecorder()
	if err := v.Stream(r); err != nil || !r.matched {
		return 0, false
	}
	switch n := r.value.(type) {
	case int64:
		return n, true
	case uint64:
		if n <= uint64(1<<63-1) {
			return int64(n), true
		}
	}
	return 0, false
}

// ToUint64 returns v's uint64 view.
func ToUint64(v Value) (uint64, bool) {
	if a, ok := v.(Uint64Accessor); ok {
		return a.ToUint64()
	}
	r := newPrimitiveRecorder()
	if err := v.Stream(r); err != nil || !r.matched {
		return 0, false
	}
	switch n := r.value.(type) {
	case uint64:
		return n, true
	case int64:
		if n >= 0 {
			return uint64(n), true
		}
	}
	return 0, false
}

// ToFloat64 returns v's float64 view.
func ToFloat64(v Value) (float64, bool) {
	if a, ok := v.(Float64Accessor); ok {
		return a.ToFloat64()
	}
	r := newPrimitiveRecorder()
	if err := v.Stream(r); err != nil || !r.matched {
		return 0, false
	}
	switch n := r.value.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ToText returns v's string view.
func ToText(v Value) (string, bool) {
	if a, ok := v.(TextAccessor); ok {
		return a.ToText()
	}
	r := newPrimitiveRecorder()
	if err := v.Stream(r); err != nil || !r.matched {
		return "", false
	}
	s, ok := r.value.(string)
	return s, ok
}

// ToBinary returns v's []byte view.
func ToBinary(v Value) ([]byte, bool) {
	if a, ok := v.(BinaryAccessor); ok {
		return a.ToBinary()
	}
	r := newPrimitiveRecorder()
	if err := v.Stream(r); err != nil || !r.matched {
		return nil, false
	}
	b, ok := r.value.([]byte)
	return b, ok
}

// primitiveRecorder is a minimal Stream that captures exactly one atom and
// rejects anything that is not a single primitive, optionally wrapped in
// Dynamic/OptionalSome. It backs the default accessor implementations.
type primitiveRecorder struct {
	Desugar
	matched bool
	failed  bool
	value   any
	textBuf TextBuf
	binBuf  BinaryBuf
	inText  bool
	inBin   bool
}

func newPrimitiveRecorder() *primitiveRecorder {
	r := &primitiveRecorder{}
	r.Desugar = Desugar{Basic: r}
	return r
}

var _ Basic = (*primitiveRecorder)(nil)

func (r *primitiveRecorder) record(v any) error {
	if r.matched || r.failed {
		r.failed = true
		return NewUnsupportedError("record", "more than one primitive event")
	}
	r.matched = true
	r.value = v
	return nil
}

func (r *primitiveRecorder) IsTextBased() bool { return true }

func (r *primitiveRecorder) Unit() error { return r.record(struct{}{}) }
func (r *primitiveRecorder) Null() error { return r.record(nil) }
func (r *primitiveRecorder) Bool(v bool) error {
	return r.record(v)
}

func (r *primitiveRecorder) TextBegin(Hint) error {
	r.inText = true
	r.textBuf = TextBuf{}
	return nil
}
func (r *primitiveRecorder) TextFragmentComputed(s string) error {
	return r.textBuf.PushComputed(s)
}
func (r *primitiveRecorder) TextEnd() error {
	r.inText = false
	return r.record(r.textBuf.Get())
}

func (r *primitiveRecorder) BinaryBegin(Hint) error {
	r.inBin = true
	r.binBuf = BinaryBuf{}
	return nil
}
func (r *primitiveRecorder) BinaryFragmentComputed(b []byte) error {
	return r.binBuf.PushComputed(b)
}
func (r *primitiveRecorder) BinaryEnd() error {
	r.inBin = false
	return r.record(append([]byte(nil), r.binBuf.Get()...))
}

func (r *primitiveRecorder) MapBegin(Hint) error {
	return NewUnsupportedError("map_begin", "not a primitive")
}
func (r *primitiveRecorder) MapKeyBegin() error   { return nil }
func (r *primitiveRecorder) MapKeyEnd() error     { return nil }
func (r *primitiveRecorder) MapValueBegin() error { return nil }
func (r *primitiveRecorder) MapValueEnd() error   { return nil }
func (r *primitiveRecorder) MapEnd() error        { return nil }

func (r *primitiveRecorder) SeqBegin(Hint) error {
	return NewUnsupportedError("seq_begin", "not a primitive")
}
func (r *primitiveRecorder) SeqValueBegin() error { return nil }
func (r *primitiveRecorder) SeqValueEnd() error   { return nil }
func (r *primitiveRecorder) SeqEnd() error        { return nil }

// the primitiveRecorder overrides U8..I128/F32/F64 so that a wrapped
// number doesn't get routed through TextBegin/TextEnd by its own
// Desugar, which would otherwise record its decimal text as a string
// rather than as a number.
func (r *primitiveRecorder) U8(v uint8) error    { return r.record(uint64(v)) }
func (r *primitiveRecorder) U16(v uint16) error  { return r.record(uint64(v)) }
func (r *primitiveRecorder) U32(v uint32) error  { return r.record(uint64(v)) }
func (r *primitiveRecorder) U64(v uint64) error  { return r.record(v) }
func (r *primitiveRecorder) U128(v *big.Int) error {
	return r.record(v.String())
}
func (r *primitiveRecorder) I8(v int8) error   { return r.record(int64(v)) }
func (r *primitiveRecorder) I16(v int16) error { return r.record(int64(v)) }
func (r *primitiveRecorder) I32(v int32) error { return r.record(int64(v)) }
func (r *primitiveRecorder) I64(v int64) error { return r.record(v) }
func (r *primitiveRecorder) I128(v *big.Int) error {
	return r.record(v.String())
}
func (r *primitiveRecorder) F32(v float32) error { return r.record(float64(v)) }
func (r *primitiveRecorder) F64(v float64) error { return r.record(v) }

func (r *primitiveRecorder) TaggedBegin(BeginTag) error { return nil }
func (r *primitiveRecorder) TaggedEnd(BeginTag) error   { return nil }
func (r *primitiveRecorder) DynamicBegin() error        { return nil }
func (r *primitiveRecorder) DynamicEnd() error          { return nil }
func (r *primitiveRecorder) OptionalSomeBegin() error   { return nil }
func (r *primitiveRecorder) OptionalSomeEnd() error     { return nil }
func (r *primitiveRecorder) OptionalNone() error        { return r.record(nil) }
