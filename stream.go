package valuestream

import (
	"math/big"
	"strconv"

	"github.com/kodraus/valuestream/tag"
)

// Basic is the mandatory subset of the event alphabet (§4.4): the methods
// every conforming consumer must implement directly. Every other Stream
// method has a default desugaring onto this subset, provided by Desugar,
// so an implementer that only needs Basic can still accept any producer.
type Basic interface {
	// IsTextBased reports whether this consumer wants primitive bool,
	// int, and float events routed to it as text (the JSON writer's
	// answer) rather than as their native byte encoding. Content
	// fragment routing for the default int/float desugaring honors this
	// bit.
	IsTextBased() bool

	Unit() error
	Null() error
	Bool(v bool) error

	TextBegin(hint Hint) error
	TextFragmentComputed(s string) error
	TextEnd() error

	BinaryBegin(hint Hint) error
	BinaryFragmentComputed(b []byte) error
	BinaryEnd() error

	MapBegin(hint Hint) error
	MapKeyBegin() error
	MapKeyEnd() error
	MapValueBegin() error
	MapValueEnd() error
	MapEnd() error

	SeqBegin(hint Hint) error
	SeqValueBegin() error
	SeqValueEnd() error
	SeqEnd() error
}

// Stream is the consumer trait (§4.4): the full event alphabet a producer
// may drive. Method set IS the alphabet. Implementers that want to
// specialize only a few methods can embed a *Desugar wrapping their Basic
// implementation and override individual methods afterward by
// implementing Stream directly instead (Go has no virtual default
// methods; Desugar is the "minimal consumer" path, a full custom Stream
// implementation — like jsonstream.Writer — is the "specializing
// consumer" path).
type Stream interface {
	Basic

	U8(v uint8) error
	U16(v uint16) error
	U32(v uint32) error
	U64(v uint64) error
	U128(v *big.Int) error
	I8(v int8) error
	I16(v int16) error
	I32(v int32) error
	I64(v int64) error
	I128(v *big.Int) error

	F32(v float32) error
	F64(v float64) error

	TextFragment(s string) error
	BinaryFragment(b []byte) error

	TaggedBegin(t BeginTag) error
	TaggedEnd(t BeginTag) error

	RecordBegin(t BeginTag) error
	RecordValueBegin(label tag.Label) error
	RecordValueEnd() error
	RecordEnd() error

	TupleBegin(t BeginTag) error
	TupleValueBegin(idx tag.Index) error
	TupleValueEnd() error
	TupleEnd() error

	EnumBegin(t BeginTag) error
	EnumEnd(t BeginTag) error

	DynamicBegin() error
	DynamicEnd() error

	FixedSizeBegin() error
	FixedSizeEnd() error

	OptionalSomeBegin() error
	OptionalSomeEnd() error
	OptionalNone() error

	IntBegin() error
	IntEnd() error

	BinfloatBegin() error
	BinfloatEnd() error

	DecfloatBegin() error
	DecfloatEnd() error

	ConstantBegin() error
	ConstantEnd() error
}

// Desugar adapts a Basic implementation into a full Stream by rewriting
// every higher-level event into the lower-level events described in
// §4.4. It holds the Basic value as an interface so that calls it makes
// back into Basic still dispatch to the concrete implementation's
// overrides.
type Desugar struct {
	Basic
}

// NewDesugar wraps basic so it satisfies the full Stream interface.
func NewDesugar(basic Basic) *Desugar {
	return &Desugar{Basic: basic}
}

var _ Stream = (*Desugar)(nil)

func (d *Desugar) emitIntText(s string) error {
	if err := d.IntBegin(); err != nil {
		return err
	}
	if err := d.TextBegin(NoHint); err != nil {
		return err
	}
	if err := d.TextFragmentComputed(s); err != nil {
		return err
	}
	if err := d.TextEnd(); err != nil {
		return err
	}
	return d.IntEnd()
}

func (d *Desugar) emitIntBinary(b []byte) error {
	if err := d.IntBegin(); err != nil {
		return err
	}
	if err := d.BinaryBegin(NoHint); err != nil {
		return err
	}
	if err := d.BinaryFragmentComputed(b); err != nil {
		return err
	}
	if err := d.BinaryEnd(); err != nil {
		return err
	}
	return d.IntEnd()
}

func (d *Desugar) emitInt(s string, be []byte) error {
	if d.IsTextBased() {
		return d.emitIntText(s)
	}
	return d.emitIntBinary(be)
}

func (d *Desugar) U8(v uint8) error {
	return d.emitInt(strconv.FormatUint(uint64(v), 10), []byte{v})
}

func (d *Desugar) U16(v uint16) error {
	return d.emitInt(strconv.FormatUint(uint64(v), 10), []byte{byte(v >> 8), byte(v)})
}

func (d *Desugar) U32(v uint32) error {
	return d.emitInt(strconv.FormatUint(uint64(v), 10),
		[]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (d *Desugar) U64(v uint64) error {
	return d.emitInt(strconv.FormatUint(v, 10),
		[]byte{byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
			byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (d *Desugar) U128(v *big.Int) error {
	return d.emitInt(v.String(), v.Bytes())
}

func (d *Desugar) I8(v int8) error {
	return d.emitInt(strconv.FormatInt(int64(v), 10), []byte{byte(v)})
}

func (d *Desugar) I16(v int16) error {
	return d.emitInt(strconv.FormatInt(int64(v), 10), []byte{byte(v >> 8), byte(v)})
}

func (d *Desugar) I32(v int32) error {
	return d.emitInt(strconv.FormatInt(int64(v), 10),
		[]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (d *Desugar) I64(v int64) error {
	return d.emitInt(strconv.FormatInt(v, 10),
		[]byte{byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
			byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (d *Desugar) I128(v *big.Int) error {
	return d.emitInt(v.String(), v.Bytes())
}

func (d *Desugar) emitFloatText(s string) error {
	if err := d.BinfloatBegin(); err != nil {
		return err
	}
	if err := d.TextBegin(NoHint); err != nil {
		return err
	}
	if err := d.TextFragmentComputed(s); err != nil {
		return err
	}
	if err := d.TextEnd(); err != nil {
		return err
	}
	return d.BinfloatEnd()
}

func (d *Desugar) emitFloatBinary(b []byte) error {
	if err := d.BinfloatBegin(); err != nil {
		return err
	}
	if err := d.BinaryBegin(NoHint); err != nil {
		return err
	}
	if err := d.BinaryFragmentComputed(b); err != nil {
		return err
	}
	if err := d.BinaryEnd(); err != nil {
		return err
	}
	return d.BinfloatEnd()
}

func (d *Desugar) F32(v float32) error {
	if d.IsTextBased() {
		return d.emitFloatText(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	bits := uint32ToBytes(floatBitsOf32(v))
	return d.emitFloatBinary(bits)
}

func (d *Desugar) F64(v float64) error {
	if d.IsTextBased() {
		return d.emitFloatText(strconv.FormatFloat(v, 'g', -1, 64))
	}
	bits := uint64ToBytes(floatBitsOf64(v))
	return d.emitFloatBinary(bits)
}

func (d *Desugar) TextFragment(s string) error {
	return d.TextFragmentComputed(s)
}

func (d *Desugar) BinaryFragment(b []byte) error {
	return d.BinaryFragmentComputed(b)
}

func (d *Desugar) TaggedBegin(BeginTag) error { return nil }
func (d *Desugar) TaggedEnd(BeginTag) error   { return nil }

func (d *Desugar) RecordBegin(t BeginTag) error {
	return d.MapBegin(t.Hint)
}

func (d *Desugar) RecordValueBegin(label tag.Label) error {
	if err := d.MapKeyBegin(); err != nil {
		return err
	}
	if err := d.TextBegin(NoHint); err != nil {
		return err
	}
	if err := d.TextFragmentComputed(label.Value); err != nil {
		return err
	}
	if err := d.TextEnd(); err != nil {
		return err
	}
	if err := d.MapKeyEnd(); err != nil {
		return err
	}
	return d.MapValueBegin()
}

func (d *Desugar) RecordValueEnd() error {
	return d.MapValueEnd()
}

func (d *Desugar) RecordEnd() error {
	return d.MapEnd()
}

func (d *Desugar) TupleBegin(t BeginTag) error {
	return d.SeqBegin(t.Hint)
}

func (d *Desugar) TupleValueBegin(tag.Index) error {
	return d.SeqValueBegin()
}

func (d *Desugar) TupleValueEnd() error {
	return d.SeqValueEnd()
}

func (d *Desugar) TupleEnd() error {
	return d.SeqEnd()
}

func (d *Desugar) EnumBegin(BeginTag) error { return nil }
func (d *Desugar) EnumEnd(BeginTag) error   { return nil }

func (d *Desugar) DynamicBegin() error { return nil }
func (d *Desugar) DynamicEnd() error   { return nil }

func (d *Desugar) FixedSizeBegin() error { return nil }
func (d *Desugar) FixedSizeEnd() error   { return nil }

func (d *Desugar) OptionalSomeBegin() error { return nil }
func (d *Desugar) OptionalSomeEnd() error   { return nil }
func (d *Desugar) OptionalNone() error      { return d.Null() }

func (d *Desugar) IntBegin() error { return nil }
func (d *Desugar) IntEnd() error   { return nil }

func (d *Desugar) BinfloatBegin() error { return nil }
func (d *Desugar) BinfloatEnd() error   { return nil }

func (d *Desugar) DecfloatBegin() error { return nil }
func (d *Desugar) DecfloatEnd() error   { return nil }

func (d *Desugar) ConstantBegin() error { return nil }
func (d *Desugar) ConstantEnd() error   { return nil }

func uint32ToBytes(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func uint64ToBytes(v uint64) []byte {
	return []byte{byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
