package erased

import (
	"math/big"

	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/tag"
)

func (e *Stream) U8(v uint8) error     { return e.inner.U8(v) }
func (e *Stream) U16(v uint16) error   { return e.inner.U16(v) }
func (e *Stream) U32(v uint32) error   { return e.inner.U32(v) }
func (e *Stream) U64(v uint64) error   { return e.inner.U64(v) }
func (e *Stream) U128(v *big.Int) error { return e.inner.U128(v) }
func (e *Stream) I8(v int8) error      { return e.inner.I8(v) }
func (e *Stream) I16(v int16) error    { return e.inner.I16(v) }
func (e *Stream) I32(v int32) error    { return e.inner.I32(v) }
func (e *Stream) I64(v int64) error    { return e.inner.I64(v) }
func (e *Stream) I128(v *big.Int) error { return e.inner.I128(v) }

func (e *Stream) F32(v float32) error { return e.inner.F32(v) }
func (e *Stream) F64(v float64) error { return e.inner.F64(v) }

func (e *Stream) TaggedBegin(t vs.BeginTag) error { return e.inner.TaggedBegin(t) }
func (e *Stream) TaggedEnd(t vs.BeginTag) error   { return e.inner.TaggedEnd(t) }

func (e *Stream) RecordBegin(t vs.BeginTag) error          { return e.inner.RecordBegin(t) }
func (e *Stream) RecordValueBegin(label tag.Label) error   { return e.inner.RecordValueBegin(label) }
func (e *Stream) RecordValueEnd() error                    { return e.inner.RecordValueEnd() }
func (e *Stream) RecordEnd() error                          { return e.inner.RecordEnd() }

func (e *Stream) TupleBegin(t vs.BeginTag) error       { return e.inner.TupleBegin(t) }
func (e *Stream) TupleValueBegin(idx tag.Index) error  { return e.inner.TupleValueBegin(idx) }
func (e *Stream) TupleValueEnd() error                 { return e.inner.TupleValueEnd() }
func (e *Stream) TupleEnd() error                      { return e.inner.TupleEnd() }

func (e *Stream) EnumBegin(t vs.BeginTag) error { return e.inner.EnumBegin(t) }
func (e *Stream) EnumEnd(t vs.BeginTag) error   { return e.inner.EnumEnd(t) }

func (e *Stream) DynamicBegin() error { return e.inner.DynamicBegin() }
func (e *Stream) DynamicEnd() error   { return e.inner.DynamicEnd() }

func (e *Stream) FixedSizeBegin() error { return e.inner.FixedSizeBegin() }
func (e *Stream) FixedSizeEnd() error   { return e.inner.FixedSizeEnd() }

func (e *Stream) OptionalSomeBegin() error { return e.inner.OptionalSomeBegin() }
func (e *Stream) OptionalSomeEnd() error   { return e.inner.OptionalSomeEnd() }
func (e *Stream) OptionalNone() error      { return e.inner.OptionalNone() }

func (e *Stream) IntBegin() error { return e.inner.IntBegin() }
func (e *Stream) IntEnd() error   { return e.inner.IntEnd() }

func (e *Stream) BinfloatBegin() error { return e.inner.BinfloatBegin() }
func (e *Stream) BinfloatEnd() error   { return e.inner.BinfloatEnd() }

func (e *Stream) DecfloatBegin() error { return e.inner.DecfloatBegin() }
func (e *Stream) DecfloatEnd() error   { return e.inner.DecfloatEnd() }

func (e *Stream) ConstantBegin() error { return e.inner.ConstantBegin() }
func (e *Stream) ConstantEnd() error   { return e.inner.ConstantEnd() }
