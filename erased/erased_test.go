package erased_test

import (
	"math/big"
	"testing"

	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/erased"
	"github.com/kodraus/valuestream/tag"
	"github.com/stretchr/testify/require"
)

// countingStream implements vs.Stream directly (not via Desugar) so
// erased.Stream's forwarding can be checked against every method without
// depending on Basic desugaring.
type countingStream struct{ calls []string }

func (c *countingStream) note(name string) error { c.calls = append(c.calls, name); return nil }

func (c *countingStream) IsTextBased() bool { return true }
func (c *countingStream) Unit() error       { return c.note("Unit") }
func (c *countingStream) Null() error       { return c.note("Null") }
func (c *countingStream) Bool(bool) error   { return c.note("Bool") }

func (c *countingStream) TextBegin(vs.Hint) error          { return c.note("TextBegin") }
func (c *countingStream) TextFragment(string) error         { return c.note("TextFragment") }
func (c *countingStream) TextFragmentComputed(string) error { return c.note("TextFragmentComputed") }
func (c *countingStream) TextEnd() error                    { return c.note("TextEnd") }

func (c *countingStream) BinaryBegin(vs.Hint) error            { return c.note("BinaryBegin") }
func (c *countingStream) BinaryFragment([]byte) error           { return c.note("BinaryFragment") }
func (c *countingStream) BinaryFragmentComputed([]byte) error   { return c.note("BinaryFragmentComputed") }
func (c *countingStream) BinaryEnd() error                      { return c.note("BinaryEnd") }

func (c *countingStream) MapBegin(vs.Hint) error { return c.note("MapBegin") }
func (c *countingStream) MapKeyBegin() error     { return c.note("MapKeyBegin") }
func (c *countingStream) MapKeyEnd() error       { return c.note("MapKeyEnd") }
func (c *countingStream) MapValueBegin() error   { return c.note("MapValueBegin") }
func (c *countingStream) MapValueEnd() error     { return c.note("MapValueEnd") }
func (c *countingStream) MapEnd() error          { return c.note("MapEnd") }

func (c *countingStream) SeqBegin(vs.Hint) error { return c.note("SeqBegin") }
func (c *countingStream) SeqValueBegin() error   { return c.note("SeqValueBegin") }
func (c *countingStream) SeqValueEnd() error     { return c.note("SeqValueEnd") }
func (c *countingStream) SeqEnd() error          { return c.note("SeqEnd") }

func (c *countingStream) U8(uint8) error      { return c.note("U8") }
func (c *countingStream) U16(uint16) error    { return c.note("U16") }
func (c *countingStream) U32(uint32) error    { return c.note("U32") }
func (c *countingStream) U64(uint64) error    { return c.note("U64") }
func (c *countingStream) U128(*big.Int) error { return c.note("U128") }
func (c *countingStream) I8(int8) error       { return c.note("I8") }
func (c *countingStream) I16(int16) error     { return c.note("I16") }
func (c *countingStream) I32(int32) error     { return c.note("I32") }
func (c *countingStream) I64(int64) error     { return c.note("I64") }
func (c *countingStream) I128(*big.Int) error { return c.note("I128") }

func (c *countingStream) F32(float32) error { return c.note("F32") }
func (c *countingStream) F64(float64) error { return c.note("F64") }

func (c *countingStream) TaggedBegin(vs.BeginTag) error { return c.note("TaggedBegin") }
func (c *countingStream) TaggedEnd(vs.BeginTag) error   { return c.note("TaggedEnd") }

func (c *countingStream) RecordBegin(vs.BeginTag) error        { return c.note("RecordBegin") }
func (c *countingStream) RecordValueBegin(tag.Label) error     { return c.note("RecordValueBegin") }
func (c *countingStream) RecordValueEnd() error                { return c.note("RecordValueEnd") }
func (c *countingStream) RecordEnd() error                     { return c.note("RecordEnd") }

func (c *countingStream) TupleBegin(vs.BeginTag) error     { return c.note("TupleBegin") }
func (c *countingStream) TupleValueBegin(tag.Index) error  { return c.note("TupleValueBegin") }
func (c *countingStream) TupleValueEnd() error              { return c.note("TupleValueEnd") }
func (c *countingStream) TupleEnd() error                    { return c.note("TupleEnd") }

func (c *countingStream) EnumBegin(vs.BeginTag) error { return c.note("EnumBegin") }
func (c *countingStream) EnumEnd(vs.BeginTag) error   { return c.note("EnumEnd") }

func (c *countingStream) DynamicBegin() error { return c.note("DynamicBegin") }
func (c *countingStream) DynamicEnd() error   { return c.note("DynamicEnd") }

func (c *countingStream) FixedSizeBegin() error { return c.note("FixedSizeBegin") }
func (c *countingStream) FixedSizeEnd() error   { return c.note("FixedSizeEnd") }

func (c *countingStream) OptionalSomeBegin() error { return c.note("OptionalSomeBegin") }
func (c *countingStream) OptionalSomeEnd() error   { return c.note("OptionalSomeEnd") }
func (c *countingStream) OptionalNone() error      { return c.note("OptionalNone") }

func (c *countingStream) IntBegin() error { return c.note("IntBegin") }
func (c *countingStream) IntEnd() error   { return c.note("IntEnd") }

func (c *countingStream) BinfloatBegin() error { return c.note("BinfloatBegin") }
func (c *countingStream) BinfloatEnd() error   { return c.note("BinfloatEnd") }

func (c *countingStream) DecfloatBegin() error { return c.note("DecfloatBegin") }
func (c *countingStream) DecfloatEnd() error   { return c.note("DecfloatEnd") }

func (c *countingStream) ConstantBegin() error { return c.note("ConstantBegin") }
func (c *countingStream) ConstantEnd() error   { return c.note("ConstantEnd") }

var _ vs.Stream = (*countingStream)(nil)

type boolValue bool

func (b boolValue) Stream(s vs.Stream) error { return s.Bool(bool(b)) }
func (b boolValue) IsDynamic() bool          { return false }

func TestWrapValueForwardsToInner(t *testing.T) {
	cs := &countingStream{}
	erasedVal := erased.WrapValue(boolValue(true))

	require.False(t, erasedVal.IsDynamic())
	require.NoError(t, erasedVal.Stream(cs))
	require.Equal(t, []string{"Bool"}, cs.calls)
}

func TestWrapValueNilStreamsNull(t *testing.T) {
	cs := &countingStream{}
	erasedVal := erased.WrapValue(nil)

	require.NoError(t, erasedVal.Stream(cs))
	require.Equal(t, []string{"Null"}, cs.calls)
}

func TestWrapStreamForwardsEveryEvent(t *testing.T) {
	cs := &countingStream{}
	es := erased.WrapStream(cs)

	require.NoError(t, es.Unit())
	require.NoError(t, es.Bool(true))
	require.NoError(t, es.I32(5))
	require.NoError(t, es.EnumBegin(vs.NoTag))
	require.NoError(t, es.EnumEnd(vs.NoTag))

	require.Equal(t, []string{"Unit", "Bool", "I32", "EnumBegin", "EnumEnd"}, cs.calls)
	require.True(t, es.IsTextBased())
}
