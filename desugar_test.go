package valuestream_test

import (
	"testing"

	vs "github.com/kodraus/valuestream"
	"github.com/stretchr/testify/require"
)

func TestDesugarIntTextBased(t *testing.T) {
	ts := newTraceStream(true)
	require.NoError(t, ts.I32(42))
	require.Equal(t, []string{"text_begin", "text_fragment:42", "text_end"}, ts.events)
}

func TestDesugarFloatTextBased(t *testing.T) {
	ts := newTraceStream(true)
	require.NoError(t, ts.F64(3.5))
	require.Equal(t, []string{"text_begin", "text_fragment:3.5", "text_end"}, ts.events)
}

func TestDesugarTupleDesugarsToSeq(t *testing.T) {
	ts := newTraceStream(true)
	require.NoError(t, ts.TupleBegin(vs.NoTag))
	require.NoError(t, ts.TupleValueBegin(tagIndexZero()))
	require.NoError(t, ts.I32(1))
	require.NoError(t, ts.TupleValueEnd())
	require.NoError(t, ts.TupleEnd())

	require.Equal(t, []string{
		"seq_begin",
		"seq_value_begin", "text_begin", "text_fragment:1", "text_end", "seq_value_end",
		"seq_end",
	}, ts.events)
}

func TestDesugarRecordDesugarsToMap(t *testing.T) {
	ts := newTraceStream(true)
	require.NoError(t, ts.RecordBegin(vs.NoTag))
	require.NoError(t, ts.RecordValueBegin(labelOf("a")))
	require.NoError(t, ts.Bool(true))
	require.NoError(t, ts.RecordValueEnd())
	require.NoError(t, ts.RecordEnd())

	require.Equal(t, []string{
		"map_begin",
		"map_key_begin", "text_begin", "text_fragment:a", "text_end", "map_key_end",
		"map_value_begin",
		"bool",
		"map_value_end",
		"map_end",
	}, ts.events)
}

func TestDesugarOptionalNoneIsNull(t *testing.T) {
	ts := newTraceStream(true)
	require.NoError(t, ts.OptionalNone())
	require.Equal(t, []string{"null"}, ts.events)
}
