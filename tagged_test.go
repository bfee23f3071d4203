package valuestream_test

import (
	"testing"

	vs "github.com/kodraus/valuestream"
	"github.com/stretchr/testify/require"
)

func TestTypeTagWrapsAnonymousVariant(t *testing.T) {
	ts := newTraceStream(true)
	tt := vs.NewTypeTag("Point", recordValue{n: 42})

	require.NoError(t, tt.Stream(ts))
	require.True(t, tt.IsDynamic())

	require.Equal(t, []string{
		"enum_begin:Point",
		"tagged_begin:none",
		"text_begin", "text_fragment:42", "text_end",
		"tagged_end:none",
		"enum_end:Point",
	}, ts.events)
}

func TestVariantTagWrapsLabeledVariant(t *testing.T) {
	ts := newTraceStream(true)
	vt := vs.NewVariantTag("Shape", "Circle", recordValue{n: 7}).WithVariantIndex(1)

	require.NoError(t, vt.Stream(ts))
	require.True(t, vt.IsDynamic())

	require.Equal(t, []string{
		"enum_begin:Shape",
		"tagged_begin:Circle",
		"text_begin", "text_fragment:7", "text_end",
		"tagged_end:Circle",
		"enum_end:Shape",
	}, ts.events)
}

func TestTypeTagWithoutIdentIsAnonymousEnum(t *testing.T) {
	ts := newTraceStream(true)
	tt := vs.NewTypeTag("", recordValue{n: 1})

	require.NoError(t, tt.Stream(ts))

	require.Equal(t, []string{
		"enum_begin:none",
		"tagged_begin:none",
		"text_begin", "text_fragment:1", "text_end",
		"tagged_end:none",
		"enum_end:none",
	}, ts.events)
}
