package values_test

import (
	"testing"

	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/values"
	"github.com/stretchr/testify/require"
)

func intFormatter(s string) values.NumericFormatterFunc {
	return func() string { return s }
}

func TestNumberStreamsInt(t *testing.T) {
	ts := newTraceStream(true)
	n := values.NewNumber(intFormatter("-42"))
	require.NoError(t, n.Stream(ts))

	require.Equal(t, []string{
		"int_begin", "text_begin", "text_fragment:-42", "text_end", "int_end",
	}, ts.events)
}

func TestNumberStreamsDecimal(t *testing.T) {
	ts := newTraceStream(true)
	n := values.NewNumber(intFormatter("3.25"))
	require.NoError(t, n.Stream(ts))

	require.Equal(t, []string{
		"decfloat_begin", "text_begin", "text_fragment:3.25", "text_end", "decfloat_end",
	}, ts.events)
}

func TestNumberRejectsMalformedText(t *testing.T) {
	cases := []string{"", "-", ".", "1.", "abc", "1-2", "1.2.3", "--1"}
	for _, c := range cases {
		ts := newTraceStream(true)
		n := values.NewNumber(intFormatter(c))
		err := n.Stream(ts)
		require.Error(t, err, "input %q should be rejected", c)
		require.True(t, vs.IsKind(err, vs.KindMalformed), "input %q", c)
		require.Empty(t, ts.events, "no events should be emitted before validation fails for %q", c)
	}
}

func TestNumberAcceptsZero(t *testing.T) {
	ts := newTraceStream(true)
	n := values.NewNumber(intFormatter("0"))
	require.NoError(t, n.Stream(ts))
	require.False(t, n.IsDynamic())
}
