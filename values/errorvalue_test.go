package values_test

import (
	"errors"
	"testing"

	"github.com/kodraus/valuestream/values"
	"github.com/stretchr/testify/require"
)

func TestErrValueStream(t *testing.T) {
	ts := newTraceStream(true)
	e := values.NewErrValue(errors.New("boom"))
	require.NoError(t, e.Stream(ts))

	require.Equal(t, []string{"text_begin", "text_fragment:boom", "text_end"}, ts.events)
	require.True(t, e.IsDynamic())

	s, ok := e.ToText()
	require.True(t, ok)
	require.Equal(t, "boom", s)
}
