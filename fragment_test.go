package valuestream_test

import (
	"testing"

	vs "github.com/kodraus/valuestream"
	"github.com/stretchr/testify/require"
)

func TestTextBufZeroCopyFastPath(t *testing.T) {
	var buf vs.TextBuf
	require.NoError(t, buf.PushBorrowed("hello"))

	got, ok := buf.TryGet()
	require.True(t, ok)
	require.Equal(t, "hello", got)
	require.Equal(t, "hello", buf.Get())
}

func TestTextBufComputedForcesOwned(t *testing.T) {
	var buf vs.TextBuf
	require.NoError(t, buf.PushComputed("hello"))

	_, ok := buf.TryGet()
	require.False(t, ok)
	require.Equal(t, "hello", buf.Get())
}

func TestTextBufSecondPushForcesOwned(t *testing.T) {
	var buf vs.TextBuf
	require.NoError(t, buf.PushBorrowed("hel"))
	require.NoError(t, buf.PushBorrowed("lo"))

	_, ok := buf.TryGet()
	require.False(t, ok)
	require.Equal(t, "hello", buf.Get())
}

func TestTextBufEmpty(t *testing.T) {
	var buf vs.TextBuf
	require.Equal(t, "", buf.Get())
	_, ok := buf.TryGet()
	require.False(t, ok)
}

func TestBinaryBufZeroCopyFastPath(t *testing.T) {
	var buf vs.BinaryBuf
	src := []byte{1, 2, 3}
	require.NoError(t, buf.PushBorrowed(src))

	got, ok := buf.TryGet()
	require.True(t, ok)
	require.Equal(t, src, got)
}

func TestBinaryBufMultipleFragmentsConcatenate(t *testing.T) {
	var buf vs.BinaryBuf
	require.NoError(t, buf.PushBorrowed([]byte{1, 2}))
	require.NoError(t, buf.PushComputed([]byte{3, 4}))

	_, ok := buf.TryGet()
	require.False(t, ok)
	require.Equal(t, []byte{1, 2, 3, 4}, buf.Get())
}
