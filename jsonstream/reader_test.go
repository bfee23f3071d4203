package jsonstream_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/kodraus/valuestream/jsonstream"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, input string, opts ...jsonstream.ReaderOption) string {
	t.Helper()
	var buf bytes.Buffer
	w := jsonstream.NewWriter(&buf)
	r := jsonstream.NewReader([]byte(input), opts...)
	require.NoError(t, r.StreamToEnd(context.Background(), w))
	return buf.String()
}

func TestReaderRoundTripsInt(t *testing.T) {
	require.Equal(t, "42", roundTrip(t, "42"))
	require.Equal(t, "-7", roundTrip(t, "-7"))
}

func TestReaderRoundTripsFloat(t *testing.T) {
	require.Equal(t, "3.5", roundTrip(t, "3.5"))
}

func TestReaderRoundTripsString(t *testing.T) {
	require.Equal(t, `"Hello\nWorld"`, roundTrip(t, `"Hello\nWorld"`))
}

func TestReaderRoundTripsLiterals(t *testing.T) {
	require.Equal(t, "true", roundTrip(t, "true"))
	require.Equal(t, "false", roundTrip(t, "false"))
	require.Equal(t, "null", roundTrip(t, "null"))
}

func TestReaderRoundTripsArray(t *testing.T) {
	require.Equal(t, "[1,2,3]", roundTrip(t, "[1, 2, 3]"))
	require.Equal(t, "[]", roundTrip(t, "[]"))
}

func TestReaderRoundTripsObject(t *testing.T) {
	require.Equal(t, `{"a":42,"b":true}`, roundTrip(t, `{"a": 42, "b": true}`))
	require.Equal(t, "{}", roundTrip(t, "{}"))
}

func TestReaderRoundTripsNestedStructure(t *testing.T) {
	require.Equal(t, `{"a":[1,{"b":2}]}`, roundTrip(t, `{"a":[1,{"b":2}]}`))
}

func TestReaderRoundTripsEnumWrapperObject(t *testing.T) {
	require.Equal(t, `{"Circle":42}`, roundTrip(t, `{"Circle":42}`))
}

func TestReaderRejectsUnbalancedInput(t *testing.T) {
	var buf bytes.Buffer
	w := jsonstream.NewWriter(&buf)
	r := jsonstream.NewReader([]byte(`[1, 2`))
	err := r.StreamToEnd(context.Background(), w)
	require.Error(t, err)
}

func TestReaderRejectsUnexpectedByte(t *testing.T) {
	var buf bytes.Buffer
	w := jsonstream.NewWriter(&buf)
	r := jsonstream.NewReader([]byte(`@`))
	err := r.StreamToEnd(context.Background(), w)
	require.Error(t, err)
}

func TestReaderRejectsUnsupportedEscape(t *testing.T) {
	var buf bytes.Buffer
	w := jsonstream.NewWriter(&buf)
	r := jsonstream.NewReader([]byte(`"bad \q escape"`))
	err := r.StreamToEnd(context.Background(), w)
	require.Error(t, err)
}

func TestReaderStepReturnsResumeDoneOnce(t *testing.T) {
	var buf bytes.Buffer
	w := jsonstream.NewWriter(&buf)
	r := jsonstream.NewReader([]byte(`42`))

	var resume jsonstream.Resume
	var err error
	for {
		resume, err = r.Step(context.Background(), w)
		require.NoError(t, err)
		if resume == jsonstream.ResumeDone {
			break
		}
	}

	_, err = r.Step(context.Background(), w)
	require.Error(t, err)
}

func TestReaderRequestIDGeneratedWhenUnset(t *testing.T) {
	r := jsonstream.NewReader([]byte(`1`))
	require.NotEmpty(t, r.RequestID())
}

func TestReaderRequestIDHonorsOption(t *testing.T) {
	r := jsonstream.NewReader([]byte(`1`), jsonstream.WithRequestID("req-123"))
	require.Equal(t, "req-123", r.RequestID())
}

func TestReaderStepBudgetSplitsLongStringAcrossSteps(t *testing.T) {
	var buf bytes.Buffer
	w := jsonstream.NewWriter(&buf)
	r := jsonstream.NewReader([]byte(`"abcdefghij"`), jsonstream.WithStepBudget(3))

	steps := 0
	for {
		resume, err := r.Step(context.Background(), w)
		require.NoError(t, err)
		steps++
		if resume == jsonstream.ResumeDone {
			break
		}
		require.Less(t, steps, 100, "reader should not loop forever")
	}

	require.Equal(t, `"abcdefghij"`, buf.String())
	require.Greater(t, steps, 1, "a budget of 3 bytes over a 10-byte string should take more than one step")
}
