package values

import vs "github.com/kodraus/valuestream"

// ErrValue streams a Go error as its Error() text (§4.8's error Value
// kind; ported from original_source/src/receiver.rs's default `error`
// method, which displays the error rather than threading a distinct
// error event through the alphabet).
type ErrValue struct{ Err error }

// NewErrValue wraps err as a Value.
func NewErrValue(err error) ErrValue { return ErrValue{Err: err} }

func (e ErrValue) Stream(s vs.Stream) error {
	return Text(e.Err.Error()).Stream(s)
}

func (e ErrValue) IsDynamic() bool { return true }

func (e ErrValue) ToText() (string, bool) { return e.Err.Error(), true }
