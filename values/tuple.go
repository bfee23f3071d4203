package values

import (
	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/tag"
)

// Tuple streams a fixed-arity sequence of heterogeneous Values as
// TupleBegin, one TupleValueBegin(index)/TupleValueEnd pair per field,
// TupleEnd (§4.8).
type Tuple []vs.Value

func (t Tuple) Stream(s vs.Stream) error {
	bt := vs.BeginTag{Hint: vs.WithHint(len(t))}
	if err := s.TupleBegin(bt); err != nil {
		return err
	}
	for i, v := range t {
		if err := s.TupleValueBegin(tag.NewIndex(int64(i))); err != nil {
			return err
		}
		if err := v.Stream(s); err != nil {
			return err
		}
		if err := s.TupleValueEnd(); err != nil {
			return err
		}
	}
	return s.TupleEnd()
}

func (t Tuple) IsDynamic() bool { return true }
