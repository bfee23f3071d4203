package values

import (
	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/tag"
)

// Field is one named field of a Record.
type Field struct {
	Label tag.Label
	Value vs.Value
}

// Record streams a struct-shaped value as RecordBegin(Tag), one
// RecordValueBegin(label)/RecordValueEnd pair per field, RecordEnd (§4.8).
// The out-of-scope derive facility would normally generate this event
// sequence mechanically from a struct definition; Record is the manual
// equivalent.
type Record struct {
	Tag    tag.Tag
	HasTag bool
	Fields []Field
}

func (r Record) Stream(s vs.Stream) error {
	bt := vs.BeginTag{Tag: r.Tag, HasTag: r.HasTag, Hint: vs.WithHint(len(r.Fields))}
	if err := s.RecordBegin(bt); err != nil {
		return err
	}
	for _, f := range r.Fields {
		if err := s.RecordValueBegin(f.Label); err != nil {
			return err
		}
		if err := f.Value.Stream(s); err != nil {
			return err
		}
		if err := s.RecordValueEnd(); err != nil {
			return err
		}
	}
	return s.RecordEnd()
}

func (r Record) IsDynamic() bool { return true }
