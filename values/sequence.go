package values

import vs "github.com/kodraus/valuestream"

// Seq streams a slice of Values as SeqBegin, one SeqValueBegin/End pair per
// element, SeqEnd (§4.8). The length is passed as an advisory hint.
type Seq []vs.Value

func (q Seq) Stream(s vs.Stream) error {
	if err := s.SeqBegin(vs.WithHint(len(q))); err != nil {
		return err
	}
	for _, v := range q {
		if err := s.SeqValueBegin(); err != nil {
			return err
		}
		if err := v.Stream(s); err != nil {
			return err
		}
		if err := s.SeqValueEnd(); err != nil {
			return err
		}
	}
	return s.SeqEnd()
}

func (q Seq) IsDynamic() bool { return true }

// MapEntry pairs a key Value with a value Value.
type MapEntry struct {
	Key   vs.Value
	Value vs.Value
}

// Map streams entries as MapBegin, one matched key/value pair per entry,
// MapEnd (§4.8). Entry order is preserved as given; callers that need
// deterministic key ordering should sort the Map themselves.
type Map []MapEntry

func (m Map) Stream(s vs.Stream) error {
	if err := s.MapBegin(vs.WithHint(len(m))); err != nil {
		return err
	}
	for _, e := range m {
		if err := s.MapKeyBegin(); err != nil {
			return err
		}
		if err := e.Key.Stream(s); err != nil {
			return err
		}
		if err := s.MapKeyEnd(); err != nil {
			return err
		}
		if err := s.MapValueBegin(); err != nil {
			return err
		}
		if err := e.Value.Stream(s); err != nil {
			return err
		}
		if err := s.MapValueEnd(); err != nil {
			return err
		}
	}
	return s.MapEnd()
}

func (m Map) IsDynamic() bool { return true }
