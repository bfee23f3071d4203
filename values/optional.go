package values

import vs "github.com/kodraus/valuestream"

// Optional streams Inner wrapped in OptionalSomeBegin/OptionalSomeEnd when
// Present, or OptionalNone otherwise (§4.8).
type Optional struct {
	Inner   vs.Value
	Present bool
}

// Some constructs a present Optional wrapping v.
func Some(v vs.Value) Optional { return Optional{Inner: v, Present: true} }

// None constructs an absent Optional.
func None() Optional { return Optional{} }

func (o Optional) Stream(s vs.Stream) error {
	if !o.Present {
		return s.OptionalNone()
	}
	if err := s.OptionalSomeBegin(); err != nil {
		return err
	}
	if err := o.Inner.Stream(s); err != nil {
		return err
	}
	return s.OptionalSomeEnd()
}

func (o Optional) IsDynamic() bool { return true }
