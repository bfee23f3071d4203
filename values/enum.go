package values

import (
	vs "github.com/kodraus/valuestream"
	"github.com/kodraus/valuestream/tag"
)

// Enum streams an outer EnumBegin(Tag) wrapping exactly one tagged variant
// group (§4.8, and §8's "enum-with-variant"/"anonymous enum" scenarios). A
// Variant whose Tag carries no Label (HasTag false) streams as an
// anonymous wrapper: the JSON writer renders it as the bare inner value
// rather than a {"Label": ...} object.
type Enum struct {
	Tag     tag.Tag
	HasTag  bool
	Variant Variant
}

// Variant is the single tagged payload inside an Enum.
type Variant struct {
	Tag    tag.Tag
	HasTag bool
	Value  vs.Value
}

func (e Enum) Stream(s vs.Stream) error {
	outer := vs.BeginTag{Tag: e.Tag, HasTag: e.HasTag}
	if err := s.EnumBegin(outer); err != nil {
		return err
	}
	inner := vs.BeginTag{Tag: e.Variant.Tag, HasTag: e.Variant.HasTag}
	if err := s.TaggedBegin(inner); err != nil {
		return err
	}
	if err := e.Variant.Value.Stream(s); err != nil {
		return err
	}
	if err := s.TaggedEnd(inner); err != nil {
		return err
	}
	return s.EnumEnd(outer)
}

func (e Enum) IsDynamic() bool { return true }
