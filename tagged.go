package valuestream

import "github.com/kodraus/valuestream/tag"

// TypeTag is a convenience producer (ported from original_source/src/tag.rs)
// that streams Inner wrapped in an anonymous enum/tagged pair identified
// only by Ident, saving a caller the trouble of hand-constructing the full
// EnumBegin/TaggedBegin sequence for the common "newtype with no variant
// label" case (§8 scenario 4, "anonymous enum").
type TypeTag struct {
	Ident string
	Inner Value
}

// NewTypeTag constructs a TypeTag wrapping inner under ident.
func NewTypeTag(ident string, inner Value) TypeTag {
	return TypeTag{Ident: ident, Inner: inner}
}

func (t TypeTag) Stream(s Stream) error {
	outer := BeginTag{Tag: tag.New().WithIdent(t.Ident), HasTag: t.Ident != ""}
	if err := s.EnumBegin(outer); err != nil {
		return err
	}
	if err := s.TaggedBegin(NoTag); err != nil {
		return err
	}
	if err := t.Inner.Stream(s); err != nil {
		return err
	}
	if err := s.TaggedEnd(NoTag); err != nil {
		return err
	}
	return s.EnumEnd(outer)
}

func (t TypeTag) IsDynamic() bool { return true }

// VariantTag is the labeled counterpart of TypeTag: it additionally names
// the variant (VariantLabel, optionally VariantIndex), producing the
// externally-tagged wrapper object of §8 scenario 3
// (`{"VariantLabel": ...}` under the JSON writer).
type VariantTag struct {
	Ident        string
	VariantLabel string
	VariantIndex int64
	HasIndex     bool
	Inner        Value
}

// NewVariantTag constructs a VariantTag wrapping inner, labeled
// variantLabel, under the type identifier ident.
func NewVariantTag(ident, variantLabel string, inner Value) VariantTag {
	return VariantTag{Ident: ident, VariantLabel: variantLabel, Inner: inner}
}

// WithVariantIndex attaches an ordinal index to the variant tag, for
// formats that prefer dispatching on index over label.
func (t VariantTag) WithVariantIndex(index int64) VariantTag {
	t.VariantIndex = index
	t.HasIndex = true
	return t
}

func (t VariantTag) Stream(s Stream) error {
	outer := BeginTag{Tag: tag.New().WithIdent(t.Ident), HasTag: t.Ident != ""}
	if err := s.EnumBegin(outer); err != nil {
		return err
	}
	variantTag := tag.New().WithLabel(tag.NewLabel(t.VariantLabel))
	if t.HasIndex {
		variantTag = variantTag.WithIndex(t.VariantIndex)
	}
	inner := BeginTag{Tag: variantTag, HasTag: true}
	if err := s.TaggedBegin(inner); err != nil {
		return err
	}
	if err := t.Inner.Stream(s); err != nil {
		return err
	}
	if err := s.TaggedEnd(inner); err != nil {
		return err
	}
	return s.EnumEnd(outer)
}

func (t VariantTag) IsDynamic() bool { return true }
