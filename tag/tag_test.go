package tag_test

import (
	"testing"

	"github.com/kodraus/valuestream/tag"
	"github.com/stretchr/testify/require"
)

func TestTagBuilders(t *testing.T) {
	tg := tag.New().WithIdent("Point").WithLabel(tag.NewLabel("p")).WithIndex(2)
	require.True(t, tg.HasIdent)
	require.Equal(t, "Point", tg.Ident)
	require.True(t, tg.HasLabel)
	require.Equal(t, "p", tg.Label.Value)
	require.True(t, tg.HasIndex)
	require.Equal(t, int64(2), tg.Index)
	require.False(t, tg.IsEmpty())
	require.True(t, tag.New().IsEmpty())
}

func TestTagEquality(t *testing.T) {
	a := tag.New().WithIdent("X").WithLabel(tag.NewLabel("a"))
	b := tag.New().WithIdent("X").WithLabel(tag.NewComputedLabel("a"))

	require.True(t, a.EqualStructural(b), "structural equality ignores label/index")
	require.False(t, a.Equal(b), "full equality cares about label staticness")
}

func TestLabel(t *testing.T) {
	static := tag.NewLabel("field")
	computed := tag.NewComputedLabel("field")

	require.True(t, static.Static)
	require.False(t, computed.Static)
	require.False(t, static.Equal(computed))
	require.Equal(t, "field", static.String())
}

func TestIndex(t *testing.T) {
	idx := tag.NewIndex(3)
	require.Equal(t, int64(3), idx.Value)
}
