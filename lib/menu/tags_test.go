package menu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		raw    string
		expect string
	}{
		{"dairy", "Dairy"},
		{"DAIRY", "Dairy"},
		{"gluten-free", "Gluten Free"},
		{"tree-nuts", "Tree Nuts"},
		{"tree nuts", "Tree Nuts"},
		{"halal-ingredients", "Halal"},
		{"  vegan\n", "Vegan"},
		// outside the vocabulary: pass through verbatim
		{"MSG", "MSG"},
		{"Pork", "Pork"},
	}
	for _, c := range cases {
		require.Equal(t, c.expect, NormalizeTag(c.raw), "raw token %q", c.raw)
	}
}

func TestNormalizeTagIdempotent(t *testing.T) {
	for raw, canonical := range canonicalTags {
		require.Equal(t, canonical, NormalizeTag(raw))
		require.Equal(t, canonical, NormalizeTag(canonical))
	}
	require.Equal(t, "MSG", NormalizeTag(NormalizeTag("MSG")))
}

func TestNormalizeTagsUnion(t *testing.T) {
	tags := NormalizeTags(
		[]string{"soy", "gluten"},
		[]string{"vegan", "soy"},
	)
	require.Equal(t, []string{"Soy", "Gluten/Wheat", "Vegan"}, tags)

	require.Empty(t, NormalizeTags(nil, []string{}))
}
