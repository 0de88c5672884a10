package menu

import (
	"strings"
	"uscmenu-backend/lib/textutil"
)

// canonicalTags maps the hospitality site's raw allergen and
// dietary-preference tokens onto the display vocabulary the rest of
// the system uses. Keys are lowercase; the site has shipped both
// hyphenated and spaced spellings across template revisions, so both
// forms are listed.
var canonicalTags = map[string]string{
	"dairy":             "Dairy",
	"eggs":              "Eggs",
	"fish":              "Fish",
	"gluten":            "Gluten/Wheat",
	"peanuts":           "Peanuts",
	"sesame":            "Sesame",
	"shellfish":         "Shellfish",
	"soy":               "Soy",
	"tree-nuts":         "Tree Nuts",
	"tree nuts":         "Tree Nuts",
	"wheat":             "Wheat",
	"vegetarian":        "Vegetarian",
	"vegan":             "Vegan",
	"halal-ingredients": "Halal",
	"halal":             "Halal",
	"gluten-free":       "Gluten Free",
	"gluten free":       "Gluten Free",
}

// NormalizeTag maps a raw token to its canonical tag. Tokens outside
// the vocabulary pass through trimmed but otherwise verbatim: an
// unseen-but-legitimate tag should still surface to the user instead
// of silently vanishing, and the front end has fallback rendering for
// unknown tags. Idempotent: normalizing a canonical tag is a no-op.
func NormalizeTag(raw string) string {
	if canonical, ok := canonicalTags[textutil.NormalizeToken(raw)]; ok {
		return canonical
	}
	return strings.TrimSpace(raw)
}

// NormalizeTags normalizes every token across the given groups
// (allergens, preferences, ...) and unions them into a set,
// preserving first-seen order.
func NormalizeTags(groups ...[]string) []string {
	var out []string
	seen := map[string]bool{}
	for _, group := range groups {
		for _, raw := range group {
			tag := NormalizeTag(raw)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
