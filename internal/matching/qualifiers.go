package matching

import (
	"sort"
	"strings"
)

// Presentation qualifiers distinguish size/serving variants of the
// same product ("pastel chocolate mini" vs "pastel chocolate grande").
// The fuzzy step must never cross variants, so inputs carrying
// qualifiers are only compared against candidates carrying the same
// ones. Vocabulary lifted from the bakery's presentation catalog.
var qualifierVocabulary = map[string]string{
	"mini":          "mini",
	"chico":         "chico",
	"ch":            "chico",
	"mediano":       "mediano",
	"med":           "mediano",
	"grande":        "grande",
	"individual":    "individual",
	"ind":           "individual",
	"rebanada":      "rebanada",
	"reb":           "rebanada",
	"bollo":         "bollo",
	"bollos":        "bollo",
	"1/2 plancha":   "media plancha",
	"media plancha": "media plancha",
}

// qualifierSet extracts the canonical qualifier set from a normalized
// name, as a sorted "|"-joined key ("" when none).
func qualifierSet(normalized string) string {
	found := map[string]bool{}
	for phrase, canon := range qualifierVocabulary {
		if strings.Contains(phrase, " ") || strings.Contains(phrase, "/") {
			if strings.Contains(normalized, phrase) {
				found[canon] = true
			}
		}
	}
	for _, tok := range strings.Fields(normalized) {
		if canon, ok := qualifierVocabulary[tok]; ok {
			found[canon] = true
		}
	}
	if len(found) == 0 {
		return ""
	}
	keys := make([]string, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
