package normalization

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name canonicalizes a free-text name for lookups: accents stripped,
// lowercased, whitespace collapsed to single spaces.
func Name(input string) string {
	if input == "" {
		return ""
	}
	stripped, _, err := transform.String(stripAccents, input)
	if err != nil {
		stripped = input
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
