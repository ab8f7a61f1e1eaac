package core

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// stopWords are legal suffixes stripped from organization names before matching
var stopWords = map[string]struct{}{
	"inc":         {},
	"llc":         {},
	"corp":        {},
	"corporation": {},
	"company":     {},
	"limited":     {},
	"ltd":         {},
}

var (
	nonLetterSpaceRe = regexp.MustCompile(`[^a-zA-Z\s]`)
	nonLetterRe      = regexp.MustCompile(`[^a-zA-Z]`)
)

// NormalizeOrganization converts a raw organization name into the canonical
// catalog key: transliterated to ASCII, letters only, lowercased, legal
// suffixes removed, remaining tokens joined with no separator. An empty
// result is valid and propagates as-is.
func NormalizeOrganization(raw string) string {
	clean := nonLetterSpaceRe.ReplaceAllString(unidecode.Unidecode(raw), "")
	clean = strings.ToLower(clean)

	var kept []string
	for _, word := range strings.Fields(clean) {
		if _, ok := stopWords[word]; ok {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, "")
}

// NormalizePerson converts a raw person name into the lowercase ASCII token
// used for email synthesis. Whitespace is not a separator here; multi-word
// names collapse into a single token.
func NormalizePerson(raw string) string {
	return strings.ToLower(nonLetterRe.ReplaceAllString(unidecode.Unidecode(raw), ""))
}
