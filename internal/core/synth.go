package core

import (
	"fmt"
	"regexp"
)

// unknownToken substitutes for a missing first or last name so a template
// never expands with a blank component
const unknownToken = "unknown"

// templateTokenRe matches the tokens of the pattern grammar. Expansion is a
// single pass, so a substituted value that happens to contain a token's
// literal text is never re-substituted.
var templateTokenRe = regexp.MustCompile(`\{(first|last|firstinitial|firstname|lastname|lastinitial|f|domain)\}`)

// ExpandTemplate expands a catalog pattern template with normalized name
// tokens and the matched domain
func ExpandTemplate(template, firstName, lastName, domain string) string {
	if firstName == "" {
		firstName = unknownToken
	}
	if lastName == "" {
		lastName = unknownToken
	}

	values := map[string]string{
		"first":        firstName,
		"firstname":    firstName,
		"last":         lastName,
		"lastname":     lastName,
		"f":            firstName[:1],
		"firstinitial": firstName[:1],
		"lastinitial":  lastName[:1],
		"domain":       domain,
	}
	return templateTokenRe.ReplaceAllStringFunc(template, func(token string) string {
		return values[token[1:len(token)-1]]
	})
}

// FallbackCandidates builds the deterministic candidate addresses used when
// no catalog pattern matched. The first candidate is the one produced;
// callers discard the rest. The alternates exist as a seam for a future
// "try the next candidate" flow that was never wired up.
func FallbackCandidates(firstName, lastName, company string) []string {
	if firstName == "" {
		firstName = unknownToken
	}
	if lastName == "" {
		lastName = unknownToken
	}
	domain := NormalizeOrganization(company) + ".com"

	return []string{
		fmt.Sprintf("%s.%s@%s", firstName, lastName, domain),
		fmt.Sprintf("%s_%s@%s", firstName, lastName, domain),
		fmt.Sprintf("%s@%s", firstName, domain),
		fmt.Sprintf("%s%s@%s", firstName, lastName, domain),
		fmt.Sprintf("%s.%s@%s", firstName[:1], lastName, domain),
	}
}

// Synthesize derives an email address for a contact. With a catalog match it
// expands the matched template; otherwise it falls back to the first
// heuristic candidate built from the company name.
func Synthesize(firstName, lastName string, match *MatchResult, company string) (string, MatchStatus) {
	if match != nil {
		return ExpandTemplate(match.Template, firstName, lastName, match.Domain), StatusMatched
	}
	return FallbackCandidates(firstName, lastName, company)[0], StatusUnmatched
}
