package core

import (
	"fmt"
)

// Contact represents a single scraped contact record
type Contact struct {
	Name     string
	Company  string
	Position string
	About    string
	Skills1  string
	Skills2  string
	Skills3  string
	URL      string
}

// PatternEntry is a catalog entry mapping an organization to its email pattern
type PatternEntry struct {
	Template string
	Domain   string
}

// MatchResult represents a catalog match for a company name
type MatchResult struct {
	Template string
	Domain   string
}

// MatchStatus indicates whether a generated email came from a catalog match
type MatchStatus string

const (
	// StatusMatched marks emails built from a catalog pattern
	StatusMatched MatchStatus = "Match!"
	// StatusUnmatched marks emails built from fallback heuristics
	StatusUnmatched MatchStatus = "Unmatched :("
)

// GeneratedEmail is a contact annotated with a derived email address
type GeneratedEmail struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	Position    string
	About       string
	Skills1     string
	Skills2     string
	Skills3     string
	URL         string
	MatchStatus MatchStatus
}

// VerificationResult is a generated email annotated with the verifier's verdict
type VerificationResult struct {
	GeneratedEmail
	Status string
	Score  int
}

// GenerationSummary reports the outcome of a generation run
type GenerationSummary struct {
	Generated int
	Skipped   int
}

// VerificationError records a single failed verification call
type VerificationError struct {
	Email  string
	Reason string
}

// VerificationSummary reports the outcome of a verification run
type VerificationSummary struct {
	Verified int
	Skipped  int
	Errors   []VerificationError
}

// String returns the user-facing summary line for a generation run
func (s *GenerationSummary) String() string {
	return fmt.Sprintf("%d emails generated (%d contacts skipped)", s.Generated, s.Skipped)
}

// String returns the user-facing summary line for a verification run
func (s *VerificationSummary) String() string {
	if s.Verified == 0 && len(s.Errors) == 0 {
		return "No new emails to verify."
	}
	return fmt.Sprintf("%d emails verified successfully! (%d skipped, %d errors)",
		s.Verified, s.Skipped, len(s.Errors))
}

// AccountUsage holds the verifier account's consumed quota counters
type AccountUsage struct {
	UsedSearches      int
	UsedVerifications int
}
