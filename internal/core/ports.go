package core

import (
	"context"
)

// ContactSource provides scraped contacts waiting for email generation
type ContactSource interface {
	// Contacts reads all pending contact rows
	Contacts(ctx context.Context) ([]Contact, error)

	// Reset clears the source, retaining its header row
	Reset(ctx context.Context) error
}

// PatternSource provides the raw organization pattern triples
type PatternSource interface {
	// Patterns reads all (organization, template, domain) rows
	Patterns(ctx context.Context) ([]PatternRow, error)
}

// PatternRow is a raw, unnormalized row from the pattern source
type PatternRow struct {
	Organization string
	Template     string
	Domain       string
}

// StagingStore holds generated emails between the two pipeline runs
type StagingStore interface {
	// Append stages generated email records
	Append(ctx context.Context, records []GeneratedEmail) error

	// Pending reads all staged records
	Pending(ctx context.Context) ([]GeneratedEmail, error)

	// Reset clears the store, retaining its header row
	Reset(ctx context.Context) error
}

// ValidationSink receives the rolling verification output
type ValidationSink interface {
	// Append writes verification results
	Append(ctx context.Context, results []VerificationResult) error
}

// HistoryLedger is the permanent record of every verified email address.
// It is the sole source of truth for whether an address was already
// submitted to the external verifier.
type HistoryLedger interface {
	// Emails reads every email address present in the ledger
	Emails(ctx context.Context) ([]string, error)

	// Append durably records verification results
	Append(ctx context.Context, results []VerificationResult) error
}

// EmailVerifier calls the external mail-verification service
type EmailVerifier interface {
	// Verify submits a single address and returns the verdict
	Verify(ctx context.Context, email string) (*Verdict, error)
}

// Verdict is the verifier's categorical result for one address
type Verdict struct {
	Status string
	Score  int
}

// UsageReporter exposes the verifier account's quota counters
type UsageReporter interface {
	// Usage fetches the account's used quota counts
	Usage(ctx context.Context) (*AccountUsage, error)
}
