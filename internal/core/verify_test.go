package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeValidationSink struct {
	appended []VerificationResult
}

func (f *fakeValidationSink) Append(ctx context.Context, results []VerificationResult) error {
	f.appended = append(f.appended, results...)
	return nil
}

type fakeLedger struct {
	emails   []string
	appended []VerificationResult
	err      error
}

func (f *fakeLedger) Emails(ctx context.Context) ([]string, error) {
	return f.emails, f.err
}

func (f *fakeLedger) Append(ctx context.Context, results []VerificationResult) error {
	f.appended = append(f.appended, results...)
	return nil
}

type fakeVerifier struct {
	verdicts map[string]*Verdict
	failures map[string]error
	calls    []string
}

func (f *fakeVerifier) Verify(ctx context.Context, email string) (*Verdict, error) {
	f.calls = append(f.calls, email)
	if err, ok := f.failures[email]; ok {
		return nil, err
	}
	if v, ok := f.verdicts[email]; ok {
		return v, nil
	}
	return &Verdict{Status: "unknown", Score: 0}, nil
}

func staged(emails ...string) []GeneratedEmail {
	out := make([]GeneratedEmail, 0, len(emails))
	for _, e := range emails {
		out = append(out, GeneratedEmail{FirstName: "x", LastName: "y", Email: e})
	}
	return out
}

func TestVerifierServiceSkipsLedgeredEmails(t *testing.T) {
	staging := &fakeStagingStore{pending: staged("old@x.com", "new@x.com")}
	validation := &fakeValidationSink{}
	ledger := &fakeLedger{emails: []string{"old@x.com"}}
	verifier := &fakeVerifier{verdicts: map[string]*Verdict{
		"new@x.com": {Status: "valid", Score: 92},
	}}

	service := NewVerifierService(staging, validation, ledger, verifier, 0, zap.NewNop())
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	// The ledgered address is never resubmitted to the verifier
	assert.Equal(t, []string{"new@x.com"}, verifier.calls)
	assert.Equal(t, 1, summary.Verified)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, ledger.appended, 1)
	assert.Equal(t, "valid", ledger.appended[0].Status)
	assert.Equal(t, 92, ledger.appended[0].Score)
}

func TestVerifierServiceEmptyStagingIsIdempotent(t *testing.T) {
	staging := &fakeStagingStore{}
	validation := &fakeValidationSink{}
	ledger := &fakeLedger{emails: []string{"old@x.com"}}
	verifier := &fakeVerifier{}

	service := NewVerifierService(staging, validation, ledger, verifier, 0, zap.NewNop())
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Verified)
	assert.Empty(t, summary.Errors)
	assert.Empty(t, verifier.calls)
	assert.Empty(t, ledger.appended)
	assert.Empty(t, validation.appended)
	assert.Equal(t, 0, staging.resets)
}

func TestVerifierServiceSkipsBlankEmails(t *testing.T) {
	staging := &fakeStagingStore{pending: staged("", "a@x.com")}
	ledger := &fakeLedger{}
	verifier := &fakeVerifier{}

	service := NewVerifierService(staging, &fakeValidationSink{}, ledger, verifier, 0, zap.NewNop())
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.com"}, verifier.calls)
	assert.Equal(t, 1, summary.Skipped)
}

func TestVerifierServiceIsolatesFailures(t *testing.T) {
	staging := &fakeStagingStore{pending: staged("bad@x.com", "good@x.com")}
	validation := &fakeValidationSink{}
	ledger := &fakeLedger{}
	verifier := &fakeVerifier{
		verdicts: map[string]*Verdict{"good@x.com": {Status: "valid", Score: 80}},
		failures: map[string]error{"bad@x.com": errors.New("verifier returned HTTP 451 without data")},
	}

	service := NewVerifierService(staging, validation, ledger, verifier, 0, zap.NewNop())
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	// A failed call is recorded and the batch continues
	assert.Equal(t, 1, summary.Verified)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "bad@x.com", summary.Errors[0].Email)
	require.Len(t, validation.appended, 1)
	require.Len(t, ledger.appended, 1)
	// At least one success, so staging is cleared
	assert.Equal(t, 1, staging.resets)
}

func TestVerifierServiceKeepsStagingWhenNothingSucceeds(t *testing.T) {
	staging := &fakeStagingStore{pending: staged("bad@x.com")}
	ledger := &fakeLedger{}
	verifier := &fakeVerifier{failures: map[string]error{"bad@x.com": errors.New("timeout")}}

	service := NewVerifierService(staging, &fakeValidationSink{}, ledger, verifier, 0, zap.NewNop())
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Verified)
	assert.Len(t, summary.Errors, 1)
	assert.Empty(t, ledger.appended)
	assert.Equal(t, 0, staging.resets)
}

func TestVerifierServiceLedgerLoadFailureIsFatal(t *testing.T) {
	service := NewVerifierService(
		&fakeStagingStore{},
		&fakeValidationSink{},
		&fakeLedger{err: errors.New("ledger unavailable")},
		&fakeVerifier{},
		0,
		zap.NewNop(),
	)

	_, err := service.Run(context.Background())
	assert.Error(t, err)
}
