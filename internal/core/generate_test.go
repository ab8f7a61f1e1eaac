package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeContactSource struct {
	contacts []Contact
	err      error
	resets   int
}

func (f *fakeContactSource) Contacts(ctx context.Context) ([]Contact, error) {
	return f.contacts, f.err
}

func (f *fakeContactSource) Reset(ctx context.Context) error {
	f.resets++
	return nil
}

type fakePatternSource struct {
	rows []PatternRow
	err  error
}

func (f *fakePatternSource) Patterns(ctx context.Context) ([]PatternRow, error) {
	return f.rows, f.err
}

type fakeStagingStore struct {
	appended []GeneratedEmail
	pending  []GeneratedEmail
	resets   int
}

func (f *fakeStagingStore) Append(ctx context.Context, records []GeneratedEmail) error {
	f.appended = append(f.appended, records...)
	return nil
}

func (f *fakeStagingStore) Pending(ctx context.Context) ([]GeneratedEmail, error) {
	return f.pending, nil
}

func (f *fakeStagingStore) Reset(ctx context.Context) error {
	f.resets++
	return nil
}

func TestGenerateRecordsMatched(t *testing.T) {
	catalog := testCatalog(PatternRow{
		Organization: "Acme Corp", Template: "{first}.{last}@{domain}", Domain: "acme.com",
	})
	matcher := NewMatcher(catalog, DefaultMatchThreshold, nil)

	records, skipped := GenerateRecords([]Contact{
		{Name: "John Doe", Company: "ACME Corp.", Position: "CTO", URL: "https://example.com/johndoe"},
	}, matcher, nil)

	require.Len(t, records, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "john.doe@acme.com", records[0].Email)
	assert.Equal(t, StatusMatched, records[0].MatchStatus)
	assert.Equal(t, "CTO", records[0].Position)
	assert.Equal(t, "https://example.com/johndoe", records[0].URL)
}

func TestGenerateRecordsPreservesOriginalNames(t *testing.T) {
	matcher := NewMatcher(NewPatternCatalog(), DefaultMatchThreshold, nil)

	records, _ := GenerateRecords([]Contact{
		{Name: "José Álvarez", Company: "Acme"},
	}, matcher, nil)

	require.Len(t, records, 1)
	// The output keeps the raw name fields; only the address is normalized
	assert.Equal(t, "José", records[0].FirstName)
	assert.Equal(t, "Álvarez", records[0].LastName)
	assert.Equal(t, "jose.alvarez@acme.com", records[0].Email)
	assert.Equal(t, StatusUnmatched, records[0].MatchStatus)
}

func TestGenerateRecordsSingleTokenName(t *testing.T) {
	matcher := NewMatcher(NewPatternCatalog(), DefaultMatchThreshold, nil)

	records, _ := GenerateRecords([]Contact{
		{Name: "Cher", Company: "Acme"},
	}, matcher, nil)

	require.Len(t, records, 1)
	assert.Equal(t, "Cher", records[0].FirstName)
	assert.Equal(t, "unknown", records[0].LastName)
	assert.Equal(t, "cher.unknown@acme.com", records[0].Email)
}

func TestGenerateRecordsSkipsIncompleteContacts(t *testing.T) {
	matcher := NewMatcher(NewPatternCatalog(), DefaultMatchThreshold, nil)

	records, skipped := GenerateRecords([]Contact{
		{Name: "", Company: "Acme"},
		{Name: "John Doe", Company: "   "},
		{Name: "Jane Roe", Company: "Acme"},
	}, matcher, zap.NewNop())

	assert.Len(t, records, 1)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, "Jane", records[0].FirstName)
}

func TestGeneratorServiceRun(t *testing.T) {
	contacts := &fakeContactSource{contacts: []Contact{
		{Name: "John Doe", Company: "Acme Corp"},
		{Name: "", Company: "Acme"},
	}}
	patterns := &fakePatternSource{rows: []PatternRow{
		{Organization: "Acme", Template: "{first}@{domain}", Domain: "acme.com"},
	}}
	staging := &fakeStagingStore{}

	service := NewGeneratorService(contacts, patterns, staging, DefaultMatchThreshold, zap.NewNop())
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Generated)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, staging.appended, 1)
	assert.Equal(t, "john@acme.com", staging.appended[0].Email)
	// The contact source is cleared after staging
	assert.Equal(t, 1, contacts.resets)
}

func TestGeneratorServiceRunPatternLoadFailure(t *testing.T) {
	service := NewGeneratorService(
		&fakeContactSource{},
		&fakePatternSource{err: errors.New("store unavailable")},
		&fakeStagingStore{},
		DefaultMatchThreshold,
		zap.NewNop(),
	)

	_, err := service.Run(context.Background())
	assert.Error(t, err)
}
