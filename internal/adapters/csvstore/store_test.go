package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/qed-outreach/contact-pipeline/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestStoreCreatesFilesWithHeaders(t *testing.T) {
	dir := t.TempDir()
	_, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "generated.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first_name,last_name,email")
}

func TestContactSourceReadsByColumnName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	// Columns deliberately reordered: cells are mapped by header name
	csv := "Current company,Name,url\nAcme Corp,John Doe,https://example.com/johndoe\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extract.csv"), []byte(csv), 0644))

	contacts, err := store.ContactSource().Contacts(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "John Doe", contacts[0].Name)
	assert.Equal(t, "Acme Corp", contacts[0].Company)
	assert.Equal(t, "https://example.com/johndoe", contacts[0].URL)
}

func TestStagingRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	staging := store.StagingStore()

	records := []core.GeneratedEmail{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@acme.com", Company: "Acme", MatchStatus: core.StatusMatched},
		{FirstName: "Jane", LastName: "Roe", Email: "jane.roe@initech.com", Company: "Initech", MatchStatus: core.StatusUnmatched},
	}
	require.NoError(t, staging.Append(ctx, records))

	pending, err := staging.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, records[0], pending[0])
	assert.Equal(t, records[1], pending[1])
}

func TestStagingResetKeepsHeader(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	staging := store.StagingStore()

	require.NoError(t, staging.Append(ctx, []core.GeneratedEmail{{Email: "a@x.com"}}))
	require.NoError(t, staging.Reset(ctx))

	pending, err := staging.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestHistoryLedgerRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ledger := store.HistoryLedger()

	require.NoError(t, ledger.Append(ctx, []core.VerificationResult{
		{
			GeneratedEmail: core.GeneratedEmail{FirstName: "John", LastName: "Doe", Email: "john.doe@acme.com"},
			Status:         "valid",
			Score:          92,
		},
	}))

	emails, err := ledger.Emails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"john.doe@acme.com"}, emails)
}

func TestPatternSource(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	csv := "Organization,email_pattern,domain\nAcme Corp,{first}.{last}@{domain},acme.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patterns.csv"), []byte(csv), 0644))

	rows, err := store.PatternSource().Patterns(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Corp", rows[0].Organization)
	assert.Equal(t, "{first}.{last}@{domain}", rows[0].Template)
	assert.Equal(t, "acme.com", rows[0].Domain)
}
