package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
)

// File names of the tabular stores inside the data directory
const (
	contactsFile   = "extract.csv"
	patternsFile   = "patterns.csv"
	stagingFile    = "generated.csv"
	validationFile = "validation.csv"
	historyFile    = "history.csv"
)

var contactsHeader = []string{
	core.ColName, core.ColCompany, core.ColPosition, core.ColAbout,
	core.ColSkills1, core.ColSkills2, core.ColSkills3, core.ColURL,
}

var patternsHeader = []string{core.ColOrganization, core.ColPattern, core.ColDomain}

// Store is a local CSV-backed implementation of the pipeline store ports,
// used for offline runs and tests. Each tabular store is one file with a
// header row.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a CSV store rooted at dir, creating the directory and
// any missing files (header row only)
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	s := &Store{dir: dir, logger: logger}
	for _, t := range []table{
		s.table(contactsFile, contactsHeader),
		s.table(patternsFile, patternsHeader),
		s.table(stagingFile, core.StagingHeader),
		s.table(validationFile, core.VerificationHeader),
		s.table(historyFile, core.VerificationHeader),
	} {
		if err := t.ensure(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ContactSource returns the contact source backed by extract.csv
func (s *Store) ContactSource() core.ContactSource {
	return &contactSource{s.table(contactsFile, contactsHeader)}
}

// PatternSource returns the pattern source backed by patterns.csv
func (s *Store) PatternSource() core.PatternSource {
	return &patternSource{s.table(patternsFile, patternsHeader)}
}

// StagingStore returns the staging store backed by generated.csv
func (s *Store) StagingStore() core.StagingStore {
	return &stagingStore{s.table(stagingFile, core.StagingHeader)}
}

// ValidationSink returns the validation sink backed by validation.csv
func (s *Store) ValidationSink() core.ValidationSink {
	return &validationSink{s.table(validationFile, core.VerificationHeader)}
}

// HistoryLedger returns the history ledger backed by history.csv
func (s *Store) HistoryLedger() core.HistoryLedger {
	return &historyLedger{s.table(historyFile, core.VerificationHeader)}
}

func (s *Store) table(name string, header []string) table {
	return table{path: filepath.Join(s.dir, name), header: header}
}

// table is one CSV file with a fixed header row
type table struct {
	path   string
	header []string
}

// ensure creates the file with its header row if it does not exist
func (t table) ensure() error {
	if _, err := os.Stat(t.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", t.path, err)
	}
	return t.reset()
}

// rows reads all data rows, mapping cells by header column name
func (t table) rows() ([][]string, map[string]int, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, map[string]int{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", t.path, err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var out [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row of %s: %w", t.path, err)
		}
		out = append(out, rec)
	}
	return out, index, nil
}

// appendRows appends data rows to the file
func (t table) appendRows(rows [][]string) error {
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", t.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to append rows to %s: %w", t.path, err)
	}
	return nil
}

// reset truncates the file to its header row
func (t table) reset() error {
	f, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("failed to reset %s: %w", t.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(t.header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", t.path, err)
	}
	cw.Flush()
	return cw.Error()
}

func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

type contactSource struct {
	t table
}

func (s *contactSource) Contacts(ctx context.Context) ([]core.Contact, error) {
	rows, index, err := s.t.rows()
	if err != nil {
		return nil, err
	}
	contacts := make([]core.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, core.Contact{
			Name:     cell(row, index, core.ColName),
			Company:  cell(row, index, core.ColCompany),
			Position: cell(row, index, core.ColPosition),
			About:    cell(row, index, core.ColAbout),
			Skills1:  cell(row, index, core.ColSkills1),
			Skills2:  cell(row, index, core.ColSkills2),
			Skills3:  cell(row, index, core.ColSkills3),
			URL:      cell(row, index, core.ColURL),
		})
	}
	return contacts, nil
}

func (s *contactSource) Reset(ctx context.Context) error {
	return s.t.reset()
}

type patternSource struct {
	t table
}

func (s *patternSource) Patterns(ctx context.Context) ([]core.PatternRow, error) {
	rows, index, err := s.t.rows()
	if err != nil {
		return nil, err
	}
	patterns := make([]core.PatternRow, 0, len(rows))
	for _, row := range rows {
		patterns = append(patterns, core.PatternRow{
			Organization: cell(row, index, core.ColOrganization),
			Template:     cell(row, index, core.ColPattern),
			Domain:       cell(row, index, core.ColDomain),
		})
	}
	return patterns, nil
}

type stagingStore struct {
	t table
}

func (s *stagingStore) Append(ctx context.Context, records []core.GeneratedEmail) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, core.StagingRow(r))
	}
	return s.t.appendRows(rows)
}

func (s *stagingStore) Pending(ctx context.Context) ([]core.GeneratedEmail, error) {
	rows, _, err := s.t.rows()
	if err != nil {
		return nil, err
	}
	records := make([]core.GeneratedEmail, 0, len(rows))
	for _, row := range rows {
		records = append(records, core.ParseStagingRow(row))
	}
	return records, nil
}

func (s *stagingStore) Reset(ctx context.Context) error {
	return s.t.reset()
}

type validationSink struct {
	t table
}

func (s *validationSink) Append(ctx context.Context, results []core.VerificationResult) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, core.VerificationRow(r))
	}
	return s.t.appendRows(rows)
}

type historyLedger struct {
	t table
}

func (s *historyLedger) Emails(ctx context.Context) ([]string, error) {
	rows, index, err := s.t.rows()
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, cell(row, index, "email"))
	}
	return emails, nil
}

func (s *historyLedger) Append(ctx context.Context, results []core.VerificationResult) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, core.VerificationRow(r))
	}
	return s.t.appendRows(rows)
}
