package sheets

import (
	"context"
	"fmt"

	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Store is a Google Sheets implementation of the pipeline store ports. One
// spreadsheet holds all tabs: contacts, pattern catalog, staging, validation
// output and the permanent history ledger.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	cfg           config.SheetsConfig
	logger        *zap.Logger
}

// NewStore creates a Sheets store from service-account credentials and
// ensures the validation and history tabs carry their header row
func NewStore(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Store, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets.spreadsheet_id is required")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	s := &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		cfg:           cfg,
		logger:        logger,
	}

	for _, tab := range []string{cfg.ValidationTab, cfg.HistoryTab} {
		if err := s.ensureHeader(ctx, tab, core.VerificationHeader); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ContactSource returns the contact source backed by the contacts tab
func (s *Store) ContactSource() core.ContactSource {
	return &contactSource{s}
}

// PatternSource returns the pattern source backed by the patterns tab
func (s *Store) PatternSource() core.PatternSource {
	return &patternSource{s}
}

// StagingStore returns the staging store backed by the staging tab
func (s *Store) StagingStore() core.StagingStore {
	return &stagingStore{s}
}

// ValidationSink returns the validation sink backed by the validation tab
func (s *Store) ValidationSink() core.ValidationSink {
	return &validationSink{s}
}

// HistoryLedger returns the history ledger backed by the history tab
func (s *Store) HistoryLedger() core.HistoryLedger {
	return &historyLedger{s}
}

// rows reads all data rows of a tab, mapping cells by header column name
func (s *Store) rows(ctx context.Context, tab string) ([][]string, map[string]int, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tab %q: %w", tab, err)
	}
	if len(resp.Values) == 0 {
		return nil, map[string]int{}, nil
	}

	index := make(map[string]int, len(resp.Values[0]))
	for i, col := range resp.Values[0] {
		index[fmt.Sprint(col)] = i
	}

	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, index, nil
}

// appendRows appends data rows after the last non-empty row of a tab
func (s *Store) appendRows(ctx context.Context, tab string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		values = append(values, cells)
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, tab, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to tab %q: %w", tab, err)
	}
	return nil
}

// resetTab clears a tab and rewrites its header row
func (s *Store) resetTab(ctx context.Context, tab string, header []string) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, tab, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab %q: %w", tab, err)
	}
	return s.writeHeader(ctx, tab, header)
}

// ensureHeader writes the header row if the tab's first row is empty
func (s *Store) ensureHeader(ctx context.Context, tab string, header []string) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, tab+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header of tab %q: %w", tab, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	s.logger.Info("Writing missing header row", zap.String("tab", tab))
	return s.writeHeader(ctx, tab, header)
}

func (s *Store) writeHeader(ctx context.Context, tab string, header []string) error {
	cells := make([]interface{}, len(header))
	for i, v := range header {
		cells[i] = v
	}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, tab+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{cells},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header of tab %q: %w", tab, err)
	}
	return nil
}

func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

type contactSource struct {
	s *Store
}

func (c *contactSource) Contacts(ctx context.Context) ([]core.Contact, error) {
	rows, index, err := c.s.rows(ctx, c.s.cfg.ContactsTab)
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

func (c *contactSource) Reset(ctx context.Context) error {
	resp, err := c.s.svc.Spreadsheets.Values.Get(c.s.spreadsheetID, c.s.cfg.ContactsTab+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header of tab %q: %w", c.s.cfg.ContactsTab, err)
	}
	header := make([]string, 0)
	if len(resp.Values) > 0 {
		for _, v := range resp.Values[0] {
			header = append(header, fmt.Sprint(v))
		}
	}
	return c.s.resetTab(ctx, c.s.cfg.ContactsTab, header)
}

type patternSource struct {
	s *Store
}

func (p *patternSource) Patterns(ctx context.Context) ([]core.PatternRow, error) {
	rows, index, err := p.s.rows(ctx, p.s.cfg.PatternsTab)
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
	s *Store
}

func (st *stagingStore) Append(ctx context.Context, records []core.GeneratedEmail) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, core.StagingRow(r))
	}
	return st.s.appendRows(ctx, st.s.cfg.StagingTab, rows)
}

func (st *stagingStore) Pending(ctx context.Context) ([]core.GeneratedEmail, error) {
	rows, _, err := st.s.rows(ctx, st.s.cfg.StagingTab)
	if err != nil {
		return nil, err
	}
	records := make([]core.GeneratedEmail, 0, len(rows))
	for _, row := range rows {
		records = append(records, core.ParseStagingRow(row))
	}
	return records, nil
}

func (st *stagingStore) Reset(ctx context.Context) error {
	return st.s.resetTab(ctx, st.s.cfg.StagingTab, core.StagingHeader)
}

type validationSink struct {
	s *Store
}

func (v *validationSink) Append(ctx context.Context, results []core.VerificationResult) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, core.VerificationRow(r))
	}
	return v.s.appendRows(ctx, v.s.cfg.ValidationTab, rows)
}

type historyLedger struct {
	s *Store
}

func (h *historyLedger) Emails(ctx context.Context) ([]string, error) {
	rows, index, err := h.s.rows(ctx, h.s.cfg.HistoryTab)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, cell(row, index, "email"))
	}
	return emails, nil
}

func (h *historyLedger) Append(ctx context.Context, results []core.VerificationResult) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, core.VerificationRow(r))
	}
	return h.s.appendRows(ctx, h.s.cfg.HistoryTab, rows)
}
