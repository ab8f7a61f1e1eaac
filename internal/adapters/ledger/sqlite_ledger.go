package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
)

// SQLiteLedger is a SQLite implementation of the HistoryLedger interface,
// for single-host deployments that keep the verification history off the
// spreadsheet
type SQLiteLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

const historySchema = `
	CREATE TABLE IF NOT EXISTS verification_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT,
		last_name TEXT,
		email TEXT NOT NULL,
		current_company TEXT,
		current_position TEXT,
		about TEXT,
		skills_1 TEXT,
		skills_2 TEXT,
		skills_3 TEXT,
		url TEXT,
		match_status TEXT,
		status TEXT,
		score INTEGER,
		verified_at TIMESTAMP
	)
`

// NewSQLiteLedger creates a new SQLite history ledger
func NewSQLiteLedger(dbPath string, logger *zap.Logger) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	// Index on email for the run-start history load
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_history_email ON verification_history(email)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteLedger{db: db, logger: logger}, nil
}

// Emails reads every email address present in the ledger
func (l *SQLiteLedger) Emails(ctx context.Context) ([]string, error) {
	return queryEmails(ctx, l.db)
}

// Append durably records verification results in a single transaction
func (l *SQLiteLedger) Append(ctx context.Context, results []core.VerificationResult) error {
	return appendResults(ctx, l.db, results)
}

// Close closes the database connection
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

func queryEmails(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT email FROM verification_history`)
	if err != nil {
		return nil, fmt.Errorf("failed to query verification history: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func appendResults(ctx context.Context, db *sql.DB, results []core.VerificationResult) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin ledger transaction: %w", err)
	}

	now := time.Now().UTC()
	for _, r := range results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO verification_history (
				first_name, last_name, email, current_company, current_position,
				about, skills_1, skills_2, skills_3, url, match_status,
				status, score, verified_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, r.FirstName, r.LastName, r.Email, r.Company, r.Position,
			r.About, r.Skills1, r.Skills2, r.Skills3, r.URL, string(r.MatchStatus),
			r.Status, r.Score, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert ledger row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger transaction: %w", err)
	}
	return nil
}
