package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
)

// MySQLLedger is a MySQL implementation of the HistoryLedger interface, for
// deployments sharing one verification history across hosts
type MySQLLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

const mysqlHistorySchema = `
	CREATE TABLE IF NOT EXISTS verification_history (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		email VARCHAR(320) NOT NULL,
		current_company VARCHAR(255),
		current_position VARCHAR(255),
		about TEXT,
		skills_1 VARCHAR(255),
		skills_2 VARCHAR(255),
		skills_3 VARCHAR(255),
		url VARCHAR(2048),
		match_status VARCHAR(32),
		status VARCHAR(32),
		score INT,
		verified_at TIMESTAMP,
		INDEX idx_history_email (email)
	)
`

// NewMySQLLedger creates a new MySQL history ledger
func NewMySQLLedger(dsn string, logger *zap.Logger) (*MySQLLedger, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	if _, err := db.Exec(mysqlHistorySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	return &MySQLLedger{db: db, logger: logger}, nil
}

// Emails reads every email address present in the ledger
func (l *MySQLLedger) Emails(ctx context.Context) ([]string, error) {
	return queryEmails(ctx, l.db)
}

// Append durably records verification results in a single transaction
func (l *MySQLLedger) Append(ctx context.Context, results []core.VerificationResult) error {
	return appendResults(ctx, l.db, results)
}

// Close closes the database connection
func (l *MySQLLedger) Close() error {
	return l.db.Close()
}
