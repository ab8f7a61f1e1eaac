package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qed-outreach/contact-pipeline/internal/adapters/ledger"
	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
)

// LedgerFactory creates history ledgers based on configuration
type LedgerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLedgerFactory creates a new ledger factory
func NewLedgerFactory(cfg *config.Config, logger *zap.Logger) *LedgerFactory {
	return &LedgerFactory{cfg: cfg, logger: logger}
}

// CreateHistoryLedger creates the configured history ledger. The default
// "store" backend keeps the history inside the tabular store; sqlite and
// mysql keep it in a local or shared database instead.
func (f *LedgerFactory) CreateHistoryLedger(stores *Stores) (core.HistoryLedger, error) {
	ledgerCfg := f.cfg.GetLedger()

	switch ledgerCfg.Backend {
	case "store":
		return stores.StoreLedger, nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(ledgerCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return ledger.NewSQLiteLedger(ledgerCfg.SQLitePath, f.logger)
	case "mysql":
		return ledger.NewMySQLLedger(ledgerCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", ledgerCfg.Backend)
	}
}
