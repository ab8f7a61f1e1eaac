package factory

import (
	"context"
	"fmt"

	"github.com/qed-outreach/contact-pipeline/internal/adapters/csvstore"
	"github.com/qed-outreach/contact-pipeline/internal/adapters/sheets"
	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
)

// Stores bundles the tabular store ports backed by one store backend
type Stores struct {
	Contacts    core.ContactSource
	Patterns    core.PatternSource
	Staging     core.StagingStore
	Validation  core.ValidationSink
	StoreLedger core.HistoryLedger
}

// StoreFactory creates tabular stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{cfg: cfg, logger: logger}
}

// CreateStores creates the store ports for the configured backend
func (f *StoreFactory) CreateStores() (*Stores, error) {
	backend := f.cfg.GetString("store.backend")

	switch backend {
	case "sheets":
		store, err := sheets.NewStore(context.Background(), f.cfg.GetSheets(), f.logger)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Contacts:    store.ContactSource(),
			Patterns:    store.PatternSource(),
			Staging:     store.StagingStore(),
			Validation:  store.ValidationSink(),
			StoreLedger: store.HistoryLedger(),
		}, nil
	case "csv":
		store, err := csvstore.NewStore(f.cfg.GetString("csv.dir"), f.logger)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Contacts:    store.ContactSource(),
			Patterns:    store.PatternSource(),
			Staging:     store.StagingStore(),
			Validation:  store.ValidationSink(),
			StoreLedger: store.HistoryLedger(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
