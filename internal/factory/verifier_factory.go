package factory

import (
	"fmt"

	"github.com/qed-outreach/contact-pipeline/internal/adapters/hunter"
	"github.com/qed-outreach/contact-pipeline/internal/config"
	"go.uber.org/zap"
)

// VerifierFactory creates the external verifier client
type VerifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewVerifierFactory creates a new verifier factory
func NewVerifierFactory(cfg *config.Config, logger *zap.Logger) *VerifierFactory {
	return &VerifierFactory{cfg: cfg, logger: logger}
}

// CreateVerifierClient creates the Hunter API client
func (f *VerifierFactory) CreateVerifierClient() (*hunter.Client, error) {
	timeout, err := f.cfg.GetDuration("hunter.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid hunter timeout: %w", err)
	}
	return hunter.NewClient(f.cfg.GetHunter(), timeout, f.logger)
}
