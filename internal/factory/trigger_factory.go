package factory

import (
	"fmt"

	"github.com/qed-outreach/contact-pipeline/internal/adapters/trigger"
	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"github.com/qed-outreach/contact-pipeline/internal/ports"
	"go.uber.org/zap"
)

// TriggerFactory creates trigger adapters based on configuration
type TriggerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTriggerFactory creates a new trigger factory
func NewTriggerFactory(cfg *config.Config, logger *zap.Logger) *TriggerFactory {
	return &TriggerFactory{cfg: cfg, logger: logger}
}

// CreateTrigger creates the configured trigger adapter
func (f *TriggerFactory) CreateTrigger(
	generator *core.GeneratorService,
	verifier *core.VerifierService,
	usage core.UsageReporter,
) (ports.Trigger, error) {
	triggerType := f.cfg.GetString("trigger.type")

	switch triggerType {
	case "http":
		addr := f.cfg.GetString("trigger.listen_address")
		return trigger.NewHTTPTrigger(generator, verifier, usage, addr, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported trigger type: %s", triggerType)
	}
}
