package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/qed-outreach/contact-pipeline/internal/adapters/hunter"
	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"github.com/qed-outreach/contact-pipeline/internal/factory"
	"github.com/qed-outreach/contact-pipeline/internal/logging"
	"github.com/qed-outreach/contact-pipeline/internal/ports"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLedgerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewVerifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTriggerFactory); err != nil {
		return nil, err
	}

	// Register tabular stores
	if err := container.Provide(func(f *factory.StoreFactory) (*factory.Stores, error) {
		return f.CreateStores()
	}); err != nil {
		return nil, err
	}

	// Register history ledger
	if err := container.Provide(func(f *factory.LedgerFactory, stores *factory.Stores) (core.HistoryLedger, error) {
		return f.CreateHistoryLedger(stores)
	}); err != nil {
		return nil, err
	}

	// Register verifier client
	if err := container.Provide(func(f *factory.VerifierFactory) (*hunter.Client, error) {
		return f.CreateVerifierClient()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(c *hunter.Client) core.EmailVerifier { return c }); err != nil {
		return nil, err
	}
	if err := container.Provide(func(c *hunter.Client) core.UsageReporter { return c }); err != nil {
		return nil, err
	}

	// Register generator service
	if err := container.Provide(func(cfg *config.Config, stores *factory.Stores, logger *zap.Logger) *core.GeneratorService {
		return core.NewGeneratorService(
			stores.Contacts,
			stores.Patterns,
			stores.Staging,
			cfg.GetInt("matcher.threshold"),
			logger,
		)
	}); err != nil {
		return nil, err
	}

	// Register verifier service
	if err := container.Provide(func(
		cfg *config.Config,
		stores *factory.Stores,
		ledger core.HistoryLedger,
		verifier core.EmailVerifier,
		logger *zap.Logger,
	) (*core.VerifierService, error) {
		delay, err := cfg.GetDuration("hunter.rate_limit_delay")
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit delay: %w", err)
		}
		return core.NewVerifierService(stores.Staging, stores.Validation, ledger, verifier, delay, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register trigger
	if err := container.Provide(func(
		f *factory.TriggerFactory,
		generator *core.GeneratorService,
		verifier *core.VerifierService,
		usage core.UsageReporter,
	) (ports.Trigger, error) {
		return f.CreateTrigger(generator, verifier, usage)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
