package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/qed-outreach/contact-pipeline/internal/adapters/hunter"
	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"github.com/qed-outreach/contact-pipeline/internal/factory"
	"github.com/qed-outreach/contact-pipeline/internal/logging"
	"go.uber.org/zap"
)

var (
	// Action flags
	action = flag.String("action", "", "Action to run (generate, verify, usage)")

	// Store flags
	storeBackend  = flag.String("store", "sheets", "Store backend (sheets, csv)")
	csvDir        = flag.String("csv-dir", "./data", "Directory for the CSV store backend")
	spreadsheetID = flag.String("spreadsheet-id", "", "Google Sheets spreadsheet ID")
	credentials   = flag.String("credentials", "service-account.json", "Service account credentials file")

	// Ledger flags
	ledgerBackend = flag.String("ledger", "store", "History ledger backend (store, sqlite, mysql)")
	sqlitePath    = flag.String("sqlite-path", "/data/verification_history.db", "SQLite ledger path")
	mysqlDSN      = flag.String("mysql-dsn", "", "MySQL ledger DSN")

	// Verifier flags
	apiKey    = flag.String("api-key", "", "Hunter API key")
	threshold = flag.Int("threshold", core.DefaultMatchThreshold, "Fuzzy match threshold (score must strictly exceed it)")

	// Output flags
	usageFile  = flag.String("usage-file", "", "Write account usage snapshot to this JSON file")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	ctx := context.Background()

	switch *action {
	case "generate":
		runGenerate(ctx, cfg, logger)
	case "verify":
		runVerify(ctx, cfg, logger)
	case "usage":
		runUsage(ctx, cfg, logger)
	default:
		fmt.Printf("Unknown action %q: expected generate, verify or usage\n", *action)
		flag.Usage()
		os.Exit(2)
	}
}

func runGenerate(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	stores := mustStores(cfg, logger)
	service := core.NewGeneratorService(
		stores.Contacts,
		stores.Patterns,
		stores.Staging,
		cfg.GetInt("matcher.threshold"),
		logger,
	)

	summary, err := service.Run(ctx)
	if err != nil {
		logger.Fatal("Generation run failed", zap.Error(err))
	}
	fmt.Println(summary.String())
}

func runVerify(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	stores := mustStores(cfg, logger)

	ledgerFactory := factory.NewLedgerFactory(cfg, logger)
	ledger, err := ledgerFactory.CreateHistoryLedger(stores)
	if err != nil {
		logger.Fatal("Failed to create history ledger", zap.Error(err))
	}
	defer closeIfCloser(ledger, logger)

	client := mustVerifierClient(cfg, logger)
	delay, err := cfg.GetDuration("hunter.rate_limit_delay")
	if err != nil {
		logger.Fatal("Invalid rate limit delay", zap.Error(err))
	}

	service := core.NewVerifierService(stores.Staging, stores.Validation, ledger, client, delay, logger)
	summary, err := service.Run(ctx)
	if err != nil {
		logger.Fatal("Verification run failed", zap.Error(err))
	}

	fmt.Println(summary.String())
	for _, e := range summary.Errors {
		fmt.Printf("  %s: %s\n", e.Email, e.Reason)
	}
}

func runUsage(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	client := mustVerifierClient(cfg, logger)

	usage, err := client.Usage(ctx)
	if err != nil {
		logger.Fatal("Failed to fetch account usage", zap.Error(err))
	}

	fmt.Printf("Domain searches used: %d\n", usage.UsedSearches)
	fmt.Printf("Verifications used: %d\n", usage.UsedVerifications)

	if *usageFile != "" {
		snapshot, err := json.Marshal(map[string]int{
			"used_searches":      usage.UsedSearches,
			"used_verifications": usage.UsedVerifications,
		})
		if err != nil {
			logger.Fatal("Failed to encode usage snapshot", zap.Error(err))
		}
		if err := os.WriteFile(*usageFile, snapshot, 0644); err != nil {
			logger.Fatal("Failed to write usage snapshot", zap.Error(err))
		}
		logger.Info("Wrote usage snapshot", zap.String("file", *usageFile))
	}
}

func mustStores(cfg *config.Config, logger *zap.Logger) *factory.Stores {
	stores, err := factory.NewStoreFactory(cfg, logger).CreateStores()
	if err != nil {
		logger.Fatal("Failed to create stores", zap.Error(err))
	}
	return stores
}

func mustVerifierClient(cfg *config.Config, logger *zap.Logger) *hunter.Client {
	client, err := factory.NewVerifierFactory(cfg, logger).CreateVerifierClient()
	if err != nil {
		logger.Fatal("Failed to create verifier client", zap.Error(err))
	}
	return client
}

func closeIfCloser(v interface{}, logger *zap.Logger) {
	if closer, ok := v.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close history ledger", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("store.backend", *storeBackend)
	v.Set("csv.dir", *csvDir)
	v.Set("sheets.spreadsheet_id", *spreadsheetID)
	v.Set("sheets.credentials_file", *credentials)

	v.Set("ledger.backend", *ledgerBackend)
	v.Set("ledger.sqlite_path", *sqlitePath)
	if *mysqlDSN != "" {
		v.Set("ledger.mysql_dsn", *mysqlDSN)
	}

	if *apiKey != "" {
		v.Set("hunter.api_key", *apiKey)
	}
	v.Set("matcher.threshold", *threshold)

	return config.NewFromViper(v)
}
