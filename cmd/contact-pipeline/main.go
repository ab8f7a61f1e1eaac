package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qed-outreach/contact-pipeline/internal/core"
	"github.com/qed-outreach/contact-pipeline/internal/di"
	"github.com/qed-outreach/contact-pipeline/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	trigger ports.Trigger,
	ledger core.HistoryLedger,
) error {
	defer logger.Sync()

	// Start the trigger surface
	if err := trigger.Start(); err != nil {
		logger.Fatal("Failed to start trigger", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := trigger.Stop(); err != nil {
		logger.Error("Failed to stop trigger", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := ledger.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close history ledger", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
