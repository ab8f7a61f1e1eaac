package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// VerifierService orchestrates verification: it rebuilds the seen-set from
// the permanent ledger, submits each unseen staged address to the external
// verifier and records the results. The ledger guarantees an address is
// never submitted twice across runs.
type VerifierService struct {
	staging    StagingStore
	validation ValidationSink
	ledger     HistoryLedger
	verifier   EmailVerifier
	callDelay  time.Duration
	logger     *zap.Logger
}

// NewVerifierService creates a new verifier service. callDelay is the pause
// inserted between successive verifier calls to respect rate limits.
func NewVerifierService(
	staging StagingStore,
	validation ValidationSink,
	ledger HistoryLedger,
	verifier EmailVerifier,
	callDelay time.Duration,
	logger *zap.Logger,
) *VerifierService {
	return &VerifierService{
		staging:    staging,
		validation: validation,
		ledger:     ledger,
		verifier:   verifier,
		callDelay:  callDelay,
		logger:     logger,
	}
}

// Run executes one verification pass over the staged records
func (s *VerifierService) Run(ctx context.Context) (*VerificationSummary, error) {
	ledgered, err := s.ledger.Emails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read verification history: %w", err)
	}
	history := NewHistory(ledgered)

	staged, err := s.staging.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged emails: %w", err)
	}

	var pending []GeneratedEmail
	skipped := 0
	for _, record := range staged {
		email := strings.TrimSpace(record.Email)
		if email == "" || history.HasSeen(email) {
			skipped++
			continue
		}
		pending = append(pending, record)
	}

	s.logger.Info("Prepared verification batch",
		zap.Int("staged", len(staged)),
		zap.Int("in_history", history.Len()),
		zap.Int("to_verify", len(pending)))

	summary := &VerificationSummary{Skipped: skipped}
	if len(pending) == 0 {
		s.logger.Info("No new emails to verify")
		return summary, nil
	}

	var results []VerificationResult
	for i, record := range pending {
		if i > 0 && s.callDelay > 0 {
			time.Sleep(s.callDelay)
		}

		email := strings.TrimSpace(record.Email)
		verdict, err := s.verifier.Verify(ctx, email)
		if err != nil {
			s.logger.Warn("Email verification failed",
				zap.String("email", email),
				zap.Error(err))
			summary.Errors = append(summary.Errors, VerificationError{
				Email:  email,
				Reason: err.Error(),
			})
			continue
		}

		results = append(results, VerificationResult{
			GeneratedEmail: record,
			Status:         verdict.Status,
			Score:          verdict.Score,
		})
		history.Record(email)
	}

	if len(results) > 0 {
		if err := s.validation.Append(ctx, results); err != nil {
			return nil, fmt.Errorf("failed to write validation output: %w", err)
		}
		if err := s.ledger.Append(ctx, results); err != nil {
			return nil, fmt.Errorf("failed to append verification history: %w", err)
		}
		if err := s.staging.Reset(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear staging store: %w", err)
		}
	}

	summary.Verified = len(results)
	s.logger.Info("Verification run complete",
		zap.Int("verified", summary.Verified),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", len(summary.Errors)))
	return summary, nil
}
