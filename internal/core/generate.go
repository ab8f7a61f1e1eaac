package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// GeneratorService orchestrates email generation: it loads the pattern
// catalog, derives an address for every pending contact and stages the
// results for verification.
type GeneratorService struct {
	contacts  ContactSource
	patterns  PatternSource
	staging   StagingStore
	threshold int
	logger    *zap.Logger
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(
	contacts ContactSource,
	patterns PatternSource,
	staging StagingStore,
	threshold int,
	logger *zap.Logger,
) *GeneratorService {
	return &GeneratorService{
		contacts:  contacts,
		patterns:  patterns,
		staging:   staging,
		threshold: threshold,
		logger:    logger,
	}
}

// GenerateRecords derives an email for each contact. Contacts missing a name
// or company are skipped with a warning; a bad row never aborts the batch.
// The output preserves the original, un-normalized name fields; only the
// email address itself is built from normalized tokens.
func GenerateRecords(contacts []Contact, matcher *Matcher, logger *zap.Logger) ([]GeneratedEmail, int) {
	records := make([]GeneratedEmail, 0, len(contacts))
	skipped := 0

	for _, contact := range contacts {
		fullName := strings.TrimSpace(contact.Name)
		if fullName == "" || strings.TrimSpace(contact.Company) == "" {
			skipped++
			if logger != nil {
				logger.Warn("Skipping contact with missing name or company",
					zap.String("name", contact.Name),
					zap.String("company", contact.Company),
					zap.String("url", contact.URL))
			}
			continue
		}

		parts := strings.Fields(fullName)
		firstName := parts[0]
		lastName := unknownToken
		if len(parts) > 1 {
			lastName = parts[1]
		}

		match, _ := matcher.BestMatch(contact.Company)
		email, status := Synthesize(NormalizePerson(firstName), NormalizePerson(lastName), match, contact.Company)

		records = append(records, GeneratedEmail{
			FirstName:   firstName,
			LastName:    lastName,
			Email:       email,
			Company:     contact.Company,
			Position:    contact.Position,
			About:       contact.About,
			Skills1:     contact.Skills1,
			Skills2:     contact.Skills2,
			Skills3:     contact.Skills3,
			URL:         contact.URL,
			MatchStatus: status,
		})
	}

	return records, skipped
}

// Run executes one generation pass: read contacts, generate records, stage
// them and clear the contact source (header retained).
func (s *GeneratorService) Run(ctx context.Context) (*GenerationSummary, error) {
	rows, err := s.patterns.Patterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern catalog: %w", err)
	}
	catalog := BuildCatalog(rows, s.logger)
	matcher := NewMatcher(catalog, s.threshold, s.logger)

	contacts, err := s.contacts.Contacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	records, skipped := GenerateRecords(contacts, matcher, s.logger)
	s.logger.Info("Generated email records",
		zap.Int("contacts", len(contacts)),
		zap.Int("generated", len(records)),
		zap.Int("skipped", skipped))

	if len(records) > 0 {
		if err := s.staging.Append(ctx, records); err != nil {
			return nil, fmt.Errorf("failed to stage generated emails: %w", err)
		}
	}

	if err := s.contacts.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear contact source: %w", err)
	}

	return &GenerationSummary{Generated: len(records), Skipped: skipped}, nil
}
