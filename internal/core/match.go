package core

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"
)

// DefaultMatchThreshold is the similarity score a candidate must strictly
// exceed to be accepted. Company names from scraped profiles are noisy, so
// matching is fuzzy; the threshold guards against routing an email to the
// wrong domain.
const DefaultMatchThreshold = 80

// Matcher resolves free-text company names against a pattern catalog using
// token-sort similarity
type Matcher struct {
	catalog   *PatternCatalog
	threshold int
	logger    *zap.Logger
}

// NewMatcher creates a matcher over a catalog. A threshold <= 0 falls back
// to DefaultMatchThreshold.
func NewMatcher(catalog *PatternCatalog, threshold int, logger *zap.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{
		catalog:   catalog,
		threshold: threshold,
		logger:    logger,
	}
}

// BestMatch returns the catalog entry whose key scores highest against the
// normalized company name, provided the score strictly exceeds the
// threshold. Ties resolve to the earliest-inserted catalog key, which is
// deterministic but implementation-defined.
func (m *Matcher) BestMatch(company string) (*MatchResult, bool) {
	query := NormalizeOrganization(company)
	if query == "" {
		return nil, false
	}

	bestScore := -1
	var bestKey string
	var bestEntry PatternEntry
	m.catalog.candidates(func(key string, entry PatternEntry) {
		score := fuzzy.TokenSortRatio(query, key)
		if score > bestScore {
			bestScore = score
			bestKey = key
			bestEntry = entry
		}
	})

	if bestScore <= m.threshold {
		return nil, false
	}

	if m.logger != nil {
		m.logger.Debug("Matched company against catalog",
			zap.String("company", company),
			zap.String("key", bestKey),
			zap.Int("score", bestScore))
	}
	return &MatchResult{Template: bestEntry.Template, Domain: bestEntry.Domain}, true
}
