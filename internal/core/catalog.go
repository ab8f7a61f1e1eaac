package core

import (
	"go.uber.org/zap"
)

// TemplateUnmatched is the sentinel template marking a catalog row whose
// pattern is known to be unresolved. Such rows are kept in the catalog but
// are never match candidates.
const TemplateUnmatched = "Unmatched"

// PatternCatalog maps normalized organization keys to email pattern entries.
// Insertion order is preserved; it is the deterministic tie-break for equal
// match scores. On key collision the later row silently overwrites the
// earlier one while keeping the original position (last-write-wins, matching
// the behavior of the upstream catalog sheet).
type PatternCatalog struct {
	keys    []string
	entries map[string]PatternEntry
}

// NewPatternCatalog creates an empty pattern catalog
func NewPatternCatalog() *PatternCatalog {
	return &PatternCatalog{
		entries: make(map[string]PatternEntry),
	}
}

// BuildCatalog loads a catalog from raw pattern rows. Rows missing the
// organization, template or domain field are skipped.
func BuildCatalog(rows []PatternRow, logger *zap.Logger) *PatternCatalog {
	catalog := NewPatternCatalog()
	skipped := 0
	for _, row := range rows {
		if row.Organization == "" || row.Template == "" || row.Domain == "" {
			skipped++
			continue
		}
		catalog.Insert(row.Organization, PatternEntry{
			Template: row.Template,
			Domain:   row.Domain,
		})
	}
	if logger != nil {
		logger.Info("Loaded pattern catalog",
			zap.Int("entries", catalog.Len()),
			zap.Int("skipped_rows", skipped))
	}
	return catalog
}

// Insert adds an entry under the normalized organization key
func (c *PatternCatalog) Insert(organization string, entry PatternEntry) {
	key := NormalizeOrganization(organization)
	if key == "" {
		return
	}
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = entry
}

// Lookup returns the entry stored under a normalized key
func (c *PatternCatalog) Lookup(key string) (PatternEntry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Len returns the number of catalog entries
func (c *PatternCatalog) Len() int {
	return len(c.keys)
}

// candidates iterates entries in insertion order, skipping sentinel rows
func (c *PatternCatalog) candidates(fn func(key string, entry PatternEntry)) {
	for _, key := range c.keys {
		entry := c.entries[key]
		if entry.Template == TemplateUnmatched {
			continue
		}
		fn(key, entry)
	}
}
