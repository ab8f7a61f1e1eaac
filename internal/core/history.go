package core

import (
	"strings"
)

// History is the in-memory set of already-verified email addresses,
// rebuilt from the permanent ledger at the start of each verification run.
// Membership is whitespace-trimmed and case-sensitive. Entries are only
// ever added, never removed.
type History struct {
	seen map[string]struct{}
}

// NewHistory builds a history set from the ledger's email addresses
func NewHistory(emails []string) *History {
	h := &History{seen: make(map[string]struct{}, len(emails))}
	for _, email := range emails {
		h.Record(email)
	}
	return h
}

// HasSeen reports whether an address was already verified
func (h *History) HasSeen(email string) bool {
	_, ok := h.seen[strings.TrimSpace(email)]
	return ok
}

// Record marks an address as verified
func (h *History) Record(email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return
	}
	h.seen[email] = struct{}{}
}

// Len returns the number of recorded addresses
func (h *History) Len() int {
	return len(h.seen)
}
