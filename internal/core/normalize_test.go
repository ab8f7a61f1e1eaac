package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrganization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips punctuation and legal suffix", "ACME Corp.", "acme"},
		{"strips multiple stop words", "Acme Company Limited", "acme"},
		{"joins remaining tokens", "Red Hat Inc", "redhat"},
		{"transliterates diacritics", "Café Ltd", "cafe"},
		{"transliterates non-latin letters", "Łódź Software", "lodzsoftware"},
		{"drops digits", "3M Company", "m"},
		{"empty input", "", ""},
		{"only stop words leaves empty key", "Ltd. Inc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOrganization(tt.in))
		})
	}
}

func TestNormalizeOrganizationIdempotent(t *testing.T) {
	inputs := []string{
		"ACME Corp.", "Café Ltd", "Red Hat, Inc.", "", "Ltd.", "Société Générale",
	}
	for _, in := range inputs {
		once := NormalizeOrganization(in)
		assert.Equal(t, once, NormalizeOrganization(once), "input %q", in)
	}
}

func TestNormalizePerson(t *testing.T) {
	assert.Equal(t, "jose", NormalizePerson("José"))
	assert.Equal(t, "obrien", NormalizePerson("O'Brien"))
	// Whitespace is not a separator for person names
	assert.Equal(t, "mariajose", NormalizePerson("María José"))
	assert.Equal(t, "", NormalizePerson("123"))
}
