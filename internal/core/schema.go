package core

import (
	"strconv"
)

// Column names of the contact source store
const (
	ColName     = "Name"
	ColCompany  = "Current company"
	ColPosition = "Current position"
	ColAbout    = "About"
	ColSkills1  = "Skills 1"
	ColSkills2  = "Skills 2"
	ColSkills3  = "Skills 3"
	ColURL      = "url"
)

// Column names of the pattern catalog source
const (
	ColOrganization = "Organization"
	ColPattern      = "email_pattern"
	ColDomain       = "domain"
)

// StagingHeader is the 11-column schema of the staging store
var StagingHeader = []string{
	"first_name", "last_name", "email", "current_company", "current_position",
	"about", "skills_1", "skills_2", "skills_3", "url", "match_status",
}

// VerificationHeader is the 13-column schema of the validation and history stores
var VerificationHeader = []string{
	"first_name", "last_name", "email", "current_company", "current_position",
	"about", "skills_1", "skills_2", "skills_3", "url", "match_status",
	"status", "score",
}

// StagingRow flattens a generated email into the staging schema
func StagingRow(r GeneratedEmail) []string {
	return []string{
		r.FirstName, r.LastName, r.Email, r.Company, r.Position,
		r.About, r.Skills1, r.Skills2, r.Skills3, r.URL, string(r.MatchStatus),
	}
}

// ParseStagingRow reads a staging row back into a generated email record.
// Short rows are padded so trailing empty cells never break parsing.
func ParseStagingRow(row []string) GeneratedEmail {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return GeneratedEmail{
		FirstName:   cell(0),
		LastName:    cell(1),
		Email:       cell(2),
		Company:     cell(3),
		Position:    cell(4),
		About:       cell(5),
		Skills1:     cell(6),
		Skills2:     cell(7),
		Skills3:     cell(8),
		URL:         cell(9),
		MatchStatus: MatchStatus(cell(10)),
	}
}

// VerificationRow flattens a verification result into the 13-column schema
func VerificationRow(r VerificationResult) []string {
	return append(StagingRow(r.GeneratedEmail), r.Status, strconv.Itoa(r.Score))
}
