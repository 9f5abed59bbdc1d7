package ai

import (
	"fmt"
	"sort"
	"strings"

	"tradcv/internal/cv"
)

// Operation names used for circuit breaker naming, tracing, and prompt lookup
const (
	OperationParse = "parse_cv"
	OperationForge = "forge_cv"
)

// FormatArmory flattens a candidate record into the plain-text armory block
// the forge prompt expects
func FormatArmory(record cv.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Candidate Name: %s\n", record.CandidateName)
	fmt.Fprintf(&b, "Contact: %s\n", record.Contact)
	fmt.Fprintf(&b, "Education: %s\n", record.Education)

	categories := make([]string, 0, len(record.AwardsLeadership))
	for category := range record.AwardsLeadership {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	awardLines := make([]string, 0, len(categories))
	for _, category := range categories {
		awardLines = append(awardLines, fmt.Sprintf("%s: %s", category, record.AwardsLeadership[category]))
	}
	fmt.Fprintf(&b, "Awards & Leadership:\n%s\n", strings.Join(awardLines, "\n"))

	b.WriteString("Professional History (Verifiable Ground Truth):\n")
	for _, role := range record.ProfessionalHistory {
		fmt.Fprintf(&b, "Company: %s | Official Role: %s | Dates: %s | Accomplishments: %s\n",
			role.Company, role.Role, role.Dates, strings.Join(role.Accomplishments, "\n"))
	}

	return strings.TrimSpace(b.String())
}

// LatestRolesClause renders the mandatory most-recent roles as a prompt
// fragment, e.g. 'Engineer at Acme' and 'Intern at Zenith'
func LatestRolesClause(record cv.Record) string {
	latest := record.ProfessionalHistory
	if len(latest) > 2 {
		latest = latest[:2]
	}

	parts := make([]string, 0, len(latest))
	for _, role := range latest {
		parts = append(parts, fmt.Sprintf("'%s at %s'", role.Role, role.Company))
	}
	return strings.Join(parts, " and ")
}

// MandatoryRoles returns the roles a forge pass must keep, in source order
func MandatoryRoles(record cv.Record) []cv.Role {
	if len(record.ProfessionalHistory) > 2 {
		return record.ProfessionalHistory[:2]
	}
	return record.ProfessionalHistory
}
