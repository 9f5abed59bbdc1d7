package cv

import "strings"

// Normalize guarantees the record has every collection field present with
// the correct container type without discarding existing values. Freshly
// parsed and freshly edited records both pass through here before any
// other component touches them.
//
// Normalize is idempotent and never mutates its input: slices and maps are
// copied before they are touched.
func Normalize(r Record) Record {
	out := r.Clone()

	if out.Competencies == nil {
		out.Competencies = []Competency{}
	}
	if out.ProfessionalHistory == nil {
		out.ProfessionalHistory = []Role{}
	}
	if out.AwardsLeadership == nil {
		out.AwardsLeadership = map[string]string{}
	}

	for i := range out.ProfessionalHistory {
		out.ProfessionalHistory[i].Accomplishments = CleanAccomplishments(out.ProfessionalHistory[i].Accomplishments)
	}

	return out
}

// CleanAccomplishments trims every accomplishment string and drops empty
// entries. The result is always a non-nil slice.
func CleanAccomplishments(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// SplitAccomplishmentText breaks a free-text accomplishments blob into
// individual entries: one per line, leading bullet markers and whitespace
// stripped, blank lines dropped. Already-clean entries pass through
// unchanged, so applying it twice yields the same result.
func SplitAccomplishmentText(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
