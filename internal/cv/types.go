package cv

// Record is the armory: the candidate's verified career history plus the
// AI-owned narrative fields produced by a forge pass. The three static
// fields (name, contact, education) are user-owned and are never accepted
// from AI output.
type Record struct {
	CandidateName       string            `json:"candidate_name"`
	Contact             string            `json:"contact"`
	Education           string            `json:"education"`
	SummaryText         string            `json:"summary_text,omitempty"`
	Competencies        []Competency      `json:"competencies"`
	ProfessionalHistory []Role            `json:"professional_history"`
	AwardsLeadership    map[string]string `json:"awards_leadership"`
}

// Competency is a titled skill area with a short supporting description
type Competency struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Role is one entry of the professional history. Ordering in the record is
// significant: index 0 and 1 are the most recent roles and are mandatory
// inputs to any forge pass.
type Role struct {
	Role            string   `json:"role"`
	Company         string   `json:"company"`
	Dates           string   `json:"dates"`
	Accomplishments []string `json:"accomplishments"`
}

// Clone returns a deep copy of the record so callers can hand it to
// mutating pipeline stages without risking their own copy.
func (r Record) Clone() Record {
	out := r

	if r.Competencies != nil {
		out.Competencies = make([]Competency, len(r.Competencies))
		copy(out.Competencies, r.Competencies)
	}

	if r.ProfessionalHistory != nil {
		out.ProfessionalHistory = make([]Role, len(r.ProfessionalHistory))
		for i, role := range r.ProfessionalHistory {
			out.ProfessionalHistory[i] = role.Clone()
		}
	}

	if r.AwardsLeadership != nil {
		out.AwardsLeadership = make(map[string]string, len(r.AwardsLeadership))
		for k, v := range r.AwardsLeadership {
			out.AwardsLeadership[k] = v
		}
	}

	return out
}

// Clone returns a deep copy of the role
func (ro Role) Clone() Role {
	out := ro
	if ro.Accomplishments != nil {
		out.Accomplishments = make([]string, len(ro.Accomplishments))
		copy(out.Accomplishments, ro.Accomplishments)
	}
	return out
}

// AddAwardCategory adds a new awards category. Category names are unique
// keys: adding a name that already exists is a no-op and returns false.
func (r *Record) AddAwardCategory(name, description string) bool {
	if r.AwardsLeadership == nil {
		r.AwardsLeadership = make(map[string]string)
	}
	if _, exists := r.AwardsLeadership[name]; exists {
		return false
	}
	r.AwardsLeadership[name] = description
	return true
}

// RemoveAwardCategory deletes an awards category, returning false when the
// name is not present.
func (r *Record) RemoveAwardCategory(name string) bool {
	if _, exists := r.AwardsLeadership[name]; !exists {
		return false
	}
	delete(r.AwardsLeadership, name)
	return true
}
