package cv

import (
	"reflect"
	"testing"
)

func TestNormalizeFillsMissingCollections(t *testing.T) {
	r := Normalize(Record{CandidateName: "Alex Chen"})

	if r.Competencies == nil || len(r.Competencies) != 0 {
		t.Errorf("expected empty competencies slice, got %#v", r.Competencies)
	}
	if r.ProfessionalHistory == nil || len(r.ProfessionalHistory) != 0 {
		t.Errorf("expected empty history slice, got %#v", r.ProfessionalHistory)
	}
	if r.AwardsLeadership == nil || len(r.AwardsLeadership) != 0 {
		t.Errorf("expected empty awards map, got %#v", r.AwardsLeadership)
	}
	if r.CandidateName != "Alex Chen" {
		t.Errorf("expected candidate name preserved, got %q", r.CandidateName)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{
			name:   "empty record",
			record: Record{},
		},
		{
			name: "fully populated record",
			record: Record{
				CandidateName: "Alex Chen",
				Contact:       "alex.chen@email.com",
				Education:     "Imperial College London",
				SummaryText:   "Builder of things.",
				Competencies:  []Competency{{Title: "ML", Description: "Trained models"}},
				ProfessionalHistory: []Role{
					{Role: "Intern", Company: "QuantumLeap AI", Dates: "2023", Accomplishments: []string{"Shipped it"}},
				},
				AwardsLeadership: map[string]string{"Technology": "1st place"},
			},
		},
		{
			name: "messy accomplishments",
			record: Record{
				ProfessionalHistory: []Role{
					{Role: "PM", Accomplishments: []string{"  padded  ", "", "   ", "kept"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Normalize(tt.record)
			twice := Normalize(once)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("normalize not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
			}
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := Record{
		ProfessionalHistory: []Role{
			{Role: "PM", Accomplishments: []string{"  padded  ", ""}},
		},
	}

	_ = Normalize(in)

	if in.ProfessionalHistory[0].Accomplishments[0] != "  padded  " {
		t.Errorf("input record was mutated: %#v", in.ProfessionalHistory[0].Accomplishments)
	}
}

func TestNormalizeCleansAccomplishments(t *testing.T) {
	r := Normalize(Record{
		ProfessionalHistory: []Role{
			{Role: "PM", Accomplishments: []string{" a ", "", "b"}},
		},
	})

	want := []string{"a", "b"}
	if !reflect.DeepEqual(r.ProfessionalHistory[0].Accomplishments, want) {
		t.Errorf("expected %v, got %v", want, r.ProfessionalHistory[0].Accomplishments)
	}
}

func TestSplitAccomplishmentText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "bulleted lines with trailing newline",
			in:   "- Did X\n- Did Y\n",
			want: []string{"Did X", "Did Y"},
		},
		{
			name: "mixed markers and blanks",
			in:   "* First\n\n  • Second  \n\t- Third",
			want: []string{"First", "Second", "Third"},
		},
		{
			name: "already clean",
			in:   "Did X",
			want: []string{"Did X"},
		},
		{
			name: "empty",
			in:   "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAccomplishmentText(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAddAwardCategoryUniqueKeys(t *testing.T) {
	r := Record{}

	if !r.AddAwardCategory("Technology", "1st place") {
		t.Fatal("expected first add to succeed")
	}
	if r.AddAwardCategory("Technology", "overwrite attempt") {
		t.Error("expected duplicate add to be a no-op")
	}
	if got := r.AwardsLeadership["Technology"]; got != "1st place" {
		t.Errorf("existing value overwritten: %q", got)
	}
	if len(r.AwardsLeadership) != 1 {
		t.Errorf("expected a single category, got %d", len(r.AwardsLeadership))
	}
}

func TestRemoveAwardCategoryReportsPresence(t *testing.T) {
	r := Record{}
	r.AddAwardCategory("Technology", "1st place")

	if !r.RemoveAwardCategory("Technology") {
		t.Error("expected removal of existing category to return true")
	}
	if r.RemoveAwardCategory("Technology") {
		t.Error("expected removal of absent category to return false")
	}
	if r.RemoveAwardCategory("Business") {
		t.Error("expected removal on never-added category to return false")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Record{
		Competencies:        []Competency{{Title: "ML"}},
		ProfessionalHistory: []Role{{Role: "PM", Accomplishments: []string{"a"}}},
		AwardsLeadership:    map[string]string{"Technology": "1st"},
	}

	clone := orig.Clone()
	clone.Competencies[0].Title = "changed"
	clone.ProfessionalHistory[0].Accomplishments[0] = "changed"
	clone.AwardsLeadership["Technology"] = "changed"

	if orig.Competencies[0].Title != "ML" {
		t.Error("competencies not deep-copied")
	}
	if orig.ProfessionalHistory[0].Accomplishments[0] != "a" {
		t.Error("accomplishments not deep-copied")
	}
	if orig.AwardsLeadership["Technology"] != "1st" {
		t.Error("awards map not deep-copied")
	}
}
