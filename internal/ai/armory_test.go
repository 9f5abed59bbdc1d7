package ai

import (
	"strings"
	"testing"

	"tradcv/internal/cv"
)

func sampleRecord() cv.Record {
	return cv.Record{
		CandidateName: "Alex Chen",
		Contact:       "+44 123 456 7890 | alex.chen@email.com",
		Education:     "Imperial College London, MEng Computing (AI), 2024",
		AwardsLeadership: map[string]string{
			"Technology":        "1st Place, National Cyber Challenge.",
			"Business & Growth": "Co-founded a social app, achieving 1M+ downloads.",
		},
		ProfessionalHistory: []cv.Role{
			{
				Role:            "AI Research Intern",
				Company:         "QuantumLeap AI",
				Dates:           "June 2023 - September 2023",
				Accomplishments: []string{"Designed a novel reinforcement learning algorithm."},
			},
			{
				Role:            "Software Engineer",
				Company:         "Acme Corp",
				Dates:           "2021 - 2023",
				Accomplishments: []string{"Shipped a billing platform."},
			},
			{
				Role:            "Intern",
				Company:         "Startup Ltd",
				Dates:           "2020",
				Accomplishments: []string{"Built internal tooling."},
			},
		},
	}
}

func TestFormatArmory(t *testing.T) {
	armory := FormatArmory(sampleRecord())

	expectedFragments := []string{
		"Candidate Name: Alex Chen",
		"Contact: +44 123 456 7890 | alex.chen@email.com",
		"Awards & Leadership:",
		"Technology: 1st Place, National Cyber Challenge.",
		"Professional History (Verifiable Ground Truth):",
		"Company: QuantumLeap AI | Official Role: AI Research Intern | Dates: June 2023 - September 2023",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(armory, fragment) {
			t.Errorf("Expected armory to contain %q", fragment)
		}
	}

	// Award categories are emitted in sorted order for stable prompts
	bizIdx := strings.Index(armory, "Business & Growth:")
	techIdx := strings.Index(armory, "Technology:")
	if bizIdx == -1 || techIdx == -1 || bizIdx > techIdx {
		t.Error("Expected award categories in sorted order")
	}
}

func TestLatestRolesClause(t *testing.T) {
	tests := []struct {
		name     string
		roles    []cv.Role
		expected string
	}{
		{
			name: "three roles keeps first two",
			roles: []cv.Role{
				{Role: "AI Research Intern", Company: "QuantumLeap AI"},
				{Role: "Software Engineer", Company: "Acme Corp"},
				{Role: "Intern", Company: "Startup Ltd"},
			},
			expected: "'AI Research Intern at QuantumLeap AI' and 'Software Engineer at Acme Corp'",
		},
		{
			name: "single role",
			roles: []cv.Role{
				{Role: "Engineer", Company: "Acme Corp"},
			},
			expected: "'Engineer at Acme Corp'",
		},
		{
			name:     "no roles",
			roles:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := cv.Record{ProfessionalHistory: tt.roles}
			if got := LatestRolesClause(record); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMandatoryRoles(t *testing.T) {
	record := sampleRecord()
	mandatory := MandatoryRoles(record)
	if len(mandatory) != 2 {
		t.Fatalf("Expected 2 mandatory roles, got %d", len(mandatory))
	}
	if mandatory[0].Company != "QuantumLeap AI" || mandatory[1].Company != "Acme Corp" {
		t.Error("Expected the two most recent roles in source order")
	}

	short := cv.Record{ProfessionalHistory: record.ProfessionalHistory[:1]}
	if got := MandatoryRoles(short); len(got) != 1 {
		t.Errorf("Expected 1 mandatory role, got %d", len(got))
	}
}

func TestDefaultPromptsHavePlaceholders(t *testing.T) {
	if strings.Count(DefaultUserPrompts.ParseCV, "%s") != 1 {
		t.Error("Expected parse user prompt to have exactly one placeholder")
	}
	if strings.Count(DefaultUserPrompts.ForgeCV, "%s") != 4 {
		t.Error("Expected forge user prompt to have exactly four placeholders")
	}
	if strings.Contains(DefaultSystemPrompts.ParseCV, "%s") {
		t.Error("System prompts must not carry format placeholders")
	}
}
