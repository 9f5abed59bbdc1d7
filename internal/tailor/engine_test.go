package tailor

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"tradcv/internal/ai"
	"tradcv/internal/cv"
	"tradcv/internal/errors"
)

type fakeProvider struct {
	result ai.ForgeResult
	err    error
}

func (f *fakeProvider) ParseCV(ctx context.Context, input ai.ParseCVInput) (cv.Record, *ai.TokenUsage, error) {
	return cv.Record{}, nil, fmt.Errorf("not implemented")
}

func (f *fakeProvider) ForgeCV(ctx context.Context, input ai.ForgeCVInput) (ai.ForgeResult, *ai.TokenUsage, error) {
	if f.err != nil {
		return ai.ForgeResult{}, nil, f.err
	}
	return f.result, &ai.TokenUsage{TotalTokens: 42}, nil
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func sourceRecord() cv.Record {
	return cv.Record{
		CandidateName: "Alex Chen",
		Contact:       "alex.chen@email.com",
		Education:     "Imperial College London, MEng Computing (AI), 2024",
		AwardsLeadership: map[string]string{
			"Technology": "1st Place, National Cyber Challenge.",
		},
		ProfessionalHistory: []cv.Role{
			{Role: "AI Research Intern", Company: "QuantumLeap AI", Dates: "2023",
				Accomplishments: []string{"Designed an RL algorithm."}},
			{Role: "Software Engineer", Company: "Acme Corp", Dates: "2021 - 2023",
				Accomplishments: []string{"Shipped a billing platform."}},
			{Role: "Intern", Company: "Startup Ltd", Dates: "2020",
				Accomplishments: []string{"Built internal tooling."}},
		},
	}
}

func TestForgePreservesStaticFields(t *testing.T) {
	provider := &fakeProvider{
		result: ai.ForgeResult{
			SummaryText: "A strategist-builder narrative.",
			ProfessionalHistory: []cv.Role{
				{Role: "AI Research Intern", Company: "QuantumLeap AI", Dates: "2023",
					Accomplishments: []string{"Rewrote for impact."}},
				{Role: "Software Engineer", Company: "Acme Corp", Dates: "2021 - 2023",
					Accomplishments: []string{"Rewrote for scale."}},
			},
			AwardsLeadership: map[string]string{"Engineering": "Challenge winner."},
		},
	}

	engine := New(provider, testLogger(t))
	source := sourceRecord()

	forged, usage, err := engine.Forge(context.Background(), source, "Build ML systems.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if forged.CandidateName != source.CandidateName {
		t.Errorf("Expected candidate name preserved, got %q", forged.CandidateName)
	}
	if forged.Contact != source.Contact {
		t.Errorf("Expected contact preserved, got %q", forged.Contact)
	}
	if forged.Education != source.Education {
		t.Errorf("Expected education preserved, got %q", forged.Education)
	}
	if forged.SummaryText != "A strategist-builder narrative." {
		t.Errorf("Expected forged summary, got %q", forged.SummaryText)
	}
	if usage == nil || usage.TotalTokens != 42 {
		t.Error("Expected token usage propagated")
	}
}

func TestForgeReinsertsMandatoryRoles(t *testing.T) {
	// The model dropped both mandatory roles and returned only an older one
	provider := &fakeProvider{
		result: ai.ForgeResult{
			SummaryText: "Narrative.",
			ProfessionalHistory: []cv.Role{
				{Role: "Intern", Company: "Startup Ltd", Dates: "2020",
					Accomplishments: []string{"Built internal tooling."}},
			},
		},
	}

	engine := New(provider, testLogger(t))
	forged, _, err := engine.Forge(context.Background(), sourceRecord(), "Some job.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(forged.ProfessionalHistory) != 3 {
		t.Fatalf("Expected 3 roles after re-insertion, got %d", len(forged.ProfessionalHistory))
	}
	if forged.ProfessionalHistory[0].Company != "QuantumLeap AI" {
		t.Errorf("Expected most recent role first, got %q", forged.ProfessionalHistory[0].Company)
	}
	if forged.ProfessionalHistory[1].Company != "Acme Corp" {
		t.Errorf("Expected second mandatory role second, got %q", forged.ProfessionalHistory[1].Company)
	}
}

func TestForgeOrdersMandatoryRolesFirst(t *testing.T) {
	// Model kept the mandatory roles but buried them behind another role
	provider := &fakeProvider{
		result: ai.ForgeResult{
			SummaryText: "Narrative.",
			ProfessionalHistory: []cv.Role{
				{Role: "Intern", Company: "Startup Ltd"},
				{Role: "Software Engineer", Company: "acme corp"},
				{Role: "AI Research Intern", Company: "QUANTUMLEAP AI"},
			},
		},
	}

	engine := New(provider, testLogger(t))
	forged, _, err := engine.Forge(context.Background(), sourceRecord(), "Some job.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(forged.ProfessionalHistory) != 3 {
		t.Fatalf("Expected 3 roles, got %d", len(forged.ProfessionalHistory))
	}
	// Role matching is case-insensitive, model content wins when present
	if forged.ProfessionalHistory[0].Company != "QUANTUMLEAP AI" {
		t.Errorf("Expected mandatory role moved to front, got %q", forged.ProfessionalHistory[0].Company)
	}
	if forged.ProfessionalHistory[1].Company != "acme corp" {
		t.Errorf("Expected second mandatory role second, got %q", forged.ProfessionalHistory[1].Company)
	}
	if forged.ProfessionalHistory[2].Company != "Startup Ltd" {
		t.Errorf("Expected remaining role last, got %q", forged.ProfessionalHistory[2].Company)
	}
}

func TestForgeCapsAccomplishments(t *testing.T) {
	provider := &fakeProvider{
		result: ai.ForgeResult{
			SummaryText: "Narrative.",
			ProfessionalHistory: []cv.Role{
				{Role: "AI Research Intern", Company: "QuantumLeap AI",
					Accomplishments: []string{"One.", "Two.", "Three.", "Four."}},
				{Role: "Software Engineer", Company: "Acme Corp",
					Accomplishments: []string{"  - One.  ", "", "Two.", "Three."}},
			},
		},
	}

	engine := New(provider, testLogger(t))
	forged, _, err := engine.Forge(context.Background(), sourceRecord(), "Some job.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, role := range forged.ProfessionalHistory {
		if len(role.Accomplishments) > MaxAccomplishmentsPerRole {
			t.Errorf("Role %q has %d accomplishments, cap is %d",
				role.Company, len(role.Accomplishments), MaxAccomplishmentsPerRole)
		}
	}
}

func TestForgeLeavesSourceUntouched(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{
			name:     "provider failure",
			provider: &fakeProvider{err: fmt.Errorf("model unavailable")},
		},
		{
			name: "successful forge",
			provider: &fakeProvider{result: ai.ForgeResult{
				SummaryText: "Narrative.",
				ProfessionalHistory: []cv.Role{
					{Role: "AI Research Intern", Company: "QuantumLeap AI",
						Accomplishments: []string{"Rewritten."}},
				},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(tt.provider, testLogger(t))
			source := sourceRecord()
			want := sourceRecord()

			_, _, _ = engine.Forge(context.Background(), source, "Some job.")

			if !reflect.DeepEqual(source, want) {
				t.Error("Expected source record to be unchanged after forge")
			}
		})
	}
}

func TestForgeErrorCases(t *testing.T) {
	tests := []struct {
		name           string
		source         cv.Record
		jobDescription string
		provider       *fakeProvider
	}{
		{
			name:           "empty job description",
			source:         sourceRecord(),
			jobDescription: "   ",
			provider:       &fakeProvider{},
		},
		{
			name:           "no professional history",
			source:         cv.Record{CandidateName: "Alex Chen"},
			jobDescription: "Some job.",
			provider:       &fakeProvider{},
		},
		{
			name:           "provider failure",
			source:         sourceRecord(),
			jobDescription: "Some job.",
			provider:       &fakeProvider{err: fmt.Errorf("model unavailable")},
		},
		{
			name:           "empty summary in result",
			source:         sourceRecord(),
			jobDescription: "Some job.",
			provider: &fakeProvider{result: ai.ForgeResult{
				ProfessionalHistory: []cv.Role{{Role: "Engineer", Company: "Acme Corp"}},
			}},
		},
		{
			name:           "no roles in result",
			source:         sourceRecord(),
			jobDescription: "Some job.",
			provider:       &fakeProvider{result: ai.ForgeResult{SummaryText: "Narrative."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(tt.provider, testLogger(t))
			_, _, err := engine.Forge(context.Background(), tt.source, tt.jobDescription)
			if !errors.IsTailorError(err) {
				t.Fatalf("Expected tailor error, got %v", err)
			}
		})
	}
}
