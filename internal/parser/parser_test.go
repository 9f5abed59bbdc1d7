package parser

import (
	"context"
	"fmt"
	"testing"

	"tradcv/internal/ai"
	"tradcv/internal/cv"
	"tradcv/internal/errors"
)

type fakeProvider struct {
	record cv.Record
	err    error
}

func (f *fakeProvider) ParseCV(ctx context.Context, input ai.ParseCVInput) (cv.Record, *ai.TokenUsage, error) {
	if f.err != nil {
		return cv.Record{}, nil, f.err
	}
	return f.record, &ai.TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}, nil
}

func (f *fakeProvider) ForgeCV(ctx context.Context, input ai.ForgeCVInput) (ai.ForgeResult, *ai.TokenUsage, error) {
	return ai.ForgeResult{}, nil, fmt.Errorf("not implemented")
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

func TestParseValidRecord(t *testing.T) {
	provider := &fakeProvider{
		record: cv.Record{
			CandidateName: "Alex Chen",
			Contact:       "alex.chen@email.com",
			ProfessionalHistory: []cv.Role{
				{Role: "Engineer", Company: "Acme", Dates: "2021 - 2023",
					Accomplishments: []string{"  Shipped a billing platform  ", ""}},
			},
		},
	}

	p := New(provider, testLogger(t))
	record, usage, err := p.Parse(context.Background(), "plenty of raw CV text goes here")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if record.CandidateName != "Alex Chen" {
		t.Errorf("Expected candidate name to survive parsing, got %q", record.CandidateName)
	}
	if usage == nil || usage.TotalTokens != 30 {
		t.Error("Expected token usage to be propagated")
	}

	// Normalization guarantees
	if record.Competencies == nil || record.AwardsLeadership == nil {
		t.Error("Expected collections to be non-nil after parsing")
	}
	accomplishments := record.ProfessionalHistory[0].Accomplishments
	if len(accomplishments) != 1 || accomplishments[0] != "Shipped a billing platform" {
		t.Errorf("Expected cleaned accomplishments, got %v", accomplishments)
	}
}

func TestParseEmptyInput(t *testing.T) {
	p := New(&fakeProvider{}, testLogger(t))
	_, _, err := p.Parse(context.Background(), "   \n ")
	if !errors.IsParseError(err) {
		t.Fatalf("Expected parse error for empty input, got %v", err)
	}
}

func TestParseProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("model unavailable")}
	p := New(provider, testLogger(t))

	_, _, err := p.Parse(context.Background(), "some CV text")
	if !errors.IsParseError(err) {
		t.Fatalf("Expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		record      cv.Record
		expectError bool
	}{
		{
			name: "valid record",
			record: cv.Record{
				CandidateName:       "Alex Chen",
				ProfessionalHistory: []cv.Role{{Role: "Engineer", Company: "Acme"}},
			},
			expectError: false,
		},
		{
			name: "missing candidate name",
			record: cv.Record{
				ProfessionalHistory: []cv.Role{{Role: "Engineer", Company: "Acme"}},
			},
			expectError: true,
		},
		{
			name:        "no professional history",
			record:      cv.Record{CandidateName: "Alex Chen"},
			expectError: true,
		},
		{
			name: "role entry with no identity",
			record: cv.Record{
				CandidateName:       "Alex Chen",
				ProfessionalHistory: []cv.Role{{Dates: "2021"}},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.record)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
