package ai

import (
	"context"

	"tradcv/internal/cv"
)

// Provider interface for different AI implementations.
// All methods return token usage information - callers can ignore it if not needed
type Provider interface {
	ParseCV(ctx context.Context, input ParseCVInput) (cv.Record, *TokenUsage, error)
	ForgeCV(ctx context.Context, input ForgeCVInput) (ForgeResult, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// ParseCVInput carries the raw extracted CV text for structured parsing
type ParseCVInput struct {
	RawText string
}

// ForgeCVInput carries the verified candidate record and the target job
// description for a tailoring pass
type ForgeCVInput struct {
	Record         cv.Record
	JobDescription string
}

// ForgeResult is the dynamic portion of a tailored CV as returned by the
// model. Static identity fields are intentionally absent, the caller merges
// this over the source record.
type ForgeResult struct {
	SummaryText         string            `json:"summary_text"`
	Competencies        []cv.Competency   `json:"competencies"`
	ProfessionalHistory []cv.Role         `json:"professional_history"`
	AwardsLeadership    map[string]string `json:"awards_leadership"`
}
