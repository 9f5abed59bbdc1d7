// Package parser turns raw CV text into a validated candidate record using
// a one-shot AI parsing pass.
package parser

import (
	"context"
	"strings"

	"tradcv/internal/ai"
	"tradcv/internal/cv"
	"tradcv/internal/errors"
)

// Parser converts raw extracted CV text into a normalized candidate record
type Parser struct {
	provider ai.Provider
	logger   *errors.Logger
}

// New creates a Parser backed by the given AI provider
func New(provider ai.Provider, logger *errors.Logger) *Parser {
	return &Parser{
		provider: provider,
		logger:   logger,
	}
}

// Parse runs the structured parsing pass and validates the model output.
// The returned record is normalized: all collections are non-nil and
// accomplishment lists are cleaned.
func (p *Parser) Parse(ctx context.Context, rawText string) (cv.Record, *ai.TokenUsage, error) {
	if strings.TrimSpace(rawText) == "" {
		return cv.Record{}, nil, errors.NewParseError(errors.ErrCodeInvalidRequest,
			"No CV text provided for parsing", nil)
	}

	record, tokenUsage, err := p.provider.ParseCV(ctx, ai.ParseCVInput{RawText: rawText})
	if err != nil {
		return cv.Record{}, nil, errors.NewParseError(errors.ErrCodeAIResponseInvalid,
			"The AI failed to generate a valid JSON response during parsing", err)
	}

	if err := Validate(record); err != nil {
		return cv.Record{}, nil, err
	}

	record = cv.Normalize(record)

	p.logger.Info("CV parsed into structured record",
		"candidate", record.CandidateName,
		"roles", len(record.ProfessionalHistory),
		"award_categories", len(record.AwardsLeadership))

	return record, tokenUsage, nil
}

// Validate checks that a model-produced record is plausibly a parsed CV.
// The model response is untrusted input: a syntactically valid JSON object
// with none of the expected content is treated as a parse failure.
func Validate(record cv.Record) error {
	if strings.TrimSpace(record.CandidateName) == "" {
		return errors.NewParseError(errors.ErrCodeAIResponseInvalid,
			"Parsed record is missing the candidate name", nil)
	}

	if len(record.ProfessionalHistory) == 0 {
		return errors.NewParseError(errors.ErrCodeAIResponseInvalid,
			"Parsed record contains no professional history", nil)
	}

	for i, role := range record.ProfessionalHistory {
		if strings.TrimSpace(role.Role) == "" && strings.TrimSpace(role.Company) == "" {
			return errors.NewParseError(errors.ErrCodeAIResponseInvalid,
				"Parsed record contains a professional history entry with neither role nor company", nil).
				WithContext("index", i)
		}
	}

	return nil
}
