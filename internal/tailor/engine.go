// Package tailor runs the forge pass: an archetype-guided rewrite of a
// candidate record against a target job description.
package tailor

import (
	"context"
	"strings"

	"tradcv/internal/ai"
	"tradcv/internal/cv"
	"tradcv/internal/errors"
)

// MaxAccomplishmentsPerRole caps bullet points per role in a forged record
const MaxAccomplishmentsPerRole = 2

// Engine produces tailored candidate records
type Engine struct {
	provider ai.Provider
	logger   *errors.Logger
}

// New creates a tailoring engine backed by the given AI provider
func New(provider ai.Provider, logger *errors.Logger) *Engine {
	return &Engine{
		provider: provider,
		logger:   logger,
	}
}

// Forge tailors the source record to the job description and returns a new
// record. The source record is never modified, on failure the caller's
// record is exactly as it was.
func (e *Engine) Forge(ctx context.Context, source cv.Record, jobDescription string) (cv.Record, *ai.TokenUsage, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return cv.Record{}, nil, errors.NewTailorError(errors.ErrCodeInvalidRequest,
			"A target job description is required for forging", nil)
	}
	if len(source.ProfessionalHistory) == 0 {
		return cv.Record{}, nil, errors.NewTailorError(errors.ErrCodeInvalidRequest,
			"Cannot forge a record with no professional history", nil)
	}

	input := ai.ForgeCVInput{
		Record:         source.Clone(),
		JobDescription: jobDescription,
	}

	result, tokenUsage, err := e.provider.ForgeCV(ctx, input)
	if err != nil {
		return cv.Record{}, nil, errors.NewTailorError(errors.ErrCodeAIServiceFailed,
			"The AI failed to generate tailored CV content", err)
	}

	if err := validateResult(result); err != nil {
		return cv.Record{}, nil, err
	}

	forged := merge(source, result)

	e.logger.Info("CV forged against job description",
		"candidate", forged.CandidateName,
		"roles", len(forged.ProfessionalHistory),
		"competencies", len(forged.Competencies))

	return forged, tokenUsage, nil
}

// validateResult rejects forge output that is unusable as CV content
func validateResult(result ai.ForgeResult) error {
	if strings.TrimSpace(result.SummaryText) == "" {
		return errors.NewTailorError(errors.ErrCodeAIResponseInvalid,
			"Forged content is missing the summary line", nil)
	}
	if len(result.ProfessionalHistory) == 0 {
		return errors.NewTailorError(errors.ErrCodeAIResponseInvalid,
			"Forged content contains no professional history", nil)
	}
	return nil
}

// merge builds the final record: static identity fields come from the source,
// dynamic content comes from the forge result. Mandatory roles and the
// accomplishment cap are enforced here rather than trusted to the model.
func merge(source cv.Record, result ai.ForgeResult) cv.Record {
	forged := cv.Record{
		CandidateName:       source.CandidateName,
		Contact:             source.Contact,
		Education:           source.Education,
		SummaryText:         strings.TrimSpace(result.SummaryText),
		Competencies:        result.Competencies,
		ProfessionalHistory: enforceMandatoryRoles(source, result.ProfessionalHistory),
		AwardsLeadership:    result.AwardsLeadership,
	}

	for i := range forged.ProfessionalHistory {
		forged.ProfessionalHistory[i].Accomplishments =
			capAccomplishments(forged.ProfessionalHistory[i].Accomplishments)
	}

	return cv.Normalize(forged)
}

// enforceMandatoryRoles guarantees the two most recent source roles appear in
// the forged history. A missing mandatory role is re-inserted with its
// original content at its recency position.
func enforceMandatoryRoles(source cv.Record, history []cv.Role) []cv.Role {
	mandatory := ai.MandatoryRoles(source)

	out := make([]cv.Role, len(history))
	copy(out, history)

	for i := len(mandatory) - 1; i >= 0; i-- {
		if findRole(out, mandatory[i]) >= 0 {
			continue
		}
		role := mandatory[i].Clone()
		out = append([]cv.Role{role}, out...)
	}

	// Mandatory roles lead the history in source order
	for i, want := range mandatory {
		at := findRole(out, want)
		if at < 0 || at == i {
			continue
		}
		role := out[at]
		out = append(out[:at], out[at+1:]...)
		rest := make([]cv.Role, 0, len(out)+1)
		rest = append(rest, out[:i]...)
		rest = append(rest, role)
		rest = append(rest, out[i:]...)
		out = rest
	}

	return out
}

// findRole locates a role by role title and company, case-insensitively
func findRole(history []cv.Role, want cv.Role) int {
	for i, role := range history {
		if strings.EqualFold(strings.TrimSpace(role.Role), strings.TrimSpace(want.Role)) &&
			strings.EqualFold(strings.TrimSpace(role.Company), strings.TrimSpace(want.Company)) {
			return i
		}
	}
	return -1
}

// capAccomplishments cleans the list and truncates it to the per-role cap
func capAccomplishments(accomplishments []string) []string {
	cleaned := cv.CleanAccomplishments(accomplishments)
	if len(cleaned) > MaxAccomplishmentsPerRole {
		cleaned = cleaned[:MaxAccomplishmentsPerRole]
	}
	return cleaned
}
