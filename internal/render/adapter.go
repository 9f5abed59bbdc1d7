// Package render turns a candidate record into a printed one-page PDF via
// an HTML template and a headless Chrome backend.
package render

import (
	"context"
	"html/template"
	"sort"
	"strings"

	"tradcv/internal/cv"
	"tradcv/internal/errors"
)

// PDFBackend renders a complete HTML document to PDF bytes
type PDFBackend interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Adapter prepares records for rendering and drives the PDF backend
type Adapter struct {
	backend PDFBackend
	tmpl    *template.Template
	logger  *errors.Logger
}

// New creates a render adapter around the given PDF backend
func New(backend PDFBackend, logger *errors.Logger) *Adapter {
	return &Adapter{
		backend: backend,
		tmpl:    template.Must(template.New("cv").Parse(cvTemplate)),
		logger:  logger,
	}
}

type awardCategory struct {
	Name        string
	Description string
}

type templateInput struct {
	CSS             template.CSS
	Record          cv.Record
	AwardCategories []awardCategory
}

// Coerce normalizes a record before rendering. Accomplishment entries that
// arrived as multi-line bullet blobs are split into individual lines with
// bullet prefixes stripped. Idempotent on already-clean records.
func Coerce(record cv.Record) cv.Record {
	out := cv.Normalize(record)

	for i, role := range out.ProfessionalHistory {
		coerced := make([]string, 0, len(role.Accomplishments))
		for _, entry := range role.Accomplishments {
			coerced = append(coerced, cv.SplitAccomplishmentText(entry)...)
		}
		out.ProfessionalHistory[i].Accomplishments = coerced
	}

	return out
}

// BuildHTML renders the record into the fixed CV document layout
func (a *Adapter) BuildHTML(record cv.Record) (string, error) {
	record = Coerce(record)

	categories := make([]awardCategory, 0, len(record.AwardsLeadership))
	for name, description := range record.AwardsLeadership {
		categories = append(categories, awardCategory{Name: name, Description: description})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	var b strings.Builder
	err := a.tmpl.Execute(&b, templateInput{
		CSS:             template.CSS(cvCSS),
		Record:          record,
		AwardCategories: categories,
	})
	if err != nil {
		return "", errors.NewRenderError(errors.ErrCodeRenderFailed,
			"Failed to build CV document", err)
	}

	return b.String(), nil
}

// RenderPDF renders the record to PDF bytes
func (a *Adapter) RenderPDF(ctx context.Context, record cv.Record) ([]byte, error) {
	html, err := a.BuildHTML(record)
	if err != nil {
		return nil, err
	}

	pdf, err := a.backend.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed,
			"PDF backend failed", err)
	}

	a.logger.Info("CV rendered to PDF",
		"candidate", record.CandidateName,
		"bytes", len(pdf))

	return pdf, nil
}

// Filename builds the download filename for a candidate, spaces removed
func Filename(candidateName string) string {
	name := strings.ReplaceAll(candidateName, " ", "")
	if name == "" {
		name = "CV"
	}
	return name + "_TradCV.pdf"
}
