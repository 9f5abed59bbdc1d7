package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"tradcv/internal/cv"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Record", &RecordTextFormatter{})
	registry.RegisterFormatter("markdown", "Record", &RecordMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case cv.Record:
		return "Record"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// sortedAwardCategories returns award category names in stable order
func sortedAwardCategories(awards map[string]string) []string {
	categories := make([]string, 0, len(awards))
	for category := range awards {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// RecordTextFormatter handles plain text formatting for CV records
type RecordTextFormatter struct{}

func (rtf *RecordTextFormatter) Format(data any) (string, error) {
	record, ok := data.(cv.Record)
	if !ok {
		return "", fmt.Errorf("expected cv.Record, got %T", data)
	}

	var output strings.Builder

	output.WriteString(record.CandidateName)
	output.WriteString("\n")
	output.WriteString(record.Contact)
	output.WriteString("\n\n")

	output.WriteString("=== SUMMARY ===\n")
	output.WriteString(record.SummaryText)
	output.WriteString("\n\n")

	if len(record.Competencies) > 0 {
		output.WriteString("=== CORE COMPETENCIES ===\n")
		for _, competency := range record.Competencies {
			output.WriteString(fmt.Sprintf("%s: %s\n", competency.Title, competency.Description))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== PROFESSIONAL EXPERIENCE ===\n\n")
	for _, role := range record.ProfessionalHistory {
		output.WriteString(fmt.Sprintf("%s | %s | %s\n", role.Role, role.Company, role.Dates))
		for _, accomplishment := range role.Accomplishments {
			output.WriteString(fmt.Sprintf("- %s\n", accomplishment))
		}
		output.WriteString("\n")
	}

	if record.Education != "" {
		output.WriteString("=== EDUCATION ===\n")
		output.WriteString(record.Education)
		output.WriteString("\n\n")
	}

	if len(record.AwardsLeadership) > 0 {
		output.WriteString("=== AWARDS & LEADERSHIP ===\n")
		for _, category := range sortedAwardCategories(record.AwardsLeadership) {
			output.WriteString(fmt.Sprintf("%s: %s\n", category, record.AwardsLeadership[category]))
		}
	}

	return output.String(), nil
}

func (rtf *RecordTextFormatter) SupportedType() string {
	return "Record"
}

// RecordMarkdownFormatter handles markdown formatting for CV records
type RecordMarkdownFormatter struct{}

func (rmf *RecordMarkdownFormatter) Format(data any) (string, error) {
	record, ok := data.(cv.Record)
	if !ok {
		return "", fmt.Errorf("expected cv.Record, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", record.CandidateName))
	output.WriteString(record.Contact)
	output.WriteString("\n\n")

	output.WriteString("## Summary\n\n")
	output.WriteString(record.SummaryText)
	output.WriteString("\n\n")

	if len(record.Competencies) > 0 {
		output.WriteString("## Core Competencies\n\n")
		for _, competency := range record.Competencies {
			output.WriteString(fmt.Sprintf("- **%s:** %s\n", competency.Title, competency.Description))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Professional Experience\n\n")
	for _, role := range record.ProfessionalHistory {
		output.WriteString(fmt.Sprintf("### %s | %s | %s\n\n", role.Role, role.Company, role.Dates))
		for _, accomplishment := range role.Accomplishments {
			output.WriteString(fmt.Sprintf("- %s\n", accomplishment))
		}
		output.WriteString("\n")
	}

	if record.Education != "" {
		output.WriteString("## Education\n\n")
		output.WriteString(record.Education)
		output.WriteString("\n\n")
	}

	if len(record.AwardsLeadership) > 0 {
		output.WriteString("## Awards & Leadership\n\n")
		for _, category := range sortedAwardCategories(record.AwardsLeadership) {
			output.WriteString(fmt.Sprintf("- **%s:** %s\n", category, record.AwardsLeadership[category]))
		}
	}

	return output.String(), nil
}

func (rmf *RecordMarkdownFormatter) SupportedType() string {
	return "Record"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
