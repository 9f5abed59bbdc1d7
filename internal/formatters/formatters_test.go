package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"tradcv/internal/cv"
)

func sampleRecord() cv.Record {
	return cv.Record{
		CandidateName: "Alex Chen",
		Contact:       "alex.chen@example.com | 555-0100",
		Education:     "B.S. Computer Science, State University",
		SummaryText:   "Engineering leader with a track record of shipping platforms.",
		Competencies: []cv.Competency{
			{Title: "Distributed Systems", Description: "Designed systems serving millions of users."},
		},
		ProfessionalHistory: []cv.Role{
			{
				Company:         "QuantumLeap AI",
				Role:            "Principal Engineer",
				Dates:           "2021 - Present",
				Accomplishments: []string{"Led migration to event-driven architecture."},
			},
		},
		AwardsLeadership: map[string]string{
			"Leadership": "Mentored a team of twelve engineers.",
			"Awards":     "1st Place, National Cyber Challenge.",
		},
	}
}

func TestFormatJSON(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleRecord(), "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded cv.Record
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("JSON output should round-trip: %v", err)
	}
	if decoded.CandidateName != "Alex Chen" {
		t.Errorf("expected candidate name to survive, got %q", decoded.CandidateName)
	}
}

func TestFormatText(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleRecord(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fragments := []string{
		"Alex Chen",
		"=== SUMMARY ===",
		"=== CORE COMPETENCIES ===",
		"Distributed Systems: Designed systems serving millions of users.",
		"Principal Engineer | QuantumLeap AI | 2021 - Present",
		"- Led migration to event-driven architecture.",
		"=== EDUCATION ===",
		"=== AWARDS & LEADERSHIP ===",
	}
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("expected text output to contain %q", fragment)
		}
	}

	// Award categories are emitted in sorted order
	if strings.Index(output, "Awards:") > strings.Index(output, "Leadership:") {
		t.Error("expected award categories in sorted order")
	}
}

func TestFormatMarkdown(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleRecord(), "markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fragments := []string{
		"# Alex Chen",
		"## Summary",
		"## Core Competencies",
		"### Principal Engineer | QuantumLeap AI | 2021 - Present",
		"## Awards & Leadership",
		"- **Awards:** 1st Place, National Cyber Challenge.",
	}
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("expected markdown output to contain %q", fragment)
		}
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleRecord(), "yaml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFormatFallsBackToJSON(t *testing.T) {
	// Types without a dedicated formatter fall back to the generic one
	output, err := GlobalRegistry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, `"key": "value"`) {
		t.Errorf("expected generic JSON output, got %q", output)
	}
}
