package extract

import (
	"strings"
	"testing"

	"tradcv/internal/errors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		mimeType    string
		want        Format
		expectError bool
	}{
		{
			name:     "pdf by mime type",
			filename: "upload",
			mimeType: "application/pdf",
			want:     FormatPDF,
		},
		{
			name:     "docx by mime type",
			filename: "upload",
			mimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			want:     FormatDOCX,
		},
		{
			name:     "pdf by extension",
			filename: "MyCV.PDF",
			mimeType: "application/octet-stream",
			want:     FormatPDF,
		},
		{
			name:     "docx by extension",
			filename: "cv.docx",
			mimeType: "",
			want:     FormatDOCX,
		},
		{
			name:        "legacy doc rejected",
			filename:    "cv.doc",
			mimeType:    "application/msword",
			expectError: true,
		},
		{
			name:        "plain text rejected",
			filename:    "cv.txt",
			mimeType:    "text/plain",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.filename, tt.mimeType)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got format %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCheckMinLength(t *testing.T) {
	if err := CheckMinLength(strings.Repeat("a", 10)); err == nil {
		t.Error("expected extraction error for 10-character text")
	} else if !errors.IsExtractionError(err) {
		t.Errorf("expected extraction error type, got %v", err)
	}

	if err := CheckMinLength(strings.Repeat("a", 200)); err != nil {
		t.Errorf("expected 200-character text to pass, got %v", err)
	}

	if err := CheckMinLength(""); err == nil {
		t.Error("expected extraction error for empty text")
	}

	// 20 three-byte runes are 60 bytes but still only 20 characters
	if err := CheckMinLength(strings.Repeat("简", 20)); err == nil {
		t.Error("expected extraction error for 20-rune non-ASCII text")
	}

	if err := CheckMinLength(strings.Repeat("简", 50)); err != nil {
		t.Errorf("expected 50-rune non-ASCII text to pass, got %v", err)
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	_, err := Text([]byte("irrelevant"), Format("rtf"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestTextInvalidPDF(t *testing.T) {
	_, err := Text([]byte("this is not a pdf"), FormatPDF)
	if err == nil {
		t.Fatal("expected error for invalid pdf bytes")
	}
	if !errors.IsExtractionError(err) {
		t.Errorf("expected extraction error, got %v", err)
	}
}

func TestTextInvalidDOCX(t *testing.T) {
	_, err := Text([]byte("this is not a zip archive"), FormatDOCX)
	if err == nil {
		t.Fatal("expected error for invalid docx bytes")
	}
	if !errors.IsExtractionError(err) {
		t.Errorf("expected extraction error, got %v", err)
	}
}

func TestParagraphText(t *testing.T) {
	content := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` +
		`<w:p><w:r><w:t>Alex Chen</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>AI Research Intern, </w:t></w:r><w:r><w:t>QuantumLeap AI</w:t></w:r></w:p>` +
		`<w:p/>` +
		`</w:body></w:document>`

	got, err := ParagraphText(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Alex Chen\nAI Research Intern, QuantumLeap AI\n\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
