// Package extract turns uploaded CV documents into plain text.
//
// Only the two container formats the editor accepts are supported: PDF
// (page-oriented) and DOCX (paragraph-oriented). Extraction is purely
// mechanical; anything semantic happens downstream in the parser.
package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"

	"tradcv/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported document container format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// MinTextLength is the minimum amount of extracted text required before a
// document is considered readable. Shorter results almost always mean a
// scanned-image-only or corrupted file.
const MinTextLength = 50

// DetectFormat maps a filename extension or declared MIME type to a
// supported format. Anything else is rejected before the pipeline runs.
func DetectFormat(filename, mimeType string) (Format, error) {
	switch mimeType {
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, nil
	}

	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return FormatPDF, nil
	case strings.HasSuffix(name, ".docx"):
		return FormatDOCX, nil
	}

	return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
		fmt.Sprintf("Unsupported document format for %q (%s): only PDF and DOCX are accepted", filename, mimeType), nil)
}

// Text extracts plain text from a document buffer. PDF pages are
// concatenated in page order; DOCX paragraphs are concatenated in document
// order with a newline after each paragraph. Results shorter than
// MinTextLength fail with an extraction error so callers never hand junk
// to the parser.
func Text(data []byte, format Format) (string, error) {
	var text string
	var err error

	switch format {
	case FormatPDF:
		text, err = pdfText(data)
	case FormatDOCX:
		text, err = docxText(data)
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported document format: %q", format), nil)
	}

	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to extract text from %s document", format), err)
	}

	if err := CheckMinLength(text); err != nil {
		return "", err
	}

	return text, nil
}

// CheckMinLength applies the minimum-length readability gate. The limit is
// counted in runes so non-ASCII CVs are not over-credited per character.
func CheckMinLength(text string) error {
	chars := utf8.RuneCountInString(text)
	if chars < MinTextLength {
		return errors.NewExtractionError(errors.ErrCodeInsufficientText,
			"Could not extract sufficient text from the uploaded CV file", nil).
			WithContext("extracted_chars", chars).
			WithContext("min_chars", MinTextLength)
	}
	return nil
}

// pdfText concatenates the extracted text of every page in page order
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; the minimum-length gate catches
			// documents where nothing useful survives.
			continue
		}
		builder.WriteString(text)
	}

	return builder.String(), nil
}

// docxText extracts paragraph text in document order
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return ParagraphText(doc.Editable().GetContent())
}

// ParagraphText walks WordprocessingML content and collects the text runs
// of each paragraph, appending a newline per paragraph.
func ParagraphText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var builder strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return builder.String(), nil
}
