// Package ingestion extracts plain text from uploaded resume documents.
// Binary formats are handled here so the scoring engine only ever sees
// validated plain text.
package ingestion

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Format identifies a supported resume document format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// MinExtractedChars is the minimum extracted-text length for a document to
// be scorable. Shorter extractions are rejected before scoring.
const MinExtractedChars = 30

// DetectFormat picks the document format from the filename extension,
// falling back to the declared content type.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".md":
		return FormatText, nil
	}

	switch contentType {
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, nil
	case "text/html":
		return FormatHTML, nil
	case "text/plain":
		return FormatText, nil
	}

	return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
}

// ExtractResumeText extracts plain text from an uploaded document and
// rejects extractions below MinExtractedChars.
func ExtractResumeText(data []byte, filename, contentType string) (string, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatHTML:
		text, err = extractHTML(data)
	default:
		text = string(data)
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Cause: err}
	}

	text = CleanText(text)
	if len(text) < MinExtractedChars {
		return "", &TooShortError{Chars: len(text)}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var excessiveBlankLines = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes line endings, trims trailing whitespace per line,
// and collapses runs of blank lines. Bullet markers and line structure are
// preserved so the scoring signals survive.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	result := strings.Join(lines, "\n")
	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
