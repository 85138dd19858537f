package ingestion

import "fmt"

// UnsupportedFormatError indicates the uploaded file is not a format the
// extractor understands.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format: %s (%s)", e.Filename, e.ContentType)
}

// TooShortError indicates extraction produced too little text to score.
type TooShortError struct {
	Chars int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("could not extract readable text from resume: got %d characters", e.Chars)
}

// ExtractionError wraps a format-specific parsing failure.
type ExtractionError struct {
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
