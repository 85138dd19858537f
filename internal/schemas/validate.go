// Package schemas validates report payloads against their JSON Schema.
package schemas

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed report.schema.json
var reportSchema string

// ValidationError is a schema validation failure with per-field detail.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateReport checks a serialized report against the report schema.
// Returns nil when valid, a *ValidationError when the document does not
// conform, or a plain error when validation itself could not run.
func ValidateReport(document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(reportSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate report: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
