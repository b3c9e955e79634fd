package store

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema lists the fields a history entry cannot be shown without.
// Everything else is back-filled with defaults when read.
const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "createdAt", "jdText"],
  "properties": {
    "id":        {"type": "string", "minLength": 1},
    "createdAt": {"type": "string", "minLength": 1},
    "jdText":    {"type": "string", "minLength": 1}
  }
}`

// RecordValidator checks raw history entries against recordSchema.
type RecordValidator struct {
	schema *gojsonschema.Schema
}

// NewRecordValidator compiles the record schema.
func NewRecordValidator() (*RecordValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling record schema: %w", err)
	}
	return &RecordValidator{schema: schema}, nil
}

// Validate returns nil when raw is a usable record, or an error naming every
// failing field.
func (v *RecordValidator) Validate(raw []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validating record: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("invalid record: %s", strings.Join(msgs, "; "))
}
