// Package validation provides schema-based validation of operation
// parameters before they reach the service layer.
//
// Every interface (CLI flags, HTTP request bodies) converts its input to
// a parameter map and validates it against the schema named after the
// operation. Field errors carry stable codes so the HTTP layer can relay
// them verbatim.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/criatividade-digital/revisa/internal/errors"
)

// FieldValidator defines the rules for one parameter.
type FieldValidator struct {
	Name      string
	Required  bool
	Type      string // "string", "bool", "map"
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
}

// ValidationError is one field-level failure.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating one parameter map.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
	Data   map[string]any    `json:"data,omitempty"`
}

// ToAppError converts a failed result into an AppError for the unified
// error pipeline.
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return errors.ValidationError(strings.Join(msgs, "; "))
}

// Schema names a set of field validators for one operation.
type Schema struct {
	Name   string
	Fields map[string]FieldValidator
}

// Validator validates parameter maps against registered schemas.
type Validator struct {
	schemas map[string]*Schema
}

// NewValidator creates a validator with the built-in operation schemas
// registered.
func NewValidator() *Validator {
	v := &Validator{schemas: make(map[string]*Schema)}
	v.registerBuiltinSchemas()
	return v
}

// RegisterSchema adds or replaces a schema.
func (v *Validator) RegisterSchema(schema *Schema) {
	v.schemas[schema.Name] = schema
}

// Validate checks data against the named schema.
func (v *Validator) Validate(schemaName string, data map[string]any) *ValidationResult {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Code:    "SCHEMA_NOT_FOUND",
				Message: fmt.Sprintf("validation schema %q not found", schemaName),
			}},
		}
	}

	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
		Data:   make(map[string]any),
	}
	for fieldName, fv := range schema.Fields {
		v.validateField(fieldName, fv, data, result)
	}
	return result
}

func (v *Validator) validateField(name string, fv FieldValidator, data map[string]any, result *ValidationResult) {
	value, exists := data[name]

	if fv.Required && (!exists || value == nil || value == "") {
		result.fail(name, "REQUIRED_FIELD_MISSING", fmt.Sprintf("field %q is required", name))
		return
	}
	if !exists || value == nil {
		return
	}

	switch fv.Type {
	case "string":
		str, ok := value.(string)
		if !ok {
			result.fail(name, "INVALID_TYPE", fmt.Sprintf("field %q must be a string", name))
			return
		}
		length := len([]rune(str))
		if fv.MinLength > 0 && length < fv.MinLength {
			result.fail(name, "TOO_SHORT",
				fmt.Sprintf("field %q must have at least %d characters", name, fv.MinLength))
			return
		}
		if fv.MaxLength > 0 && length > fv.MaxLength {
			result.fail(name, "TOO_LONG",
				fmt.Sprintf("field %q must have at most %d characters", name, fv.MaxLength))
			return
		}
		if fv.Pattern != nil && !fv.Pattern.MatchString(str) {
			result.fail(name, "PATTERN_MISMATCH",
				fmt.Sprintf("field %q does not match the expected format", name))
			return
		}
		result.Data[name] = str
	case "bool":
		b, ok := value.(bool)
		if !ok {
			result.fail(name, "INVALID_TYPE", fmt.Sprintf("field %q must be a boolean", name))
			return
		}
		result.Data[name] = b
	case "map":
		m, ok := value.(map[string]any)
		if !ok {
			result.fail(name, "INVALID_TYPE", fmt.Sprintf("field %q must be an object", name))
			return
		}
		result.Data[name] = m
	default:
		result.Data[name] = value
	}
}

func (r *ValidationResult) fail(field, code, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Code: code, Message: message})
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

func (v *Validator) registerBuiltinSchemas() {
	v.RegisterSchema(&Schema{
		Name: "list_templates",
		Fields: map[string]FieldValidator{
			"category": {Name: "category", Type: "string", MaxLength: 100},
			"query":    {Name: "query", Type: "string", MaxLength: 200},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "get_template",
		Fields: map[string]FieldValidator{
			"id": {Name: "id", Required: true, Type: "string", MaxLength: 100, Pattern: idPattern},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "build_prompt",
		Fields: map[string]FieldValidator{
			"template_id": {Name: "template_id", Required: true, Type: "string", MaxLength: 100, Pattern: idPattern},
			"values":      {Name: "values", Type: "map"},
			"text":        {Name: "text", Type: "string"},
			"copy":        {Name: "copy", Type: "bool"},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "add_template",
		Fields: map[string]FieldValidator{
			"content":   {Name: "content", Required: true, Type: "string", MinLength: 8},
			"overwrite": {Name: "overwrite", Type: "bool"},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "get_achievements",
		Fields: map[string]FieldValidator{
			"principal": {Name: "principal", Required: true, Type: "string", MaxLength: 200},
			"refresh":   {Name: "refresh", Type: "bool"},
		},
	})
}
