package validation

import (
	"testing"
)

func TestUnknownSchema(t *testing.T) {
	v := NewValidator()
	result := v.Validate("nope", map[string]any{})
	if result.Valid {
		t.Fatal("unknown schema must fail")
	}
	if result.Errors[0].Code != "SCHEMA_NOT_FOUND" {
		t.Errorf("unexpected code %s", result.Errors[0].Code)
	}
}

func TestBuildPromptSchema(t *testing.T) {
	v := NewValidator()

	result := v.Validate("build_prompt", map[string]any{
		"template_id": "revisao-ortografica",
		"values":      map[string]any{"preservarOriginal": true},
		"text":        "algum texto",
		"copy":        true,
	})
	if !result.Valid {
		t.Fatalf("expected valid, got %v", result.Errors)
	}
	if result.Data["template_id"] != "revisao-ortografica" {
		t.Errorf("validated data should carry the id, got %v", result.Data)
	}

	result = v.Validate("build_prompt", map[string]any{})
	if result.Valid {
		t.Fatal("missing template_id must fail")
	}
	if result.Errors[0].Code != "REQUIRED_FIELD_MISSING" {
		t.Errorf("unexpected code %s", result.Errors[0].Code)
	}

	result = v.Validate("build_prompt", map[string]any{
		"template_id": "Maiúsculas Não",
	})
	if result.Valid {
		t.Fatal("an id with spaces and capitals must fail the pattern")
	}

	result = v.Validate("build_prompt", map[string]any{
		"template_id": "ok",
		"copy":        "sim",
	})
	if result.Valid {
		t.Fatal("a non-boolean copy flag must fail")
	}
}

func TestGetTemplateSchema(t *testing.T) {
	v := NewValidator()
	if result := v.Validate("get_template", map[string]any{"id": "revisao-estilo"}); !result.Valid {
		t.Errorf("expected valid, got %v", result.Errors)
	}
	if result := v.Validate("get_template", map[string]any{}); result.Valid {
		t.Error("missing id must fail")
	}
}

func TestToAppError(t *testing.T) {
	v := NewValidator()

	if err := v.Validate("get_template", map[string]any{"id": "x"}).ToAppError(); err != nil {
		t.Errorf("a valid result must convert to nil, got %v", err)
	}

	err := v.Validate("get_template", map[string]any{}).ToAppError()
	if err == nil {
		t.Fatal("a failed result must convert to an error")
	}
	if err.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected code %s", err.Code)
	}
}
