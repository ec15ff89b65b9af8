package renderer

import (
	"strings"
	"testing"
)

func TestVariableSubstitution(t *testing.T) {
	out := Render("Hello {{name}}", map[string]any{"name": "World"})
	if out != "Hello World" {
		t.Errorf("expected 'Hello World', got %q", out)
	}
}

func TestUnknownVariableRendersEmpty(t *testing.T) {
	out := Render("Hello {{name}}", map[string]any{})
	if out != "Hello " {
		t.Errorf("unknown variable should render as empty string, got %q", out)
	}
}

func TestConditionalBlocks(t *testing.T) {
	body := "{{#if x}}A{{/if}}B"

	if out := Render(body, map[string]any{"x": true}); out != "AB" {
		t.Errorf("truthy condition: expected 'AB', got %q", out)
	}
	if out := Render(body, map[string]any{"x": false}); out != "B" {
		t.Errorf("falsy condition: expected 'B', got %q", out)
	}
}

func TestConditionalTruthiness(t *testing.T) {
	body := "{{#if x}}yes{{/if}}"

	falsy := []any{"", false, nil, []string{}}
	for _, v := range falsy {
		values := map[string]any{"x": v}
		if v == nil {
			values = map[string]any{}
		}
		if out := Render(body, values); out != "" {
			t.Errorf("value %#v should be falsy, got %q", v, out)
		}
	}

	truthy := []any{"text", true, []string{"a"}}
	for _, v := range truthy {
		if out := Render(body, map[string]any{"x": v}); out != "yes" {
			t.Errorf("value %#v should be truthy, got %q", v, out)
		}
	}
}

func TestPlainTextOutputIsNotEscaped(t *testing.T) {
	out := Render("<texto>{{texto}}</texto>", map[string]any{"texto": `"aspas" & <tags>`})
	if out != `<texto>"aspas" & <tags></texto>` {
		t.Errorf("plain-text render must not escape values, got %q", out)
	}
}

func TestMarkupOutputIsEscaped(t *testing.T) {
	out := RenderMarkup("<p>{{texto}}</p>", map[string]any{"texto": "a & b"})
	if !strings.Contains(out, "a &amp; b") {
		t.Errorf("markup render should escape values, got %q", out)
	}
}

func TestMultiSelectJoins(t *testing.T) {
	out := Render("Aspectos: {{aspectos}}", map[string]any{"aspectos": []string{"clareza", "coesão"}})
	if out != "Aspectos: clareza, coesão" {
		t.Errorf("multi-select values should join with commas, got %q", out)
	}
}

func TestMalformedBodyReturnsMarkedError(t *testing.T) {
	bodies := []string{
		"{{#if x}}never closed",
		"{{#if x}}A{{/each}}",
	}
	for _, body := range bodies {
		out := Render(body, map[string]any{"x": true})
		if !strings.Contains(out, ErrorMarker) {
			t.Errorf("malformed body %q should produce a marked error string, got %q", body, out)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	body := "{{#if a}}A{{/if}}{{b}}"
	values := map[string]any{"a": true, "b": "x"}
	first := Render(body, values)
	for i := 0; i < 5; i++ {
		if out := Render(body, values); out != first {
			t.Fatalf("render is not deterministic: %q vs %q", first, out)
		}
	}
}
