package evaluator

import (
	"strings"
	"testing"

	"github.com/criatividade-digital/revisa/internal/models"
)

func withTokenCount(t *testing.T, fn func(string) int) {
	t.Helper()
	orig := countTokens
	countTokens = fn
	t.Cleanup(func() { countTokens = orig })
}

func TestTokenCountIsDeterministic(t *testing.T) {
	text := "Assuma o papel de um revisor experiente e revise o texto a seguir."
	first := Evaluate(text, map[string]any{"texto": text}, nil)
	for i := 0; i < 3; i++ {
		again := Evaluate(text, map[string]any{"texto": text}, nil)
		if again.Tokens != first.Tokens {
			t.Fatalf("token count changed between calls: %d vs %d", first.Tokens, again.Tokens)
		}
	}
	if first.Tokens <= 0 {
		t.Errorf("expected a positive token count, got %d", first.Tokens)
	}
}

func TestTokenLimitBoundary(t *testing.T) {
	text := strings.Repeat("palavra ", 40) // long enough to dodge the short-prompt warning
	values := map[string]any{"texto": text}

	withTokenCount(t, func(string) int { return TokenLimit })
	atLimit := Evaluate(text, values, nil)
	if !atLimit.IsWithinLimits {
		t.Error("exactly 8192 tokens must be within limits")
	}
	for _, w := range atLimit.Warnings {
		if strings.Contains(w, "excede") {
			t.Errorf("no limit warning expected at the boundary, got %q", w)
		}
	}

	withTokenCount(t, func(string) int { return TokenLimit + 1 })
	overLimit := Evaluate(text, values, nil)
	if overLimit.IsWithinLimits {
		t.Error("8193 tokens must not be within limits")
	}
	found := false
	for _, w := range overLimit.Warnings {
		if strings.Contains(w, "excede") {
			found = true
		}
	}
	if !found {
		t.Error("exceeding the limit must produce a warning")
	}
	// Size problems are warnings, never validity errors.
	if !overLimit.IsValid {
		t.Error("exceeding the token limit alone must not invalidate the prompt")
	}
}

func TestShortPromptWarning(t *testing.T) {
	eval := Evaluate("curto", map[string]any{"texto": "curto"}, nil)
	if len(eval.Warnings) == 0 {
		t.Error("a very short prompt should carry a warning")
	}
	if !eval.IsValid {
		t.Error("a short prompt is a warning, not an error")
	}
}

func TestEmptyPromptIsAnError(t *testing.T) {
	eval := Evaluate("   ", map[string]any{"texto": "x"}, nil)
	if eval.IsValid {
		t.Error("an empty prompt must be invalid")
	}
}

func TestLegacyPassthroughCheck(t *testing.T) {
	text := strings.Repeat("texto longo o bastante ", 5)

	eval := Evaluate(text, map[string]any{}, nil)
	if eval.IsValid {
		t.Error("missing texto value must fail the legacy check")
	}

	eval = Evaluate(text, map[string]any{"texto": "algum texto"}, nil)
	if !eval.IsValid {
		t.Errorf("non-blank texto should pass the legacy check, errors: %v", eval.Errors)
	}
}

func scenarioTemplate() *models.Template {
	return &models.Template{
		ID:       "cenario",
		Name:     "Cenário",
		Category: "revisao-texto",
		Inputs: []models.InputField{
			{
				ID:       "texto",
				Type:     models.FieldTextarea,
				Label:    "Texto para revisão",
				Required: true,
				Validation: &models.FieldRules{
					MinLength: 10,
				},
			},
		},
		Body: "<texto>{{texto}}</texto>",
	}
}

func TestFieldValidationMinLength(t *testing.T) {
	tmpl := scenarioTemplate()
	text := strings.Repeat("preenchimento de contexto ", 3)

	eval := Evaluate(text, map[string]any{"texto": "short"}, tmpl)
	if eval.IsValid {
		t.Error("value below minLength must invalidate the prompt")
	}
	found := false
	for _, e := range eval.Errors {
		if strings.Contains(e, "pelo menos 10") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a minimum-length error, got %v", eval.Errors)
	}

	eval = Evaluate(text, map[string]any{"texto": "a sufficiently long passage"}, tmpl)
	if !eval.IsValid {
		t.Errorf("valid value should pass, errors: %v", eval.Errors)
	}
}

func TestFieldValidationMaxLengthAndPattern(t *testing.T) {
	tmpl := &models.Template{
		ID:       "regras",
		Name:     "Regras",
		Category: "c",
		Inputs: []models.InputField{
			{
				ID:    "codigo",
				Type:  models.FieldText,
				Label: "Código",
				Validation: &models.FieldRules{
					MaxLength: 5,
					Pattern:   `^[a-z]+$`,
				},
			},
		},
	}
	text := strings.Repeat("contexto para evitar o aviso de tamanho ", 2)

	eval := Evaluate(text, map[string]any{"codigo": "abcdef"}, tmpl)
	if eval.IsValid {
		t.Errorf("value above maxLength must invalidate, errors: %v", eval.Errors)
	}

	eval = Evaluate(text, map[string]any{"codigo": "ABC"}, tmpl)
	if eval.IsValid {
		t.Error("value failing the pattern must invalidate")
	}

	eval = Evaluate(text, map[string]any{"codigo": "abc"}, tmpl)
	if !eval.IsValid {
		t.Errorf("conforming value should pass, errors: %v", eval.Errors)
	}
}

func TestHiddenFieldsAreExempt(t *testing.T) {
	tmpl := &models.Template{
		ID:       "dep",
		Name:     "Dep",
		Category: "c",
		Inputs: []models.InputField{
			{ID: "modo", Type: models.FieldSelect, Label: "Modo"},
			{
				ID: "detalhe", Type: models.FieldText, Label: "Detalhe", Required: true,
				DependsOn: &models.Dependency{Field: "modo", Value: "avancado"},
			},
		},
	}
	text := strings.Repeat("contexto para evitar o aviso de tamanho ", 2)

	eval := Evaluate(text, map[string]any{"modo": "simples", "detalhe": ""}, tmpl)
	if !eval.IsValid {
		t.Errorf("inactive dependent field must not be required, errors: %v", eval.Errors)
	}
}

func TestCharCount(t *testing.T) {
	eval := Evaluate("olá", map[string]any{"texto": "x"}, nil)
	if eval.Chars != 3 {
		t.Errorf("expected 3 chars for 'olá', got %d", eval.Chars)
	}
}
