package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/criatividade-digital/revisa/internal/config"
	apperrors "github.com/criatividade-digital/revisa/internal/errors"
)

const serviceDoc = `---
id: revisao-coesao
name: Revisão de Coesão
description: Melhora a coesão e a fluidez entre parágrafos
category: revisao-texto
inputs:
  - id: texto
    type: textarea
    label: Texto para revisão
    required: true
    validation:
      minLength: 10
  - id: publico
    type: select
    label: Público-alvo
    options:
      - value: academico
        label: Acadêmico
      - value: geral
        label: Geral
---
Revise o texto a seguir, melhorando a coesão.
{{#if publico}}O público-alvo é {{publico}}.{{/if}}
<texto>
{{texto}}
</texto>`

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "revisao-coesao.md"), []byte(serviceDoc), 0644); err != nil {
		t.Fatal(err)
	}
	svc, err := New(config.Config{LibraryDir: dir, DisableFallback: true}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return svc
}

func TestListAndGet(t *testing.T) {
	svc := newTestService(t)

	all := svc.ListTemplates()
	if len(all) != 1 || all[0].ID != "revisao-coesao" {
		t.Fatalf("unexpected templates: %v", all)
	}

	if _, err := svc.GetTemplate("revisao-coesao"); err != nil {
		t.Errorf("GetTemplate: %v", err)
	}
	if _, err := svc.GetTemplate("nada"); err == nil {
		t.Error("unknown id must fail")
	} else if apperrors.GetAppError(err).Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestSearchTemplates(t *testing.T) {
	svc := newTestService(t)

	if got := svc.SearchTemplates(""); len(got) != 1 {
		t.Errorf("empty query should return everything, got %d", len(got))
	}
	if got := svc.SearchTemplates("coesao"); len(got) != 1 {
		t.Errorf("expected a fuzzy hit for 'coesao', got %d", len(got))
	}
	if got := svc.SearchTemplates("zzzzqqq"); len(got) != 0 {
		t.Errorf("expected no hits, got %d", len(got))
	}
}

func TestBuildPrompt(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.BuildPrompt(context.Background(), BuildRequest{
		TemplateID: "revisao-coesao",
		Values:     map[string]any{"publico": "academico"},
		Text:       "Um parágrafo de exemplo com extensão suficiente para a validação.",
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if len(resp.FieldErrors) != 0 {
		t.Fatalf("unexpected field errors: %v", resp.FieldErrors)
	}
	if !strings.Contains(resp.Prompt, "O público-alvo é academico.") {
		t.Errorf("selected option missing from prompt: %q", resp.Prompt)
	}
	if !resp.Evaluation.IsValid {
		t.Errorf("expected valid evaluation, errors: %v", resp.Evaluation.Errors)
	}
	if resp.Copied {
		t.Error("no copy was requested")
	}
}

func TestBuildPromptValidationFailure(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.BuildPrompt(context.Background(), BuildRequest{
		TemplateID: "revisao-coesao",
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if len(resp.FieldErrors) == 0 {
		t.Error("missing required text should produce field errors")
	}
	if resp.Prompt != "" {
		t.Error("no prompt should be rendered")
	}
}

func TestBuildPromptUnknownTemplateAndField(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.BuildPrompt(context.Background(), BuildRequest{TemplateID: "nada"}); err == nil {
		t.Error("unknown template must fail")
	}

	_, err := svc.BuildPrompt(context.Background(), BuildRequest{
		TemplateID: "revisao-coesao",
		Values:     map[string]any{"inexistente": "x"},
	})
	if err == nil {
		t.Error("unknown field must fail")
	} else if apperrors.GetAppError(err).Code != apperrors.ErrCodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestInstallTemplate(t *testing.T) {
	svc := newTestService(t)

	raw := strings.Replace(serviceDoc, "revisao-coesao", "revisao-nova", 1)
	tmpl, err := svc.InstallTemplate(context.Background(), raw, false)
	if err != nil {
		t.Fatalf("InstallTemplate: %v", err)
	}
	if tmpl.ID != "revisao-nova" {
		t.Errorf("unexpected id %s", tmpl.ID)
	}

	// Immediately visible without a reload.
	if _, err := svc.GetTemplate("revisao-nova"); err != nil {
		t.Errorf("installed template should be registered: %v", err)
	}

	if _, err := svc.InstallTemplate(context.Background(), raw, false); err == nil {
		t.Error("duplicate install without overwrite must fail")
	}

	if err := svc.RemoveTemplate("revisao-nova"); err != nil {
		t.Errorf("RemoveTemplate: %v", err)
	}
}

func TestAchievementsUnconfigured(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Achievements(context.Background(), "uid-1", false); err == nil {
		t.Error("unconfigured achievements service must fail")
	}
}
