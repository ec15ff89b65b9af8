package api

import "github.com/criatividade-digital/revisa/internal/models"

// TemplateSummary is the list-view representation of a template.
type TemplateSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Summary  string `json:"description,omitempty"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

// TemplateDetail adds the declared inputs to the summary. The template
// body stays server-side; clients build prompts through the build
// endpoint.
type TemplateDetail struct {
	TemplateSummary
	Inputs []models.InputField `json:"inputs"`
}

func templateSummaries(templates []*models.Template) []TemplateSummary {
	out := make([]TemplateSummary, 0, len(templates))
	for _, t := range templates {
		out = append(out, newSummary(t))
	}
	return out
}

func newSummary(t *models.Template) TemplateSummary {
	return TemplateSummary{
		ID:       t.ID,
		Name:     t.Name,
		Summary:  t.Summary,
		Category: t.Category,
		Icon:     t.IconName,
	}
}

func templateDetail(t *models.Template) TemplateDetail {
	return TemplateDetail{
		TemplateSummary: newSummary(t),
		Inputs:          t.Inputs,
	}
}
