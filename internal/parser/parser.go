// Package parser converts raw template documents into structured
// definitions.
//
// A template document is a text file starting with a line containing only
// "---", followed by a YAML metadata block, a closing "---" line, and the
// Handlebars body verbatim. The metadata must declare id, name, category
// and an inputs sequence; everything else is optional. A document that
// fails any of these checks is rejected whole; the registry never sees a
// partial template.
package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/models"
)

// Marker delimits the metadata block.
const Marker = "---"

// iconGlyphs maps the symbolic icon names used in template metadata to
// terminal glyphs. Unknown names resolve to no icon, never an error.
var iconGlyphs = map[string]string{
	"IconTextSpellcheck": "✓",
	"IconPencilStar":     "✎",
	"IconListTree":       "☰",
	"IconTextGrammar":    "¶",
	"IconChecks":         "✔",
}

// Parse converts one raw template document into a Template. The returned
// error is always an *errors.AppError with code MALFORMED_TEMPLATE.
func Parse(raw string) (*models.Template, error) {
	// Tolerate either line-ending convention.
	doc := strings.ReplaceAll(raw, "\r\n", "\n")

	lines := strings.Split(doc, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != Marker {
		return nil, apperrors.MalformedTemplateError("document does not start with a metadata marker")
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == Marker {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, apperrors.MalformedTemplateError("metadata block is not closed")
	}

	metaBlock := strings.Join(lines[1:closing], "\n")
	if strings.TrimSpace(metaBlock) == "" {
		return nil, apperrors.MalformedTemplateError("metadata block is empty")
	}

	var tmpl models.Template
	if err := yaml.Unmarshal([]byte(metaBlock), &tmpl); err != nil {
		return nil, apperrors.MalformedTemplateError(fmt.Sprintf("metadata is not valid YAML: %v", err))
	}

	// The inputs key must be present as a sequence; an empty sequence is
	// fine, a missing or scalar one is not.
	var probe struct {
		Inputs yaml.Node `yaml:"inputs"`
	}
	if err := yaml.Unmarshal([]byte(metaBlock), &probe); err != nil {
		return nil, apperrors.MalformedTemplateError(fmt.Sprintf("metadata is not valid YAML: %v", err))
	}
	if probe.Inputs.Kind != yaml.SequenceNode {
		return nil, apperrors.MalformedTemplateError("inputs must be a sequence")
	}

	if tmpl.ID == "" || tmpl.Name == "" || tmpl.Category == "" {
		return nil, apperrors.MalformedTemplateError("id, name and category are required")
	}
	if tmpl.Inputs == nil {
		tmpl.Inputs = []models.InputField{}
	}

	tmpl.Icon = iconGlyphs[tmpl.IconName]
	tmpl.Body = strings.TrimSpace(strings.Join(lines[closing+1:], "\n"))
	tmpl.Validate = buildValidate(&tmpl)

	return &tmpl, nil
}

// buildValidate derives the template's structural validation function. It
// intentionally checks only required-ness and minimum length; the fuller
// per-generate validation (max length, patterns) belongs to the evaluator.
func buildValidate(tmpl *models.Template) models.ValidateFunc {
	return func(values map[string]any) map[string]string {
		errs := make(map[string]string)
		for _, in := range tmpl.Inputs {
			if !tmpl.FieldActive(in, values) {
				continue
			}
			val := values[in.ID]
			if in.Required && models.IsBlank(val) {
				errs[in.ID] = fmt.Sprintf("O campo %s é obrigatório", in.Label)
				continue
			}
			if in.Validation != nil && in.Validation.MinLength > 0 {
				if s, ok := val.(string); ok && s != "" && len([]rune(s)) < in.Validation.MinLength {
					if in.Validation.ErrorMessage != "" {
						errs[in.ID] = in.Validation.ErrorMessage
					} else {
						errs[in.ID] = fmt.Sprintf("O campo deve ter pelo menos %d caracteres", in.Validation.MinLength)
					}
				}
			}
		}
		return errs
	}
}
