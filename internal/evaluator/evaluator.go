// Package evaluator computes size metrics and validation results for a
// rendered prompt.
//
// Size and validity are deliberately separate axes: exceeding the token
// budget produces a warning and flips IsWithinLimits, but only field
// validation failures make a prompt invalid.
package evaluator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/criatividade-digital/revisa/internal/models"
)

// TokenLimit is the context-window budget the tool is designed against.
const TokenLimit = 8192

// MinPromptChars is the length under which a rendered prompt draws a
// "too short to be effective" warning.
const MinPromptChars = 50

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
	codecErr  error
)

// countTokens is swappable in tests.
var countTokens = bpeCount

// bpeCount tokenizes text with the cl100k_base BPE vocabulary. The
// vocabulary ships inside the binary, so counts are deterministic and
// need no network access. If the codec cannot be constructed the count
// degrades to a chars/4 estimate rather than failing the evaluation.
func bpeCount(text string) int {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	if codecErr != nil {
		return (len(text) + 3) / 4
	}
	n, err := codec.Count(text)
	if err != nil {
		return (len(text) + 3) / 4
	}
	return n
}

// Evaluate computes the evaluation result for a rendered prompt. When a
// template is supplied its input rules are checked against values; without
// one only the legacy passthrough check runs (the "texto" value must be
// non-blank).
func Evaluate(text string, values map[string]any, tmpl *models.Template) models.PromptEvaluation {
	eval := models.PromptEvaluation{
		Tokens:   countTokens(text),
		Chars:    len([]rune(text)),
		Warnings: []string{},
		Errors:   []string{},
	}

	if strings.TrimSpace(text) == "" {
		eval.Errors = append(eval.Errors, "O prompt está vazio.")
	} else if eval.Chars < MinPromptChars {
		eval.Warnings = append(eval.Warnings, "O prompt é muito curto e pode não ser eficaz.")
	}

	eval.IsWithinLimits = eval.Tokens <= TokenLimit
	if !eval.IsWithinLimits {
		eval.Warnings = append(eval.Warnings,
			fmt.Sprintf("O prompt excede o limite de %d tokens do ChatGPT.", TokenLimit))
	}

	if tmpl != nil {
		eval.Errors = append(eval.Errors, fieldErrors(tmpl, values)...)
	} else if models.IsBlank(values[models.PassthroughField]) {
		eval.Errors = append(eval.Errors, "O texto para revisão é obrigatório.")
	}

	eval.IsValid = len(eval.Errors) == 0
	return eval
}

// fieldErrors runs the full per-field rule set: required-ness, min/max
// length and pattern. This intentionally overlaps with the template's
// derived validate function, which only covers required and minimum
// length as a cheap pre-check.
func fieldErrors(tmpl *models.Template, values map[string]any) []string {
	var errs []string
	for _, in := range tmpl.Inputs {
		if !tmpl.FieldActive(in, values) {
			continue
		}
		val := values[in.ID]

		if in.Required && models.IsBlank(val) {
			errs = append(errs, fieldMessage(in, fmt.Sprintf("O campo %s é obrigatório.", in.Label)))
			continue
		}

		str, isStr := val.(string)
		if !isStr || str == "" || in.Validation == nil {
			continue
		}
		rules := in.Validation
		length := len([]rune(str))

		if rules.MinLength > 0 && length < rules.MinLength {
			errs = append(errs, fieldMessage(in,
				fmt.Sprintf("O campo %s deve ter pelo menos %d caracteres.", in.Label, rules.MinLength)))
		}
		if rules.MaxLength > 0 && length > rules.MaxLength {
			errs = append(errs, fieldMessage(in,
				fmt.Sprintf("O campo %s deve ter no máximo %d caracteres.", in.Label, rules.MaxLength)))
		}
		if rules.Pattern != "" {
			if re, err := regexp.Compile(rules.Pattern); err == nil && !re.MatchString(str) {
				errs = append(errs, fieldMessage(in,
					fmt.Sprintf("O campo %s não está no formato esperado.", in.Label)))
			}
		}
	}
	return errs
}

func fieldMessage(in models.InputField, fallback string) string {
	if in.Validation != nil && in.Validation.ErrorMessage != "" {
		return in.Validation.ErrorMessage
	}
	return fallback
}
