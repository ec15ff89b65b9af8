// Package renderer turns a template body plus field values into the final
// prompt text.
//
// Bodies use Handlebars syntax: {{name}} substitution and {{#if name}}
// conditional blocks with Handlebars truthiness (empty strings, false,
// missing values and empty lists are falsy). Unknown variables render as
// the empty string. Rendering never returns an error to the caller: any
// failure comes back as a string carrying ErrorMarker so the surrounding
// form stays alive.
package renderer

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"
)

// ErrorMarker prefixes every failed render result.
const ErrorMarker = "[render error]"

// Render substitutes values into body for a plain-text target. String
// values are emitted raw; the prompt is pasted into a chat box, not into
// markup.
func Render(body string, values map[string]any) string {
	return render(body, values, false)
}

// RenderMarkup substitutes values into body for a markup target, with
// HTML escaping applied to string values.
func RenderMarkup(body string, values map[string]any) string {
	return render(body, values, true)
}

func render(body string, values map[string]any, escape bool) string {
	tpl, err := raymond.Parse(body)
	if err != nil {
		return fmt.Sprintf("%s %v", ErrorMarker, err)
	}

	out, err := tpl.Exec(normalize(values, escape))
	if err != nil {
		return fmt.Sprintf("%s %v", ErrorMarker, err)
	}
	return out
}

// normalize prepares the values map for the template engine. Multi-select
// values collapse to a comma-joined string; for plain-text targets strings
// are wrapped as safe so the engine leaves them untouched.
func normalize(values map[string]any, escape bool) map[string]any {
	ctx := make(map[string]any, len(values))
	for key, val := range values {
		switch v := val.(type) {
		case string:
			if escape {
				ctx[key] = v
			} else {
				ctx[key] = raymond.SafeString(v)
			}
		case []string:
			joined := strings.Join(v, ", ")
			if joined == "" {
				// Keep empty lists falsy for {{#if}} blocks.
				ctx[key] = raymond.SafeString("")
			} else if escape {
				ctx[key] = joined
			} else {
				ctx[key] = raymond.SafeString(joined)
			}
		default:
			ctx[key] = v
		}
	}
	return ctx
}
