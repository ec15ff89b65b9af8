package models

import "strings"

// FieldType identifies the kind of form control an input field produces.
type FieldType string

const (
	FieldText        FieldType = "text"        // single-line text
	FieldTextarea    FieldType = "textarea"    // multi-line text
	FieldSelect      FieldType = "select"      // single choice from options
	FieldMultiSelect FieldType = "multiselect" // multiple choices from options
	FieldSwitch      FieldType = "switch"      // boolean toggle
	FieldCombobox    FieldType = "combobox"    // free choice with suggestions
	FieldHidden      FieldType = "hidden"      // non-interactive passthrough
)

// PassthroughField is the conventional id of the field fed from the
// external "text under review" input rather than from the form.
const PassthroughField = "texto"

// SelectOption is one {value, label} pair for selection-type fields.
type SelectOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// FieldRules holds the optional content constraints of an input field.
// A zero value means the constraint is absent.
type FieldRules struct {
	MinLength    int    `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength    int    `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Pattern      string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	ErrorMessage string `yaml:"errorMessage,omitempty" json:"errorMessage,omitempty"`
}

// Dependency makes a field conditional on a sibling field's current value.
type Dependency struct {
	Field string `yaml:"field" json:"field"`
	Value any    `yaml:"value" json:"value"`
}

// InputField describes one declared form control of a template.
type InputField struct {
	ID           string         `yaml:"id" json:"id"`
	Type         FieldType      `yaml:"type" json:"type"`
	Label        string         `yaml:"label" json:"label"`
	Summary      string         `yaml:"description,omitempty" json:"description,omitempty"`
	Placeholder  string         `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	DefaultValue any            `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Required     bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Options      []SelectOption `yaml:"options,omitempty" json:"options,omitempty"`
	Validation   *FieldRules    `yaml:"validation,omitempty" json:"validation,omitempty"`
	DependsOn    *Dependency    `yaml:"dependsOn,omitempty" json:"dependsOn,omitempty"`
}

// Default returns the field's initial value: its declared default when
// present, otherwise the type-based default (false for switches, an empty
// list for multiselects, the empty string for everything else).
func (f InputField) Default() any {
	if f.DefaultValue != nil {
		return f.DefaultValue
	}
	switch f.Type {
	case FieldSwitch:
		return false
	case FieldMultiSelect:
		return []string{}
	default:
		return ""
	}
}

// ValidateFunc maps a values map to field-id → error message. A missing
// entry means the field has no error.
type ValidateFunc func(values map[string]any) map[string]string

// Template is the parsed, structured representation of one prompt template
// document: YAML frontmatter metadata plus a Handlebars body.
type Template struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Summary  string       `yaml:"description"`
	Category string       `yaml:"category"`
	Icon     string       `yaml:"-"` // resolved glyph, empty when absent
	IconName string       `yaml:"icon,omitempty"`
	Inputs   []InputField `yaml:"inputs"`

	Body     string       `yaml:"-"` // raw Handlebars body after the frontmatter
	Validate ValidateFunc `yaml:"-"` // derived structural validation, set by the parser
	FilePath string       `yaml:"-"` // source path when loaded from disk
}

// Field returns the input field with the given id, if declared.
func (t *Template) Field(id string) (InputField, bool) {
	for _, in := range t.Inputs {
		if in.ID == id {
			return in, true
		}
	}
	return InputField{}, false
}

// Implement the bubbles list.Item interface so templates can be listed
// directly in the TUI picker.

// FilterValue returns the value used for list filtering.
func (t Template) FilterValue() string {
	return t.Name + " " + t.Summary
}

// Title satisfies the list.DefaultItem interface.
func (t Template) Title() string {
	if t.Icon != "" {
		return t.Icon + " " + t.Name
	}
	return t.Name
}

// Description satisfies the list.DefaultItem interface.
func (t Template) Description() string {
	desc := strings.ReplaceAll(t.Summary, "\n", " ")
	if len(desc) > 80 {
		desc = desc[:77] + "..."
	}
	return desc
}
