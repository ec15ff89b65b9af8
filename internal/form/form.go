// Package form holds the state of one prompt-building session: the
// selected template, the current field values, and the generated result.
//
// The controller is interface-agnostic. The TUI, the CLI build command and
// the HTTP build endpoint all drive the same Form, so the injection,
// validation and rendering order is identical everywhere.
package form

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/criatividade-digital/revisa/internal/clipboard"
	"github.com/criatividade-digital/revisa/internal/evaluator"
	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/renderer"
)

// State is the lifecycle phase of a form.
type State int

const (
	// StateIdle means values are being edited and no current result exists.
	StateIdle State = iota
	// StateGenerated means a result reflecting the current values exists.
	StateGenerated
)

// Result is the outcome of a Generate call.
type Result struct {
	Prompt      string
	Evaluation  models.PromptEvaluation
	FieldErrors map[string]string
	Copied      bool
	CopyErr     error
}

// Form drives one template's input form.
type Form struct {
	tmpl        *models.Template
	values      map[string]any
	state       State
	result      *Result
	clearHidden bool
	copier      clipboard.Copier
	log         *zap.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithCopier sets the clipboard target used after generation. Without one
// no copy is attempted.
func WithCopier(c clipboard.Copier) Option {
	return func(f *Form) { f.copier = c }
}

// WithClearHiddenValues makes a field's value reset to its default the
// moment the field becomes inactive. The default policy keeps the stale
// value so it reappears when the field becomes visible again; inactive
// values never reach rendering or validation either way.
func WithClearHiddenValues() Option {
	return func(f *Form) { f.clearHidden = true }
}

// WithLogger sets the logger for generation diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(f *Form) { f.log = log }
}

// New creates a form for the given template with every field at its
// default value.
func New(tmpl *models.Template, opts ...Option) *Form {
	f := &Form{
		tmpl:   tmpl,
		values: make(map[string]any, len(tmpl.Inputs)),
		log:    zap.NewNop(),
	}
	for _, in := range tmpl.Inputs {
		f.values[in.ID] = in.Default()
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Template returns the template this form is editing.
func (f *Form) Template() *models.Template { return f.tmpl }

// State returns the current lifecycle phase.
func (f *Form) State() State { return f.state }

// Result returns the last generated result, if any.
func (f *Form) Result() *Result { return f.result }

// Get returns the current value of a field.
func (f *Form) Get(id string) any { return f.values[id] }

// Values returns a copy of the current values map.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Set updates one field value. Any change invalidates a previous result
// and returns the form to the editing state.
func (f *Form) Set(id string, value any) error {
	if _, ok := f.tmpl.Field(id); !ok {
		return fmt.Errorf("campo desconhecido: %s", id)
	}
	f.values[id] = value
	f.invalidate()
	if f.clearHidden {
		f.resetInactive()
	}
	return nil
}

// SetText feeds the external text under review into the passthrough
// field. Templates without a declared passthrough field ignore it.
func (f *Form) SetText(text string) {
	if _, ok := f.tmpl.Field(models.PassthroughField); !ok {
		return
	}
	f.values[models.PassthroughField] = text
	f.invalidate()
}

// ActiveFields returns the declared fields currently visible, in
// declaration order.
func (f *Form) ActiveFields() []models.InputField {
	out := make([]models.InputField, 0, len(f.tmpl.Inputs))
	for _, in := range f.tmpl.Inputs {
		if f.tmpl.FieldActive(in, f.values) {
			out = append(out, in)
		}
	}
	return out
}

// AddOption appends a new selectable option to a combobox field, the
// mechanism behind free-text entries in suggestion lists.
func (f *Form) AddOption(fieldID string, opt models.SelectOption) error {
	for i, in := range f.tmpl.Inputs {
		if in.ID != fieldID {
			continue
		}
		if in.Type != models.FieldCombobox {
			return fmt.Errorf("o campo %s não aceita novas opções", fieldID)
		}
		for _, existing := range in.Options {
			if existing.Value == opt.Value {
				return nil
			}
		}
		f.tmpl.Inputs[i].Options = append(f.tmpl.Inputs[i].Options, opt)
		return nil
	}
	return fmt.Errorf("campo desconhecido: %s", fieldID)
}

// Reset returns every field to its default value and discards any result.
func (f *Form) Reset() {
	for _, in := range f.tmpl.Inputs {
		f.values[in.ID] = in.Default()
	}
	f.invalidate()
}

// Generate runs the full pipeline on the current values: structural
// validation, rendering, evaluation, then a best-effort clipboard copy. A
// validation failure returns the per-field errors and leaves the form in
// the editing state. Render failures do not abort; the marked error text
// flows into the evaluation like any other output.
func (f *Form) Generate() Result {
	res := Result{}

	values := f.effectiveValues()

	if f.tmpl.Validate != nil {
		if errs := f.tmpl.Validate(values); len(errs) > 0 {
			res.FieldErrors = errs
			f.state = StateIdle
			f.result = &res
			return res
		}
	}

	res.Prompt = renderer.Render(f.tmpl.Body, values)
	res.Evaluation = evaluator.Evaluate(res.Prompt, values, f.tmpl)

	if f.copier != nil {
		if err := f.copier.Copy(res.Prompt); err != nil {
			// Copy failures never fail generation.
			f.log.Warn("clipboard copy failed", zap.Error(err))
			res.CopyErr = err
		} else {
			res.Copied = true
		}
	}

	f.state = StateGenerated
	f.result = &res
	return res
}

func (f *Form) invalidate() {
	f.state = StateIdle
	f.result = nil
}

// effectiveValues is the values map the pipeline sees: inactive fields
// are omitted so a retained stale value never leaks into the prompt.
func (f *Form) effectiveValues() map[string]any {
	out := make(map[string]any, len(f.values))
	for _, in := range f.tmpl.Inputs {
		if f.tmpl.FieldActive(in, f.values) {
			out[in.ID] = f.values[in.ID]
		}
	}
	return out
}

// resetInactive applies the clear-hidden policy after a value change.
func (f *Form) resetInactive() {
	for _, in := range f.tmpl.Inputs {
		if !f.tmpl.FieldActive(in, f.values) {
			f.values[in.ID] = in.Default()
		}
	}
}
