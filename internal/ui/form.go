package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/criatividade-digital/revisa/internal/form"
	"github.com/criatividade-digital/revisa/internal/models"
)

// widgetState holds the interactive component behind one declared field.
type widgetState struct {
	field  models.InputField
	text   textinput.Model
	area   textarea.Model
	cursor int // option cursor for selection-type fields
}

// FormView renders a template's declared inputs as an editable form. The
// widget set follows the field declarations: text inputs, textareas,
// option selectors, toggles. Fields behind an unmet dependency are not
// shown and not reachable.
type FormView struct {
	form    *form.Form
	widgets map[string]*widgetState

	focused int
	editing bool

	errors map[string]string

	width  int
	height int
}

// NewFormView builds the widget set for a form's template.
func NewFormView(f *form.Form) *FormView {
	fv := &FormView{
		form:    f,
		widgets: make(map[string]*widgetState),
		errors:  make(map[string]string),
	}

	for _, field := range f.Template().Inputs {
		w := &widgetState{field: field}
		switch field.Type {
		case models.FieldTextarea:
			ta := textarea.New()
			ta.Placeholder = field.Placeholder
			ta.CharLimit = 0
			ta.ShowLineNumbers = false
			ta.SetWidth(70)
			ta.SetHeight(6)
			if s, ok := f.Get(field.ID).(string); ok {
				ta.SetValue(s)
			}
			w.area = ta
		case models.FieldText, models.FieldCombobox:
			ti := textinput.New()
			ti.Placeholder = field.Placeholder
			ti.CharLimit = 0
			ti.Width = 60
			if s, ok := f.Get(field.ID).(string); ok {
				ti.SetValue(s)
			}
			w.text = ti
		}
		fv.widgets[field.ID] = w
	}
	return fv
}

// SetSize adjusts widget widths to the window.
func (fv *FormView) SetSize(width, height int) {
	fv.width = width
	fv.height = height
	for _, w := range fv.widgets {
		switch w.field.Type {
		case models.FieldTextarea:
			w.area.SetWidth(width - 8)
		case models.FieldText, models.FieldCombobox:
			w.text.Width = width - 10
		}
	}
}

// visible returns the reachable fields, in declaration order. Hidden
// passthrough fields never get a widget.
func (fv *FormView) visible() []models.InputField {
	active := fv.form.ActiveFields()
	out := make([]models.InputField, 0, len(active))
	for _, field := range active {
		if field.Type != models.FieldHidden {
			out = append(out, field)
		}
	}
	return out
}

// Editing reports whether a text widget currently captures keystrokes,
// so Esc blurs it instead of leaving the form.
func (fv *FormView) Editing() bool { return fv.editing }

// Generate runs the form pipeline and records any field errors for
// inline display.
func (fv *FormView) Generate() form.Result {
	fv.syncFocusedText()
	res := fv.form.Generate()
	fv.errors = res.FieldErrors
	if fv.errors == nil {
		fv.errors = make(map[string]string)
	}
	return res
}

// Result returns the last generated result.
func (fv *FormView) Result() *form.Result { return fv.form.Result() }

// Update handles one key press.
func (fv *FormView) Update(msg tea.KeyMsg) (*FormView, tea.Cmd) {
	fields := fv.visible()
	if len(fields) == 0 {
		return fv, nil
	}
	if fv.focused >= len(fields) {
		fv.focused = len(fields) - 1
	}
	current := fields[fv.focused]
	w := fv.widgets[current.ID]

	if fv.editing {
		return fv.updateEditing(current, w, msg)
	}

	switch msg.String() {
	case "up", "shift+tab":
		fv.syncFocusedText()
		if fv.focused > 0 {
			fv.focused--
		}
	case "down", "tab":
		fv.syncFocusedText()
		if fv.focused < len(fields)-1 {
			fv.focused++
		}
	case "enter":
		switch current.Type {
		case models.FieldText, models.FieldTextarea, models.FieldCombobox:
			fv.startEditing(w)
		case models.FieldSwitch:
			fv.toggleSwitch(current)
		}
	case " ":
		switch current.Type {
		case models.FieldSwitch:
			fv.toggleSwitch(current)
		case models.FieldMultiSelect:
			fv.toggleOption(current, w)
		}
	case "left":
		switch current.Type {
		case models.FieldSelect:
			fv.cycleSelect(current, w, -1)
		case models.FieldMultiSelect:
			if w.cursor > 0 {
				w.cursor--
			}
		}
	case "right":
		switch current.Type {
		case models.FieldSelect:
			fv.cycleSelect(current, w, 1)
		case models.FieldMultiSelect:
			if w.cursor < len(current.Options)-1 {
				w.cursor++
			}
		}
	}
	return fv, nil
}

func (fv *FormView) updateEditing(current models.InputField, w *widgetState, msg tea.KeyMsg) (*FormView, tea.Cmd) {
	if msg.String() == "esc" || (msg.String() == "tab" && current.Type != models.FieldTextarea) {
		fv.syncFocusedText()
		fv.stopEditing(w)
		return fv, nil
	}

	var cmd tea.Cmd
	switch current.Type {
	case models.FieldTextarea:
		w.area, cmd = w.area.Update(msg)
		fv.form.Set(current.ID, w.area.Value())
	default:
		w.text, cmd = w.text.Update(msg)
		fv.form.Set(current.ID, w.text.Value())
	}
	return fv, cmd
}

func (fv *FormView) startEditing(w *widgetState) {
	fv.editing = true
	switch w.field.Type {
	case models.FieldTextarea:
		w.area.Focus()
	default:
		w.text.Focus()
	}
}

func (fv *FormView) stopEditing(w *widgetState) {
	fv.editing = false
	w.area.Blur()
	w.text.Blur()
	if w.field.Type == models.FieldCombobox {
		// Committed free text joins the suggestion list.
		if v := strings.TrimSpace(w.text.Value()); v != "" {
			fv.form.AddOption(w.field.ID, models.SelectOption{Value: v, Label: v})
		}
	}
}

func (fv *FormView) syncFocusedText() {
	fields := fv.visible()
	if fv.focused >= len(fields) {
		return
	}
	field := fields[fv.focused]
	w := fv.widgets[field.ID]
	switch field.Type {
	case models.FieldTextarea:
		fv.form.Set(field.ID, w.area.Value())
	case models.FieldText, models.FieldCombobox:
		fv.form.Set(field.ID, w.text.Value())
	}
}

func (fv *FormView) toggleSwitch(field models.InputField) {
	on, _ := fv.form.Get(field.ID).(bool)
	fv.form.Set(field.ID, !on)
}

func (fv *FormView) cycleSelect(field models.InputField, w *widgetState, dir int) {
	if len(field.Options) == 0 {
		return
	}
	current, _ := fv.form.Get(field.ID).(string)
	if current == "" {
		// First press lands on an end instead of skipping past it.
		w.cursor = 0
		if dir < 0 {
			w.cursor = len(field.Options) - 1
		}
	} else {
		w.cursor += dir
		if w.cursor < 0 {
			w.cursor = len(field.Options) - 1
		}
		if w.cursor >= len(field.Options) {
			w.cursor = 0
		}
	}
	fv.form.Set(field.ID, field.Options[w.cursor].Value)
}

func (fv *FormView) toggleOption(field models.InputField, w *widgetState) {
	if len(field.Options) == 0 {
		return
	}
	value := field.Options[w.cursor].Value
	selected, _ := fv.form.Get(field.ID).([]string)

	out := make([]string, 0, len(selected)+1)
	found := false
	for _, v := range selected {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	fv.form.Set(field.ID, out)
}

// View renders the form.
func (fv *FormView) View() string {
	tmpl := fv.form.Template()
	var b strings.Builder

	b.WriteString(StyleTitle.Render(tmpl.Name))
	b.WriteString("\n")
	if tmpl.Summary != "" {
		b.WriteString(StyleTextMuted.Render(tmpl.Summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, field := range fv.visible() {
		focused := i == fv.focused
		b.WriteString(fv.renderField(field, focused))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleFormHelp.Render("Tab/↑↓ campos · Enter editar · Ctrl+g gerar prompt · Esc voltar"))
	return b.String()
}

func (fv *FormView) renderField(field models.InputField, focused bool) string {
	w := fv.widgets[field.ID]
	var b strings.Builder

	label := field.Label
	if field.Required {
		label += " *"
	}
	if focused {
		b.WriteString(StyleFocused.Render(label))
	} else {
		b.WriteString(StyleFormLabel.Render(label))
	}
	b.WriteString("\n")
	if field.Summary != "" {
		b.WriteString(StyleTextDim.Render(field.Summary))
		b.WriteString("\n")
	}

	switch field.Type {
	case models.FieldTextarea:
		b.WriteString(w.area.View())
	case models.FieldText, models.FieldCombobox:
		b.WriteString(w.text.View())
		if field.Type == models.FieldCombobox && len(field.Options) > 0 {
			labels := make([]string, len(field.Options))
			for i, opt := range field.Options {
				labels[i] = opt.Label
			}
			b.WriteString("\n")
			b.WriteString(StyleTextDim.Render("sugestões: " + strings.Join(labels, ", ")))
		}
	case models.FieldSelect:
		b.WriteString(fv.renderOptions(field, w, false))
	case models.FieldMultiSelect:
		b.WriteString(fv.renderOptions(field, w, true))
	case models.FieldSwitch:
		on, _ := fv.form.Get(field.ID).(bool)
		mark := "[ ]"
		if on {
			mark = "[x]"
		}
		b.WriteString(StyleText.Render(fmt.Sprintf("%s %s", mark, field.Label)))
	}

	if msg, ok := fv.errors[field.ID]; ok {
		b.WriteString("\n")
		b.WriteString(StyleError.Render(msg))
	}
	b.WriteString("\n")
	return b.String()
}

func (fv *FormView) renderOptions(field models.InputField, w *widgetState, multi bool) string {
	selected := map[string]bool{}
	if multi {
		values, _ := fv.form.Get(field.ID).([]string)
		for _, v := range values {
			selected[v] = true
		}
	} else if v, ok := fv.form.Get(field.ID).(string); ok {
		selected[v] = true
	}

	parts := make([]string, len(field.Options))
	for i, opt := range field.Options {
		style := StyleTextMuted
		if selected[opt.Value] {
			style = StyleSelected
		} else if multi && i == w.cursor {
			style = StyleFocused
		}
		parts[i] = style.Render(opt.Label)
	}
	return strings.Join(parts, " ")
}
