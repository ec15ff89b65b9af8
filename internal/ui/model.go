// Package ui implements the interactive terminal interface: a template
// picker, a schema-driven input form and a result view for the generated
// prompt.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/criatividade-digital/revisa/internal/clipboard"
	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/service"
)

// createGlamourRenderer builds a markdown renderer matched to the
// terminal's color capabilities.
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()
	var styleOption glamour.TermRendererOption
	if lipgloss.HasDarkBackground() {
		styleOption = glamour.WithStandardStyle("dark")
	} else {
		styleOption = glamour.WithStandardStyle("light")
	}
	if profile == termenv.Ascii {
		styleOption = glamour.WithAutoStyle()
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// ViewMode represents the current view in the TUI.
type ViewMode int

const (
	ViewPicker ViewMode = iota
	ViewForm
	ViewResult
)

// templatesLoadedMsg carries the registry contents after startup.
type templatesLoadedMsg struct {
	templates []*models.Template
	err       error
}

func loadTemplatesCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		err := svc.Initialize(context.Background())
		return templatesLoadedMsg{templates: svc.ListTemplates(), err: err}
	}
}

// tickMsg clears the transient status message.
type tickMsg time.Time

func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// KeyMap defines all key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
	Search   key.Binding
	Generate key.Binding
	Copy     key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Search, k.Generate, k.Copy},
		{k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "subir"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "descer"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "selecionar"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "voltar"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "sair"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "ajuda"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filtrar"),
	),
	Generate: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("Ctrl+g", "gerar prompt"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copiar"),
	),
}

// Model represents the TUI application state.
type Model struct {
	service  *service.Service
	viewMode ViewMode

	templateList list.Model
	formView     *FormView
	viewport     viewport.Model
	help         help.Model
	keys         KeyMap

	glamourRenderer *glamour.TermRenderer

	templates []*models.Template
	loading   bool

	width  int
	height int

	statusMsg     string
	statusTimeout int
	err           error
}

// NewModel creates a new TUI model.
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	keyMap := list.DefaultKeyMap()
	keyMap.Filter = key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filtrar"),
	)
	l.KeyMap = keyMap

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	renderer, err := createGlamourRenderer(60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	return &Model{
		service:         svc,
		viewMode:        ViewPicker,
		templateList:    l,
		viewport:        vp,
		help:            help.New(),
		keys:            keys,
		loading:         true,
		glamourRenderer: renderer,
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadTemplatesCmd(m.service)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}

	case templatesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.templates = msg.templates
		items := make([]list.Item, len(m.templates))
		for i, t := range m.templates {
			items[i] = *t
		}
		m.templateList.SetItems(items)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.templateList.SetSize(msg.Width-4, msg.Height-6)
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = msg.Height - 8
		if m.formView != nil {
			m.formView.SetSize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.viewMode {
		case ViewPicker:
			return m.updatePicker(msg)
		case ViewForm:
			return m.updateForm(msg)
		case ViewResult:
			return m.updateResult(msg)
		}
	}

	switch m.viewMode {
	case ViewPicker:
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		cmds = append(cmds, cmd)
	case ViewResult:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.templateList.FilterState() != list.Filtering && key.Matches(msg, m.keys.Enter) {
		item, ok := m.templateList.SelectedItem().(models.Template)
		if !ok {
			return m, nil
		}
		f, err := m.service.NewForm(item.ID)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.formView = NewFormView(f)
		m.formView.SetSize(m.width, m.height)
		m.viewMode = ViewForm
		return m, nil
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back) && !m.formView.Editing():
		m.viewMode = ViewPicker
		m.formView = nil
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		res := m.formView.Generate()
		if len(res.FieldErrors) > 0 {
			return m, nil
		}
		m.viewport.SetContent(m.renderResult(res.Prompt))
		m.viewport.GotoTop()
		m.viewMode = ViewResult
		if res.Copied {
			return m.setStatus("prompt copiado para a área de transferência")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formView, cmd = m.formView.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewForm
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		res := m.formView.Result()
		if res == nil {
			return m, nil
		}
		if err := clipboard.Copy(res.Prompt); err != nil {
			return m.setStatus("falha ao copiar: " + err.Error())
		}
		return m.setStatus("prompt copiado para a área de transferência")
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusTimeout = 3
	return m, clearStatusCmd()
}

// renderResult lays out the prompt text with its evaluation badges.
func (m *Model) renderResult(prompt string) string {
	res := m.formView.Result()
	var b strings.Builder

	eval := res.Evaluation
	badge := StyleSuccess
	if !eval.IsWithinLimits {
		badge = StyleWarning
	}
	b.WriteString(badge.Render(fmt.Sprintf("%d tokens", eval.Tokens)))
	b.WriteString(StyleTextMuted.Render(fmt.Sprintf(" %d caracteres", eval.Chars)))
	b.WriteString("\n")

	for _, warning := range eval.Warnings {
		b.WriteString(StyleWarning.Render("aviso: " + warning))
		b.WriteString("\n")
	}
	for _, e := range eval.Errors {
		b.WriteString(StyleError.Render("erro: " + e))
		b.WriteString("\n")
	}

	b.WriteString(StyleContentContainer.Width(m.viewport.Width - 2).Render(prompt))
	return b.String()
}

// View renders the current view.
func (m Model) View() string {
	var body string
	switch {
	case m.loading:
		body = StyleTextMuted.Render("carregando modelos...")
	case m.viewMode == ViewPicker:
		body = m.viewPicker()
	case m.viewMode == ViewForm:
		body = m.formView.View()
	case m.viewMode == ViewResult:
		body = m.viewport.View()
	}

	var footer string
	if m.statusMsg != "" {
		footer = StyleSuccess.Render(m.statusMsg)
	} else if m.err != nil {
		footer = StyleError.Render(m.err.Error())
	} else {
		footer = m.help.View(m.keys)
	}

	title := StyleTitle.Render("revisa")
	return StyleContainer.Render(title + "\n\n" + body + "\n\n" + footer)
}

func (m Model) viewPicker() string {
	if len(m.templates) == 0 {
		return StyleTextMuted.Render("nenhum modelo disponível")
	}

	view := m.templateList.View()

	// Show the selected template's description below the list.
	if item, ok := m.templateList.SelectedItem().(models.Template); ok && item.Summary != "" {
		if rendered, err := m.glamourRenderer.Render(item.Summary); err == nil {
			view += "\n" + strings.TrimRight(rendered, "\n")
		}
	}
	return view
}

// Run starts the interactive interface and blocks until it exits.
func Run(ctx context.Context, svc *service.Service) error {
	m, err := NewModel(svc)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
