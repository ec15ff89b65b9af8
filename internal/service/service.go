// Package service provides the business logic tying the template
// registry, the prompt pipeline and the remote integrations together.
// Every interface (TUI, CLI, HTTP) talks to a Service rather than to the
// lower layers directly.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/criatividade-digital/revisa/internal/achievements"
	"github.com/criatividade-digital/revisa/internal/clipboard"
	"github.com/criatividade-digital/revisa/internal/config"
	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/form"
	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/parser"
	"github.com/criatividade-digital/revisa/internal/registry"
	"github.com/criatividade-digital/revisa/internal/storage"
)

// Service is the application core shared by all interfaces.
type Service struct {
	cfg      config.Config
	library  *storage.Library
	registry *registry.Registry
	achv     *achievements.Client
	copier   clipboard.Copier
	log      *zap.Logger
}

// BuildRequest describes one headless prompt-building operation.
type BuildRequest struct {
	TemplateID string
	Values     map[string]any
	Text       string
	Copy       bool
}

// BuildResponse is the outcome of a headless build.
type BuildResponse struct {
	Prompt      string                  `json:"prompt"`
	Evaluation  models.PromptEvaluation `json:"evaluation"`
	FieldErrors map[string]string       `json:"fieldErrors,omitempty"`
	Copied      bool                    `json:"copied"`
}

// New creates a service from configuration. The registry is created but
// not yet loaded; call Initialize before using template operations.
func New(cfg config.Config, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}

	library, err := storage.NewLibrary(cfg.LibraryDir)
	if err != nil {
		return nil, err
	}

	regOpts := []registry.Option{registry.WithLogger(log)}
	if cfg.DisableFallback {
		regOpts = append(regOpts, registry.WithoutFallback())
	}

	svc := &Service{
		cfg:      cfg,
		library:  library,
		registry: registry.New(library, regOpts...),
		copier:   clipboard.System(),
		log:      log,
	}

	if cfg.AchievementsURL != "" {
		achvOpts := []achievements.Option{achievements.WithLogger(log)}
		if dir, err := config.Dir(); err == nil {
			cache := storage.NewResponseCache(dir)
			if err := cache.Load(); err != nil {
				log.Warn("failed to load achievements cache", zap.Error(err))
			}
			achvOpts = append(achvOpts, achievements.WithCache(cache))
		}
		svc.achv = achievements.NewClient(cfg.AchievementsURL, achvOpts...)
	}

	return svc, nil
}

// Initialize loads the template registry. Safe to call repeatedly.
func (s *Service) Initialize(ctx context.Context) error {
	return s.registry.Initialize(ctx)
}

// Config returns the configuration the service was built with.
func (s *Service) Config() config.Config { return s.cfg }

// ListTemplates returns every registered template.
func (s *Service) ListTemplates() []*models.Template {
	return s.registry.GetAll()
}

// ListTemplatesByCategory returns the templates of one category.
func (s *Service) ListTemplatesByCategory(category string) []*models.Template {
	return s.registry.GetByCategory(category)
}

// Categories returns the distinct template categories.
func (s *Service) Categories() []string {
	return s.registry.Categories()
}

// GetTemplate returns one template by id.
func (s *Service) GetTemplate(id string) (*models.Template, error) {
	tmpl, ok := s.registry.Get(id)
	if !ok {
		return nil, apperrors.NotFoundError(fmt.Sprintf("template %s", id))
	}
	return tmpl, nil
}

// SearchTemplates fuzzy-matches templates by name, summary, id and
// category. An empty query returns everything.
func (s *Service) SearchTemplates(query string) []*models.Template {
	all := s.registry.GetAll()
	if query == "" {
		return all
	}

	searchStrings := make([]string, len(all))
	for i, t := range all {
		searchStrings[i] = fmt.Sprintf("%s %s %s %s", t.Name, t.Summary, t.ID, t.Category)
	}

	matches := fuzzy.Find(query, searchStrings)
	results := make([]*models.Template, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.Index])
	}
	return results
}

// NewForm creates a form for the given template id, honoring the
// configured hidden-value policy. The form copies generated prompts to
// the system clipboard.
func (s *Service) NewForm(templateID string) (*form.Form, error) {
	return s.newForm(templateID, true)
}

func (s *Service) newForm(templateID string, withClipboard bool) (*form.Form, error) {
	tmpl, err := s.GetTemplate(templateID)
	if err != nil {
		return nil, err
	}
	opts := []form.Option{form.WithLogger(s.log)}
	if withClipboard {
		opts = append(opts, form.WithCopier(s.copier))
	}
	if s.cfg.ClearHiddenFieldValues {
		opts = append(opts, form.WithClearHiddenValues())
	}
	return form.New(tmpl, opts...), nil
}

// BuildPrompt runs the whole pipeline headlessly for the CLI build
// command and the HTTP build endpoint.
func (s *Service) BuildPrompt(ctx context.Context, req BuildRequest) (*BuildResponse, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	// Headless callers opt into copying explicitly.
	f, err := s.newForm(req.TemplateID, req.Copy)
	if err != nil {
		return nil, err
	}

	for id, value := range req.Values {
		if err := f.Set(id, value); err != nil {
			return nil, apperrors.ValidationError(err.Error())
		}
	}
	if strings.TrimSpace(req.Text) != "" {
		f.SetText(req.Text)
	}

	res := f.Generate()
	return &BuildResponse{
		Prompt:      res.Prompt,
		Evaluation:  res.Evaluation,
		FieldErrors: res.FieldErrors,
		Copied:      res.Copied,
	}, nil
}

// InstallTemplate adds a template document to the library. The registry
// is already loaded at this point, so the new template is registered
// directly as well.
func (s *Service) InstallTemplate(ctx context.Context, raw string, overwrite bool) (*models.Template, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	path, err := s.library.Install(raw, overwrite)
	if err != nil {
		return nil, err
	}

	tmpl, err := parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	tmpl.FilePath = path
	s.registry.Register(tmpl)
	return tmpl, nil
}

// RemoveTemplate deletes a template document from the library.
func (s *Service) RemoveTemplate(id string) error {
	return s.library.Remove(id)
}

// Achievements returns the achievements of a principal.
func (s *Service) Achievements(ctx context.Context, principal string, refresh bool) ([]models.Achievement, error) {
	if s.achv == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInternalError,
			"nenhum serviço de conquistas configurado")
	}
	return s.achv.Fetch(ctx, principal, refresh)
}
