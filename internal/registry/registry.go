// Package registry indexes parsed template definitions by id and
// category.
//
// A Registry is an explicitly constructed instance owned by the
// application's composition root and passed to consumers; there is no
// module-level singleton. Initialization is idempotent and collapses
// concurrent callers into a single load: multiple TUI tabs calling
// Initialize on first render trigger at most one document load, and all
// of them observe the same eventual contents.
package registry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/parser"
)

// Document is one raw template document handed to the registry by a
// source. Path is informational, used only for log messages.
type Document struct {
	Path    string
	Content string
}

// Source supplies raw template documents. Implementations may read a
// library directory, an embedded set, or a remote location.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Document, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context) ([]Document, error) { return f(ctx) }

// Registry holds parsed template definitions keyed by id. Registration
// is last-write-wins on id collision.
type Registry struct {
	source     Source
	noFallback bool
	log        *zap.Logger

	initOnce sync.Once
	initErr  error

	mu        sync.RWMutex
	templates map[string]*models.Template
	order     []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for degraded-path reporting.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithoutFallback disables the built-in fallback documents. With this
// option an unavailable source yields an empty registry, and callers
// must treat "category has no templates" as a normal state.
func WithoutFallback() Option {
	return func(r *Registry) { r.noFallback = true }
}

// New creates a registry reading from the given source. A nil source
// behaves like a source returning no documents.
func New(source Source, opts ...Option) *Registry {
	r := &Registry{
		source:    source,
		log:       zap.NewNop(),
		templates: make(map[string]*models.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize loads and parses the source documents. It is safe to call
// any number of times from any number of goroutines; only the first
// caller's load executes and every caller observes its outcome.
func (r *Registry) Initialize(ctx context.Context) error {
	r.initOnce.Do(func() {
		r.initErr = r.load(ctx)
	})
	return r.initErr
}

func (r *Registry) load(ctx context.Context) error {
	var docs []Document
	var err error

	if r.source != nil {
		docs, err = r.source.Load(ctx)
	}

	if err != nil || len(docs) == 0 {
		if err != nil {
			r.log.Warn("template source unavailable", zap.Error(err))
		}
		if r.noFallback {
			// An empty registry is a valid terminal state here.
			return nil
		}
		r.log.Info("using built-in fallback templates")
		docs = builtinDocuments()
	}

	for _, doc := range docs {
		tmpl, perr := parser.Parse(doc.Content)
		if perr != nil {
			// One bad document never aborts the load of its siblings.
			r.log.Warn("skipping malformed template document",
				zap.String("path", doc.Path), zap.Error(perr))
			continue
		}
		tmpl.FilePath = doc.Path
		r.Register(tmpl)
	}
	return nil
}

// Register adds a definition, overwriting any previous one with the
// same id.
func (r *Registry) Register(tmpl *models.Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[tmpl.ID]; !exists {
		r.order = append(r.order, tmpl.ID)
	}
	r.templates[tmpl.ID] = tmpl
}

// RegisterBulk registers several definitions in order.
func (r *Registry) RegisterBulk(tmpls []*models.Template) {
	for _, tmpl := range tmpls {
		r.Register(tmpl)
	}
}

// Get returns the definition with the given id.
func (r *Registry) Get(id string) (*models.Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.templates[id]
	return tmpl, ok
}

// GetAll returns every definition in registration order.
func (r *Registry) GetAll() []*models.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}

// GetByCategory returns the definitions whose category exactly equals
// the given string. An unknown category yields an empty slice.
func (r *Registry) GetByCategory(category string) []*models.Template {
	all := r.GetAll()
	out := make([]*models.Template, 0, len(all))
	for _, tmpl := range all {
		if tmpl.Category == category {
			out = append(out, tmpl)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (r *Registry) Categories() []string {
	all := r.GetAll()
	seen := make(map[string]bool)
	var out []string
	for _, tmpl := range all {
		if !seen[tmpl.Category] {
			seen[tmpl.Category] = true
			out = append(out, tmpl.Category)
		}
	}
	return out
}
