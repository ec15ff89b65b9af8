// Package api exposes the template and prompt-building operations over
// HTTP, so editor plugins and local web frontends can drive the same
// pipeline as the terminal interfaces.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/service"
	"github.com/criatividade-digital/revisa/internal/validation"
)

// Server is the HTTP front of the service layer.
type Server struct {
	service      *service.Service
	validator    *validation.Validator
	errorHandler *apperrors.HTTPErrorHandler
	log          *zap.Logger
	port         int
	server       *http.Server
}

// NewServer creates a server listening on the given port.
func NewServer(svc *service.Service, port int, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		service:      svc,
		validator:    validation.NewValidator(),
		errorHandler: apperrors.NewHTTPErrorHandler(true),
		log:          log,
		port:         port,
	}
}

// Handler builds the route table. Split from Start so tests can drive
// the mux without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/templates", s.withMiddleware(s.handleTemplates))
	mux.HandleFunc("/api/v1/templates/", s.withMiddleware(s.handleTemplateByID))
	mux.HandleFunc("/api/v1/build", s.withMiddleware(s.handleBuild))
	mux.HandleFunc("/api/v1/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))
	return mux
}

// Start begins serving HTTP requests.
func (s *Server) Start(ctx context.Context) error {
	if err := s.service.Initialize(ctx); err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("API server starting", zap.Int("port", s.port))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(s.corsMiddleware(s.recoveryMiddleware(handler)))
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	}
}

func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func (s *Server) recoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic in handler", zap.Any("panic", rec))
				s.writeError(w, apperrors.InternalError("internal server error"))
			}
		}()
		next(w, r)
	}
}

// apiResponse is the success envelope.
type apiResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) writeResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Success:   statusCode < 400,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, apperrors.ValidationError("method not allowed"))
		return
	}

	params := map[string]any{}
	if category := r.URL.Query().Get("category"); category != "" {
		params["category"] = category
	}
	if query := r.URL.Query().Get("q"); query != "" {
		params["query"] = query
	}
	if result := s.validator.Validate("list_templates", params); !result.Valid {
		s.writeError(w, result.ToAppError())
		return
	}

	if err := s.service.Initialize(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}

	category, _ := params["category"].(string)
	query, _ := params["query"].(string)

	var templates []*models.Template
	switch {
	case query != "":
		templates = s.service.SearchTemplates(query)
		if category != "" {
			kept := make([]*models.Template, 0, len(templates))
			for _, t := range templates {
				if t.Category == category {
					kept = append(kept, t)
				}
			}
			templates = kept
		}
	case category != "":
		templates = s.service.ListTemplatesByCategory(category)
	default:
		templates = s.service.ListTemplates()
	}

	s.writeResponse(w, templateSummaries(templates), http.StatusOK)
}

func (s *Server) handleTemplateByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, apperrors.ValidationError("method not allowed"))
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/templates/")
	if result := s.validator.Validate("get_template", map[string]any{"id": id}); !result.Valid {
		s.writeError(w, result.ToAppError())
		return
	}

	if err := s.service.Initialize(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}

	tmpl, err := s.service.GetTemplate(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, templateDetail(tmpl), http.StatusOK)
}

// buildRequestBody is the POST /api/v1/build payload.
type buildRequestBody struct {
	TemplateID string         `json:"template_id"`
	Values     map[string]any `json:"values"`
	Text       string         `json:"text"`
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, apperrors.ValidationError("method not allowed"))
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.writeError(w, apperrors.ValidationError("request body too large or unreadable"))
		return
	}
	var body buildRequestBody
	if err := json.Unmarshal(data, &body); err != nil {
		s.writeError(w, apperrors.ValidationError("invalid JSON request body"))
		return
	}

	params := map[string]any{"template_id": body.TemplateID}
	if body.Values != nil {
		params["values"] = body.Values
	}
	if body.Text != "" {
		params["text"] = body.Text
	}
	if result := s.validator.Validate("build_prompt", params); !result.Valid {
		s.writeError(w, result.ToAppError())
		return
	}

	// Clipboard copying is a local-machine concern; the HTTP surface
	// never triggers it.
	resp, err := s.service.BuildPrompt(r.Context(), service.BuildRequest{
		TemplateID: body.TemplateID,
		Values:     body.Values,
		Text:       body.Text,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if len(resp.FieldErrors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	s.writeResponse(w, resp, status)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, apperrors.ValidationError("method not allowed"))
		return
	}
	if err := s.service.Initialize(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, s.service.Categories(), http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]any{
		"status":    "ok",
		"templates": len(s.service.ListTemplates()),
	}, http.StatusOK)
}
