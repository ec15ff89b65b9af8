// Package achievements talks to the remote achievements service and keeps
// a local per-principal cache so earned achievements stay visible while
// the service is unreachable.
package achievements

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/storage"
)

// Client fetches achievement records for a principal.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *storage.ResponseCache
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables the local response cache.
func WithCache(cache *storage.ResponseCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the logger for degraded-path reporting.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the achievements of a principal. Cached data is served
// first unless forceRefresh is set; on a transport failure the cache is
// the fallback, so a network outage degrades to stale data rather than
// an empty screen.
func (c *Client) Fetch(ctx context.Context, principal string, forceRefresh bool) ([]models.Achievement, error) {
	if principal == "" {
		return nil, apperrors.UnauthenticatedError("nenhum usuário autenticado")
	}

	if !forceRefresh {
		if recs, ok := c.fromCache(principal); ok {
			return recs, nil
		}
	}

	recs, payload, err := c.fetchRemote(ctx, principal)
	if err != nil {
		appErr := apperrors.GetAppError(err)
		if appErr.Retryable {
			if recs, ok := c.fromCache(principal); ok {
				c.log.Warn("achievements service unreachable, serving cached data",
					zap.Error(err))
				return recs, nil
			}
		}
		return nil, err
	}

	if c.cache != nil {
		if cerr := c.cache.Set(principal, payload); cerr != nil {
			c.log.Warn("failed to persist achievements cache", zap.Error(cerr))
		}
	}
	return recs, nil
}

func (c *Client) fromCache(principal string) ([]models.Achievement, bool) {
	if c.cache == nil {
		return nil, false
	}
	entry, ok := c.cache.Get(principal)
	if !ok {
		return nil, false
	}
	var recs []models.Achievement
	if err := json.Unmarshal(entry.Payload, &recs); err != nil {
		c.cache.Invalidate(principal)
		return nil, false
	}
	return recs, true
}

func (c *Client) fetchRemote(ctx context.Context, principal string) ([]models.Achievement, []byte, error) {
	body, err := json.Marshal(map[string]string{"uid": principal})
	if err != nil {
		return nil, nil, apperrors.InternalError(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, nil, apperrors.InternalError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, apperrors.NetworkError("fetch achievements", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, apperrors.UnauthenticatedError("acesso negado pelo serviço de conquistas")
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, apperrors.NotFoundError(fmt.Sprintf("achievements for %s", principal))
	case resp.StatusCode >= 500:
		return nil, nil, apperrors.NetworkError("fetch achievements",
			fmt.Errorf("service returned status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, nil, apperrors.InternalError(
			fmt.Sprintf("unexpected achievements response status %d", resp.StatusCode))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperrors.NetworkError("read achievements response", err)
	}

	// The service wraps the records in an envelope; the cache keeps only
	// the inner array.
	var envelope struct {
		Achievements json.RawMessage `json:"achievements"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError,
			"resposta inválida do serviço de conquistas")
	}
	var recs []models.Achievement
	if err := json.Unmarshal(envelope.Achievements, &recs); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError,
			"resposta inválida do serviço de conquistas")
	}
	return recs, envelope.Achievements, nil
}
