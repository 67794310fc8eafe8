// Package client implements the backend API contract over HTTP. It is the
// production implementation of store.APIClient; the response envelope and
// status-to-error mapping mirror the server's pkg/response and
// pkg/apperror conventions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/store"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/workflow"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// Client talks to one backend instance. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	session *SessionStore
	log     *logrus.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithSessionStore(s *SessionStore) Option {
	return func(c *Client) { c.session = s }
}

func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logrus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope matches the server's pkg/response format.
type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.Wrap(apperror.KindValidation, err, "cannot encode request body")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "cannot build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Network(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		if resp.StatusCode >= 400 {
			return apperror.FromHTTPStatus(resp.StatusCode, resp.Status)
		}
		return apperror.Wrap(apperror.KindUnknown, decodeErr, "cannot decode response from %s", path)
	}

	if resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return apperror.FromHTTPStatus(resp.StatusCode, msg)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperror.Wrap(apperror.KindUnknown, err, "cannot decode payload from %s", path)
		}
	}
	return nil
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates and stashes the returned token together with the
// username in the session store, fully overwriting any prior session.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	if c.session != nil {
		if err := c.session.Save(out.Token, username); err != nil {
			return "", err
		}
	}
	return out.Token, nil
}

// --- Reviews ---

func (c *Client) GetAllSolutionReviews(ctx context.Context) ([]model.SolutionReview, error) {
	var out []model.SolutionReview
	if err := c.do(ctx, http.MethodGet, "/api/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSolutionReviewByID rejects an empty id before any request is made.
// A 404 from the server comes back as (nil, nil): absence, not failure.
func (c *Client) GetSolutionReviewByID(ctx context.Context, id string) (*model.SolutionReview, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.Validation("review id is required")
	}
	var out model.SolutionReview
	err := c.do(ctx, http.MethodGet, "/api/reviews/"+url.PathEscape(id), nil, &out)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSystemSolutionReviews(ctx context.Context, systemCode string) ([]model.SolutionReview, error) {
	var out []model.SolutionReview
	path := fmt.Sprintf("/api/systems/%s/reviews", url.PathEscape(systemCode))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.SolutionReview{}
	}
	return out, nil
}

func (c *Client) CreateSolutionReview(ctx context.Context, in store.CreateReviewInput) (*model.SolutionReview, error) {
	var out model.SolutionReview
	if err := c.do(ctx, http.MethodPost, "/api/reviews", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSolutionReview(ctx context.Context, id string, update store.ReviewUpdate) (*model.SolutionReview, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.Validation("review id is required")
	}
	var out model.SolutionReview
	if err := c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSolutionReview(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, apperror.Validation("review id is required")
	}
	err := c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(id), nil, nil)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type transitionRequest struct {
	Transition string `json:"transition"`
	Reason     string `json:"reason,omitempty"`
}

func (c *Client) TransitionDocumentState(ctx context.Context, id string, t workflow.Transition) (*model.SolutionReview, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.Validation("review id is required")
	}
	var out model.SolutionReview
	path := "/api/reviews/" + url.PathEscape(id) + "/transition"
	if err := c.do(ctx, http.MethodPost, path, transitionRequest{Transition: string(t)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Systems ---

func (c *Client) GetSystems(ctx context.Context) ([]model.System, error) {
	var out []model.System
	if err := c.do(ctx, http.MethodGet, "/api/systems", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSystemByCode(ctx context.Context, code string) (*model.System, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperror.Validation("system code is required")
	}
	var out model.System
	err := c.do(ctx, http.MethodGet, "/api/systems/"+url.PathEscape(code), nil, &out)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// --- Lookups ---

// GetBusinessCapabilities fetches the raw capability taxonomy. Callers
// cache and transform it through lookup.Options.
func (c *Client) GetBusinessCapabilities(ctx context.Context) ([]model.CapabilityTaxonomyEntry, error) {
	var out []model.CapabilityTaxonomyEntry
	if err := c.do(ctx, http.MethodGet, "/api/lookups/business-capabilities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTechComponents(ctx context.Context) ([]model.TechCatalogEntry, error) {
	var out []model.TechCatalogEntry
	if err := c.do(ctx, http.MethodGet, "/api/lookups/tech-components", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
