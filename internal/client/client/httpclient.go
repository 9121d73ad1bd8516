package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

const maxResponseBytes = 8 << 20

// HTTPClient talks to the JSON API mounted under <base>/api.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	timeout        time.Duration
	base           http.RoundTripper
	onUnauthorized UnauthorizedHandler
	logger         logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *HTTPClient) { c.onUnauthorized = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithBaseTransport replaces the round tripper that carries the decorated
// requests. Defaults to http.DefaultTransport.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.base = rt }
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		base:    http.DefaultTransport,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = &http.Client{Transport: &authTransport{base: c.base, tokens: tokens}}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	var res models.AuthResult
	err := c.do(ctx, http.MethodPost, "/users/login", nil, creds, &res)
	return res, err
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (models.AuthResult, error) {
	var res models.AuthResult
	err := c.do(ctx, http.MethodPost, "/users", nil, reg, &res)
	return res, err
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserRef, error) {
	var users []models.UserRef
	err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users)
	return users, err
}

func (c *HTTPClient) ListTodos(ctx context.Context, q models.ListQuery) (models.Page, error) {
	var page models.Page
	err := c.do(ctx, http.MethodGet, "/todos", q.Values(), nil, &page)
	return page, err
}

func (c *HTTPClient) GetTodo(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodGet, "/todos/"+url.PathEscape(id), nil, nil, &item)
	return item, err
}

func (c *HTTPClient) CreateTodo(ctx context.Context, draft models.ItemDraft) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPost, "/todos", nil, draft, &item)
	return item, err
}

func (c *HTTPClient) UpdateTodo(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), nil, patch, &item)
	return item, err
}

func (c *HTTPClient) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) AddNote(ctx context.Context, id string, content string) (models.Item, error) {
	var item models.Item
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	err := c.do(ctx, http.MethodPost, "/todos/"+url.PathEscape(id)+"/notes", nil, body, &item)
	return item, err
}

func (c *HTTPClient) GetStats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := c.do(ctx, http.MethodGet, "/todos/stats", nil, nil, &stats)
	return stats, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.transportError(ctx, method, path, err)
	}

	c.logger.Debug(ctx, "request finished",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: serverMessage(raw)}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeData(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) transportError(ctx context.Context, method, path string, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// decodeData unmarshals raw into out, looking through a {"data": ...}
// envelope when the server used one. Pages keep their envelope since the
// pagination lives next to the data.
func decodeData(raw []byte, out any) error {
	if _, isPage := out.(*models.Page); !isPage {
		var envelope map[string]json.RawMessage
		if json.Unmarshal(raw, &envelope) == nil {
			if data, ok := envelope["data"]; ok {
				raw = data
			}
		}
	}
	return json.Unmarshal(raw, out)
}

func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
