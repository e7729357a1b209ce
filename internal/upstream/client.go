package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/pkg/config"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

// RequestObserver records timing for outbound upstream calls.
type RequestObserver interface {
	ObserveUpstreamRequest(method, path string, status int, duration time.Duration)
}

// Client talks to the education backend on behalf of the portal. Every
// authenticated call carries the caller's token verbatim in the
// Authorization header using the configured scheme (default "Token").
type Client struct {
	baseURL     string
	authScheme  string
	maxBodySize int64
	http        *http.Client
	logger      *zap.Logger
	observer    RequestObserver
}

// NewClient constructs an upstream Client.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, observer RequestObserver) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	scheme := cfg.AuthScheme
	if scheme == "" {
		scheme = "Token"
	}
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = 4 * 1024 * 1024
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		authScheme:  scheme,
		maxBodySize: maxBody,
		http:        &http.Client{Timeout: timeout},
		logger:      logger,
		observer:    observer,
	}
}

// errorBody is the upstream error convention: non-2xx responses carry a JSON
// body with an "error" string surfaced verbatim to the user.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) get(ctx context.Context, token, path string, out interface{}) error {
	return c.do(ctx, token, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, token, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode upstream payload")
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, token, http.MethodPost, path, body, "application/json", out)
}

func (c *Client) do(ctx context.Context, token, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("%s %s", c.authScheme, token))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		if c.observer != nil {
			c.observer.ObserveUpstreamRequest(method, path, 0, duration)
		}
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "backend is unreachable")
	}
	defer resp.Body.Close()

	if c.observer != nil {
		c.observer.ObserveUpstreamRequest(method, path, resp.StatusCode, duration)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}

// mapError converts an upstream failure into the portal error taxonomy.
// HTTP 403 or a message containing "Access denied" maps to PERMISSION_DENIED;
// everything else surfaces the upstream error string verbatim.
func (c *Client) mapError(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	message := strings.TrimSpace(body.Error)
	if message == "" {
		message = http.StatusText(status)
	}

	if status == http.StatusForbidden || strings.Contains(message, "Access denied") {
		return appErrors.Clone(appErrors.ErrPermissionDenied, message)
	}

	clone := appErrors.Clone(appErrors.ErrUpstream, message)
	if status >= 400 && status < 500 {
		clone.Status = status
	}
	return clone
}
