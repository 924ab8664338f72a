// Package api is the JSON-over-HTTP client shared by the module gateways.
// It performs a single request per call: no retry, no backoff.
package api

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

	apperrors "learnhub/internal/platform/errors"
	"learnhub/internal/platform/id"
)

const RequestIDHeader = "X-Request-ID"

type Client struct {
	baseURL string
	http    *http.Client
	ids     id.Generator
	logger  *zap.Logger
}

// NewClient returns a client for baseURL. A zero timeout means requests are
// bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, ids id.Generator, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		ids:     ids,
		logger:  logger,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// envelope holds the failure discriminants every endpoint may return.
type envelope struct {
	Error   *string `json:"error"`
	Success *bool   `json:"success"`
	Message string  `json:"message"`
}

// Call sends body as JSON and decodes the response into out.
//
// Failures come back in two families: *apperrors.RemoteError when the
// server answered with an {error} body, success=false or a non-2xx status,
// and errors matching apperrors.ErrTransport when the request could not be
// made or the body is not JSON.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	reqID := c.ids.New()
	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
	)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build %s %s: %v", apperrors.ErrTransport, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("read response failed", zap.Error(err))
		return fmt.Errorf("%w: read %s %s: %v", apperrors.ErrTransport, method, path, err)
	}
	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("bytes", len(raw)),
	)

	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		log.Warn("response is not json", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %s %s: malformed json response (status %d)", apperrors.ErrTransport, method, path, resp.StatusCode)
	}

	if remote := remoteFailure(resp.StatusCode, trimmed); remote != nil {
		log.Info("request rejected", zap.Int("status", remote.Status), zap.String("reason", remote.Reason))
		return remote
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", apperrors.ErrTransport, method, path, err)
	}
	return nil
}

func remoteFailure(status int, body []byte) *apperrors.RemoteError {
	env := envelope{}
	if len(body) > 0 && body[0] == '{' {
		_ = json.Unmarshal(body, &env)
	}
	switch {
	case env.Error != nil:
		return &apperrors.RemoteError{Status: status, Reason: *env.Error}
	case env.Success != nil && !*env.Success:
		return &apperrors.RemoteError{Status: status, Reason: env.Message}
	case status >= http.StatusBadRequest:
		reason := env.Message
		if reason == "" {
			reason = http.StatusText(status)
		}
		return &apperrors.RemoteError{Status: status, Reason: reason}
	}
	return nil
}

// Health probes GET /health and returns the reported status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.Call(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}
	if out.Status == "" {
		return "", &apperrors.RemoteError{Reason: "health response has no status"}
	}
	return out.Status, nil
}
