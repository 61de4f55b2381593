// Package client is the typed HTTP client for the wbs REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"wbsplanner/pkg/trace"
)

// BasePath is appended to the configured server URL.
const BasePath = "/api/v1"

// RouteLogin is where the client navigates after a 401.
const RouteLogin = "/login"

// TokenStore holds the bearer token between runs.
type TokenStore interface {
	Token() string
	Clear() error
}

// Navigator switches the visible screen.
type Navigator interface {
	Navigate(route string)
}

type Config struct {
	ServerURL string
	Timeout   time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	nav        Navigator
	logger     *zap.Logger
}

// New builds a client. tokens and nav may be nil.
func New(cfg Config, tokens TokenStore, nav Navigator, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/") + BasePath,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		nav:        nav,
		logger:     logger,
	}
}

// BaseURL returns the API root including BasePath.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	resp, body, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response (status %d): %w", method, path, resp.StatusCode, err)
	}
	return nil
}

// send performs the request and returns the response with its body fully read.
// Non-2xx statuses become *APIError.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, in any) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if traceID := trace.FromContext(ctx); traceID != "" {
		req.Header.Set(trace.HeaderName, traceID)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("HTTP request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	c.logger.Debug("HTTP request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, body)
		c.logger.Warn("API error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)
		return resp, body, apiErr
	}
	return resp, body, nil
}

// unauthorized drops the stored token and sends the user to the login screen.
func (c *Client) unauthorized() {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Warn("Failed to clear token", zap.Error(err))
		}
	}
	if c.nav != nil {
		c.nav.Navigate(RouteLogin)
	}
}
