package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Header names and values sent with every request
const (
	BypassHeader      = "ngrok-skip-browser-warning"
	BypassHeaderValue = "true"
	maxResponseBytes  = 16 << 20
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the API origin, e.g. "https://example.ngrok-free.app".
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
	// Images opens local image URIs for multipart uploads. If nil,
	// StorageOpener is used.
	Images ImageOpener
}

// Client talks to the Scrolly backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	images     ImageOpener
}

// NewClient creates a new API client
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	images := config.Images
	if images == nil {
		images = StorageOpener{}
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		images:     images,
	}, nil
}

// BaseURL returns the API origin without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveImageURL resolves a server image reference against the client's
// base URL.
func (c *Client) ResolveImageURL(raw string) string {
	return ResolveImageURL(c.baseURL, raw)
}

// doJSON sends requestBody as JSON (when non-nil) and returns the raw
// success body.
func (c *Client) doJSON(ctx context.Context, method, path, token string, requestBody any) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.doRequest(ctx, method, path, token, contentType, body)
}

// doRequest performs an HTTP request and maps failures to ServerError or
// TransportError.
func (c *Client) doRequest(ctx context.Context, method, path, token, contentType string, body io.Reader) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	request.Header.Set(BypassHeader, BypassHeaderValue)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("read response: %w", err)}
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	serverErr := newServerError(response.StatusCode, responseBody)
	c.logger.Info("request rejected",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"message", serverErr.Message,
	)
	return nil, serverErr
}
