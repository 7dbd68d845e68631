// Package mcp exposes the compiled tool catalog over the Model Context
// Protocol, routing tool calls to the slskd REST API.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/slskdtools/slskd-mcp/internal/common"
)

// maxResponseSize caps a proxied response body to prevent OOM from
// unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// Proxy connects MCP tool calls to the slskd REST API.
type Proxy struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewProxy creates a proxy targeting the given slskd instance. The API key
// is injected as an X-API-Key header on every request.
func NewProxy(baseURL, apiKey string, logger *common.Logger) *Proxy {
	return &Proxy{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
		logger: logger,
	}
}

// BaseURL returns the configured slskd URL.
func (p *Proxy) BaseURL() string {
	return p.baseURL
}

// Get performs a GET request against slskd.
func (p *Proxy) Get(ctx context.Context, path string) ([]byte, error) {
	return p.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body against slskd.
func (p *Proxy) Post(ctx context.Context, path string, data any) ([]byte, error) {
	return p.do(ctx, http.MethodPost, path, data)
}

// Put performs a PUT request with a JSON body against slskd.
func (p *Proxy) Put(ctx context.Context, path string, data any) ([]byte, error) {
	return p.do(ctx, http.MethodPut, path, data)
}

// Patch performs a PATCH request with a JSON body against slskd.
func (p *Proxy) Patch(ctx context.Context, path string, data any) ([]byte, error) {
	return p.do(ctx, http.MethodPatch, path, data)
}

// Delete performs a DELETE request against slskd.
func (p *Proxy) Delete(ctx context.Context, path string) ([]byte, error) {
	return p.do(ctx, http.MethodDelete, path, nil)
}

func (p *Proxy) do(ctx context.Context, method, path string, data any) ([]byte, error) {
	p.logger.Debug().Str("method", method).Str("path", path).Msg("proxy request")

	var reqBody io.Reader
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		p.logger.Error().Str("method", method).Str("path", path).
			Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).
			Msg("proxy request failed")
		return nil, fmt.Errorf("slskd request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	p.logger.Debug().Int("status", resp.StatusCode).
		Int64("duration_ms", duration.Milliseconds()).Msg("proxy response")

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

// parseErrorResponse unwraps a structured error body when slskd provides
// one, falling back to the raw body.
func parseErrorResponse(status int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			return fmt.Errorf("slskd returned %d: %s", status, errResp.Message)
		}
		if errResp.Error != "" {
			return fmt.Errorf("slskd returned %d: %s", status, errResp.Error)
		}
	}
	return fmt.Errorf("slskd returned %d: %s", status, string(body))
}
