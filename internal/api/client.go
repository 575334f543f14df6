package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lamim/prdforge/internal/config"
	"github.com/lamim/prdforge/internal/metrics"
)

const (
	// DefaultHTTPTimeout bounds a single call when the model config leaves it unset
	DefaultHTTPTimeout = 300 * time.Second

	// ConnectionTestPrompt is the fixed prompt used to validate a credential
	ConnectionTestPrompt = "Test"

	methodGenerate = "generateContent"
	methodStream   = "streamGenerateContent"

	maxErrorBodyBytes = 64 * 1024
)

// ErrMissingCredential is returned before any network activity when no key is configured
var ErrMissingCredential = errors.New("backend credential is not configured")

// Client talks to a Gemini-compatible generateContent endpoint.
// It never retries: a failed call is reported to the caller as is.
type Client struct {
	httpClient      *http.Client
	rateLimiterPool *RateLimiterPool
	decoder         *Decoder
	modelCfg        config.ModelConfig
	metrics         *metrics.Collector
	logger          *slog.Logger
}

// NewClient creates a new API client for the given model endpoint
func NewClient(modelCfg config.ModelConfig, logger *slog.Logger) *Client {
	return &Client{
		// Per-call deadlines come from the context; see withTimeout
		httpClient:      &http.Client{},
		rateLimiterPool: NewRateLimiterPool(logger),
		decoder:         NewDecoder(logger, DefaultExpectedChars),
		modelCfg:        modelCfg,
		logger:          logger,
	}
}

// SetMetrics attaches a metrics collector
func (c *Client) SetMetrics(m *metrics.Collector) {
	c.metrics = m
}

// SetExpectedChars tunes the streaming progress estimate
func (c *Client) SetExpectedChars(n int) {
	c.decoder = NewDecoder(c.logger, n)
}

// CheckConnection sends the fixed test prompt without generation settings.
// Success is any 2xx status with a parseable JSON body.
func (c *Client) CheckConnection(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return ErrMissingCredential
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req := GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: ConnectionTestPrompt}}}},
	}

	start := time.Now()
	_, err := c.doRequest(ctx, apiKey, methodGenerate, req)
	c.record("check", start, err)
	if err != nil {
		return err
	}

	c.logger.Info("Backend connection verified", "model", c.modelCfg.ModelName)
	return nil
}

// Generate performs a single non-streaming generation call
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingCredential
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.waitForLimiter(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, apiKey, methodGenerate, c.buildRequest(prompt))
	if err == nil && resp.Text() == "" {
		err = ErrEmptyResult
	}
	c.record("generate", start, err)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

// GenerateStream performs a streaming generation call and decodes the
// newline-delimited JSON body, reporting estimated progress as text arrives.
func (c *Client) GenerateStream(ctx context.Context, apiKey, prompt string, onProgress ProgressFunc) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingCredential
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.waitForLimiter(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	text, err := c.doStreamingRequest(ctx, apiKey, c.buildRequest(prompt), onProgress)
	c.record("stream", start, err)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Streaming generation completed",
		"model", c.modelCfg.ModelName,
		"chars", len([]rune(text)),
		"duration_ms", time.Since(start).Milliseconds())

	return text, nil
}

func (c *Client) buildRequest(prompt string) GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			Temperature:     c.modelCfg.Temperature,
			TopK:            c.modelCfg.TopK,
			TopP:            c.modelCfg.TopP,
			MaxOutputTokens: c.modelCfg.MaxOutputTokens,
			CandidateCount:  c.modelCfg.CandidateCount,
		},
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(c.modelCfg.HTTPTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (c *Client) waitForLimiter(ctx context.Context) error {
	if c.modelCfg.RateLimitPerMinute <= 0 {
		return nil
	}
	modelID := c.modelCfg.BaseURL + ":" + c.modelCfg.ModelName
	start := time.Now()
	if err := c.rateLimiterPool.Wait(ctx, modelID, c.modelCfg.RateLimitPerMinute); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}
	if c.metrics != nil {
		c.metrics.RecordRateLimiterWait(c.modelCfg.ModelName, time.Since(start))
	}
	return nil
}

func (c *Client) endpoint(method, apiKey string) string {
	base := strings.TrimRight(c.modelCfg.BaseURL, "/")
	return fmt.Sprintf("%s/models/%s:%s?key=%s", base, url.PathEscape(c.modelCfg.ModelName), method, url.QueryEscape(apiKey))
}

func (c *Client) newHTTPRequest(ctx context.Context, apiKey, method string, req GenerateContentRequest) (*http.Request, func(), error) {
	buf := getBuffer()
	if err := json.NewEncoder(buf).Encode(req); err != nil {
		putBuffer(buf)
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(method, apiKey), bytes.NewReader(buf.Bytes()))
	if err != nil {
		putBuffer(buf)
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("API request", "method", method, "model", c.modelCfg.ModelName, "body_bytes", buf.Len())

	return httpReq, func() { putBuffer(buf) }, nil
}

func (c *Client) doRequest(ctx context.Context, apiKey, method string, req GenerateContentRequest) (*GenerateContentResponse, error) {
	httpReq, release, err := c.newHTTPRequest(ctx, apiKey, method, req)
	if err != nil {
		return nil, err
	}
	defer release()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("request failed: %v", redactKey(err, apiKey))}
	}
	defer func() {
		if err := httpResp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if !isSuccess(httpResp.StatusCode) {
		return nil, newAPIError(httpResp.StatusCode, respBody)
	}

	var resp GenerateContentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &resp, nil
}

func (c *Client) doStreamingRequest(ctx context.Context, apiKey string, req GenerateContentRequest, onProgress ProgressFunc) (string, error) {
	httpReq, release, err := c.newHTTPRequest(ctx, apiKey, methodStream, req)
	if err != nil {
		return "", err
	}
	defer release()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &APIError{Message: fmt.Sprintf("request failed: %v", redactKey(err, apiKey))}
	}
	defer func() {
		if err := httpResp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	// Transport failures are reported before any decoding starts
	if !isSuccess(httpResp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBodyBytes))
		return "", newAPIError(httpResp.StatusCode, body)
	}

	return c.decoder.Decode(ctx, httpResp.Body, onProgress)
}

func (c *Client) record(call string, start time.Time, err error) {
	if c.metrics != nil {
		c.metrics.RecordAPIRequest(call, time.Since(start), err == nil)
	}
	if err != nil {
		c.logger.Warn("API call failed", "call", call, "model", c.modelCfg.ModelName, "error", err)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// redactKey keeps the credential out of url.Error messages
func redactKey(err error, apiKey string) string {
	msg := err.Error()
	if apiKey == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(apiKey), "REDACTED")
	return strings.ReplaceAll(msg, apiKey, "REDACTED")
}

func newAPIError(status int, body []byte) *APIError {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return &APIError{
			Message:    errResp.Error.Message,
			StatusCode: status,
			Status:     errResp.Error.Status,
		}
	}

	return &APIError{
		Message:    fmt.Sprintf("API request failed with status %d: %s", status, strings.TrimSpace(string(body))),
		StatusCode: status,
	}
}

// APIError represents a transport-level failure or a non-2xx response
type APIError struct {
	Message    string
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}
