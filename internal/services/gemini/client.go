// Package gemini is the gateway to Google's File Search API. The store
// management plane (stores, documents, uploads, operations) talks to the
// v1beta REST surface directly so upstream status codes and error payloads
// pass through verbatim; queries go through the genai SDK.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/models"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// DefaultBaseURL is the Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// apiVersion is the REST API version for File Search resources.
	apiVersion = "v1beta"
)

// Client is the File Search gateway. It is constructed once in the
// composition root and injected into handlers; the credential is immutable
// for the process lifetime so the client is safe to share without locking.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	logger       arbor.ILogger
	limiter      *rate.Limiter
	genaiClient  *genai.Client
	defaultModel string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (used by tests to point at a fake
// upstream).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom outbound rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithGenaiClient injects a pre-built genai client (used by tests).
func WithGenaiClient(client *genai.Client) ClientOption {
	return func(c *Client) {
		c.genaiClient = client
	}
}

// NewClient creates the gateway from configuration. The API key is required;
// callers are expected to have validated configuration at startup.
func NewClient(cfg *common.GeminiConfig, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:      rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		defaultModel: cfg.DefaultModel,
	}

	if cfg.BaseURL != "" {
		c.baseURL = cfg.BaseURL
	}
	if timeout := cfg.TransportTimeout(); timeout > 0 {
		c.httpClient.Timeout = timeout
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}
	if c.defaultModel == "" {
		c.defaultModel = models.DefaultModel
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.genaiClient == nil {
		genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize genai client: %w", err)
		}
		c.genaiClient = genaiClient
	}

	return c, nil
}

// upstreamError is the raw remote failure before wrapping with call context.
type upstreamError struct {
	StatusCode int
	Message    string
	Details    interface{}
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("gemini API error: %s (status %d)", e.Message, e.StatusCode)
}

// errorBody is the standard Google API error envelope.
type errorBody struct {
	Error struct {
		Code    int           `json:"code"`
		Message string        `json:"message"`
		Status  string        `json:"status"`
		Details []interface{} `json:"details"`
	} `json:"error"`
}

// do executes a request against the REST surface and decodes the response
// into result (which may be nil for delete calls).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait failed: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s", c.baseURL, apiVersion, path)
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Msg("Gemini API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if result == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// decodeError turns a non-2xx response into an upstreamError, preserving the
// upstream message and details when the body carries the standard envelope.
func (c *Client) decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		return &upstreamError{
			StatusCode: resp.StatusCode,
			Message:    body.Error.Message,
			Details:    body.Error.Details,
		}
	}

	return &upstreamError{
		StatusCode: resp.StatusCode,
		Message:    string(data),
	}
}

// wrapError normalizes any transport failure into a *models.ApiError with
// call context. Quota errors are distinguished so the UI can offer recovery;
// everything else passes the upstream status through (default 500).
func (c *Client) wrapError(action string, err error) error {
	if upErr, ok := err.(*upstreamError); ok {
		message := fmt.Sprintf("Failed to %s: %s", action, upErr.Message)
		if upErr.StatusCode == http.StatusTooManyRequests || IsRateLimitError(upErr) {
			return models.NewQuotaExceededError(quotaMessage(upErr.Message), upErr.Details)
		}
		return models.NewUpstreamError(message, upErr.StatusCode, upErr.Details)
	}
	return models.NewUpstreamError(fmt.Sprintf("Failed to %s: %s", action, err.Error()), 500, nil)
}
