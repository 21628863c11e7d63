package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nucleus/catalog-api/internal/requestid"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig configures the HTTP client behavior.
type ClientConfig struct {
	// BaseURL is the base URL for all requests.
	BaseURL string

	// Timeout for individual requests. Zero means no timeout.
	Timeout time.Duration

	// RateLimit requests per second. Zero means unlimited.
	RateLimit float64

	// RateBurst maximum burst size (default: 10).
	RateBurst int

	// Headers to add to all requests.
	Headers map[string]string

	// UserAgent string (default: "catalog-api/1.0").
	UserAgent string

	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper

	// Logger receives one debug line per request. Nil disables logging.
	Logger *zap.Logger

	// Metrics records request counts and latencies. Nil disables metrics.
	Metrics *Metrics
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

// Client is a thin, optionally rate-limited HTTP client bound to one base URL.
type Client struct {
	config      ClientConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new HTTP client with the given configuration.
func NewClient(config ClientConfig) *Client {
	if config.RateBurst == 0 {
		config.RateBurst = 10
	}
	if config.UserAgent == "" {
		config.UserAgent = "catalog-api/1.0"
	}

	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		rateLimiter: rate.NewLimiter(limit, config.RateBurst),
		logger:      logger,
	}
}

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// Request represents an HTTP request to be made.
type Request struct {
	// Operation names the logical call for logs and metrics.
	Operation string
	Method    string
	Path      string
	Query     url.Values
}

// Response wraps a successful HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// JSON unmarshals the response body into the given target.
func (r *Response) JSON(target any) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// =============================================================================
// CLIENT METHODS
// =============================================================================

// Do executes a single request. A non-2xx status yields *HTTPError and a
// network fault yields *TransportError. Nothing is retried.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.doOnce(ctx, req)
	elapsed := time.Since(start)

	status := "transport_error"
	switch {
	case resp != nil:
		status = strconv.Itoa(resp.StatusCode)
	case err != nil:
		if httpErr, ok := AsHTTPError(err); ok {
			status = strconv.Itoa(httpErr.StatusCode)
		}
	}
	c.config.Metrics.observe(req.Operation, status, elapsed)

	fields := []zap.Field{
		zap.String("operation", req.Operation),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("status", status),
		zap.Duration("latency", elapsed),
		zap.String("request_id", requestid.FromContext(ctx)),
	}
	if err != nil {
		c.logger.Warn("upstream request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	c.logger.Debug("upstream request", fields...)
	return resp, nil
}

// doOnce executes a single request attempt.
func (c *Client) doOnce(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.config.BaseURL
	if req.Path != "" {
		fullURL = strings.TrimSuffix(fullURL, "/") + "/" + strings.TrimPrefix(req.Path, "/")
	}
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Method:     req.Method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, operation, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      path,
		Query:     query,
	})
}

// Patch performs a PATCH request without a payload.
func (c *Client) Patch(ctx context.Context, operation, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Operation: operation,
		Method:    http.MethodPatch,
		Path:      path,
	})
}

// GetJSON fetches path and unmarshals the body into target.
func (c *Client) GetJSON(ctx context.Context, operation, path string, target any) error {
	resp, err := c.Get(ctx, operation, path, nil)
	if err != nil {
		return err
	}
	return resp.JSON(target)
}
