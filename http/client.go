// Package http provides the HTTP client used for direct YouTube endpoints,
// with connection pooling and token-bucket rate limiting.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// UserAgent for HTTP requests.
	UserAgent string

	// RequestsPerSecond caps the request rate. 0 means unlimited.
	RequestsPerSecond float64

	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes int64
}

// DefaultConfig returns sensible defaults aligned with YouTube's limits.
func DefaultConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		UserAgent:         "ytscribe/1.0",
		RequestsPerSecond: 2.5,
		MaxResponseBytes:  32 << 20,
	}
}

// Client wraps an HTTP client with rate limiting.
type Client struct {
	base    *http.Client
	limiter *rate.Limiter
	cfg     *Config
}

// Response holds a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// New creates a new HTTP client with the given configuration.
// A nil config uses defaults.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		base: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter: limiter,
		cfg:     cfg,
	}
}

// Get performs a rate-limited GET request and reads the full body.
// Non-2xx responses are returned, not treated as errors; callers map
// status codes to their own error taxonomy.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.base.CloseIdleConnections()
	return nil
}
