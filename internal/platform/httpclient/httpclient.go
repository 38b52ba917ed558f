// Package httpclient provides the HTTP client used for outbound API calls,
// with rate limiting, timeouts and credential redaction. Requests are
// single-attempt.
package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/rate"
)

// Client wraps http.Client with rate limiting and logging.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the request timeout duration.
	// Default: 10 seconds
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	// Default: "movielinks/1.0"
	UserAgent string

	// RateLimit is the maximum requests per second.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// MaxBodyBytes caps how much of a response body ReadBody keeps.
	// Default: 2 MiB
	MaxBodyBytes int64

	// Transport overrides the default transport.
	Transport http.RoundTripper
}

const (
	defaultTimeout      = 10 * time.Second
	defaultUserAgent    = "movielinks/1.0"
	defaultMaxBodyBytes = 2 << 20
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        defaultTimeout,
		UserAgent:      defaultUserAgent,
		RateLimitBurst: 1,
		MaxBodyBytes:   defaultMaxBodyBytes,
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 1
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	if logger == nil {
		logger = logx.New()
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: config.Transport,
	}

	var rateLimiter *rate.Limiter
	if config.RateLimit > 0 {
		rateLimiter = rate.New(config.RateLimit, config.RateLimitBurst)
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}
}

// Request performs one HTTP request after waiting on the rate limiter.
// Credential query parameters are masked in every log line and error.
func (c *Client) Request(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string) (*http.Response, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.Join(errors.ErrRateLimit, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "build request %s %s: %v", method, redact(rawURL), scrubURL(err))
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		err = scrubURL(err)
		c.logger.Warn("HTTP request failed",
			"method", method,
			"url", redact(rawURL),
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return nil, errors.Join(errors.ErrTimeout, err)
		}
		return nil, errors.Wrapf(err, "%s %s", method, redact(rawURL))
	}

	c.logger.Debug("HTTP response received",
		"method", method,
		"url", redact(rawURL),
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	return c.Request(ctx, http.MethodGet, rawURL, nil, headers)
}

// ReadBody reads at most MaxBodyBytes of the body and closes it.
func (c *Client) ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// CheckStatus validates the HTTP status code and returns an error if it's not successful.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	default:
		return errors.Wrapf(errors.ErrInvalidResponse, "HTTP %d", resp.StatusCode)
	}
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

type timeoutError interface{ Timeout() bool }

func isTimeout(err error) bool {
	var te timeoutError
	return errors.As(err, &te) && te.Timeout()
}
