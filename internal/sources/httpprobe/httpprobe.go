// Package httpprobe implements the single-URL reachability check.
// A probe is one GET request with a fixed timeout; redirects are followed and
// only the final status code is classified.
package httpprobe

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"movielinks/internal/core/domain"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
)

const (
	DefaultTimeout      = 5 * time.Second
	DefaultMaxRedirects = 10

	// drainLimit caps how much of a body is read so the connection can be reused.
	drainLimit = 64 << 10
)

// Options configures a Prober.
type Options struct {
	// Timeout bounds the whole request including redirects and headers.
	Timeout time.Duration

	// MaxRedirects is the number of redirects followed before the last
	// response is classified as is.
	MaxRedirects int

	// ProxyURL routes probes through an HTTP(S) proxy. Empty uses the
	// environment (HTTP_PROXY, HTTPS_PROXY, NO_PROXY).
	ProxyURL string

	// Transport overrides the default transport (tests).
	Transport http.RoundTripper

	Logger logx.Logger
}

// Prober implements ports.Prober over net/http.
type Prober struct {
	client  *http.Client
	timeout time.Duration
	logger  logx.Logger
}

// New builds a Prober. Zero options fall back to defaults.
func New(opts Options) (*Prober, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	transport := opts.Transport
	if transport == nil {
		proxy := http.ProxyFromEnvironment
		if opts.ProxyURL != "" {
			u, err := url.Parse(opts.ProxyURL)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "proxy url %q", opts.ProxyURL)
			}
			proxy = http.ProxyURL(u)
		}
		transport = &http.Transport{
			Proxy: proxy,
			DialContext: (&net.Dialer{
				Timeout:   opts.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       30 * time.Second,
			TLSHandshakeTimeout:   opts.Timeout,
			ResponseHeaderTimeout: opts.Timeout,
			ForceAttemptHTTP2:     true,
		}
	}

	maxRedirects := opts.MaxRedirects
	return &Prober{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		timeout: opts.Timeout,
		logger:  opts.Logger.With("component", "probe"),
	}, nil
}

// Probe sends one GET to rawURL. Any response code is a classification;
// any failure to get a response is StatusError.
func (p *Prober) Probe(ctx context.Context, rawURL, identity string) domain.Outcome {
	start := time.Now()
	out := domain.Outcome{URL: rawURL, Status: domain.StatusError}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		out.Duration = time.Since(start)
		p.logger.Debug("probe request invalid", "url", rawURL, "reason", "url", "error", err.Error())
		return out
	}
	if identity != "" {
		req.Header.Set("User-Agent", identity)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := p.client.Do(req)
	out.Duration = time.Since(start)
	if err != nil {
		p.logger.Debug("probe failed",
			"url", rawURL,
			"reason", FailureReason(err),
			"duration_ms", out.Duration.Milliseconds(),
		)
		return out
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))

	out.Code = resp.StatusCode
	out.Status = domain.ClassifyHTTPStatus(resp.StatusCode)

	p.logger.Debug("probe completed",
		"url", rawURL,
		"status", resp.StatusCode,
		"result", out.Status,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out
}

// Close releases idle connections.
func (p *Prober) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// FailureReason gives a short label for a transport error, for logs.
func FailureReason(err error) string {
	var (
		dnsErr *net.DNSError
		netErr net.Error
		tlsErr *tls.CertificateVerificationError
		recErr tls.RecordHeaderError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &dnsErr):
		return "dns"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "reset"
	case errors.As(err, &tlsErr), errors.As(err, &recErr):
		return "tls"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "transport"
	}
}
