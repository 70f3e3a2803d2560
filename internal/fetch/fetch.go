// Package fetch retrieves feed payloads over HTTP with layered retries.
//
// Two independent policies are composed: a connection-level retry with
// exponential backoff that handles transport errors and transient status
// codes (429, 5xx), wrapped by a request-level retry with a fixed delay
// that also catches timeouts and DNS failures. The effective maximum
// attempt count is inner×outer.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"time"

	"mentionwatch/internal/logger"
	"mentionwatch/internal/ratelimit"
	"mentionwatch/internal/retry"
)

// Pool sizing mirrors how many feeds a scan contacts at once.
const (
	maxIdleConns        = 25
	maxIdleConnsPerHost = 15
)

// Config holds the fetcher's network policy. Zero fields get defaults.
type Config struct {
	ConnectTimeout time.Duration // default 5s
	ReadTimeout    time.Duration // default 15s
	UserAgent      string        // default "mentionwatch/2.0"

	ConnectRetries    int           // inner attempts, default 3
	ConnectRetryDelay time.Duration // inner backoff base, default 500ms
	RequestRetries    int           // outer attempts, default 3
	RequestRetryDelay time.Duration // outer fixed delay, default 2s

	HostMinInterval time.Duration // per-host politeness gap, 0 disables
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.ConnectTimeout <= 0 {
		out.ConnectTimeout = 5 * time.Second
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = 15 * time.Second
	}
	if out.UserAgent == "" {
		out.UserAgent = "mentionwatch/2.0"
	}
	if out.ConnectRetries <= 0 {
		out.ConnectRetries = 3
	}
	if out.ConnectRetryDelay <= 0 {
		out.ConnectRetryDelay = 500 * time.Millisecond
	}
	if out.RequestRetries <= 0 {
		out.RequestRetries = 3
	}
	if out.RequestRetryDelay <= 0 {
		out.RequestRetryDelay = 2 * time.Second
	}
	return out
}

// Result is a fetched payload plus the charset the server declared, if any.
type Result struct {
	Body     []byte
	Encoding string
}

// Error wraps a failure for one URL after all retries were exhausted.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Client is the process-scoped fetcher. Construct it once and inject it;
// the underlying connection pool outlives any single scan.
type Client struct {
	http      *http.Client
	limiter   *ratelimit.HostLimiter
	userAgent string
	inner     retry.Config
	outer     retry.Config
}

// NewClient builds a fetcher with a bounded shared connection pool.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.ReadTimeout,
		},
		limiter:   ratelimit.NewHostLimiter(cfg.HostMinInterval),
		userAgent: cfg.UserAgent,
		inner: retry.Config{
			MaxAttempts: cfg.ConnectRetries,
			Delay:       cfg.ConnectRetryDelay,
			Backoff:     true,
		},
		outer: retry.Config{
			MaxAttempts: cfg.RequestRetries,
			Delay:       cfg.RequestRetryDelay,
		},
	}
}

// retryableStatus mirrors the transient codes worth another attempt.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Get fetches rawURL, retrying per the configured policies. All failures
// come back as *Error once both retry budgets are spent.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	if host := hostOf(rawURL); host != "" {
		if err := c.limiter.Wait(ctx, host); err != nil {
			return nil, &Error{URL: rawURL, Err: err}
		}
	}

	var result *Result
	outerErr := retry.WithRetry(ctx, c.outer, func() error {
		return retry.WithRetry(ctx, c.inner, func() error {
			res, err := c.attempt(ctx, rawURL)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
	})
	if outerErr != nil {
		logger.Warn("fetch failed", "url", rawURL, "error", outerErr)
		return nil, &Error{URL: rawURL, Err: outerErr}
	}
	return result, nil
}

// attempt performs a single GET.
func (c *Client) attempt(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if retryableStatus(resp.StatusCode) {
			return nil, statusErr
		}
		return nil, retry.Unrecoverable(statusErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Result{
		Body:     body,
		Encoding: declaredCharset(resp.Header.Get("Content-Type")),
	}, nil
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
