package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ContentAPI = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent is sent with every request.
	UserAgent = "covidstats"

	// maxBodySize bounds a decoded response body.
	maxBodySize = 10 << 20
)

// Client is an HTTP client for the content API.
type Client struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithRateLimit throttles requests to perSecond. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(cl *Client) {
		if perSecond > 0 {
			cl.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// New creates a client for the endpoint at base. A zero timeout uses
// DefaultTimeout.
func New(base string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: content endpoint base %q", domain.ErrInvalidInput, base)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		base:    u.String(),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Base returns the endpoint base URL.
func (c *Client) Base() string {
	return c.base
}

// Get requests resource and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, resource string, query url.Values, out any) error {
	target := c.ResolveURL(resource)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.NewFetchError(target, 0, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.NewFetchError(target, 0, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.NewFetchError(target, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return domain.NewFetchError(target, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return domain.NewFetchError(target, resp.StatusCode, fmt.Errorf("decode JSON: %w", err))
	}
	logger.Debug("content: %s: %s", target, resp.Status)
	return nil
}

// ResolveURL joins resource to the base URL and appends a trailing slash
// when missing. Absolute resource URLs are used as given, still with the
// trailing slash rule applied.
func (c *Client) ResolveURL(resource string) string {
	resource = WithTrailingSlash(resource)
	if u, err := url.Parse(resource); err == nil && u.IsAbs() {
		return resource
	}
	return strings.TrimRight(c.base, "/") + "/" + strings.TrimLeft(resource, "/")
}

// WithTrailingSlash appends a slash to resource unless it already ends in one.
func WithTrailingSlash(resource string) string {
	if strings.HasSuffix(resource, "/") {
		return resource
	}
	return resource + "/"
}
