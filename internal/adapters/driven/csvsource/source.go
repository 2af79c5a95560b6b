package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.CSVSource = (*Source)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent is sent with every request.
	UserAgent = "covidstats"
)

// Source fetches CSV files over HTTP.
type Source struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithRateLimit throttles requests to perSecond. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(s *Source) {
		if perSecond <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// New creates a CSV source with the given request timeout.
// A zero timeout uses DefaultTimeout.
func New(timeout time.Duration, opts ...Option) *Source {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Source{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads url and parses it as a CSV document with a header row.
func (s *Source) Fetch(ctx context.Context, url string) (*domain.Table, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, domain.NewFetchError(url, 0, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFetchError(url, 0, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	started := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, domain.NewFetchError(url, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	table, err := Parse(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(url, resp.StatusCode, err)
	}
	logger.Debug("csv: %s: %d records in %s", url, len(table.Records), time.Since(started).Round(time.Millisecond))
	return table, nil
}

// Parse reads a CSV document whose first record is the header.
// Records may have fewer or more fields than the header.
func Parse(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &domain.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := &domain.Table{Header: header}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}
