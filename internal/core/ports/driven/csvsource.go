package driven

import (
	"context"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// CSVSource fetches a remote CSV resource and parses it into a table,
// using the first row as the header.
type CSVSource interface {
	// Fetch downloads and parses url.
	// Failures are returned as *domain.FetchError.
	Fetch(ctx context.Context, url string) (*domain.Table, error)
}
