package driving

import (
	"context"
	"net/url"
)

// ContentService reads documents from the content API.
type ContentService interface {
	// Get returns the decoded JSON body of resource.
	// It fails with domain.ErrNotConfigured when no endpoint is set.
	Get(ctx context.Context, resource string, query url.Values) (any, error)

	// Configured reports whether a content endpoint is set.
	Configured() bool
}
