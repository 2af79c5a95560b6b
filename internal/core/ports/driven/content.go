package driven

import (
	"context"
	"net/url"
)

// ContentAPI reads JSON documents from the content endpoint.
type ContentAPI interface {
	// Get requests resource relative to the endpoint base and decodes the
	// JSON body into out. Resource paths are sent with a trailing slash.
	// Failures are returned as *domain.FetchError.
	Get(ctx context.Context, resource string, query url.Values, out any) error
}
