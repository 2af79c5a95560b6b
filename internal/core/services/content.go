package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// ContentService reads documents from the content API.
type ContentService struct {
	api driven.ContentAPI
}

// NewContentService creates a content service. A nil api leaves the
// service unconfigured.
func NewContentService(api driven.ContentAPI) *ContentService {
	return &ContentService{api: api}
}

// Configured reports whether a content endpoint is set.
func (s *ContentService) Configured() bool {
	return s.api != nil
}

// Get returns the decoded JSON body of resource.
func (s *ContentService) Get(ctx context.Context, resource string, query url.Values) (any, error) {
	if s.api == nil {
		return nil, fmt.Errorf("content endpoint: %w", domain.ErrNotConfigured)
	}
	if strings.TrimSpace(resource) == "" {
		return nil, fmt.Errorf("%w: empty content resource", domain.ErrInvalidInput)
	}

	logger.Debug("content: fetching %s", resource)
	var body any
	if err := s.api.Get(ctx, resource, query, &body); err != nil {
		return nil, err
	}
	return body, nil
}
