package services

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

func TestContentService_Get(t *testing.T) {
	api := &mockContentAPI{docs: map[string]string{
		"posts": `{"count": 2, "results": [{"id": 1}, {"id": 2}]}`,
	}}
	svc := NewContentService(api)
	require.True(t, svc.Configured())

	query := url.Values{"lang": {"sl"}}
	body, err := svc.Get(context.Background(), "posts", query)
	require.NoError(t, err)

	doc, ok := body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2.0, doc["count"])
	assert.Len(t, doc["results"], 2)
	assert.Equal(t, []string{"posts"}, api.resources)
	assert.Equal(t, query, api.queries[0])
}

func TestContentService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured", func(t *testing.T) {
		svc := NewContentService(nil)
		assert.False(t, svc.Configured())

		_, err := svc.Get(ctx, "posts", nil)
		assert.ErrorIs(t, err, domain.ErrNotConfigured)
	})

	t.Run("empty resource", func(t *testing.T) {
		api := &mockContentAPI{}
		_, err := NewContentService(api).Get(ctx, "  ", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, api.resources)
	})

	t.Run("fetch failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		api := &mockContentAPI{err: domain.NewFetchError("posts/", 0, cause)}
		_, err := NewContentService(api).Get(ctx, "posts", nil)
		assert.ErrorIs(t, err, domain.ErrFetchFailed)
		assert.ErrorIs(t, err, cause)
	})
}
