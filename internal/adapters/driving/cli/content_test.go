package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/covidstats/internal/adapters/driven/contentapi"
	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/services"
)

func useContentServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := contentapi.New(srv.URL, time.Second)
	require.NoError(t, err)
	svc.Content = services.NewContentService(api)
}

func TestContentCmd_PrintsJSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	var gotPath, gotLang string
	useContentServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLang = r.URL.Query().Get("lang")
		_, _ = w.Write([]byte(`{"title": "Novice"}`))
	})

	out, err := execute(t, "content", "posts", "--query", "lang=sl")

	require.NoError(t, err)
	assert.Equal(t, "/posts/", gotPath)
	assert.Equal(t, "sl", gotLang)
	assert.Contains(t, out, `"title": "Novice"`)
}

func TestContentCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "content", "posts")

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestContentCmd_BadQuery(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	useContentServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := execute(t, "content", "posts", "-q", "lang")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContentCmd_StatusError(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	useContentServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	})

	_, err := execute(t, "content", "posts")

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}
