package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/covidstats/internal/adapters/driving/cli"
	"github.com/custodia-labs/covidstats/internal/core/domain"
)

func newDataServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string]string{
		"/stats.csv":          "date,tests.performed\n2020-03-04,1000\n2020-03-05,1234\n",
		"/hospitals.csv":      "date,hospital.in\n2020-03-04,2\n2020-03-05,0\n",
		"/dict-hospitals.csv": "id,name\nukclj,UKC Ljubljana\n",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"COVIDSTATS_DEFAULT_LANGUAGE", "COVIDSTATS_LOCALE_CONTEXT", "COVIDSTATS_REFRESH_SECONDS",
		"COVIDSTATS_LOCALES_DIR", "COVIDSTATS_STATS_URL", "COVIDSTATS_HOSPITALS_URL",
		"COVIDSTATS_CONTENT_ENDPOINT_BASE",
		"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestNewServices_WiresDatasets(t *testing.T) {
	home := isolate(t)
	srv := newDataServer(t)
	path := writeConfig(t, fmt.Sprintf(`
[sources]
stats_url = "%[1]s/stats.csv"
hospitals_url = "%[1]s/hospitals.csv"
hospitals_dict_url = "%[1]s/dict-hospitals.csv"

[locale]
context = "SI"
`, srv.URL))

	s, err := newServices(cli.Options{ConfigPath: path, Language: "sl"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Stats.FetchData(ctx))
	require.NoError(t, s.Hospitals.FetchData(ctx))

	obs := s.Stats.GetLastValue("tests.performed")
	require.True(t, obs.Found())
	assert.Equal(t, "1234", obs.Value.Raw)
	assert.Equal(t, "UKC Ljubljana", s.Hospitals.HospitalName("ukclj"))
	assert.Equal(t, "2020-03-04", s.Hospitals.GetLastValue("hospital.in").Date.Format(domain.DateLayout))

	lc := s.Locale.Context()
	assert.Equal(t, "sl", lc.Language)
	assert.Equal(t, ",", lc.Separators.Decimal)
	assert.Contains(t, s.Languages, "sl")
	assert.NotNil(t, s.Metrics)
	assert.Nil(t, s.WatchLocales)
	assert.False(t, s.Content.Configured())

	storage, err := os.ReadFile(filepath.Join(home, ".covidstats", "storage.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(storage), "SI")
	assert.Contains(t, string(storage), "sl")
}

func TestNewServices_ContentEndpoint(t *testing.T) {
	isolate(t)
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"slug": "about"}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("COVIDSTATS_CONTENT_ENDPOINT_BASE", srv.URL+"/api")

	s, err := newServices(cli.Options{ConfigPath: writeConfig(t, "")})
	require.NoError(t, err)
	require.True(t, s.Content.Configured())

	body, err := s.Content.Get(context.Background(), "pages/about", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/pages/about/", gotPath)
	assert.Equal(t, map[string]any{"slug": "about"}, body)
}

func TestNewServices_InvalidContentEndpoint(t *testing.T) {
	isolate(t)
	t.Setenv("COVIDSTATS_CONTENT_ENDPOINT_BASE", "not a url")

	_, err := newServices(cli.Options{ConfigPath: writeConfig(t, "")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewServices_RemembersLanguage(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "")

	_, err := newServices(cli.Options{ConfigPath: path, Language: "de"})
	require.NoError(t, err)

	s, err := newServices(cli.Options{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "de", s.Locale.Context().Language)
}

func TestNewServices_DefaultLanguageSkipsDetection(t *testing.T) {
	isolate(t)
	t.Setenv("LANG", "hr_HR.UTF-8")
	path := writeConfig(t, "[locale]\ndefault_language = \"it\"\n")

	s, err := newServices(cli.Options{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "it", s.Locale.Context().Language)
}

func TestNewServices_DetectsFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("LANG", "hr_HR.UTF-8")

	s, err := newServices(cli.Options{ConfigPath: writeConfig(t, "")})
	require.NoError(t, err)
	assert.Equal(t, "hr-HR", s.Locale.Context().Language)
}

func TestNewServices_UntranslatedLanguageFallsBack(t *testing.T) {
	isolate(t)
	t.Setenv("LANG", "ja_JP.UTF-8")

	s, err := newServices(cli.Options{ConfigPath: writeConfig(t, "")})
	require.NoError(t, err)
	assert.Equal(t, "en", s.Locale.Context().Language)
}

func TestNewServices_LocalesDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"),
		[]byte(`{"dashboard": {"title": "Custom title"}}`), 0600))
	path := writeConfig(t, fmt.Sprintf("[locale]\nlocales_dir = %q\n", dir))

	s, err := newServices(cli.Options{ConfigPath: path, Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Custom title", s.Translator.T("en", "dashboard.title", nil))
	assert.NotNil(t, s.WatchLocales)
}

func TestNewServices_BadConfig(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[refresh]\ninterval = \"soon\"\n")

	_, err := newServices(cli.Options{ConfigPath: path})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
