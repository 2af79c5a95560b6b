package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvDefaultLanguage, EnvLocaleContext, EnvRefreshSeconds,
		EnvLocalesDir, EnvStatsURL, EnvHospitalsURL, EnvContentEndpoint,
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[sources]
stats_url = "http://localhost/stats.csv"
timeout = "5s"
requests_per_second = 2.5
content_endpoint_base = "https://content.example.test/api"

[locale]
default_language = "sl"
fallback_languages = ["sl", "en"]
context = "SI"

[refresh]
interval = "1m"

[dashboard]
hospital_fields = ["icu.in"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost/stats.csv", cfg.Sources.StatsURL)
	assert.Equal(t, domain.DefaultHospitalsURL, cfg.Sources.HospitalsURL)
	assert.Equal(t, 5*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, 2.5, cfg.Sources.RequestsPerSecond)
	assert.Equal(t, "https://content.example.test/api", cfg.Sources.ContentEndpointBase)
	assert.Equal(t, "sl", cfg.Locale.DefaultLanguage)
	assert.Equal(t, []string{"sl", "en"}, cfg.Locale.FallbackLanguages)
	assert.Equal(t, "SI", cfg.Locale.Context)
	assert.Equal(t, time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, []string{"icu.in"}, cfg.Dashboard.HospitalFields)
	assert.Equal(t, domain.DefaultConfig().Dashboard.StatsFields, cfg.Dashboard.StatsFields)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[locale]\ndefault_language = \"sl\"\n")
	t.Setenv(EnvDefaultLanguage, "de")
	t.Setenv(EnvRefreshSeconds, "90")
	t.Setenv(EnvLocalesDir, "/tmp/locales")
	t.Setenv(EnvLocaleContext, "HR")
	t.Setenv(EnvContentEndpoint, "https://cms.example.test/")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://cms.example.test/", cfg.Sources.ContentEndpointBase)

	assert.Equal(t, "de", cfg.Locale.DefaultLanguage)
	assert.Equal(t, 90*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, "/tmp/locales", cfg.Locale.LocalesDir)
	assert.Equal(t, "HR", cfg.Locale.Context)
}

func TestLoadConfig_InvalidRefreshEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRefreshSeconds, "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[refresh]\ninterval = \"often\"\n")

	_, err := LoadConfig(path)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[sources\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
