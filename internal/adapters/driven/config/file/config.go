package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// ConfigFile is the name of the configuration file.
const ConfigFile = "config.toml"

// Environment variables that override the configuration file.
const (
	EnvDefaultLanguage = "COVIDSTATS_DEFAULT_LANGUAGE"
	EnvLocaleContext   = "COVIDSTATS_LOCALE_CONTEXT"
	EnvRefreshSeconds  = "COVIDSTATS_REFRESH_SECONDS"
	EnvLocalesDir      = "COVIDSTATS_LOCALES_DIR"
	EnvStatsURL        = "COVIDSTATS_STATS_URL"
	EnvHospitalsURL    = "COVIDSTATS_HOSPITALS_URL"
	EnvContentEndpoint = "COVIDSTATS_CONTENT_ENDPOINT_BASE"
)

// fileConfig mirrors config.toml. Durations are Go duration strings.
type fileConfig struct {
	Sources struct {
		StatsURL          string   `toml:"stats_url"`
		HospitalsURL      string   `toml:"hospitals_url"`
		HospitalsDictURL  string   `toml:"hospitals_dict_url"`
		Timeout           string   `toml:"timeout"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
		ContentEndpoint   string   `toml:"content_endpoint_base"`
	} `toml:"sources"`
	Locale struct {
		DefaultLanguage   string   `toml:"default_language"`
		FallbackLanguages []string `toml:"fallback_languages"`
		Context           string   `toml:"context"`
		LocalesDir        string   `toml:"locales_dir"`
	} `toml:"locale"`
	Refresh struct {
		Interval string `toml:"interval"`
	} `toml:"refresh"`
	Dashboard struct {
		StatsFields    []string `toml:"stats_fields"`
		HospitalFields []string `toml:"hospital_fields"`
	} `toml:"dashboard"`
}

// DefaultConfigPath returns ~/.covidstats/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// LoadConfig builds the configuration from defaults, the TOML file at path
// and the environment, in that order. A .env file in the working directory
// is loaded into the environment first. An empty path uses the default
// location; a missing file is not an error.
func LoadConfig(path string) (domain.Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("config: no .env file loaded: %v", err)
	}

	cfg := domain.DefaultConfig()

	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Debug("config: %s not found, using defaults", path)
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		var fc fileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		if err := merge(&cfg, &fc); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func merge(cfg *domain.Config, fc *fileConfig) error {
	setString(&cfg.Sources.StatsURL, fc.Sources.StatsURL)
	setString(&cfg.Sources.HospitalsURL, fc.Sources.HospitalsURL)
	setString(&cfg.Sources.HospitalsDictURL, fc.Sources.HospitalsDictURL)
	setString(&cfg.Sources.ContentEndpointBase, fc.Sources.ContentEndpoint)
	if fc.Sources.Timeout != "" {
		d, err := time.ParseDuration(fc.Sources.Timeout)
		if err != nil {
			return fmt.Errorf("%w: sources.timeout: %v", domain.ErrInvalidInput, err)
		}
		cfg.Sources.Timeout = d
	}
	if fc.Sources.RequestsPerSecond != nil {
		cfg.Sources.RequestsPerSecond = *fc.Sources.RequestsPerSecond
	}

	setString(&cfg.Locale.DefaultLanguage, fc.Locale.DefaultLanguage)
	setString(&cfg.Locale.Context, fc.Locale.Context)
	setString(&cfg.Locale.LocalesDir, fc.Locale.LocalesDir)
	if len(fc.Locale.FallbackLanguages) > 0 {
		cfg.Locale.FallbackLanguages = fc.Locale.FallbackLanguages
	}

	if fc.Refresh.Interval != "" {
		d, err := time.ParseDuration(fc.Refresh.Interval)
		if err != nil {
			return fmt.Errorf("%w: refresh.interval: %v", domain.ErrInvalidInput, err)
		}
		cfg.Refresh.Interval = d
	}

	if len(fc.Dashboard.StatsFields) > 0 {
		cfg.Dashboard.StatsFields = fc.Dashboard.StatsFields
	}
	if len(fc.Dashboard.HospitalFields) > 0 {
		cfg.Dashboard.HospitalFields = fc.Dashboard.HospitalFields
	}
	return nil
}

func applyEnv(cfg *domain.Config) error {
	setString(&cfg.Locale.DefaultLanguage, os.Getenv(EnvDefaultLanguage))
	setString(&cfg.Locale.Context, os.Getenv(EnvLocaleContext))
	setString(&cfg.Locale.LocalesDir, os.Getenv(EnvLocalesDir))
	setString(&cfg.Sources.StatsURL, os.Getenv(EnvStatsURL))
	setString(&cfg.Sources.HospitalsURL, os.Getenv(EnvHospitalsURL))
	setString(&cfg.Sources.ContentEndpointBase, os.Getenv(EnvContentEndpoint))

	if v := strings.TrimSpace(os.Getenv(EnvRefreshSeconds)); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidInput, EnvRefreshSeconds, v, err)
		}
		cfg.Refresh.Interval = time.Duration(secs) * time.Second
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
