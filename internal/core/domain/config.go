package domain

import "time"

// Default remote CSV resources.
const (
	DefaultStatsURL         = "https://raw.githubusercontent.com/slo-covid-19/data/master/csv/stats.csv"
	DefaultHospitalsURL     = "https://raw.githubusercontent.com/slo-covid-19/data/master/csv/hospitals.csv"
	DefaultHospitalsDictURL = "https://raw.githubusercontent.com/slo-covid-19/data/master/csv/dict-hospitals.csv"
)

// DefaultFallbackLanguages is the translation fallback chain.
var DefaultFallbackLanguages = []string{"en", "sl", "hr", "de", "it"}

// Config holds application configuration.
type Config struct {
	// Sources holds the remote CSV locations.
	Sources SourcesConfig

	// Locale holds localization settings.
	Locale LocaleConfig

	// Refresh holds polling settings.
	Refresh RefreshConfig

	// Dashboard holds terminal dashboard settings.
	Dashboard DashboardConfig
}

// SourcesConfig holds the remote CSV locations and client settings.
type SourcesConfig struct {
	// StatsURL is the national stats time series.
	StatsURL string

	// HospitalsURL is the hospital stats time series.
	HospitalsURL string

	// HospitalsDictURL is the hospital directory.
	HospitalsDictURL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64

	// ContentEndpointBase is the base URL of the JSON content API.
	// Empty disables content requests.
	ContentEndpointBase string
}

// LocaleConfig holds localization settings.
type LocaleConfig struct {
	// DefaultLanguage, when set, skips language detection.
	DefaultLanguage string

	// FallbackLanguages is tried in order when a translation key is missing.
	FallbackLanguages []string

	// Context is the locale context persisted into local storage at startup.
	Context string

	// LocalesDir overrides the embedded translation resources.
	LocalesDir string
}

// RefreshConfig holds polling settings.
type RefreshConfig struct {
	// Interval between polled fetches. Zero disables polling.
	Interval time.Duration
}

// DashboardConfig holds terminal dashboard settings.
type DashboardConfig struct {
	// StatsFields lists the stats columns shown on the dashboard.
	StatsFields []string

	// HospitalFields lists the hospitals columns shown on the dashboard.
	HospitalFields []string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Sources: SourcesConfig{
			StatsURL:         DefaultStatsURL,
			HospitalsURL:     DefaultHospitalsURL,
			HospitalsDictURL: DefaultHospitalsDictURL,
			Timeout:          30 * time.Second,
		},
		Locale: LocaleConfig{
			FallbackLanguages: append([]string(nil), DefaultFallbackLanguages...),
		},
		Refresh: RefreshConfig{
			Interval: 5 * time.Minute,
		},
		Dashboard: DashboardConfig{
			StatsFields: []string{
				"tests.performed",
				"tests.positive",
				"state.in_hospital",
				"state.icu",
				"state.deceased.todate",
			},
			HospitalFields: []string{
				"hospital.in",
				"hospital.out",
				"icu.in",
			},
		},
	}
}

// URLFor returns the time-series URL of a dataset.
func (c SourcesConfig) URLFor(id DatasetID) string {
	switch id {
	case DatasetStats:
		return c.StatsURL
	case DatasetHospitals:
		return c.HospitalsURL
	default:
		return ""
	}
}
