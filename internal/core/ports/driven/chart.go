package driven

import (
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// ChartConfigSink receives the charting layer's global configuration.
// Adapters forward the settings to the charting library.
type ChartConfigSink interface {
	// SetOptions replaces the global chart options.
	SetOptions(opts domain.ChartOptions)

	// RegisterDateFormat adds a custom %-token to the date-format vocabulary.
	RegisterDateFormat(token rune, fn domain.DateFormatFunc)
}

// DateFormatter renders dates with %-token format strings.
type DateFormatter interface {
	// DateFormat renders t using format.
	DateFormat(format string, t time.Time) string
}
