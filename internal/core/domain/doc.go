// Package domain defines the core entities for covidstats.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Row: one daily record of a dataset, keyed by calendar date
//   - Dataset: a named, wholesale-replaceable collection of rows
//   - HospitalDirectory: hospital identifier to display name
//   - Observation / SeriesPoint: results of time-series queries
//   - LocaleContext: the active language and its number separators
//   - ChartOptions: locale-sensitive settings pushed to the charting layer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
