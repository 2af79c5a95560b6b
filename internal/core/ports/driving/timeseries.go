package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// TimeSeriesQuery is the read side of a dataset.
type TimeSeriesQuery interface {
	// Dataset identifies the dataset.
	Dataset() domain.DatasetID

	// Loaded reports whether a fetch has been committed.
	Loaded() bool

	// Data returns the loaded rows in source order.
	Data() []domain.Row

	// GetValueOn returns field on the day of date.
	// The value is nil when date is zero or no row falls on that day.
	GetValueOn(field string, date time.Time) domain.Observation

	// GetLastValue returns the newest present value of field.
	// When none exists the date is today at midnight and the value nil.
	GetLastValue(field string) domain.Observation
}

// DatasetFetcher refreshes a dataset from its remote source.
type DatasetFetcher interface {
	// Dataset identifies the dataset.
	Dataset() domain.DatasetID

	// FetchData fetches and commits the dataset.
	// On error nothing is committed.
	FetchData(ctx context.Context) error
}

// DatasetService combines the read and refresh sides of a dataset.
type DatasetService interface {
	TimeSeriesQuery
	DatasetFetcher
}

// HospitalsService adds the hospital specific queries.
type HospitalsService interface {
	DatasetService

	// GetSeries returns one (timestamp, value) pair per row.
	GetSeries(field string) []domain.SeriesPoint

	// Hospitals returns the hospital directory.
	Hospitals() domain.HospitalDirectory

	// HospitalName returns the display name of a hospital.
	HospitalName(id string) string
}
