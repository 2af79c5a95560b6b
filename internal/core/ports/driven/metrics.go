package driven

import (
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// FetchRecorder records the outcome of dataset fetches.
type FetchRecorder interface {
	// RecordFetch records one fetch attempt of dataset.
	RecordFetch(dataset domain.DatasetID, duration time.Duration, rows int, err error)
}
