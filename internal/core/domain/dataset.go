package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DatasetID identifies one of the datasets served by the store.
type DatasetID string

// Known datasets.
const (
	DatasetStats     DatasetID = "stats"
	DatasetHospitals DatasetID = "hospitals"
)

// Datasets lists every known dataset in display order.
var Datasets = []DatasetID{DatasetStats, DatasetHospitals}

// ParseDatasetID validates a dataset identifier.
func ParseDatasetID(s string) (DatasetID, error) {
	switch DatasetID(s) {
	case DatasetStats, DatasetHospitals:
		return DatasetID(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, s)
	}
}

// Dataset is a named collection of daily rows.
// It starts empty and is replaced wholesale on every successful fetch.
type Dataset struct {
	// ID identifies the dataset.
	ID DatasetID

	// Rows holds the records in source order (ascending by date).
	Rows []Row

	// Loaded is set once the first fetch has been committed.
	Loaded bool
}

// Observation is the result of a point-in-time or last-value query.
type Observation struct {
	// Date is the day the value belongs to.
	Date time.Time

	// Value is nil when no value was found.
	Value *Value
}

// Found reports whether the observation carries a value.
func (o Observation) Found() bool {
	return o.Value != nil
}

// MarshalJSON renders {"date": "YYYY-MM-DD", "value": ...}.
func (o Observation) MarshalJSON() ([]byte, error) {
	out := struct {
		Date  *string `json:"date"`
		Value *Value  `json:"value"`
	}{Value: o.Value}
	if !o.Date.IsZero() {
		d := o.Date.Format(DateLayout)
		out.Date = &d
	}
	return json.Marshal(out)
}

// SeriesPoint is one (timestamp, value) pair of a chart series.
type SeriesPoint struct {
	// Timestamp is milliseconds since the epoch at UTC midnight of the row date.
	Timestamp int64

	// Value is the row's value for the requested field.
	Value Value
}

// MarshalJSON renders the point as a two element array.
func (p SeriesPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Timestamp, p.Value})
}

// SeriesTimestamp returns the chart timestamp for a row date.
// Date-only values are interpreted as UTC midnight.
func SeriesTimestamp(date time.Time) int64 {
	if date.IsZero() {
		return 0
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}
