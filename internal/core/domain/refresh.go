package domain

import "time"

// RefreshTask is a dataset refresh registered with the poller.
type RefreshTask struct {
	// Dataset identifies the dataset being refreshed.
	Dataset DatasetID

	// Interval defines how often the fetch runs.
	Interval time.Duration

	// StartedAt is when polling began. The first fetch runs one
	// interval later.
	StartedAt time.Time
}

// RefreshResult represents the outcome of one polled fetch.
type RefreshResult struct {
	// FetchID uniquely identifies the fetch in logs.
	FetchID string

	// Dataset identifies which dataset was fetched.
	Dataset DatasetID

	// StartedAt is when the fetch started.
	StartedAt time.Time

	// EndedAt is when the fetch completed.
	EndedAt time.Time

	// Success indicates whether the fetch was committed.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// Rows is the number of rows committed.
	Rows int
}

// Duration returns how long the fetch took.
func (r RefreshResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
