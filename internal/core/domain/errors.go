package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownDataset indicates a dataset identifier other than stats or hospitals.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrUnsupportedLocale indicates a locale that cannot be parsed as a BCP 47 tag.
	ErrUnsupportedLocale = errors.New("unsupported locale")

	// ErrFetchFailed indicates a remote resource could not be fetched or parsed.
	// Every *FetchError matches it with errors.Is.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrMissingColumn indicates a CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrNotConfigured indicates an optional remote endpoint has no base URL.
	ErrNotConfigured = errors.New("not configured")
)

// FetchError describes a failed fetch of a remote CSV or JSON resource.
// It is never retried; the dataset keeps its last good state.
type FetchError struct {
	// Dataset is the dataset the fetch was for, if known.
	Dataset DatasetID

	// URL is the requested resource.
	URL string

	// Status is the HTTP status code, or 0 when no response was received.
	Status int

	// Err is the underlying cause.
	Err error
}

// NewFetchError creates a FetchError for url wrapping err.
func NewFetchError(url string, status int, err error) *FetchError {
	return &FetchError{URL: url, Status: status, Err: err}
}

// Error implements error.
func (e *FetchError) Error() string {
	prefix := "fetch " + e.URL
	if e.Dataset != "" {
		prefix = fmt.Sprintf("fetch %s (%s)", e.URL, e.Dataset)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", prefix, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
