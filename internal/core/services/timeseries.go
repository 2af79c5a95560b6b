package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// timeSeries holds one dataset and answers the point-in-time queries
// shared by every store. Commits replace the whole row slice, so a
// slice returned to a reader is never mutated afterwards.
type timeSeries struct {
	mu      sync.RWMutex
	dataset domain.Dataset
	now     func() time.Time
}

func newTimeSeries(id domain.DatasetID) *timeSeries {
	return &timeSeries{
		dataset: domain.Dataset{ID: id, Rows: []domain.Row{}},
		now:     time.Now,
	}
}

// Dataset identifies the dataset.
func (ts *timeSeries) Dataset() domain.DatasetID {
	return ts.dataset.ID
}

// Loaded reports whether a fetch has been committed.
func (ts *timeSeries) Loaded() bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.dataset.Loaded
}

// Data returns the loaded rows in source order.
func (ts *timeSeries) Data() []domain.Row {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.dataset.Rows
}

// GetValueOn returns field on the day of date. Days are compared by
// calendar date only; a zero date yields a nil value.
func (ts *timeSeries) GetValueOn(field string, date time.Time) domain.Observation {
	obs := domain.Observation{Date: date}
	if date.IsZero() {
		return obs
	}
	for _, row := range ts.Data() {
		if !domain.SameDay(row.Date, date) {
			continue
		}
		if v, ok := row.Get(field); ok {
			obs.Value = &v
		}
		return obs
	}
	return obs
}

// GetLastValue scans from the newest row and returns the first truthy
// value of field. Coerced zeros count as absent.
func (ts *timeSeries) GetLastValue(field string) domain.Observation {
	rows := ts.Data()
	for i := len(rows) - 1; i >= 0; i-- {
		v, ok := rows[i].Get(field)
		if !ok || !v.Truthy() {
			continue
		}
		return domain.Observation{Date: rows[i].Date, Value: &v}
	}
	return domain.Observation{Date: domain.Midnight(ts.now())}
}

// setData replaces the rows wholesale and marks the dataset loaded.
// commit, when set, runs under the same lock so companion state swaps
// together with the rows.
func (ts *timeSeries) setData(rows []domain.Row, commit func()) {
	if rows == nil {
		rows = []domain.Row{}
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.dataset.Rows = rows
	ts.dataset.Loaded = true
	if commit != nil {
		commit()
	}
}
