package services

import (
	"context"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure HospitalsStore implements the interface.
var _ driving.HospitalsService = (*HospitalsStore)(nil)

// HospitalsStore holds the hospital stats dataset and the hospital directory.
// Every non-date cell is coerced to a number at parse time.
type HospitalsStore struct {
	*timeSeries
	source   driven.CSVSource
	url      string
	dictURL  string
	recorder driven.FetchRecorder

	// directory is guarded by timeSeries.mu.
	directory domain.HospitalDirectory
}

// NewHospitalsStore creates an empty hospitals store fetching the series
// from url and the directory from dictURL. recorder may be nil.
func NewHospitalsStore(source driven.CSVSource, url, dictURL string, recorder driven.FetchRecorder) *HospitalsStore {
	return &HospitalsStore{
		timeSeries: newTimeSeries(domain.DatasetHospitals),
		source:     source,
		url:        url,
		dictURL:    dictURL,
		recorder:   recorder,
		directory:  domain.HospitalDirectory{},
	}
}

// FetchData fetches the hospitals series and then the directory.
// Both requests must succeed before anything is committed.
func (h *HospitalsStore) FetchData(ctx context.Context) error {
	started := time.Now()
	logger.Debug("hospitals: fetching %s", h.url)

	rows, err := fetchRows(ctx, h.source, domain.DatasetHospitals, h.url, domain.NumericCells)
	if err != nil {
		record(h.recorder, domain.DatasetHospitals, started, 0, err)
		return err
	}

	logger.Debug("hospitals: fetching directory %s", h.dictURL)
	table, err := fetchTable(ctx, h.source, domain.DatasetHospitals, h.dictURL)
	if err == nil {
		var dir domain.HospitalDirectory
		dir, err = domain.ParseHospitalDirectory(table)
		if err != nil {
			err = &domain.FetchError{Dataset: domain.DatasetHospitals, URL: h.dictURL, Err: err}
		} else {
			h.SetData(rows, dir)
		}
	}
	if err != nil {
		record(h.recorder, domain.DatasetHospitals, started, 0, err)
		return err
	}

	record(h.recorder, domain.DatasetHospitals, started, len(rows), nil)
	logger.Debug("hospitals: committed %d rows, %d hospitals", len(rows), len(h.Hospitals()))
	return nil
}

// SetData replaces the rows and the directory wholesale in one commit.
// A nil directory leaves the current one in place.
func (h *HospitalsStore) SetData(rows []domain.Row, directory domain.HospitalDirectory) {
	h.setData(rows, func() {
		if directory != nil {
			h.directory = directory
		}
	})
}

// GetSeries returns one (timestamp, value) pair per row for field.
// Rows without the column contribute a zero value.
func (h *HospitalsStore) GetSeries(field string) []domain.SeriesPoint {
	rows := h.Data()
	series := make([]domain.SeriesPoint, 0, len(rows))
	for _, row := range rows {
		v, _ := row.Get(field)
		series = append(series, domain.SeriesPoint{
			Timestamp: domain.SeriesTimestamp(row.Date),
			Value:     v,
		})
	}
	return series
}

// Hospitals returns the hospital directory.
func (h *HospitalsStore) Hospitals() domain.HospitalDirectory {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.directory
}

// Snapshot returns the rows and the directory from the same commit.
func (h *HospitalsStore) Snapshot() ([]domain.Row, domain.HospitalDirectory) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dataset.Rows, h.directory
}

// HospitalName returns the display name of a hospital, or "" when unknown.
func (h *HospitalsStore) HospitalName(id string) string {
	return h.Hospitals().Name(id)
}
