package services

import (
	"context"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure StatsStore implements the interface.
var _ driving.DatasetService = (*StatsStore)(nil)

// StatsStore holds the national stats dataset.
// Cells keep their raw text.
type StatsStore struct {
	*timeSeries
	source   driven.CSVSource
	url      string
	recorder driven.FetchRecorder
}

// NewStatsStore creates an empty stats store fetching from url.
// recorder may be nil.
func NewStatsStore(source driven.CSVSource, url string, recorder driven.FetchRecorder) *StatsStore {
	return &StatsStore{
		timeSeries: newTimeSeries(domain.DatasetStats),
		source:     source,
		url:        url,
		recorder:   recorder,
	}
}

// FetchData fetches the stats CSV and replaces the loaded rows.
func (s *StatsStore) FetchData(ctx context.Context) error {
	started := time.Now()
	logger.Debug("stats: fetching %s", s.url)

	rows, err := fetchRows(ctx, s.source, domain.DatasetStats, s.url, domain.RawCells)
	if err != nil {
		record(s.recorder, domain.DatasetStats, started, 0, err)
		return err
	}

	s.SetData(rows)
	record(s.recorder, domain.DatasetStats, started, len(rows), nil)
	logger.Debug("stats: committed %d rows", len(rows))
	return nil
}

// SetData replaces the loaded rows wholesale.
func (s *StatsStore) SetData(rows []domain.Row) {
	s.setData(rows, nil)
}
