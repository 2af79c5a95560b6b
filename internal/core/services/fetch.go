package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
)

// fetchRows fetches url and parses it into rows, applying transform to
// every non-date cell. Parse failures are reported as fetch failures.
func fetchRows(
	ctx context.Context,
	src driven.CSVSource,
	id domain.DatasetID,
	url string,
	transform domain.RowTransform,
) ([]domain.Row, error) {
	table, err := fetchTable(ctx, src, id, url)
	if err != nil {
		return nil, err
	}
	rows, err := domain.ParseRows(table, transform)
	if err != nil {
		return nil, &domain.FetchError{Dataset: id, URL: url, Err: err}
	}
	return rows, nil
}

func fetchTable(ctx context.Context, src driven.CSVSource, id domain.DatasetID, url string) (*domain.Table, error) {
	table, err := src.Fetch(ctx, url)
	if err != nil {
		var fe *domain.FetchError
		if errors.As(err, &fe) {
			if fe.Dataset == "" {
				fe.Dataset = id
			}
			return nil, fe
		}
		return nil, &domain.FetchError{Dataset: id, URL: url, Err: err}
	}
	return table, nil
}

// record forwards a fetch outcome to an optional recorder.
func record(rec driven.FetchRecorder, id domain.DatasetID, started time.Time, rows int, err error) {
	if rec == nil {
		return
	}
	rec.RecordFetch(id, time.Since(started), rows, err)
}
