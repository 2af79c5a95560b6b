package mcp

import (
	"fmt"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Stats is the national stats dataset.
	Stats driving.DatasetService

	// Hospitals is the hospitals dataset and directory.
	Hospitals driving.HospitalsService

	// Locale formats numbers for tool output.
	Locale driving.LocaleService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Stats == nil {
		return ErrMissingStatsService
	}
	if p.Hospitals == nil {
		return ErrMissingHospitalsService
	}
	if p.Locale == nil {
		return ErrMissingLocaleService
	}
	return nil
}

// dataset resolves a dataset name. An empty name selects stats.
func (p *Ports) dataset(name string) (driving.DatasetService, error) {
	if name == "" {
		return p.Stats, nil
	}
	id, err := domain.ParseDatasetID(name)
	if err != nil {
		return nil, err
	}
	if id == domain.DatasetHospitals {
		return p.Hospitals, nil
	}
	return p.Stats, nil
}

// ensureLoaded fetches ds when nothing has been committed yet.
func ensureLoaded(fetch func() error, ds driving.TimeSeriesQuery) error {
	if ds.Loaded() {
		return nil
	}
	if err := fetch(); err != nil {
		return fmt.Errorf("loading %s: %w", ds.Dataset(), err)
	}
	return nil
}
