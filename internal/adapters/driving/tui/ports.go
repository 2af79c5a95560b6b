// Package tui provides the interactive terminal dashboard for covidstats.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the dashboard.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Stats is the national stats dataset.
	Stats driving.DatasetService

	// Hospitals is the hospitals dataset and directory.
	Hospitals driving.HospitalsService

	// Locale owns the active language and number formatting.
	Locale driving.LocaleService

	// Translator resolves the dashboard labels.
	Translator driving.Translator

	// Languages lists the languages the language key cycles through.
	Languages []string

	// Fields selects the columns shown on each view.
	Fields domain.DashboardConfig

	// RefreshInterval schedules automatic refreshes. Zero disables them.
	RefreshInterval time.Duration
}

// Validate ensures all required ports are set.
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
	if p.Translator == nil {
		return ErrMissingTranslator
	}
	return nil
}
