package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// mockDataset is a mock implementation of driving.HospitalsService.
// Stats tests use it through the narrower DatasetService interface.
type mockDataset struct {
	id      domain.DatasetID
	loaded  bool
	value   domain.Observation
	last    domain.Observation
	series  []domain.SeriesPoint
	names   domain.HospitalDirectory
	err     error
	fetches int
	queried time.Time
}

func (m *mockDataset) Dataset() domain.DatasetID { return m.id }
func (m *mockDataset) Loaded() bool { return m.loaded }
func (m *mockDataset) Data() []domain.Row { return nil }

func (m *mockDataset) GetValueOn(_ string, date time.Time) domain.Observation {
	m.queried = date
	return m.value
}

func (m *mockDataset) GetLastValue(_ string) domain.Observation { return m.last }

func (m *mockDataset) FetchData(_ context.Context) error {
	m.fetches++
	if m.err != nil {
		return m.err
	}
	m.loaded = true
	return nil
}

func (m *mockDataset) GetSeries(_ string) []domain.SeriesPoint { return m.series }
func (m *mockDataset) Hospitals() domain.HospitalDirectory { return m.names }
func (m *mockDataset) HospitalName(id string) string { return m.names.Name(id) }

// mockLocale is a mock implementation of driving.LocaleService.
type mockLocale struct {
	lc        domain.LocaleContext
	gotLC     domain.LocaleContext
	gotOpts   domain.NumberOptions
	gotKind   domain.SeparatorType
	formatted string
}

func (m *mockLocale) Context() domain.LocaleContext { return m.lc }

func (m *mockLocale) ChangeLanguage(lng string) (domain.LocaleContext, error) {
	m.lc = domain.LocaleContext{Language: lng}
	return m.lc, nil
}

func (m *mockLocale) OnLanguageChanged(_ func(domain.LocaleContext)) {}

func (m *mockLocale) GetSeparator(_ string, kind domain.SeparatorType) string {
	m.gotKind = kind
	if kind == domain.SeparatorGroup {
		return "."
	}
	return ","
}

func (m *mockLocale) FormatNumber(lc domain.LocaleContext, _ float64, opts domain.NumberOptions) string {
	m.gotLC = lc
	m.gotOpts = opts
	return m.formatted
}

func newTestPorts() (*Ports, *mockDataset, *mockDataset, *mockLocale) {
	stats := &mockDataset{id: domain.DatasetStats, loaded: true}
	hospitals := &mockDataset{id: domain.DatasetHospitals, loaded: true}
	locale := &mockLocale{lc: domain.LocaleContext{Language: "sl"}, formatted: "1.234"}
	return &Ports{Stats: stats, Hospitals: hospitals, Locale: locale}, stats, hospitals, locale
}
