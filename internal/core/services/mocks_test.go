package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
)

// --- Mock implementations for service testing ---

// mockCSVSource implements driven.CSVSource for testing.
type mockCSVSource struct {
	mu     sync.Mutex
	tables map[string]*domain.Table
	errs   map[string]error
	calls  []string
}

func newMockCSVSource() *mockCSVSource {
	return &mockCSVSource{
		tables: make(map[string]*domain.Table),
		errs:   make(map[string]error),
	}
}

func (m *mockCSVSource) Fetch(_ context.Context, url string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	if err := m.errs[url]; err != nil {
		return nil, err
	}
	table, ok := m.tables[url]
	if !ok {
		return nil, domain.NewFetchError(url, 404, domain.ErrNotFound)
	}
	return table, nil
}

func (m *mockCSVSource) set(url string, header []string, records ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[url] = &domain.Table{Header: header, Records: records}
	delete(m.errs, url)
}

func (m *mockCSVSource) fail(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[url] = err
}

// mockRecorder implements driven.FetchRecorder for testing.
type mockRecorder struct {
	mu      sync.Mutex
	records []recordedFetch
}

type recordedFetch struct {
	dataset domain.DatasetID
	rows    int
	err     error
}

func (m *mockRecorder) RecordFetch(dataset domain.DatasetID, _ time.Duration, rows int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, recordedFetch{dataset: dataset, rows: rows, err: err})
}

// mockPreferenceStore implements driven.PreferenceStore for testing.
type mockPreferenceStore struct {
	mu     sync.Mutex
	values map[string]any
	setErr error
}

func newMockPreferenceStore() *mockPreferenceStore {
	return &mockPreferenceStore{values: make(map[string]any)}
}

func (m *mockPreferenceStore) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *mockPreferenceStore) GetString(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

func (m *mockPreferenceStore) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockPreferenceStore) Load() error  { return nil }
func (m *mockPreferenceStore) Path() string { return "memory" }

// mockChartSink implements driven.ChartConfigSink for testing.
type mockChartSink struct {
	options []domain.ChartOptions
	formats map[rune]domain.DateFormatFunc
}

func newMockChartSink() *mockChartSink {
	return &mockChartSink{formats: make(map[rune]domain.DateFormatFunc)}
}

func (m *mockChartSink) SetOptions(opts domain.ChartOptions) {
	m.options = append(m.options, opts)
}

func (m *mockChartSink) RegisterDateFormat(token rune, fn domain.DateFormatFunc) {
	m.formats[token] = fn
}

func (m *mockChartSink) last() domain.ChartOptions {
	return m.options[len(m.options)-1]
}

// Ensure mocks implement interfaces
var _ driven.CSVSource = (*mockCSVSource)(nil)
var _ driven.FetchRecorder = (*mockRecorder)(nil)
var _ driven.PreferenceStore = (*mockPreferenceStore)(nil)
var _ driven.ChartConfigSink = (*mockChartSink)(nil)

func day(s string) time.Time {
	return domain.ParseDate(s)
}

// mockContentAPI implements driven.ContentAPI for testing.
type mockContentAPI struct {
	docs      map[string]string
	err       error
	resources []string
	queries   []url.Values
}

func (m *mockContentAPI) Get(_ context.Context, resource string, query url.Values, out any) error {
	m.resources = append(m.resources, resource)
	m.queries = append(m.queries, query)
	if m.err != nil {
		return m.err
	}
	doc, ok := m.docs[resource]
	if !ok {
		return domain.NewFetchError(resource, 404, domain.ErrNotFound)
	}
	return json.Unmarshal([]byte(doc), out)
}
