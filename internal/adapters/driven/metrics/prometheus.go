package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.FetchRecorder = (*Recorder)(nil)

// Fetch outcome label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder exports fetch counts, durations and row counts per dataset.
// It owns a private registry so several recorders can coexist.
type Recorder struct {
	registry *prometheus.Registry
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.GaugeVec
	lastOK   *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its metrics registered.
func NewRecorder() *Recorder {
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "covidstats_fetches_total",
		Help: "Dataset fetches by outcome.",
	}, []string{"dataset", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "covidstats_fetch_duration_seconds",
		Help:    "Time to fetch and parse a dataset.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"dataset"})
	rows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "covidstats_dataset_rows",
		Help: "Rows in the last committed snapshot.",
	}, []string{"dataset"})
	lastOK := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "covidstats_last_success_timestamp_seconds",
		Help: "Unix time of the last successful fetch.",
	}, []string{"dataset"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(fetches, duration, rows, lastOK)

	return &Recorder{
		registry: reg,
		fetches:  fetches,
		duration: duration,
		rows:     rows,
		lastOK:   lastOK,
	}
}

// RecordFetch records one fetch. Rows are only updated on success.
func (r *Recorder) RecordFetch(dataset domain.DatasetID, d time.Duration, rows int, err error) {
	ds := string(dataset)
	r.duration.WithLabelValues(ds).Observe(d.Seconds())
	if err != nil {
		r.fetches.WithLabelValues(ds, StatusError).Inc()
		return
	}
	r.fetches.WithLabelValues(ds, StatusSuccess).Inc()
	r.rows.WithLabelValues(ds).Set(float64(rows))
	r.lastOK.WithLabelValues(ds).SetToCurrentTime()
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
