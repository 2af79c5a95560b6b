// Package metrics records dataset fetches as Prometheus metrics.
package metrics
