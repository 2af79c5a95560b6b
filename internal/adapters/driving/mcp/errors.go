// Package mcp provides an MCP (Model Context Protocol) server adapter for covidstats.
// It lets AI assistants query the loaded COVID-19 datasets over stdio.
package mcp

import "errors"

// ErrMissingStatsService is returned when the stats dataset is not provided.
var ErrMissingStatsService = errors.New("mcp: stats service is required")

// ErrMissingHospitalsService is returned when the hospitals dataset is not provided.
var ErrMissingHospitalsService = errors.New("mcp: hospitals service is required")

// ErrMissingLocaleService is returned when the locale service is not provided.
var ErrMissingLocaleService = errors.New("mcp: locale service is required")
