package tui

import "errors"

// ErrMissingStatsService is returned when the stats dataset is not provided.
var ErrMissingStatsService = errors.New("tui: stats service is required")

// ErrMissingHospitalsService is returned when the hospitals dataset is not provided.
var ErrMissingHospitalsService = errors.New("tui: hospitals service is required")

// ErrMissingLocaleService is returned when the locale service is not provided.
var ErrMissingLocaleService = errors.New("tui: locale service is required")

// ErrMissingTranslator is returned when the translator is not provided.
var ErrMissingTranslator = errors.New("tui: translator is required")
