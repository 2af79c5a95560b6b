// Package messages defines Bubbletea message types for the dashboard.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewStats shows the national statistics.
	ViewStats ViewType = iota
	// ViewHospitals shows the hospital statistics.
	ViewHospitals
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewStats:
		return "stats"
	case ViewHospitals:
		return "hospitals"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DataFetched reports the outcome of one dataset fetch.
type DataFetched struct {
	Dataset domain.DatasetID
	Err     error
}

// RefreshTick triggers a scheduled refresh.
type RefreshTick struct {
	At time.Time
}

// LanguageChanged carries the new locale context.
type LanguageChanged struct {
	Context domain.LocaleContext
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
