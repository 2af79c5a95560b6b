// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CSVSource: Fetches and parses remote CSV resources
//   - ChartConfigSink: Receives the charting layer's global settings
//   - TranslationSource: Supplies translation resources per language
//   - PreferenceStore: Local storage for the detected language and locale context
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FetchRecorder: Records fetch metrics. Without it, nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
