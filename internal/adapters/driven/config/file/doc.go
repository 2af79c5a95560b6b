// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - PreferenceStore: TOML-backed local storage for the active language
//     and locale context
//   - LoadConfig: TOML configuration file with .env and environment overrides
package file
