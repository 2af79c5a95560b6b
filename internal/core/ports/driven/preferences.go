package driven

// PreferenceStore is the local storage used by the locale bootstrap.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type PreferenceStore interface {
	// Get retrieves a value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// Set stores a value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Load reads values from storage.
	Load() error

	// Path returns the storage location.
	Path() string
}
