package driven

// Resources holds one parsed translation document per language.
// Documents are nested JSON objects addressed by dotted keys.
type Resources map[string]map[string]any

// TranslationSource supplies translation resources.
type TranslationSource interface {
	// Load returns the resources of every available language.
	Load() (Resources, error)
}
