package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
)

//go:embed resources/*.json
var embedded embed.FS

// Ensure EmbeddedSource implements the interface.
var _ driven.TranslationSource = EmbeddedSource{}

// EmbeddedSource serves the translation resources built into the binary.
type EmbeddedSource struct{}

// Load decodes every embedded resource document.
func (EmbeddedSource) Load() (driven.Resources, error) {
	sub, err := fs.Sub(embedded, "resources")
	if err != nil {
		return nil, err
	}
	return loadFS(sub)
}

// Languages returns the languages with embedded resources, sorted.
func Languages() []string {
	entries, err := fs.ReadDir(embedded, "resources")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if lng, ok := languageOf(e.Name()); ok && !e.IsDir() {
			out = append(out, lng)
		}
	}
	sort.Strings(out)
	return out
}

// loadFS decodes every <lng>.json file at the root of fsys.
func loadFS(fsys fs.FS) (driven.Resources, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	res := driven.Resources{}
	for _, e := range entries {
		lng, ok := languageOf(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		doc, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", e.Name(), err)
		}
		res[lng] = doc
	}
	return res, nil
}

// languageOf returns the language of a resource file name ("sl.json" → "sl").
// Hidden files and other extensions are rejected.
func languageOf(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || path.Ext(name) != ".json" {
		return "", false
	}
	return strings.TrimSuffix(name, ".json"), true
}

func decode(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
