package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure Translator implements the interface.
var _ driving.Translator = (*Translator)(nil)

// interpolationPattern matches {{name}} and {{name, format}}.
var interpolationPattern = regexp.MustCompile(`\{\{\s*([^,}\s]+)\s*(?:,\s*([^}]*?))?\s*\}\}`)

// FormatFunc formats an interpolated value that carries a format,
// e.g. a date in "{{date, %e. %B}}".
type FormatFunc func(value any, format, lng string) string

// Translator resolves dotted translation keys against per-language
// resources. A lookup tries the requested language, its base language and
// then the fallback chain; when every language misses, the key itself is
// returned.
type Translator struct {
	mu        sync.RWMutex
	resources driven.Resources
	fallbacks []string
	format    FormatFunc
	plurals   *PluralResolver
}

// NewTranslator creates a translator over resources.
func NewTranslator(resources driven.Resources, fallbacks []string) *Translator {
	if resources == nil {
		resources = driven.Resources{}
	}
	return &Translator{
		resources: resources,
		fallbacks: append([]string(nil), fallbacks...),
		plurals:   NewPluralResolver(),
	}
}

// SetResources replaces every resource document, e.g. after a reload.
func (t *Translator) SetResources(resources driven.Resources) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resources = resources
}

// SetFormatter installs the interpolation format hook.
func (t *Translator) SetFormatter(fn FormatFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.format = fn
}

// Plurals returns the plural resolver used by TCount.
func (t *Translator) Plurals() *PluralResolver {
	return t.plurals
}

// Languages returns the languages that have resources.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.resources))
	for lng := range t.resources {
		out = append(out, lng)
	}
	return out
}

// HasLanguage reports whether lng, or its base language, has resources.
func (t *Translator) HasLanguage(lng string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, ok := t.resources[lng]; ok {
		return true
	}
	_, ok := t.resources[baseLanguage(lng)]
	return ok
}

// T returns the translation of key in lng with {{var}} interpolation.
func (t *Translator) T(lng, key string, vars map[string]any) string {
	for _, code := range t.chain(lng) {
		if s, ok := t.lookup(code, key).(string); ok {
			return t.interpolate(s, vars, lng)
		}
	}
	logger.Debug("i18n: missing key %q for %s", key, lng)
	return key
}

// Strings returns an array translation of key in lng, or nil when missing.
func (t *Translator) Strings(lng, key string) []string {
	for _, code := range t.chain(lng) {
		arr, ok := t.lookup(code, key).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// TCount returns the plural form of key for count. Two-form languages use
// key and key_plural; other languages use key_<index>. The count is
// available to interpolation as {{count}}.
func (t *Translator) TCount(lng, key string, count int, vars map[string]any) string {
	merged := make(map[string]any, len(vars)+1)
	for k, v := range vars {
		merged[k] = v
	}
	merged["count"] = count

	for _, code := range t.chain(lng) {
		if s, ok := t.lookup(code, key+t.pluralSuffix(code, count)).(string); ok {
			return t.interpolate(s, merged, lng)
		}
		if s, ok := t.lookup(code, key).(string); ok {
			return t.interpolate(s, merged, lng)
		}
	}
	return key
}

func (t *Translator) pluralSuffix(lng string, count int) string {
	idx := t.plurals.Index(lng, count)
	if t.plurals.Categories(lng) == 2 {
		if idx == 0 {
			return ""
		}
		return "_plural"
	}
	return "_" + strconv.Itoa(idx)
}

// chain returns the lookup order for lng without duplicates.
func (t *Translator) chain(lng string) []string {
	codes := make([]string, 0, len(t.fallbacks)+2)
	seen := make(map[string]bool)
	add := func(code string) {
		if code != "" && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	add(lng)
	add(baseLanguage(lng))
	for _, f := range t.fallbacks {
		add(f)
	}
	return codes
}

// lookup walks a dotted key through the nested document of code.
func (t *Translator) lookup(code, key string) any {
	t.mu.RLock()
	doc, ok := t.resources[code]
	t.mu.RUnlock()
	if !ok {
		return nil
	}

	var cur any = doc
	for _, seg := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = m[seg]; !ok {
			return nil
		}
	}
	return cur
}

func (t *Translator) interpolate(s string, vars map[string]any, lng string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	t.mu.RLock()
	format := t.format
	t.mu.RUnlock()

	return interpolationPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := interpolationPattern.FindStringSubmatch(m)
		name, layout := sub[1], sub[2]
		val, ok := vars[name]
		if !ok {
			return ""
		}
		if layout != "" && format != nil {
			return format(val, layout, lng)
		}
		if tm, ok := val.(time.Time); ok {
			return tm.Format("2006-01-02")
		}
		return fmt.Sprint(val)
	})
}
