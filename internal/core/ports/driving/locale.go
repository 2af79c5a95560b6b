package driving

import "github.com/custodia-labs/covidstats/internal/core/domain"

// LocaleService manages the active language and locale-aware formatting.
type LocaleService interface {
	// Context returns the current locale context.
	Context() domain.LocaleContext

	// ChangeLanguage activates lng and notifies subscribers.
	ChangeLanguage(lng string) (domain.LocaleContext, error)

	// OnLanguageChanged registers fn to run after every language change.
	OnLanguageChanged(fn func(domain.LocaleContext))

	// GetSeparator returns the decimal or group separator of locale.
	GetSeparator(locale string, kind domain.SeparatorType) string

	// FormatNumber formats n under lc.
	FormatNumber(lc domain.LocaleContext, n float64, opts domain.NumberOptions) string
}

// Translator resolves translation keys.
type Translator interface {
	// T returns the translation of key in lng with interpolation.
	T(lng, key string, vars map[string]any) string

	// Strings returns an array translation, or nil.
	Strings(lng, key string) []string

	// TCount returns the plural form of key for count.
	TCount(lng, key string, count int, vars map[string]any) string
}
