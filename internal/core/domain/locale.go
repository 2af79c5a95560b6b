package domain

import "time"

// DefaultFormatLocale is used for number formatting when no language is active.
const DefaultFormatLocale = "sl-SI"

// SeparatorType selects a number separator.
type SeparatorType string

// Separator kinds, named after the number part they come from.
const (
	SeparatorDecimal SeparatorType = "decimal"
	SeparatorGroup   SeparatorType = "group"
)

// Separators holds the decimal-point and thousands-group characters of a locale.
type Separators struct {
	// Decimal separates the integer and fraction parts.
	Decimal string

	// Group separates thousands. Empty when the locale does not group.
	Group string
}

// LocaleContext is the active language and its derived settings.
// It is rebuilt on every language change and passed explicitly to
// formatting calls.
type LocaleContext struct {
	// Language is the active BCP 47 language tag, e.g. "sl" or "en-US".
	Language string

	// Separators are the number separators of Language.
	Separators Separators
}

// NumberOptions controls FormatNumber output.
type NumberOptions struct {
	// MinFractionDigits pads the fraction. Nil keeps the locale default.
	MinFractionDigits *int

	// MaxFractionDigits rounds the fraction. Nil keeps the locale default.
	MaxFractionDigits *int

	// NoGrouping disables thousands separators.
	NoGrouping bool

	// Percent formats the number as a percentage (0.25 → 25%).
	Percent bool
}

// Digits is a helper for the fraction digit options.
func Digits(n int) *int {
	return &n
}

// NumberPartType classifies a piece of a formatted number.
type NumberPartType string

// Number part types.
const (
	PartInteger  NumberPartType = "integer"
	PartGroup    NumberPartType = "group"
	PartDecimal  NumberPartType = "decimal"
	PartFraction NumberPartType = "fraction"
	PartLiteral  NumberPartType = "literal"
)

// NumberPart is one token of a formatted number.
type NumberPart struct {
	// Type classifies the token.
	Type NumberPartType

	// Value is the token text.
	Value string
}

// ChartLang holds the translated labels and separators of the charting layer.
type ChartLang struct {
	Loading           string
	Months            []string
	ShortMonths       []string
	Weekdays          []string
	RangeSelectorFrom string
	RangeSelectorTo   string
	RangeSelectorZoom string
	ResetZoom         string
	ResetZoomTitle    string
	ThousandsSep      string
	DecimalPoint      string
}

// ChartOptions are the global charting settings pushed on every language change.
type ChartOptions struct {
	// UseUTC selects UTC instead of local time for date rendering.
	UseUTC bool

	// Lang holds the locale-sensitive labels.
	Lang ChartLang
}

// DateFormatFunc renders a custom date-format token.
type DateFormatFunc func(t time.Time) string

// PluralRule overrides plural category selection for one language.
type PluralRule struct {
	// Numbers lists a sample count for every category, in category order.
	Numbers []int

	// Plurals returns the category index for count n.
	Plurals func(n int) int
}

// DetectionSource names a place a language can be detected from.
type DetectionSource string

// Detection sources, in default lookup order.
const (
	DetectPath         DetectionSource = "path"
	DetectCookie       DetectionSource = "cookie"
	DetectNavigator    DetectionSource = "navigator"
	DetectLocalStorage DetectionSource = "localStorage"
	DetectSubdomain    DetectionSource = "subdomain"
	DetectQueryString  DetectionSource = "queryString"
	DetectHTMLTag      DetectionSource = "htmlTag"
)

// DefaultDetectionOrder is the lookup order used when none is configured.
var DefaultDetectionOrder = []DetectionSource{
	DetectPath,
	DetectCookie,
	DetectNavigator,
	DetectLocalStorage,
	DetectSubdomain,
	DetectQueryString,
	DetectHTMLTag,
}

// DetectionInput carries the raw language hints available to the detector.
type DetectionInput struct {
	// Path is the URL path; its first segment is inspected.
	Path string

	// Cookie is the value of the language cookie.
	Cookie string

	// Navigator lists the user's preferred languages, most preferred first.
	Navigator []string

	// LocalStorage is the language persisted by a previous session.
	LocalStorage string

	// Host is the request host; its first label is inspected.
	Host string

	// Query is the value of the language query parameter.
	Query string

	// HTMLLang is the lang attribute of the document element.
	HTMLLang string
}

// Preference keys persisted in local storage.
const (
	PrefLanguage      = "i18nextLng"
	PrefLocaleContext = "contextCountry"
)
