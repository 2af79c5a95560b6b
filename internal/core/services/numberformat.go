package services

import (
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// separatorSample has both a group and a decimal separator in every locale
// that groups thousands.
const separatorSample = 1000.1

// GetSeparator formats the sample value under locale and returns the text of
// the first decimal or group part. It returns "" when the locale has no such
// part, e.g. a group separator for locales that do not group four digits.
func GetSeparator(locale string, kind domain.SeparatorType) string {
	formatted := formatNumber(parseLocale(locale), separatorSample, domain.NumberOptions{})
	want := domain.PartDecimal
	if kind == domain.SeparatorGroup {
		want = domain.PartGroup
	}
	for _, part := range numberParts(formatted, true) {
		if part.Type == want {
			return part.Value
		}
	}
	return ""
}

// SeparatorsFor returns both separators of locale.
func SeparatorsFor(locale string) domain.Separators {
	return domain.Separators{
		Decimal: GetSeparator(locale, domain.SeparatorDecimal),
		Group:   GetSeparator(locale, domain.SeparatorGroup),
	}
}

// FormatNumber formats n under the language of lc, or under
// domain.DefaultFormatLocale when lc has none.
func FormatNumber(lc domain.LocaleContext, n float64, opts domain.NumberOptions) string {
	locale := lc.Language
	if locale == "" {
		locale = domain.DefaultFormatLocale
	}
	return formatNumber(parseLocale(locale), n, opts)
}

func formatNumber(tag language.Tag, n float64, opts domain.NumberOptions) string {
	var numOpts []number.Option
	if opts.MinFractionDigits != nil {
		numOpts = append(numOpts, number.MinFractionDigits(*opts.MinFractionDigits))
	}
	if opts.MaxFractionDigits != nil {
		numOpts = append(numOpts, number.MaxFractionDigits(*opts.MaxFractionDigits))
	}
	if opts.NoGrouping {
		numOpts = append(numOpts, number.NoSeparator())
	}

	p := message.NewPrinter(tag)
	if opts.Percent {
		return p.Sprint(number.Percent(n, numOpts...))
	}
	return p.Sprint(number.Decimal(n, numOpts...))
}

// parseLocale parses a BCP 47 tag, falling back to the default format locale.
func parseLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("locale: cannot parse %q, using %s: %v", locale, domain.DefaultFormatLocale, err)
		return language.MustParse(domain.DefaultFormatLocale)
	}
	return tag
}

// numberParts splits a formatted number into typed parts. Digit runs are
// integer or fraction parts; the text between digit runs is a group
// separator, except the last one which is the decimal separator when
// hasFraction is set. Text before the first or after the last digit run
// is literal.
func numberParts(s string, hasFraction bool) []domain.NumberPart {
	type run struct {
		text  string
		digit bool
	}
	var runs []run
	for _, r := range s {
		isDigit := unicode.IsDigit(r)
		if n := len(runs); n > 0 && runs[n-1].digit == isDigit {
			runs[n-1].text += string(r)
			continue
		}
		runs = append(runs, run{text: string(r), digit: isDigit})
	}

	first, last, digitRuns := -1, -1, 0
	for i, r := range runs {
		if r.digit {
			if first < 0 {
				first = i
			}
			last = i
			digitRuns++
		}
	}

	parts := make([]domain.NumberPart, 0, len(runs))
	for i, r := range runs {
		var typ domain.NumberPartType
		switch {
		case i < first || i > last || first < 0:
			typ = domain.PartLiteral
		case r.digit && i == last && hasFraction && digitRuns > 1:
			typ = domain.PartFraction
		case r.digit:
			typ = domain.PartInteger
		case i == last-1 && hasFraction:
			typ = domain.PartDecimal
		default:
			typ = domain.PartGroup
		}
		parts = append(parts, domain.NumberPart{Type: typ, Value: r.text})
	}
	return parts
}
