package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
)

// SlovenianPluralRule matches the plural forms used by the Slovenian
// translations: counts ending in 1, in 2, in 3 or 4, and everything else.
var SlovenianPluralRule = domain.PluralRule{
	Numbers: []int{0, 1, 2, 3},
	Plurals: func(n int) int {
		switch n % 100 {
		case 1:
			return 0
		case 2:
			return 1
		case 3, 4:
			return 2
		default:
			return 3
		}
	},
}

// ISOWeek renders the %W token: the ISO 8601 week number, weeks starting
// on Monday.
func ISOWeek(t time.Time) string {
	_, week := t.ISOWeek()
	return strconv.Itoa(week)
}

// ChartLocaleBridge pushes translated labels and number separators into
// the charting layer.
type ChartLocaleBridge struct {
	sink       driven.ChartConfigSink
	translator *Translator
}

// NewChartLocaleBridge creates a bridge writing to sink.
func NewChartLocaleBridge(sink driven.ChartConfigSink, translator *Translator) *ChartLocaleBridge {
	return &ChartLocaleBridge{sink: sink, translator: translator}
}

// Register adds the %W date token to the sink and the Slovenian plural
// rule to the translator.
func (b *ChartLocaleBridge) Register() {
	b.sink.RegisterDateFormat('W', ISOWeek)
	b.translator.Plurals().AddRule("sl", SlovenianPluralRule)
}

// Attach registers the bridge and applies lc now and after every language
// change of locales.
func (b *ChartLocaleBridge) Attach(locales *LocaleService) {
	b.Register()
	locales.OnLanguageChanged(b.Apply)
	b.Apply(locales.Context())
}

// Apply pushes the options for lc into the sink.
func (b *ChartLocaleBridge) Apply(lc domain.LocaleContext) {
	b.sink.SetOptions(b.Options(lc))
}

// Options builds the chart options for lc.
func (b *ChartLocaleBridge) Options(lc domain.LocaleContext) domain.ChartOptions {
	lng := lc.Language
	t := func(key string) string { return b.translator.T(lng, key, nil) }

	return domain.ChartOptions{
		UseUTC: false,
		Lang: domain.ChartLang{
			Loading:           t("charts.common.loading"),
			Months:            b.translator.Strings(lng, "month"),
			ShortMonths:       b.translator.Strings(lng, "shortMonth"),
			Weekdays:          b.translator.Strings(lng, "weekday"),
			RangeSelectorFrom: t("charts.common.from"),
			RangeSelectorTo:   t("charts.common.to"),
			RangeSelectorZoom: t("charts.common.zoom"),
			ResetZoom:         t("charts.common.resetZoom"),
			ResetZoomTitle:    t("charts.common.resetZoomTitle"),
			ThousandsSep:      lc.Separators.Group,
			DecimalPoint:      lc.Separators.Decimal,
		},
	}
}

// DateInterpolation returns a translator format hook that renders dates
// with the chart date formatter and passes other values through.
func DateInterpolation(formatter driven.DateFormatter) FormatFunc {
	return func(value any, format, _ string) string {
		if t, ok := value.(time.Time); ok {
			return formatter.DateFormat(format, t)
		}
		return fmt.Sprint(value)
	}
}
