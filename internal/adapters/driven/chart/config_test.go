package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

var slLang = domain.ChartLang{
	Months: []string{"januar", "februar", "marec", "april", "maj", "junij",
		"julij", "avgust", "september", "oktober", "november", "december"},
	ShortMonths: []string{"jan", "feb", "mar", "apr", "maj", "jun",
		"jul", "avg", "sep", "okt", "nov", "dec"},
	Weekdays: []string{"nedelja", "ponedeljek", "torek", "sreda", "četrtek", "petek", "sobota"},
}

func TestConfig_SetOptions(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, 0, c.Changes())

	c.SetOptions(domain.ChartOptions{Lang: domain.ChartLang{Loading: "Nalaganje..."}})

	assert.Equal(t, "Nalaganje...", c.Options().Lang.Loading)
	assert.Equal(t, 1, c.Changes())
}

func TestConfig_DateFormat_Localized(t *testing.T) {
	c := NewConfig()
	c.SetOptions(domain.ChartOptions{Lang: slLang})
	d := time.Date(2020, 3, 4, 7, 5, 9, 123*int(time.Millisecond), time.Local)

	assert.Equal(t, "4. marec 2020", c.DateFormat("%e. %B %Y", d))
	assert.Equal(t, "sre, 4. mar", c.DateFormat("%a, %e. %b", d))
	assert.Equal(t, "sreda", c.DateFormat("%A", d))
	assert.Equal(t, "04.03.2020", c.DateFormat("%d.%m.%Y", d))
	assert.Equal(t, "7:05:09.123", c.DateFormat("%k:%M:%S.%L", d))
	assert.Equal(t, "100%", c.DateFormat("100%%", d))
}

func TestConfig_DateFormat_FallsBackWithoutNames(t *testing.T) {
	c := NewConfig()
	d := time.Date(2020, 3, 4, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "March", c.DateFormat("%B", d))
	assert.Equal(t, "Wed", c.DateFormat("%a", d))
}

func TestConfig_RegisterDateFormat(t *testing.T) {
	c := NewConfig()
	c.RegisterDateFormat('W', func(t time.Time) string {
		_, w := t.ISOWeek()
		return "w" + string(rune('0'+w%10))
	})
	d := time.Date(2020, 3, 4, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "2020 w0", c.DateFormat("%Y %W", d))
}

func TestConfig_DateFormat_TrailingPercent(t *testing.T) {
	assert.Equal(t, "50%", NewConfig().DateFormat("50%", time.Now()))
}

func TestConfig_DateFormat_TwelveHour(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, "12", c.DateFormat("%l", time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "3", c.DateFormat("%l", time.Date(2020, 1, 1, 15, 0, 0, 0, time.Local)))
}
