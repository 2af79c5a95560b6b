package chart

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
)

// Ensure Config implements the interfaces.
var (
	_ driven.ChartConfigSink = (*Config)(nil)
	_ driven.DateFormatter   = (*Config)(nil)
)

// Config is the charting layer's global configuration.
type Config struct {
	mu      sync.RWMutex
	options domain.ChartOptions
	formats map[rune]domain.DateFormatFunc
	changes int
}

// NewConfig creates a chart configuration with no labels.
func NewConfig() *Config {
	return &Config{formats: make(map[rune]domain.DateFormatFunc)}
}

// SetOptions replaces the global options.
func (c *Config) SetOptions(opts domain.ChartOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = opts
	c.changes++
}

// Options returns the current options.
func (c *Config) Options() domain.ChartOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.options
}

// Changes returns how many times the options were replaced.
func (c *Config) Changes() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.changes
}

// RegisterDateFormat adds token to the date-format vocabulary.
// Registered tokens take precedence over the built-in ones.
func (c *Config) RegisterDateFormat(token rune, fn domain.DateFormatFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formats[token] = fn
}

// DateFormat renders t using a %-token format.
//
// Month and weekday names come from the current options; %e, %k and %l
// are not padded and %L is milliseconds. Any other token is rendered by
// strftime.
func (c *Config) DateFormat(format string, t time.Time) string {
	c.mu.RLock()
	lang := c.options.Lang
	useUTC := c.options.UseUTC
	formats := make(map[rune]domain.DateFormatFunc, len(c.formats))
	for k, v := range c.formats {
		formats[k] = v
	}
	c.mu.RUnlock()

	if useUTC {
		t = t.UTC()
	}

	var b strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '%' || i == len(runes)-1 {
			b.WriteRune(r)
			continue
		}
		i++
		token := runes[i]
		if fn, ok := formats[token]; ok {
			b.WriteString(fn(t))
			continue
		}
		b.WriteString(builtin(token, t, lang))
	}
	return b.String()
}

func builtin(token rune, t time.Time, lang domain.ChartLang) string {
	switch token {
	case 'a':
		if name := pick(lang.Weekdays, int(t.Weekday())); name != "" {
			return truncate(name, 3)
		}
	case 'A':
		if name := pick(lang.Weekdays, int(t.Weekday())); name != "" {
			return name
		}
	case 'b':
		if name := pick(lang.ShortMonths, int(t.Month())-1); name != "" {
			return name
		}
	case 'B':
		if name := pick(lang.Months, int(t.Month())-1); name != "" {
			return name
		}
	case 'e':
		return fmt.Sprint(t.Day())
	case 'k':
		return fmt.Sprint(t.Hour())
	case 'l':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return fmt.Sprint(h)
	case 'L':
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	case '%':
		return "%"
	}
	return strftime.Format("%"+string(token), t)
}

func pick(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
