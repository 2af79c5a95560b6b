package services

import (
	"net"
	"net/http"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// Lookup names used when building detection input from a request.
const (
	LanguageCookie     = "i18next"
	LanguageQueryParam = "lng"
)

// LanguageDetector picks a language from ordered hints.
type LanguageDetector struct {
	order []domain.DetectionSource
}

// NewLanguageDetector creates a detector. A nil order uses
// domain.DefaultDetectionOrder.
func NewLanguageDetector(order []domain.DetectionSource) *LanguageDetector {
	if order == nil {
		order = domain.DefaultDetectionOrder
	}
	return &LanguageDetector{order: order}
}

// Detect returns the first hint, in detection order, that parses as a
// language tag. It returns "" when no hint is usable.
func (d *LanguageDetector) Detect(in domain.DetectionInput) string {
	for _, src := range d.order {
		for _, candidate := range candidates(src, in) {
			if tag, ok := normaliseTag(candidate); ok {
				return tag
			}
		}
	}
	return ""
}

func candidates(src domain.DetectionSource, in domain.DetectionInput) []string {
	switch src {
	case domain.DetectPath:
		return []string{firstSegment(strings.Trim(in.Path, "/"), "/")}
	case domain.DetectCookie:
		return []string{in.Cookie}
	case domain.DetectNavigator:
		return in.Navigator
	case domain.DetectLocalStorage:
		return []string{in.LocalStorage}
	case domain.DetectSubdomain:
		host := in.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if strings.Count(host, ".") < 2 {
			return nil
		}
		return []string{firstSegment(host, ".")}
	case domain.DetectQueryString:
		return []string{in.Query}
	case domain.DetectHTMLTag:
		return []string{in.HTMLLang}
	default:
		return nil
	}
}

func firstSegment(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

// normaliseTag accepts BCP 47 tags and POSIX locale names
// ("sl_SI.UTF-8") and returns the canonical tag.
func normaliseTag(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil || tag == language.Und {
		return "", false
	}
	return tag.String(), true
}

// DetectionInputFromRequest collects language hints from an HTTP request.
// Local storage and the HTML tag are not available from a request.
func DetectionInputFromRequest(r *http.Request) domain.DetectionInput {
	in := domain.DetectionInput{
		Path:  r.URL.Path,
		Host:  r.Host,
		Query: r.URL.Query().Get(LanguageQueryParam),
	}
	if c, err := r.Cookie(LanguageCookie); err == nil {
		in.Cookie = c.Value
	}
	if tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
		for _, tag := range tags {
			in.Navigator = append(in.Navigator, tag.String())
		}
	}
	return in
}

// DetectionInputFromEnv collects navigator hints from the POSIX locale
// environment, most specific variable first.
func DetectionInputFromEnv() domain.DetectionInput {
	var in domain.DetectionInput
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			in.Navigator = append(in.Navigator, v)
		}
	}
	if v := os.Getenv("LANGUAGE"); v != "" {
		in.Navigator = append(in.Navigator, strings.Split(v, ":")...)
	}
	return in
}
