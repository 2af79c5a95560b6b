package services

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure LocaleService implements the interface.
var _ driving.LocaleService = (*LocaleService)(nil)

// LocaleService owns the active language. Every change rebuilds the
// LocaleContext, notifies subscribers in registration order and records
// the language in local storage.
type LocaleService struct {
	prefs driven.PreferenceStore

	mu          sync.RWMutex
	current     domain.LocaleContext
	subscribers []func(domain.LocaleContext)
}

// NewLocaleService creates a locale service with no active language.
// prefs may be nil.
func NewLocaleService(prefs driven.PreferenceStore) *LocaleService {
	return &LocaleService{
		prefs: prefs,
		current: domain.LocaleContext{
			Separators: SeparatorsFor(domain.DefaultFormatLocale),
		},
	}
}

// Context returns the current locale context.
func (s *LocaleService) Context() domain.LocaleContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ChangeLanguage activates lng. Separators are recomputed before any
// subscriber runs.
func (s *LocaleService) ChangeLanguage(lng string) (domain.LocaleContext, error) {
	tag, err := language.Parse(lng)
	if err != nil {
		return domain.LocaleContext{}, fmt.Errorf("%w: %q: %v", domain.ErrUnsupportedLocale, lng, err)
	}
	lc := domain.LocaleContext{
		Language:   tag.String(),
		Separators: SeparatorsFor(tag.String()),
	}

	s.mu.Lock()
	s.current = lc
	subs := append([]func(domain.LocaleContext){}, s.subscribers...)
	s.mu.Unlock()

	logger.Debug("locale: language %s (decimal %q, group %q)", lc.Language, lc.Separators.Decimal, lc.Separators.Group)
	for _, fn := range subs {
		fn(lc)
	}

	if s.prefs != nil {
		if err := s.prefs.Set(domain.PrefLanguage, lc.Language); err != nil {
			logger.Warn("locale: cannot persist language: %v", err)
		}
	}
	return lc, nil
}

// OnLanguageChanged registers fn to run after every language change.
func (s *LocaleService) OnLanguageChanged(fn func(domain.LocaleContext)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// GetSeparator returns the decimal or group separator of locale.
func (s *LocaleService) GetSeparator(locale string, kind domain.SeparatorType) string {
	return GetSeparator(locale, kind)
}

// FormatNumber formats n under lc.
func (s *LocaleService) FormatNumber(lc domain.LocaleContext, n float64, opts domain.NumberOptions) string {
	return FormatNumber(lc, n, opts)
}

// StoreLocaleContext records the configured locale context in local storage.
func (s *LocaleService) StoreLocaleContext(context string) error {
	if s.prefs == nil {
		return nil
	}
	return s.prefs.Set(domain.PrefLocaleContext, context)
}

// InitialLanguage resolves the startup language: the configured default
// when set, otherwise the detected one, otherwise the first fallback.
func InitialLanguage(
	defaultLanguage string,
	detector *LanguageDetector,
	in domain.DetectionInput,
	fallbacks []string,
) string {
	if defaultLanguage != "" {
		return defaultLanguage
	}
	if detector != nil {
		if lng := detector.Detect(in); lng != "" {
			return lng
		}
	}
	if len(fallbacks) > 0 {
		return fallbacks[0]
	}
	return "en"
}
