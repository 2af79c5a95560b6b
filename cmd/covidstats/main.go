// Command covidstats fetches and queries the Slovenian COVID-19 datasets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/custodia-labs/covidstats/internal/adapters/driven/chart"
	"github.com/custodia-labs/covidstats/internal/adapters/driven/config/file"
	"github.com/custodia-labs/covidstats/internal/adapters/driven/contentapi"
	"github.com/custodia-labs/covidstats/internal/adapters/driven/csvsource"
	"github.com/custodia-labs/covidstats/internal/adapters/driven/locales"
	"github.com/custodia-labs/covidstats/internal/adapters/driven/metrics"
	"github.com/custodia-labs/covidstats/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/covidstats/internal/adapters/driving/cli"
	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/core/services"
	"github.com/custodia-labs/covidstats/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.SetBootstrap(newServices)
	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newServices wires the adapters and services for one run.
func newServices(opts cli.Options) (*cli.Services, error) {
	logger.SetVerbose(opts.Verbose)

	cfg, err := file.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Datasets
	src := csvsource.New(cfg.Sources.Timeout, csvsource.WithRateLimit(cfg.Sources.RequestsPerSecond))
	recorder := metrics.NewRecorder()
	stats := services.NewStatsStore(src, cfg.Sources.StatsURL, recorder)
	hospitals := services.NewHospitalsStore(src, cfg.Sources.HospitalsURL, cfg.Sources.HospitalsDictURL, recorder)

	// Content API
	var contentAPI driven.ContentAPI
	if base := cfg.Sources.ContentEndpointBase; base != "" {
		client, err := contentapi.New(base, cfg.Sources.Timeout, contentapi.WithRateLimit(cfg.Sources.RequestsPerSecond))
		if err != nil {
			return nil, err
		}
		contentAPI = client
	}

	// Local storage
	var prefs driven.PreferenceStore
	if store, err := file.NewPreferenceStore(""); err != nil {
		logger.Warn("storage: %v; preferences will not persist", err)
		prefs = memory.NewPreferenceStore()
	} else {
		prefs = store
	}

	// Translations
	var (
		source       driven.TranslationSource = locales.EmbeddedSource{}
		dirSource    *locales.DirSource
		watchLocales func(ctx context.Context) error
	)
	if cfg.Locale.LocalesDir != "" {
		dirSource = locales.NewDirSource(cfg.Locale.LocalesDir)
		source = dirSource
	}
	resources, err := source.Load()
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}

	translator := services.NewTranslator(resources, cfg.Locale.FallbackLanguages)
	sink := chart.NewConfig()
	translator.SetFormatter(services.DateInterpolation(sink))

	if dirSource != nil {
		watchLocales = func(ctx context.Context) error {
			updates, err := dirSource.Watch(ctx)
			if err != nil {
				return err
			}
			for res := range updates {
				translator.SetResources(res)
				logger.Info("locales: reloaded %d languages from %s", len(res), dirSource.Dir())
			}
			return nil
		}
	}

	// Locale
	locale := services.NewLocaleService(prefs)
	services.NewChartLocaleBridge(sink, translator).Attach(locale)
	if cfg.Locale.Context != "" {
		if err := locale.StoreLocaleContext(cfg.Locale.Context); err != nil {
			logger.Warn("storage: cannot store locale context: %v", err)
		}
	}

	lng := initialLanguage(opts.Language, cfg.Locale, prefs, translator)
	if _, err := locale.ChangeLanguage(lng); err != nil {
		return nil, err
	}

	return &cli.Services{
		Config:       cfg,
		Stats:        stats,
		Hospitals:    hospitals,
		Poller:       services.NewPoller(stats, hospitals),
		Locale:       locale,
		Translator:   translator,
		Content:      services.NewContentService(contentAPI),
		Languages:    sortedLanguages(translator),
		Metrics:      recorder.Handler(),
		WatchLocales: watchLocales,
	}, nil
}

// initialLanguage picks the startup language: the --lang flag, then the
// configured default, then detection from the environment and local
// storage. A detected language without resources falls back.
func initialLanguage(flag string, cfg domain.LocaleConfig, prefs driven.PreferenceStore, t *services.Translator) string {
	if flag != "" {
		return flag
	}

	in := services.DetectionInputFromEnv()
	in.LocalStorage = prefs.GetString(domain.PrefLanguage)

	lng := services.InitialLanguage(cfg.DefaultLanguage, services.NewLanguageDetector(nil), in, cfg.FallbackLanguages)
	if cfg.DefaultLanguage == "" && !t.HasLanguage(lng) && len(cfg.FallbackLanguages) > 0 {
		logger.Debug("locale: no translations for %s", lng)
		return cfg.FallbackLanguages[0]
	}
	return lng
}

func sortedLanguages(t *services.Translator) []string {
	langs := t.Languages()
	sort.Strings(langs)
	return langs
}
