// Package cli implements the covidstats command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// annotationNoServices marks commands that run without bootstrapping.
const annotationNoServices = "covidstats/no-services"

var (
	verbose    bool
	configPath string
	langFlag   string
)

// Services holds everything the commands operate on.
type Services struct {
	Config     domain.Config
	Stats      driving.DatasetService
	Hospitals  driving.HospitalsService
	Poller     driving.Poller
	Locale     driving.LocaleService
	Translator driving.Translator
	Content    driving.ContentService

	// Languages lists the languages with translation resources.
	Languages []string

	// Metrics serves the Prometheus registry. Nil disables --metrics-addr.
	Metrics http.Handler

	// WatchLocales reloads translations from the locales directory until
	// ctx is done. Nil when only the embedded resources are used.
	WatchLocales func(ctx context.Context) error
}

// Options are the global flags passed to the bootstrap function.
type Options struct {
	ConfigPath string
	Language   string
	Verbose    bool
}

// BootstrapFunc builds the services once the global flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var (
	svc         *Services
	bootstrapFn BootstrapFunc
)

// SetBootstrap sets the function used to build services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrapFn = fn
}

// SetServices injects ready-made services, skipping the bootstrap.
func SetServices(s *Services) {
	svc = s
}

var rootCmd = &cobra.Command{
	Use:   "covidstats",
	Short: "COVID-19 statistics for Slovenia in the terminal",
	Long: `covidstats fetches the national and hospital COVID-19 time series,
answers point-in-time and latest-value queries, and renders them with
locale-aware number and date formatting.

Run "covidstats dashboard" for the interactive view or "covidstats watch"
to keep the datasets refreshed in the background.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.covidstats/config.toml)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "language to use, skipping detection")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" || svc != nil || bootstrapFn == nil {
		return nil
	}

	s, err := bootstrapFn(Options{
		ConfigPath: configPath,
		Language:   langFlag,
		Verbose:    verbose,
	})
	if err != nil {
		return fmt.Errorf("starting covidstats: %w", err)
	}
	svc = s
	return nil
}

func requireServices() error {
	if svc == nil {
		return errors.New("services not configured")
	}
	return nil
}
