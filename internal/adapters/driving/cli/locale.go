package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

var (
	formatLocale     string
	formatMinDigits  int
	formatMaxDigits  int
	formatNoGrouping bool
	formatPercent    bool

	translateCount int
	translateVars  []string
)

var localeCmd = &cobra.Command{
	Use:   "locale",
	Short: "Show and change the active language",
	Long: `Locale reports the active language and its number separators.

Use subcommands to inspect other locales, format numbers or switch the
language. The language is remembered between runs.`,
	RunE: runLocaleShow,
}

var localeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active language and separators",
	RunE:  runLocaleShow,
}

var localeSeparatorsCmd = &cobra.Command{
	Use:   "separators [locale]",
	Short: "Show the decimal and group separators of a locale",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocaleSeparators,
}

var localeFormatCmd = &cobra.Command{
	Use:   "format [number]",
	Short: "Format a number for a locale",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocaleFormat,
}

var localeSetCmd = &cobra.Command{
	Use:   "set [language]",
	Short: "Switch the active language",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocaleSet,
}

var translateCmd = &cobra.Command{
	Use:   "translate [key]",
	Short: "Translate a key in the active language",
	Long: `Translate resolves a dotted translation key, e.g. charts.common.loading.

Use --count for plural keys and --var name=value for interpolation.
Values in YYYY-MM-DD form are interpolated as dates.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	localeFormatCmd.Flags().StringVar(&formatLocale, "locale", "", "locale to format for (default the active language)")
	localeFormatCmd.Flags().IntVar(&formatMinDigits, "min-digits", -1, "minimum fraction digits (-1 = locale default)")
	localeFormatCmd.Flags().IntVar(&formatMaxDigits, "max-digits", -1, "maximum fraction digits (-1 = locale default)")
	localeFormatCmd.Flags().BoolVar(&formatNoGrouping, "no-grouping", false, "omit thousands separators")
	localeFormatCmd.Flags().BoolVar(&formatPercent, "percent", false, "format as a percentage")

	translateCmd.Flags().IntVarP(&translateCount, "count", "c", -1, "plural count (-1 = no plural)")
	translateCmd.Flags().StringArrayVar(&translateVars, "var", nil, "interpolation variable as name=value")

	localeCmd.AddCommand(localeShowCmd)
	localeCmd.AddCommand(localeSeparatorsCmd)
	localeCmd.AddCommand(localeFormatCmd)
	localeCmd.AddCommand(localeSetCmd)
	rootCmd.AddCommand(localeCmd)
	rootCmd.AddCommand(translateCmd)
}

func runLocaleShow(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	lc := svc.Locale.Context()
	cmd.Printf("Language:  %s\n", lc.Language)
	cmd.Printf("Decimal:   %q\n", lc.Separators.Decimal)
	cmd.Printf("Group:     %q\n", lc.Separators.Group)
	if len(svc.Languages) > 0 {
		cmd.Printf("Available: %s\n", strings.Join(svc.Languages, ", "))
	}
	return nil
}

func runLocaleSeparators(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	cmd.Printf("Decimal: %q\n", svc.Locale.GetSeparator(args[0], domain.SeparatorDecimal))
	cmd.Printf("Group:   %q\n", svc.Locale.GetSeparator(args[0], domain.SeparatorGroup))
	return nil
}

func runLocaleFormat(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	n, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, args[0])
	}

	lc := svc.Locale.Context()
	if formatLocale != "" {
		lc = domain.LocaleContext{Language: formatLocale}
	}

	opts := domain.NumberOptions{
		NoGrouping: formatNoGrouping,
		Percent:    formatPercent,
	}
	if formatMinDigits >= 0 {
		opts.MinFractionDigits = domain.Digits(formatMinDigits)
	}
	if formatMaxDigits >= 0 {
		opts.MaxFractionDigits = domain.Digits(formatMaxDigits)
	}

	cmd.Println(svc.Locale.FormatNumber(lc, n, opts))
	return nil
}

func runLocaleSet(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	lc, err := svc.Locale.ChangeLanguage(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Language set to %s\n", lc.Language)
	return nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	vars := make(map[string]any, len(translateVars))
	for _, kv := range translateVars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return fmt.Errorf("%w: --var %q must be name=value", domain.ErrInvalidInput, kv)
		}
		vars[name] = varValue(value)
	}

	lng := svc.Locale.Context().Language
	if translateCount >= 0 {
		cmd.Println(svc.Translator.TCount(lng, args[0], translateCount, vars))
		return nil
	}
	cmd.Println(svc.Translator.T(lng, args[0], vars))
	return nil
}

// varValue passes YYYY-MM-DD values as dates so date formats apply.
func varValue(s string) any {
	if t, err := time.ParseInLocation(domain.DateLayout, s, time.Local); err == nil {
		return t
	}
	return s
}
