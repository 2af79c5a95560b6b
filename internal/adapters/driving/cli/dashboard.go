package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/covidstats/internal/adapters/driving/tui"
)

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard shows the latest national and hospital figures, refreshes
them on the configured interval and switches language on the fly.

Controls:
  tab      - Switch between stats and hospitals
  ↑/k, ↓/j - Scroll the hospital list
  r        - Refresh now
  l        - Next language
  ?        - Toggle help
  q        - Quit`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}
	if !isTerminal() {
		return errors.New("dashboard requires a terminal; use the value or last commands instead")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in dashboard: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if svc.WatchLocales != nil {
		go svc.WatchLocales(cmd.Context()) //nolint:errcheck
	}

	ports := &tui.Ports{
		Stats:           svc.Stats,
		Hospitals:       svc.Hospitals,
		Locale:          svc.Locale,
		Translator:      svc.Translator,
		Languages:       svc.Languages,
		Fields:          svc.Config.Dashboard,
		RefreshInterval: svc.Config.Refresh.Interval,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
