package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
)

var (
	dataDataset string
	dataJSON    bool
	seriesLast  int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [dataset...]",
	Short: "Fetch datasets and report their size",
	Long: `Fetch downloads the named datasets (stats, hospitals) and prints how
many rows were loaded. Without arguments every dataset is fetched.`,
	RunE: runFetch,
}

var valueCmd = &cobra.Command{
	Use:   "value [field] [date]",
	Short: "Show a value on a given day",
	Long: `Value prints the value of a column on a day given as YYYY-MM-DD.
Nothing is printed when no row falls on that day.`,
	Args: cobra.ExactArgs(2),
	RunE: runValue,
}

var lastCmd = &cobra.Command{
	Use:   "last [field]",
	Short: "Show the newest non-zero value of a column",
	Args:  cobra.ExactArgs(1),
	RunE:  runLast,
}

var seriesCmd = &cobra.Command{
	Use:   "series [field]",
	Short: "Show a hospitals column as chart points",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeries,
}

var hospitalsCmd = &cobra.Command{
	Use:   "hospitals",
	Short: "List the hospital directory",
	RunE:  runHospitals,
}

func init() {
	for _, cmd := range []*cobra.Command{valueCmd, lastCmd} {
		cmd.Flags().StringVarP(&dataDataset, "dataset", "d", string(domain.DatasetStats), "dataset to query (stats, hospitals)")
	}
	for _, cmd := range []*cobra.Command{valueCmd, lastCmd, seriesCmd, hospitalsCmd} {
		cmd.Flags().BoolVar(&dataJSON, "json", false, "output as JSON")
	}
	seriesCmd.Flags().IntVarP(&seriesLast, "last", "n", 0, "only the newest N points (0 = all)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(lastCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(hospitalsCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	ids := domain.Datasets
	if len(args) > 0 {
		ids = make([]domain.DatasetID, 0, len(args))
		for _, arg := range args {
			id, err := domain.ParseDatasetID(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}

	for _, id := range ids {
		ds := datasetFor(id)
		start := time.Now()
		if err := ds.FetchData(cmd.Context()); err != nil {
			return fmt.Errorf("fetching %s: %w", id, err)
		}
		cmd.Printf("%-10s %6d rows  (%s)\n", id, len(ds.Data()), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func runValue(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context(), dataDataset)
	if err != nil {
		return err
	}

	date, err := time.ParseInLocation(domain.DateLayout, args[1], time.Local)
	if err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, args[1])
	}

	return printObservation(cmd, args[0], ds.GetValueOn(args[0], date))
}

func runLast(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context(), dataDataset)
	if err != nil {
		return err
	}
	return printObservation(cmd, args[0], ds.GetLastValue(args[0]))
}

func runSeries(cmd *cobra.Command, args []string) error {
	if _, err := loadDataset(cmd.Context(), string(domain.DatasetHospitals)); err != nil {
		return err
	}

	points := svc.Hospitals.GetSeries(args[0])
	if seriesLast > 0 && len(points) > seriesLast {
		points = points[len(points)-seriesLast:]
	}

	if dataJSON {
		return writeJSON(cmd, points)
	}

	lc := svc.Locale.Context()
	for _, p := range points {
		date := time.UnixMilli(p.Timestamp).UTC().Format(domain.DateLayout)
		cmd.Printf("%d  %s  %s\n", p.Timestamp, date, formatValue(lc, &p.Value))
	}
	return nil
}

func runHospitals(cmd *cobra.Command, _ []string) error {
	if _, err := loadDataset(cmd.Context(), string(domain.DatasetHospitals)); err != nil {
		return err
	}

	dir := svc.Hospitals.Hospitals()
	if dataJSON {
		return writeJSON(cmd, dir)
	}

	ids := make([]string, 0, len(dir))
	for id := range dir {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if len(ids) == 0 {
		cmd.Println("No hospitals loaded.")
		return nil
	}
	for _, id := range ids {
		cmd.Printf("%-10s %s\n", id, dir[id])
	}
	return nil
}

func datasetFor(id domain.DatasetID) driving.DatasetService {
	if id == domain.DatasetHospitals {
		return svc.Hospitals
	}
	return svc.Stats
}

// loadDataset resolves name and fetches the dataset when nothing is loaded.
func loadDataset(ctx context.Context, name string) (driving.DatasetService, error) {
	if err := requireServices(); err != nil {
		return nil, err
	}
	id, err := domain.ParseDatasetID(name)
	if err != nil {
		return nil, err
	}

	ds := datasetFor(id)
	if !ds.Loaded() {
		if err := ds.FetchData(ctx); err != nil {
			return nil, fmt.Errorf("fetching %s: %w", id, err)
		}
	}
	return ds, nil
}

func printObservation(cmd *cobra.Command, field string, obs domain.Observation) error {
	if dataJSON {
		return writeJSON(cmd, obs)
	}
	if !obs.Found() {
		cmd.Printf("%s: no value\n", field)
		return nil
	}
	lc := svc.Locale.Context()
	cmd.Printf("%s  %s  %s\n", obs.Date.Format(domain.DateLayout), field, formatValue(lc, obs.Value))
	return nil
}

func formatValue(lc domain.LocaleContext, v *domain.Value) string {
	if v == nil {
		return "-"
	}
	if f, ok := v.Float(); ok {
		return svc.Locale.FormatNumber(lc, f, domain.NumberOptions{})
	}
	return v.Raw
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
