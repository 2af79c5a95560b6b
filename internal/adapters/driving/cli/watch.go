package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/logger"
)

var (
	watchInterval    time.Duration
	watchMetricsAddr string
	watchDuration    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the datasets refreshed",
	Long: `Watch fetches both datasets, then refetches them every interval and
prints one line per completed fetch. It runs until interrupted.

Use --metrics-addr to expose Prometheus metrics about the fetches, e.g.
  covidstats watch --interval 1m --metrics-addr :9090`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "refresh interval (default from config)")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve /metrics on this address")
	watchCmd.Flags().DurationVar(&watchDuration, "duration", 0, "stop after this long (0 = until interrupted)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	interval := watchInterval
	if interval == 0 {
		interval = svc.Config.Refresh.Interval
	}
	if interval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", domain.ErrInvalidInput)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if watchDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchDuration)
		defer cancel()
	}

	if watchMetricsAddr != "" {
		if svc.Metrics == nil {
			return errors.New("metrics not configured")
		}
		go serveMetrics(ctx, watchMetricsAddr, svc.Metrics)
		cmd.Printf("Metrics on http://%s/metrics\n", watchMetricsAddr)
	}

	if svc.WatchLocales != nil {
		go func() {
			if err := svc.WatchLocales(ctx); err != nil {
				logger.Warn("locales: watcher stopped: %v", err)
			}
		}()
	}

	for _, id := range domain.Datasets {
		if err := datasetFor(id).FetchData(ctx); err != nil {
			cmd.PrintErrf("%s: initial fetch failed: %v\n", id, err)
		}
	}

	cmd.Printf("Watching %d datasets every %s\n", len(domain.Datasets), interval)
	svc.Poller.RefreshDataEvery(ctx, interval)

	reportFetches(ctx, cmd, time.Second)
	svc.Poller.Wait()
	return nil
}

// reportFetches prints each new poller result until ctx is done.
func reportFetches(ctx context.Context, cmd *cobra.Command, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	seen := make(map[domain.DatasetID]string)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, r := range svc.Poller.Status() {
				if seen[r.Dataset] == r.FetchID {
					continue
				}
				seen[r.Dataset] = r.FetchID
				cmd.Println(formatResult(r))
			}
		}
	}
}

func formatResult(r domain.RefreshResult) string {
	at := r.EndedAt.Format("15:04:05")
	if !r.Success {
		return fmt.Sprintf("%s  %-10s error  %s", at, r.Dataset, r.Error)
	}
	return fmt.Sprintf("%s  %-10s %6d rows  %s", at, r.Dataset, r.Rows, r.Duration().Round(time.Millisecond))
}

// serveMetrics serves handler on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background()) //nolint:errcheck
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics: %v", err)
	}
}
