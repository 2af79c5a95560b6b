package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure Poller implements the interface.
var _ driving.Poller = (*Poller)(nil)

// Poller refreshes datasets on a fixed interval.
// Fetches are fire-and-forget: a slow fetch does not delay the next tick,
// and overlapping fetches commit in completion order.
type Poller struct {
	fetchers []driving.DatasetFetcher

	mu      sync.Mutex
	tasks   []domain.RefreshTask
	results map[domain.DatasetID]domain.RefreshResult
	wg      sync.WaitGroup

	newID func() string
	now   func() time.Time
}

// NewPoller creates a poller for the given datasets.
func NewPoller(fetchers ...driving.DatasetFetcher) *Poller {
	return &Poller{
		fetchers: fetchers,
		results:  make(map[domain.DatasetID]domain.RefreshResult),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// RefreshDataEvery starts one ticker per dataset. The first fetch runs one
// interval after the call. Polling stops when ctx is done; there is no
// other way to cancel it. A non-positive interval disables polling.
func (p *Poller) RefreshDataEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		logger.Warn("poller: refresh disabled (interval %s)", interval)
		return
	}

	for _, f := range p.fetchers {
		p.mu.Lock()
		p.tasks = append(p.tasks, domain.RefreshTask{
			Dataset:   f.Dataset(),
			Interval:  interval,
			StartedAt: p.now(),
		})
		p.mu.Unlock()

		go p.run(ctx, f, interval)
	}
	logger.Info("poller: refreshing %d datasets every %s", len(p.fetchers), interval)
}

// run is the ticker loop of one dataset.
func (p *Poller) run(ctx context.Context, f driving.DatasetFetcher, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx, f)
		}
	}
}

// fetch runs one refresh in its own goroutine.
func (p *Poller) fetch(ctx context.Context, f driving.DatasetFetcher) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		result := domain.RefreshResult{
			FetchID:   p.newID(),
			Dataset:   f.Dataset(),
			StartedAt: p.now(),
		}

		err := f.FetchData(ctx)

		result.EndedAt = p.now()
		if err != nil {
			result.Error = err.Error()
			logger.Error("poller: %s fetch %s failed: %v", result.Dataset, result.FetchID, err)
		} else {
			result.Success = true
			if q, ok := f.(driving.TimeSeriesQuery); ok {
				result.Rows = len(q.Data())
			}
			logger.Debug("poller: %s fetch %s took %s", result.Dataset, result.FetchID, result.Duration())
		}

		p.mu.Lock()
		p.results[result.Dataset] = result
		p.mu.Unlock()
	}()
}

// Status returns the last result per dataset, in registration order.
// Datasets that have not been fetched yet are omitted.
func (p *Poller) Status() []domain.RefreshResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.RefreshResult, 0, len(p.results))
	for _, f := range p.fetchers {
		if r, ok := p.results[f.Dataset()]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Tasks returns the registered refresh tasks.
func (p *Poller) Tasks() []domain.RefreshTask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.RefreshTask(nil), p.tasks...)
}

// Wait blocks until in-flight fetches have finished.
func (p *Poller) Wait() {
	p.wg.Wait()
}
