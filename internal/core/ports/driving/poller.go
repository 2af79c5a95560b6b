package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

// Poller periodically refreshes datasets.
type Poller interface {
	// RefreshDataEvery fetches every registered dataset each interval,
	// starting one interval from now, until ctx is done.
	RefreshDataEvery(ctx context.Context, interval time.Duration)

	// Status returns the last result per dataset.
	Status() []domain.RefreshResult

	// Wait blocks until in-flight fetches have finished.
	Wait()
}
