package collect

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/osintworks/recon-cli/internal/model"
)

// SourceLimiter enforces a rolling requests-per-minute window plus a
// minimum delay between consecutive calls, independently per source.
type SourceLimiter struct {
	mu       sync.Mutex
	limiters map[model.Source]*rate.Limiter
	lastCall map[model.Source]time.Time
	perMin   int
	minDelay time.Duration
}

// NewSourceLimiter builds a limiter allowing requestsPerMinute calls per
// source with at least minDelay between consecutive calls to the same
// source.
func NewSourceLimiter(requestsPerMinute int, minDelay time.Duration) *SourceLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	return &SourceLimiter{
		limiters: make(map[model.Source]*rate.Limiter),
		lastCall: make(map[model.Source]time.Time),
		perMin:   requestsPerMinute,
		minDelay: minDelay,
	}
}

// Wait blocks until the source may issue its next request. Calls for the
// same source serialize through the per-source token bucket; different
// sources never block each other beyond map access.
func (l *SourceLimiter) Wait(ctx context.Context, source model.Source) error {
	l.mu.Lock()
	lim, ok := l.limiters[source]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), 1)
		l.limiters[source] = lim
	}
	last := l.lastCall[source]
	l.mu.Unlock()

	if l.minDelay > 0 && !last.IsZero() {
		if wait := l.minDelay - time.Since(last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	if err := lim.Wait(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	l.lastCall[source] = time.Now()
	l.mu.Unlock()

	return nil
}
