package collect

import (
	"context"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/osintworks/recon-cli/internal/model"
)

// Orchestrator fans a strategy out across its selected sources.
type Orchestrator struct {
	collectors map[model.Source]Collector
	limiter    Limiter
}

// NewOrchestrator wires the source registry and limiter. The limiter may be
// nil when pacing is handled elsewhere.
func NewOrchestrator(collectors map[model.Source]Collector, limiter Limiter) *Orchestrator {
	return &Orchestrator{collectors: collectors, limiter: limiter}
}

// Execute runs every collection method of the strategy and returns the
// union of their results. Parallel strategies fan out with per-source
// failure isolation: a collector error is logged and contributes zero
// results without cancelling its siblings. Sequential strategies run in
// descending priority order. Only ctx cancellation aborts the run.
func (o *Orchestrator) Execute(ctx context.Context, strategy model.DiscoveryStrategy) ([]model.IntelligenceResult, error) {
	if len(strategy.CollectionMethods) == 0 {
		return nil, eris.New("collect: strategy has no collection methods")
	}

	if strategy.ParallelExecution {
		return o.executeParallel(ctx, strategy)
	}
	return o.executeSequential(ctx, strategy)
}

func (o *Orchestrator) executeParallel(ctx context.Context, strategy model.DiscoveryStrategy) ([]model.IntelligenceResult, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var all []model.IntelligenceResult

	for _, source := range strategy.CollectionMethods {
		g.Go(func() error {
			results, err := o.runSource(gCtx, source, strategy)
			if err != nil {
				// Bulkhead: the failing source is dropped, siblings
				// keep running.
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				zap.L().Warn("collect: source failed",
					zap.String("source", string(source)),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			all = append(all, results...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "collect: parallel execution")
	}

	return all, nil
}

func (o *Orchestrator) executeSequential(ctx context.Context, strategy model.DiscoveryStrategy) ([]model.IntelligenceResult, error) {
	ordered := make([]model.Source, len(strategy.CollectionMethods))
	copy(ordered, strategy.CollectionMethods)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strategy.SourcePriorities[ordered[i]] > strategy.SourcePriorities[ordered[j]]
	})

	var all []model.IntelligenceResult
	for _, source := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "collect: sequential execution")
		}

		results, err := o.runSource(ctx, source, strategy)
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(ctx.Err(), "collect: sequential execution")
			}
			zap.L().Warn("collect: source failed",
				zap.String("source", string(source)),
				zap.Error(err),
			)
			continue
		}
		all = append(all, results...)
	}

	return all, nil
}

func (o *Orchestrator) runSource(ctx context.Context, source model.Source, strategy model.DiscoveryStrategy) ([]model.IntelligenceResult, error) {
	collector, ok := o.collectors[source]
	if !ok {
		return nil, eris.Errorf("collect: no collector registered for %s", source)
	}

	if o.limiter != nil && strategy.RiskMitigation.RateLimiting {
		if err := o.limiter.Wait(ctx, source); err != nil {
			return nil, eris.Wrapf(err, "collect: rate limit wait for %s", source)
		}
	}

	results, err := collector.Collect(ctx, strategy.Target.PrimaryIdentifier, paramsFor(strategy, source))
	if err != nil {
		return nil, err
	}

	// Stamp provenance so downstream ranking can apply priority bonuses.
	for i := range results {
		if results[i].SourceMethod == "" {
			results[i].SourceMethod = string(source)
		}
	}

	zap.L().Debug("collect: source finished",
		zap.String("source", string(source)),
		zap.Int("results", len(results)),
	)

	return results, nil
}
