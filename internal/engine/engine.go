package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/analyze"
	"github.com/osintworks/recon-cli/internal/classify"
	"github.com/osintworks/recon-cli/internal/collect"
	"github.com/osintworks/recon-cli/internal/config"
	"github.com/osintworks/recon-cli/internal/model"
	"github.com/osintworks/recon-cli/internal/rank"
	"github.com/osintworks/recon-cli/internal/store"
	"github.com/osintworks/recon-cli/internal/strategy"
	"github.com/osintworks/recon-cli/internal/tracker"
)

// Outcome is what a finished run hands back. Analysis is nil when the
// investigation was cancelled before the analysis stage.
type Outcome struct {
	Investigation model.Investigation         `json:"investigation"`
	Analysis      *model.IntelligenceAnalysis `json:"analysis,omitempty"`
}

// Engine drives an investigation through classification, planning,
// collection, ranking and analysis.
type Engine struct {
	cfg          config.DiscoveryConfig
	classifier   *classify.Classifier
	orchestrator *collect.Orchestrator
	store        store.Store
	tracker      *tracker.Tracker

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// New creates an Engine with all dependencies.
func New(cfg config.DiscoveryConfig, classifier *classify.Classifier, orch *collect.Orchestrator, st store.Store, tr *tracker.Tracker) *Engine {
	return &Engine{
		cfg:          cfg,
		classifier:   classifier,
		orchestrator: orch,
		store:        st,
		tracker:      tr,
		cancels:      make(map[string]context.CancelFunc),
	}
}

// Run executes a full investigation for the given input.
func (e *Engine) Run(ctx context.Context, input string, reqCtx model.RequestContext) (*Outcome, error) {
	target, err := e.classifier.Classify(input, reqCtx)
	if err != nil {
		return nil, eris.Wrap(err, "engine: classify target")
	}
	strat, err := strategy.Plan(target)
	if err != nil {
		return nil, eris.Wrap(err, "engine: plan strategy")
	}
	return e.execute(ctx, strat, 0)
}

// RunQuick executes a trimmed-down investigation: search engines only,
// a reduced keyword set and a hard result cap.
func (e *Engine) RunQuick(ctx context.Context, input string) (*Outcome, error) {
	reqCtx := model.RequestContext{
		Urgency:     model.UrgencyImmediate,
		SearchDepth: model.DepthQuick,
	}
	target, err := e.classifier.Classify(input, reqCtx)
	if err != nil {
		return nil, eris.Wrap(err, "engine: classify target")
	}
	strat, err := strategy.Plan(target)
	if err != nil {
		return nil, eris.Wrap(err, "engine: plan strategy")
	}

	strat.CollectionMethods = []model.Source{model.SourceSearchEngines}
	strat.SourcePriorities = map[model.Source]int{
		model.SourceSearchEngines: strat.SourcePriorities[model.SourceSearchEngines],
	}
	strat.TimeAllocation = map[model.Source]int{
		model.SourceSearchEngines: strat.TimeAllocation[model.SourceSearchEngines],
	}
	if e.cfg.QuickKeywords > 0 && len(strat.SearchKeywords) > e.cfg.QuickKeywords {
		strat.SearchKeywords = strat.SearchKeywords[:e.cfg.QuickKeywords]
	}

	return e.execute(ctx, strat, e.cfg.QuickResultCap)
}

// Start launches an investigation in the background and returns its ID
// immediately. The run is tracked like any other and can be cancelled or
// inspected while in flight.
func (e *Engine) Start(ctx context.Context, input string, reqCtx model.RequestContext) (string, error) {
	target, err := e.classifier.Classify(input, reqCtx)
	if err != nil {
		return "", eris.Wrap(err, "engine: classify target")
	}
	strat, err := strategy.Plan(target)
	if err != nil {
		return "", eris.Wrap(err, "engine: plan strategy")
	}

	id := e.tracker.Create(strat)
	go func() {
		if _, err := e.executeCreated(ctx, id, strat, 0); err != nil {
			zap.L().Error("engine: background investigation failed",
				zap.String("investigation_id", id),
				zap.Error(err),
			)
		}
	}()
	return id, nil
}

func (e *Engine) execute(ctx context.Context, strat model.DiscoveryStrategy, resultCap int) (*Outcome, error) {
	return e.executeCreated(ctx, e.tracker.Create(strat), strat, resultCap)
}

func (e *Engine) executeCreated(ctx context.Context, id string, strat model.DiscoveryStrategy, resultCap int) (*Outcome, error) {
	runCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancels[id] = cancel
	e.mu.Unlock()
	defer func() {
		cancel()
		e.mu.Lock()
		delete(e.cancels, id)
		e.mu.Unlock()
	}()

	log := zap.L().With(
		zap.String("investigation_id", id),
		zap.String("target", strat.Target.PrimaryIdentifier),
	)

	inv, err := e.tracker.Get(id)
	if err != nil {
		return nil, eris.Wrap(err, "engine: load investigation")
	}
	if err := e.store.CreateInvestigation(ctx, inv); err != nil {
		_ = e.tracker.Fail(id, "persistence unavailable")
		return nil, eris.Wrap(err, "engine: create investigation")
	}

	log.Info("engine: collection started",
		zap.Int("methods", len(strat.CollectionMethods)),
		zap.Int("keywords", len(strat.SearchKeywords)),
	)

	raw, err := e.orchestrator.Execute(runCtx, strat)
	if err != nil {
		if runCtx.Err() != nil {
			return e.markCancelled(ctx, id), nil
		}
		e.fail(ctx, id, err)
		return nil, eris.Wrap(err, "engine: collect")
	}

	ranked := rank.Rank(raw, strat)
	if resultCap > 0 && len(ranked) > resultCap {
		ranked = ranked[:resultCap]
	}

	if err := e.tracker.Record(id, ranked); err != nil {
		// Cancelled while collection was still in flight.
		return e.markCancelled(ctx, id), nil
	}
	if err := e.store.SaveResults(ctx, id, ranked); err != nil {
		log.Warn("engine: save results", zap.Error(err))
	}

	analysis := analyze.Analyze(id, strat.Target.PrimaryIdentifier, ranked)

	if err := e.tracker.Complete(id); err != nil {
		// Cancelled between ranking and analysis; drop the analysis.
		return e.markCancelled(ctx, id), nil
	}
	if err := e.store.SaveAnalysis(ctx, analysis); err != nil {
		log.Warn("engine: save analysis", zap.Error(err))
	}
	if err := e.store.FinishInvestigation(ctx, id, model.StatusCompleted, "", time.Now().UTC()); err != nil {
		log.Warn("engine: finish investigation", zap.Error(err))
	}

	log.Info("engine: investigation completed",
		zap.Int("raw_results", len(raw)),
		zap.Int("ranked_results", len(ranked)),
	)

	final, err := e.tracker.Get(id)
	if err != nil {
		return nil, eris.Wrap(err, "engine: load investigation")
	}
	return &Outcome{Investigation: final, Analysis: &analysis}, nil
}

// Cancel aborts a running investigation. Results collected so far stay
// attached to it.
func (e *Engine) Cancel(ctx context.Context, id string) error {
	if err := e.tracker.Cancel(id); err != nil {
		return eris.Wrap(err, "engine: cancel")
	}

	e.mu.Lock()
	cancel, ok := e.cancels[id]
	e.mu.Unlock()
	if ok {
		cancel()
	}

	if err := e.store.FinishInvestigation(ctx, id, model.StatusCancelled, "", time.Now().UTC()); err != nil {
		zap.L().Warn("engine: persist cancellation", zap.String("investigation_id", id), zap.Error(err))
	}
	return nil
}

// Progress reports the current state of an investigation.
func (e *Engine) Progress(id string) (model.Progress, error) {
	return e.tracker.Progress(id)
}

// Get returns a tracked investigation.
func (e *Engine) Get(id string) (model.Investigation, error) {
	return e.tracker.Get(id)
}

// List returns all tracked investigations, newest first.
func (e *Engine) List() []model.Investigation {
	return e.tracker.List()
}

// Purge drops finished investigations older than the configured retention
// window from both the tracker and the store.
func (e *Engine) Purge(ctx context.Context) (int, error) {
	maxAge := time.Duration(e.cfg.PurgeAfterHours) * time.Hour
	e.tracker.Purge(maxAge)

	removed, err := e.store.PurgeOlderThan(ctx, time.Now().UTC().Add(-maxAge))
	return removed, eris.Wrap(err, "engine: purge store")
}

func (e *Engine) markCancelled(ctx context.Context, id string) *Outcome {
	if err := e.tracker.Cancel(id); err == nil {
		// Cancellation came from the parent context, not Cancel; the
		// store has not been told yet.
		if serr := e.store.FinishInvestigation(context.WithoutCancel(ctx), id, model.StatusCancelled, "", time.Now().UTC()); serr != nil {
			zap.L().Warn("engine: persist cancellation", zap.String("investigation_id", id), zap.Error(serr))
		}
	}

	zap.L().Info("engine: investigation cancelled", zap.String("investigation_id", id))

	inv, err := e.tracker.Get(id)
	if err != nil {
		return &Outcome{}
	}
	return &Outcome{Investigation: inv}
}

func (e *Engine) fail(ctx context.Context, id string, cause error) {
	if err := e.tracker.Fail(id, cause.Error()); err != nil {
		zap.L().Warn("engine: mark failed", zap.String("investigation_id", id), zap.Error(err))
	}
	if err := e.store.FinishInvestigation(context.WithoutCancel(ctx), id, model.StatusFailed, cause.Error(), time.Now().UTC()); err != nil {
		zap.L().Warn("engine: persist failure", zap.String("investigation_id", id), zap.Error(err))
	}
}
