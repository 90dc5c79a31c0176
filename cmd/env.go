package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/osintworks/recon-cli/internal/classify"
	"github.com/osintworks/recon-cli/internal/collect"
	"github.com/osintworks/recon-cli/internal/engine"
	"github.com/osintworks/recon-cli/internal/model"
	"github.com/osintworks/recon-cli/internal/store"
	"github.com/osintworks/recon-cli/internal/tracker"
)

// env bundles the wired components a command needs.
type env struct {
	Engine *engine.Engine
	Store  store.Store
}

func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "recon.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEnv wires the full investigation engine: classifier, web collectors
// for every collection channel, rate limiting, proxy rotation, the tracker
// and the migrated store.
func initEnv(ctx context.Context) (*env, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	rules, err := classify.LoadRules(cfg.Discovery.RulesPath)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	classifier, err := classify.New(rules, cfg.Discovery.MaxKeywords)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	proxies := collect.NewRoundRobinProxies(cfg.Collect.Proxies)
	collectors := make(map[model.Source]collect.Collector)
	for _, source := range []model.Source{
		model.SourceSearchEngines, model.SourceSocialMedia,
		model.SourceBusinessDirectories, model.SourceJobPortals,
		model.SourceSpecializedTools,
	} {
		collectors[source] = collect.NewWebCollector(source, collect.WebCollectorOptions{
			BaseURL: cfg.Collect.SearchBaseURL,
			Proxies: proxies,
		})
	}

	limiter := collect.NewSourceLimiter(
		cfg.Collect.RequestsPerMinute,
		time.Duration(cfg.Collect.MinDelaySecs)*time.Second,
	)
	orch := collect.NewOrchestrator(collectors, limiter)

	eng := engine.New(cfg.Discovery, classifier, orch, st, tracker.New())
	return &env{Engine: eng, Store: st}, nil
}
