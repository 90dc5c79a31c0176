package tracker

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/model"
)

// Tracker is the in-process registry of investigations. One coarse mutex
// guards the whole registry; investigations themselves are only mutated
// through Tracker methods.
type Tracker struct {
	mu             sync.Mutex
	investigations map[string]*model.Investigation
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{investigations: make(map[string]*model.Investigation)}
}

// Create registers a new running investigation for the strategy and
// returns its id.
func (t *Tracker) Create(strategy model.DiscoveryStrategy) string {
	inv := &model.Investigation{
		ID:        uuid.NewString(),
		Strategy:  strategy,
		Status:    model.StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	t.mu.Lock()
	t.investigations[inv.ID] = inv
	t.mu.Unlock()

	zap.L().Info("tracker: investigation started",
		zap.String("investigation_id", inv.ID),
		zap.String("target", strategy.Target.PrimaryIdentifier),
	)

	return inv.ID
}

// Record appends results to a running investigation. Terminal
// investigations reject new results.
func (t *Tracker) Record(id string, results []model.IntelligenceResult) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	inv, ok := t.investigations[id]
	if !ok {
		return eris.Errorf("tracker: unknown investigation %s", id)
	}
	if inv.Status != model.StatusRunning {
		return eris.Errorf("tracker: investigation %s is %s, not accepting results", id, inv.Status)
	}

	for i := range results {
		results[i].InvestigationID = id
	}
	inv.Results = append(inv.Results, results...)

	return nil
}

// Complete moves a running investigation to completed.
func (t *Tracker) Complete(id string) error {
	return t.finish(id, model.StatusCompleted, "")
}

// Cancel moves a running investigation to cancelled, freezing its results
// as they are.
func (t *Tracker) Cancel(id string) error {
	return t.finish(id, model.StatusCancelled, "")
}

// Fail moves a running investigation to failed with a reason.
func (t *Tracker) Fail(id string, reason string) error {
	return t.finish(id, model.StatusFailed, reason)
}

func (t *Tracker) finish(id string, status model.InvestigationStatus, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	inv, ok := t.investigations[id]
	if !ok {
		return eris.Errorf("tracker: unknown investigation %s", id)
	}
	if inv.Status.Terminal() {
		return eris.Errorf("tracker: investigation %s already %s", id, inv.Status)
	}

	now := time.Now().UTC()
	inv.Status = status
	inv.EndedAt = &now
	inv.Error = reason

	zap.L().Info("tracker: investigation finished",
		zap.String("investigation_id", id),
		zap.String("status", string(status)),
		zap.Int("results", len(inv.Results)),
	)

	return nil
}

// Get returns a copy of the investigation.
func (t *Tracker) Get(id string) (model.Investigation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	inv, ok := t.investigations[id]
	if !ok {
		return model.Investigation{}, eris.Errorf("tracker: unknown investigation %s", id)
	}
	return snapshot(inv), nil
}

// Progress returns a point-in-time view of the investigation.
func (t *Tracker) Progress(id string) (model.Progress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	inv, ok := t.investigations[id]
	if !ok {
		return model.Progress{}, eris.Errorf("tracker: unknown investigation %s", id)
	}

	elapsed := time.Since(inv.StartedAt)
	if inv.EndedAt != nil {
		elapsed = inv.EndedAt.Sub(inv.StartedAt)
	}

	return model.Progress{
		InvestigationID: inv.ID,
		Target:          inv.Strategy.Target.PrimaryIdentifier,
		Status:          inv.Status,
		StartedAt:       inv.StartedAt,
		EndedAt:         inv.EndedAt,
		Elapsed:         elapsed,
		ResultCount:     len(inv.Results),
		Methods:         inv.Strategy.CollectionMethods,
		KeywordCount:    len(inv.Strategy.SearchKeywords),
	}, nil
}

// List returns copies of all tracked investigations, newest first.
func (t *Tracker) List() []model.Investigation {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Investigation, 0, len(t.investigations))
	for _, inv := range t.investigations {
		out = append(out, snapshot(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Purge drops investigations that started more than maxAge ago and are no
// longer running. Returns the number removed.
func (t *Tracker) Purge(maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, inv := range t.investigations {
		if inv.Status == model.StatusRunning {
			continue
		}
		if inv.StartedAt.Before(cutoff) {
			delete(t.investigations, id)
			removed++
		}
	}

	if removed > 0 {
		zap.L().Info("tracker: purged investigations", zap.Int("removed", removed))
	}

	return removed
}

// snapshot copies an investigation so callers cannot mutate tracker state.
func snapshot(inv *model.Investigation) model.Investigation {
	out := *inv
	out.Results = append([]model.IntelligenceResult(nil), inv.Results...)
	return out
}
