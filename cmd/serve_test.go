package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintworks/recon-cli/internal/classify"
	"github.com/osintworks/recon-cli/internal/collect"
	"github.com/osintworks/recon-cli/internal/config"
	"github.com/osintworks/recon-cli/internal/engine"
	"github.com/osintworks/recon-cli/internal/model"
	"github.com/osintworks/recon-cli/internal/store"
	"github.com/osintworks/recon-cli/internal/tracker"
)

type serveStubCollector struct{}

func (serveStubCollector) Collect(_ context.Context, _ string, _ collect.Params) ([]model.IntelligenceResult, error) {
	return []model.IntelligenceResult{
		{
			DataType:   model.DataTypeEmail,
			Value:      "info@grandhotel.sa",
			Confidence: 0.9,
			Timestamp:  time.Now().UTC(),
		},
	}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *engine.Engine, store.Store) {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	classifier, err := classify.New(classify.DefaultRules(), 50)
	require.NoError(t, err)

	collectors := make(map[model.Source]collect.Collector)
	for _, s := range []model.Source{
		model.SourceSearchEngines, model.SourceSocialMedia,
		model.SourceBusinessDirectories, model.SourceJobPortals,
		model.SourceSpecializedTools,
	} {
		collectors[s] = serveStubCollector{}
	}
	orch := collect.NewOrchestrator(collectors, collect.NewSourceLimiter(6000, 0))

	discoveryCfg := config.DiscoveryConfig{
		MaxKeywords:     50,
		QuickKeywords:   10,
		QuickResultCap:  20,
		PurgeAfterHours: 168,
	}
	eng := engine.New(discoveryCfg, classifier, orch, st, tracker.New())

	return buildRouter(context.Background(), eng, st), eng, st
}

func postInvestigation(t *testing.T, router http.Handler, payload string) map[string]string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/investigations", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestServeHealthz(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServeCreateInvestigation(t *testing.T) {
	router, eng, _ := newTestRouter(t)

	resp := postInvestigation(t, router, `{"target":"hotels in Riyadh","objective":"sales_outreach"}`)
	require.NotEmpty(t, resp["id"])
	assert.Equal(t, "running", resp["status"])

	// The run finishes in the background.
	require.Eventually(t, func() bool {
		inv, err := eng.Get(resp["id"])
		return err == nil && inv.Status == model.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestServeCreateInvestigation_InvalidBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/investigations", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestServeCreateInvestigation_MissingTarget(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/investigations", bytes.NewReader([]byte(`{"objective":"x"}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "target is required")
}

func TestServeCreateInvestigation_BlankTarget(t *testing.T) {
	router, _, _ := newTestRouter(t)

	// Whitespace-only targets fail classification.
	req := httptest.NewRequest(http.MethodPost, "/investigations", bytes.NewReader([]byte(`{"target":"   "}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestServeListInvestigations(t *testing.T) {
	router, _, _ := newTestRouter(t)

	postInvestigation(t, router, `{"target":"hotels in Riyadh"}`)

	req := httptest.NewRequest(http.MethodGet, "/investigations", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var list []model.Investigation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "hotels in Riyadh", list[0].Strategy.Target.PrimaryIdentifier)
}

func TestServeGetInvestigation(t *testing.T) {
	router, eng, _ := newTestRouter(t)

	resp := postInvestigation(t, router, `{"target":"hotels in Riyadh"}`)
	id := resp["id"]

	require.Eventually(t, func() bool {
		inv, err := eng.Get(id)
		return err == nil && inv.Status == model.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/investigations/"+id, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var outcome engine.Outcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
	assert.Equal(t, id, outcome.Investigation.ID)
	assert.Equal(t, model.StatusCompleted, outcome.Investigation.Status)
	assert.NotEmpty(t, outcome.Investigation.Results)
	require.NotNil(t, outcome.Analysis)
}

func TestServeGetInvestigation_NotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/investigations/nope", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServeGetInvestigation_StoreFallback(t *testing.T) {
	router, _, st := newTestRouter(t)

	// An investigation persisted by an earlier process is not in the
	// tracker but still readable over the API.
	inv := model.Investigation{
		ID:        "stored-1",
		Status:    model.StatusCompleted,
		StartedAt: time.Now().UTC().Add(-time.Hour),
		Strategy: model.DiscoveryStrategy{
			Target: model.DiscoveryTarget{PrimaryIdentifier: "hotels in Riyadh"},
		},
	}
	require.NoError(t, st.CreateInvestigation(context.Background(), inv))

	req := httptest.NewRequest(http.MethodGet, "/investigations/stored-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var outcome engine.Outcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
	assert.Equal(t, "stored-1", outcome.Investigation.ID)
	assert.Nil(t, outcome.Analysis)
}

func TestServeCancel_NotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/investigations/nope/cancel", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestServeCancel_Completed(t *testing.T) {
	router, eng, _ := newTestRouter(t)

	resp := postInvestigation(t, router, `{"target":"hotels in Riyadh"}`)
	id := resp["id"]

	require.Eventually(t, func() bool {
		inv, err := eng.Get(id)
		return err == nil && inv.Status == model.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	// Terminal investigations cannot be cancelled.
	req := httptest.NewRequest(http.MethodPost, "/investigations/"+id+"/cancel", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}
