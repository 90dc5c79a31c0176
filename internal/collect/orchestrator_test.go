package collect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintworks/recon-cli/internal/model"
)

// mockCollector returns canned results or a canned error, recording calls.
type mockCollector struct {
	mu      sync.Mutex
	results []model.IntelligenceResult
	err     error
	delay   time.Duration
	calls   int
	params  Params
}

func (m *mockCollector) Collect(ctx context.Context, target string, params Params) ([]model.IntelligenceResult, error) {
	m.mu.Lock()
	m.calls++
	m.params = params
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockCollector) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func resultsFor(source string, n int) []model.IntelligenceResult {
	out := make([]model.IntelligenceResult, n)
	for i := range out {
		out[i] = model.IntelligenceResult{
			DataType:   model.DataTypeBusinessProfile,
			Value:      source,
			Confidence: 0.8,
		}
	}
	return out
}

func testStrategy(parallel bool, methods ...model.Source) model.DiscoveryStrategy {
	priorities := map[model.Source]int{
		model.SourceSearchEngines:       10,
		model.SourceSocialMedia:         8,
		model.SourceBusinessDirectories: 7,
	}
	alloc := make(map[model.Source]int, len(methods))
	for _, m := range methods {
		alloc[m] = 10
	}
	return model.DiscoveryStrategy{
		Target: model.DiscoveryTarget{
			PrimaryIdentifier: "hotels in Riyadh",
			Type:              model.TargetBusinessCategory,
			GeographicFocus:   "Riyadh",
			PriorityData:      []string{"contact_info"},
		},
		CollectionMethods: methods,
		SearchKeywords:    []string{"hotels", "riyadh"},
		SourcePriorities:  priorities,
		TimeAllocation:    alloc,
		ParallelExecution: parallel,
		RiskMitigation:    model.RiskMitigation{MaxRetries: 3, TimeoutSecs: 30},
	}
}

func TestExecuteParallelUnion(t *testing.T) {
	search := &mockCollector{results: resultsFor("search", 3)}
	social := &mockCollector{results: resultsFor("social", 2)}

	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines: search,
		model.SourceSocialMedia:   social,
	}, nil)

	got, err := o.Execute(context.Background(), testStrategy(true,
		model.SourceSearchEngines, model.SourceSocialMedia))
	require.NoError(t, err)

	assert.Len(t, got, 5)
	assert.Equal(t, 1, search.callCount())
	assert.Equal(t, 1, social.callCount())
}

func TestExecuteParallelBulkhead(t *testing.T) {
	search := &mockCollector{results: resultsFor("search", 3)}
	social := &mockCollector{err: errors.New("social source down")}

	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines: search,
		model.SourceSocialMedia:   social,
	}, nil)

	got, err := o.Execute(context.Background(), testStrategy(true,
		model.SourceSearchEngines, model.SourceSocialMedia))
	require.NoError(t, err)

	// Failing source contributes nothing; sibling results survive.
	assert.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, "search", r.Value)
	}
}

func TestExecuteParallelAllFail(t *testing.T) {
	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines: &mockCollector{err: errors.New("down")},
		model.SourceSocialMedia:   &mockCollector{err: errors.New("down")},
	}, nil)

	got, err := o.Execute(context.Background(), testStrategy(true,
		model.SourceSearchEngines, model.SourceSocialMedia))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExecuteSequentialPriorityOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string

	record := func(name string, results []model.IntelligenceResult) Collector {
		return collectorFunc(func(ctx context.Context, target string, params Params) ([]model.IntelligenceResult, error) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return results, nil
		})
	}

	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines:       record("search", resultsFor("search", 1)),
		model.SourceSocialMedia:         record("social", resultsFor("social", 1)),
		model.SourceBusinessDirectories: record("directories", resultsFor("directories", 1)),
	}, nil)

	strategy := testStrategy(false,
		model.SourceBusinessDirectories, model.SourceSocialMedia, model.SourceSearchEngines)

	got, err := o.Execute(context.Background(), strategy)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// Descending priority: search (10) before social (8) before directories (7).
	assert.Equal(t, []string{"search", "social", "directories"}, order)
}

func TestExecuteSequentialSkipsFailedSource(t *testing.T) {
	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines: &mockCollector{err: errors.New("down")},
		model.SourceSocialMedia:   &mockCollector{results: resultsFor("social", 2)},
	}, nil)

	got, err := o.Execute(context.Background(), testStrategy(false,
		model.SourceSearchEngines, model.SourceSocialMedia))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestExecuteCancellation(t *testing.T) {
	slow := &mockCollector{results: resultsFor("search", 1), delay: time.Second}

	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines: slow,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := o.Execute(ctx, testStrategy(true, model.SourceSearchEngines))
	assert.Error(t, err)
}

func TestExecuteNoMethods(t *testing.T) {
	o := NewOrchestrator(nil, nil)
	_, err := o.Execute(context.Background(), model.DiscoveryStrategy{})
	assert.Error(t, err)
}

func TestExecuteMissingCollector(t *testing.T) {
	o := NewOrchestrator(map[model.Source]Collector{}, nil)

	// Parallel: missing collector is isolated like any other failure.
	got, err := o.Execute(context.Background(), testStrategy(true, model.SourceSearchEngines))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunSourceStampsSourceMethod(t *testing.T) {
	c := &mockCollector{results: []model.IntelligenceResult{
		{DataType: model.DataTypeEmail, Value: "info@example.com"},
		{DataType: model.DataTypeEmail, Value: "sales@example.com", SourceMethod: "custom"},
	}}

	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines: c,
	}, nil)

	got, err := o.Execute(context.Background(), testStrategy(true, model.SourceSearchEngines))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "search_engines", got[0].SourceMethod)
	assert.Equal(t, "custom", got[1].SourceMethod)
}

func TestParamsForSource(t *testing.T) {
	c := &mockCollector{results: resultsFor("search", 1)}
	o := NewOrchestrator(map[model.Source]Collector{
		model.SourceSearchEngines: c,
	}, nil)

	strategy := testStrategy(true, model.SourceSearchEngines)
	_, err := o.Execute(context.Background(), strategy)
	require.NoError(t, err)

	assert.Equal(t, strategy.SearchKeywords, c.params.Keywords)
	assert.Equal(t, model.TargetBusinessCategory, c.params.TargetType)
	assert.Equal(t, "Riyadh", c.params.GeographicFocus)
	assert.Equal(t, 10, c.params.TimeLimitMins)
}

// collectorFunc adapts a function to the Collector interface.
type collectorFunc func(ctx context.Context, target string, params Params) ([]model.IntelligenceResult, error)

func (f collectorFunc) Collect(ctx context.Context, target string, params Params) ([]model.IntelligenceResult, error) {
	return f(ctx, target, params)
}
