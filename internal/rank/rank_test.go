package rank

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintworks/recon-cli/internal/model"
)

func rankStrategy() model.DiscoveryStrategy {
	return model.DiscoveryStrategy{
		Target: model.DiscoveryTarget{
			PrimaryIdentifier: "hotels in Riyadh",
			Type:              model.TargetBusinessCategory,
			GeographicFocus:   "Riyadh",
			PriorityData:      []string{model.DataTypeEmail},
			Urgency:           model.UrgencyStandard,
		},
		SearchKeywords: []string{"hotels", "riyadh"},
	}
}

func TestDedupeFirstSeenWins(t *testing.T) {
	results := []model.IntelligenceResult{
		{DataType: model.DataTypeEmail, Value: "Info@Example.com", SourceMethod: "search_engines", Confidence: 0.9},
		{DataType: model.DataTypeEmail, Value: "  info@example.com ", SourceMethod: "social_media", Confidence: 0.7},
		{DataType: model.DataTypePhone, Value: "info@example.com", Confidence: 0.5},
	}

	deduped := dedupe(results)
	require.Len(t, deduped, 2)

	// First occurrence kept, later duplicate dropped; different data type
	// with the same value survives.
	assert.Equal(t, "search_engines", deduped[0].SourceMethod)
	assert.Equal(t, model.DataTypePhone, deduped[1].DataType)
}

func TestDedupeNormalizesVariants(t *testing.T) {
	// Fullwidth letters fold onto their ASCII counterparts.
	results := []model.IntelligenceResult{
		{DataType: model.DataTypeEmail, Value: "ｉｎｆｏ@example.com"},
		{DataType: model.DataTypeEmail, Value: "info@example.com"},
	}
	assert.Len(t, dedupe(results), 1)
}

func TestRelevanceScoring(t *testing.T) {
	strategy := rankStrategy()
	now := time.Now()

	tests := []struct {
		name   string
		result model.IntelligenceResult
		want   float64
	}{
		{
			"confidence only",
			model.IntelligenceResult{DataType: model.DataTypeBusinessInfo, Value: "something else", Confidence: 0.4},
			0.4,
		},
		{
			"full keyword and geo overlap",
			model.IntelligenceResult{DataType: model.DataTypeBusinessInfo, Value: "luxury hotels riyadh directory", Confidence: 0.2},
			0.2 + 0.3 + 0.2,
		},
		{
			"half keyword overlap",
			model.IntelligenceResult{DataType: model.DataTypeBusinessInfo, Value: "hotels listing", Confidence: 0.1},
			0.1 + 0.15,
		},
		{
			"priority type bonus",
			model.IntelligenceResult{DataType: model.DataTypeEmail, Value: "sales@acme.com", Confidence: 0.2},
			0.2 + 0.5,
		},
		{
			"clamped at one",
			model.IntelligenceResult{DataType: model.DataTypeEmail, Value: "hotels riyadh booking", Confidence: 0.9, Timestamp: now},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relevance(tt.result, strategy, now)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestRelevanceRecency(t *testing.T) {
	strategy := rankStrategy()
	now := time.Now()

	fresh := model.IntelligenceResult{DataType: model.DataTypeBusinessInfo, Value: "x", Confidence: 0.3, Timestamp: now.Add(-24 * time.Hour)}
	stale := model.IntelligenceResult{DataType: model.DataTypeBusinessInfo, Value: "x", Confidence: 0.3, Timestamp: now.Add(-31 * 24 * time.Hour)}

	assert.InDelta(t, 0.4, relevance(fresh, strategy, now), 1e-9)
	assert.InDelta(t, 0.3, relevance(stale, strategy, now), 1e-9)
}

func TestRankOrdering(t *testing.T) {
	strategy := rankStrategy()

	results := []model.IntelligenceResult{
		{DataType: model.DataTypeBusinessInfo, Value: "unrelated", Confidence: 0.3},
		{DataType: model.DataTypeEmail, Value: "sales@hotel.com", Confidence: 0.5},
		{DataType: model.DataTypeBusinessInfo, Value: "hotels riyadh", Confidence: 0.3},
	}

	ranked := RankAt(results, strategy, time.Now())
	require.Len(t, ranked, 3)

	// Priority email first, then keyword/geo match, then the leftover.
	assert.Equal(t, "sales@hotel.com", ranked[0].Value)
	assert.Equal(t, "hotels riyadh", ranked[1].Value)
	assert.Equal(t, "unrelated", ranked[2].Value)

	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.RelevanceScore, 0.0)
		assert.LessOrEqual(t, r.RelevanceScore, 1.0)
	}
}

func TestRankConfidenceTieBreak(t *testing.T) {
	strategy := model.DiscoveryStrategy{
		Target: model.DiscoveryTarget{Urgency: model.UrgencyStandard},
	}

	results := []model.IntelligenceResult{
		{DataType: model.DataTypeBusinessInfo, Value: "a", Confidence: 0.2},
		{DataType: model.DataTypeBusinessInfo, Value: "b", Confidence: 0.8},
	}

	ranked := RankAt(results, strategy, time.Now())
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Value)
}

func TestRankCaps(t *testing.T) {
	tests := []struct {
		urgency model.Urgency
		want    int
	}{
		{model.UrgencyImmediate, 50},
		{model.UrgencyStandard, 200},
		{model.UrgencyComprehensive, 1000},
		{"", 200},
	}

	for _, tt := range tests {
		t.Run(string(tt.urgency), func(t *testing.T) {
			strategy := model.DiscoveryStrategy{
				Target: model.DiscoveryTarget{Urgency: tt.urgency},
			}

			results := make([]model.IntelligenceResult, 1200)
			for i := range results {
				results[i] = model.IntelligenceResult{
					DataType: model.DataTypeBusinessInfo,
					Value:    fmt.Sprintf("value-%d", i),
				}
			}

			ranked := RankAt(results, strategy, time.Now())
			assert.Len(t, ranked, tt.want)
		})
	}
}

func TestRankIdempotent(t *testing.T) {
	strategy := rankStrategy()
	now := time.Now()

	results := []model.IntelligenceResult{
		{DataType: model.DataTypeEmail, Value: "a@x.com", Confidence: 0.5},
		{DataType: model.DataTypeBusinessInfo, Value: "hotels riyadh", Confidence: 0.4},
		{DataType: model.DataTypePhone, Value: "+966512345678", Confidence: 0.6},
	}

	once := RankAt(results, strategy, now)
	twice := RankAt(once, strategy, now)
	assert.Equal(t, once, twice)
}
