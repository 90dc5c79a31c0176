package rank

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/osintworks/recon-cli/internal/model"
)

// Relevance bonuses. Scores start from the result's own confidence, take
// the bonuses below, and are clamped to [0,1].
const (
	keywordWeight = 0.3
	geoWeight     = 0.2
	priorityBonus = 0.5
	recencyBonus  = 0.1
	recencyWindow = 30 * 24 * time.Hour
)

// urgencyResultCap truncates the ranked list per urgency tier.
var urgencyResultCap = map[model.Urgency]int{
	model.UrgencyImmediate:     50,
	model.UrgencyStandard:      200,
	model.UrgencyComprehensive: 1000,
}

// Rank deduplicates, scores, sorts and caps raw collector output.
// Deduplication keeps the first occurrence in input order; ordering of the
// final list is fully determined by the (relevance, confidence) tuple.
func Rank(results []model.IntelligenceResult, strategy model.DiscoveryStrategy) []model.IntelligenceResult {
	return RankAt(results, strategy, time.Now())
}

// RankAt is Rank with an injectable clock for the recency bonus.
func RankAt(results []model.IntelligenceResult, strategy model.DiscoveryStrategy, now time.Time) []model.IntelligenceResult {
	deduped := dedupe(results)

	for i := range deduped {
		deduped[i].RelevanceScore = relevance(deduped[i], strategy, now)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].RelevanceScore != deduped[j].RelevanceScore {
			return deduped[i].RelevanceScore > deduped[j].RelevanceScore
		}
		return deduped[i].Confidence > deduped[j].Confidence
	})

	limit, ok := urgencyResultCap[strategy.Target.Urgency]
	if !ok {
		limit = urgencyResultCap[model.UrgencyStandard]
	}
	if len(deduped) > limit {
		deduped = deduped[:limit]
	}

	if removed := len(results) - len(deduped); removed > 0 {
		zap.L().Debug("rank: processed results",
			zap.Int("raw", len(results)),
			zap.Int("ranked", len(deduped)),
		)
	}

	return deduped
}

// dedupeKey normalizes type:value. NFKC folding collapses width and
// presentation variants of the same characters before lowercasing.
func dedupeKey(r model.IntelligenceResult) string {
	v := norm.NFKC.String(strings.TrimSpace(r.Value))
	return r.DataType + ":" + strings.ToLower(v)
}

func dedupe(results []model.IntelligenceResult) []model.IntelligenceResult {
	seen := make(map[string]bool, len(results))
	out := make([]model.IntelligenceResult, 0, len(results))
	for _, r := range results {
		key := dedupeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func relevance(r model.IntelligenceResult, strategy model.DiscoveryStrategy, now time.Time) float64 {
	score := r.Confidence
	value := strings.ToLower(r.Value)

	if n := len(strategy.SearchKeywords); n > 0 {
		matched := 0
		for _, kw := range strategy.SearchKeywords {
			if strings.Contains(value, strings.ToLower(kw)) {
				matched++
			}
		}
		score += keywordWeight * float64(matched) / float64(n)
	}

	if focus := strategy.Target.GeographicFocus; focus != "" && focus != "global" {
		words := strings.Fields(strings.ToLower(focus))
		if len(words) > 0 {
			matched := 0
			for _, w := range words {
				if strings.Contains(value, w) {
					matched++
				}
			}
			score += geoWeight * float64(matched) / float64(len(words))
		}
	}

	for _, p := range strategy.Target.PriorityData {
		if r.DataType == p {
			score += priorityBonus
			break
		}
	}

	if !r.Timestamp.IsZero() && now.Sub(r.Timestamp) <= recencyWindow {
		score += recencyBonus
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
