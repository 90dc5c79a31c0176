package analyze

import (
	"sort"
	"strings"

	"github.com/osintworks/recon-cli/internal/model"
)

// corpus concatenates every textual field of every result into one
// lowercase blob for keyword scans. Context values are appended in sorted
// key order so the corpus is stable.
func corpus(results []model.IntelligenceResult) string {
	var parts []string
	for _, r := range results {
		if r.Value != "" {
			parts = append(parts, r.Value)
		}
		if len(r.Context) > 0 {
			keys := make([]string, 0, len(r.Context))
			for k := range r.Context {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if s, ok := r.Context[k].(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// byType buckets results by their data-type tag.
func byType(results []model.IntelligenceResult) map[string][]model.IntelligenceResult {
	organized := make(map[string][]model.IntelligenceResult)
	for _, r := range results {
		organized[r.DataType] = append(organized[r.DataType], r)
	}
	return organized
}

// matchFraction returns the share of keywords present in text.
func matchFraction(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
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
