package analyze

import (
	"strings"

	"github.com/osintworks/recon-cli/internal/model"
)

var growthKeywords = []string{"growing", "expanding", "new", "recent", "launched", "funding", "investment", "hiring"}

var competitorKeywords = []string{"competitor", "rival", "alternative", "similar", "market leader"}

// opportunityPatterns map a business type to phrases whose words signal an
// opening for that industry.
var opportunityPatterns = map[string][]string{
	"technology": {"digital transformation", "automation", "ai implementation"},
	"healthcare": {"telemedicine", "digital health", "patient management"},
	"finance":    {"fintech solutions", "digital banking", "payment systems"},
	"retail":     {"e-commerce", "online presence", "customer experience"},
}

// analyzeMarket scans the corpus for growth, opportunity and competition
// signals relative to the classified business type.
func analyzeMarket(results []model.IntelligenceResult, businessType string) model.MarketSignals {
	text := corpus(results)

	var growth []string
	for _, kw := range growthKeywords {
		if strings.Contains(text, kw) {
			growth = append(growth, titleCase(kw)+" activity detected")
		}
	}
	if len(growth) == 0 {
		growth = []string{"No clear growth signals detected"}
	}

	var opportunities []string
	for _, phrase := range opportunityPatterns[businessType] {
		if containsAny(text, strings.Fields(phrase)) {
			opportunities = append(opportunities, titleCase(phrase)+" opportunity")
		}
	}
	if len(opportunities) == 0 {
		opportunities = []string{"Standard business opportunities apply"}
	}

	mentions := 0
	for _, kw := range competitorKeywords {
		if strings.Contains(text, kw) {
			mentions++
		}
	}

	position := "limited competition visible"
	switch {
	case mentions > 2:
		position = "competitive market"
	case mentions > 0:
		position = "moderate competition"
	}

	return model.MarketSignals{
		CompetitionLevel:    position,
		CompetitiveMentions: mentions,
		MarketPosition:      position,
		GrowthIndicators:    growth,
		Opportunities:       opportunities,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
