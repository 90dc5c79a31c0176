package analyze

import (
	"strings"

	"github.com/osintworks/recon-cli/internal/model"
)

// businessPattern scores one business-type category.
type businessPattern struct {
	keywords   []string
	indicators []string
	weight     float64
}

// businessTypeOrder fixes evaluation order so ties resolve the same way
// every run.
var businessTypeOrder = []string{
	"technology", "healthcare", "finance", "retail",
	"hospitality", "manufacturing", "consulting", "education",
}

var businessPatterns = map[string]businessPattern{
	"technology": {
		keywords:   []string{"software", "tech", "it", "digital", "app", "platform", "ai", "machine learning", "cloud", "saas"},
		indicators: []string{"developer", "engineer", "cto", "technical", "programming", "coding", "development"},
		weight:     1.0,
	},
	"healthcare": {
		keywords:   []string{"medical", "health", "clinic", "hospital", "pharmaceutical", "biotech", "healthcare"},
		indicators: []string{"doctor", "nurse", "medical director", "physician", "therapist", "specialist"},
		weight:     0.95,
	},
	"finance": {
		keywords:   []string{"bank", "financial", "investment", "insurance", "fintech", "trading", "capital"},
		indicators: []string{"cfo", "financial advisor", "analyst", "banker", "trader", "accountant"},
		weight:     0.9,
	},
	"retail": {
		keywords:   []string{"retail", "store", "shop", "commerce", "sales", "merchandise", "fashion"},
		indicators: []string{"sales manager", "store manager", "merchandiser", "buyer", "cashier"},
		weight:     0.85,
	},
	"hospitality": {
		keywords:   []string{"hotel", "restaurant", "tourism", "travel", "hospitality", "catering", "resort"},
		indicators: []string{"chef", "manager", "receptionist", "concierge", "waiter", "host"},
		weight:     0.9,
	},
	"manufacturing": {
		keywords:   []string{"manufacturing", "factory", "production", "industrial", "supply chain", "logistics"},
		indicators: []string{"production manager", "engineer", "operator", "supervisor", "quality control"},
		weight:     0.85,
	},
	"consulting": {
		keywords:   []string{"consulting", "advisory", "strategy", "management", "professional services"},
		indicators: []string{"consultant", "advisor", "partner", "principal", "analyst", "strategist"},
		weight:     0.8,
	},
	"education": {
		keywords:   []string{"education", "training", "university", "school", "learning", "academic"},
		indicators: []string{"teacher", "professor", "instructor", "principal", "dean", "educator"},
		weight:     0.85,
	},
}

var (
	b2bIndicators     = []string{"enterprise", "business", "corporate", "professional", "industrial", "wholesale"}
	b2cIndicators     = []string{"consumer", "customer", "personal", "individual", "retail", "family"}
	startupIndicators = []string{"startup", "founded", "innovation", "disruptive", "emerging", "new"}
)

var businessModelOrder = []string{"saas", "marketplace", "ecommerce", "consulting", "manufacturing"}

var businessModelKeywords = map[string][]string{
	"saas":          {"saas", "software as a service", "subscription", "cloud platform"},
	"marketplace":   {"marketplace", "platform", "connect", "network"},
	"ecommerce":     {"ecommerce", "online store", "shopping", "cart"},
	"consulting":    {"consulting", "advisory", "services", "expertise"},
	"manufacturing": {"manufacturing", "production", "factory", "assembly"},
}

// businessContext is the derived contextual classification.
type businessContext struct {
	TargetAudience string
	BusinessModel  string
	CompanySize    string
	Maturity       string
}

// classifyBusiness scores every category over the corpus and returns the
// argmax type with its weighted confidence. Per category:
// 0.6 x keyword fraction + 0.4 x indicator fraction, times the category's
// confidence weight.
func classifyBusiness(results []model.IntelligenceResult) (string, float64) {
	text := corpus(results)

	bestType := businessTypeOrder[0]
	bestScore := -1.0
	for _, bt := range businessTypeOrder {
		p := businessPatterns[bt]
		score := 0.6*matchFraction(text, p.keywords) + 0.4*matchFraction(text, p.indicators)
		if score > bestScore {
			bestType = bt
			bestScore = score
		}
	}

	return bestType, clamp01(bestScore * businessPatterns[bestType].weight)
}

// analyzeBusinessContext derives audience, model, size and maturity labels
// from independent keyword-group comparisons.
func analyzeBusinessContext(results []model.IntelligenceResult) businessContext {
	text := corpus(results)

	return businessContext{
		TargetAudience: targetAudience(text),
		BusinessModel:  inferBusinessModel(text),
		CompanySize:    estimateCompanySize(text, results),
		Maturity:       assessMaturity(text),
	}
}

func targetAudience(text string) string {
	b2b := 0
	for _, kw := range b2bIndicators {
		if strings.Contains(text, kw) {
			b2b++
		}
	}
	b2c := 0
	for _, kw := range b2cIndicators {
		if strings.Contains(text, kw) {
			b2c++
		}
	}

	switch {
	case b2b > b2c:
		return "B2B"
	case b2c > b2b:
		return "B2C"
	default:
		return "Mixed"
	}
}

func inferBusinessModel(text string) string {
	best := "traditional"
	bestScore := 0
	for _, m := range businessModelOrder {
		score := 0
		for _, kw := range businessModelKeywords[m] {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best
}

func estimateCompanySize(text string, results []model.IntelligenceResult) string {
	people := 0
	for _, r := range results {
		if r.DataType == model.DataTypePersonProfile {
			people++
		}
	}

	switch {
	case containsAny(text, []string{"startup", "small business", "boutique"}):
		return "small (1-50)"
	case containsAny(text, []string{"medium", "growing", "expanding"}):
		return "medium (51-500)"
	case containsAny(text, []string{"enterprise", "corporation", "multinational"}):
		return "large (500+)"
	case people > 20:
		return "medium-large (100+)"
	case people > 5:
		return "small-medium (10-100)"
	default:
		return "small (1-50)"
	}
}

func assessMaturity(text string) string {
	if containsAny(text, startupIndicators) {
		return "startup"
	}
	if containsAny(text, []string{"established", "founded", "years", "experience"}) {
		return "established"
	}
	return "mature"
}
