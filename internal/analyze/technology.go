package analyze

import (
	"sort"
	"strings"

	"github.com/osintworks/recon-cli/internal/model"
)

// Digital maturity = 0.5 x category coverage + 0.3 x social signal +
// 0.2 x web signal, bucketed at 0.7 and 0.4.
const (
	advancedMaturityThreshold = 0.7
	moderateMaturityThreshold = 0.4
)

var techCategoryOrder = []string{"cloud", "programming", "databases", "platforms", "security", "mobile"}

var techKeywords = map[string][]string{
	"cloud":       {"aws", "azure", "google cloud", "cloud"},
	"programming": {"python", "java", "javascript", "react", "angular"},
	"databases":   {"mysql", "postgresql", "mongodb", "oracle"},
	"platforms":   {"salesforce", "hubspot", "microsoft", "google workspace"},
	"security":    {"ssl", "https", "encryption", "security"},
	"mobile":      {"ios", "android", "mobile app", "smartphone"},
}

var socialPlatforms = []string{"linkedin", "twitter", "facebook", "instagram"}

var webIndicators = []string{"website", "www.", "http", ".com"}

// techReport is the output of the technology sub-analyzer.
type techReport struct {
	Stack          []string
	Maturity       string
	OnlinePresence []string
}

func analyzeTechnology(results []model.IntelligenceResult) techReport {
	detected := make(map[string]bool)
	categories := make(map[string]bool)
	socialMentions := 0
	webReferences := 0

	for _, r := range results {
		value := strings.ToLower(r.Value)

		if containsAny(value, socialPlatforms) {
			socialMentions++
		}
		if containsAny(value, webIndicators) {
			webReferences++
		}

		for _, cat := range techCategoryOrder {
			for _, kw := range techKeywords[cat] {
				if strings.Contains(value, kw) {
					detected[kw] = true
					categories[cat] = true
				}
			}
		}
	}

	stack := make([]string, 0, len(detected))
	for kw := range detected {
		stack = append(stack, kw)
	}
	sort.Strings(stack)

	techScore := float64(len(categories)) / float64(len(techCategoryOrder))
	socialScore := clamp01(float64(socialMentions) / 4)
	webScore := clamp01(float64(webReferences) / 3)
	maturityScore := techScore*0.5 + socialScore*0.3 + webScore*0.2

	maturity := "basic"
	switch {
	case maturityScore > advancedMaturityThreshold:
		maturity = "advanced"
	case maturityScore > moderateMaturityThreshold:
		maturity = "moderate"
	}

	var presence []string
	if socialMentions > 0 {
		presence = append(presence, "social_media")
	}
	if webReferences > 0 {
		presence = append(presence, "website")
	}

	return techReport{Stack: stack, Maturity: maturity, OnlinePresence: presence}
}
