package analyze

import (
	"fmt"

	"github.com/osintworks/recon-cli/internal/model"
)

// Insight rule thresholds, named so they can be recalibrated and
// substituted in tests.
const (
	strongLeadershipCount  = 5
	highContactQuality     = 0.7
	moderateContactQuality = 0.4
	growthSignalCount      = 2
)

// insightReport holds the four narrative lists produced by the fixed
// rule set.
type insightReport struct {
	KeyInsights     []string
	Recommendations []string
	FollowUps       []string
	Gaps            []string
}

// synthesizeInsights applies a fixed ordered if/append rule set over the
// sub-analyzer outputs. Same inputs always yield the same lists.
func synthesizeInsights(
	audience string,
	personnel personnelReport,
	contacts contactReport,
	geo geoReport,
	tech techReport,
	market model.MarketSignals,
) insightReport {
	var r insightReport

	switch audience {
	case "B2B":
		r.KeyInsights = append(r.KeyInsights, "B2B focused organization - decision making likely involves multiple stakeholders")
		r.Recommendations = append(r.Recommendations, "Target key decision makers and technical evaluators in sales process")
	case "B2C":
		r.KeyInsights = append(r.KeyInsights, "Consumer-focused business - marketing and customer experience are key")
		r.Recommendations = append(r.Recommendations, "Focus on customer-facing teams and marketing decision makers")
	}

	makers := len(personnel.DecisionMakers)
	if makers > strongLeadershipCount {
		r.KeyInsights = append(r.KeyInsights, fmt.Sprintf("Well-represented leadership team with %d decision makers identified", makers))
		r.FollowUps = append(r.FollowUps, "Multiple entry points for business development")
	} else if makers > 0 {
		r.KeyInsights = append(r.KeyInsights, fmt.Sprintf("Limited leadership visibility - %d key contacts found", makers))
		r.Gaps = append(r.Gaps, "Additional research needed to identify more decision makers")
	}

	switch quality := contacts.Quality.OverallQuality; {
	case quality > highContactQuality:
		r.KeyInsights = append(r.KeyInsights, "High-quality contact information available for direct outreach")
		r.Recommendations = append(r.Recommendations, "Proceed with direct contact strategy")
	case quality > moderateContactQuality:
		r.KeyInsights = append(r.KeyInsights, "Moderate contact quality - some verification recommended")
		r.Recommendations = append(r.Recommendations, "Verify contact information before major outreach campaigns")
	default:
		r.KeyInsights = append(r.KeyInsights, "Limited reliable contact information found")
		r.Gaps = append(r.Gaps, "Additional contact research required")
	}

	switch geo.Coverage {
	case "international":
		r.KeyInsights = append(r.KeyInsights, "International presence - consider global market approach")
		r.Recommendations = append(r.Recommendations, "Tailor communications for international business context")
	case "regional":
		r.KeyInsights = append(r.KeyInsights, "Regional operations - understand local market dynamics")
	}

	switch tech.Maturity {
	case "advanced":
		r.KeyInsights = append(r.KeyInsights, "Digitally mature organization with advanced technology adoption")
		r.Recommendations = append(r.Recommendations, "Leverage technology-focused value propositions")
	case "basic":
		r.KeyInsights = append(r.KeyInsights, "Limited digital presence - potential for digital transformation opportunities")
		r.FollowUps = append(r.FollowUps, "Digital transformation consulting or solutions")
	}

	if len(market.GrowthIndicators) > growthSignalCount {
		r.KeyInsights = append(r.KeyInsights, "Multiple growth signals detected - organization likely in expansion mode")
		r.FollowUps = append(r.FollowUps, "Growth-supporting solutions and services")
	}

	return r
}
