package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintworks/recon-cli/internal/model"
)

func sampleResults() []model.IntelligenceResult {
	return []model.IntelligenceResult{
		textResult("luxury hotel and resort in riyadh with concierge and chef"),
		textResult("hospitality group expanding, hiring, recent funding"),
		email("ceo@grandhotel.sa", 0.9),
		email("reservations@grandhotel.sa", 0.85),
		phone("+966512345678"),
		personResult("Aisha Al-Qahtani", "CEO", map[string]any{"email": "ceo@grandhotel.sa"}),
		personResult("Omar Hassan", "Sales Coordinator", nil),
		{DataType: model.DataTypeSocialProfile, Value: "linkedin.com/company/grandhotel", Confidence: 0.8},
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	analysis := Analyze("inv-1", "hotels in Riyadh", sampleResults())

	assert.Equal(t, "inv-1", analysis.InvestigationID)
	assert.Equal(t, "hotels in Riyadh", analysis.TargetIdentifier)
	assert.Equal(t, "hospitality", analysis.BusinessType)
	assert.Greater(t, analysis.BusinessConfidence, 0.0)

	// Only the CEO qualifies as decision maker.
	require.Len(t, analysis.DecisionMakers, 1)
	assert.Equal(t, "Aisha Al-Qahtani", analysis.DecisionMakers[0].Name)
	assert.Equal(t, 2, analysis.PersonnelCount)

	assert.Equal(t, "riyadh", analysis.PrimaryLocation)
	assert.Contains(t, analysis.ContactChannels, "email")
	assert.Contains(t, analysis.ContactChannels, "phone")
	assert.Contains(t, analysis.ContactChannels, "social_media")
	assert.Equal(t, len(sampleResults()), analysis.TotalDataPoints)

	assert.NotEmpty(t, analysis.KeyInsights)
	assert.NotEmpty(t, analysis.RiskIndicators)
}

func TestAnalyzeDeterministicContent(t *testing.T) {
	first := Analyze("inv-1", "target", sampleResults())
	second := Analyze("inv-1", "target", sampleResults())

	// Identity and timestamp differ per run; analytical content must not.
	first.ID, second.ID = "", ""
	first.AnalyzedAt = second.AnalyzedAt
	assert.Equal(t, first, second)
}

func TestAnalyzeEmptyResults(t *testing.T) {
	analysis := Analyze("inv-2", "target", nil)

	assert.Zero(t, analysis.TotalDataPoints)
	assert.Empty(t, analysis.DecisionMakers)
	assert.Equal(t, "unknown", analysis.PrimaryLocation)
	assert.Contains(t, analysis.RiskIndicators, "Limited data points for analysis")
}

func TestGeographicDistribution(t *testing.T) {
	results := []model.IntelligenceResult{
		textResult("office in riyadh"),
		textResult("riyadh headquarters"),
		textResult("branch in jeddah"),
		{DataType: model.DataTypeBusinessInfo, Value: "x", GeographicLocation: "Dubai"},
	}

	geo := analyzeGeography(results)

	assert.Equal(t, "riyadh", geo.Primary)
	assert.Equal(t, 2, geo.Distribution["riyadh"])
	assert.Contains(t, geo.Secondary, "jeddah")
	assert.Contains(t, geo.Secondary, "dubai")
	assert.Equal(t, "regional", geo.Coverage)
}

func TestTechnologyAnalysis(t *testing.T) {
	results := []model.IntelligenceResult{
		textResult("runs on aws cloud with postgresql"),
		textResult("linkedin and twitter presence, https://www.example.com"),
		textResult("mobile app on ios and android"),
	}

	tech := analyzeTechnology(results)

	assert.Contains(t, tech.Stack, "aws")
	assert.Contains(t, tech.Stack, "postgresql")
	assert.Contains(t, tech.Stack, "ios")
	assert.Contains(t, tech.OnlinePresence, "social_media")
	assert.Contains(t, tech.OnlinePresence, "website")
	assert.NotEmpty(t, tech.Maturity)
}

func TestMarketSignals(t *testing.T) {
	results := []model.IntelligenceResult{
		textResult("growing fast, recently launched, hiring aggressively"),
		textResult("main competitor is a market leader, similar alternative exists"),
	}

	market := analyzeMarket(results, "technology")

	assert.Equal(t, "competitive market", market.MarketPosition)
	assert.GreaterOrEqual(t, market.CompetitiveMentions, 3)
	assert.NotEmpty(t, market.GrowthIndicators)
	assert.NotContains(t, market.GrowthIndicators, "No clear growth signals detected")
}

func TestAssessRisks(t *testing.T) {
	lowConf := []model.IntelligenceResult{
		{DataType: model.DataTypeBusinessInfo, Value: "a", Confidence: 0.3},
		{DataType: model.DataTypeBusinessInfo, Value: "b", Confidence: 0.4},
	}

	report := assessRisks(lowConf, 0.2)

	assert.InDelta(t, 0.35, report.DataQuality, 1e-9)
	assert.Contains(t, report.Indicators, "Low average confidence in data sources")
	assert.Contains(t, report.Indicators, "Poor quality contact information")
	assert.Contains(t, report.Indicators, "Limited data points for analysis")
	assert.Zero(t, report.Verification.VerifiedItems)
}

func TestAssessRisksClean(t *testing.T) {
	var results []model.IntelligenceResult
	for _, dt := range []string{
		model.DataTypeContactInfo, model.DataTypeBusinessInfo,
		model.DataTypePersonProfile, model.DataTypeSocialProfile,
	} {
		for i := 0; i < 3; i++ {
			results = append(results, model.IntelligenceResult{DataType: dt, Value: "x", Confidence: 0.9})
		}
	}

	report := assessRisks(results, 0.8)

	assert.Equal(t, []string{"No significant risks identified"}, report.Indicators)
	assert.InDelta(t, 1.0, report.Completeness, 1e-9)
	assert.InDelta(t, 1.0, report.Verification.VerificationRate, 1e-9)
}

func TestInsightSynthesisDeterministic(t *testing.T) {
	personnel := personnelReport{DecisionMakers: make([]model.DecisionMaker, 6)}
	contacts := contactReport{Quality: model.ContactQuality{OverallQuality: 0.8}}
	geo := geoReport{Coverage: "international"}
	tech := techReport{Maturity: "advanced"}
	market := model.MarketSignals{GrowthIndicators: []string{"a", "b", "c"}}

	first := synthesizeInsights("B2B", personnel, contacts, geo, tech, market)
	second := synthesizeInsights("B2B", personnel, contacts, geo, tech, market)
	assert.Equal(t, first, second)

	assert.Contains(t, first.KeyInsights, "Well-represented leadership team with 6 decision makers identified")
	assert.Contains(t, first.Recommendations, "Proceed with direct contact strategy")
	assert.Contains(t, first.FollowUps, "Growth-supporting solutions and services")
	assert.Empty(t, first.Gaps)
}

func TestInsightSynthesisGaps(t *testing.T) {
	r := synthesizeInsights("Mixed",
		personnelReport{DecisionMakers: make([]model.DecisionMaker, 1)},
		contactReport{},
		geoReport{Coverage: "local"},
		techReport{Maturity: "basic"},
		model.MarketSignals{})

	assert.Contains(t, r.Gaps, "Additional research needed to identify more decision makers")
	assert.Contains(t, r.Gaps, "Additional contact research required")
	assert.Contains(t, r.FollowUps, "Digital transformation consulting or solutions")
}
