package analyze

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/model"
)

// Analyze runs every sub-analyzer over the ranked result list and
// assembles one IntelligenceAnalysis. Pure rule evaluation apart from the
// report id and timestamp; the same result list always produces the same
// analytical content.
func Analyze(investigationID, targetIdentifier string, results []model.IntelligenceResult) model.IntelligenceAnalysis {
	organized := byType(results)

	businessType, businessConfidence := classifyBusiness(results)
	bizCtx := analyzeBusinessContext(results)

	personnel := analyzePersonnel(organized[model.DataTypePersonProfile])

	contactData := contactResults(organized)
	contacts := analyzeContacts(contactData)

	geo := analyzeGeography(results)
	tech := analyzeTechnology(results)
	market := analyzeMarket(results, businessType)
	risks := assessRisks(results, contacts.Quality.OverallQuality)

	insights := synthesizeInsights(bizCtx.TargetAudience, personnel, contacts, geo, tech, market)

	analysis := model.IntelligenceAnalysis{
		ID:               uuid.NewString(),
		InvestigationID:  investigationID,
		TargetIdentifier: targetIdentifier,
		AnalyzedAt:       time.Now().UTC(),

		BusinessType:           businessType,
		BusinessConfidence:     businessConfidence,
		IndustryClassification: bizCtx.BusinessModel,
		CompanySizeEstimate:    bizCtx.CompanySize,
		TargetAudience:         bizCtx.TargetAudience,

		GeographicDistribution: geo.Distribution,
		PrimaryLocation:        geo.Primary,
		SecondaryLocations:     geo.Secondary,
		GeographicCoverage:     geo.Coverage,

		DecisionMakers: personnel.DecisionMakers,
		KeyPersonnel:   personnel.KeyPersonnel,
		OrgStructure:   personnel.OrgStructure,
		PersonnelCount: personnel.TotalFound,

		ContactQuality:    contacts.Quality,
		VerifiedContacts:  contacts.VerifiedContacts,
		ContactChannels:   contactChannels(organized),
		BestContactRoutes: contacts.BestMethods,

		Market: market,

		TechnologyStack: tech.Stack,
		DigitalMaturity: tech.Maturity,
		OnlinePresence:  tech.OnlinePresence,

		DataQualityScore: risks.DataQuality,
		Completeness:     risks.Completeness,
		Verification:     risks.Verification,
		RiskIndicators:   risks.Indicators,

		KeyInsights:     insights.KeyInsights,
		Recommendations: append(insights.Recommendations, contacts.Recommendations...),
		FollowUps:       insights.FollowUps,
		Gaps:            insights.Gaps,

		TotalDataPoints: len(results),
		SourcesAnalyzed: countSources(results),
	}

	zap.L().Debug("analyze: analysis assembled",
		zap.String("investigation_id", investigationID),
		zap.String("business_type", businessType),
		zap.Int("decision_makers", len(personnel.DecisionMakers)),
		zap.Int("data_points", len(results)),
	)

	return analysis
}

// contactResults gathers everything usable as contact data: dedicated
// contact_info entries plus standalone email and phone findings.
func contactResults(organized map[string][]model.IntelligenceResult) []model.IntelligenceResult {
	var contacts []model.IntelligenceResult
	contacts = append(contacts, organized[model.DataTypeContactInfo]...)
	contacts = append(contacts, organized[model.DataTypeEmail]...)
	contacts = append(contacts, organized[model.DataTypePhone]...)
	return contacts
}

func contactChannels(organized map[string][]model.IntelligenceResult) []string {
	channels := make(map[string]bool)
	if len(organized[model.DataTypeEmail]) > 0 {
		channels["email"] = true
	}
	if len(organized[model.DataTypePhone]) > 0 {
		channels["phone"] = true
	}
	for _, c := range organized[model.DataTypeContactInfo] {
		switch c.ContextString("channel") {
		case "email":
			channels["email"] = true
		case "phone":
			channels["phone"] = true
		case "website":
			channels["website"] = true
		}
	}
	if len(organized[model.DataTypeSocialProfile]) > 0 {
		channels["social_media"] = true
	}

	out := make([]string, 0, len(channels))
	for ch := range channels {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}

func countSources(results []model.IntelligenceResult) int {
	sources := make(map[string]bool)
	for _, r := range results {
		if r.SourceMethod != "" {
			sources[r.SourceMethod] = true
		}
	}
	return len(sources)
}
