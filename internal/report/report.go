package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/osintworks/recon-cli/internal/model"
)

// FormatAnalysis generates a human-readable intelligence report.
func FormatAnalysis(inv model.Investigation, a *model.IntelligenceAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Intelligence Report: %s\n", inv.Strategy.Target.PrimaryIdentifier)
	fmt.Fprintf(&b, "Investigation: %s\n", inv.ID)
	fmt.Fprintf(&b, "Status: %s\n\n", inv.Status)

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Results collected: %d\n", len(inv.Results))
	fmt.Fprintf(&b, "- Collection methods: %s\n", joinSources(inv.Strategy.CollectionMethods))
	if inv.EndedAt != nil {
		fmt.Fprintf(&b, "- Duration: %s\n", inv.EndedAt.Sub(inv.StartedAt).Round(time.Second))
	}
	b.WriteString("\n")

	if a == nil {
		b.WriteString("No analysis available.\n")
		return b.String()
	}

	b.WriteString("## Business Profile\n")
	fmt.Fprintf(&b, "- Type: %s (%.0f%% confidence)\n", a.BusinessType, a.BusinessConfidence*100)
	fmt.Fprintf(&b, "- Size estimate: %s\n", a.CompanySizeEstimate)
	fmt.Fprintf(&b, "- Target audience: %s\n", a.TargetAudience)
	if a.IndustryClassification != "" {
		fmt.Fprintf(&b, "- Industry: %s\n", a.IndustryClassification)
	}
	b.WriteString("\n")

	b.WriteString("## Geography\n")
	fmt.Fprintf(&b, "- Primary location: %s\n", a.PrimaryLocation)
	if len(a.SecondaryLocations) > 0 {
		fmt.Fprintf(&b, "- Secondary: %s\n", strings.Join(a.SecondaryLocations, ", "))
	}
	fmt.Fprintf(&b, "- Coverage: %s\n\n", a.GeographicCoverage)

	b.WriteString("## Decision Makers\n")
	if len(a.DecisionMakers) == 0 {
		b.WriteString("None identified.\n")
	}
	for _, d := range a.DecisionMakers {
		fmt.Fprintf(&b, "- **%s** (%s): importance %d, %s priority\n",
			d.Name, d.Title, d.ImportanceScore, d.ContactPriority)
		if len(d.InfluenceAreas) > 0 {
			fmt.Fprintf(&b, "  Influence: %s\n", strings.Join(d.InfluenceAreas, ", "))
		}
	}
	fmt.Fprintf(&b, "Personnel identified: %d\n\n", a.PersonnelCount)

	b.WriteString("## Contact Intelligence\n")
	fmt.Fprintf(&b, "- Email quality: %.0f%%\n", a.ContactQuality.EmailQuality*100)
	fmt.Fprintf(&b, "- Phone quality: %.0f%%\n", a.ContactQuality.PhoneQuality*100)
	fmt.Fprintf(&b, "- Overall: %.0f%%\n", a.ContactQuality.OverallQuality*100)
	if len(a.BestContactRoutes) > 0 {
		fmt.Fprintf(&b, "- Best routes: %s\n", strings.Join(a.BestContactRoutes, ", "))
	}
	fmt.Fprintf(&b, "- Verified contacts: %d\n\n", len(a.VerifiedContacts))

	b.WriteString("## Technology & Market\n")
	fmt.Fprintf(&b, "- Digital maturity: %s\n", a.DigitalMaturity)
	if len(a.TechnologyStack) > 0 {
		fmt.Fprintf(&b, "- Stack: %s\n", strings.Join(a.TechnologyStack, ", "))
	}
	fmt.Fprintf(&b, "- Market position: %s\n", a.Market.MarketPosition)
	for _, g := range a.Market.GrowthIndicators {
		fmt.Fprintf(&b, "- Growth: %s\n", g)
	}
	b.WriteString("\n")

	b.WriteString("## Data Quality\n")
	fmt.Fprintf(&b, "- Quality score: %.0f%%\n", a.DataQualityScore*100)
	fmt.Fprintf(&b, "- Completeness: %.0f%%\n", a.Completeness*100)
	fmt.Fprintf(&b, "- Verified: %d/%d\n", a.Verification.VerifiedItems, a.Verification.TotalItems)
	for _, r := range a.RiskIndicators {
		fmt.Fprintf(&b, "- Risk: %s\n", r)
	}
	b.WriteString("\n")

	b.WriteString("## Insights\n")
	for _, i := range a.KeyInsights {
		fmt.Fprintf(&b, "- %s\n", i)
	}
	b.WriteString("\n## Recommendations\n")
	for _, r := range a.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	if len(a.Gaps) > 0 {
		b.WriteString("\n## Intelligence Gaps\n")
		for _, g := range a.Gaps {
			fmt.Fprintf(&b, "- %s\n", g)
		}
	}

	return b.String()
}

// FormatProgress renders a one-investigation status line block.
func FormatProgress(p model.Progress) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Investigation %s\n", p.InvestigationID)
	fmt.Fprintf(&b, "  Target:   %s\n", p.Target)
	fmt.Fprintf(&b, "  Status:   %s\n", p.Status)
	fmt.Fprintf(&b, "  Elapsed:  %s\n", p.Elapsed.Round(time.Second))
	fmt.Fprintf(&b, "  Results:  %d\n", p.ResultCount)
	fmt.Fprintf(&b, "  Methods:  %s\n", joinSources(p.Methods))

	return b.String()
}

// FormatList renders a table of investigations.
func FormatList(investigations []model.Investigation) string {
	if len(investigations) == 0 {
		return "No investigations.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-10s  %-8s  %s\n", "ID", "STATUS", "RESULTS", "TARGET")
	for _, inv := range investigations {
		fmt.Fprintf(&b, "%-36s  %-10s  %-8d  %s\n",
			inv.ID, inv.Status, len(inv.Results), inv.Strategy.Target.PrimaryIdentifier)
	}
	return b.String()
}

func joinSources(sources []model.Source) string {
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
