package analyze

import "github.com/osintworks/recon-cli/internal/model"

// Risk rule thresholds.
const (
	lowConfidenceThreshold   = 0.6
	lowCompletenessThreshold = 0.5
	lowContactThreshold      = 0.5
	minDataPoints            = 10
)

// expectedDataTypes drive the completeness score: the share of these
// categories present in the result set.
var expectedDataTypes = []string{
	model.DataTypeContactInfo,
	model.DataTypeBusinessInfo,
	model.DataTypePersonProfile,
	model.DataTypeSocialProfile,
}

// riskReport is the output of the risk sub-analyzer.
type riskReport struct {
	DataQuality  float64
	Completeness float64
	Verification model.VerificationStatus
	Indicators   []string
}

func assessRisks(results []model.IntelligenceResult, contactQuality float64) riskReport {
	report := riskReport{DataQuality: 0.5}

	if len(results) > 0 {
		sum := 0.0
		for _, r := range results {
			sum += r.Confidence
		}
		report.DataQuality = sum / float64(len(results))
	}

	found := make(map[string]bool)
	for _, r := range results {
		found[r.DataType] = true
	}
	hits := 0
	for _, dt := range expectedDataTypes {
		if found[dt] {
			hits++
		}
	}
	report.Completeness = float64(hits) / float64(len(expectedDataTypes))

	verified := 0
	for _, r := range results {
		if r.Confidence >= verifiedConfidence {
			verified++
		}
	}
	report.Verification = model.VerificationStatus{
		VerifiedItems: verified,
		TotalItems:    len(results),
	}
	if len(results) > 0 {
		report.Verification.VerificationRate = float64(verified) / float64(len(results))
	}

	if report.DataQuality < lowConfidenceThreshold {
		report.Indicators = append(report.Indicators, "Low average confidence in data sources")
	}
	if report.Completeness < lowCompletenessThreshold {
		report.Indicators = append(report.Indicators, "Incomplete information coverage")
	}
	if contactQuality < lowContactThreshold {
		report.Indicators = append(report.Indicators, "Poor quality contact information")
	}
	if len(results) < minDataPoints {
		report.Indicators = append(report.Indicators, "Limited data points for analysis")
	}
	if len(report.Indicators) == 0 {
		report.Indicators = []string{"No significant risks identified"}
	}

	return report
}
