package analyze

import (
	"regexp"
	"strings"

	"github.com/osintworks/recon-cli/internal/model"
)

const verifiedConfidence = 0.8

var (
	personalDomains    = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}
	suspiciousPatterns = []string{"noreply", "donotreply", "test", "temp"}
	executivePatterns  = []string{"ceo@", "president@", "founder@", "director@"}
)

var (
	saudiMobileRe   = regexp.MustCompile(`^\+?966[5][0-9]{8}$`)
	saudiLandlineRe = regexp.MustCompile(`^\+?966[1-4][0-9]{7}$`)
	uaeMobileRe     = regexp.MustCompile(`^\+?971[5][0-9]{8}$`)
	internationalRe = regexp.MustCompile(`^\+[1-9][0-9]{1,14}$`)
	nonDigitRe      = regexp.MustCompile(`[^\d+]`)
)

// contactReport is the output of the contact-quality sub-analyzer.
type contactReport struct {
	Quality          model.ContactQuality
	VerifiedContacts []model.VerifiedContact
	BestMethods      []string
	Recommendations  []string

	businessEmails  int
	executiveEmails int
	mobilePhones    int
	landlinePhones  int
}

// analyzeContacts scores emails and phone numbers for reachability.
// Email quality = (0.8 x business + 1.0 x executive - 0.5 x suspicious) / total,
// clamped. Phone quality = regional-format-valid / total. Overall =
// 0.6 x email + 0.4 x phone.
func analyzeContacts(contacts []model.IntelligenceResult) contactReport {
	if len(contacts) == 0 {
		return contactReport{
			BestMethods:     []string{"general_inquiry"},
			Recommendations: []string{"Additional research needed to find contact information"},
		}
	}

	report := contactReport{}

	var emails, phones []model.IntelligenceResult
	for _, c := range contacts {
		switch c.DataType {
		case model.DataTypeEmail:
			emails = append(emails, c)
		case model.DataTypePhone:
			phones = append(phones, c)
		}
	}

	report.Quality.EmailQuality = scoreEmails(emails, &report)
	report.Quality.PhoneQuality = scorePhones(phones, &report)
	report.Quality.OverallQuality = 0.6*report.Quality.EmailQuality + 0.4*report.Quality.PhoneQuality

	report.VerifiedContacts = verifiedContacts(contacts)
	report.BestMethods = bestContactMethods(report)
	report.Recommendations = contactRecommendations(report)

	return report
}

func scoreEmails(emails []model.IntelligenceResult, report *contactReport) float64 {
	if len(emails) == 0 {
		return 0
	}

	business, executive, suspicious := 0, 0, 0
	for _, e := range emails {
		addr := strings.ToLower(e.Value)
		if !containsAny(addr, personalDomains) {
			business++
		}
		if containsAny(addr, suspiciousPatterns) {
			suspicious++
		}
		if containsAny(addr, executivePatterns) {
			executive++
		}
	}

	report.businessEmails = business
	report.executiveEmails = executive

	score := (float64(business)*0.8 + float64(executive)*1.0 - float64(suspicious)*0.5) / float64(len(emails))
	return clamp01(score)
}

func scorePhones(phones []model.IntelligenceResult, report *contactReport) float64 {
	if len(phones) == 0 {
		return 0
	}

	valid := 0
	for _, p := range phones {
		cleaned := nonDigitRe.ReplaceAllString(strings.TrimSpace(p.Value), "")
		switch {
		case saudiMobileRe.MatchString(cleaned), uaeMobileRe.MatchString(cleaned):
			report.mobilePhones++
			valid++
		case saudiLandlineRe.MatchString(cleaned):
			report.landlinePhones++
			valid++
		case internationalRe.MatchString(cleaned):
			valid++
		}
	}

	return float64(valid) / float64(len(phones))
}

func verifiedContacts(contacts []model.IntelligenceResult) []model.VerifiedContact {
	var verified []model.VerifiedContact
	for _, c := range contacts {
		if c.Confidence < verifiedConfidence {
			continue
		}
		verified = append(verified, model.VerifiedContact{
			DataType:   c.DataType,
			Value:      c.Value,
			Confidence: c.Confidence,
			Source:     c.SourceMethod,
			Factors:    verificationFactors(c),
		})
	}
	return verified
}

func verificationFactors(c model.IntelligenceResult) []string {
	var factors []string
	if c.Confidence >= 0.9 {
		factors = append(factors, "High confidence source")
	}
	if c.SourceMethod == "linkedin_profile" || c.SourceMethod == "company_website" {
		factors = append(factors, "Professional source")
	}
	if c.DataType == model.DataTypeEmail && strings.Contains(c.Value, "@") {
		if !containsAny(strings.ToLower(c.Value), personalDomains) {
			factors = append(factors, "Business email domain")
		}
	}
	return factors
}

func bestContactMethods(report contactReport) []string {
	var methods []string
	if report.businessEmails > 0 {
		methods = append(methods, "business_email")
	}
	if report.executiveEmails > 0 {
		methods = append(methods, "executive_email")
	}
	if report.mobilePhones > 0 {
		methods = append(methods, "mobile_phone")
	}
	if report.landlinePhones > 0 {
		methods = append(methods, "office_phone")
	}
	if len(methods) == 0 {
		methods = []string{"general_inquiry"}
	}
	return methods
}

func contactRecommendations(report contactReport) []string {
	var recs []string
	if report.businessEmails > 0 {
		recs = append(recs, "Prioritize business email addresses for professional outreach")
	}
	if report.executiveEmails > 0 {
		recs = append(recs, "Direct executive email contacts available for high-level discussions")
	}
	if report.mobilePhones > 0 {
		recs = append(recs, "Mobile numbers available for urgent communications")
	}
	if report.Quality.EmailQuality < 0.5 {
		recs = append(recs, "Consider additional research to find higher-quality contact information")
	}
	return recs
}
