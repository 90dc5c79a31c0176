package model

import "time"

// ValidationStatus tracks whether a result has been checked.
type ValidationStatus string

const (
	ValidationPending   ValidationStatus = "pending"
	ValidationValidated ValidationStatus = "validated"
	ValidationFailed    ValidationStatus = "failed"
)

// Well-known data types carried by IntelligenceResult.DataType.
const (
	DataTypeEmail           = "email"
	DataTypePhone           = "phone"
	DataTypeContactInfo     = "contact_info"
	DataTypeBusinessProfile = "business_profile"
	DataTypePersonProfile   = "person_profile"
	DataTypeSocialProfile   = "social_profile"
	DataTypeBusinessInfo    = "business_info"
)

// IntelligenceResult is one collected finding.
type IntelligenceResult struct {
	ID                 string           `json:"id"`
	InvestigationID    string           `json:"investigation_id"`
	DataType           string           `json:"data_type"`
	Value              string           `json:"value"`
	Confidence         float64          `json:"confidence"`
	SourceMethod       string           `json:"source_method"`
	SourceURL          string           `json:"source_url,omitempty"`
	Context            map[string]any   `json:"context,omitempty"`
	Timestamp          time.Time        `json:"timestamp"`
	ValidationStatus   ValidationStatus `json:"validation_status"`
	Enrichment         map[string]any   `json:"enrichment,omitempty"`
	GeographicLocation string           `json:"geographic_location,omitempty"`
	RelevanceScore     float64          `json:"relevance_score"`
}

// ContextString returns the context value for key if it is a string.
func (r IntelligenceResult) ContextString(key string) string {
	if r.Context == nil {
		return ""
	}
	if s, ok := r.Context[key].(string); ok {
		return s
	}
	return ""
}
