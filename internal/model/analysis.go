package model

import "time"

// DecisionPower tiers derived from importance score.
type DecisionPower string

const (
	PowerHigh       DecisionPower = "high"
	PowerMediumHigh DecisionPower = "medium-high"
	PowerMedium     DecisionPower = "medium"
	PowerLow        DecisionPower = "low"
)

// ContactPriority buckets derived from importance and reachability.
type ContactPriority string

const (
	PriorityCritical ContactPriority = "critical"
	PriorityHigh     ContactPriority = "high"
	PriorityMedium   ContactPriority = "medium"
	PriorityLow      ContactPriority = "low"
)

// Person is an identified individual with scoring attached.
type Person struct {
	Name            string        `json:"name"`
	Title           string        `json:"title"`
	Department      string        `json:"department,omitempty"`
	ImportanceScore int           `json:"importance_score"`
	DecisionPower   DecisionPower `json:"decision_power"`
	Email           string        `json:"email,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	ProfileURL      string        `json:"profile_url,omitempty"`
	Location        string        `json:"location,omitempty"`
	Confidence      float64       `json:"confidence"`
}

// DecisionMaker is a person ranked high enough to drive purchasing.
type DecisionMaker struct {
	Person
	InfluenceAreas  []string        `json:"influence_areas,omitempty"`
	ContactPriority ContactPriority `json:"contact_priority"`
}

// OrgStructure summarizes departments and seniority distribution.
type OrgStructure struct {
	Departments       map[string]int `json:"departments"`
	HierarchyLevels   map[string]int `json:"hierarchy_levels"`
	LargestDepartment string         `json:"largest_department,omitempty"`
	ManagementRatio   float64        `json:"management_ratio"`
}

// ContactQuality scores reachable channels.
type ContactQuality struct {
	EmailQuality   float64 `json:"email_quality"`
	PhoneQuality   float64 `json:"phone_quality"`
	OverallQuality float64 `json:"overall_quality"`
}

// VerifiedContact is a contact item that passed format validation.
type VerifiedContact struct {
	DataType   string   `json:"data_type"`
	Value      string   `json:"value"`
	Confidence float64  `json:"confidence"`
	Source     string   `json:"source"`
	Factors    []string `json:"factors,omitempty"`
}

// MarketSignals captures competitive posture evidence.
type MarketSignals struct {
	CompetitionLevel    string   `json:"competition_level"`
	CompetitiveMentions int      `json:"competitive_mentions"`
	MarketPosition      string   `json:"market_position"`
	GrowthIndicators    []string `json:"growth_indicators,omitempty"`
	Opportunities       []string `json:"opportunities,omitempty"`
}

// VerificationStatus summarizes validation coverage.
type VerificationStatus struct {
	VerifiedItems    int     `json:"verified_items"`
	TotalItems       int     `json:"total_items"`
	VerificationRate float64 `json:"verification_rate"`
}

// IntelligenceAnalysis is the full analytical report for one investigation.
type IntelligenceAnalysis struct {
	ID               string    `json:"id"`
	InvestigationID  string    `json:"investigation_id"`
	TargetIdentifier string    `json:"target_identifier"`
	AnalyzedAt       time.Time `json:"analyzed_at"`

	BusinessType           string  `json:"business_type"`
	BusinessConfidence     float64 `json:"business_confidence"`
	IndustryClassification string  `json:"industry_classification"`
	CompanySizeEstimate    string  `json:"company_size_estimate"`
	TargetAudience         string  `json:"target_audience"`

	GeographicDistribution map[string]int `json:"geographic_distribution"`
	PrimaryLocation        string         `json:"primary_location,omitempty"`
	SecondaryLocations     []string       `json:"secondary_locations,omitempty"`
	GeographicCoverage     string         `json:"geographic_coverage"`

	DecisionMakers []DecisionMaker `json:"decision_makers"`
	KeyPersonnel   []Person        `json:"key_personnel"`
	OrgStructure   OrgStructure    `json:"org_structure"`
	PersonnelCount int             `json:"personnel_count"`

	ContactQuality    ContactQuality    `json:"contact_quality"`
	VerifiedContacts  []VerifiedContact `json:"verified_contacts"`
	ContactChannels   []string          `json:"contact_channels"`
	BestContactRoutes []string          `json:"best_contact_routes"`

	Market MarketSignals `json:"market_signals"`

	TechnologyStack []string `json:"technology_stack,omitempty"`
	DigitalMaturity string   `json:"digital_maturity"`
	OnlinePresence  []string `json:"online_presence,omitempty"`

	DataQualityScore float64            `json:"data_quality_score"`
	Completeness     float64            `json:"completeness"`
	Verification     VerificationStatus `json:"verification"`
	RiskIndicators   []string           `json:"risk_indicators,omitempty"`

	KeyInsights     []string `json:"key_insights"`
	Recommendations []string `json:"recommendations"`
	FollowUps       []string `json:"follow_ups,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`

	TotalDataPoints int `json:"total_data_points"`
	SourcesAnalyzed int `json:"sources_analyzed"`
}
