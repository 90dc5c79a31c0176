package model

// TargetType classifies what kind of subject an investigation is about.
type TargetType string

const (
	TargetPeopleGroup          TargetType = "people_group"
	TargetBusinessCategory     TargetType = "business_category"
	TargetServiceProviders     TargetType = "service_providers"
	TargetProfessionalCategory TargetType = "professional_category"
	TargetDomainEntity         TargetType = "domain_entity"
	TargetPersonIndividual     TargetType = "person_individual"
	TargetTopicResearch        TargetType = "topic_research"
	TargetMixed                TargetType = "mixed_intelligence"
)

// AllTargetTypes returns the closed set of valid target types.
func AllTargetTypes() []TargetType {
	return []TargetType{
		TargetPeopleGroup, TargetBusinessCategory, TargetServiceProviders,
		TargetProfessionalCategory, TargetDomainEntity, TargetPersonIndividual,
		TargetTopicResearch, TargetMixed,
	}
}

// IntelligenceScope is the geographic tier of an investigation.
type IntelligenceScope string

const (
	ScopeLocal    IntelligenceScope = "local"
	ScopeNational IntelligenceScope = "national"
	ScopeRegional IntelligenceScope = "regional"
	ScopeGlobal   IntelligenceScope = "global"
)

// Urgency controls time budgets and result caps.
type Urgency string

const (
	UrgencyImmediate     Urgency = "immediate"
	UrgencyStandard      Urgency = "standard"
	UrgencyComprehensive Urgency = "comprehensive"
)

// SearchDepth controls how many sources a strategy pulls in.
type SearchDepth string

const (
	DepthQuick         SearchDepth = "quick"
	DepthStandard      SearchDepth = "standard"
	DepthComprehensive SearchDepth = "comprehensive"
)

// RiskTolerance controls request pacing and validation strictness.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// DiscoveryTarget is the classified, immutable descriptor of what is being
// investigated. Built once by the classifier; never mutated afterward.
type DiscoveryTarget struct {
	PrimaryIdentifier  string            `json:"primary_identifier"`
	Type               TargetType        `json:"target_type"`
	Context            string            `json:"context"`
	PriorityData       []string          `json:"priority_data"`
	GeographicFocus    string            `json:"geographic_focus"`
	IndustryKeywords   []string          `json:"industry_keywords"`
	Urgency            Urgency           `json:"urgency_level"`
	Scope              IntelligenceScope `json:"intelligence_scope"`
	SearchDepth        SearchDepth       `json:"search_depth"`
	RiskTolerance      RiskTolerance     `json:"risk_tolerance"`
	CustomRequirements []string          `json:"custom_requirements,omitempty"`
}

// RequestContext carries the caller-supplied questionnaire answers that
// shape classification and planning.
type RequestContext struct {
	Objective          string        `json:"objective"`
	PriorityData       []string      `json:"priority_data"`
	Urgency            Urgency       `json:"urgency"`
	SearchDepth        SearchDepth   `json:"search_depth"`
	RiskTolerance      RiskTolerance `json:"risk_tolerance"`
	CustomRequirements []string      `json:"custom_requirements,omitempty"`
}
