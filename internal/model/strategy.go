package model

// Source identifies a collection channel.
type Source string

const (
	SourceSearchEngines       Source = "search_engines"
	SourceSocialMedia         Source = "social_media"
	SourceBusinessDirectories Source = "business_directories"
	SourceJobPortals          Source = "job_portals"
	SourceSpecializedTools    Source = "specialized_tools"
)

// ValidationLevel is how strictly collected data is checked.
type ValidationLevel string

const (
	ValidationBasic         ValidationLevel = "basic"
	ValidationStandard      ValidationLevel = "standard"
	ValidationComprehensive ValidationLevel = "comprehensive"
)

// RiskMitigation is the operational safety profile attached to a strategy.
type RiskMitigation struct {
	RateLimiting      bool `json:"rate_limiting"`
	ProxyRotation     bool `json:"proxy_rotation"`
	UserAgentRotation bool `json:"user_agent_rotation"`
	RequestDelaySecs  int  `json:"request_delay_secs"`
	MaxRetries        int  `json:"max_retries"`
	TimeoutSecs       int  `json:"timeout_secs"`
}

// DiscoveryStrategy is the executable collection plan for one target.
type DiscoveryStrategy struct {
	Target            DiscoveryTarget `json:"target"`
	CollectionMethods []Source        `json:"collection_methods"`
	SearchKeywords    []string        `json:"search_keywords"`
	SourcePriorities  map[Source]int  `json:"source_priorities"`
	TimeAllocation    map[Source]int  `json:"time_allocation"`
	ParallelExecution bool            `json:"parallel_execution"`
	ValidationLevel   ValidationLevel `json:"validation_level"`
	ExpectedResults   []string        `json:"expected_results"`
	RiskMitigation    RiskMitigation  `json:"risk_mitigation"`
}

// TotalMinutes sums the per-source time allocation.
func (s DiscoveryStrategy) TotalMinutes() int {
	total := 0
	for _, m := range s.TimeAllocation {
		total += m
	}
	return total
}
