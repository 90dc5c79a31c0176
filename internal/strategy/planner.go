package strategy

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/model"
)

// basePriorities is the default source ranking before target-type and
// objective adjustments.
var basePriorities = map[model.Source]int{
	model.SourceSearchEngines:       10,
	model.SourceSocialMedia:         8,
	model.SourceBusinessDirectories: 7,
	model.SourceJobPortals:          6,
	model.SourceSpecializedTools:    5,
}

// urgencyBudgetMinutes is the total collection time per urgency tier,
// split evenly across selected sources.
var urgencyBudgetMinutes = map[model.Urgency]int{
	model.UrgencyImmediate:     15,
	model.UrgencyStandard:      30,
	model.UrgencyComprehensive: 60,
}

// requestDelaySecs is the inter-request delay per risk tolerance.
var requestDelaySecs = map[model.RiskTolerance]int{
	model.RiskLow:    5,
	model.RiskMedium: 3,
	model.RiskHigh:   1,
}

const (
	defaultMaxRetries  = 3
	defaultTimeoutSecs = 30
)

// sourceOrder fixes iteration order over sources wherever map order would
// leak into the plan.
var sourceOrder = []model.Source{
	model.SourceSearchEngines,
	model.SourceSocialMedia,
	model.SourceBusinessDirectories,
	model.SourceJobPortals,
	model.SourceSpecializedTools,
}

// Plan turns a classified target into an executable collection strategy.
// Pure rule evaluation; same target always yields the same plan.
func Plan(target model.DiscoveryTarget) (model.DiscoveryStrategy, error) {
	if target.PrimaryIdentifier == "" {
		return model.DiscoveryStrategy{}, eris.New("strategy: target has no identifier")
	}

	methods := selectMethods(target)
	priorities := calcPriorities(target)
	allocation := allocateTime(target, methods)

	plan := model.DiscoveryStrategy{
		Target:            target,
		CollectionMethods: methods,
		SearchKeywords:    target.IndustryKeywords,
		SourcePriorities:  priorities,
		TimeAllocation:    allocation,
		ParallelExecution: len(methods) > 2,
		ValidationLevel:   validationLevel(target.RiskTolerance),
		ExpectedResults:   expectedResults(target),
		RiskMitigation:    riskMitigation(target.RiskTolerance),
	}

	zap.L().Debug("strategy: plan built",
		zap.String("target", target.PrimaryIdentifier),
		zap.Int("methods", len(methods)),
		zap.Int("keywords", len(plan.SearchKeywords)),
		zap.Bool("parallel", plan.ParallelExecution),
	)

	return plan, nil
}

func isPeople(t model.TargetType) bool {
	return t == model.TargetPeopleGroup || t == model.TargetProfessionalCategory
}

func isBusiness(t model.TargetType) bool {
	return t == model.TargetBusinessCategory || t == model.TargetServiceProviders
}

// selectMethods picks collection sources. Search engines always run;
// the rest depend on target type and search depth. Output follows
// sourceOrder with no duplicates.
func selectMethods(target model.DiscoveryTarget) []model.Source {
	selected := map[model.Source]bool{model.SourceSearchEngines: true}

	if isPeople(target.Type) {
		selected[model.SourceSocialMedia] = true
		selected[model.SourceJobPortals] = true
	}
	if isBusiness(target.Type) {
		selected[model.SourceBusinessDirectories] = true
		selected[model.SourceSocialMedia] = true
	}
	if target.Type == model.TargetDomainEntity {
		selected[model.SourceSpecializedTools] = true
	}
	if target.SearchDepth == model.DepthComprehensive {
		selected[model.SourceSpecializedTools] = true
	}

	var methods []model.Source
	for _, s := range sourceOrder {
		if selected[s] {
			methods = append(methods, s)
		}
	}
	return methods
}

func calcPriorities(target model.DiscoveryTarget) map[model.Source]int {
	priorities := make(map[model.Source]int, len(basePriorities))
	for s, p := range basePriorities {
		priorities[s] = p
	}

	if isPeople(target.Type) {
		priorities[model.SourceSocialMedia] = 10
		priorities[model.SourceJobPortals] = 9
	} else if isBusiness(target.Type) {
		priorities[model.SourceBusinessDirectories] = 10
		priorities[model.SourceSearchEngines] = 9
	}

	// Objective overrides beat target-type adjustments.
	switch target.Context {
	case "recruitment":
		priorities[model.SourceJobPortals] = 10
		priorities[model.SourceSocialMedia] = 9
	case "lead_generation":
		priorities[model.SourceBusinessDirectories] = 10
		priorities[model.SourceSearchEngines] = 9
	}

	return priorities
}

func allocateTime(target model.DiscoveryTarget, methods []model.Source) map[model.Source]int {
	total, ok := urgencyBudgetMinutes[target.Urgency]
	if !ok {
		total = urgencyBudgetMinutes[model.UrgencyStandard]
	}

	allocation := make(map[model.Source]int, len(methods))
	if len(methods) == 0 {
		return allocation
	}

	per := total / len(methods)
	for _, m := range methods {
		allocation[m] = per
	}
	return allocation
}

func expectedResults(target model.DiscoveryTarget) []string {
	var expected []string
	seen := make(map[string]bool)
	add := func(items ...string) {
		for _, it := range items {
			if !seen[it] {
				seen[it] = true
				expected = append(expected, it)
			}
		}
	}

	if isPeople(target.Type) {
		add("person_profiles", "contact_info", "professional_background")
	} else if isBusiness(target.Type) {
		add("business_profiles", "company_info", "contact_info", "reviews")
	}

	for _, p := range target.PriorityData {
		switch p {
		case "contact_info":
			add("emails", "phone_numbers")
		case "decision_makers":
			add("management_info", "key_personnel")
		case "social_media":
			add("social_profiles", "online_presence")
		}
	}

	return expected
}

func validationLevel(risk model.RiskTolerance) model.ValidationLevel {
	switch risk {
	case model.RiskLow:
		return model.ValidationComprehensive
	case model.RiskMedium:
		return model.ValidationStandard
	default:
		return model.ValidationBasic
	}
}

func riskMitigation(risk model.RiskTolerance) model.RiskMitigation {
	delay, ok := requestDelaySecs[risk]
	if !ok {
		delay = requestDelaySecs[model.RiskMedium]
	}

	return model.RiskMitigation{
		RateLimiting:      true,
		ProxyRotation:     risk != model.RiskLow,
		UserAgentRotation: true,
		RequestDelaySecs:  delay,
		MaxRetries:        defaultMaxRetries,
		TimeoutSecs:       defaultTimeoutSecs,
	}
}
