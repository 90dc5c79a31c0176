package classify

import "github.com/osintworks/recon-cli/internal/model"

// locationRule maps a substring of the input to a canonical place and scope.
type locationRule struct {
	Match string                  `yaml:"match"`
	Name  string                  `yaml:"name"`
	Scope model.IntelligenceScope `yaml:"scope"`
}

// Rules holds every pattern table the classifier consults. All tables have
// compiled-in defaults and can be overridden from a YAML file.
type Rules struct {
	PeoplePatterns   []string `yaml:"people_patterns"`
	BusinessPatterns []string `yaml:"business_patterns"`
	ServicePatterns  []string `yaml:"service_patterns"`
	TopicPatterns    []string `yaml:"topic_patterns"`

	// Locations are scanned in order; the first match sets the geographic
	// focus and scope tier.
	Locations []locationRule `yaml:"locations"`

	IndustryKeywords map[string][]string `yaml:"industry_keywords"`
	Synonyms         map[string][]string `yaml:"synonyms"`
	LocationVariants map[string][]string `yaml:"location_variants"`
	IndustryTerms    map[string][]string `yaml:"industry_terms"`
}

// DefaultRules returns the compiled-in classification tables.
func DefaultRules() Rules {
	return Rules{
		PeoplePatterns: []string{
			`\b(unemployed|jobless|seeking|looking for work|available)\b.*\b(developers?|engineers?|managers?|workers?)\b`,
			`\b(developers?|engineers?|professionals?)\b.*\b(in|from|at)\b.*\b(riyadh|jeddah|dubai)\b`,
			`\b(job seekers?|candidates?|applicants?)\b`,
			`\b(freelancers?|contractors?|consultants?)\b`,
			`\b(delivery|driver|courier)\b.*\b(workers?|staff|personnel)\b`,
		},
		BusinessPatterns: []string{
			`\b(hotels?|restaurants?|companies?|businesses?)\b.*\b(in|at|from)\b.*\b(riyadh|dubai|saudi)\b`,
			`\b(conference|event|wedding)\b.*\b(organizers?|planners?|companies?)\b`,
			`\b(tech|technology|software|it)\b.*\b(companies?|firms?|startups?)\b`,
			`\b(retail|shops?|stores?|outlets?)\b`,
		},
		ServicePatterns: []string{
			`\b(catering|logistics|transportation|delivery)\b.*\b(services?|companies?)\b`,
			`\b(marketing|advertising|consulting)\b.*\b(agencies?|firms?)\b`,
			`\b(legal|law|accounting|finance)\b.*\b(firms?|offices?)\b`,
		},
		TopicPatterns: []string{
			`\b(artificial intelligence|ai|machine learning|ml)\b.*\b(companies?|research|development)\b`,
			`\b(renewable energy|solar|wind|green technology)\b`,
			`\b(fintech|blockchain|cryptocurrency|digital banking)\b`,
		},
		Locations: []locationRule{
			{Match: "riyadh", Name: "Riyadh", Scope: model.ScopeLocal},
			{Match: "jeddah", Name: "Jeddah", Scope: model.ScopeLocal},
			{Match: "dubai", Name: "Dubai", Scope: model.ScopeLocal},
			{Match: "saudi", Name: "Saudi Arabia", Scope: model.ScopeNational},
			{Match: "uae", Name: "UAE", Scope: model.ScopeNational},
			{Match: "gulf", Name: "Gulf Region", Scope: model.ScopeRegional},
			{Match: "gcc", Name: "GCC Countries", Scope: model.ScopeRegional},
		},
		IndustryKeywords: map[string][]string{
			"technology":  {"tech", "software", "developer", "programmer", "it", "ai", "digital"},
			"hospitality": {"hotel", "restaurant", "tourism", "travel", "hospitality"},
			"finance":     {"bank", "financial", "fintech", "investment", "accounting"},
			"healthcare":  {"medical", "health", "clinic", "hospital", "pharmaceutical"},
			"retail":      {"retail", "shop", "store", "commerce", "sales"},
			"logistics":   {"delivery", "shipping", "transport", "logistics", "courier"},
			"events":      {"conference", "event", "wedding", "catering", "planning"},
		},
		Synonyms: map[string][]string{
			"hotels":      {"accommodation", "lodging", "hospitality", "resorts", "inns"},
			"restaurants": {"dining", "eateries", "food service", "catering", "cafes"},
			"developers":  {"programmers", "software engineers", "coders", "technical staff"},
			"unemployed":  {"jobless", "seeking employment", "available for work", "between jobs"},
			"companies":   {"businesses", "enterprises", "corporations", "firms", "organizations"},
		},
		LocationVariants: map[string][]string{
			"riyadh":       {"الرياض", "Ar Riyadh", "Riyadh City", "KSA Riyadh"},
			"saudi arabia": {"KSA", "Saudi", "Kingdom of Saudi Arabia", "المملكة العربية السعودية"},
			"dubai":        {"Dubai UAE", "Emirates Dubai", "دبي"},
			"gulf":         {"GCC", "Gulf Region", "Gulf States", "Arabian Gulf"},
		},
		IndustryTerms: map[string][]string{
			"technology":  {"tech", "IT", "software", "digital", "innovation", "startup"},
			"hospitality": {"tourism", "travel", "leisure", "hospitality industry"},
			"finance":     {"banking", "financial services", "fintech", "investment"},
		},
	}
}

// typeKeywords are appended to the keyword set based on the detected type.
var typeKeywords = map[model.TargetType][]string{
	model.TargetPeopleGroup:      {"professionals", "staff", "personnel", "team", "employees"},
	model.TargetBusinessCategory: {"company", "business", "enterprise", "organization"},
	model.TargetServiceProviders: {"services", "provider", "agency", "firm"},
}

// industryOrder fixes the scan order over IndustryKeywords so detection is
// deterministic regardless of map iteration.
var industryOrder = []string{
	"technology", "hospitality", "finance", "healthcare", "retail", "logistics", "events",
}
