package classify

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/osintworks/recon-cli/internal/model"
)

// domainPattern recognizes bare domain names like acme-corp.io.
var domainPattern = regexp.MustCompile(`\b[a-zA-Z0-9-]+\.[a-zA-Z]{2,}\b`)

// Classifier turns raw target text plus request context into a
// DiscoveryTarget. It holds only compiled tables and is safe for
// concurrent use; Classify never mutates state.
type Classifier struct {
	rules       Rules
	people      []*regexp.Regexp
	business    []*regexp.Regexp
	service     []*regexp.Regexp
	topic       []*regexp.Regexp
	maxKeywords int
}

// New compiles the rule tables into a Classifier. maxKeywords caps the
// expanded keyword list; <=0 means no cap.
func New(rules Rules, maxKeywords int) (*Classifier, error) {
	c := &Classifier{rules: rules, maxKeywords: maxKeywords}

	var err error
	if c.people, err = compileAll(rules.PeoplePatterns); err != nil {
		return nil, eris.Wrap(err, "classify: compile people patterns")
	}
	if c.business, err = compileAll(rules.BusinessPatterns); err != nil {
		return nil, eris.Wrap(err, "classify: compile business patterns")
	}
	if c.service, err = compileAll(rules.ServicePatterns); err != nil {
		return nil, eris.Wrap(err, "classify: compile service patterns")
	}
	if c.topic, err = compileAll(rules.TopicPatterns); err != nil {
		return nil, eris.Wrap(err, "classify: compile topic patterns")
	}

	return c, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "pattern %q", p)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Classify builds the immutable target descriptor for input.
func (c *Classifier) Classify(input string, reqCtx model.RequestContext) (model.DiscoveryTarget, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.DiscoveryTarget{}, eris.New("classify: empty target input")
	}

	targetType := c.detectType(input)
	location, scope := c.detectLocation(input)
	industries := c.detectIndustries(input)
	keywords := c.expandKeywords(input, targetType, industries)

	target := model.DiscoveryTarget{
		PrimaryIdentifier:  input,
		Type:               targetType,
		Context:            reqCtx.Objective,
		PriorityData:       reqCtx.PriorityData,
		GeographicFocus:    location,
		IndustryKeywords:   keywords,
		Urgency:            reqCtx.Urgency,
		Scope:              scope,
		SearchDepth:        reqCtx.SearchDepth,
		RiskTolerance:      reqCtx.RiskTolerance,
		CustomRequirements: reqCtx.CustomRequirements,
	}

	// Questionnaire gaps fall back to moderate defaults.
	if target.Context == "" {
		target.Context = "general_research"
	}
	if len(target.PriorityData) == 0 {
		target.PriorityData = []string{"contact_info"}
	}
	if target.Urgency == "" {
		target.Urgency = model.UrgencyStandard
	}
	if target.SearchDepth == "" {
		target.SearchDepth = model.DepthStandard
	}
	if target.RiskTolerance == "" {
		target.RiskTolerance = model.RiskMedium
	}

	return target, nil
}

// detectType matches pattern groups in fixed precedence order:
// people, business, service, topic, bare domain, then mixed.
func (c *Classifier) detectType(input string) model.TargetType {
	lower := strings.ToLower(input)

	for _, re := range c.people {
		if re.MatchString(lower) {
			return model.TargetPeopleGroup
		}
	}
	for _, re := range c.business {
		if re.MatchString(lower) {
			return model.TargetBusinessCategory
		}
	}
	for _, re := range c.service {
		if re.MatchString(lower) {
			return model.TargetServiceProviders
		}
	}
	for _, re := range c.topic {
		if re.MatchString(lower) {
			return model.TargetTopicResearch
		}
	}
	if domainPattern.MatchString(lower) {
		return model.TargetDomainEntity
	}

	return model.TargetMixed
}

// detectLocation scans the location table in order; first hit wins.
func (c *Classifier) detectLocation(input string) (string, model.IntelligenceScope) {
	lower := strings.ToLower(input)
	for _, loc := range c.rules.Locations {
		if strings.Contains(lower, loc.Match) {
			return loc.Name, loc.Scope
		}
	}
	return "global", model.ScopeGlobal
}

func (c *Classifier) detectIndustries(input string) []string {
	lower := strings.ToLower(input)
	var detected []string
	for _, industry := range industryOrder {
		for _, kw := range c.rules.IndustryKeywords[industry] {
			if strings.Contains(lower, kw) {
				detected = append(detected, industry)
				break
			}
		}
	}
	return detected
}

// expandKeywords grows the word list with synonyms, industry terms,
// type boilerplate and localized location spellings, preserving first-seen
// order so classification stays deterministic.
func (c *Classifier) expandKeywords(input string, targetType model.TargetType, industries []string) []string {
	words := strings.Fields(input)

	var keywords []string
	seen := make(map[string]bool)
	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	for _, w := range words {
		add(w)
	}
	for _, w := range words {
		for _, syn := range c.rules.Synonyms[strings.ToLower(w)] {
			add(syn)
		}
	}
	for _, industry := range industries {
		for _, term := range c.rules.IndustryTerms[industry] {
			add(term)
		}
	}
	for _, kw := range typeKeywords[targetType] {
		add(kw)
	}
	for _, w := range words {
		for _, variant := range c.rules.LocationVariants[strings.ToLower(w)] {
			add(variant)
		}
	}

	if c.maxKeywords > 0 && len(keywords) > c.maxKeywords {
		keywords = keywords[:c.maxKeywords]
	}

	return keywords
}
