package analyze

import (
	"sort"
	"strings"

	"github.com/osintworks/recon-cli/internal/model"
)

const (
	baseImportance    = 10
	maxDecisionMakers = 15
	maxKeyPersonnel   = 10
	seniorModifier    = 10
	leadModifier      = 8
	principalModifier = 12
)

// roleHierarchy maps title substrings to importance scores. The highest
// matching role wins; modifiers stack on top.
var roleHierarchy = map[string]int{
	"ceo": 100, "chief executive": 100, "president": 95, "founder": 90,
	"cto": 85, "cfo": 85, "coo": 85, "chief": 80,
	"vice president": 75, "vp": 75, "director": 70, "head of": 65,
	"senior manager": 60, "manager": 50, "lead": 45, "senior": 40,
	"coordinator": 30, "specialist": 25, "analyst": 20, "associate": 15,
}

var (
	executiveTitles        = []string{"ceo", "president", "founder", "chief executive", "managing director"}
	seniorManagementTitles = []string{"cto", "cfo", "coo", "vp", "vice president", "director"}
	departmentHeadTitles   = []string{"head of", "department manager", "team lead", "senior manager"}
)

var departmentOrder = []string{
	"executive", "technology", "finance", "operations", "sales",
	"marketing", "hr", "legal", "product",
}

var departmentKeywords = map[string][]string{
	"executive":  {"ceo", "president", "founder", "chief"},
	"technology": {"cto", "engineering", "developer", "technical", "it", "software"},
	"finance":    {"cfo", "finance", "accounting", "controller", "treasurer"},
	"operations": {"coo", "operations", "production", "manufacturing"},
	"sales":      {"sales", "business development", "account", "revenue"},
	"marketing":  {"marketing", "brand", "advertising", "communications"},
	"hr":         {"hr", "human resources", "talent", "recruiting", "people"},
	"legal":      {"legal", "counsel", "compliance", "regulatory"},
	"product":    {"product", "design", "user experience", "ux"},
}

var influenceOrder = []string{"ceo", "cto", "cfo", "coo", "sales", "marketing", "hr"}

var influenceAreas = map[string][]string{
	"ceo":       {"strategic decisions", "budget approval", "partnerships", "hiring"},
	"cto":       {"technology decisions", "technical partnerships", "system purchases"},
	"cfo":       {"financial decisions", "budget allocation", "vendor payments"},
	"coo":       {"operational decisions", "process improvements", "vendor management"},
	"sales":     {"sales tools", "crm systems", "sales partnerships"},
	"marketing": {"marketing tools", "advertising", "brand partnerships"},
	"hr":        {"hr systems", "recruiting tools", "employee benefits"},
}

var powerBonus = map[model.DecisionPower]int{
	model.PowerHigh:       20,
	model.PowerMediumHigh: 15,
	model.PowerMedium:     10,
	model.PowerLow:        0,
}

// personnelReport is the output of the personnel sub-analyzer.
type personnelReport struct {
	DecisionMakers []model.DecisionMaker
	KeyPersonnel   []model.Person
	OrgStructure   model.OrgStructure
	TotalFound     int
}

// analyzePersonnel scores person-profile results, identifies decision
// makers, and summarizes the org chart.
func analyzePersonnel(people []model.IntelligenceResult) personnelReport {
	if len(people) == 0 {
		return personnelReport{
			OrgStructure: model.OrgStructure{
				Departments:     map[string]int{},
				HierarchyLevels: map[string]int{},
			},
		}
	}

	classified := make([]model.Person, 0, len(people))
	for _, r := range people {
		title := r.ContextString("title")
		name := r.ContextString("name")
		if name == "" {
			name = r.Value
		}

		classified = append(classified, model.Person{
			Name:            name,
			Title:           title,
			Department:      department(strings.ToLower(title)),
			ImportanceScore: importanceScore(strings.ToLower(title)),
			DecisionPower:   decisionPower(strings.ToLower(title)),
			Email:           r.ContextString("email"),
			Phone:           r.ContextString("phone"),
			ProfileURL:      r.SourceURL,
			Location:        r.GeographicLocation,
			Confidence:      r.Confidence,
		})
	}

	sort.SliceStable(classified, func(i, j int) bool {
		return classified[i].ImportanceScore > classified[j].ImportanceScore
	})

	var makers []model.DecisionMaker
	for _, p := range classified {
		if p.DecisionPower != model.PowerHigh && p.DecisionPower != model.PowerMediumHigh {
			continue
		}
		makers = append(makers, model.DecisionMaker{
			Person:          p,
			InfluenceAreas:  influencesFor(strings.ToLower(p.Title)),
			ContactPriority: contactPriority(p),
		})
		if len(makers) == maxDecisionMakers {
			break
		}
	}

	key := classified
	if len(key) > maxKeyPersonnel {
		key = key[:maxKeyPersonnel]
	}

	return personnelReport{
		DecisionMakers: makers,
		KeyPersonnel:   key,
		OrgStructure:   orgStructure(classified),
		TotalFound:     len(people),
	}
}

func importanceScore(title string) int {
	score := baseImportance
	for role, roleScore := range roleHierarchy {
		if hasWord(title, role) && roleScore > score {
			score = roleScore
		}
	}

	if hasWord(title, "senior") {
		score += seniorModifier
	}
	if hasWord(title, "lead") {
		score += leadModifier
	}
	if hasWord(title, "principal") {
		score += principalModifier
	}

	return score
}

func department(title string) string {
	for _, dept := range departmentOrder {
		if hasAnyWord(title, departmentKeywords[dept]) {
			return dept
		}
	}
	return "other"
}

func decisionPower(title string) model.DecisionPower {
	switch {
	case hasAnyWord(title, executiveTitles):
		return model.PowerHigh
	case hasAnyWord(title, seniorManagementTitles):
		return model.PowerMediumHigh
	case hasAnyWord(title, departmentHeadTitles):
		return model.PowerMedium
	default:
		return model.PowerLow
	}
}

// hasWord reports whether phrase occurs in title on word boundaries, so
// "coo" does not match "coordinator" and "cto" does not match "director".
func hasWord(title, phrase string) bool {
	for from := 0; ; {
		i := strings.Index(title[from:], phrase)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(phrase)
		if (start == 0 || !isWordByte(title[start-1])) &&
			(end == len(title) || !isWordByte(title[end])) {
			return true
		}
		from = start + 1
	}
}

func hasAnyWord(title string, phrases []string) bool {
	for _, phrase := range phrases {
		if hasWord(title, phrase) {
			return true
		}
	}
	return false
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func influencesFor(title string) []string {
	var areas []string
	for _, role := range influenceOrder {
		if hasWord(title, role) {
			areas = append(areas, influenceAreas[role]...)
		}
	}
	if len(areas) == 0 {
		areas = []string{"general business decisions"}
	}
	return areas
}

// contactPriority buckets importance plus reachability bonuses:
// +10 for an email, +5 for a phone, plus the decision-power bonus,
// at thresholds 80/60/40.
func contactPriority(p model.Person) model.ContactPriority {
	score := p.ImportanceScore
	if p.Email != "" {
		score += 10
	}
	if p.Phone != "" {
		score += 5
	}
	score += powerBonus[p.DecisionPower]

	switch {
	case score >= 80:
		return model.PriorityCritical
	case score >= 60:
		return model.PriorityHigh
	case score >= 40:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func orgStructure(classified []model.Person) model.OrgStructure {
	departments := make(map[string]int)
	levels := make(map[string]int)

	for _, p := range classified {
		departments[p.Department]++
		switch {
		case p.ImportanceScore >= 80:
			levels["executive"]++
		case p.ImportanceScore >= 60:
			levels["senior_management"]++
		case p.ImportanceScore >= 40:
			levels["middle_management"]++
		default:
			levels["staff"]++
		}
	}

	largest := ""
	largestCount := 0
	for _, dept := range append(append([]string{}, departmentOrder...), "other") {
		if departments[dept] > largestCount {
			largest = dept
			largestCount = departments[dept]
		}
	}

	total := len(classified)
	ratio := 0.0
	if total > 0 {
		ratio = float64(levels["executive"]+levels["senior_management"]) / float64(total)
	}

	return model.OrgStructure{
		Departments:       departments,
		HierarchyLevels:   levels,
		LargestDepartment: largest,
		ManagementRatio:   ratio,
	}
}
