package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintworks/recon-cli/internal/model"
)

func personResult(name, title string, extra map[string]any) model.IntelligenceResult {
	ctx := map[string]any{"name": name, "title": title}
	for k, v := range extra {
		ctx[k] = v
	}
	return model.IntelligenceResult{
		DataType:   model.DataTypePersonProfile,
		Value:      name,
		Confidence: 0.8,
		Context:    ctx,
	}
}

func TestImportanceScore(t *testing.T) {
	tests := []struct {
		title string
		want  int
	}{
		{"CEO", 100},
		{"Chief Executive Officer", 100},
		{"President", 95},
		{"Founder", 90},
		{"CTO", 85},
		{"VP of Sales", 75},
		{"Director of Engineering", 70},
		{"Head of Marketing", 65},
		{"Manager", 50},
		{"Senior Manager", 70},     // senior manager 60 + senior modifier
		{"Senior Engineer", 50},    // senior 40 + senior modifier
		{"Principal Engineer", 22}, // base 10 + principal modifier
		{"Sales Coordinator", 30},
		{"Analyst", 20},
		{"Intern", 10},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, importanceScore(strings.ToLower(tt.title)))
		})
	}
}

func TestRoleMatchingWordBoundaries(t *testing.T) {
	// Short role keys must not fire inside longer words: "coo" is not a
	// substring hit in "coordinator", nor "cto" in "director".
	assert.Equal(t, 30, importanceScore("sales coordinator"))
	assert.Equal(t, 70, importanceScore("director of engineering"))
	assert.Equal(t, model.PowerLow, decisionPower("sales coordinator"))
	assert.Equal(t, model.PowerMediumHigh, decisionPower("cto"))

	// "it" must not fire inside "recruiting"; the hr keyword wins.
	assert.Equal(t, "hr", department("recruiting coordinator"))

	// Multi-word phrases still match across spaces.
	assert.Equal(t, 100, importanceScore("chief executive officer"))
	assert.Equal(t, model.PowerMedium, decisionPower("head of procurement"))
}

func TestHasWord(t *testing.T) {
	tests := []struct {
		title  string
		phrase string
		want   bool
	}{
		{"sales coordinator", "coo", false},
		{"coo", "coo", true},
		{"coo and founder", "coo", true},
		{"director", "cto", false},
		{"cto of platform", "cto", true},
		{"janitor", "it", false},
		{"it manager", "it", true},
		{"vice president", "vice president", true},
		{"service president", "vice president", false},
	}

	for _, tt := range tests {
		t.Run(tt.title+"/"+tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.want, hasWord(tt.title, tt.phrase))
		})
	}
}

func TestInfluencesForWordBoundaries(t *testing.T) {
	// "coo" inside "coordinator" grants no operational influence.
	assert.Equal(t, []string{"general business decisions"}, influencesFor("office coordinator"))
	assert.Contains(t, influencesFor("coo"), "operational decisions")
	assert.Contains(t, influencesFor("sales director"), "crm systems")
}

func TestCEOOutranksManager(t *testing.T) {
	assert.Greater(t,
		importanceScore("ceo"),
		importanceScore("manager"))
}

func TestDecisionPower(t *testing.T) {
	tests := []struct {
		title string
		want  model.DecisionPower
	}{
		{"ceo", model.PowerHigh},
		{"founder and managing director", model.PowerHigh},
		{"cto", model.PowerMediumHigh},
		{"director of operations", model.PowerMediumHigh},
		{"head of procurement", model.PowerMedium},
		{"sales coordinator", model.PowerLow},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, decisionPower(tt.title))
		})
	}
}

func TestDepartment(t *testing.T) {
	assert.Equal(t, "executive", department("ceo"))
	assert.Equal(t, "technology", department("software engineer"))
	assert.Equal(t, "finance", department("accounting manager"))
	assert.Equal(t, "sales", department("account executive"))
	assert.Equal(t, "other", department("janitor"))
}

func TestAnalyzePersonnelDecisionMakers(t *testing.T) {
	people := []model.IntelligenceResult{
		personResult("Aisha Al-Qahtani", "CEO", map[string]any{"email": "ceo@acme.com"}),
		personResult("Omar Hassan", "Sales Coordinator", nil),
		personResult("Lina Farouk", "CTO", nil),
	}

	report := analyzePersonnel(people)

	// CEO and CTO qualify; the coordinator does not.
	require.Len(t, report.DecisionMakers, 2)
	assert.Equal(t, "Aisha Al-Qahtani", report.DecisionMakers[0].Name)
	assert.Equal(t, "Lina Farouk", report.DecisionMakers[1].Name)
	assert.Equal(t, 3, report.TotalFound)

	// CEO: 100 + 10 email + 20 high power = 130 → critical.
	assert.Equal(t, model.PriorityCritical, report.DecisionMakers[0].ContactPriority)
	assert.Contains(t, report.DecisionMakers[0].InfluenceAreas, "strategic decisions")
}

func TestAnalyzePersonnelCap(t *testing.T) {
	var people []model.IntelligenceResult
	for i := 0; i < 30; i++ {
		people = append(people, personResult("Person", "Director", nil))
	}

	report := analyzePersonnel(people)
	assert.Len(t, report.DecisionMakers, 15)
	assert.Len(t, report.KeyPersonnel, 10)
}

func TestAnalyzePersonnelEmpty(t *testing.T) {
	report := analyzePersonnel(nil)
	assert.Empty(t, report.DecisionMakers)
	assert.Empty(t, report.KeyPersonnel)
	assert.NotNil(t, report.OrgStructure.Departments)
}

func TestOrgStructure(t *testing.T) {
	people := []model.IntelligenceResult{
		personResult("A", "CEO", nil),
		personResult("B", "CTO", nil),
		personResult("C", "Software Engineer", nil),
		personResult("D", "Sales Analyst", nil),
	}

	report := analyzePersonnel(people)
	org := report.OrgStructure

	assert.Equal(t, 2, org.HierarchyLevels["executive"])
	assert.Equal(t, 2, org.HierarchyLevels["staff"])
	assert.InDelta(t, 0.5, org.ManagementRatio, 1e-9)
	assert.Equal(t, 1, org.Departments["executive"])
	assert.Equal(t, 2, org.Departments["technology"])
}
